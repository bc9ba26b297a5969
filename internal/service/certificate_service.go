package service

import (
	"context"

	"github.com/google/uuid"

	"portfolio-api/internal/model"
)

type CertificateStore interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.Certificate, error)
	Get(ctx context.Context, id string) (model.Certificate, error)
	Create(ctx context.Context, certificate model.Certificate) error
	Update(ctx context.Context, certificate model.Certificate) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type CertificateService struct {
	store CertificateStore
	audit *AuditService
	clock Clock
}

func NewCertificateService(store CertificateStore, audit *AuditService, clock Clock) *CertificateService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &CertificateService{store: store, audit: audit, clock: clock}
}

func (s *CertificateService) ListVisible(ctx context.Context) ([]model.Certificate, error) {
	return s.store.List(ctx, model.ListFilter{VisibleOnly: true})
}

func (s *CertificateService) List(ctx context.Context) ([]model.Certificate, error) {
	return s.store.List(ctx, model.ListFilter{})
}

func (s *CertificateService) Create(ctx context.Context, input model.CertificateInput, actor model.AuditActor) (model.Certificate, error) {
	certificate := model.Certificate{
		ID:        uuid.NewString(),
		Status:    "active",
		Visible:   true,
		CreatedAt: s.clock.Now().UTC(),
	}
	applyCertificateInput(&certificate, input)

	if err := validateCertificate(certificate); err != nil {
		s.audit.Log(ctx, "certificate.create", actor, "failed", "", input, nil, err.Error())
		return model.Certificate{}, err
	}

	if err := s.store.Create(ctx, certificate); err != nil {
		s.audit.Log(ctx, "certificate.create", actor, "failed", certificate.ID, input, nil, err.Error())
		return model.Certificate{}, err
	}

	s.audit.Log(ctx, "certificate.create", actor, "success", certificate.ID, nil, certificate, "")
	return certificate, nil
}

func (s *CertificateService) Update(ctx context.Context, id string, input model.CertificateInput, actor model.AuditActor) (model.Certificate, error) {
	before, err := s.store.Get(ctx, id)
	if err != nil {
		err = notFoundOr(err, "Certificate not found", id)
		s.audit.Log(ctx, "certificate.update", actor, "failed", id, nil, input, err.Error())
		return model.Certificate{}, err
	}

	updated := before
	applyCertificateInput(&updated, input)

	if err := validateCertificate(updated); err != nil {
		s.audit.Log(ctx, "certificate.update", actor, "failed", id, before, input, err.Error())
		return model.Certificate{}, err
	}

	if err := s.store.Update(ctx, updated); err != nil {
		err = notFoundOr(err, "Certificate not found", id)
		s.audit.Log(ctx, "certificate.update", actor, "failed", id, before, input, err.Error())
		return model.Certificate{}, err
	}

	s.audit.Log(ctx, "certificate.update", actor, "success", id, before, updated, "")
	return updated, nil
}

func (s *CertificateService) Delete(ctx context.Context, id string, actor model.AuditActor) error {
	if err := s.store.Delete(ctx, id); err != nil {
		err = notFoundOr(err, "Certificate not found", id)
		s.audit.Log(ctx, "certificate.delete", actor, "failed", id, nil, nil, err.Error())
		return err
	}

	s.audit.Log(ctx, "certificate.delete", actor, "success", id, nil, nil, "")
	return nil
}

func applyCertificateInput(c *model.Certificate, in model.CertificateInput) {
	if in.Name != nil {
		c.Name = trimmed(in.Name)
	}
	if in.Issuer != nil {
		c.Issuer = trimmed(in.Issuer)
	}
	if in.Date != nil {
		c.Date = trimmed(in.Date)
	}
	if in.Description != nil {
		c.Description = trimmed(in.Description)
	}
	if in.CredentialID != nil {
		c.CredentialID = trimmed(in.CredentialID)
	}
	if in.VerifyURL != nil {
		c.VerifyURL = trimmed(in.VerifyURL)
	}
	if in.ImageURL != nil {
		c.ImageURL = trimmed(in.ImageURL)
	}
	if in.Status != nil {
		c.Status = trimmed(in.Status)
	}
	if in.Category != nil {
		c.Category = trimmed(in.Category)
	}
	if in.Priority != nil {
		c.Priority = *in.Priority
	}
	if in.Visible != nil {
		c.Visible = *in.Visible
	}
}

func validateCertificate(c model.Certificate) error {
	if err := requireText("name", c.Name); err != nil {
		return err
	}
	if err := requireText("issuer", c.Issuer); err != nil {
		return err
	}
	if err := requireText("date", c.Date); err != nil {
		return err
	}
	return oneOf("status", c.Status, model.CertificateStatuses)
}
