package service

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"portfolio-api/internal/model"
	"portfolio-api/pkg/apierror"
)

const (
	maxMessageLength = 5000
	maxNameLength    = 200
)

type MessageStore interface {
	List(ctx context.Context) ([]model.Message, error)
	Create(ctx context.Context, message model.Message) error
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, status string) (int, error)
}

type MessageService struct {
	store MessageStore
	audit *AuditService
	clock Clock
}

func NewMessageService(store MessageStore, audit *AuditService, clock Clock) *MessageService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &MessageService{store: store, audit: audit, clock: clock}
}

// Submit stores a contact form message from the public site.
func (s *MessageService) Submit(ctx context.Context, req model.ContactRequest, ip string, userAgent string) (model.Message, error) {
	msg := model.Message{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		Status:    model.MessageUnread,
		IP:        ip,
		UserAgent: userAgent,
		CreatedAt: s.clock.Now().UTC(),
	}

	if err := requireText("name", msg.Name); err != nil {
		return model.Message{}, err
	}
	if err := requireText("email", msg.Email); err != nil {
		return model.Message{}, err
	}
	if err := validEmail(msg.Email); err != nil {
		return model.Message{}, err
	}
	if err := requireText("message", msg.Message); err != nil {
		return model.Message{}, err
	}
	if utf8.RuneCountInString(msg.Name) > maxNameLength || utf8.RuneCountInString(msg.Subject) > maxNameLength {
		return model.Message{}, apierror.Validation("name and subject are limited to 200 characters", "")
	}
	if utf8.RuneCountInString(msg.Message) > maxMessageLength {
		return model.Message{}, apierror.Validation("message is limited to 5000 characters", "message")
	}

	if err := s.store.Create(ctx, msg); err != nil {
		return model.Message{}, err
	}

	slog.Info("contact message received", "message_id", msg.ID, "ip", ip)
	return msg, nil
}

func (s *MessageService) List(ctx context.Context) ([]model.Message, error) {
	return s.store.List(ctx)
}

func (s *MessageService) UpdateStatus(ctx context.Context, id string, status string, actor model.AuditActor) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if err := oneOf("status", status, model.MessageStatuses); err != nil {
		s.audit.Log(ctx, "message.status", actor, "failed", id, nil, map[string]any{"status": status}, err.Error())
		return err
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		err = notFoundOr(err, "Message not found", id)
		s.audit.Log(ctx, "message.status", actor, "failed", id, nil, map[string]any{"status": status}, err.Error())
		return err
	}

	s.audit.Log(ctx, "message.status", actor, "success", id, nil, map[string]any{"status": status}, "")
	return nil
}

func (s *MessageService) Delete(ctx context.Context, id string, actor model.AuditActor) error {
	if err := s.store.Delete(ctx, id); err != nil {
		err = notFoundOr(err, "Message not found", id)
		s.audit.Log(ctx, "message.delete", actor, "failed", id, nil, nil, err.Error())
		return err
	}

	s.audit.Log(ctx, "message.delete", actor, "success", id, nil, nil, "")
	return nil
}
