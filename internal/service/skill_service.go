package service

import (
	"context"

	"github.com/google/uuid"

	"portfolio-api/internal/model"
	"portfolio-api/pkg/apierror"
)

type SkillStore interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.Skill, error)
	Get(ctx context.Context, id string) (model.Skill, error)
	Create(ctx context.Context, skill model.Skill) error
	Update(ctx context.Context, skill model.Skill) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type SkillService struct {
	store SkillStore
	audit *AuditService
	clock Clock
}

func NewSkillService(store SkillStore, audit *AuditService, clock Clock) *SkillService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &SkillService{store: store, audit: audit, clock: clock}
}

func (s *SkillService) ListVisible(ctx context.Context) ([]model.Skill, error) {
	return s.store.List(ctx, model.ListFilter{VisibleOnly: true})
}

func (s *SkillService) List(ctx context.Context) ([]model.Skill, error) {
	return s.store.List(ctx, model.ListFilter{})
}

func (s *SkillService) Create(ctx context.Context, input model.SkillInput, actor model.AuditActor) (model.Skill, error) {
	skill := model.Skill{
		ID:        uuid.NewString(),
		Level:     50,
		Projects:  []string{},
		Visible:   true,
		CreatedAt: s.clock.Now().UTC(),
	}
	applySkillInput(&skill, input)

	if err := validateSkill(skill); err != nil {
		s.audit.Log(ctx, "skill.create", actor, "failed", "", input, nil, err.Error())
		return model.Skill{}, err
	}

	if err := s.store.Create(ctx, skill); err != nil {
		s.audit.Log(ctx, "skill.create", actor, "failed", skill.ID, input, nil, err.Error())
		return model.Skill{}, err
	}

	s.audit.Log(ctx, "skill.create", actor, "success", skill.ID, nil, skill, "")
	return skill, nil
}

func (s *SkillService) Update(ctx context.Context, id string, input model.SkillInput, actor model.AuditActor) (model.Skill, error) {
	before, err := s.store.Get(ctx, id)
	if err != nil {
		err = notFoundOr(err, "Skill not found", id)
		s.audit.Log(ctx, "skill.update", actor, "failed", id, nil, input, err.Error())
		return model.Skill{}, err
	}

	updated := before
	applySkillInput(&updated, input)

	if err := validateSkill(updated); err != nil {
		s.audit.Log(ctx, "skill.update", actor, "failed", id, before, input, err.Error())
		return model.Skill{}, err
	}

	if err := s.store.Update(ctx, updated); err != nil {
		err = notFoundOr(err, "Skill not found", id)
		s.audit.Log(ctx, "skill.update", actor, "failed", id, before, input, err.Error())
		return model.Skill{}, err
	}

	s.audit.Log(ctx, "skill.update", actor, "success", id, before, updated, "")
	return updated, nil
}

func (s *SkillService) Delete(ctx context.Context, id string, actor model.AuditActor) error {
	if err := s.store.Delete(ctx, id); err != nil {
		err = notFoundOr(err, "Skill not found", id)
		s.audit.Log(ctx, "skill.delete", actor, "failed", id, nil, nil, err.Error())
		return err
	}

	s.audit.Log(ctx, "skill.delete", actor, "success", id, nil, nil, "")
	return nil
}

func applySkillInput(sk *model.Skill, in model.SkillInput) {
	if in.Name != nil {
		sk.Name = trimmed(in.Name)
	}
	if in.Category != nil {
		sk.Category = trimmed(in.Category)
	}
	if in.Level != nil {
		sk.Level = *in.Level
	}
	if in.Icon != nil {
		sk.Icon = trimmed(in.Icon)
	}
	if in.YearsOfExperience != nil {
		years := *in.YearsOfExperience
		sk.YearsOfExperience = &years
	}
	if in.Projects != nil {
		sk.Projects = trimAll(in.Projects)
	}
	if in.Order != nil {
		sk.Order = *in.Order
	}
	if in.Visible != nil {
		sk.Visible = *in.Visible
	}
}

func validateSkill(sk model.Skill) error {
	if err := requireText("name", sk.Name); err != nil {
		return err
	}
	if err := oneOf("category", sk.Category, model.SkillCategories); err != nil {
		return err
	}
	if sk.Level < 0 || sk.Level > 100 {
		return apierror.Validation("level must be between 0 and 100", "level")
	}
	if sk.YearsOfExperience != nil && *sk.YearsOfExperience < 0 {
		return apierror.Validation("yearsOfExperience cannot be negative", "yearsOfExperience")
	}
	return nil
}
