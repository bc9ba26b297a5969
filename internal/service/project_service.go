package service

import (
	"context"

	"github.com/google/uuid"

	"portfolio-api/internal/model"
)

// ProjectStore returns model.ErrNotFound from Get, Update and Delete for
// unknown ids.
type ProjectStore interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.Project, error)
	Get(ctx context.Context, id string) (model.Project, error)
	Create(ctx context.Context, project model.Project) error
	Update(ctx context.Context, project model.Project) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type ProjectService struct {
	store ProjectStore
	audit *AuditService
	clock Clock
}

func NewProjectService(store ProjectStore, audit *AuditService, clock Clock) *ProjectService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ProjectService{store: store, audit: audit, clock: clock}
}

func (s *ProjectService) ListVisible(ctx context.Context) ([]model.Project, error) {
	return s.store.List(ctx, model.ListFilter{VisibleOnly: true})
}

func (s *ProjectService) GetVisible(ctx context.Context, id string) (model.Project, error) {
	project, err := s.store.Get(ctx, id)
	if err != nil {
		return model.Project{}, notFoundOr(err, "Project not found", id)
	}
	if !project.Visible {
		return model.Project{}, notFoundOr(model.ErrNotFound, "Project not found", id)
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.store.List(ctx, model.ListFilter{})
}

func (s *ProjectService) Create(ctx context.Context, input model.ProjectInput, actor model.AuditActor) (model.Project, error) {
	now := s.clock.Now().UTC()
	project := model.Project{
		ID:        uuid.NewString(),
		Tech:      []string{},
		Features:  []string{},
		Category:  "web",
		Status:    "completed",
		Visible:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyProjectInput(&project, input)

	if err := validateProject(project); err != nil {
		s.audit.Log(ctx, "project.create", actor, "failed", "", input, nil, err.Error())
		return model.Project{}, err
	}

	if err := s.store.Create(ctx, project); err != nil {
		s.audit.Log(ctx, "project.create", actor, "failed", project.ID, input, nil, err.Error())
		return model.Project{}, err
	}

	s.audit.Log(ctx, "project.create", actor, "success", project.ID, nil, project, "")
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, input model.ProjectInput, actor model.AuditActor) (model.Project, error) {
	before, err := s.store.Get(ctx, id)
	if err != nil {
		err = notFoundOr(err, "Project not found", id)
		s.audit.Log(ctx, "project.update", actor, "failed", id, nil, input, err.Error())
		return model.Project{}, err
	}

	updated := before
	applyProjectInput(&updated, input)
	updated.UpdatedAt = s.clock.Now().UTC()

	if err := validateProject(updated); err != nil {
		s.audit.Log(ctx, "project.update", actor, "failed", id, before, input, err.Error())
		return model.Project{}, err
	}

	if err := s.store.Update(ctx, updated); err != nil {
		err = notFoundOr(err, "Project not found", id)
		s.audit.Log(ctx, "project.update", actor, "failed", id, before, input, err.Error())
		return model.Project{}, err
	}

	s.audit.Log(ctx, "project.update", actor, "success", id, before, updated, "")
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string, actor model.AuditActor) error {
	if err := s.store.Delete(ctx, id); err != nil {
		err = notFoundOr(err, "Project not found", id)
		s.audit.Log(ctx, "project.delete", actor, "failed", id, nil, nil, err.Error())
		return err
	}

	s.audit.Log(ctx, "project.delete", actor, "success", id, nil, nil, "")
	return nil
}

func applyProjectInput(p *model.Project, in model.ProjectInput) {
	if in.Title != nil {
		p.Title = trimmed(in.Title)
	}
	if in.Tagline != nil {
		p.Tagline = trimmed(in.Tagline)
	}
	if in.Description != nil {
		p.Description = trimmed(in.Description)
	}
	if in.LongDescription != nil {
		p.LongDescription = trimmed(in.LongDescription)
	}
	if in.Tech != nil {
		p.Tech = trimAll(in.Tech)
	}
	if in.Features != nil {
		p.Features = trimAll(in.Features)
	}
	if in.DemoURL != nil {
		p.DemoURL = trimmed(in.DemoURL)
	}
	if in.GithubURL != nil {
		p.GithubURL = trimmed(in.GithubURL)
	}
	if in.ImageURL != nil {
		p.ImageURL = trimmed(in.ImageURL)
	}
	if in.VideoURL != nil {
		p.VideoURL = trimmed(in.VideoURL)
	}
	if in.Year != nil {
		p.Year = *in.Year
	}
	if in.Category != nil {
		p.Category = trimmed(in.Category)
	}
	if in.Status != nil {
		p.Status = trimmed(in.Status)
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Visible != nil {
		p.Visible = *in.Visible
	}
}

func validateProject(p model.Project) error {
	if err := requireText("title", p.Title); err != nil {
		return err
	}
	if err := requireText("tagline", p.Tagline); err != nil {
		return err
	}
	if err := requireText("description", p.Description); err != nil {
		return err
	}
	if p.Year <= 0 {
		return requireText("year", "")
	}
	if err := oneOf("category", p.Category, model.ProjectCategories); err != nil {
		return err
	}
	return oneOf("status", p.Status, model.ProjectStatuses)
}
