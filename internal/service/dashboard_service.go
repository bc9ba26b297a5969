package service

import (
	"context"
	"fmt"

	"portfolio-api/internal/model"
)

type counter interface {
	Count(ctx context.Context) (int, error)
}

type DashboardService struct {
	projects     counter
	skills       counter
	certificates counter
	messages     MessageStore
}

func NewDashboardService(projects ProjectStore, skills SkillStore, certificates CertificateStore, messages MessageStore) *DashboardService {
	return &DashboardService{projects: projects, skills: skills, certificates: certificates, messages: messages}
}

func (s *DashboardService) Stats(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats
	var err error

	if stats.TotalProjects, err = s.projects.Count(ctx); err != nil {
		return model.DashboardStats{}, fmt.Errorf("count projects: %w", err)
	}
	if stats.TotalSkills, err = s.skills.Count(ctx); err != nil {
		return model.DashboardStats{}, fmt.Errorf("count skills: %w", err)
	}
	if stats.TotalCertificates, err = s.certificates.Count(ctx); err != nil {
		return model.DashboardStats{}, fmt.Errorf("count certificates: %w", err)
	}
	if stats.UnreadMessages, err = s.messages.Count(ctx, model.MessageUnread); err != nil {
		return model.DashboardStats{}, fmt.Errorf("count unread messages: %w", err)
	}
	if stats.TotalMessages, err = s.messages.Count(ctx, ""); err != nil {
		return model.DashboardStats{}, fmt.Errorf("count messages: %w", err)
	}

	return stats, nil
}
