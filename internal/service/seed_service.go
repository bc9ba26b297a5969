package service

import (
	"context"
	"fmt"
	"log/slog"

	"portfolio-api/internal/model"
)

type SeedService struct {
	projects     *ProjectService
	skills       *SkillService
	certificates *CertificateService
}

type SeedResult struct {
	Projects     int
	Skills       int
	Certificates int
}

func NewSeedService(projects *ProjectService, skills *SkillService, certificates *CertificateService) *SeedService {
	return &SeedService{projects: projects, skills: skills, certificates: certificates}
}

// Seed loads sample content into every collection that is still empty.
func (s *SeedService) Seed(ctx context.Context) (SeedResult, error) {
	actor := model.AuditActor{Username: "seed", Role: string(model.RoleAdmin)}
	var result SeedResult

	if n, err := s.projects.store.Count(ctx); err != nil {
		return result, fmt.Errorf("count projects: %w", err)
	} else if n == 0 {
		for _, in := range sampleProjects() {
			if _, err := s.projects.Create(ctx, in, actor); err != nil {
				return result, fmt.Errorf("seed project: %w", err)
			}
			result.Projects++
		}
	}

	if n, err := s.skills.store.Count(ctx); err != nil {
		return result, fmt.Errorf("count skills: %w", err)
	} else if n == 0 {
		for _, in := range sampleSkills() {
			if _, err := s.skills.Create(ctx, in, actor); err != nil {
				return result, fmt.Errorf("seed skill: %w", err)
			}
			result.Skills++
		}
	}

	if n, err := s.certificates.store.Count(ctx); err != nil {
		return result, fmt.Errorf("count certificates: %w", err)
	} else if n == 0 {
		for _, in := range sampleCertificates() {
			if _, err := s.certificates.Create(ctx, in, actor); err != nil {
				return result, fmt.Errorf("seed certificate: %w", err)
			}
			result.Certificates++
		}
	}

	slog.Info("content seeded", "projects", result.Projects, "skills", result.Skills, "certificates", result.Certificates)
	return result, nil
}

func ptr[T any](v T) *T {
	return &v
}

func sampleProjects() []model.ProjectInput {
	return []model.ProjectInput{
		{
			Title:       ptr("Attendance AI"),
			Tagline:     ptr("Face recognition attendance tracking"),
			Description: ptr("Marks attendance automatically from a camera feed and reports trends per class."),
			Tech:        []string{"Python", "Django", "React", "PostgreSQL"},
			Features:    []string{"Real-time recognition", "Analytics dashboard", "Report export"},
			Year:        ptr(2024),
			Category:    ptr("ai"),
			Featured:    ptr(true),
		},
		{
			Title:       ptr("Budget Buddy"),
			Tagline:     ptr("Expense tracker for students"),
			Description: ptr("Categorizes spending and suggests monthly budgets."),
			Tech:        []string{"Go", "React", "PostgreSQL"},
			Features:    []string{"Expense categorization", "Budget suggestions", "Bill reminders"},
			Year:        ptr(2024),
			Category:    ptr("web"),
		},
	}
}

func sampleSkills() []model.SkillInput {
	type row struct {
		name     string
		category string
		level    int
		years    float64
	}
	rows := []row{
		{"Go", "Programming", 85, 3},
		{"Python", "Programming", 90, 4},
		{"React", "Frontend", 80, 2},
		{"PostgreSQL", "Database", 75, 3},
		{"Docker", "Tools", 70, 2},
	}

	out := make([]model.SkillInput, 0, len(rows))
	for i, r := range rows {
		out = append(out, model.SkillInput{
			Name:              ptr(r.name),
			Category:          ptr(r.category),
			Level:             ptr(r.level),
			YearsOfExperience: ptr(r.years),
			Order:             ptr(i + 1),
		})
	}
	return out
}

func sampleCertificates() []model.CertificateInput {
	return []model.CertificateInput{
		{
			Name:        ptr("Python for Data Science"),
			Issuer:      ptr("Coursera"),
			Date:        ptr("2024"),
			Description: ptr("Python for data analysis and visualization."),
			Category:    ptr("Programming"),
			Priority:    ptr(1),
		},
		{
			Name:     ptr("Full Stack Web Development"),
			Issuer:   ptr("Udemy"),
			Date:     ptr("2023"),
			Category: ptr("Web Development"),
			Priority: ptr(2),
		},
	}
}
