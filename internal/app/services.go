package app

import (
	"fmt"

	"portfolio-api/internal/config"
	"portfolio-api/internal/service"
)

type Services struct {
	Tokens       *service.TokenService
	Auth         *service.AuthService
	Audit        *service.AuditService
	Projects     *service.ProjectService
	Skills       *service.SkillService
	Certificates *service.CertificateService
	Messages     *service.MessageService
	Dashboard    *service.DashboardService
	Seed         *service.SeedService
}

func NewServices(cfg *config.Config, stores *Stores, clock service.Clock, recorder service.LoginRecorder) (*Services, error) {
	if clock == nil {
		clock = service.SystemClock{}
	}

	hasher, err := service.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	auth, err := service.NewAuthService(stores.Admins, hasher, tokens, clock, recorder)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	audit := service.NewAuditService(stores.Audit, clock)
	projects := service.NewProjectService(stores.Projects, audit, clock)
	skills := service.NewSkillService(stores.Skills, audit, clock)
	certificates := service.NewCertificateService(stores.Certificates, audit, clock)

	return &Services{
		Tokens:       tokens,
		Auth:         auth,
		Audit:        audit,
		Projects:     projects,
		Skills:       skills,
		Certificates: certificates,
		Messages:     service.NewMessageService(stores.Messages, audit, clock),
		Dashboard:    service.NewDashboardService(stores.Projects, stores.Skills, stores.Certificates, stores.Messages),
		Seed:         service.NewSeedService(projects, skills, certificates),
	}, nil
}
