package app

import (
	"context"
	"fmt"
	"log/slog"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/service"
)

// Stores bundles the persistence backends the services consume.
type Stores struct {
	Admins       service.AdminStore
	Projects     service.ProjectStore
	Skills       service.SkillStore
	Certificates service.CertificateStore
	Messages     service.MessageStore
	Audit        service.AuditStore

	// DB is nil when running on the in-memory store.
	DB *database.DB
}

// OpenStores connects to PostgreSQL when DATABASE_URL is set and falls back
// to process memory otherwise.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set; using in-memory store, data will not survive restarts")
		return MemoryStores(repository.NewMemoryStore()), nil
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.Open(ctx, database.Options{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	slog.Info("database ready")
	return &Stores{
		Admins:       repository.NewAdminRepository(pool),
		Projects:     repository.NewProjectRepository(pool),
		Skills:       repository.NewSkillRepository(pool),
		Certificates: repository.NewCertificateRepository(pool),
		Messages:     repository.NewMessageRepository(pool),
		Audit:        repository.NewAuditRepository(pool),
		DB:           db,
	}, nil
}

func MemoryStores(mem *repository.MemoryStore) *Stores {
	return &Stores{
		Admins:       mem.Admins(),
		Projects:     mem.Projects(),
		Skills:       mem.Skills(),
		Certificates: mem.Certificates(),
		Messages:     mem.Messages(),
		Audit:        mem.Audit(),
	}
}

func (s *Stores) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
