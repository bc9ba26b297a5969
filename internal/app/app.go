package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/handler"
	"portfolio-api/internal/metrics"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/router"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New(ctx context.Context, cfg *config.Config, version string) (*App, error) {
	stores, err := OpenStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	m.SetBuildInfo(version)
	if stores.DB != nil {
		m.ObservePool(stores.DB.Stats)
	}

	services, err := NewServices(cfg, stores, nil, m)
	if err != nil {
		stores.Close()
		return nil, err
	}

	if cfg.AdminUsername != "" {
		if err := services.Auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
			stores.Close()
			return nil, fmt.Errorf("failed to provision admin identity: %w", err)
		}
	}

	guard := middleware.NewAuthGuard(services.Tokens, stores.Admins, m)

	var statusHandler *handler.StatusHandler
	if stores.DB != nil {
		statusHandler = handler.NewStatusHandler(nil, stores.DB)
	} else {
		statusHandler = handler.NewStatusHandler(nil, nil)
	}

	appRouter := router.New(cfg, guard, m, router.Handlers{
		Status:       statusHandler,
		Auth:         handler.NewAuthHandler(services.Auth),
		Projects:     handler.NewProjectHandler(services.Projects),
		Skills:       handler.NewSkillHandler(services.Skills),
		Certificates: handler.NewCertificateHandler(services.Certificates),
		Messages:     handler.NewMessageHandler(services.Messages),
		Dashboard:    handler.NewDashboardHandler(services.Dashboard),
		Audit:        handler.NewAuditHandler(services.Audit),
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server:       server,
		cleanupFuncs: []func(){stores.Close},
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		a.cleanup()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.cleanup()
	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func (a *App) cleanup() {
	for _, fn := range a.cleanupFuncs {
		fn()
	}
}
