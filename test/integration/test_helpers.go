//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"portfolio-api/internal/app"
	"portfolio-api/internal/config"
	"portfolio-api/internal/handler"
	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
	"portfolio-api/internal/router"
)

const (
	adminUser     = "admin"
	adminPassword = "admin-pass-123"
)

type pgServer struct {
	*httptest.Server
	stores *app.Stores
	token  string
}

// newPostgresServer runs the full HTTP stack on the database named by
// DATABASE_URL. Every table is truncated first.
func newPostgresServer(t *testing.T) *pgServer {
	t.Helper()

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	cfg := &config.Config{
		ServerPort:       "0",
		RequestTimeout:   10 * time.Second,
		DatabaseURL:      databaseURL,
		DBMaxConns:       4,
		DBMinConns:       1,
		JWTSecret:        strings.Repeat("s", 32),
		JWTTTL:           time.Hour,
		JWTIssuer:        "portfolio-api-integration",
		BcryptCost:       12,
		CORSOrigins:      []string{"*"},
		LoginRateLimit:   1000,
		LoginRateWindow:  time.Minute,
		ContactRateLimit: 1000,
	}

	ctx := context.Background()
	stores, err := app.OpenStores(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(stores.Close)

	_, err = stores.DB.Pool.Exec(ctx,
		`TRUNCATE admin_users, projects, skills, certificates, messages, audit_entries`)
	require.NoError(t, err)

	services, err := app.NewServices(cfg, stores, nil, nil)
	require.NoError(t, err)
	require.NoError(t, services.Auth.EnsureAdmin(ctx, adminUser, adminPassword, "admin@example.com"))

	guard := middleware.NewAuthGuard(services.Tokens, stores.Admins, nil)
	server := httptest.NewServer(router.New(cfg, guard, nil, router.Handlers{
		Status:       handler.NewStatusHandler(nil, stores.DB),
		Auth:         handler.NewAuthHandler(services.Auth),
		Projects:     handler.NewProjectHandler(services.Projects),
		Skills:       handler.NewSkillHandler(services.Skills),
		Certificates: handler.NewCertificateHandler(services.Certificates),
		Messages:     handler.NewMessageHandler(services.Messages),
		Dashboard:    handler.NewDashboardHandler(services.Dashboard),
		Audit:        handler.NewAuditHandler(services.Audit),
	}))
	t.Cleanup(server.Close)

	s := &pgServer{Server: server, stores: stores}
	s.token = s.login(t, adminUser, adminPassword)
	return s
}

func (s *pgServer) login(t *testing.T, username string, password string) string {
	t.Helper()

	resp := s.do(t, http.MethodPost, "/api/admin/auth/login", "", model.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed model.LoginResponse
	decodeBody(t, resp, &parsed)
	require.NotEmpty(t, parsed.AccessToken)
	return parsed.AccessToken
}

func (s *pgServer) do(t *testing.T, method string, path string, token string, body any) *http.Response {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, s.URL+path, bytes.NewReader(payload))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}
