//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/model"
)

func TestAuthFlowAndProtectedEndpoints(t *testing.T) {
	s := newPostgresServer(t)

	resp := s.do(t, http.MethodGet, "/api/admin/auth/verify", s.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var verify model.VerifyResponse
	decodeBody(t, resp, &verify)
	assert.True(t, verify.Valid)
	assert.Equal(t, adminUser, verify.User.Username)

	identity, err := s.stores.Admins.FindByUsername(context.Background(), adminUser)
	require.NoError(t, err)
	require.NotNil(t, identity.LastLogin)
	assert.Equal(t, "admin@example.com", identity.Email)

	resp = s.do(t, http.MethodGet, "/api/admin/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, http.MethodPost, "/api/admin/auth/login", "", model.LoginRequest{Username: adminUser, Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDuplicateIdentityIsRejected(t *testing.T) {
	s := newPostgresServer(t)

	err := s.stores.Admins.Create(context.Background(), model.AdminIdentity{
		ID:           "00000000-0000-4000-8000-000000000001",
		Username:     adminUser,
		PasswordHash: "x",
		Role:         model.RoleAdmin,
	})
	require.ErrorIs(t, err, model.ErrIdentityExists)

	_, err = s.stores.Admins.FindByUsername(context.Background(), "ADMIN")
	require.ErrorIs(t, err, model.ErrIdentityNotFound)
}
