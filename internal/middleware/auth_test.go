package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/model"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(token string) (*model.TokenClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*model.TokenClaims)
	return claims, args.Error(1)
}

type mockLookup struct {
	mock.Mock
}

func (m *mockLookup) FindByUsername(ctx context.Context, username string) (model.AdminIdentity, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.AdminIdentity), args.Error(1)
}

type countingRecorder struct {
	codes []string
}

func (c *countingRecorder) AuthRejected(code string) {
	c.codes = append(c.codes, code)
}

func identityEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(identity.Username + ":" + string(identity.Role)))
	})
}

func serveGuard(t *testing.T, guard *AuthGuard, header string, next http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/auth/verify", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	guard.Require(next).ServeHTTP(rec, req)
	return rec
}

func TestAuthGuardMissingToken(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic YWRtaW46c2VjcmV0", "token-without-scheme"} {
		t.Run(header, func(t *testing.T) {
			verifier := &mockVerifier{}
			recorder := &countingRecorder{}
			guard := NewAuthGuard(verifier, &mockLookup{}, recorder)

			rec := serveGuard(t, guard, header, identityEcho())

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Access token required","code":"MISSING_TOKEN"}`, rec.Body.String())
			assert.Equal(t, []string{"MISSING_TOKEN"}, recorder.codes)
			verifier.AssertNotCalled(t, "Verify", mock.Anything)
		})
	}
}

func TestAuthGuardInvalidToken(t *testing.T) {
	t.Parallel()

	verifier := &mockVerifier{}
	verifier.On("Verify", "garbage").Return(nil, model.ErrInvalidToken)
	lookup := &mockLookup{}
	guard := NewAuthGuard(verifier, lookup, nil)

	rec := serveGuard(t, guard, "Bearer garbage", identityEcho())

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token","code":"INVALID_TOKEN"}`, rec.Body.String())
	lookup.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestAuthGuardIdentityMissingLooksLikeInvalidToken(t *testing.T) {
	t.Parallel()

	verifier := &mockVerifier{}
	verifier.On("Verify", "valid").Return(&model.TokenClaims{Username: "ghost", Role: model.RoleAdmin}, nil)
	lookup := &mockLookup{}
	lookup.On("FindByUsername", mock.Anything, "ghost").Return(model.AdminIdentity{}, model.ErrIdentityNotFound)
	guard := NewAuthGuard(verifier, lookup, nil)

	missing := serveGuard(t, guard, "Bearer valid", identityEcho())

	badVerifier := &mockVerifier{}
	badVerifier.On("Verify", "valid").Return(nil, model.ErrInvalidToken)
	bad := serveGuard(t, NewAuthGuard(badVerifier, lookup, nil), "Bearer valid", identityEcho())

	require.Equal(t, http.StatusUnauthorized, missing.Code)
	assert.Equal(t, bad.Code, missing.Code)
	assert.Equal(t, bad.Body.String(), missing.Body.String())
}

func TestAuthGuardStoreFailureIs500(t *testing.T) {
	t.Parallel()

	verifier := &mockVerifier{}
	verifier.On("Verify", "valid").Return(&model.TokenClaims{Username: "admin"}, nil)
	lookup := &mockLookup{}
	lookup.On("FindByUsername", mock.Anything, "admin").Return(model.AdminIdentity{}, errors.New("connection refused"))

	rec := serveGuard(t, NewAuthGuard(verifier, lookup, nil), "Bearer valid", identityEcho())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuthGuardAttachesStoredIdentity(t *testing.T) {
	t.Parallel()

	verifier := &mockVerifier{}
	verifier.On("Verify", "valid").Return(&model.TokenClaims{Username: "admin", Role: model.RoleAdmin}, nil)
	lookup := &mockLookup{}
	lookup.On("FindByUsername", mock.Anything, "admin").
		Return(model.AdminIdentity{Username: "admin", Role: model.RoleModerator}, nil)

	rec := serveGuard(t, NewAuthGuard(verifier, lookup, nil), "bearer valid", identityEcho())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin:moderator", rec.Body.String())
	verifier.AssertExpectations(t)
	lookup.AssertExpectations(t)
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	guard := NewAuthGuard(&mockVerifier{}, &mockLookup{}, nil)
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	handler := guard.RequireRoles(model.RoleAdmin)(ok)

	tests := []struct {
		name     string
		identity *model.Identity
		status   int
		body     string
	}{
		{name: "admin allowed", identity: &model.Identity{Username: "a", Role: model.RoleAdmin}, status: http.StatusNoContent},
		{name: "moderator forbidden", identity: &model.Identity{Username: "m", Role: model.RoleModerator}, status: http.StatusForbidden,
			body: `{"error":"Insufficient permissions","code":"FORBIDDEN"}`},
		{name: "no identity", status: http.StatusUnauthorized,
			body: `{"error":"Access token required","code":"MISSING_TOKEN"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/admin/projects/1", nil)
			if tt.identity != nil {
				req = req.WithContext(WithIdentity(req.Context(), *tt.identity))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	token, ok := bearerToken("Bearer abc.def.ghi")
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	token, ok = bearerToken("  BEARER   xyz  ")
	require.True(t, ok)
	assert.Equal(t, "xyz", token)

	_, ok = bearerToken("Token xyz")
	assert.False(t, ok)
}
