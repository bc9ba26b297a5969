package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"portfolio-api/internal/model"
	"portfolio-api/pkg/apierror"
)

const (
	msgMissingToken = "Access token required"
	msgInvalidToken = "Invalid token"
	msgForbidden    = "Insufficient permissions"
)

type tokenVerifier interface {
	Verify(token string) (*model.TokenClaims, error)
}

type identityLookup interface {
	FindByUsername(ctx context.Context, username string) (model.AdminIdentity, error)
}

type rejectionRecorder interface {
	AuthRejected(code string)
}

type contextKey string

const identityContextKey contextKey = "admin_identity"

// AuthGuard authenticates admin requests from a bearer token and re-checks
// that the named identity still exists on every request.
type AuthGuard struct {
	tokens   tokenVerifier
	store    identityLookup
	recorder rejectionRecorder
}

func NewAuthGuard(tokens tokenVerifier, store identityLookup, recorder rejectionRecorder) *AuthGuard {
	return &AuthGuard{tokens: tokens, store: store, recorder: recorder}
}

func (g *AuthGuard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			g.reject(w, r, http.StatusUnauthorized, apierror.CodeMissingToken, msgMissingToken, "missing_token")
			return
		}

		claims, err := g.tokens.Verify(token)
		if err != nil {
			g.reject(w, r, http.StatusUnauthorized, apierror.CodeInvalidToken, msgInvalidToken, "bad_token")
			return
		}

		identity, err := g.store.FindByUsername(r.Context(), claims.Username)
		if errors.Is(err, model.ErrIdentityNotFound) {
			g.reject(w, r, http.StatusUnauthorized, apierror.CodeInvalidToken, msgInvalidToken, "identity_missing")
			return
		}
		if err != nil {
			slog.Error("auth guard identity lookup failed", "username", claims.Username, "error", err)
			writeErrorJSON(w, http.StatusInternalServerError, apierror.CodeInternal, "Authentication failed")
			return
		}

		ctx := WithIdentity(r.Context(), model.Identity{Username: identity.Username, Role: identity.Role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles must run after Require. The role comes from the stored
// identity, so a demotion takes effect before the token expires.
func (g *AuthGuard) RequireRoles(roles ...model.Role) func(http.Handler) http.Handler {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				g.reject(w, r, http.StatusUnauthorized, apierror.CodeMissingToken, msgMissingToken, "missing_identity")
				return
			}

			if _, permitted := allowed[identity.Role]; !permitted {
				g.reject(w, r, http.StatusForbidden, apierror.CodeForbidden, msgForbidden, "role_denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *AuthGuard) reject(w http.ResponseWriter, r *http.Request, status int, code string, message string, reason string) {
	slog.Warn("admin request rejected", "reason", reason, "method", r.Method, "path", r.URL.Path, "client_ip", ClientIP(r))
	if g.recorder != nil {
		g.recorder.AuthRejected(code)
	}
	writeErrorJSON(w, status, code, message)
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme match is case insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	return identity, ok
}
