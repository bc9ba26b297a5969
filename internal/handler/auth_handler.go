package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
	"portfolio-api/pkg/apierror"
)

const (
	msgLoginRejected = "Incorrect username or password"
	msgLoginFailed   = "Login failed"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login answers every credential failure with the same body so callers cannot
// tell an unknown username from a wrong password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		var apiErr *apierror.APIError
		switch {
		case errors.As(err, &apiErr):
			writeError(w, apiErr)
		case errors.Is(err, model.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, model.LoginFailure{Detail: msgLoginRejected})
		default:
			slog.Error("login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, model.LoginFailure{Detail: msgLoginFailed})
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, model.VerifyResponse{Valid: true, User: identity})
}
