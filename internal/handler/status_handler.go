package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"portfolio-api/internal/model"
	"portfolio-api/pkg/apierror"
)

const apiVersion = "1.0.0"

const apiRunningMessage = "Portfolio API is running"

type pinger interface {
	Ping(ctx context.Context) error
}

type StatusHandler struct {
	now func() time.Time
	db  pinger
}

// NewStatusHandler builds the liveness handlers. db may be nil when the
// service runs on the in-memory store.
func NewStatusHandler(now func() time.Time, db pinger) *StatusHandler {
	if now == nil {
		now = time.Now
	}
	return &StatusHandler{now: now, db: db}
}

func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *StatusHandler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.StatusResponse{
		Message:   apiRunningMessage,
		Version:   apiVersion,
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *StatusHandler) API(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.StatusResponse{
		Message: apiRunningMessage,
		Version: apiVersion,
		Status:  "healthy",
	})
}

func (h *StatusHandler) NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, apierror.NotFound("Route not found", ""))
}

func (h *StatusHandler) MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, apierror.New("METHOD_NOT_ALLOWED", "Method not allowed", "", http.StatusMethodNotAllowed))
}
