package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
)

type CertificateHandler struct {
	service *service.CertificateService
}

func NewCertificateHandler(service *service.CertificateService) *CertificateHandler {
	return &CertificateHandler{service: service}
}

// ListPublic returns visible certificates by priority.
func (h *CertificateHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	certificates, err := h.service.ListVisible(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, certificates)
}

func (h *CertificateHandler) List(w http.ResponseWriter, r *http.Request) {
	certificates, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, certificates)
}

func (h *CertificateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CertificateInput
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	certificate, err := h.service.Create(r.Context(), payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, certificate)
}

func (h *CertificateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.CertificateInput
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	certificate, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, certificate)
}

func (h *CertificateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), actorFromRequest(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Certificate deleted successfully"})
}
