package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"portfolio-api/internal/model"
	"portfolio-api/internal/service"
)

type SkillHandler struct {
	service *service.SkillService
}

func NewSkillHandler(service *service.SkillService) *SkillHandler {
	return &SkillHandler{service: service}
}

// ListPublic returns visible skills by display order.
func (h *SkillHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	skills, err := h.service.ListVisible(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (h *SkillHandler) List(w http.ResponseWriter, r *http.Request) {
	skills, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (h *SkillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.SkillInput
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	skill, err := h.service.Create(r.Context(), payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, skill)
}

func (h *SkillHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.SkillInput
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	skill, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, skill)
}

func (h *SkillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), actorFromRequest(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Skill deleted successfully"})
}
