package handler

import (
	"net/http"

	"portfolio-api/internal/middleware"
	"portfolio-api/internal/model"
)

func actorFromRequest(r *http.Request) model.AuditActor {
	actor := model.AuditActor{IP: middleware.ClientIP(r)}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return actor
	}

	actor.Username = identity.Username
	actor.Role = string(identity.Role)
	return actor
}
