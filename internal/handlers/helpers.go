package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
)

// actorOrAbort reads the authenticated actor; handlers sit behind
// AuthMiddleware so a miss means the route was wired wrong.
func actorOrAbort(c *gin.Context) (identity.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		httperr.Unauthorized(c, "missing_actor", "Authentication required.")
		return identity.Actor{}, false
	}
	return actor, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Invalid identifier.")
		return uuid.Nil, false
	}
	return id, true
}

func requiredQuery(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		httperr.BadRequest(c, name+"_required", "Query parameter "+name+" is required.")
		return "", false
	}
	return v, true
}
