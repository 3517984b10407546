package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	id := middleware.IdentityFromContext(c)
	if id.IsZero() {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	response := gin.H{
		"userId": id.UserID,
		"role":   id.Role,
	}
	if id.Email != "" {
		response["email"] = id.Email
	}
	if id.Name != "" {
		response["name"] = id.Name
	}
	if id.HRCode != "" {
		response["hrCode"] = id.HRCode
	}

	respond.JSON(c, http.StatusOK, response)
}
