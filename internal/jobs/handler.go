package jobs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
)

// Handler serves the job catalog.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
}

type listResponse struct {
	Jobs     []Posting `json:"jobs"`
	Total    int       `json:"total"`
	Warnings []string  `json:"warnings,omitempty"`
}

func (h *Handler) list(c *gin.Context) {
	id := middleware.IdentityFromContext(c)
	filter, warnings := ParseFilter(c.Query("salary_min"), c.Query("salary_max"), c.Query("location"))

	postings, err := h.Svc.Browse(c.Request.Context(), id, filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}
	if postings == nil {
		postings = []Posting{}
	}
	respond.JSON(c, http.StatusOK, listResponse{Jobs: postings, Total: len(postings), Warnings: warnings})
}
