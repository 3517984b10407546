package recommendations

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/jobs"
	"placement-backend/internal/resumes"
	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
)

// Handler serves job recommendations.
type Handler struct {
	Svc        *Service
	Normalizer *resumes.Normalizer
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, normalizer *resumes.Normalizer) *Handler {
	return &Handler{Svc: svc, Normalizer: normalizer}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	rg.POST("/jobs/recommendations", append(mw, h.recommend)...)
}

func (h *Handler) recommend(c *gin.Context) {
	doc, _, ok := resumes.NormalizeUpload(c, h.Normalizer, "resume")
	if !ok {
		return
	}
	opts, warnings := ParseOptions(formOrQuery(c, "min_score"), formOrQuery(c, "limit"), h.Svc.Defaults)
	filter, filterWarnings := jobs.ParseFilter(formOrQuery(c, "salary_min"), formOrQuery(c, "salary_max"), formOrQuery(c, "location"))

	result, err := h.Svc.Recommend(c.Request.Context(), middleware.IdentityFromContext(c), doc, filter, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			respond.Error(c, http.StatusRequestTimeout, "request_cancelled", "request cancelled", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process recommendations", nil)
		return
	}
	result.Warnings = append(append(warnings, filterWarnings...), result.Warnings...)
	respond.JSON(c, http.StatusOK, result)
}

// formOrQuery prefers the multipart field and falls back to the query string.
func formOrQuery(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}
