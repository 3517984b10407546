package advisor

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/jobs"
	"placement-backend/internal/recommendations"
	"placement-backend/internal/resumes"
	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
)

// Handler serves the AI feedback endpoints.
type Handler struct {
	Svc             *Service
	Normalizer      *resumes.Normalizer
	Recommendations *recommendations.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, normalizer *resumes.Normalizer, recs *recommendations.Service) *Handler {
	return &Handler{Svc: svc, Normalizer: normalizer, Recommendations: recs}
}

// RegisterRoutes attaches advisor routes. Any authenticated role may call them.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-resume", h.analyze)
	rg.POST("/interview-prep", h.interviewPrep)
}

type improveResponse struct {
	Improvements []string `json:"improvements"`
}

type questionsResponse struct {
	Questions []string `json:"questions"`
}

type feedbackResponse struct {
	Result []string `json:"result"`
}

func (h *Handler) analyze(c *gin.Context) {
	up, err := resumes.ReadUpload(c, "resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	action := c.PostForm("action")
	if !ValidAction(action) {
		respond.Error(c, http.StatusBadRequest, "validation_error", ErrInvalidAction.Error(), map[string]any{
			"allowed": []string{ActionImprove, ActionQuestions, ActionRecommendJobs},
		})
		return
	}
	doc, err := h.Normalizer.Normalize(c.Request.Context(), up.FileName, up.MimeType, up.Data)
	if err != nil {
		resumes.WriteError(c, err)
		return
	}

	ctx := c.Request.Context()
	switch action {
	case ActionImprove:
		items, err := h.Svc.Improve(ctx, doc)
		if err != nil {
			writeError(c, err)
			return
		}
		respond.OK(c, improveResponse{Improvements: items})
	case ActionQuestions:
		items, err := h.Svc.Questions(ctx, doc)
		if err != nil {
			writeError(c, err)
			return
		}
		respond.OK(c, questionsResponse{Questions: items})
	case ActionRecommendJobs:
		h.recommend(c, doc)
	}
}

func (h *Handler) recommend(c *gin.Context, doc resumes.Document) {
	if h.Recommendations == nil {
		respond.Error(c, http.StatusServiceUnavailable, CodeBackendUnavailable, "recommendations unavailable", nil)
		return
	}
	opts, warnings := recommendations.ParseOptions(c.PostForm("min_score"), c.PostForm("limit"), h.Recommendations.Defaults)
	filter, filterWarnings := jobs.ParseFilter(c.PostForm("salary_min"), c.PostForm("salary_max"), c.PostForm("location"))

	result, err := h.Recommendations.Recommend(c.Request.Context(), middleware.IdentityFromContext(c), doc, filter, opts)
	if err != nil {
		writeError(c, err)
		return
	}
	result.Warnings = append(append(warnings, filterWarnings...), result.Warnings...)
	respond.OK(c, result)
}

func (h *Handler) interviewPrep(c *gin.Context) {
	var req FeedbackInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}
	items, err := h.Svc.Feedback(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, feedbackResponse{Result: items})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrUnavailable), errors.Is(err, ErrEmptyResponse):
		respond.Error(c, http.StatusServiceUnavailable, CodeBackendUnavailable, "AI feedback is temporarily unavailable", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "request_cancelled", "request cancelled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process request", nil)
	}
}
