package applications

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/jobs"
	"placement-backend/internal/resumes"
	"placement-backend/internal/shared/auth"
	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches application routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	staff := middleware.RequireRole(auth.RoleHR, auth.RoleTPO)

	rg.POST("/jobs/:id/apply", middleware.RequireRole(auth.RoleStudent), h.apply)
	rg.GET("/jobs/:id/applications", staff, h.list)
	rg.POST("/jobs/:id/applications/rescore", staff, h.rescore)
	rg.GET("/applications/:id/resume", staff, h.downloadResume)
	rg.PATCH("/applications/:id/status", staff, h.updateStatus)
	rg.DELETE("/applications/rejected", middleware.RequireRole(auth.RoleHR), h.removeRejected)
}

func (h *Handler) apply(c *gin.Context) {
	c.Set("jobId", c.Param("id"))
	up, err := resumes.ReadUpload(c, "resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	id := middleware.IdentityFromContext(c)
	app, err := h.Svc.Apply(c.Request.Context(), id, c.Param("id"), up.FileName, up.MimeType, up.Data)
	if err != nil {
		if errors.Is(err, resumes.ErrUnsupportedFormat) || errors.Is(err, resumes.ErrParse) {
			resumes.WriteError(c, err)
			return
		}
		writeError(c, err)
		return
	}
	c.Set("applicationId", app.ID)
	respond.JSON(c, http.StatusCreated, applyResponse{
		Message:     "Application submitted",
		Application: toView(app, app.Scores, ""),
	})
}

func (h *Handler) list(c *gin.Context) {
	c.Set("jobId", c.Param("id"))
	out, err := h.Svc.ListForJob(c.Request.Context(), middleware.IdentityFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	views := make([]applicationView, 0, len(out.Applications))
	for _, r := range out.Applications {
		views = append(views, toView(r.Application, r.Scores, r.Error))
	}
	respond.OK(c, listResponse{Applications: views, Total: len(views), Warnings: out.Warnings})
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "status is required", nil)
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	app, err := h.Svc.UpdateStatus(c.Request.Context(), middleware.IdentityFromContext(c), c.Param("id"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("applicationId", app.ID)
	c.Set("statusTransition", "pending->"+status)
	respond.OK(c, statusResponse{Message: "Status updated", Application: toView(app, app.Scores, "")})
}

func (h *Handler) downloadResume(c *gin.Context) {
	c.Set("applicationId", c.Param("id"))
	file, err := h.Svc.OpenResume(c.Request.Context(), middleware.IdentityFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Body.Close()

	contentType := "application/octet-stream"
	switch strings.ToLower(path.Ext(file.FileName)) {
	case ".pdf":
		contentType = "application/pdf"
	case ".docx":
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.FileName}))
	c.DataFromReader(http.StatusOK, -1, contentType, file.Body, nil)
}

func (h *Handler) removeRejected(c *gin.Context) {
	n, err := h.Svc.RemoveRejected(c.Request.Context(), middleware.IdentityFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, removeResponse{
		Message: fmt.Sprintf("Successfully deleted %d rejected applications", n),
		Deleted: n,
	})
}

func (h *Handler) rescore(c *gin.Context) {
	c.Set("jobId", c.Param("id"))
	out, err := h.Svc.RequestRescore(c.Request.Context(), middleware.IdentityFromContext(c), c.Param("id"), c.GetString("requestId"))
	if err != nil {
		writeError(c, err)
		return
	}
	status := http.StatusOK
	if out.Queued {
		status = http.StatusAccepted
	}
	respond.JSON(c, status, rescoreResponse{Queued: out.Queued, Rescored: out.Rescored})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrResumeNotStored):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrMissingHRCode):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "request_cancelled", "request cancelled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process application", nil)
	}
}
