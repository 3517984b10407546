package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/advisor"
	"placement-backend/internal/applications"
	"placement-backend/internal/jobs"
	"placement-backend/internal/recommendations"
	"placement-backend/internal/shared/auth"
	"placement-backend/internal/shared/config"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/server/middleware"
	"placement-backend/internal/shared/server/respond"
)

// Rate limit groups.
const (
	rateGroupDefault = "DEFAULT"
	rateGroupBrowse  = "BROWSE"
	rateGroupUpload  = "UPLOAD"
	rateGroupAI      = "AI"
)

// RouterDeps carries the handlers mounted under /api.
type RouterDeps struct {
	Config                 config.Config
	JobsHandler            *jobs.Handler
	RecommendationsHandler *recommendations.Handler
	ApplicationsHandler    *applications.Handler
	AdvisorHandler         *advisor.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: rateGroupDefault,
			GroupFor:     rateGroupFor,
			Rules: map[string]middleware.RateLimitRule{
				rateGroupDefault: {Rate: 2, Burst: 20},
				rateGroupBrowse:  {Rate: 5, Burst: 30},
				rateGroupUpload:  {Rate: 0.5, Burst: 5},
				rateGroupAI:      {Rate: 0.2, Burst: 3},
			},
		}),
	)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	registerMeRoutes(api)

	if deps.JobsHandler != nil {
		deps.JobsHandler.RegisterRoutes(api)
	}
	if deps.RecommendationsHandler != nil {
		deps.RecommendationsHandler.RegisterRoutes(api, middleware.RequireRole(auth.RoleStudent))
	}
	if deps.ApplicationsHandler != nil {
		deps.ApplicationsHandler.RegisterRoutes(api)
	}
	if deps.AdvisorHandler != nil {
		deps.AdvisorHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})
	return r
}

func rateGroupFor(c *gin.Context) string {
	path := c.FullPath()
	switch {
	case path == "/api/analyze-resume" || path == "/api/interview-prep":
		return rateGroupAI
	case c.Request.Method == http.MethodPost && (path == "/api/jobs/recommendations" || strings.HasSuffix(path, "/apply")):
		return rateGroupUpload
	case c.Request.Method == http.MethodGet:
		return rateGroupBrowse
	default:
		return rateGroupDefault
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
