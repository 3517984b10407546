package jobs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-backend/internal/shared/auth"
	"placement-backend/internal/shared/server/middleware"
)

func newTestRouter(repo Repo, id auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, id)
		c.Next()
	})
	NewHandler(NewService(repo)).RegisterRoutes(api)
	return r
}

func TestListJobsScopesHRToOwnCode(t *testing.T) {
	now := time.Now().UTC()
	repo := NewMemoryRepo(
		Posting{ID: "j1", HRCode: "ACME", Location: "Pune", CreatedAt: now},
		Posting{ID: "j2", HRCode: "GLOBEX", Location: "Pune", CreatedAt: now},
	)

	hr := auth.Identity{UserID: "hr-1", Role: auth.RoleHR, HRCode: "ACME"}
	resp := httptest.NewRecorder()
	newTestRouter(repo, hr).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var body listResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"j1"}, ids(body.Jobs))

	student := auth.Identity{UserID: "s-1", Role: auth.RoleStudent}
	resp = httptest.NewRecorder()
	newTestRouter(repo, student).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Total)
}

func TestListJobsReportsFilterWarnings(t *testing.T) {
	repo := NewMemoryRepo(Posting{ID: "j1", Location: "Remote"})
	student := auth.Identity{UserID: "s-1", Role: auth.RoleStudent}

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/jobs?salary_min=lots&location=remote", nil)
	newTestRouter(repo, student).ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var body listResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"j1"}, ids(body.Jobs))
	require.Len(t, body.Warnings, 1)
	assert.Contains(t, body.Warnings[0], "salary_min")
}
