package advisor

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-backend/internal/jobs"
	"placement-backend/internal/matching"
	"placement-backend/internal/recommendations"
	"placement-backend/internal/resumes"
	"placement-backend/internal/resumes/resumestest"
	"placement-backend/internal/shared/auth"
	"placement-backend/internal/shared/server/middleware"
)

func newRouter(client *fakeLLM) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, auth.Identity{UserID: "s-1", Role: auth.RoleStudent})
		c.Next()
	})

	repo := jobs.NewMemoryRepo(jobs.Posting{
		ID:           "django",
		Position:     "Backend Developer",
		Requirements: "3+ years Python/Django, PostgreSQL, REST APIs",
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	recs := recommendations.NewService(jobs.NewService(repo), matching.NewRanker(nil, 0, 2), recommendations.Options{})

	svc := NewService(nil)
	if client != nil {
		svc = NewService(client)
	}
	NewHandler(svc, &resumes.Normalizer{}, recs).RegisterRoutes(api)
	return r
}

func postAnalyze(t *testing.T, router *gin.Engine, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := resumestest.Multipart(t, "resume", "cv.docx", resumestest.Docx(t, sampleResume), fields)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-resume", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeImprove(t *testing.T) {
	resp := postAnalyze(t, newRouter(&fakeLLM{reply: fiveItems}), map[string]string{"action": "improve"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out improveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Improvements, MaxItems)
}

func TestAnalyzeQuestions(t *testing.T) {
	resp := postAnalyze(t, newRouter(&fakeLLM{reply: "1. Why Go?\n2. Why Django?"}), map[string]string{"action": "questions"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out questionsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, []string{"Why Go?", "Why Django?"}, out.Questions)
}

func TestAnalyzeRecommendJobsDoesNotNeedLLM(t *testing.T) {
	resp := postAnalyze(t, newRouter(nil), map[string]string{"action": "recommend_jobs", "min_score": "0"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out recommendations.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Jobs, 1)
	assert.Equal(t, "django", out.Jobs[0].ID)
	assert.Contains(t, out.Warnings, matching.WarningSemanticUnavailable)
}

func TestAnalyzeRejectsUnknownAction(t *testing.T) {
	resp := postAnalyze(t, newRouter(&fakeLLM{reply: fiveItems}), map[string]string{"action": "summarize"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), `"code":"validation_error"`)
}

func TestAnalyzeBackendUnavailable(t *testing.T) {
	resp := postAnalyze(t, newRouter(nil), map[string]string{"action": "improve"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), `"code":"backend_unavailable"`)
}

func TestInterviewPrep(t *testing.T) {
	router := newRouter(&fakeLLM{reply: "1. Mention the Django project\n2) Use STAR"})
	payload, _ := json.Marshal(FeedbackInput{ResumeText: sampleResume, Question: "Tell me about a project", Answer: "I built an API"})

	req := httptest.NewRequest(http.MethodPost, "/api/interview-prep", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out feedbackResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, []string{"Mention the Django project", "Use STAR"}, out.Result)
}

func TestInterviewPrepValidation(t *testing.T) {
	router := newRouter(&fakeLLM{reply: fiveItems})

	req := httptest.NewRequest(http.MethodPost, "/api/interview-prep", bytes.NewReader([]byte(`{"question":"q"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/interview-prep", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
