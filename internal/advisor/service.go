package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"placement-backend/internal/llm"
	"placement-backend/internal/resumes"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/telemetry"
)

// Actions accepted by the analyze endpoint.
const (
	ActionImprove       = "improve"
	ActionQuestions     = "questions"
	ActionRecommendJobs = "recommend_jobs"
)

// MaxFeedbackInput bounds resume text and answers sent for interview feedback.
const MaxFeedbackInput = 500

// FeedbackInput is an interview answer to critique.
type FeedbackInput struct {
	ResumeText string `json:"resume_text"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

// Service generates resume suggestions, interview questions and answer
// feedback through an LLM.
type Service struct {
	LLM llm.Client
}

// NewService constructs a Service. A nil client makes every call unavailable.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

// ValidAction reports whether action is one of the analyze actions.
func ValidAction(action string) bool {
	switch action {
	case ActionImprove, ActionQuestions, ActionRecommendJobs:
		return true
	}
	return false
}

// Improve returns up to MaxItems suggestions for the resume.
func (s *Service) Improve(ctx context.Context, doc resumes.Document) ([]string, error) {
	return s.list(ctx, ActionImprove, llm.Render(llm.PromptImprove, map[string]string{
		"resume": doc.RawText,
	}))
}

// Questions returns up to MaxItems interview questions for the resume.
func (s *Service) Questions(ctx context.Context, doc resumes.Document) ([]string, error) {
	return s.list(ctx, ActionQuestions, llm.Render(llm.PromptQuestions, map[string]string{
		"resume": doc.RawText,
	}))
}

// Feedback critiques an interview answer against the resume.
func (s *Service) Feedback(ctx context.Context, in FeedbackInput) ([]string, error) {
	in.ResumeText = truncateRunes(strings.TrimSpace(in.ResumeText), MaxFeedbackInput)
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = truncateRunes(strings.TrimSpace(in.Answer), MaxFeedbackInput)
	if in.ResumeText == "" || in.Question == "" || in.Answer == "" {
		return nil, fmt.Errorf("%w: resume_text, question and answer are required", ErrInvalidInput)
	}
	return s.list(ctx, "interview_feedback", llm.Render(llm.PromptInterviewFeedback, map[string]string{
		"resume":   in.ResumeText,
		"question": in.Question,
		"answer":   in.Answer,
	}))
}

func (s *Service) list(ctx context.Context, kind, prompt string) ([]string, error) {
	if s == nil || s.LLM == nil {
		return nil, ErrUnavailable
	}
	out, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		metrics.IncLLMFailures()
		telemetry.Warn("advisor.llm_failed", map[string]any{
			"kind":  kind,
			"error": err,
		})
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	items := ParseNumbered(out, MaxItems)
	if len(items) == 0 {
		metrics.IncLLMFailures()
		telemetry.Warn("advisor.empty_list", map[string]any{
			"kind":          kind,
			"response_size": len(out),
		})
		return nil, ErrEmptyResponse
	}
	return items, nil
}
