package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	errs  []error
	calls int
}

func (s *scriptedClient) Complete(ctx context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return "ok:" + prompt, nil
}

func newRetrying(base Client) retrying {
	return retrying{base: base, delay: time.Millisecond}
}

func TestRetryOnceOnTransientError(t *testing.T) {
	base := &scriptedClient{errs: []error{errors.New("openai http status 503: overloaded")}}

	out, err := newRetrying(base).Complete(t.Context(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok:p", out)
	assert.Equal(t, 2, base.calls)
}

func TestRetryGivesUpAfterSecondFailure(t *testing.T) {
	transient := fmt.Errorf("wrapped: %w", context.DeadlineExceeded)
	base := &scriptedClient{errs: []error{transient, transient}}

	_, err := newRetrying(base).Complete(t.Context(), "p")
	require.Error(t, err)
	assert.Equal(t, 2, base.calls)
}

func TestNoRetryOnPermanentError(t *testing.T) {
	base := &scriptedClient{errs: []error{errors.New("openai http status 400: bad request")}}

	_, err := newRetrying(base).Complete(t.Context(), "p")
	require.Error(t, err)
	assert.Equal(t, 1, base.calls)
}

func TestWithRetryNil(t *testing.T) {
	assert.Nil(t, WithRetry(nil))
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "not configured", err: ErrNotConfigured, want: false},
		{name: "5xx", err: errors.New("gemini generate content: http status 500 INTERNAL"), want: true},
		{name: "reset", err: errors.New("read: connection reset by peer"), want: true},
		{name: "unexpected eof", err: errors.New("unexpected EOF"), want: true},
		{name: "4xx", err: errors.New("http status 401"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRetry(tt.err))
		})
	}
}

func TestRenderFillsPlaceholders(t *testing.T) {
	out := Render(PromptInterviewFeedback, map[string]string{
		"resume":   "Go developer",
		"question": "Why Go?",
		"answer":   "Concurrency",
	})
	assert.Contains(t, out, "Go developer")
	assert.Contains(t, out, `"Why Go?"`)
	assert.Contains(t, out, `"Concurrency"`)
	assert.NotContains(t, out, "{{")

	assert.Empty(t, Render("missing", nil))
}
