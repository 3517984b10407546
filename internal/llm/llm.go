package llm

import (
	"context"
	"errors"
)

// Client abstracts text-generation providers used by the advisor endpoints.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no provider is wired.
var ErrNotConfigured = errors.New("llm provider not configured")
