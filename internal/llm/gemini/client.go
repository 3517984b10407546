package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"google.golang.org/genai"

	"placement-backend/internal/llm"
)

const (
	DefaultModel          = "gemini-2.5-flash"
	DefaultEmbeddingModel = "text-embedding-004"

	// maxEmbedChars keeps embedding input under the model's token limit.
	maxEmbedChars   = 40000
	maxOutputTokens = 1024
	temperature     = float32(0.7)
)

type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Client wraps the Google GenAI client for text completion and embeddings.
type Client struct {
	models     models
	model      string
	embedModel string
}

// NewClient creates a Client configured for the Gemini API backend. Empty
// model names fall back to the defaults.
func NewClient(ctx context.Context, apiKey, model, embedModel string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is required", llm.ErrNotConfigured)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newClient(client.Models, model, embedModel), nil
}

func newClient(m models, model, embedModel string) *Client {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	if embedModel = strings.TrimSpace(embedModel); embedModel == "" {
		embedModel = DefaultEmbeddingModel
	}
	return &Client{models: m, model: model, embedModel: embedModel}
}

// Complete sends prompt to Gemini and joins the text parts of the response.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}
	temp := temperature
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(llm.SystemPrompt, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   maxOutputTokens,
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", wrapError("generate content", err)
	}
	if resp == nil {
		return "", errors.New("gemini api returned nil response")
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return out, nil
}

// Embed returns the embedding vector for text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	text = truncateUTF8(text, maxEmbedChars)
	resp, err := c.models.EmbedContent(ctx, c.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, wrapError("embed content", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, errors.New("gemini api returned empty embedding")
	}
	return resp.Embeddings[0].Values, nil
}

// truncateUTF8 cuts text to at most n bytes without splitting a rune.
func truncateUTF8(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}

// Model reports the generation model name.
func (c *Client) Model() string { return c.model }

// EmbeddingModel reports the embedding model name, used in cache keys.
func (c *Client) EmbeddingModel() string { return c.embedModel }

// wrapError keeps the API status visible to llm.ShouldRetry.
func wrapError(op string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("gemini %s: http status %d %s: %w", op, apiErr.Code, apiErr.Status, err)
	}
	return fmt.Errorf("gemini %s: %w", op, err)
}

var _ llm.Client = (*Client)(nil)
