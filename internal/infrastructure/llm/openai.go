package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"SeoContentEngine/internal/config"
	"SeoContentEngine/internal/domain"
	"SeoContentEngine/internal/generator"
)

// OpenAIBackend generates drafts through OpenAI-compatible chat-completion
// APIs.
type OpenAIBackend struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ generator.Backend = (*OpenAIBackend)(nil)

// NewOpenAIBackend builds a backend from configuration.
func NewOpenAIBackend(cfg config.OpenAIConfig) *OpenAIBackend {
	return &OpenAIBackend{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Name identifies the backend inside the registry.
func (b *OpenAIBackend) Name() string { return "openai" }

// Generate posts the prompt pair and normalizes the model's JSON answer into
// a draft. Failures, including an expired context deadline, surface as
// domain.GenerationError so the orchestrator's retry policy can act on them.
func (b *OpenAIBackend) Generate(ctx context.Context, keyword string, contentType domain.ContentType) (domain.ContentDraft, error) {
	if b.apiKey == "" || b.endpoint == "" || b.model == "" {
		return domain.ContentDraft{}, domain.NewGenerationError("openai backend misconfigured", nil)
	}

	body, err := json.Marshal(map[string]any{
		"model":       b.model,
		"temperature": 0.7,
		"messages": []map[string]string{
			{"role": "system", "content": generator.SystemPrompt},
			{"role": "user", "content": generator.UserPrompt(keyword, contentType)},
		},
	})
	if err != nil {
		return domain.ContentDraft{}, fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.ContentDraft{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.ContentDraft{}, domain.NewGenerationError("generation deadline exceeded", err)
		}
		return domain.ContentDraft{}, domain.NewGenerationError("openai request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		reason := fmt.Sprintf("openai error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
		return domain.ContentDraft{}, domain.NewGenerationError(reason, nil)
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return domain.ContentDraft{}, domain.NewGenerationError("decode openai response", err)
	}
	if len(completion.Choices) == 0 {
		return domain.ContentDraft{}, domain.NewGenerationError("openai returned no choices", nil)
	}

	draft, err := generator.ExtractDraft(completion.Choices[0].Message.Content)
	if err != nil {
		return domain.ContentDraft{}, domain.NewGenerationError("unusable model output", err)
	}
	return draft, nil
}
