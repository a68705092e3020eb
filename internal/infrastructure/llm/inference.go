package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"SeoContentEngine/internal/config"
	"SeoContentEngine/internal/domain"
	"SeoContentEngine/internal/generator"
)

// InferenceBackend talks to a self-hosted generation service exposing a plain
// JSON endpoint.
type InferenceBackend struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ generator.Backend = (*InferenceBackend)(nil)

// NewInferenceBackend creates a reusable HTTP client.
func NewInferenceBackend(cfg config.InferenceConfig) *InferenceBackend {
	return &InferenceBackend{
		endpoint: cfg.URL,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

// Name identifies the backend inside the registry.
func (b *InferenceBackend) Name() string { return "inference" }

// Generate sends the keyword for draft generation.
func (b *InferenceBackend) Generate(ctx context.Context, keyword string, contentType domain.ContentType) (domain.ContentDraft, error) {
	if b.endpoint == "" {
		return domain.ContentDraft{}, domain.NewGenerationError("inference backend misconfigured", nil)
	}

	payload := map[string]any{
		"keyword": keyword,
		"type":    string(contentType),
	}

	var resp struct {
		Title           string `json:"title"`
		MetaDescription string `json:"meta_description"`
		Body            string `json:"body"`
	}
	if err := b.post(ctx, "/generate", payload, &resp); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.ContentDraft{}, domain.NewGenerationError("generation deadline exceeded", err)
		}
		return domain.ContentDraft{}, domain.NewGenerationError("inference request failed", err)
	}

	draft := domain.ContentDraft{
		Title:           resp.Title,
		MetaDescription: resp.MetaDescription,
		Body:            resp.Body,
	}
	if draft.Title == "" || draft.MetaDescription == "" || draft.Body == "" {
		return domain.ContentDraft{}, domain.NewGenerationError("inference service returned incomplete draft", nil)
	}
	return draft, nil
}

func (b *InferenceBackend) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
