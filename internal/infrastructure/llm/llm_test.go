package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SeoContentEngine/internal/config"
	"SeoContentEngine/internal/domain"
)

func TestStubBackendDeterministic(t *testing.T) {
	t.Parallel()

	backend := NewStubBackend()

	first, err := backend.Generate(context.Background(), "coffee", domain.ContentTypeArticle)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, _ := backend.Generate(context.Background(), "coffee", domain.ContentTypeArticle)
	if first != second {
		t.Fatal("stub output must be deterministic")
	}

	if !strings.HasPrefix(first.Title, "Coffee") {
		t.Fatalf("keyword should be capitalized in the title: %q", first.Title)
	}
	if !strings.Contains(first.Body, "\n\n") {
		t.Fatal("stub body should contain paragraph breaks")
	}

	product, _ := backend.Generate(context.Background(), "coffee", domain.ContentTypeProduct)
	if !strings.Contains(product.Title, "product overview") {
		t.Fatalf("product drafts use the product template: %q", product.Title)
	}
}

func TestOpenAIBackendGenerate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "test-model" || len(req.Messages) != 2 {
			t.Errorf("unexpected request: %+v", req)
		}

		answer := `{"标题": "Coffee guide", "meta描述": "Beans to cup.", "正文": "Brew well."}`
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": answer}},
			},
		})
	}))
	defer server.Close()

	backend := NewOpenAIBackend(config.OpenAIConfig{
		Endpoint: server.URL,
		Model:    "test-model",
		APIKey:   "test-key",
	})

	draft, err := backend.Generate(context.Background(), "coffee", domain.ContentTypeArticle)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if draft.Title != "Coffee guide" || draft.Body != "Brew well." {
		t.Fatalf("unexpected draft: %+v", draft)
	}
}

func TestOpenAIBackendErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	backend := NewOpenAIBackend(config.OpenAIConfig{
		Endpoint: server.URL,
		Model:    "test-model",
		APIKey:   "test-key",
	})

	_, err := backend.Generate(context.Background(), "coffee", domain.ContentTypeArticle)
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !strings.Contains(genErr.Reason, "rate limited") {
		t.Fatalf("reason should carry the upstream payload: %q", genErr.Reason)
	}
}

func TestOpenAIBackendDeadline(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	backend := NewOpenAIBackend(config.OpenAIConfig{
		Endpoint: server.URL,
		Model:    "test-model",
		APIKey:   "test-key",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := backend.Generate(ctx, "coffee", domain.ContentTypeArticle)
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Reason != "generation deadline exceeded" {
		t.Fatalf("reason = %q", genErr.Reason)
	}
}

func TestOpenAIBackendMisconfigured(t *testing.T) {
	t.Parallel()

	backend := NewOpenAIBackend(config.OpenAIConfig{})
	if _, err := backend.Generate(context.Background(), "coffee", domain.ContentTypeArticle); err == nil {
		t.Fatal("expected error without credentials")
	}
}

func TestInferenceBackendGenerate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Errorf("path = %q", r.URL.Path)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["keyword"] != "coffee" || req["type"] != "article" {
			t.Errorf("unexpected request: %v", req)
		}

		json.NewEncoder(w).Encode(map[string]string{
			"title":            "Coffee guide",
			"meta_description": "Beans to cup.",
			"body":             "Brew well.",
		})
	}))
	defer server.Close()

	backend := NewInferenceBackend(config.InferenceConfig{URL: server.URL})

	draft, err := backend.Generate(context.Background(), "coffee", domain.ContentTypeArticle)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if draft.MetaDescription != "Beans to cup." {
		t.Fatalf("unexpected draft: %+v", draft)
	}
}

func TestInferenceBackendIncompleteDraft(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"title": "only a title"})
	}))
	defer server.Close()

	backend := NewInferenceBackend(config.InferenceConfig{URL: server.URL})

	_, err := backend.Generate(context.Background(), "coffee", domain.ContentTypeArticle)
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
}
