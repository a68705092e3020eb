package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"SeoContentEngine/internal/domain"
	"SeoContentEngine/internal/infrastructure/storage"
	"SeoContentEngine/internal/usecase"
)

type generatorFunc func(context.Context, string, domain.ContentType) (domain.ContentDraft, error)

func (f generatorFunc) Generate(ctx context.Context, keyword string, ct domain.ContentType) (domain.ContentDraft, error) {
	return f(ctx, keyword, ct)
}

func stubDraft(keyword string) domain.ContentDraft {
	return domain.ContentDraft{
		Title:           "A complete guide to " + keyword,
		MetaDescription: "Everything worth knowing about " + keyword + " in one practical walkthrough.",
		Body:            "This text covers " + keyword + " end to end. Short sentences keep it readable. Enjoy.",
	}
}

func okGenerator(_ context.Context, keyword string, _ domain.ContentType) (domain.ContentDraft, error) {
	return stubDraft(keyword), nil
}

func newTestServer(t *testing.T, gen generatorFunc) (*gin.Engine, *storage.MemoryRepository) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := storage.NewMemoryRepository()
	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Generator:  gen,
		Repository: repo,
		MaxRetries: 0,
		Logger:     logger,
	})
	orchestrator := usecase.NewOrchestrator(usecase.OrchestratorDeps{
		Pipeline: pipeline,
		Workers:  2,
		Logger:   logger,
	})
	handler := NewHandler(orchestrator, pipeline, repo, logger)
	return NewRouter(handler, logger), repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	router, _ := newTestServer(t, okGenerator)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateEndpoint(t *testing.T) {
	router, repo := newTestServer(t, okGenerator)

	rec := doJSON(t, router, http.MethodPost, "/api/generate",
		map[string]any{"keywords": "coffee", "type": "article"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	require.Equal(t, true, body["success"])
	require.NotEmpty(t, body["content_id"])

	content := body["content"].(map[string]any)
	require.Contains(t, content["标题"], "coffee")
	require.NotEmpty(t, content["正文"])

	validation := body["validation"].(map[string]any)
	require.Contains(t, validation, "keyword_density")
	score := validation["seo_score"].(map[string]any)
	require.Contains(t, score, "total_score")

	// The generated record is persisted.
	saved, err := repo.GetByID(context.Background(), body["content_id"].(string))
	require.NoError(t, err)
	require.Equal(t, "coffee", saved.Keywords)
}

func TestGenerateEndpointRejectsMissingKeywords(t *testing.T) {
	router, _ := newTestServer(t, okGenerator)

	rec := doJSON(t, router, http.MethodPost, "/api/generate", map[string]any{"type": "article"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateEndpointBackendFailure(t *testing.T) {
	router, _ := newTestServer(t, func(context.Context, string, domain.ContentType) (domain.ContentDraft, error) {
		return domain.ContentDraft{}, domain.NewGenerationError("model unavailable", nil)
	})

	rec := doJSON(t, router, http.MethodPost, "/api/generate", map[string]any{"keywords": "coffee"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, decode(t, rec)["error"], "model unavailable")
}

func TestValidateEndpoint(t *testing.T) {
	router, _ := newTestServer(t, okGenerator)

	rec := doJSON(t, router, http.MethodPost, "/api/validate", map[string]any{
		"keywords": "coffee",
		"content":  "<h1>Coffee brewing basics</h1><p>Coffee rewards patience. Grind fresh. Pour slowly.</p>",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	validation := body["validation"].(map[string]any)
	density := validation["keyword_density"].(map[string]any)
	require.Contains(t, density, "status")
	require.Contains(t, validation, "readability")
}

func TestValidateEndpointRequiresContent(t *testing.T) {
	router, _ := newTestServer(t, okGenerator)

	rec := doJSON(t, router, http.MethodPost, "/api/validate", map[string]any{"keywords": "coffee"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatchGenerateEndpoint(t *testing.T) {
	router, _ := newTestServer(t, func(_ context.Context, keyword string, _ domain.ContentType) (domain.ContentDraft, error) {
		if keyword == "broken" {
			return domain.ContentDraft{}, domain.NewGenerationError("model unavailable", nil)
		}
		return stubDraft(keyword), nil
	})

	rec := doJSON(t, router, http.MethodPost, "/api/batch/generate",
		map[string]any{"keywords_list": []string{"coffee", "broken", "tea"}})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	results := body["results"].([]any)
	require.Len(t, results, 3)

	first := results[0].(map[string]any)
	require.Equal(t, "coffee", first["keyword"])
	require.Equal(t, "succeeded", first["state"])

	second := results[1].(map[string]any)
	require.Equal(t, "failed", second["state"])
	require.Equal(t, "model unavailable", second["error"])
}

func TestBatchGenerateEndpointEmptyList(t *testing.T) {
	router, _ := newTestServer(t, okGenerator)

	rec := doJSON(t, router, http.MethodPost, "/api/batch/generate",
		map[string]any{"keywords_list": []string{}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatchJobLifecycle(t *testing.T) {
	router, _ := newTestServer(t, okGenerator)

	rec := doJSON(t, router, http.MethodPost, "/api/batch/jobs",
		map[string]any{"keywords_list": []string{"coffee", "tea"}})
	require.Equal(t, http.StatusAccepted, rec.Code)

	jobID := decode(t, rec)["job_id"].(string)
	require.NotEmpty(t, jobID)

	deadline := time.Now().Add(5 * time.Second)
	for {
		rec = doJSON(t, router, http.MethodGet, "/api/batch/jobs/"+jobID, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		if body["done"] == true {
			require.EqualValues(t, 2, body["total"])
			require.EqualValues(t, 2, body["completed"])
			break
		}
		require.True(t, time.Now().Before(deadline), "job did not complete in time")
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBatchJobNotFound(t *testing.T) {
	router, _ := newTestServer(t, okGenerator)

	rec := doJSON(t, router, http.MethodGet, "/api/batch/jobs/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/batch/jobs/missing/cancel", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportEndpoint(t *testing.T) {
	router, repo := newTestServer(t, okGenerator)

	content := domain.ValidatedContent{
		ID:          "export-1",
		Keywords:    "coffee",
		ContentType: domain.ContentTypeArticle,
		Draft:       stubDraft("coffee"),
		Validation:  domain.ValidationReport{SeoScore: domain.SeoScore{TotalScore: 80}},
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, repo.Save(context.Background(), content))

	rec := doJSON(t, router, http.MethodPost, "/api/batch/export",
		map[string]any{"content_ids": []string{"export-1"}, "format": "csv"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	disposition := rec.Header().Get("Content-Disposition")
	require.Contains(t, disposition, "attachment")
	require.Contains(t, disposition, "seo_contents_")
	require.True(t, strings.HasPrefix(rec.Body.String(), "keywords,title,seo_score,status"))
}

func TestExportEndpointErrors(t *testing.T) {
	router, _ := newTestServer(t, okGenerator)

	rec := doJSON(t, router, http.MethodPost, "/api/batch/export",
		map[string]any{"content_ids": []string{"a"}, "format": "xml"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/batch/export",
		map[string]any{"content_ids": []string{"unknown"}, "format": "csv"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContentLifecycleEndpoints(t *testing.T) {
	router, _ := newTestServer(t, okGenerator)

	rec := doJSON(t, router, http.MethodPost, "/api/generate", map[string]any{"keywords": "coffee"})
	require.Equal(t, http.StatusOK, rec.Code)
	contentID := decode(t, rec)["content_id"].(string)

	rec = doJSON(t, router, http.MethodGet, "/api/content/"+contentID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	record := decode(t, rec)["content"].(map[string]any)
	require.Equal(t, "coffee", record["keywords"])

	rec = doJSON(t, router, http.MethodGet, "/api/content/search?keywords=coffee", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	search := decode(t, rec)
	require.EqualValues(t, 1, search["total"])

	rec = doJSON(t, router, http.MethodDelete, "/api/content/"+contentID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/content/"+contentID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyticsStatsEndpoint(t *testing.T) {
	router, repo := newTestServer(t, okGenerator)

	require.NoError(t, repo.Save(context.Background(), domain.ValidatedContent{
		ID:          "stats-1",
		Keywords:    "coffee",
		ContentType: domain.ContentTypeArticle,
		Draft:       stubDraft("coffee"),
		Validation:  domain.ValidationReport{SeoScore: domain.SeoScore{TotalScore: 85}},
		CreatedAt:   time.Now().UTC().Add(-time.Hour),
	}))

	rec := doJSON(t, router, http.MethodGet, "/api/analytics/stats?days=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decode(t, rec)["stats"].(map[string]any)
	require.EqualValues(t, 1, stats["total_content"])
	require.EqualValues(t, 85, stats["average_seo_score"])

	distribution := stats["score_distribution"].(map[string]any)
	require.EqualValues(t, 1, distribution["80-100"])
}
