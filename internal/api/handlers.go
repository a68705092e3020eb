package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"SeoContentEngine/internal/analytics"
	"SeoContentEngine/internal/domain"
	"SeoContentEngine/internal/export"
	"SeoContentEngine/internal/ports"
	"SeoContentEngine/internal/seo"
	"SeoContentEngine/internal/usecase"
)

const (
	defaultPageSize  = 10
	syncBatchTimeout = 10 * time.Minute
)

// Handler holds HTTP request handlers.
type Handler struct {
	orchestrator *usecase.Orchestrator
	pipeline     *usecase.Pipeline
	repository   ports.ContentRepository
	logger       *slog.Logger
}

// NewHandler creates a new handler instance.
func NewHandler(orchestrator *usecase.Orchestrator, pipeline *usecase.Pipeline, repository ports.ContentRepository, logger *slog.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		pipeline:     pipeline,
		repository:   repository,
		logger:       logger,
	}
}

// Generate produces, validates and persists a single content item.
func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	contentType := domain.ParseContentType(req.Type)
	content, err := h.pipeline.ProcessKeyword(c.Request.Context(), strings.TrimSpace(req.Keywords), contentType)
	if err != nil {
		h.logger.Error("generate failed", "keywords", req.Keywords, "error", err)
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	draft := toLocalizedDraft(content.Draft)
	validation := content.Validation
	c.JSON(http.StatusOK, generateResponse{
		Success:    true,
		Content:    &draft,
		Validation: &validation,
		ContentID:  content.ID,
	})
}

// Validate scores standalone content pasted by the user. Markup is stripped
// before scoring; title and meta description fall back to derived values when
// the caller sends only a body.
func (h *Handler) Validate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	body := seo.ExtractText(req.Content)
	draft := domain.ContentDraft{
		Title:           strings.TrimSpace(req.Title),
		MetaDescription: strings.TrimSpace(req.MetaDescription),
		Body:            body,
	}
	if draft.Title == "" {
		draft.Title = firstLine(body)
	}
	if draft.MetaDescription == "" {
		draft.MetaDescription = excerpt(body, 160)
	}

	report, err := seo.Validate(draft, seo.SplitKeywords(req.Keywords), domain.ParseContentType(req.Type))
	if err != nil {
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, validateResponse{Success: true, Validation: &report})
}

// BatchGenerate runs a batch synchronously and returns per-item results in
// submission order. Intended for modest batch sizes; larger batches should
// use the job endpoints.
func (h *Handler) BatchGenerate(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	jobID, err := h.orchestrator.SubmitBatch(req.KeywordsList, domain.ParseContentType(req.Type))
	if err != nil {
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	ctx, cancel := withTimeout(c, syncBatchTimeout)
	defer cancel()

	snapshot, err := h.orchestrator.WaitSync(ctx, jobID)
	if err != nil {
		h.logger.Warn("synchronous batch timed out", "job_id", jobID, "error", err)
		c.JSON(http.StatusGatewayTimeout, errorResponse{Error: "batch did not complete in time; poll job " + jobID})
		return
	}

	c.JSON(http.StatusOK, batchResponse{
		Success: true,
		Results: batchItemsFromProgress(snapshot.Items),
	})
}

// SubmitBatchJob creates an asynchronous batch job and returns its id.
func (h *Handler) SubmitBatchJob(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	jobID, err := h.orchestrator.SubmitBatch(req.KeywordsList, domain.ParseContentType(req.Type))
	if err != nil {
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, jobResponse{Success: true, JobID: jobID})
}

// JobProgress returns a non-blocking snapshot of a batch job.
func (h *Handler) JobProgress(c *gin.Context) {
	snapshot, err := h.orchestrator.Progress(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, progressResponse{
		Success:   true,
		JobID:     snapshot.JobID,
		Total:     snapshot.Total,
		Completed: snapshot.Completed,
		Done:      snapshot.Done,
		Items:     batchItemsFromProgress(snapshot.Items),
	})
}

// CancelJob fails all pending items of a job; running items finish naturally.
func (h *Handler) CancelJob(c *gin.Context) {
	if err := h.orchestrator.Cancel(c.Param("id")); err != nil {
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, jobResponse{Success: true, JobID: c.Param("id")})
}

// Export streams selected records as a CSV or JSON attachment.
func (h *Handler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	items, err := h.repository.ListByIDs(c.Request.Context(), req.ContentIDs)
	if err != nil {
		h.logger.Error("export lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	payload, err := export.Export(items, format)
	if err != nil {
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	filename := export.Filename(format, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentTypeFor(format), payload)
}

// SearchContents lists persisted content for the history view.
func (h *Handler) SearchContents(c *gin.Context) {
	limit := queryInt(c, "limit", defaultPageSize)
	skip := queryInt(c, "skip", 0)

	query := ports.SearchQuery{
		Keywords: c.Query("keywords"),
		Limit:    limit,
		Skip:     skip,
	}
	if t := c.Query("type"); t != "" {
		query.ContentType = domain.ParseContentType(t)
	}

	contents, total, err := h.repository.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("content search failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	records := make([]contentRecord, len(contents))
	for i, content := range contents {
		records[i] = toContentRecord(content)
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	c.JSON(http.StatusOK, searchResponse{
		Success:    true,
		Contents:   records,
		Total:      total,
		Page:       skip/max(limit, 1) + 1,
		TotalPages: totalPages,
	})
}

// GetContent returns one persisted record.
func (h *Handler) GetContent(c *gin.Context) {
	content, err := h.repository.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "content": toContentRecord(content)})
}

// DeleteContent removes one persisted record.
func (h *Handler) DeleteContent(c *gin.Context) {
	if err := h.repository.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AnalyticsStats summarizes the stored corpus over a trailing day window.
func (h *Handler) AnalyticsStats(c *gin.Context) {
	days := queryInt(c, "days", 30)
	if days <= 0 {
		days = 30
	}

	now := time.Now().UTC()
	corpus, err := h.repository.ListSince(c.Request.Context(), now.AddDate(0, 0, -days))
	if err != nil {
		h.logger.Error("analytics lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	stats := analytics.Aggregate(corpus, days, now)
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyBatch),
		errors.Is(err, domain.ErrInvalidDraft),
		errors.Is(err, domain.ErrEmptyExportSet),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrContentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func withTimeout(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return excerpt(line, 70)
		}
	}
	return ""
}

func excerpt(text string, maxRunes int) string {
	text = strings.TrimSpace(strings.Join(strings.Fields(text), " "))
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes])
}
