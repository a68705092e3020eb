package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"SeoContentEngine/internal/domain"
	"SeoContentEngine/internal/ports"
	"SeoContentEngine/internal/seo"
)

// PipelineDeps wires all driven adapters into the per-item pipeline.
type PipelineDeps struct {
	Generator      ports.Generator
	Repository     ports.ContentRepository
	MaxRetries     int
	AttemptTimeout time.Duration
	Logger         *slog.Logger
}

// Pipeline executes the generate -> validate -> persist workflow for a single
// keyword. It is safe for concurrent use by any number of workers.
type Pipeline struct {
	generator      ports.Generator
	repository     ports.ContentRepository
	maxRetries     int
	attemptTimeout time.Duration
	logger         *slog.Logger
}

// NewPipeline constructs the per-item execution component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	retries := deps.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Pipeline{
		generator:      deps.Generator,
		repository:     deps.Repository,
		maxRetries:     retries,
		attemptTimeout: deps.AttemptTimeout,
		logger:         deps.Logger,
	}
}

// ProcessKeyword runs the bounded attempt loop for one keyword. Each attempt
// carries its own deadline; an expired deadline counts as a generation
// failure eligible for retry. The last failure reason is preserved.
func (p *Pipeline) ProcessKeyword(ctx context.Context, keyword string, contentType domain.ContentType) (domain.ValidatedContent, error) {
	if p.generator == nil {
		return domain.ValidatedContent{}, domain.NewGenerationError("no generator configured", nil)
	}

	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		content, err := p.runAttempt(ctx, keyword, contentType)
		if err == nil {
			return content, nil
		}
		lastErr = err
		p.debug("attempt failed", "keyword", keyword, "attempt", attempt+1, "error", err)

		if ctx.Err() != nil {
			break
		}
	}

	return domain.ValidatedContent{}, lastErr
}

func (p *Pipeline) runAttempt(ctx context.Context, keyword string, contentType domain.ContentType) (domain.ValidatedContent, error) {
	attemptCtx := ctx
	if p.attemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, p.attemptTimeout)
		defer cancel()
	}

	draft, err := p.generator.Generate(attemptCtx, keyword, contentType)
	if err != nil {
		var genErr *domain.GenerationError
		if errors.As(err, &genErr) {
			return domain.ValidatedContent{}, err
		}
		return domain.ValidatedContent{}, domain.NewGenerationError(err.Error(), err)
	}

	report, err := seo.Validate(draft, seo.SplitKeywords(keyword), contentType)
	if err != nil {
		return domain.ValidatedContent{}, fmt.Errorf("validate draft for %q: %w", keyword, err)
	}

	content := domain.ValidatedContent{
		ID:          uuid.NewString(),
		Keywords:    keyword,
		ContentType: contentType,
		Draft:       draft,
		Validation:  report,
		CreatedAt:   time.Now().UTC(),
	}

	if p.repository != nil {
		if err := p.repository.Save(ctx, content); err != nil {
			return domain.ValidatedContent{}, fmt.Errorf("persist content for %q: %w", keyword, err)
		}
	}

	return content, nil
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
