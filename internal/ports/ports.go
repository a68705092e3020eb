package ports

import (
	"context"
	"time"

	"SeoContentEngine/internal/domain"
)

// Generator produces a content draft for one keyword. Implementations are
// network-bound and must honor the context deadline; they carry no retry
// policy of their own.
type Generator interface {
	Generate(ctx context.Context, keyword string, contentType domain.ContentType) (domain.ContentDraft, error)
}

// SearchQuery filters history listings.
type SearchQuery struct {
	Keywords    string
	ContentType domain.ContentType
	Limit       int
	Skip        int
}

// ContentRepository persists validated content for history and analytics.
type ContentRepository interface {
	Save(ctx context.Context, content domain.ValidatedContent) error
	GetByID(ctx context.Context, id string) (domain.ValidatedContent, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query SearchQuery) ([]domain.ValidatedContent, int, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.ValidatedContent, error)
	ListSince(ctx context.Context, since time.Time) ([]domain.ValidatedContent, error)
}

// Notifier streams digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when recurring jobs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
