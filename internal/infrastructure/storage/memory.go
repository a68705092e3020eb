package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"SeoContentEngine/internal/domain"
	"SeoContentEngine/internal/ports"
)

// MemoryRepository keeps validated content in a mutex-guarded map. It backs
// tests and runs without a configured database.
type MemoryRepository struct {
	mu       sync.RWMutex
	contents map[string]domain.ValidatedContent
}

var _ ports.ContentRepository = (*MemoryRepository)(nil)

// NewMemoryRepository builds an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{contents: map[string]domain.ValidatedContent{}}
}

// Save stores a copy of the record; existing ids are left untouched since
// validated content is immutable.
func (r *MemoryRepository) Save(_ context.Context, content domain.ValidatedContent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contents[content.ID]; !ok {
		r.contents[content.ID] = content
	}
	return nil
}

// GetByID loads one record.
func (r *MemoryRepository) GetByID(_ context.Context, id string) (domain.ValidatedContent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	content, ok := r.contents[id]
	if !ok {
		return domain.ValidatedContent{}, domain.ErrContentNotFound
	}
	return content, nil
}

// Delete removes one record.
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contents[id]; !ok {
		return domain.ErrContentNotFound
	}
	delete(r.contents, id)
	return nil
}

// Search filters by keyword substring and content type, newest first.
func (r *MemoryRepository) Search(_ context.Context, q ports.SearchQuery) ([]domain.ValidatedContent, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.ValidatedContent
	needle := strings.ToLower(q.Keywords)
	for _, content := range r.contents {
		if needle != "" &&
			!strings.Contains(strings.ToLower(content.Keywords), needle) &&
			!strings.Contains(strings.ToLower(content.Draft.Title), needle) {
			continue
		}
		if q.ContentType != "" && content.ContentType != q.ContentType {
			continue
		}
		matched = append(matched, content)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if q.Skip > 0 {
		if q.Skip >= len(matched) {
			matched = nil
		} else {
			matched = matched[q.Skip:]
		}
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

// ListByIDs loads the requested records in the given id order, skipping
// unknown ids.
func (r *MemoryRepository) ListByIDs(_ context.Context, ids []string) ([]domain.ValidatedContent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.ValidatedContent
	for _, id := range ids {
		if content, ok := r.contents[id]; ok {
			out = append(out, content)
		}
	}
	return out, nil
}

// ListSince loads records created at or after the given time.
func (r *MemoryRepository) ListSince(_ context.Context, since time.Time) ([]domain.ValidatedContent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.ValidatedContent
	for _, content := range r.contents {
		if !content.CreatedAt.Before(since) {
			out = append(out, content)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
