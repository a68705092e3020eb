package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"SeoContentEngine/internal/domain"
	"SeoContentEngine/internal/ports"
)

// contentColumns reconstruct a ValidatedContent exactly.
var contentColumns = []string{
	"id", "keywords", "content_type",
	"title", "meta_description", "content",
	"density_value", "density_status",
	"readability_score", "readability_suggestions",
	"seo_total_score", "seo_title_score", "seo_meta_score", "seo_quality_score",
	"created_at",
}

// PostgresRepository persists validated content into Postgres.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ContentRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Save upserts the validated content snapshot.
func (r *PostgresRepository) Save(ctx context.Context, content domain.ValidatedContent) error {
	query, args, err := r.builder.
		Insert("seo_contents").
		Columns(contentColumns...).
		Values(
			content.ID,
			content.Keywords,
			string(content.ContentType),
			content.Draft.Title,
			content.Draft.MetaDescription,
			content.Draft.Body,
			content.Validation.KeywordDensity.Value,
			string(content.Validation.KeywordDensity.Status),
			content.Validation.Readability.Score,
			pq.Array(content.Validation.Readability.Suggestions),
			content.Validation.SeoScore.TotalScore,
			content.Validation.SeoScore.Factors.Title,
			content.Validation.SeoScore.Factors.MetaDescription,
			content.Validation.SeoScore.Factors.ContentQuality,
			content.CreatedAt,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert content: %w", err)
	}
	return nil
}

// GetByID loads one record.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (domain.ValidatedContent, error) {
	query, args, err := r.builder.
		Select(contentColumns...).
		From("seo_contents").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.ValidatedContent{}, fmt.Errorf("build select: %w", err)
	}

	content, err := scanContent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ValidatedContent{}, domain.ErrContentNotFound
	}
	if err != nil {
		return domain.ValidatedContent{}, fmt.Errorf("load content: %w", err)
	}
	return content, nil
}

// Delete removes one record.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.builder.
		Delete("seo_contents").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

// Search lists records filtered by keyword substring and content type, newest
// first, and returns the unpaged total for the history view.
func (r *PostgresRepository) Search(ctx context.Context, q ports.SearchQuery) ([]domain.ValidatedContent, int, error) {
	base := r.builder.
		Select(contentColumns...).
		From("seo_contents")
	counter := r.builder.
		Select("COUNT(*)").
		From("seo_contents")

	if q.Keywords != "" {
		filter := sq.Or{
			sq.ILike{"keywords": "%" + q.Keywords + "%"},
			sq.ILike{"title": "%" + q.Keywords + "%"},
		}
		base = base.Where(filter)
		counter = counter.Where(filter)
	}
	if q.ContentType != "" {
		base = base.Where(sq.Eq{"content_type": string(q.ContentType)})
		counter = counter.Where(sq.Eq{"content_type": string(q.ContentType)})
	}

	countQuery, countArgs, err := counter.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contents: %w", err)
	}

	base = base.OrderBy("created_at DESC")
	if q.Limit > 0 {
		base = base.Limit(uint64(q.Limit))
	}
	if q.Skip > 0 {
		base = base.Offset(uint64(q.Skip))
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build search: %w", err)
	}

	contents, err := r.queryContents(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return contents, total, nil
}

// ListByIDs loads the requested records in the given id order, skipping
// unknown ids.
func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.ValidatedContent, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := r.builder.
		Select(contentColumns...).
		From("seo_contents").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	contents, err := r.queryContents(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.ValidatedContent, len(contents))
	for _, c := range contents {
		byID[c.ID] = c
	}
	ordered := make([]domain.ValidatedContent, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// ListSince loads records created at or after the given time.
func (r *PostgresRepository) ListSince(ctx context.Context, since time.Time) ([]domain.ValidatedContent, error) {
	query, args, err := r.builder.
		Select(contentColumns...).
		From("seo_contents").
		Where(sq.GtOrEq{"created_at": since}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list since: %w", err)
	}

	return r.queryContents(ctx, query, args...)
}

func (r *PostgresRepository) queryContents(ctx context.Context, query string, args ...any) ([]domain.ValidatedContent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contents: %w", err)
	}
	defer rows.Close()

	var contents []domain.ValidatedContent
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return contents, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContent(row rowScanner) (domain.ValidatedContent, error) {
	var (
		content     domain.ValidatedContent
		contentType string
		status      string
		suggestions pq.StringArray
	)

	err := row.Scan(
		&content.ID,
		&content.Keywords,
		&contentType,
		&content.Draft.Title,
		&content.Draft.MetaDescription,
		&content.Draft.Body,
		&content.Validation.KeywordDensity.Value,
		&status,
		&content.Validation.Readability.Score,
		&suggestions,
		&content.Validation.SeoScore.TotalScore,
		&content.Validation.SeoScore.Factors.Title,
		&content.Validation.SeoScore.Factors.MetaDescription,
		&content.Validation.SeoScore.Factors.ContentQuality,
		&content.CreatedAt,
	)
	if err != nil {
		return domain.ValidatedContent{}, err
	}

	content.ContentType = domain.ContentType(contentType)
	content.Validation.KeywordDensity.Status = domain.DensityStatus(status)
	content.Validation.Readability.Suggestions = []string(suggestions)
	return content, nil
}
