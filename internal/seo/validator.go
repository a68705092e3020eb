package seo

import (
	"strings"

	"SeoContentEngine/internal/domain"
)

// Validate runs the scoring pipeline over a draft and composes the full
// validation report. It fails only on structurally invalid drafts and never
// returns a partial report.
func Validate(
	draft domain.ContentDraft,
	keywords []string,
	contentType domain.ContentType,
) (domain.ValidationReport, error) {
	if strings.TrimSpace(draft.Title) == "" ||
		strings.TrimSpace(draft.MetaDescription) == "" ||
		strings.TrimSpace(draft.Body) == "" {
		return domain.ValidationReport{}, domain.ErrInvalidDraft
	}

	density := ComputeKeywordDensity(draft, keywords)
	readability := ComputeReadability(draft)
	score := ComputeSeoScore(draft, keywords, density, readability, contentType)

	return domain.ValidationReport{
		KeywordDensity: density,
		Readability:    readability,
		SeoScore:       score,
	}, nil
}
