package seo

import (
	"errors"
	"strings"
	"testing"

	"SeoContentEngine/internal/domain"
)

func TestTitleFactorBands(t *testing.T) {
	t.Parallel()

	keywords := []string{"coffee"}
	cases := []struct {
		name  string
		title string
		want  int
	}{
		{"in bounds with keyword", "The best coffee guide", 100},
		{"in bounds without keyword", "A guide to hot drinks", 60},
		{"too short", "coffee", 30},
		{"too long", strings.Repeat("coffee beans ", 10), 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := titleFactor(tc.title, keywords); got != tc.want {
				t.Fatalf("titleFactor(%q) = %d, want %d", tc.title, got, tc.want)
			}
		})
	}
}

func TestMetaDescriptionFactorBands(t *testing.T) {
	t.Parallel()

	keywords := []string{"coffee"}
	inBoundsWith := "Discover coffee brewing methods, beans and equipment in this complete guide."
	inBoundsWithout := "Discover brewing methods, beans and equipment in this complete hot drink guide."

	if got := metaDescriptionFactor(inBoundsWith, keywords); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := metaDescriptionFactor(inBoundsWithout, keywords); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
	if got := metaDescriptionFactor("too short", keywords); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
}

func TestContentQualityPenaltyOffOptimal(t *testing.T) {
	t.Parallel()

	readability := domain.ReadabilityReport{Score: 90}

	optimal := contentQualityFactor(readability, domain.KeywordDensity{Status: domain.DensityOptimal})
	if optimal != 90 {
		t.Fatalf("optimal density should not reduce quality, got %d", optimal)
	}

	low := contentQualityFactor(readability, domain.KeywordDensity{Status: domain.DensityLow})
	if low != 70 {
		t.Fatalf("off-optimal density should cost 20 points, got %d", low)
	}

	floor := contentQualityFactor(domain.ReadabilityReport{Score: 10}, domain.KeywordDensity{Status: domain.DensityHigh})
	if floor != 0 {
		t.Fatalf("quality must floor at 0, got %d", floor)
	}
}

func TestComputeSeoScoreAlwaysInRange(t *testing.T) {
	t.Parallel()

	draft := domain.ContentDraft{
		Title:           "The best coffee guide",
		MetaDescription: "Discover coffee brewing methods, beans and equipment in this complete guide.",
		Body:            "Coffee is great.",
	}
	keywords := []string{"coffee"}

	statuses := []domain.DensityStatus{domain.DensityLow, domain.DensityOptimal, domain.DensityHigh}
	for _, status := range statuses {
		for score := 0; score <= 100; score += 5 {
			result := ComputeSeoScore(draft, keywords,
				domain.KeywordDensity{Status: status},
				domain.ReadabilityReport{Score: score},
				domain.ContentTypeArticle)

			if result.TotalScore < 0 || result.TotalScore > 100 {
				t.Fatalf("total score out of range: %d (status=%s readability=%d)",
					result.TotalScore, status, score)
			}
		}
	}
}

func TestComputeSeoScoreWeighting(t *testing.T) {
	t.Parallel()

	draft := domain.ContentDraft{
		Title:           "The best coffee guide",
		MetaDescription: "Discover coffee brewing methods, beans and equipment in this complete guide.",
		Body:            "Coffee is great.",
	}

	result := ComputeSeoScore(draft, []string{"coffee"},
		domain.KeywordDensity{Status: domain.DensityOptimal},
		domain.ReadabilityReport{Score: 100},
		domain.ContentTypeArticle)

	// 100*0.2 + 100*0.2 + 100*0.6 = 100
	if result.TotalScore != 100 {
		t.Fatalf("total = %d, want 100", result.TotalScore)
	}
	if result.Factors.Title != 100 || result.Factors.MetaDescription != 100 || result.Factors.ContentQuality != 100 {
		t.Fatalf("unexpected factors: %+v", result.Factors)
	}
}

func TestValidateComposesFullReport(t *testing.T) {
	t.Parallel()

	draft := domain.ContentDraft{
		Title:           "The best coffee guide",
		MetaDescription: "Discover coffee brewing methods, beans and equipment in this complete guide.",
		Body:            "Coffee brewing takes patience. Grind fresh beans for every cup. Enjoy the result.",
	}

	report, err := Validate(draft, []string{"coffee"}, domain.ContentTypeArticle)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if report.SeoScore.TotalScore < 0 || report.SeoScore.TotalScore > 100 {
		t.Fatalf("total score out of range: %d", report.SeoScore.TotalScore)
	}
	if report.Readability.Suggestions == nil {
		t.Fatal("suggestions must be non-nil even when empty")
	}
}

func TestValidateRejectsInvalidDraft(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		draft domain.ContentDraft
	}{
		{"missing title", domain.ContentDraft{MetaDescription: "m", Body: "b"}},
		{"missing meta", domain.ContentDraft{Title: "t", Body: "b"}},
		{"missing body", domain.ContentDraft{Title: "t", MetaDescription: "m"}},
		{"whitespace only", domain.ContentDraft{Title: "  ", MetaDescription: "m", Body: "b"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.draft, []string{"k"}, domain.ContentTypeArticle)
			if !errors.Is(err, domain.ErrInvalidDraft) {
				t.Fatalf("expected ErrInvalidDraft, got %v", err)
			}
		})
	}
}
