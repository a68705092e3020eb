package seo

import (
	"math"
	"unicode/utf8"

	"SeoContentEngine/internal/domain"
)

// ComputeSeoScore combines title, meta description and content-quality factors
// into a weighted total. Character counts use rune length so CJK text is
// measured the same way the UI measures it.
func ComputeSeoScore(
	draft domain.ContentDraft,
	keywords []string,
	density domain.KeywordDensity,
	readability domain.ReadabilityReport,
	contentType domain.ContentType,
) domain.SeoScore {
	factors := domain.SeoFactors{
		Title:           titleFactor(draft.Title, keywords),
		MetaDescription: metaDescriptionFactor(draft.MetaDescription, keywords),
		ContentQuality:  contentQualityFactor(readability, density),
	}

	profile := profileFor(contentType)
	total := float64(factors.Title)*profile.Title +
		float64(factors.MetaDescription)*profile.MetaDescription +
		float64(factors.ContentQuality)*profile.ContentQuality

	return domain.SeoScore{
		TotalScore: clamp(int(math.Round(total)), 0, 100),
		Factors:    factors,
	}
}

func titleFactor(title string, keywords []string) int {
	length := utf8.RuneCountInString(title)
	inBounds := length >= titleLengthMin && length <= titleLengthMax
	switch {
	case inBounds && ContainsKeyword(title, keywords):
		return titleFactorFull
	case inBounds:
		return titleFactorNoKeyword
	default:
		return titleFactorOutOfBounds
	}
}

func metaDescriptionFactor(meta string, keywords []string) int {
	length := utf8.RuneCountInString(meta)
	inBounds := length >= metaDescriptionLengthMin && length <= metaDescriptionLengthMax
	switch {
	case inBounds && ContainsKeyword(meta, keywords):
		return metaFactorFull
	case inBounds:
		return metaFactorNoKeyword
	default:
		return metaFactorOutOfBounds
	}
}

func contentQualityFactor(readability domain.ReadabilityReport, density domain.KeywordDensity) int {
	quality := readability.Score
	if density.Status != domain.DensityOptimal {
		quality -= offOptimalQualityPenalty
	}
	return clamp(quality, 0, 100)
}
