package seo

import "SeoContentEngine/internal/domain"

// Scoring thresholds and weights. The UI color bands (>=80 green, >=60 orange)
// depend on this exact banding, so tune here only.
const (
	densityLowBelow  = 1.0
	densityHighAbove = 3.0

	// Hybrid word counting: CJK text has no whitespace word boundaries, so
	// ideographic runs are counted as characters divided by an average word
	// length.
	cjkAvgWordLength = 2.0

	readabilityBase          = 100
	sentenceLengthLimit      = 25.0
	sentenceLengthStep       = 10.0
	sentenceLengthPenalty    = 10
	sentenceLengthMaxPenalty = 30
	sparseParagraphBodyWords = 500
	sparseParagraphMin       = 3
	sparseParagraphPenalty   = 15
	repeatedSentencePenalty  = 5
	titleLengthMin           = 10
	titleLengthMax           = 70
	metaDescriptionLengthMin = 50
	metaDescriptionLengthMax = 160
	titleFactorFull          = 100
	titleFactorNoKeyword     = 60
	titleFactorOutOfBounds   = 30
	metaFactorFull           = 100
	metaFactorNoKeyword      = 50
	metaFactorOutOfBounds    = 20
	offOptimalQualityPenalty = 20
)

// weightProfile sets the factor weights for the total score.
type weightProfile struct {
	Title           float64
	MetaDescription float64
	ContentQuality  float64
}

// All content types currently share one profile; kept per-type so product
// pages can be re-weighted without touching the scoring code.
var weightProfiles = map[domain.ContentType]weightProfile{
	domain.ContentTypeArticle: {Title: 0.2, MetaDescription: 0.2, ContentQuality: 0.6},
	domain.ContentTypeProduct: {Title: 0.2, MetaDescription: 0.2, ContentQuality: 0.6},
}

func profileFor(contentType domain.ContentType) weightProfile {
	if p, ok := weightProfiles[contentType]; ok {
		return p
	}
	return weightProfiles[domain.ContentTypeArticle]
}
