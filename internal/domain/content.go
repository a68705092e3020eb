package domain

import "time"

// ContentType selects the generation template and scoring profile for a request.
type ContentType string

const (
	ContentTypeArticle ContentType = "article"
	ContentTypeProduct ContentType = "product"
)

// ParseContentType maps wire values onto the enum, defaulting to article.
func ParseContentType(value string) ContentType {
	if ContentType(value) == ContentTypeProduct {
		return ContentTypeProduct
	}
	return ContentTypeArticle
}

// ContentDraft is the normalized output of a generation backend.
type ContentDraft struct {
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	Body            string `json:"body"`
}

// DensityStatus bands a keyword-density value for display.
type DensityStatus string

const (
	DensityLow     DensityStatus = "low"
	DensityOptimal DensityStatus = "optimal"
	DensityHigh    DensityStatus = "high"
)

// KeywordDensity is the measured keyword ratio across title, meta and body.
type KeywordDensity struct {
	Value  float64       `json:"value"`
	Status DensityStatus `json:"status"`
}

// ReadabilityReport scores prose structure and carries improvement hints.
type ReadabilityReport struct {
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

// SeoFactors are the weighted sub-scores combined into the total score.
type SeoFactors struct {
	Title           int `json:"title"`
	MetaDescription int `json:"meta_description"`
	ContentQuality  int `json:"content_quality"`
}

// SeoScore aggregates the factor scores into a 0-100 total.
type SeoScore struct {
	TotalScore int        `json:"total_score"`
	Factors    SeoFactors `json:"factors"`
}

// ValidationReport is fully populated once validation succeeds; never partial.
type ValidationReport struct {
	KeywordDensity KeywordDensity    `json:"keyword_density"`
	Readability    ReadabilityReport `json:"readability"`
	SeoScore       SeoScore          `json:"seo_score"`
}

// ValidatedContent is the immutable record produced by a pipeline execution.
type ValidatedContent struct {
	ID          string           `json:"id"`
	Keywords    string           `json:"keywords"`
	ContentType ContentType      `json:"content_type"`
	Draft       ContentDraft     `json:"content"`
	Validation  ValidationReport `json:"validation"`
	CreatedAt   time.Time        `json:"created_at"`
}
