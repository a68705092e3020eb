package analytics

import (
	"math"
	"sort"
	"time"

	"SeoContentEngine/internal/domain"
	"SeoContentEngine/internal/seo"
)

// Score bands matching the dashboard's color coding.
const (
	BandLow  = "0-59"
	BandMid  = "60-79"
	BandHigh = "80-100"
)

// topKeywordLimit caps the keyword distribution for the dashboard.
const topKeywordLimit = 10

// Stats summarizes a stored corpus for the dashboard.
type Stats struct {
	TotalContent        int                        `json:"total_content"`
	AverageSeoScore     float64                    `json:"average_seo_score"`
	ContentTypes        map[domain.ContentType]int `json:"content_types"`
	ScoreDistribution   map[string]int             `json:"score_distribution"`
	DailyGeneration     map[string]int             `json:"daily_generation"`
	KeywordDistribution map[string]int             `json:"keyword_distribution"`
}

// Aggregate computes distribution statistics over items created within the
// trailing windowDays before now. An empty corpus yields zero values, never a
// division by zero.
func Aggregate(corpus []domain.ValidatedContent, windowDays int, now time.Time) Stats {
	stats := Stats{
		ContentTypes: map[domain.ContentType]int{
			domain.ContentTypeArticle: 0,
			domain.ContentTypeProduct: 0,
		},
		ScoreDistribution: map[string]int{
			BandLow:  0,
			BandMid:  0,
			BandHigh: 0,
		},
		DailyGeneration:     map[string]int{},
		KeywordDistribution: map[string]int{},
	}

	cutoff := now.AddDate(0, 0, -windowDays)

	var totalScore int
	for _, content := range corpus {
		if content.CreatedAt.Before(cutoff) || content.CreatedAt.After(now) {
			continue
		}

		stats.TotalContent++
		stats.ContentTypes[content.ContentType]++

		score := content.Validation.SeoScore.TotalScore
		totalScore += score
		stats.ScoreDistribution[scoreBand(score)]++

		day := content.CreatedAt.Format("2006-01-02")
		stats.DailyGeneration[day]++

		// Each keyword listed on the item counts once, independent of how
		// often it occurs inside the content body.
		for _, keyword := range seo.SplitKeywords(content.Keywords) {
			stats.KeywordDistribution[keyword]++
		}
	}

	if stats.TotalContent > 0 {
		mean := float64(totalScore) / float64(stats.TotalContent)
		stats.AverageSeoScore = math.Round(mean*100) / 100
	}

	stats.KeywordDistribution = topKeywords(stats.KeywordDistribution, topKeywordLimit)
	return stats
}

func scoreBand(score int) string {
	switch {
	case score >= 80:
		return BandHigh
	case score >= 60:
		return BandMid
	default:
		return BandLow
	}
}

// topKeywords keeps the limit most frequent keywords, ties broken
// alphabetically for stable dashboards.
func topKeywords(distribution map[string]int, limit int) map[string]int {
	if len(distribution) <= limit {
		return distribution
	}

	type entry struct {
		keyword string
		count   int
	}
	entries := make([]entry, 0, len(distribution))
	for keyword, count := range distribution {
		entries = append(entries, entry{keyword, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].keyword < entries[j].keyword
	})

	top := make(map[string]int, limit)
	for _, e := range entries[:limit] {
		top[e.keyword] = e.count
	}
	return top
}
