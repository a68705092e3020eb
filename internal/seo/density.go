package seo

import (
	"regexp"
	"strings"
	"unicode"

	"SeoContentEngine/internal/domain"
)

// SplitKeywords breaks a comma-separated keyword string into trimmed,
// non-empty tokens. Both ASCII and fullwidth commas act as separators.
func SplitKeywords(keywords string) []string {
	fields := strings.FieldsFunc(keywords, func(r rune) bool {
		return r == ',' || r == '，'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ComputeKeywordDensity measures keyword occurrences per 100 words across
// title, meta description and body. Latin keywords match on word boundaries;
// CJK keywords match as literal substrings since word-boundary tokenization
// is unreliable for ideographic text.
func ComputeKeywordDensity(draft domain.ContentDraft, keywords []string) domain.KeywordDensity {
	text := draft.Title + " " + draft.MetaDescription + " " + draft.Body

	totalWords := countWords(text)
	if totalWords == 0 {
		return domain.KeywordDensity{Value: 0, Status: domain.DensityLow}
	}

	var occurrences int
	for _, keyword := range keywords {
		occurrences += countOccurrences(text, keyword)
	}

	value := float64(occurrences) / totalWords * 100
	return domain.KeywordDensity{Value: value, Status: densityStatus(value)}
}

func densityStatus(value float64) domain.DensityStatus {
	switch {
	case value < densityLowBelow:
		return domain.DensityLow
	case value > densityHighAbove:
		return domain.DensityHigh
	default:
		return domain.DensityOptimal
	}
}

// countWords counts whitespace-separated Latin words plus CJK characters
// divided by the average ideographic word length.
func countWords(text string) float64 {
	var cjkChars int
	latin := strings.Map(func(r rune) rune {
		if isCJK(r) {
			cjkChars++
			return ' '
		}
		return r
	}, text)

	latinWords := len(strings.Fields(latin))
	return float64(latinWords) + float64(cjkChars)/cjkAvgWordLength
}

// countOccurrences counts case-insensitive matches of keyword in text.
func countOccurrences(text, keyword string) int {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return 0
	}

	// Keywords whose edge runes are not word characters ("c++", "c#", ".net")
	// can never sit against a \b boundary, so they match as substrings, like
	// CJK keywords.
	if containsCJK(keyword) || !wordBoundarySafe(keyword) {
		return strings.Count(strings.ToLower(text), strings.ToLower(keyword))
	}

	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	if err != nil {
		return strings.Count(strings.ToLower(text), strings.ToLower(keyword))
	}
	return len(re.FindAllStringIndex(text, -1))
}

// ContainsKeyword reports whether any keyword occurs in text.
func ContainsKeyword(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if countOccurrences(text, keyword) > 0 {
			return true
		}
	}
	return false
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

func wordBoundarySafe(keyword string) bool {
	runes := []rune(keyword)
	return isWordRune(runes[0]) && isWordRune(runes[len(runes)-1])
}

// isWordRune matches the regexp engine's ASCII word-character class.
func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

func containsCJK(s string) bool {
	for _, r := range s {
		if isCJK(r) {
			return true
		}
	}
	return false
}
