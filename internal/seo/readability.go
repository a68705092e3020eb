package seo

import (
	"strings"

	"SeoContentEngine/internal/domain"
)

var sentenceEnders = map[rune]bool{
	'.': true, '!': true, '?': true,
	'。': true, '！': true, '？': true,
}

// ComputeReadability scores prose structure starting from 100, deducting for
// long sentences, missing paragraph breaks and verbatim sentence repeats.
// Suggestions mirror the deductions in check order.
func ComputeReadability(draft domain.ContentDraft) domain.ReadabilityReport {
	score := readabilityBase
	suggestions := []string{}

	sentences := splitSentences(draft.Body)

	if penalty := sentenceLengthDeduction(sentences); penalty > 0 {
		score -= penalty
		suggestions = append(suggestions,
			"Average sentence length is high; break long sentences into shorter ones.")
	}

	if sparseParagraphs(draft.Body) {
		score -= sparseParagraphPenalty
		suggestions = append(suggestions,
			"Long content needs more paragraph breaks; aim for at least three paragraphs.")
	}

	if repeats := repeatedSentences(sentences); repeats > 0 {
		score -= repeats * repeatedSentencePenalty
		suggestions = append(suggestions,
			"Some sentences repeat verbatim; rephrase duplicated sentences.")
	}

	return domain.ReadabilityReport{Score: clamp(score, 0, 100), Suggestions: suggestions}
}

func splitSentences(body string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range body {
		current.WriteRune(r)
		if sentenceEnders[r] {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// sentenceLengthDeduction applies -10 per 10-word band over the 25 word
// average limit, capped at -30.
func sentenceLengthDeduction(sentences []string) int {
	if len(sentences) == 0 {
		return 0
	}

	var total float64
	for _, s := range sentences {
		total += countWords(s)
	}
	avg := total / float64(len(sentences))

	penalty := 0
	for limit := sentenceLengthLimit; avg > limit && penalty < sentenceLengthMaxPenalty; limit += sentenceLengthStep {
		penalty += sentenceLengthPenalty
	}
	return penalty
}

func sparseParagraphs(body string) bool {
	if countWords(body) <= sparseParagraphBodyWords {
		return false
	}

	paragraphs := 0
	for _, p := range strings.Split(body, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	return paragraphs < sparseParagraphMin
}

// repeatedSentences counts every verbatim repeat beyond a sentence's first
// occurrence.
func repeatedSentences(sentences []string) int {
	seen := make(map[string]int, len(sentences))
	repeats := 0
	for _, s := range sentences {
		seen[s]++
		if seen[s] > 1 {
			repeats++
		}
	}
	return repeats
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
