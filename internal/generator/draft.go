package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"SeoContentEngine/internal/domain"
)

var (
	codeFenceExpr     = regexp.MustCompile("```(?:json)?\\s*")
	trailingCommaExpr = regexp.MustCompile(`,\s*([}\]])`)
)

// Field aliases the models emit; localized names first, then the English
// variants older prompt versions produced.
var (
	titleAliases = []string{"标题", "title"}
	metaAliases  = []string{"meta描述", "metaDescription", "meta_description", "description"}
	bodyAliases  = []string{"正文", "body", "content"}
)

// ExtractDraft pulls the draft JSON object out of raw model text. Models wrap
// output in code fences, prepend reasoning, or leave trailing commas; all of
// that is cleaned before parsing. The last complete JSON object in the text
// wins.
func ExtractDraft(text string) (domain.ContentDraft, error) {
	cleaned := codeFenceExpr.ReplaceAllString(text, "")

	object := lastJSONObject(cleaned)
	if object == "" {
		return domain.ContentDraft{}, fmt.Errorf("no JSON object in model output")
	}
	object = trailingCommaExpr.ReplaceAllString(object, "$1")

	var fields map[string]any
	if err := json.Unmarshal([]byte(object), &fields); err != nil {
		return domain.ContentDraft{}, fmt.Errorf("parse model output: %w", err)
	}

	draft := domain.ContentDraft{
		Title:           firstString(fields, titleAliases),
		MetaDescription: firstString(fields, metaAliases),
		Body:            firstString(fields, bodyAliases),
	}

	if draft.Title == "" || draft.MetaDescription == "" || draft.Body == "" {
		return domain.ContentDraft{}, fmt.Errorf("model output missing draft fields")
	}
	return draft, nil
}

// lastJSONObject returns the last balanced top-level {...} span in text.
func lastJSONObject(text string) string {
	var spans [][2]int
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					spans = append(spans, [2]int{start, i + 1})
					start = -1
				}
			}
		}
	}

	if len(spans) == 0 {
		return ""
	}
	last := spans[len(spans)-1]
	return text[last[0]:last[1]]
}

func firstString(fields map[string]any, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := fields[alias]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
