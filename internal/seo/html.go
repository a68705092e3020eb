package seo

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText returns the visible text of content. Pasted content is often a
// rendered HTML page; markup is stripped before scoring so tags do not count
// as words. Plain text passes through unchanged.
func ExtractText(content string) string {
	if !strings.Contains(content, "<") {
		return content
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}

	doc.Find("script, style, noscript").Remove()

	text := doc.Text()
	if strings.TrimSpace(text) == "" {
		return content
	}

	// Collapse runs of whitespace left behind by removed tags, preserving
	// paragraph breaks.
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		out = append(out, strings.Join(strings.Fields(line), " "))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
