package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"SeoContentEngine/internal/domain"
	"SeoContentEngine/internal/generator"
)

// StubBackend produces deterministic drafts without network access, for
// offline runs and demos.
type StubBackend struct{}

var _ generator.Backend = (*StubBackend)(nil)

// NewStubBackend returns the offline backend.
func NewStubBackend() *StubBackend { return &StubBackend{} }

// Name identifies the backend inside the registry.
func (b *StubBackend) Name() string { return "stub" }

// Generate fabricates a draft long enough to score sensibly.
func (b *StubBackend) Generate(_ context.Context, keyword string, contentType domain.ContentType) (domain.ContentDraft, error) {
	noun := "guide"
	if contentType == domain.ContentTypeProduct {
		noun = "product overview"
	}

	title := fmt.Sprintf("%s: a practical %s for 2026", capitalize(keyword), noun)
	meta := fmt.Sprintf("Learn everything about %s in this %s, with practical tips, comparisons and answers to common questions.", keyword, noun)

	paragraphs := []string{
		fmt.Sprintf("This %s covers %s from the ground up. It explains what %s means in practice and why it matters.", noun, keyword, keyword),
		fmt.Sprintf("Choosing the right approach to %s takes research. Compare the options and match them to your goals before committing.", keyword),
		"Start small, measure results, and adjust as you go. Consistent iteration beats a perfect first attempt.",
	}

	return domain.ContentDraft{
		Title:           title,
		MetaDescription: meta,
		Body:            strings.Join(paragraphs, "\n\n"),
	}, nil
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
