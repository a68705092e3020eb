package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBatch rejects a submission whose keyword list is empty after
	// trimming and blank filtering. No job is created.
	ErrEmptyBatch = errors.New("empty batch: no usable keywords")

	// ErrInvalidDraft rejects drafts with missing required text fields.
	ErrInvalidDraft = errors.New("invalid draft: title, meta description and body are required")

	// ErrEmptyExportSet rejects an export request over zero records.
	ErrEmptyExportSet = errors.New("empty export set")

	// ErrUnsupportedFormat rejects unknown export formats.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrJobNotFound signals an unknown batch job id.
	ErrJobNotFound = errors.New("batch job not found")

	// ErrContentNotFound signals an unknown content id in storage.
	ErrContentNotFound = errors.New("content not found")
)

// GenerationError wraps a generation backend failure; the reason survives
// verbatim through the retry policy into the failed item.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Err)
	}
	return "generation failed: " + e.Reason
}

func (e *GenerationError) Unwrap() error { return e.Err }

// NewGenerationError builds a GenerationError preserving the upstream cause.
func NewGenerationError(reason string, err error) *GenerationError {
	return &GenerationError{Reason: reason, Err: err}
}
