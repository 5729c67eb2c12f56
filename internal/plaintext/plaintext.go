// Package plaintext validates raw text submissions before analysis.
package plaintext

import (
	"strings"

	"wordflow/internal/apperrors"
)

// MinTextLength is the shortest submission considered analyzable.
const MinTextLength = 10

// Processor is the plain-text adapter. There is no format to parse; it only
// enforces the minimum length and passes the text through unchanged.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// Validate rejects empty and too-short submissions.
func (p *Processor) Validate(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return apperrors.NewEmptyInputError("no text content to analyze")
	}
	if len([]rune(trimmed)) < MinTextLength {
		return apperrors.NewValidationError("text must be at least 10 characters long", nil)
	}
	return nil
}

// Process validates and returns the text unchanged.
func (p *Processor) Process(text string) (string, error) {
	if err := p.Validate(text); err != nil {
		return "", err
	}
	return text, nil
}
