// Package ocr defines the text recognition contract and the registry that
// selects among engines at call time. Engines are identified by enumerated
// tags; the coordination layer never depends on engine internals.
package ocr

import (
	"context"
	"fmt"
	"sort"

	"wordflow/internal/apperrors"
)

// EngineTag enumerates the selectable OCR providers.
type EngineTag string

const (
	EngineTesseract    EngineTag = "tesseract"
	EngineGoogleVision EngineTag = "google_vision"
	EngineAzureVision  EngineTag = "azure_vision"
	EngineAWSTextract  EngineTag = "aws_textract"
)

// ParseEngineTag validates a caller-supplied engine name.
func ParseEngineTag(name string) (EngineTag, error) {
	switch EngineTag(name) {
	case EngineTesseract, EngineGoogleVision, EngineAzureVision, EngineAWSTextract:
		return EngineTag(name), nil
	}
	return "", apperrors.NewValidationError(
		fmt.Sprintf("invalid OCR engine %q, available engines: %v", name, AllEngineTags()), nil)
}

// AllEngineTags lists every known engine tag, configured or not.
func AllEngineTags() []EngineTag {
	return []EngineTag{EngineTesseract, EngineGoogleVision, EngineAzureVision, EngineAWSTextract}
}

// RecognizedWord is one word with the engine's confidence in [0,1].
type RecognizedWord struct {
	Text       string
	Confidence float64
}

// Result is the outcome of one recognition call.
type Result struct {
	Text       string
	Confidence float64
	Words      []RecognizedWord
}

// Engine converts image bytes to text. Implementations must honor context
// cancellation so a slow provider fails its own job instead of stalling the
// caller's worker.
type Engine interface {
	Tag() EngineTag
	Recognize(ctx context.Context, imageBytes []byte, languageHint string) (*Result, error)
}

// Registry holds the configured engines and picks one per request.
type Registry struct {
	engines map[EngineTag]Engine
	// preference order for auto-selection
	order []EngineTag
}

func NewRegistry() *Registry {
	return &Registry{
		engines: make(map[EngineTag]Engine),
		order:   AllEngineTags(),
	}
}

// Register makes an engine selectable.
func (r *Registry) Register(engine Engine) {
	r.engines[engine.Tag()] = engine
}

// Get returns the engine for a tag, or an engine error when the provider is
// not configured in this process.
func (r *Registry) Get(tag EngineTag) (Engine, error) {
	if engine, ok := r.engines[tag]; ok {
		return engine, nil
	}
	return nil, apperrors.NewEngineError(
		fmt.Sprintf("OCR engine %q is not available, configured engines: %v", tag, r.Available()), nil)
}

// Select returns the named engine, or the first available by preference
// order when no name is given.
func (r *Registry) Select(name string) (Engine, error) {
	if name != "" {
		tag, err := ParseEngineTag(name)
		if err != nil {
			return nil, err
		}
		return r.Get(tag)
	}
	for _, tag := range r.order {
		if engine, ok := r.engines[tag]; ok {
			return engine, nil
		}
	}
	return nil, apperrors.NewEngineError("no OCR engine is available", nil)
}

// Available lists the configured engine tags in stable order.
func (r *Registry) Available() []string {
	tags := make([]string, 0, len(r.engines))
	for tag := range r.engines {
		tags = append(tags, string(tag))
	}
	sort.Strings(tags)
	return tags
}
