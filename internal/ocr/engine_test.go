package ocr

import (
	"context"
	"reflect"
	"testing"

	"wordflow/internal/apperrors"
)

type fakeEngine struct {
	tag    EngineTag
	result *Result
	err    error
}

func (f *fakeEngine) Tag() EngineTag { return f.tag }

func (f *fakeEngine) Recognize(ctx context.Context, imageBytes []byte, languageHint string) (*Result, error) {
	return f.result, f.err
}

func TestParseEngineTag(t *testing.T) {
	for _, name := range []string{"tesseract", "google_vision", "azure_vision", "aws_textract"} {
		if _, err := ParseEngineTag(name); err != nil {
			t.Errorf("ParseEngineTag(%q) returned error: %v", name, err)
		}
	}
	if _, err := ParseEngineTag("clippy"); !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("ParseEngineTag(\"clippy\") error = %v, want validation", err)
	}
}

func TestRegistryGet_NotConfigured(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get(EngineGoogleVision)
	if !apperrors.IsType(err, apperrors.ErrorTypeEngine) {
		t.Errorf("error = %v, want engine", err)
	}
}

func TestRegistrySelect_Named(t *testing.T) {
	r := NewRegistry()
	fake := &fakeEngine{tag: EngineGoogleVision}
	r.Register(fake)

	engine, err := r.Select("google_vision")
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if engine.Tag() != EngineGoogleVision {
		t.Errorf("selected %s, want google_vision", engine.Tag())
	}
}

func TestRegistrySelect_AutoPrefersTesseract(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeEngine{tag: EngineGoogleVision})
	r.Register(&fakeEngine{tag: EngineTesseract})

	engine, err := r.Select("")
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if engine.Tag() != EngineTesseract {
		t.Errorf("auto-selected %s, want tesseract", engine.Tag())
	}
}

func TestRegistrySelect_NoneAvailable(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Select(""); !apperrors.IsType(err, apperrors.ErrorTypeEngine) {
		t.Errorf("error = %v, want engine", err)
	}
}

func TestRegistryAvailable(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeEngine{tag: EngineTesseract})
	r.Register(&fakeEngine{tag: EngineAzureVision})

	got := r.Available()
	expected := []string{"azure_vision", "tesseract"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Available = %v, want %v", got, expected)
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     float64
	}{
		{name: "perfect match", expected: "hello world", actual: "hello world", want: 1.0},
		{name: "case insensitive", expected: "Hello World", actual: "hello world", want: 1.0},
		{name: "both empty", expected: "", actual: "", want: 1.0},
		{name: "empty expected", expected: "", actual: "something", want: 0.0},
		{name: "half wrong", expected: "one two", actual: "one blue", want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchScore(tt.expected, tt.actual); got != tt.want {
				t.Errorf("MatchScore(%q, %q) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}
