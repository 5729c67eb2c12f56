package plaintext

import (
	"testing"

	"wordflow/internal/apperrors"
)

func TestProcess(t *testing.T) {
	p := NewProcessor()

	tests := []struct {
		name     string
		text     string
		wantType apperrors.ErrorType
	}{
		{name: "valid text", text: "This text is long enough."},
		{name: "empty", text: "", wantType: apperrors.ErrorTypeEmptyInput},
		{name: "whitespace only", text: "   \n\t", wantType: apperrors.ErrorTypeEmptyInput},
		{name: "too short", text: "too short", wantType: apperrors.ErrorTypeValidation},
		{name: "exactly ten characters", text: "abcdefghij"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Process(tt.text)
			if tt.wantType == "" {
				if err != nil {
					t.Fatalf("Process(%q) unexpected error: %v", tt.text, err)
				}
				if got != tt.text {
					t.Errorf("Process(%q) = %q, want pass-through", tt.text, got)
				}
				return
			}
			if !apperrors.IsType(err, tt.wantType) {
				t.Errorf("Process(%q) error = %v, want type %s", tt.text, err, tt.wantType)
			}
		})
	}
}
