package language

import "testing"

func TestDetect(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "english",
			text:     "The quick brown fox jumps over the lazy dog and keeps on running through the field.",
			expected: "en",
		},
		{
			name:     "spanish",
			text:     "El rápido zorro marrón salta sobre el perro perezoso y sigue corriendo por el campo.",
			expected: "es",
		},
		{
			name:     "empty input",
			text:     "",
			expected: Unknown,
		},
		{
			name:     "whitespace only",
			text:     "   ",
			expected: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.text); got != tt.expected {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	if !NewDetector().Available() {
		t.Error("Expected detector to report available")
	}
}
