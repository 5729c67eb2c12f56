// Package language wraps trigram-based language detection behind a small
// interface so the image pipeline never depends on the library directly.
package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Unknown is returned when no language can be determined.
const Unknown = "und"

// Detector identifies the language of a piece of text.
type Detector interface {
	Detect(text string) string
	Available() bool
}

type detector struct{}

// NewDetector returns the whatlanggo-backed detector.
func NewDetector() Detector {
	return &detector{}
}

// Detect returns the ISO 639-1 code of the detected language, or Unknown for
// empty input and scripts the detector cannot classify.
func (d *detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return Unknown
	}
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return Unknown
	}
	return code
}

func (d *detector) Available() bool {
	return true
}
