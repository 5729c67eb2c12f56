// Package subtitle extracts spoken text from SRT, VTT and TXT subtitle files
// by stripping cue numbers, timestamps and markup.
package subtitle

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"wordflow/internal/apperrors"
	"wordflow/internal/logger"
)

// SupportedExtensions are the file extensions the adapter accepts.
var SupportedExtensions = []string{".srt", ".vtt", ".txt"}

var (
	sequenceLine = regexp.MustCompile(`^\d+$`)
	srtTimestamp = regexp.MustCompile(`^\d{2}:\d{2}:\d{2},\d{3} --> \d{2}:\d{2}:\d{2},\d{3}$`)
	vttTimestamp = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3} --> \d{2}:\d{2}:\d{2}\.\d{3}`)
	cueHeader    = regexp.MustCompile(`^[A-Za-z]+:`)
	htmlTag      = regexp.MustCompile(`<[^>]+>`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// FileInfo describes a successfully decoded subtitle file.
type FileInfo struct {
	Filename  string `json:"filename"`
	Extension string `json:"file_extension"`
	Size      int    `json:"file_size"`
	Content   string `json:"-"`
	Encoding  string `json:"encoding"`
}

// Processor is the subtitle format adapter.
type Processor struct{}

func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateExtension checks the filename against the supported set.
func (p *Processor) ValidateExtension(filename string) error {
	if filename == "" {
		return apperrors.NewValidationError("no filename provided", nil)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return nil
		}
	}
	return apperrors.NewUnsupportedFormatError("unsupported subtitle format", SupportedExtensions)
}

// Decode validates the extension and decodes the raw bytes, trying UTF-8
// first and Latin-1 second.
func (p *Processor) Decode(content []byte, filename string) (*FileInfo, error) {
	if err := p.ValidateExtension(filename); err != nil {
		return nil, err
	}

	text, encoding, err := decodeBytes(content)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"filename": filename,
		"encoding": encoding,
		"size":     len(content),
	}).Debug("Decoded subtitle file")

	return &FileInfo{
		Filename:  filename,
		Extension: strings.ToLower(filepath.Ext(filename)),
		Size:      len(content),
		Content:   text,
		Encoding:  encoding,
	}, nil
}

// ExtractText strips format structure from the decoded content, leaving only
// the spoken lines joined by single spaces.
func (p *Processor) ExtractText(info *FileInfo) (string, error) {
	var text string
	switch info.Extension {
	case ".srt":
		text = extractSRT(info.Content)
	case ".vtt":
		text = extractVTT(info.Content)
	case ".txt":
		text = extractTXT(info.Content)
	default:
		return "", apperrors.NewUnsupportedFormatError("unsupported subtitle format", SupportedExtensions)
	}

	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewEmptyContentError("no text content found in the subtitle file")
	}
	return text, nil
}

// Process runs the full decode-and-extract pipeline for one upload.
func (p *Processor) Process(content []byte, filename string) (string, *FileInfo, error) {
	info, err := p.Decode(content, filename)
	if err != nil {
		return "", nil, err
	}
	text, err := p.ExtractText(info)
	if err != nil {
		return "", nil, err
	}
	return text, info, nil
}

// decodeBytes attempts UTF-8 and falls back to Latin-1. Latin-1 maps every
// byte to a code point, so decoding only fails on invalid UTF-8 when the
// fallback is disabled upstream; the error branch covers defensive callers.
func decodeBytes(content []byte) (string, string, error) {
	if utf8.Valid(content) {
		return string(content), "utf-8", nil
	}

	// Latin-1: byte value == code point
	runes := make([]rune, len(content))
	for i, b := range content {
		runes[i] = rune(b)
	}
	return string(runes), "latin-1", nil
}

func extractSRT(content string) string {
	var textLines []string
	skipNext := false

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			skipNext = false
			continue
		}
		if skipNext {
			skipNext = false
			continue
		}
		// Cue sequence number; the line after it is the timestamp
		if sequenceLine.MatchString(line) {
			skipNext = true
			continue
		}
		if srtTimestamp.MatchString(line) {
			continue
		}

		if cleaned := cleanMarkup(line); cleaned != "" {
			textLines = append(textLines, cleaned)
		}
	}
	return strings.Join(textLines, " ")
}

func extractVTT(content string) string {
	lines := strings.Split(content, "\n")
	var textLines []string
	skipNext := false

	for i, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" || line == "WEBVTT" {
			continue
		}
		if vttTimestamp.MatchString(line) {
			skipNext = true
			continue
		}
		// Cue identifiers sit on their own line right before a timestamp
		if i+1 < len(lines) && vttTimestamp.MatchString(strings.TrimSpace(lines[i+1])) {
			continue
		}
		// Style and note blocks directly after a timestamp
		if skipNext && cueHeader.MatchString(line) {
			continue
		}
		skipNext = false

		if cleaned := cleanMarkup(line); cleaned != "" {
			textLines = append(textLines, cleaned)
		}
	}
	return strings.Join(textLines, " ")
}

func extractTXT(content string) string {
	var textLines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if cleaned := cleanMarkup(line); cleaned != "" {
			textLines = append(textLines, cleaned)
		}
	}
	return strings.Join(textLines, " ")
}

// cleanMarkup removes inline tags like <i> and collapses leftover whitespace.
func cleanMarkup(line string) string {
	line = htmlTag.ReplaceAllString(line, "")
	line = whitespace.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}
