package ocr

import (
	"context"
	"os/exec"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/sirupsen/logrus"

	"wordflow/internal/apperrors"
	"wordflow/internal/logger"
)

// TesseractEngine recognizes text with a locally installed tesseract via the
// gosseract bindings. A fresh client is created per call; gosseract clients
// are not safe for concurrent use.
type TesseractEngine struct {
	defaultLanguage string
}

// NewTesseractEngine returns the engine, or nil when the tesseract binary is
// not installed on this host.
func NewTesseractEngine(defaultLanguage string) *TesseractEngine {
	if _, err := exec.LookPath("tesseract"); err != nil {
		logger.Warn("tesseract binary not found, engine disabled")
		return nil
	}
	if defaultLanguage == "" {
		defaultLanguage = "eng"
	}
	return &TesseractEngine{defaultLanguage: defaultLanguage}
}

func (e *TesseractEngine) Tag() EngineTag {
	return EngineTesseract
}

// Recognize runs tesseract over the image. The call itself is synchronous
// CGO, so it runs in its own goroutine and the context deadline abandons the
// wait without blocking the caller.
func (e *TesseractEngine) Recognize(ctx context.Context, imageBytes []byte, languageHint string) (*Result, error) {
	language := e.defaultLanguage
	if languageHint != "" {
		language = languageHint
	}

	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := e.recognize(imageBytes, language)
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, apperrors.NewTimeoutError("tesseract recognition timed out", ctx.Err())
	case out := <-done:
		return out.result, out.err
	}
}

func (e *TesseractEngine) recognize(imageBytes []byte, language string) (*Result, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, apperrors.NewEngineError("failed to set tesseract language", err)
	}
	if err := client.SetImageFromBytes(imageBytes); err != nil {
		return nil, apperrors.NewEngineError("failed to load image into tesseract", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, apperrors.NewEngineError("tesseract recognition failed", err)
	}
	text = strings.TrimSpace(text)

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"language": language,
		}).Warn("tesseract word boxes unavailable, word confidences omitted")
		boxes = nil
	}

	result := &Result{Text: text}
	var confidenceSum float64
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		// gosseract reports confidence on a 0-100 scale
		confidence := box.Confidence / 100
		result.Words = append(result.Words, RecognizedWord{Text: word, Confidence: confidence})
		confidenceSum += confidence
	}
	if len(result.Words) > 0 {
		result.Confidence = confidenceSum / float64(len(result.Words))
	}
	return result, nil
}
