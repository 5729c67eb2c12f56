// Package imageproc prepares images for OCR. Text recognition works best on
// high-contrast input, so the preprocessor converts to grayscale and applies
// a global Otsu threshold.
package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"wordflow/internal/apperrors"
)

// Preprocessor enhances raw image bytes for recognition.
type Preprocessor interface {
	Enhance(imageBytes []byte) ([]byte, error)
}

type preprocessor struct{}

func NewPreprocessor() Preprocessor {
	return &preprocessor{}
}

// Enhance decodes the image, binarizes it and re-encodes as PNG.
func (p *preprocessor) Enhance(imageBytes []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, apperrors.NewValidationError("failed to decode image", err)
	}

	gray := toGray(img)
	binarized := threshold(gray, otsuThreshold(gray))

	var buf bytes.Buffer
	if err := png.Encode(&buf, binarized); err != nil {
		return nil, apperrors.NewInternalError("failed to encode preprocessed image", err)
	}
	return buf.Bytes(), nil
}

func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// otsuThreshold picks the threshold maximizing between-class variance of the
// grayscale histogram.
func otsuThreshold(gray *image.Gray) uint8 {
	var histogram [256]int
	total := 0
	bounds := gray.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			histogram[gray.GrayAt(x, y).Y]++
			total++
		}
	}
	if total == 0 {
		return 128
	}

	var sum float64
	for i, count := range histogram {
		sum += float64(i) * float64(count)
	}

	var sumBackground, weightBackground float64
	var maxVariance float64
	best := uint8(128)

	for i := 0; i < 256; i++ {
		weightBackground += float64(histogram[i])
		if weightBackground == 0 {
			continue
		}
		weightForeground := float64(total) - weightBackground
		if weightForeground == 0 {
			break
		}
		sumBackground += float64(i) * float64(histogram[i])

		meanBackground := sumBackground / weightBackground
		meanForeground := (sum - sumBackground) / weightForeground
		diff := meanBackground - meanForeground
		variance := weightBackground * weightForeground * diff * diff
		if variance > maxVariance {
			maxVariance = variance
			best = uint8(i)
		}
	}
	return best
}

func threshold(gray *image.Gray, level uint8) *image.Gray {
	bounds := gray.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y > level {
				out.SetGray(x, y, color.Gray{Y: 255})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out
}
