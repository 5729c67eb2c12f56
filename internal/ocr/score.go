package ocr

import (
	"strings"

	"github.com/codycollier/wer"
)

// MatchScore compares recognized text against an expected transcript using
// word error rate. 1.0 is a perfect match, 0.0 complete disagreement.
func MatchScore(expected, actual string) float64 {
	ref := strings.Fields(strings.ToLower(expected))
	hyp := strings.Fields(strings.ToLower(actual))

	if len(ref) == 0 {
		if len(hyp) == 0 {
			return 1.0
		}
		return 0.0
	}

	rate, _ := wer.WER(ref, hyp)
	score := 1.0 - rate
	if score < 0 {
		score = 0
	}
	return score
}
