package textanalysis

import (
	"math"
	"strings"

	"wordflow/internal/apperrors"
	"wordflow/internal/logger"
	"wordflow/pkg/models"

	"github.com/sirupsen/logrus"
)

// DefaultMinWordLength is what adapters use when the request does not name
// a minimum. Single-letter tokens are treated as noise.
const DefaultMinWordLength = 2

// Analyzer orchestrates the tokenizer and word counter into complete text
// analysis results. It is the shared core behind every format adapter.
type Analyzer struct {
	tokenizer *Tokenizer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{tokenizer: NewTokenizer()}
}

// Tokenizer exposes the underlying tokenizer for adapters that need raw
// word lists in addition to the analysis result.
func (a *Analyzer) Tokenizer() *Tokenizer {
	return a.tokenizer
}

// Analyze tokenizes and counts the given text. Empty or whitespace-only
// input is an error; text with no qualifying words is a success with zero
// totals.
func (a *Analyzer) Analyze(text string, minWordLength int) (*models.AnalysisResult, error) {
	cleaned := cleanText(text)
	if cleaned == "" {
		return nil, apperrors.NewEmptyInputError("no text content to analyze")
	}

	sentences := a.tokenizer.ExtractSentences(cleaned)
	words := a.tokenizer.ExtractWords(cleaned, minWordLength)
	uniqueWords := Count(words)

	result := &models.AnalysisResult{
		Sentences:        sentences,
		UniqueWords:      uniqueWords,
		TotalWords:       len(words),
		TotalUniqueWords: len(uniqueWords),
		TotalSentences:   len(sentences),
	}

	logger.WithFields(logrus.Fields{
		"total_words":        result.TotalWords,
		"total_unique_words": result.TotalUniqueWords,
		"total_sentences":    result.TotalSentences,
	}).Debug("Text analysis complete")

	return result, nil
}

// Statistics computes the derived metrics for the given text without
// returning the full token lists. Averages are rounded to two decimals.
func (a *Analyzer) Statistics(text string, minWordLength int) (*models.TextStatistics, error) {
	cleaned := cleanText(text)
	if cleaned == "" {
		return nil, apperrors.NewEmptyInputError("no text content to analyze")
	}

	sentences := a.tokenizer.ExtractSentences(cleaned)
	words := a.tokenizer.ExtractWords(cleaned, minWordLength)

	unique := make(map[string]struct{}, len(words))
	totalRunes := 0
	for _, w := range words {
		unique[w] = struct{}{}
		totalRunes += len([]rune(w))
	}

	stats := &models.TextStatistics{
		TotalWords:       len(words),
		TotalUniqueWords: len(unique),
		TotalSentences:   len(sentences),
	}
	if len(words) > 0 {
		stats.AverageWordLength = round2(float64(totalRunes) / float64(len(words)))
	}
	if len(sentences) > 0 {
		stats.AverageSentenceLength = round2(float64(len(words)) / float64(len(sentences)))
	}
	return stats, nil
}

// cleanText collapses all whitespace runs to single spaces.
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
