// Package service orchestrates the format adapters, the analysis core and
// the OCR pipeline into the operations the transport layer exposes.
package service

import (
	"github.com/sirupsen/logrus"

	"wordflow/internal/epub"
	"wordflow/internal/logger"
	"wordflow/internal/plaintext"
	"wordflow/internal/subtitle"
	"wordflow/internal/textanalysis"
	"wordflow/pkg/models"
)

// TextAnalysisService handles the text, subtitle and EPUB operations.
type TextAnalysisService interface {
	AnalyzeText(text string, minWordLength int) (*models.AnalysisResult, error)
	TextStatistics(text string, minWordLength int) (*models.TextStatistics, error)
	AnalyzeSubtitle(content []byte, filename string, minWordLength int) (*models.AnalysisResult, *subtitle.FileInfo, error)
	AnalyzeEpub(content []byte, filename string) (*models.EpubAnalysisResponse, error)
}

type textAnalysisService struct {
	analyzer  *textanalysis.Analyzer
	plainText *plaintext.Processor
	subtitles *subtitle.Processor
	epubs     *epub.Processor
}

func NewTextAnalysisService(analyzer *textanalysis.Analyzer) TextAnalysisService {
	return &textAnalysisService{
		analyzer:  analyzer,
		plainText: plaintext.NewProcessor(),
		subtitles: subtitle.NewProcessor(),
		epubs:     epub.NewProcessor(),
	}
}

// AnalyzeText validates a raw text submission and analyzes it.
func (s *textAnalysisService) AnalyzeText(text string, minWordLength int) (*models.AnalysisResult, error) {
	validated, err := s.plainText.Process(text)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Analyze(validated, resolveMinLength(minWordLength))
}

// TextStatistics returns the derived metrics for a raw text submission.
func (s *textAnalysisService) TextStatistics(text string, minWordLength int) (*models.TextStatistics, error) {
	validated, err := s.plainText.Process(text)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Statistics(validated, resolveMinLength(minWordLength))
}

// AnalyzeSubtitle extracts spoken text from a subtitle upload and analyzes it.
func (s *textAnalysisService) AnalyzeSubtitle(content []byte, filename string, minWordLength int) (*models.AnalysisResult, *subtitle.FileInfo, error) {
	text, info, err := s.subtitles.Process(content, filename)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.analyzer.Analyze(text, resolveMinLength(minWordLength))
	if err != nil {
		return nil, nil, err
	}

	logger.WithFields(logrus.Fields{
		"filename":    filename,
		"encoding":    info.Encoding,
		"total_words": result.TotalWords,
	}).Info("Subtitle analysis completed")

	return result, info, nil
}

// AnalyzeEpub extracts the book text and analyzes it. The EPUB response
// keeps the raw word list, so tokens of every length count toward
// total_words here.
func (s *textAnalysisService) AnalyzeEpub(content []byte, filename string) (*models.EpubAnalysisResponse, error) {
	text, book, err := s.epubs.Process(content, filename)
	if err != nil {
		return nil, err
	}

	result, err := s.analyzer.Analyze(text, 1)
	if err != nil {
		return nil, err
	}
	wordList := s.analyzer.Tokenizer().ExtractWords(text, 1)

	logger.WithFields(logrus.Fields{
		"filename":    filename,
		"title":       book.Title,
		"total_words": result.TotalWords,
	}).Info("EPUB analysis completed")

	return &models.EpubAnalysisResponse{
		Title:            book.Title,
		WordList:         wordList,
		Sentences:        result.Sentences,
		UniqueWords:      result.UniqueWords,
		TotalWords:       result.TotalWords,
		TotalUniqueWords: result.TotalUniqueWords,
		TotalSentences:   result.TotalSentences,
	}, nil
}

// resolveMinLength applies the default when the request does not name a
// minimum word length.
func resolveMinLength(minWordLength int) int {
	if minWordLength < 1 {
		return textanalysis.DefaultMinWordLength
	}
	return minWordLength
}
