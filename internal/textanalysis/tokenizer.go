package textanalysis

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"

	"wordflow/internal/logger"
)

// SentenceStrategy names which sentence-boundary implementation produced a
// result. The punkt model and the regex fallback are not guaranteed to agree
// on ambiguous input such as abbreviations or decimal numbers.
type SentenceStrategy string

const (
	StrategyPunkt SentenceStrategy = "punkt"
	StrategyRegex SentenceStrategy = "regex"
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

// Tokenizer splits raw text into sentences and words. It holds no mutable
// state and is safe for concurrent use.
type Tokenizer struct {
	punkt *sentences.DefaultSentenceTokenizer
}

// NewTokenizer builds a tokenizer backed by the trained English sentence
// model. If the model cannot be constructed the tokenizer falls back to
// regex-based boundary detection.
func NewTokenizer() *Tokenizer {
	punkt, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		logger.WithError(err).Warn("sentence model unavailable, using regex fallback")
		return &Tokenizer{}
	}
	return &Tokenizer{punkt: punkt}
}

// Strategy reports which sentence extraction strategy is active.
func (t *Tokenizer) Strategy() SentenceStrategy {
	if t.punkt != nil {
		return StrategyPunkt
	}
	return StrategyRegex
}

// ExtractSentences splits text into trimmed, non-empty sentences.
func (t *Tokenizer) ExtractSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var raw []string
	if t.punkt != nil {
		for _, s := range t.punkt.Tokenize(text) {
			raw = append(raw, s.Text)
		}
	} else {
		raw = t.extractSentencesFallback(text)
	}

	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// extractSentencesFallback splits on ., ! or ? runs followed by whitespace.
// The terminator stays attached to its sentence.
func (t *Tokenizer) extractSentencesFallback(text string) []string {
	var out []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		out = append(out, text[last:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, text[last:])
	}
	return out
}

// ExtractWords lowercases text and returns maximal runs of letters, dropping
// tokens shorter than minLength. Digits, punctuation and underscores never
// appear in the output.
func (t *Tokenizer) ExtractWords(text string, minLength int) []string {
	if minLength < 1 {
		minLength = 1
	}

	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			word := current.String()
			if len([]rune(word)) >= minLength {
				words = append(words, word)
			}
			current.Reset()
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}
