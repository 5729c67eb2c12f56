// Package spelling provides per-language dictionary validation with
// edit-distance ranked suggestions. Checkers are loaded from word-list files
// on first use and kept alive for the life of the process.
package spelling

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/arbovm/levenshtein"
	"github.com/sirupsen/logrus"

	"wordflow/internal/logger"
)

const (
	// maxSuggestions caps the suggestion list per word.
	maxSuggestions = 5
	// maxEditDistance is how far a dictionary word may be from the input
	// to qualify as a suggestion.
	maxEditDistance = 2
)

// Checker validates words against one language's dictionary.
type Checker struct {
	language string
	words    map[string]struct{}
}

// IsValid reports whether the word is in the dictionary. Matching is
// case-insensitive.
func (c *Checker) IsValid(word string) bool {
	_, ok := c.words[strings.ToLower(word)]
	return ok
}

// Suggest returns up to five dictionary words within edit distance two,
// nearest first, ties broken alphabetically.
func (c *Checker) Suggest(word string) []string {
	word = strings.ToLower(word)
	if _, ok := c.words[word]; ok {
		return []string{}
	}

	type candidate struct {
		text     string
		distance int
	}
	var candidates []candidate
	for w := range c.words {
		// Cheap length bound before computing the distance
		if abs(len(w)-len(word)) > maxEditDistance {
			continue
		}
		if d := levenshtein.Distance(word, w); d <= maxEditDistance {
			candidates = append(candidates, candidate{text: w, distance: d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].text < candidates[j].text
	})

	suggestions := make([]string, 0, maxSuggestions)
	for _, c := range candidates {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, c.text)
	}
	return suggestions
}

// Size returns the number of dictionary words.
func (c *Checker) Size() int {
	return len(c.words)
}

// Cache hands out one Checker per language, loading each dictionary at most
// once across all requests.
type Cache struct {
	dictDir string

	mu       sync.Mutex
	checkers map[string]*Checker
	failed   map[string]error
}

// NewCache creates a checker cache backed by word-list files named
// <dictDir>/<language>.txt, one word per line.
func NewCache(dictDir string) *Cache {
	return &Cache{
		dictDir:  dictDir,
		checkers: make(map[string]*Checker),
		failed:   make(map[string]error),
	}
}

// Get returns the checker for the given language code, loading its
// dictionary on first use. A missing dictionary is remembered so repeated
// requests do not retry the filesystem.
func (c *Cache) Get(language string) (*Checker, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return nil, fmt.Errorf("no language given")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if checker, ok := c.checkers[language]; ok {
		return checker, nil
	}
	if err, ok := c.failed[language]; ok {
		return nil, err
	}

	checker, err := loadChecker(c.dictDir, language)
	if err != nil {
		c.failed[language] = err
		return nil, err
	}
	c.checkers[language] = checker

	logger.WithFields(logrus.Fields{
		"language": language,
		"words":    checker.Size(),
	}).Info("Loaded spelling dictionary")

	return checker, nil
}

// Languages lists the language codes with a dictionary file present,
// whether or not they have been loaded yet.
func (c *Cache) Languages() []string {
	entries, err := os.ReadDir(c.dictDir)
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		langs = append(langs, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(langs)
	return langs
}

func loadChecker(dictDir, language string) (*Checker, error) {
	path := filepath.Join(dictDir, language+".txt")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary for %q: %w", language, err)
	}
	defer file.Close()

	words := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word != "" {
			words[word] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary for %q: %w", language, err)
	}

	return &Checker{language: language, words: words}, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
