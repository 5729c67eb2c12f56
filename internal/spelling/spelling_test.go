package spelling

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

func writeDict(t *testing.T, dir, lang string, words []string) {
	t.Helper()
	content := ""
	for _, w := range words {
		content += w + "\n"
	}
	if err := os.WriteFile(filepath.Join(dir, lang+".txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing dictionary: %v", err)
	}
}

func TestCheckerIsValid(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "en", []string{"hello", "world", "test"})

	cache := NewCache(dir)
	checker, err := cache.Get("en")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if !checker.IsValid("hello") {
		t.Error("Expected 'hello' to be valid")
	}
	if !checker.IsValid("HELLO") {
		t.Error("Expected matching to be case-insensitive")
	}
	if checker.IsValid("helo") {
		t.Error("Expected 'helo' to be invalid")
	}
}

func TestCheckerSuggest(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "en", []string{"hello", "help", "hallo", "world", "universe"})

	cache := NewCache(dir)
	checker, err := cache.Get("en")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	got := checker.Suggest("helo")
	// distance 1: hello, help; distance 2: hallo
	expected := []string{"hello", "help", "hallo"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Suggest(\"helo\") = %v, want %v", got, expected)
	}
}

func TestCheckerSuggest_ValidWordHasNoSuggestions(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "en", []string{"hello"})

	cache := NewCache(dir)
	checker, _ := cache.Get("en")

	if got := checker.Suggest("hello"); len(got) != 0 {
		t.Errorf("Suggest for a valid word = %v, want empty", got)
	}
}

func TestCacheGet_MissingLanguage(t *testing.T) {
	cache := NewCache(t.TempDir())

	if _, err := cache.Get("xx"); err == nil {
		t.Error("Expected error for missing dictionary")
	}
	// Second call must hit the remembered failure, not the filesystem
	if _, err := cache.Get("xx"); err == nil {
		t.Error("Expected remembered error on second call")
	}
}

func TestCacheGet_SingleLoad(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "en", []string{"shared"})

	cache := NewCache(dir)

	var wg sync.WaitGroup
	checkers := make([]*Checker, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			checker, err := cache.Get("en")
			if err != nil {
				t.Errorf("Get returned error: %v", err)
				return
			}
			checkers[i] = checker
		}(i)
	}
	wg.Wait()

	for i := 1; i < 8; i++ {
		if checkers[i] != checkers[0] {
			t.Fatal("Expected every goroutine to receive the same checker instance")
		}
	}
}

func TestLanguages(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "en", []string{"one"})
	writeDict(t, dir, "es", []string{"uno"})

	cache := NewCache(dir)
	got := cache.Languages()
	expected := []string{"en", "es"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Languages = %v, want %v", got, expected)
	}
}
