package textanalysis

import (
	"reflect"
	"testing"

	"wordflow/pkg/models"
)

func TestCount(t *testing.T) {
	got := Count([]string{"test", "test"})
	expected := []models.WordEntry{{Text: "test", UsageCount: 2}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Count = %v, want %v", got, expected)
	}
}

func TestCount_AlphabeticalOrder(t *testing.T) {
	got := Count([]string{"zebra", "apple", "mango", "apple"})
	expected := []models.WordEntry{
		{Text: "apple", UsageCount: 2},
		{Text: "mango", UsageCount: 1},
		{Text: "zebra", UsageCount: 1},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Count = %v, want %v", got, expected)
	}
}

func TestCount_Deterministic(t *testing.T) {
	words := []string{"c", "a", "b", "a", "c", "c"}
	first := Count(words)
	for i := 0; i < 50; i++ {
		if got := Count(words); !reflect.DeepEqual(got, first) {
			t.Fatalf("Count not deterministic: run %d produced %v, first run %v", i, got, first)
		}
	}
}

func TestCount_Empty(t *testing.T) {
	got := Count(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", got)
	}
}

func TestMostCommon(t *testing.T) {
	words := []string{"b", "a", "a", "c", "c", "c", "b"}

	got := MostCommon(words, 2)
	expected := []models.WordEntry{
		{Text: "c", UsageCount: 3},
		{Text: "a", UsageCount: 2},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("MostCommon = %v, want %v", got, expected)
	}
}

func TestMostCommon_TieBreaksAlphabetically(t *testing.T) {
	got := MostCommon([]string{"b", "a", "b", "a"}, 0)
	expected := []models.WordEntry{
		{Text: "a", UsageCount: 2},
		{Text: "b", UsageCount: 2},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("MostCommon = %v, want %v", got, expected)
	}
}

func TestByMinFrequency(t *testing.T) {
	words := []string{"once", "twice", "twice", "thrice", "thrice", "thrice"}

	got := ByMinFrequency(words, 2)
	expected := []models.WordEntry{
		{Text: "thrice", UsageCount: 3},
		{Text: "twice", UsageCount: 2},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ByMinFrequency = %v, want %v", got, expected)
	}
}
