package commands

import (
	"context"
	"testing"
)

func TestFuzzyScore(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		query     string
		wantScore int
		wantMin   int // use this for relative comparisons
	}{
		{
			name:      "exact match",
			target:    "Theatre",
			query:     "Theatre",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "prefix match",
			target:    "Theatre Season",
			query:     "Theatre",
			wantScore: 150, // 100 for contains + 50 for prefix
		},
		{
			name:      "substring match",
			target:    "My Theatre",
			query:     "Theatre",
			wantScore: 100, // contains only
		},
		{
			name:    "fuzzy match all chars at start",
			target:  "Theatre",
			query:   "the",
			wantMin: 100, // should be high due to prefix
		},
		{
			name:      "no match",
			target:    "Theatre",
			query:     "xyz",
			wantScore: 0,
		},
		{
			name:      "empty query",
			target:    "Theatre",
			query:     "",
			wantScore: 0,
		},
		{
			name:    "case insensitive",
			target:  "THEATRE",
			query:   "theatre",
			wantMin: 100,
		},
		{
			name:    "file name with separator",
			target:  "IMG_2041.jpg",
			query:   "2041",
			wantMin: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := FuzzyScore(tt.target, tt.query)

			if tt.wantScore > 0 {
				if score != tt.wantScore {
					t.Errorf("expected score %d, got %d", tt.wantScore, score)
				}
			} else if tt.wantMin > 0 {
				if score < tt.wantMin {
					t.Errorf("expected score >= %d, got %d", tt.wantMin, score)
				}
			} else {
				if score != 0 {
					t.Errorf("expected score 0, got %d", score)
				}
			}
		})
	}
}

func TestFuzzyScore_Ordering(t *testing.T) {
	// Test that better matches score higher
	query := "theatre"

	exactScore := FuzzyScore("theatre", query)         // exact + prefix = 150
	prefixScore := FuzzyScore("theatre season", query) // contains + prefix = 150
	containsScore := FuzzyScore("my theatre", query)   // contains only = 100
	fuzzyScore := FuzzyScore("t.h.e.a.t.r.e", query)   // fuzzy match only

	if exactScore < prefixScore {
		t.Errorf("exact match should score >= prefix: %d < %d", exactScore, prefixScore)
	}
	if prefixScore < containsScore {
		t.Errorf("prefix match should score >= contains: %d < %d", prefixScore, containsScore)
	}
	if containsScore <= fuzzyScore {
		t.Errorf("contains match should score higher than fuzzy: %d <= %d", containsScore, fuzzyScore)
	}
}

func TestSearchCommand(t *testing.T) {
	s, _ := setupSession(t, map[string]string{
		"/p/theatre-season.jpg": "a",
		"/p/my-theatre.jpg":     "bb",
		"/p/cooking.jpg":        "ccc",
		"/q/random.jpg":         "dddd",
	})
	mustAddPath(t, s, "/p", false)
	mustAddPath(t, s, "/q", false)
	if _, err := NewAddKeywordCommand(s, "theatre", "#4").Execute(context.Background()); err != nil {
		t.Fatal(err)
	}

	results, err := NewSearchCommand(s, "theatre").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	// Verify results are sorted by score descending
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted by score: %d > %d at index %d",
				results[i].Score, results[i-1].Score, i)
		}
	}
	if results[0].Entry.FileName() == "cooking.jpg" {
		t.Error("unrelated file ranked first")
	}

	short, err := NewSearchCommand(s, "t").Execute(context.Background())
	if err != nil || short != nil {
		t.Errorf("expected no results for a one-letter query, got %v, %v", short, err)
	}
}
