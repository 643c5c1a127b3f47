package commands

import (
	"context"
	"sort"
	"strings"

	"photocat/internal/application"
	"photocat/internal/catalog"
)

// SearchResult is a cataloged file with a relevance score
type SearchResult struct {
	Entry *catalog.Entry
	Score int
}

// SearchCommand fuzzy-matches file names, paths and keywords
type SearchCommand struct {
	session *application.Session
	Query   string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(session *application.Session, query string) *SearchCommand {
	return &SearchCommand{
		session: session,
		Query:   query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}
	return FuzzySort(c.session.Catalog().Entries(), c.Query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && isSeparator(target[i-1]) {
				score += 10
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

func isSeparator(b byte) bool {
	switch b {
	case ' ', '.', '-', '_', '/':
		return true
	}
	return false
}

// FuzzySort scores entries against the query and sorts them by relevance.
// Ties keep id order.
func FuzzySort(entries []*catalog.Entry, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(entries))

	for _, e := range entries {
		best := max(FuzzyScore(e.FileName(), query), FuzzyScore(e.FullPath(), query)/2)
		for _, kw := range e.Keywords() {
			best = max(best, FuzzyScore(kw, query))
		}

		if best > 0 {
			scored = append(scored, SearchResult{
				Entry: e,
				Score: best,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
