package search

import (
	"strings"

	"github.com/nikbrunner/gallery/internal/model"
	"github.com/sahilm/fuzzy"
)

// Filter returns the items whose title or description contains query,
// ignoring case. An empty query passes everything. Order is preserved.
func Filter(items []model.Item, query string) []model.Item {
	if strings.TrimSpace(query) == "" {
		return items
	}
	q := strings.ToLower(query)

	result := make([]model.Item, 0, len(items))
	for _, item := range items {
		title, description := item.SearchText()
		if strings.Contains(title, q) || strings.Contains(description, q) {
			result = append(result, item)
		}
	}
	return result
}

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Item           model.Item
	Index          int // position in the searched slice
	MatchedIndexes []int
	Score          int
}

// itemTitles implements fuzzy.Source for an item slice.
type itemTitles []model.Item

func (it itemTitles) String(i int) string {
	return it[i].Title
}

func (it itemTitles) Len() int {
	return len(it)
}

// FuzzySearch ranks items by fuzzy title match.
// Returns results sorted by match score (best first).
func FuzzySearch(items []model.Item, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, itemTitles(items))

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Item:           items[m.Index],
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
