package history

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Search returns the entries whose title or path fuzzily contains query, most recent
// first. An empty query matches everything.
func Search(query string) ([]Entry, error) {
	entries, err := List()
	if err != nil {
		return nil, err
	}

	if query == "" {
		return entries, nil
	}

	return lo.Filter(entries, func(entry Entry, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, entry.Title) || fuzzy.MatchNormalizedFold(query, entry.Path)
	}), nil
}
