// Package search ranks entries against a free-text query.
package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/readme/internal/model"
)

// Result represents a fuzzy search match.
type Result struct {
	Entry model.Entry
	// Index is the position of Entry in the searched slice.
	Index int
	// MatchedIndexes are rune positions within Entry.Title.
	MatchedIndexes []int
	Score          int
}

// entrySource implements fuzzy.Source. Each entry is searched as its
// title followed by its tags, so "#go" style queries also match.
type entrySource []model.Entry

func (s entrySource) String(i int) string {
	e := s[i]
	if len(e.Tags) == 0 {
		return e.Title
	}
	return e.Title + " #" + strings.Join(e.Tags, " #")
}

func (s entrySource) Len() int {
	return len(s)
}

// Fuzzy searches entries by title and tags.
// Returns results sorted by match score (best first).
func Fuzzy(entries []model.Entry, query string) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, entrySource(entries))

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Entry:          entries[m.Index].Clone(),
			Index:          m.Index,
			MatchedIndexes: titleIndexes(entries[m.Index].Title, m.MatchedIndexes),
			Score:          m.Score,
		}
	}

	return results
}

// titleIndexes keeps only the matched positions that fall inside the title.
func titleIndexes(title string, indexes []int) []int {
	n := len([]rune(title))
	kept := make([]int, 0, len(indexes))
	for _, i := range indexes {
		if i < n {
			kept = append(kept, i)
		}
	}
	return kept
}
