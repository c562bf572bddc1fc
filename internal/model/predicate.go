package model

import "strings"

// Predicate decides whether an entry belongs in a filtered view.
type Predicate interface {
	Match(e Entry) bool
}

// PredicateFunc adapts a plain function to Predicate.
type PredicateFunc func(e Entry) bool

// Match implements Predicate.
func (f PredicateFunc) Match(e Entry) bool { return f(e) }

// MatchAll is the predicate of an unfiltered view.
var MatchAll Predicate = PredicateFunc(func(Entry) bool { return true })

// SearchCriteria matches entries by title keywords and per-field terms.
// Zero-valued fields are ignored. Matching is case-insensitive.
type SearchCriteria struct {
	Keywords    []string // any keyword equal to a word of the title
	Title       string   // substring of the title
	Description string   // substring of the description
	Link        string   // substring of the link
	Address     string   // substring of the address
	Tags        []string // entry must carry all of these
}

// IsEmpty reports whether no criterion is set.
func (c SearchCriteria) IsEmpty() bool {
	return len(c.Keywords) == 0 && c.Title == "" && c.Description == "" &&
		c.Link == "" && c.Address == "" && len(c.Tags) == 0
}

// Match implements Predicate.
func (c SearchCriteria) Match(e Entry) bool {
	if len(c.Keywords) > 0 && !titleHasAnyWord(e.Title, c.Keywords) {
		return false
	}
	if !containsFold(e.Title, c.Title) ||
		!containsFold(e.Description, c.Description) ||
		!containsFold(e.Link, c.Link) ||
		!containsFold(e.Address, c.Address) {
		return false
	}
	for _, t := range c.Tags {
		if !e.HasTag(t) {
			return false
		}
	}
	return true
}

func titleHasAnyWord(title string, keywords []string) bool {
	words := strings.Fields(title)
	for _, k := range keywords {
		for _, w := range words {
			if strings.EqualFold(w, k) {
				return true
			}
		}
	}
	return false
}

// containsFold reports whether sub is within s, ignoring case.
// An empty sub always matches.
func containsFold(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
