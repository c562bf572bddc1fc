package model

import (
	"fmt"
	"slices"
	"strings"
)

// Entry represents a saved article or feed item.
// Entries are values: two entries with the same fields are the same entry.
type Entry struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description,omitempty"`
	Link        string   `json:"link" yaml:"link"`
	Address     string   `json:"address" yaml:"address,omitempty"`
	Tags        []string `json:"tags" yaml:"tags,omitempty"`
}

// NewEntryParams holds parameters for creating a new Entry.
type NewEntryParams struct {
	Title       string
	Description string
	Link        string
	Address     string
	Tags        []string
}

// NewEntry creates an Entry with normalized tags.
// An empty title falls back to the link.
func NewEntry(params NewEntryParams) Entry {
	title := strings.TrimSpace(params.Title)
	link := strings.TrimSpace(params.Link)
	if title == "" {
		title = link
	}

	return Entry{
		Title:       title,
		Description: strings.TrimSpace(params.Description),
		Link:        link,
		Address:     strings.TrimSpace(params.Address),
		Tags:        NormalizeTags(params.Tags),
	}
}

// NormalizeTags lowercases, de-duplicates and sorts tags.
// Always returns a non-nil slice.
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || slices.Contains(result, t) {
			continue
		}
		result = append(result, t)
	}
	slices.Sort(result)
	return result
}

// IsValidTag reports whether s is usable as a tag name.
func IsValidTag(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// HasTag reports whether the entry carries the tag (case-insensitive).
func (e Entry) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range e.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

// IsSameEntry reports whether two entries count as duplicates:
// same title and same link.
func IsSameEntry(a, b Entry) bool {
	return strings.TrimSpace(a.Title) == strings.TrimSpace(b.Title) &&
		strings.TrimSpace(a.Link) == strings.TrimSpace(b.Link)
}

// Equal reports structural equality. Tags compare as a set.
func (e Entry) Equal(other Entry) bool {
	return e.Title == other.Title &&
		e.Description == other.Description &&
		e.Link == other.Link &&
		e.Address == other.Address &&
		slices.Equal(NormalizeTags(e.Tags), NormalizeTags(other.Tags))
}

// Clone returns a copy that shares no memory with e.
func (e Entry) Clone() Entry {
	e.Tags = slices.Clone(e.Tags)
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e
}

func (e Entry) String() string {
	var tags strings.Builder
	for _, t := range e.Tags {
		fmt.Fprintf(&tags, "[%s]", t)
	}
	return fmt.Sprintf("%s Description: %s Link: %s Address: %s Tags: %s",
		e.Title, e.Description, e.Link, e.Address, tags.String())
}
