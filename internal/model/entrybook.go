package model

import (
	"errors"
	"slices"
)

var (
	ErrDuplicateEntry = errors.New("entry already exists")
	ErrEntryNotFound  = errors.New("entry not found")
)

// EntryBook holds an ordered list of unique entries and a filtered view of it.
// The zero value is an empty, unfiltered book.
type EntryBook struct {
	entries   []Entry
	predicate Predicate

	// Cached filtered view, rebuilt on read when stale.
	filtered []Entry
	stale    bool

	// Revision increments on every mutation of entries.
	revision uint64
}

// NewEntryBook creates an empty EntryBook.
func NewEntryBook() *EntryBook {
	return &EntryBook{entries: []Entry{}, stale: true}
}

// FromEntries creates an EntryBook holding entries in order.
// Fails with ErrDuplicateEntry if entries contains duplicates.
func FromEntries(entries []Entry) (*EntryBook, error) {
	b := NewEntryBook()
	if err := b.SetEntries(entries); err != nil {
		return nil, err
	}
	return b, nil
}

// Len returns the number of entries in the backing list.
func (b *EntryBook) Len() int {
	return len(b.entries)
}

// Entries returns a copy of the backing list.
func (b *EntryBook) Entries() []Entry {
	return cloneEntries(b.entries)
}

// Revision returns a counter that changes whenever the entries change.
func (b *EntryBook) Revision() uint64 {
	return b.revision
}

// Has reports whether an entry that is the same as e exists.
func (b *EntryBook) Has(e Entry) bool {
	return b.indexOfSame(e) >= 0
}

// Add appends e, failing with ErrDuplicateEntry if it already exists.
func (b *EntryBook) Add(e Entry) error {
	if b.Has(e) {
		return ErrDuplicateEntry
	}
	b.entries = append(b.entries, e.Clone())
	b.touch()
	return nil
}

// Set replaces target with replacement, keeping its position.
func (b *EntryBook) Set(target, replacement Entry) error {
	idx := b.indexOf(target)
	if idx < 0 {
		return ErrEntryNotFound
	}
	for i := range b.entries {
		if i != idx && IsSameEntry(b.entries[i], replacement) {
			return ErrDuplicateEntry
		}
	}
	b.entries[idx] = replacement.Clone()
	b.touch()
	return nil
}

// Remove deletes e from the book.
func (b *EntryBook) Remove(e Entry) error {
	idx := b.indexOf(e)
	if idx < 0 {
		return ErrEntryNotFound
	}
	b.entries = slices.Delete(b.entries, idx, idx+1)
	b.touch()
	return nil
}

// Clear removes all entries.
func (b *EntryBook) Clear() {
	b.entries = []Entry{}
	b.touch()
}

// SetEntries replaces the whole backing list.
// The book is left unchanged if entries contains duplicates.
func (b *EntryBook) SetEntries(entries []Entry) error {
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			if IsSameEntry(entries[i], entries[j]) {
				return ErrDuplicateEntry
			}
		}
	}
	b.entries = cloneEntries(entries)
	b.touch()
	return nil
}

// Merge adds entries that are not present yet.
// Returns counts of added and skipped entries.
func (b *EntryBook) Merge(entries []Entry) (added, skipped int) {
	for _, e := range entries {
		if err := b.Add(e); err != nil {
			skipped++
			continue
		}
		added++
	}
	return added, skipped
}

// UpdateFilter replaces the active predicate. nil means match all.
func (b *EntryBook) UpdateFilter(p Predicate) {
	b.predicate = p
	b.stale = true
}

// Filtered returns the entries matching the active predicate, in order.
func (b *EntryBook) Filtered() []Entry {
	if b.stale || b.filtered == nil {
		b.filtered = b.filtered[:0]
		for _, e := range b.entries {
			if b.predicate == nil || b.predicate.Match(e) {
				b.filtered = append(b.filtered, e)
			}
		}
		b.stale = false
	}
	return cloneEntries(b.filtered)
}

// Clone returns a deep copy, including the active predicate.
func (b *EntryBook) Clone() *EntryBook {
	return &EntryBook{
		entries:   cloneEntries(b.entries),
		predicate: b.predicate,
		stale:     true,
		revision:  b.revision,
	}
}

// Equal reports whether both books hold equal entries in the same order.
func (b *EntryBook) Equal(other *EntryBook) bool {
	if b == nil || other == nil {
		return b == other
	}
	return slices.EqualFunc(b.entries, other.entries, Entry.Equal)
}

func (b *EntryBook) touch() {
	b.stale = true
	b.revision++
}

// indexOf finds an entry equal to e.
func (b *EntryBook) indexOf(e Entry) int {
	return slices.IndexFunc(b.entries, e.Equal)
}

// indexOfSame finds an entry that duplicates e.
func (b *EntryBook) indexOfSame(e Entry) int {
	return slices.IndexFunc(b.entries, func(x Entry) bool { return IsSameEntry(x, e) })
}

func cloneEntries(entries []Entry) []Entry {
	result := make([]Entry, len(entries))
	for i, e := range entries {
		result[i] = e.Clone()
	}
	return result
}
