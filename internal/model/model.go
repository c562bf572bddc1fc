package model

import "fmt"

// UserPrefs holds preferences that survive between sessions.
type UserPrefs struct {
	ViewMode ViewMode `json:"viewMode"`
}

// DefaultUserPrefs returns the preferences used on first start.
func DefaultUserPrefs() UserPrefs {
	return UserPrefs{ViewMode: ViewMode{Type: ViewBrowser}}
}

// Model owns one entry book per context and the state commands act on.
type Model struct {
	books    map[Context]*EntryBook
	context  Context
	viewMode ViewMode
	prefs    UserPrefs
}

// ModelParams holds the initial books of a Model. nil books start empty.
type ModelParams struct {
	List     *EntryBook
	Archives *EntryBook
	Feeds    *EntryBook
	Prefs    *UserPrefs
}

// NewModel creates a Model in the reading list context.
func NewModel(params ModelParams) *Model {
	prefs := DefaultUserPrefs()
	if params.Prefs != nil {
		prefs = *params.Prefs
	}

	m := &Model{
		books: map[Context]*EntryBook{
			ContextList:     orEmpty(params.List),
			ContextArchives: orEmpty(params.Archives),
			ContextSearch:   NewEntryBook(),
			ContextFeeds:    orEmpty(params.Feeds),
		},
		context:  ContextList,
		viewMode: prefs.ViewMode,
		prefs:    prefs,
	}
	return m
}

func orEmpty(b *EntryBook) *EntryBook {
	if b == nil {
		return NewEntryBook()
	}
	return b
}

// Context returns the current context.
func (m *Model) Context() Context {
	return m.context
}

// SetContext switches the current context and clears its filter.
func (m *Model) SetContext(c Context) {
	m.context = c
	m.books[c].UpdateFilter(MatchAll)
}

// Book returns the book bound to c. Callers must not mutate it;
// use the Model operations instead.
func (m *Model) Book(c Context) *EntryBook {
	return m.books[c]
}

func (m *Model) current() *EntryBook {
	return m.books[m.context]
}

// FilteredEntries returns the filtered view of the current book.
func (m *Model) FilteredEntries() []Entry {
	return m.current().Filtered()
}

// UpdateFilter applies p to the current book.
func (m *Model) UpdateFilter(p Predicate) {
	m.current().UpdateFilter(p)
}

// HasEntry reports whether the current book holds an entry like e.
func (m *Model) HasEntry(e Entry) bool {
	return m.current().Has(e)
}

// AddEntry adds e to the current book.
func (m *Model) AddEntry(e Entry) error {
	return m.current().Add(e)
}

// AddEntryTo adds e to the book of context c.
func (m *Model) AddEntryTo(c Context, e Entry) error {
	return m.books[c].Add(e)
}

// SetEntry replaces target with replacement in the current book.
func (m *Model) SetEntry(target, replacement Entry) error {
	return m.current().Set(target, replacement)
}

// DeleteEntry removes e from the current book.
func (m *Model) DeleteEntry(e Entry) error {
	return m.current().Remove(e)
}

// DeleteEntryFrom removes e from the book of context c.
func (m *Model) DeleteEntryFrom(c Context, e Entry) error {
	return m.books[c].Remove(e)
}

// ClearBook removes every entry from the current book.
func (m *Model) ClearBook() {
	m.current().Clear()
}

// MoveEntry moves e from one book to another.
// Nothing changes unless e is in from and absent from to.
func (m *Model) MoveEntry(from, to Context, e Entry) error {
	src, dst := m.books[from], m.books[to]
	if src.indexOf(e) < 0 {
		return ErrEntryNotFound
	}
	if dst.Has(e) {
		return ErrDuplicateEntry
	}
	if err := src.Remove(e); err != nil {
		return err
	}
	return dst.Add(e)
}

// MergeInto adds entries to the book of context c, skipping duplicates.
func (m *Model) MergeInto(c Context, entries []Entry) (added, skipped int) {
	return m.books[c].Merge(entries)
}

// SetSearchBook replaces the search results with entries.
func (m *Model) SetSearchBook(entries []Entry) error {
	if err := m.books[ContextSearch].SetEntries(entries); err != nil {
		return fmt.Errorf("set search results: %w", err)
	}
	return nil
}

// ViewMode returns the current view mode.
func (m *Model) ViewMode() ViewMode {
	return m.viewMode
}

// SetViewMode changes the current view mode and remembers it in the preferences.
func (m *Model) SetViewMode(v ViewMode) {
	m.viewMode = v
	m.prefs.ViewMode = v
}

// Prefs returns the user preferences.
func (m *Model) Prefs() UserPrefs {
	return m.prefs
}

// Clone returns an independent deep copy of the model.
func (m *Model) Clone() *Model {
	books := make(map[Context]*EntryBook, len(m.books))
	for c, b := range m.books {
		books[c] = b.Clone()
	}
	return &Model{
		books:    books,
		context:  m.context,
		viewMode: m.viewMode,
		prefs:    m.prefs,
	}
}

// Equal reports whether both models hold the same books, context, view mode
// and current filtered view.
func (m *Model) Equal(other *Model) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.context != other.context || m.viewMode != other.viewMode {
		return false
	}
	for _, c := range Contexts {
		if !m.books[c].Equal(other.books[c]) {
			return false
		}
	}
	return equalEntries(m.FilteredEntries(), other.FilteredEntries())
}

func equalEntries(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
