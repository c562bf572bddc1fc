package model_test

import (
	"errors"
	"testing"

	"github.com/nikbrunner/readme/internal/model"
)

func entry(title, link string, tags ...string) model.Entry {
	return model.NewEntry(model.NewEntryParams{Title: title, Link: link, Tags: tags})
}

func TestEntryBook_Add(t *testing.T) {
	b := model.NewEntryBook()
	a := entry("A", "http://a")

	if err := b.Add(a); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	rev := b.Revision()

	dup := a
	dup.Description = "other"
	if err := b.Add(dup); !errors.Is(err, model.ErrDuplicateEntry) {
		t.Errorf("Add(duplicate) error = %v, want ErrDuplicateEntry", err)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
	if b.Revision() != rev {
		t.Error("failed Add changed the revision")
	}
}

func TestEntryBook_NoDuplicatesAfterMutations(t *testing.T) {
	b := model.NewEntryBook()
	entries := []model.Entry{
		entry("A", "http://a"),
		entry("B", "http://b"),
		entry("A", "http://a", "dup"),
		entry("C", "http://c"),
	}
	b.Merge(entries)
	_ = b.Set(entries[1], entry("C", "http://c"))
	_ = b.Set(entries[1], entry("A", "http://a"))

	all := b.Entries()
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if model.IsSameEntry(all[i], all[j]) {
				t.Errorf("entries %d and %d are duplicates: %v", i, j, all[i])
			}
		}
	}
}

func TestEntryBook_Set(t *testing.T) {
	a := entry("A", "http://a")
	b := entry("B", "http://b")
	c := entry("C", "http://c")

	tests := []struct {
		name        string
		target      model.Entry
		replacement model.Entry
		wantErr     error
		want        []model.Entry
	}{
		{
			name:        "replaces in place",
			target:      a,
			replacement: c,
			want:        []model.Entry{c, b},
		},
		{
			name:        "replacement same as target is allowed",
			target:      a,
			replacement: entry("A", "http://a", "tagged"),
			want:        []model.Entry{entry("A", "http://a", "tagged"), b},
		},
		{
			name:        "missing target",
			target:      c,
			replacement: entry("D", "http://d"),
			wantErr:     model.ErrEntryNotFound,
			want:        []model.Entry{a, b},
		},
		{
			name:        "collides with other entry",
			target:      a,
			replacement: b,
			wantErr:     model.ErrDuplicateEntry,
			want:        []model.Entry{a, b},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, err := model.FromEntries([]model.Entry{a, b})
			if err != nil {
				t.Fatalf("FromEntries() error = %v", err)
			}

			err = book.Set(tt.target, tt.replacement)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Set() error = %v, want %v", err, tt.wantErr)
			}

			want, _ := model.FromEntries(tt.want)
			if !book.Equal(want) {
				t.Errorf("entries = %v, want %v", book.Entries(), tt.want)
			}
		})
	}
}

func TestEntryBook_Remove(t *testing.T) {
	a := entry("A", "http://a")
	book, _ := model.FromEntries([]model.Entry{a})

	if err := book.Remove(entry("B", "http://b")); !errors.Is(err, model.ErrEntryNotFound) {
		t.Errorf("Remove(missing) error = %v, want ErrEntryNotFound", err)
	}
	if err := book.Remove(a); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if book.Len() != 0 {
		t.Errorf("Len() = %d, want 0", book.Len())
	}
}

func TestEntryBook_FilterIdempotent(t *testing.T) {
	book, _ := model.FromEntries([]model.Entry{
		entry("Go Tour", "http://tour"),
		entry("Rust Book", "http://rust"),
		entry("Effective Go", "http://effective"),
	})
	p := model.SearchCriteria{Keywords: []string{"go"}}

	book.UpdateFilter(p)
	once := book.Filtered()
	book.UpdateFilter(p)
	twice := book.Filtered()

	if len(once) != 2 || len(once) != len(twice) {
		t.Fatalf("filtered sizes = %d, %d, want 2, 2", len(once), len(twice))
	}
	for i := range once {
		if !once[i].Equal(twice[i]) {
			t.Errorf("filtered[%d] = %v, want %v", i, twice[i], once[i])
		}
	}
	if once[0].Title != "Go Tour" || once[1].Title != "Effective Go" {
		t.Errorf("filtered order not preserved: %v", once)
	}
}

func TestEntryBook_FilterFollowsMutations(t *testing.T) {
	book := model.NewEntryBook()
	book.UpdateFilter(model.SearchCriteria{Tags: []string{"go"}})

	if got := len(book.Filtered()); got != 0 {
		t.Fatalf("len(Filtered()) = %d, want 0", got)
	}

	_ = book.Add(entry("A", "http://a", "go"))
	_ = book.Add(entry("B", "http://b"))

	if got := len(book.Filtered()); got != 1 {
		t.Errorf("len(Filtered()) after Add = %d, want 1", got)
	}
}

func TestEntryBook_FindScenario(t *testing.T) {
	book, _ := model.FromEntries([]model.Entry{entry("A", "http://a")})

	book.UpdateFilter(model.SearchCriteria{Keywords: []string{"A"}})
	if got := len(book.Filtered()); got != 1 {
		t.Errorf("find A: len = %d, want 1", got)
	}

	book.UpdateFilter(model.SearchCriteria{Keywords: []string{"Z"}})
	if got := len(book.Filtered()); got != 0 {
		t.Errorf("find Z: len = %d, want 0", got)
	}
}

func TestEntryBook_SetEntriesRejectsDuplicates(t *testing.T) {
	book, _ := model.FromEntries([]model.Entry{entry("A", "http://a")})

	err := book.SetEntries([]model.Entry{entry("B", "http://b"), entry("B", "http://b")})
	if !errors.Is(err, model.ErrDuplicateEntry) {
		t.Fatalf("SetEntries() error = %v, want ErrDuplicateEntry", err)
	}
	if book.Len() != 1 || book.Entries()[0].Title != "A" {
		t.Errorf("book changed after failed SetEntries: %v", book.Entries())
	}
}

func TestEntryBook_Merge(t *testing.T) {
	book, _ := model.FromEntries([]model.Entry{entry("A", "http://a")})

	added, skipped := book.Merge([]model.Entry{
		entry("A", "http://a"),
		entry("B", "http://b"),
		entry("C", "http://c"),
	})

	if added != 2 || skipped != 1 {
		t.Errorf("Merge() = (%d, %d), want (2, 1)", added, skipped)
	}
}

func TestEntryBook_EqualIsOrderSensitive(t *testing.T) {
	a, b := entry("A", "http://a"), entry("B", "http://b")
	ab, _ := model.FromEntries([]model.Entry{a, b})
	ba, _ := model.FromEntries([]model.Entry{b, a})
	ab2, _ := model.FromEntries([]model.Entry{a, b})

	if ab.Equal(ba) {
		t.Error("books with different order compared equal")
	}
	if !ab.Equal(ab2) {
		t.Error("books with same entries compared unequal")
	}
}
