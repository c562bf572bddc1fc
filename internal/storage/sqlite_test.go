package storage_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/readme/internal/model"
	"github.com/nikbrunner/readme/internal/storage"
)

func openSQLite(t *testing.T, name string) *storage.SQLiteStorage {
	t.Helper()
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage_SaveAndLoad(t *testing.T) {
	s := openSQLite(t, "readme.db")
	book := testBook(t)

	if err := s.Book(storage.BookList).Save(book); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Book(storage.BookList).Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if !loaded.Equal(book) {
		t.Errorf("loaded %v, want %v", loaded.Entries(), book.Entries())
	}
	if got := loaded.Entries()[0].Tags; len(got) != 2 {
		t.Errorf("expected 2 tags, got %v", got)
	}
}

func TestSQLiteStorage_NeverSaved(t *testing.T) {
	s := openSQLite(t, "readme.db")

	_, err := s.Book(storage.BookFeeds).Load()
	if !errors.Is(err, storage.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestSQLiteStorage_EmptyBookIsNotNoData(t *testing.T) {
	s := openSQLite(t, "readme.db")

	if err := s.Book(storage.BookArchives).Save(model.NewEntryBook()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Book(storage.BookArchives).Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if loaded.Len() != 0 {
		t.Errorf("expected empty book, got %d entries", loaded.Len())
	}
}

func TestSQLiteStorage_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "readme.db")

	s, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create storage with nested path: %v", err)
	}
	defer s.Close()

	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}

func TestSQLiteStorage_SaveReplacesBook(t *testing.T) {
	s := openSQLite(t, "replace.db")
	list := s.Book(storage.BookList)

	if err := list.Save(testBook(t)); err != nil {
		t.Fatalf("failed to save initial: %v", err)
	}

	updated, _ := model.FromEntries([]model.Entry{
		model.NewEntry(model.NewEntryParams{Title: "Only", Link: "https://only.example"}),
	})
	if err := list.Save(updated); err != nil {
		t.Fatalf("failed to save updated: %v", err)
	}

	loaded, err := list.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if !loaded.Equal(updated) {
		t.Errorf("loaded %v, want %v", loaded.Entries(), updated.Entries())
	}
}

func TestSQLiteStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readme.db")

	s, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if err := s.Book(storage.BookList).Save(testBook(t)); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	s.Close()

	s, err = storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	defer s.Close()

	loaded, err := s.Book(storage.BookList).Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if loaded.Len() != 3 {
		t.Errorf("expected 3 entries after reopen, got %d", loaded.Len())
	}
}
