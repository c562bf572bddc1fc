package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nikbrunner/readme/internal/model"
)

var (
	// ErrNoData means nothing has been saved yet.
	ErrNoData = errors.New("no saved data")
	// ErrDataFormat means the saved data could not be read.
	ErrDataFormat = errors.New("invalid data format")
)

// BookStorage persists a single entry book.
type BookStorage interface {
	Load() (*model.EntryBook, error)
	Save(book *model.EntryBook) error
}

// snapshot is the on-disk form of an entry book.
type snapshot struct {
	Entries []model.Entry `json:"entries"`
}

// JSONStorage implements BookStorage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the book from the JSON file.
// Returns ErrNoData if the file doesn't exist.
func (s *JSONStorage) Load() (*model.EntryBook, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoData
		}
		return nil, err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataFormat, s.path, err)
	}
	return bookFromEntries(snap.Entries, s.path)
}

// Save writes the book to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(book *model.EntryBook) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot{Entries: book.Entries()}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// bookFromEntries normalizes loaded entries and rejects duplicates.
func bookFromEntries(entries []model.Entry, source string) (*model.EntryBook, error) {
	normalized := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Link == "" {
			return nil, fmt.Errorf("%w: %s: entry %q has no link", ErrDataFormat, source, e.Title)
		}
		normalized = append(normalized, model.NewEntry(model.NewEntryParams{
			Title:       e.Title,
			Description: e.Description,
			Link:        e.Link,
			Address:     e.Address,
			Tags:        e.Tags,
		}))
	}

	book, err := model.FromEntries(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataFormat, source, err)
	}
	return book, nil
}

// Book names used for files and database rows.
const (
	BookList     = "list"
	BookArchives = "archives"
	BookFeeds    = "feeds"
)

// Backend kinds.
const (
	KindJSON   = "json"
	KindSQLite = "sqlite"
)

// Backend holds the storage of every persisted book.
type Backend struct {
	Kind     string
	List     BookStorage
	Archives BookStorage
	Feeds    BookStorage

	closer io.Closer
}

// Close releases the backend's resources.
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// SQLitePath returns the database path inside dataDir.
func SQLitePath(dataDir string) string {
	return filepath.Join(dataDir, "readme.db")
}

// Open opens the storage backend of the given kind in dataDir.
// An empty kind prefers SQLite if the database file exists, otherwise JSON.
func Open(dataDir, kind string) (*Backend, error) {
	if kind == "" {
		kind = KindJSON
		if _, err := os.Stat(SQLitePath(dataDir)); err == nil {
			kind = KindSQLite
		}
	}

	switch kind {
	case KindJSON:
		return &Backend{
			Kind:     KindJSON,
			List:     NewJSONStorage(filepath.Join(dataDir, BookList+".json")),
			Archives: NewJSONStorage(filepath.Join(dataDir, BookArchives+".json")),
			Feeds:    NewJSONStorage(filepath.Join(dataDir, BookFeeds+".json")),
		}, nil
	case KindSQLite:
		db, err := NewSQLiteStorage(SQLitePath(dataDir))
		if err != nil {
			return nil, err
		}
		return &Backend{
			Kind:     KindSQLite,
			List:     db.Book(BookList),
			Archives: db.Book(BookArchives),
			Feeds:    db.Book(BookFeeds),
			closer:   db,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}
}
