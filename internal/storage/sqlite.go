package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/readme/internal/model"
)

const currentSchemaVersion = 1

// SQLiteStorage keeps every book in one SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Book returns the storage of the named book.
func (s *SQLiteStorage) Book(name string) *SQLiteBook {
	return &SQLiteBook{s: s, name: name}
}

func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS books (
			name TEXT PRIMARY KEY NOT NULL,
			saved_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS entries (
			book TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (book, position)
		);

		CREATE INDEX IF NOT EXISTS idx_entries_link ON entries(link);

		INSERT OR REPLACE INTO schema_version (version) VALUES (%d);
	`, currentSchemaVersion)
	_, err := s.db.Exec(schema)
	return err
}

// SQLiteBook implements BookStorage for one book of a SQLiteStorage.
type SQLiteBook struct {
	s    *SQLiteStorage
	name string
}

// Load reads the book from the database.
// Returns ErrNoData if the book was never saved.
func (b *SQLiteBook) Load() (*model.EntryBook, error) {
	var savedAt string
	err := b.s.db.QueryRow("SELECT saved_at FROM books WHERE name = ?", b.name).Scan(&savedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}

	rows, err := b.s.db.Query(`
		SELECT title, description, link, address, tags
		FROM entries
		WHERE book = ?
		ORDER BY position
	`, b.name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		var e model.Entry
		var tagsJSON string

		if err := rows.Scan(&e.Title, &e.Description, &e.Link, &e.Address, &tagsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			return nil, fmt.Errorf("%w: tags of %q: %v", ErrDataFormat, e.Link, err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookFromEntries(entries, b.s.path+"#"+b.name)
}

// Save writes the book to the database.
// Uses a transaction for atomicity - all or nothing.
func (b *SQLiteBook) Save(book *model.EntryBook) error {
	tx, err := b.s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries WHERE book = ?", b.name); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO entries (book, position, title, description, link, address, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range book.Entries() {
		tagsJSON, err := json.Marshal(e.Tags)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(b.name, i, e.Title, e.Description, e.Link, e.Address, string(tagsJSON)); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO books (name, saved_at) VALUES (?, ?)",
		b.name, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}

	return tx.Commit()
}
