// Package logic runs command lines against the model and keeps storage in sync.
package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikbrunner/readme/internal/command"
	"github.com/nikbrunner/readme/internal/logger"
	"github.com/nikbrunner/readme/internal/model"
	"github.com/nikbrunner/readme/internal/parser"
	"github.com/nikbrunner/readme/internal/storage"
)

// ErrSave is returned when a command ran but its result could not be persisted.
var ErrSave = errors.New("could not save data")

// persisted lists the contexts whose books are stored. Search results are not.
var persisted = []model.Context{model.ContextList, model.ContextArchives, model.ContextFeeds}

// Params holds the dependencies of a Logic.
type Params struct {
	Backend   *storage.Backend
	PrefsPath string                  // empty keeps preferences in memory
	Feeds     command.FeedFetcher     // required for feed commands
	Articles  command.ArticleArchiver // optional
	Logger    logger.Logger           // optional
}

// Logic owns the model, the command history and persistence.
type Logic struct {
	model   *model.Model
	history *command.History
	parsers map[model.Context]*parser.Parser

	books     map[model.Context]storage.BookStorage
	revisions map[model.Context]uint64 // revision of each book at its last load or save

	prefsPath  string
	savedPrefs model.UserPrefs

	feeds    command.FeedFetcher
	articles command.ArticleArchiver
	log      logger.Logger
}

// New loads every book from the backend and creates a Logic.
// Books that are missing or unreadable start empty.
func New(p Params) *Logic {
	log := p.Logger
	if log == nil {
		log = logger.Nop()
	}

	l := &Logic{
		history:   command.NewHistory(),
		parsers:   make(map[model.Context]*parser.Parser, len(model.Contexts)),
		books:     map[model.Context]storage.BookStorage{},
		revisions: map[model.Context]uint64{},
		prefsPath: p.PrefsPath,
		feeds:     p.Feeds,
		articles:  p.Articles,
		log:       log,
	}
	for _, c := range model.Contexts {
		l.parsers[c] = parser.New(c)
	}

	var params model.ModelParams
	if p.Backend != nil {
		l.books[model.ContextList] = p.Backend.List
		l.books[model.ContextArchives] = p.Backend.Archives
		l.books[model.ContextFeeds] = p.Backend.Feeds

		params.List = l.load(model.ContextList)
		params.Archives = l.load(model.ContextArchives)
		params.Feeds = l.load(model.ContextFeeds)
	}
	params.Prefs = l.loadPrefs()

	l.model = model.NewModel(params)
	l.savedPrefs = l.model.Prefs()
	for _, c := range persisted {
		l.revisions[c] = l.model.Book(c).Revision()
	}
	return l
}

func (l *Logic) load(c model.Context) *model.EntryBook {
	book, err := l.books[c].Load()
	switch {
	case err == nil:
		l.log.Debug("loaded book", logger.String("book", c.String()), logger.Int("entries", book.Len()))
		return book
	case errors.Is(err, storage.ErrNoData):
		l.log.Info("no saved data, starting with an empty book", logger.String("book", c.String()))
	case errors.Is(err, storage.ErrDataFormat):
		l.log.Warn("data file is not in the correct format, starting with an empty book",
			logger.String("book", c.String()), logger.Error(err))
	default:
		l.log.Warn("problem while reading data, starting with an empty book",
			logger.String("book", c.String()), logger.Error(err))
	}
	return model.NewEntryBook()
}

func (l *Logic) loadPrefs() *model.UserPrefs {
	if l.prefsPath == "" {
		return nil
	}
	prefs, err := storage.LoadPrefs(l.prefsPath)
	if err != nil {
		l.log.Warnf("could not read preferences from %s, using defaults: %v", l.prefsPath, err)
		return nil
	}
	return prefs
}

// Model returns the model for display. Changes must go through Execute.
func (l *Logic) Model() *model.Model {
	return l.model
}

// History returns the successfully executed command lines.
func (l *Logic) History() *command.History {
	return l.history
}

// Context returns the current context.
func (l *Logic) Context() model.Context {
	return l.model.Context()
}

// ViewMode returns the current view mode.
func (l *Logic) ViewMode() model.ViewMode {
	return l.model.ViewMode()
}

// FilteredEntries returns the entries visible in the current context.
func (l *Logic) FilteredEntries() []model.Entry {
	return l.model.FilteredEntries()
}

// Execute parses line with the parser of the current context, runs it and
// saves every book it changed. Parse and command errors leave the model
// untouched. A save error wraps ErrSave; the command's effect is kept.
func (l *Logic) Execute(ctx context.Context, line string) (command.Result, error) {
	l.log.Debugf("execute %q in %s", line, l.Context())

	cmd, err := l.parsers[l.Context()].Parse(line)
	if err != nil {
		return command.Result{}, err
	}

	result, err := command.Execute(ctx, cmd, command.Env{
		Model:    l.model,
		History:  l.history,
		Feeds:    l.feeds,
		Articles: l.articles,
		Logger:   l.log,
	})
	if err != nil {
		l.log.Debug("command failed", logger.String("line", line), logger.Error(err))
		return command.Result{}, err
	}
	l.history.Add(line)

	if err := l.Save(); err != nil {
		return result, err
	}
	return result, nil
}

// Import adds entries to the reading list, skipping duplicates, and saves.
func (l *Logic) Import(entries []model.Entry) (added, skipped int, err error) {
	added, skipped = l.model.MergeInto(model.ContextList, entries)
	l.log.Info("imported entries", logger.Int("added", added), logger.Int("skipped", skipped))
	return added, skipped, l.Save()
}

// Remove deletes entries from the book of context c and saves.
// Entries that are not in the book are ignored.
func (l *Logic) Remove(c model.Context, entries []model.Entry) (removed int, err error) {
	for _, e := range entries {
		if l.model.DeleteEntryFrom(c, e) == nil {
			removed++
		}
	}
	return removed, l.Save()
}

// Save writes every book and the preferences if they changed since the last save.
func (l *Logic) Save() error {
	var errs []error
	for _, c := range persisted {
		store, ok := l.books[c]
		if !ok {
			continue
		}
		book := l.model.Book(c)
		if book.Revision() == l.revisions[c] {
			continue
		}
		if err := store.Save(book); err != nil {
			l.log.Error("failed to save book", logger.String("book", c.String()), logger.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
			continue
		}
		l.revisions[c] = book.Revision()
		l.log.Debug("saved book", logger.String("book", c.String()), logger.Int("entries", book.Len()))
	}

	if prefs := l.model.Prefs(); l.prefsPath != "" && prefs != l.savedPrefs {
		if err := storage.SavePrefs(l.prefsPath, &prefs); err != nil {
			l.log.Error("failed to save preferences", logger.Error(err))
			errs = append(errs, fmt.Errorf("preferences: %w", err))
		} else {
			l.savedPrefs = prefs
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrSave, errors.Join(errs...))
	}
	return nil
}
