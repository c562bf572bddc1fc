package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikbrunner/readme/internal/logger"
	"github.com/nikbrunner/readme/internal/model"
)

// Add adds a new entry to the reading list.
type Add struct {
	Entry model.Entry
}

// AddResult copies a search result into the reading list.
type AddResult struct {
	Index int
}

// Edit changes fields of the entry at Index.
type Edit struct {
	Index      int
	Descriptor EditDescriptor
}

// Delete removes the entry at Index from the current book.
type Delete struct {
	Index int
}

// Clear empties the current book.
type Clear struct{}

// Archive moves a reading list entry to the archives.
type Archive struct {
	Index int
}

// Unarchive moves an archived entry back to the reading list.
type Unarchive struct {
	Index int
}

func (Add) command()       {}
func (AddResult) command() {}
func (Edit) command()      {}
func (Delete) command()    {}
func (Clear) command()     {}
func (Archive) command()   {}
func (Unarchive) command() {}

// EditDescriptor holds the fields an edit changes. nil fields are kept.
type EditDescriptor struct {
	Title       *string
	Description *string
	Link        *string
	Address     *string
	Tags        []string // nil keeps the tags, empty removes them
}

// IsAnyFieldSet reports whether the descriptor changes anything.
func (d EditDescriptor) IsAnyFieldSet() bool {
	return d.Title != nil || d.Description != nil || d.Link != nil ||
		d.Address != nil || d.Tags != nil
}

// Apply overlays the set fields onto e.
func (d EditDescriptor) Apply(e model.Entry) model.Entry {
	params := model.NewEntryParams{
		Title:       e.Title,
		Description: e.Description,
		Link:        e.Link,
		Address:     e.Address,
		Tags:        e.Tags,
	}
	if d.Title != nil {
		params.Title = *d.Title
	}
	if d.Description != nil {
		params.Description = *d.Description
	}
	if d.Link != nil {
		params.Link = *d.Link
	}
	if d.Address != nil {
		params.Address = *d.Address
	}
	if d.Tags != nil {
		params.Tags = d.Tags
	}
	return model.NewEntry(params)
}

func executeAdd(c Add, env Env) (Result, error) {
	m := env.Model
	if err := requireContext(m, model.ContextList); err != nil {
		return Result{}, err
	}
	if err := m.AddEntry(c.Entry); err != nil {
		return Result{}, failf(MessageDuplicate, m.Context())
	}
	return Result{Feedback: fmt.Sprintf(MessageAdded, c.Entry)}, nil
}

func executeAddResult(c AddResult, env Env) (Result, error) {
	m := env.Model
	if err := requireContext(m, model.ContextSearch); err != nil {
		return Result{}, err
	}
	e, err := entryAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := m.AddEntryTo(model.ContextList, e); err != nil {
		return Result{}, failf(MessageDuplicate, model.ContextList)
	}
	return Result{Feedback: fmt.Sprintf(MessageAddedResult, e)}, nil
}

func executeEdit(c Edit, env Env) (Result, error) {
	m := env.Model
	if err := requireContext(m, model.ContextList); err != nil {
		return Result{}, err
	}
	target, err := entryAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	if !c.Descriptor.IsAnyFieldSet() {
		return Result{}, &Error{Msg: MessageNoFieldEdited}
	}

	edited := c.Descriptor.Apply(target)
	if err := m.SetEntry(target, edited); err != nil {
		if errors.Is(err, model.ErrDuplicateEntry) {
			return Result{}, failf(MessageDuplicate, m.Context())
		}
		return Result{}, &Error{Msg: err.Error()}
	}
	m.UpdateFilter(model.MatchAll)

	return Result{Feedback: fmt.Sprintf(MessageEdited, edited)}, nil
}

func executeDelete(c Delete, env Env) (Result, error) {
	m := env.Model
	if err := requireContext(m, model.ContextList, model.ContextArchives, model.ContextFeeds); err != nil {
		return Result{}, err
	}
	e, err := entryAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := m.DeleteEntry(e); err != nil {
		return Result{}, &Error{Msg: err.Error()}
	}

	if m.Context() == model.ContextArchives {
		discardCopy(env, e)
	}
	return Result{Feedback: fmt.Sprintf(MessageDeleted, e)}, nil
}

func executeClear(env Env) (Result, error) {
	m := env.Model
	if err := requireContext(m, model.ContextList, model.ContextArchives); err != nil {
		return Result{}, err
	}

	if m.Context() == model.ContextArchives && env.Articles != nil {
		for _, e := range m.Book(model.ContextArchives).Entries() {
			if err := env.Articles.Discard(e); err != nil {
				env.Logger.Warn("discard offline copy", logger.String("link", e.Link), logger.Error(err))
			}
		}
	}
	m.ClearBook()

	return Result{Feedback: fmt.Sprintf(MessageCleared, m.Context())}, nil
}

func executeArchive(ctx context.Context, c Archive, env Env) (Result, error) {
	m := env.Model
	if err := requireContext(m, model.ContextList); err != nil {
		return Result{}, err
	}
	e, err := entryAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := m.MoveEntry(model.ContextList, model.ContextArchives, e); err != nil {
		if errors.Is(err, model.ErrDuplicateEntry) {
			return Result{}, failf(MessageDuplicate, model.ContextArchives)
		}
		return Result{}, &Error{Msg: err.Error()}
	}

	if env.Articles != nil {
		if err := env.Articles.Archive(ctx, e); err != nil {
			env.Logger.Warn("store offline copy", logger.String("link", e.Link), logger.Error(err))
			return Result{Feedback: fmt.Sprintf(MessageArchivedOnly, e.Title, err)}, nil
		}
	}
	return Result{Feedback: fmt.Sprintf(MessageArchived, e.Title)}, nil
}

func executeUnarchive(c Unarchive, env Env) (Result, error) {
	m := env.Model
	if err := requireContext(m, model.ContextArchives); err != nil {
		return Result{}, err
	}
	e, err := entryAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := m.MoveEntry(model.ContextArchives, model.ContextList, e); err != nil {
		if errors.Is(err, model.ErrDuplicateEntry) {
			return Result{}, failf(MessageDuplicate, model.ContextList)
		}
		return Result{}, &Error{Msg: err.Error()}
	}

	discardCopy(env, e)
	return Result{Feedback: fmt.Sprintf(MessageUnarchived, e.Title)}, nil
}

// discardCopy drops the offline copy of a removed archive entry.
// Copies are stored per link, so the copy stays while another archived
// entry still links to it.
func discardCopy(env Env, e model.Entry) {
	if env.Articles == nil {
		return
	}
	for _, other := range env.Model.Book(model.ContextArchives).Entries() {
		if other.Link == e.Link {
			return
		}
	}
	if err := env.Articles.Discard(e); err != nil {
		env.Logger.Warn("discard offline copy", logger.String("link", e.Link), logger.Error(err))
	}
}
