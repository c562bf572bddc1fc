// Package command implements the operations a user can run against the model.
package command

import (
	"context"
	"fmt"

	"github.com/nikbrunner/readme/internal/logger"
	"github.com/nikbrunner/readme/internal/model"
)

// Command is one parsed user command. The set of commands is closed;
// see Execute for the variants.
type Command interface {
	command()
}

// FeedFetcher retrieves the items of a feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]model.Entry, error)
}

// ArticleArchiver keeps offline copies of archived entries.
type ArticleArchiver interface {
	Archive(ctx context.Context, e model.Entry) error
	Discard(e model.Entry) error
}

// Env is everything a command may read or change.
type Env struct {
	Model    *model.Model
	History  *History
	Feeds    FeedFetcher
	Articles ArticleArchiver // optional
	Logger   logger.Logger   // optional
}

// Result is the outcome of a successful command.
type Result struct {
	Feedback string
	ShowHelp bool
	Exit     bool
}

// Error is a command that was understood but could not be carried out.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

func failf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// Execute runs cmd against env. Commands validate before they mutate,
// so the model is unchanged whenever an error is returned.
func Execute(ctx context.Context, cmd Command, env Env) (Result, error) {
	if env.Logger == nil {
		env.Logger = logger.Nop()
	}

	switch c := cmd.(type) {
	case Add:
		return executeAdd(c, env)
	case AddResult:
		return executeAddResult(c, env)
	case Edit:
		return executeEdit(c, env)
	case Delete:
		return executeDelete(c, env)
	case Clear:
		return executeClear(env)
	case Find:
		return executeFind(c, env)
	case List:
		return executeList(env)
	case Archive:
		return executeArchive(ctx, c, env)
	case Unarchive:
		return executeUnarchive(c, env)
	case SwitchContext:
		return executeSwitchContext(c, env)
	case Feed:
		return executeFeed(ctx, c, env)
	case Subscribe:
		return executeSubscribe(c, env)
	case Unsubscribe:
		return executeUnsubscribe(c, env)
	case Refresh:
		return executeRefresh(ctx, env)
	case ViewMode:
		return executeViewMode(c, env)
	case HistoryList:
		return executeHistory(env)
	case Help:
		return Result{Feedback: MessageShowingHelp, ShowHelp: true}, nil
	case Exit:
		return Result{Feedback: MessageExit, Exit: true}, nil
	default:
		return Result{}, fmt.Errorf("unknown command type %T", cmd)
	}
}

// entryAt resolves a 1-based index against the current filtered view.
func entryAt(m *model.Model, index int) (model.Entry, error) {
	entries := m.FilteredEntries()
	if index < 1 || index > len(entries) {
		return model.Entry{}, &Error{Msg: MessageInvalidIndex}
	}
	return entries[index-1], nil
}

func requireContext(m *model.Model, allowed ...model.Context) error {
	for _, c := range allowed {
		if m.Context() == c {
			return nil
		}
	}
	return failf(MessageWrongContext, m.Context())
}
