package command

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/readme/internal/model"
)

// Find filters the current book.
type Find struct {
	Criteria model.SearchCriteria
}

// List clears the filter of the current book.
type List struct{}

// SwitchContext makes another book current.
type SwitchContext struct {
	Context model.Context
}

// ViewMode changes how the selected entry is displayed.
type ViewMode struct {
	Mode model.ViewMode
}

// HistoryList shows the commands entered so far.
type HistoryList struct{}

// Help shows the command reference.
type Help struct{}

// Exit ends the session.
type Exit struct{}

func (Find) command()          {}
func (List) command()          {}
func (SwitchContext) command() {}
func (ViewMode) command()      {}
func (HistoryList) command()   {}
func (Help) command()          {}
func (Exit) command()          {}

func executeFind(c Find, env Env) (Result, error) {
	env.Model.UpdateFilter(c.Criteria)
	return Result{Feedback: fmt.Sprintf(MessageListed, len(env.Model.FilteredEntries()))}, nil
}

func executeList(env Env) (Result, error) {
	env.Model.UpdateFilter(model.MatchAll)
	return Result{Feedback: MessageListedAll}, nil
}

func executeSwitchContext(c SwitchContext, env Env) (Result, error) {
	env.Model.SetContext(c.Context)
	return Result{Feedback: fmt.Sprintf(MessageSwitched, c.Context)}, nil
}

func executeViewMode(c ViewMode, env Env) (Result, error) {
	env.Model.SetViewMode(c.Mode)
	return Result{Feedback: fmt.Sprintf(MessageViewMode, c.Mode)}, nil
}

func executeHistory(env Env) (Result, error) {
	if env.History == nil || env.History.IsEmpty() {
		return Result{Feedback: MessageNoHistory}, nil
	}

	entries := env.History.Entries()
	lines := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		lines = append(lines, entries[i])
	}
	return Result{Feedback: fmt.Sprintf(MessageHistory, strings.Join(lines, "\n"))}, nil
}
