package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/nikbrunner/readme/internal/command"
	"github.com/nikbrunner/readme/internal/reader"
	"github.com/nikbrunner/readme/internal/tui/layout"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeNormal  Mode = iota // list navigation
	ModeCommand             // typing into the command line
	ModeHelp                // help overlay
)

// MessageType selects how the message line is styled.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// CommandState holds the command line and its history recall.
type CommandState struct {
	Input  textinput.Model
	Recall *command.Recall // nil until the command line is opened
	Busy   bool            // a command is running
}

// NewCommandState creates a CommandState with an initialized input.
func NewCommandState(cfg layout.LayoutConfig) CommandState {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Enter command here..."
	input.CharLimit = cfg.Input.CommandCharLimit
	return CommandState{Input: input}
}

// Reset clears the command line.
func (c *CommandState) Reset() {
	c.Input.Reset()
	c.Recall = nil
}

// ReaderState holds the article shown in reader view mode.
type ReaderState struct {
	Viewport viewport.Model
	Link     string // entry the article belongs to
	Article  reader.Article
	Loading  bool
	Err      error
}

// NewReaderState creates an empty ReaderState.
func NewReaderState() ReaderState {
	return ReaderState{Viewport: viewport.New(0, 0)}
}

// Reset forgets the current article.
func (r *ReaderState) Reset() {
	r.Link = ""
	r.Article = reader.Article{}
	r.Loading = false
	r.Err = nil
	r.Viewport.SetContent("")
	r.Viewport.GotoTop()
}
