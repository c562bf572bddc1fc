// Package tui is the interactive terminal interface of readme.
package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/readme/internal/command"
	"github.com/nikbrunner/readme/internal/model"
	"github.com/nikbrunner/readme/internal/reader"
	"github.com/nikbrunner/readme/internal/tui/layout"
)

// Engine runs command lines and exposes the state they produce.
type Engine interface {
	Execute(ctx context.Context, line string) (command.Result, error)
	Context() model.Context
	FilteredEntries() []model.Entry
	ViewMode() model.ViewMode
	History() *command.History
}

// ArticleReader loads the readable text behind a link.
type ArticleReader interface {
	Read(ctx context.Context, link string) (reader.Article, error)
}

// App is the main bubbletea model.
type App struct {
	engine       Engine
	reader       ArticleReader
	openURL      func(string) error
	copyText     func(string) error
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	mode    Mode
	command CommandState
	article ReaderState

	// Snapshot of the engine state, refreshed after each command.
	// Commands run off the UI goroutine, so View never reads the engine.
	context  model.Context
	viewMode model.ViewMode
	items    []Item
	cursor   int

	// Feedback of the last command or action
	messageText string
	messageType MessageType
	resultText  string // multi-line feedback, shown in the detail pane until the next move

	// For gg command
	lastKeyWasG bool

	// Loads the first article; returned once by Init
	initCmd tea.Cmd

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Engine       Engine
	Reader       ArticleReader        // optional, disables reader view content if nil
	OpenURL      func(string) error   // optional, defaults to OpenInBrowser
	Clipboard    func(string) error   // optional, defaults to the system clipboard
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	openURL := params.OpenURL
	if openURL == nil {
		openURL = OpenInBrowser
	}

	copyText := params.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	app := App{
		engine:       params.Engine,
		reader:       params.Reader,
		openURL:      openURL,
		copyText:     copyText,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutConfig,
		command:      NewCommandState(layoutConfig),
		article:      NewReaderState(),
		width:        80,
		height:       24,
	}

	app.refresh()
	app.resize()
	app.initCmd = app.articleCmd()
	return app
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	a.resize()
	return a
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Items returns the listed entries.
func (a App) Items() []Item {
	return a.items
}

// Message returns the text and type of the message line.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// Selected returns the entry under the cursor.
func (a App) Selected() (model.Entry, bool) {
	if a.cursor < 0 || a.cursor >= len(a.items) {
		return model.Entry{}, false
	}
	return a.items[a.cursor].Entry, true
}

// refresh copies the engine state into the app.
func (a *App) refresh() {
	prevContext := a.context
	a.context = a.engine.Context()
	a.viewMode = a.engine.ViewMode()
	a.items = itemsFrom(a.engine.FilteredEntries())

	if a.context != prevContext {
		a.cursor = 0
	}
	a.clampCursor()
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.items) {
		a.cursor = len(a.items) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// resize applies the window size to the command line and reader viewport.
func (a *App) resize() {
	a.command.Input.Width = layout.CalculateInputWidth(a.width, a.layoutConfig.Input)

	panes := layout.CalculatePaneWidths(a.width, a.layoutConfig.Pane)
	height := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	a.article.Viewport.Width = layout.CalculateItemWidth(panes.DetailWidth, a.layoutConfig.Pane)
	a.article.Viewport.Height = layout.CalculateVisibleHeight(height, readerHeaderLines)
	a.syncArticle()
}

func (a *App) setMessage(text string, t MessageType) {
	first, rest, _ := strings.Cut(text, "\n")
	a.messageText = first
	a.messageType = t
	a.resultText = ""
	if rest != "" {
		a.resultText = text
	}
}

// Messages

// executedMsg carries the outcome of a command line.
type executedMsg struct {
	line   string
	result command.Result
	err    error
}

// articleMsg carries a loaded article.
type articleMsg struct {
	link    string
	article reader.Article
	err     error
}

func (a App) executeCmd(line string) tea.Cmd {
	engine := a.engine
	return func() tea.Msg {
		result, err := engine.Execute(context.Background(), line)
		return executedMsg{line: line, result: result, err: err}
	}
}

func (a App) loadArticleCmd(link string) tea.Cmd {
	r := a.reader
	return func() tea.Msg {
		article, err := r.Read(context.Background(), link)
		return articleMsg{link: link, article: article, err: err}
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.initCmd
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case executedMsg:
		return a.handleExecuted(msg)

	case articleMsg:
		if msg.link != a.article.Link {
			// Cursor moved on while loading
			return a, nil
		}
		a.article.Loading = false
		a.article.Article = msg.article
		a.article.Err = msg.err
		a.syncArticle()
		a.article.Viewport.GotoTop()
		return a, nil

	case tea.KeyMsg:
		if a.command.Busy {
			if msg.Type == tea.KeyCtrlC {
				return a, tea.Quit
			}
			return a, nil
		}

		switch a.mode {
		case ModeCommand:
			return a.handleCommandMode(msg)
		case ModeHelp:
			return a.handleHelpMode(msg)
		default:
			return a.handleNormalMode(msg)
		}
	}

	return a, nil
}

func (a App) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.lastKeyWasG = false
			return a.moveTo(0)
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		return a.moveTo(a.cursor + 1)

	case key.Matches(msg, a.keys.Up):
		return a.moveTo(a.cursor - 1)

	case key.Matches(msg, a.keys.Bottom):
		return a.moveTo(len(a.items) - 1)

	case key.Matches(msg, a.keys.Command):
		return a.openCommandLine("")

	case key.Matches(msg, a.keys.Find):
		return a.openCommandLine("find ")

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
		return a, nil

	case key.Matches(msg, a.keys.Open):
		if e, ok := a.Selected(); ok {
			if err := a.openURL(e.Link); err != nil {
				a.setMessage("Could not open link: "+err.Error(), MessageError)
			} else {
				a.setMessage("Opened "+e.Link, MessageInfo)
			}
		}
		return a, nil

	case key.Matches(msg, a.keys.YankLink):
		if e, ok := a.Selected(); ok {
			if err := a.copyText(e.Link); err != nil {
				a.setMessage("Could not copy link: "+err.Error(), MessageError)
			} else {
				a.setMessage("Copied "+e.Link, MessageSuccess)
			}
		}
		return a, nil

	case key.Matches(msg, a.keys.ScrollDown), key.Matches(msg, a.keys.ScrollUp):
		if a.viewMode.Type == model.ViewReader {
			var cmd tea.Cmd
			a.article.Viewport, cmd = a.article.Viewport.Update(msg)
			return a, cmd
		}
	}

	return a, nil
}

// moveTo places the cursor on index, clamped to the list.
func (a App) moveTo(index int) (tea.Model, tea.Cmd) {
	prev := a.cursor
	a.cursor = index
	a.clampCursor()
	a.resultText = ""
	if a.cursor == prev {
		return a, nil
	}
	return a, a.articleCmd()
}

func (a App) openCommandLine(prefill string) (tea.Model, tea.Cmd) {
	a.mode = ModeCommand
	a.command.Reset()
	a.command.Recall = a.engine.History().NewRecall()
	a.command.Input.SetValue(prefill)
	a.command.Input.CursorEnd()
	return a, a.command.Input.Focus()
}

func (a App) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		a.command.Input.Blur()
		a.command.Reset()
		return a, nil

	case key.Matches(msg, a.keys.Execute):
		line := a.command.Input.Value()
		a.command.Busy = true
		a.setMessage("Running: "+line, MessageInfo)
		return a, a.executeCmd(line)

	case key.Matches(msg, a.keys.Prev):
		if line, ok := a.command.Recall.Previous(); ok {
			a.command.Input.SetValue(line)
			a.command.Input.CursorEnd()
		}
		return a, nil

	case key.Matches(msg, a.keys.Next):
		if line, ok := a.command.Recall.Next(); ok {
			a.command.Input.SetValue(line)
		} else {
			a.command.Input.SetValue("")
		}
		a.command.Input.CursorEnd()
		return a, nil
	}

	var cmd tea.Cmd
	a.command.Input, cmd = a.command.Input.Update(msg)
	return a, cmd
}

func (a App) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel), key.Matches(msg, a.keys.Help):
		a.mode = ModeNormal
	case msg.Type == tea.KeyCtrlC:
		return a, tea.Quit
	case key.Matches(msg, a.keys.Quit):
		a.mode = ModeNormal
	}
	return a, nil
}

func (a App) handleExecuted(msg executedMsg) (tea.Model, tea.Cmd) {
	a.command.Busy = false

	if msg.err != nil {
		// Keep the line so it can be fixed
		a.setMessage(strings.TrimRight(msg.err.Error(), "\n"), MessageError)
		return a, nil
	}

	a.mode = ModeNormal
	a.command.Input.Blur()
	a.command.Reset()
	a.setMessage(msg.result.Feedback, MessageSuccess)

	if msg.result.Exit {
		return a, tea.Quit
	}
	if msg.result.ShowHelp {
		a.mode = ModeHelp
	}

	a.refresh()
	a.syncArticle()
	return a, a.articleCmd()
}

// readerHeaderLines is the title, byline and blank line above the article text.
const readerHeaderLines = 3

// articleCmd starts loading the selected entry's article when the reader
// view is active. It returns nil when nothing needs loading.
func (a *App) articleCmd() tea.Cmd {
	if a.viewMode.Type != model.ViewReader || a.reader == nil {
		return nil
	}
	e, ok := a.Selected()
	if !ok {
		a.article.Reset()
		return nil
	}
	if e.Link == a.article.Link && !a.article.Loading && a.article.Err == nil {
		return nil
	}

	a.article.Reset()
	a.article.Link = e.Link
	a.article.Loading = true
	return a.loadArticleCmd(e.Link)
}

// syncArticle renders the loaded article into the viewport at its current width.
func (a *App) syncArticle() {
	if a.article.Loading || a.article.Err != nil || a.article.Article.Text == "" {
		a.article.Viewport.SetContent("")
		return
	}
	style := a.styles.ReaderLight
	if a.viewMode.Style == model.ReaderDark {
		style = a.styles.ReaderDark
	}
	a.article.Viewport.SetContent(style.Width(a.article.Viewport.Width).Render(a.article.Article.Text))
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
