package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/readme/internal/command"
	"github.com/nikbrunner/readme/internal/model"
	"github.com/nikbrunner/readme/internal/tui/layout"
)

// renderView creates the complete two-pane view.
func (a App) renderView() string {
	if a.mode == ModeHelp {
		return a.renderHelpOverlay()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	panes := layout.CalculatePaneWidths(a.width, a.layoutConfig.Pane)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderListPane(panes.ListWidth, paneHeight),
		a.renderDetailPane(panes.DetailWidth, paneHeight),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderHeader(),
			columns,
			a.renderMessageLine(),
			a.renderCommandLine(),
			a.renderHints(a.getContextualHints()),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the context name on the left and the view mode on the right.
func (a App) renderHeader() string {
	left := a.styles.Header.Render(fmt.Sprintf("readme / %s (%d)", a.context, len(a.items)))
	right := a.styles.Help.Render("view: " + a.viewMode.String())

	// Terminal width minus app padding (left=2, right=2)
	gap := a.width - 4 - layout.VisibleWidth(left) - layout.VisibleWidth(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (a App) renderListPane(width, height int) string {
	var content strings.Builder

	visibleHeight := layout.CalculateVisibleHeight(height, 0)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	if len(a.items) == 0 {
		if a.context == model.ContextSearch {
			content.WriteString(a.styles.Empty.Render("(no results)"))
		} else {
			content.WriteString(a.styles.Empty.Render("(empty)"))
		}
	} else {
		offset := layout.CalculateViewportOffset(a.cursor, len(a.items), visibleHeight)
		end := min(offset+visibleHeight, len(a.items))
		for i := offset; i < end; i++ {
			content.WriteString(a.renderItem(a.items[i], i == a.cursor, itemWidth) + "\n")
		}
	}

	style := a.styles.Pane
	if a.mode == ModeNormal {
		style = a.styles.PaneActive
	}
	return style.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

func (a App) renderItem(item Item, isCursor bool, maxWidth int) string {
	line := layout.TruncateWithPrefix(item.Entry.Title, maxWidth, item.Prefix(), a.layoutConfig.Text)
	if isCursor {
		// Pad to fill width for highlight
		return a.styles.ItemSelected.Render(layout.PadRight(line, maxWidth))
	}
	return a.styles.Item.Render(line)
}

func (a App) renderDetailPane(width, height int) string {
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	var content string
	e, ok := a.Selected()
	switch {
	case a.resultText != "":
		content = a.styles.Title.Render("Result") + "\n\n" + a.resultText
	case !ok:
		content = a.styles.Empty.Render("(nothing selected)")
	case a.viewMode.Type == model.ViewReader:
		content = a.renderReader(e, itemWidth)
	default:
		content = a.renderEntryDetails(e, itemWidth)
	}

	// Wrap first so clipping counts the lines actually shown
	content = lipgloss.NewStyle().Width(itemWidth).Render(content)

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(clipLines(content, height))
}

// renderEntryDetails shows every field of an entry, as in browser view mode.
func (a App) renderEntryDetails(e model.Entry, width int) string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render(e.Title) + "\n\n")

	link, _ := layout.TruncateText(e.Link, width, a.layoutConfig.Text)
	b.WriteString(a.styles.Link.Render(link) + "\n")

	if e.Description != "" {
		b.WriteString("\n" + a.styles.Description.Render(e.Description) + "\n")
	}
	if e.Address != "" {
		b.WriteString("\n" + a.styles.Help.Render("Address: ") + e.Address + "\n")
	}
	if tags := (Item{Entry: e}).TagLine(); tags != "" {
		b.WriteString("\n" + a.styles.Tag.Render(tags) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderReader shows the readable article of an entry.
func (a App) renderReader(e model.Entry, width int) string {
	title := e.Title
	if a.article.Article.Title != "" {
		title = a.article.Article.Title
	}
	title, _ = layout.TruncateText(title, width, a.layoutConfig.Text)

	byline := a.article.Article.Byline
	if a.article.Article.Offline {
		byline = strings.TrimSpace(byline + " (offline copy)")
	}
	header := a.styles.Title.Render(title) + "\n" + a.styles.Help.Render(byline) + "\n\n"

	switch {
	case a.reader == nil:
		return header + a.styles.Empty.Render("(reader view is not available)")
	case a.article.Loading:
		return header + a.styles.Empty.Render("Loading article...")
	case a.article.Err != nil:
		return header + a.styles.Empty.Render("Could not load article: "+a.article.Err.Error())
	case a.article.Article.Text == "":
		return header + a.styles.Empty.Render("(no readable content)")
	}
	return header + a.article.Viewport.View()
}

// clipLines keeps the first n lines of s.
func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

// renderMessageLine renders the styled message with a prefix icon based on type.
func (a App) renderMessageLine() string {
	if a.messageText == "" {
		return ""
	}

	msgStyle, prefix := a.styles.Info, ""
	switch a.messageType {
	case MessageError:
		msgStyle, prefix = a.styles.Error, "✗ "
	case MessageSuccess:
		msgStyle, prefix = a.styles.Success, "✓ "
	}

	text, _ := layout.TruncateText(prefix+a.messageText, a.width-4, a.layoutConfig.Text)
	return msgStyle.Render(text)
}

func (a App) renderCommandLine() string {
	prompt := a.styles.Prompt.Render("> ")
	if a.mode == ModeCommand {
		return prompt + a.command.Input.View()
	}
	return prompt + a.styles.Help.Render("press : to enter a command")
}

// renderHelpOverlay renders key bindings next to a summary of every command.
func (a App) renderHelpOverlay() string {
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)

	var keys strings.Builder
	keys.WriteString(a.styles.Title.Render("keys") + "\n")
	for _, b := range a.keys.helpBindings() {
		h := b.Help()
		fmt.Fprintf(&keys, "%-6s%s\n", h.Key, h.Desc)
	}

	const keysWidth = 22
	summaryWidth := max(modalWidth-keysWidth-6, 10)

	var cmds strings.Builder
	cmds.WriteString(a.styles.Title.Render("commands") + "\n")
	for _, s := range commandSummaries() {
		line, _ := layout.TruncateText(s, summaryWidth, a.layoutConfig.Text)
		cmds.WriteString(line + "\n")
	}

	leftCol := lipgloss.NewStyle().Width(keysWidth).Render(keys.String())
	rightCol := lipgloss.NewStyle().Width(summaryWidth).Render(cmds.String())
	body := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)
	body += "\n" + a.styles.Help.Render("[?/esc] close")

	modal := a.styles.PaneActive.Width(modalWidth).Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// commandSummaries returns the first line of every command usage.
func commandSummaries() []string {
	usages := strings.Split(command.HelpText, "\n\n")
	summaries := make([]string, len(usages))
	for i, u := range usages {
		summaries[i], _, _ = strings.Cut(u, "\n")
	}
	return summaries
}
