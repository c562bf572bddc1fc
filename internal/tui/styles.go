package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Header       lipgloss.Style
	Pane         lipgloss.Style
	PaneActive   lipgloss.Style
	Title        lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Link         lipgloss.Style
	Tag          lipgloss.Style
	Description  lipgloss.Style
	Empty        lipgloss.Style
	Prompt       lipgloss.Style
	Help         lipgloss.Style
	HintKey      lipgloss.Style
	HintDesc     lipgloss.Style

	// Message line, one per message type
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style

	// Article text, one per reader view style
	ReaderLight lipgloss.Style
	ReaderDark  lipgloss.Style
}

// palette names the colors the default styles are built from.
type palette struct {
	text, muted, accent, frame lipgloss.AdaptiveColor
	onAccent                   lipgloss.Color
	paper, ink                 lipgloss.Color // dark reader background and text
	good, bad                  lipgloss.AdaptiveColor
}

var defaultPalette = palette{
	text:     lipgloss.AdaptiveColor{Light: "#3C3836", Dark: "#D5C4A1"},
	muted:    lipgloss.AdaptiveColor{Light: "#7C6F64", Dark: "#928374"},
	accent:   lipgloss.AdaptiveColor{Light: "#AF3A03", Dark: "#FE8019"},
	frame:    lipgloss.AdaptiveColor{Light: "#A89984", Dark: "#504945"},
	onAccent: lipgloss.Color("#1D2021"),
	paper:    lipgloss.Color("#1D2021"),
	ink:      lipgloss.Color("#EBDBB2"),
	good:     lipgloss.AdaptiveColor{Light: "#79740E", Dark: "#B8BB26"},
	bad:      lipgloss.AdaptiveColor{Light: "#9D0006", Dark: "#FB4934"},
}

// DefaultStyles returns warm, low contrast styles with an orange accent.
func DefaultStyles() Styles {
	p := defaultPalette
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	pane := func(c lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Padding(0, 1)
	}

	return Styles{
		App:          lipgloss.NewStyle().Padding(1, 2, 0, 2),
		Header:       fg(p.accent).Bold(true),
		Pane:         pane(p.frame),
		PaneActive:   pane(p.accent),
		Title:        fg(p.accent).Bold(true).Underline(true),
		Item:         fg(p.text),
		ItemSelected: lipgloss.NewStyle().Background(p.accent).Foreground(p.onAccent).Bold(true),
		Link:         fg(p.muted).Underline(true),
		Tag:          fg(p.accent).Italic(true),
		Description:  fg(p.text),
		Empty:        fg(p.muted).Italic(true),
		Prompt:       fg(p.accent).Bold(true),
		Help:         fg(p.muted),
		HintKey:      fg(p.accent).Bold(true),
		HintDesc:     fg(p.muted),
		Info:         fg(p.muted),
		Success:      fg(p.good).Bold(true),
		Error:        fg(p.bad).Bold(true),
		ReaderLight:  fg(p.text),
		ReaderDark:   lipgloss.NewStyle().Foreground(p.ink).Background(p.paper),
	}
}
