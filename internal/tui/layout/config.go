// Package layout holds the size calculations of the TUI.
package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + pane borders (2) + message (1) + input (1) + hints (1) = 7
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// WidthOffset is subtracted from terminal width before splitting.
	// Accounts for: app padding (4) + two pane borders (4) = 8
	WidthOffset int

	// ListWidthPercent is the share of the list pane in the split.
	ListWidthPercent int

	// MinListWidth and MinDetailWidth keep both panes usable on narrow terminals.
	MinListWidth   int
	MinDetailWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane padding on each side.
	ContentPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the help modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int
}

// InputConfig holds command input configuration.
type InputConfig struct {
	CommandCharLimit int

	// CommandWidthReduction is subtracted from terminal width for the input.
	// Accounts for: app padding (4) + prompt (2) = 6
	CommandWidthReduction int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:  7,
			MinHeight:        5,
			WidthOffset:      8,
			ListWidthPercent: 45,
			MinListWidth:     24,
			MinDetailWidth:   20,
			ContentPadding:   2,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 60,
			MinWidth:            50,
			MaxWidth:            90,
		},
		Input: InputConfig{
			CommandCharLimit:      1000,
			CommandWidthReduction: 6,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
