package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/nikbrunner/readme/internal/model"
)

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "run")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, gg, etc.)
	Action []Hint // Action hints (o, Y, :, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "j/k:move o:open"
func (a App) renderHints(hints HintSet) string {
	all := hints.All()
	if len(all) == 0 {
		return ""
	}

	parts := make([]string, len(all))
	for i, h := range all {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// bindingHint shows a key binding with its help text.
func bindingHint(b key.Binding) Hint {
	h := b.Help()
	return Hint{Key: h.Key, Desc: h.Desc}
}

func bindingHints(bs ...key.Binding) []Hint {
	hints := make([]Hint, len(bs))
	for i, b := range bs {
		hints[i] = bindingHint(b)
	}
	return hints
}

// getContextualHints returns the hints for the current mode.
func (a App) getContextualHints() HintSet {
	if a.command.Busy {
		return HintSet{System: []Hint{{"^c", "quit"}}}
	}

	switch a.mode {
	case ModeCommand:
		return HintSet{
			Nav:    []Hint{{"up/down", "history"}},
			Action: bindingHints(a.keys.Execute),
			System: bindingHints(a.keys.Cancel),
		}
	case ModeHelp:
		return HintSet{System: []Hint{{"?/Esc", "close"}}}
	default:
		return a.getNormalModeHints()
	}
}

func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav:    []Hint{{"j/k", "move"}, {"gg/G", "top/bottom"}},
		System: bindingHints(a.keys.Help, a.keys.Quit),
	}

	if len(a.items) > 0 {
		hints.Action = bindingHints(a.keys.Open, a.keys.YankLink)
		if a.viewMode.Type == model.ViewReader {
			hints.Nav = append(hints.Nav, Hint{"^d/^u", "scroll"})
		}
	}
	hints.Action = append(hints.Action, bindingHints(a.keys.Command, a.keys.Find)...)

	return hints
}

// helpBindings lists the bindings described in the help overlay.
func (k KeyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.Down, k.Up, k.Top, k.Bottom, k.Open, k.YankLink,
		k.Command, k.Find, k.ScrollDown, k.ScrollUp, k.Help, k.Quit,
	}
}
