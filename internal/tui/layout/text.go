package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleWidth returns the number of terminal cells s occupies.
func VisibleWidth(s string) int {
	return lipgloss.Width(s)
}

// TruncateText truncates text to maxWidth runes, ending in the ellipsis.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	if utf8.RuneCountInString(text) <= maxWidth {
		return text, false
	}

	ellipsis := []rune(cfg.Ellipsis)
	if maxWidth <= len(ellipsis) {
		return string(ellipsis[:maxWidth]), true
	}

	runes := []rune(text)
	return string(runes[:maxWidth-len(ellipsis)]) + cfg.Ellipsis, true
}

// TruncateWithPrefix truncates text so that prefix+text fits maxWidth.
// The prefix is kept whole unless it alone is too wide.
// Example: TruncateWithPrefix("Development", 10, "12. ", cfg) -> "12. Dev..."
func TruncateWithPrefix(text string, maxWidth int, prefix string, cfg TextConfig) string {
	prefixLen := utf8.RuneCountInString(prefix)
	if prefixLen >= maxWidth {
		s, _ := TruncateText(prefix+text, maxWidth, cfg)
		return s
	}
	s, _ := TruncateText(text, maxWidth-prefixLen, cfg)
	return prefix + s
}

// PadRight pads s with spaces to width cells. Wider strings are unchanged.
func PadRight(s string, width int) string {
	if gap := width - VisibleWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
