package model

import "fmt"

// ViewType selects how the selected entry is displayed.
type ViewType int

const (
	ViewBrowser ViewType = iota
	ViewReader
)

func (t ViewType) String() string {
	if t == ViewReader {
		return "reader"
	}
	return "browser"
}

// ReaderStyle is the color scheme of the reader view.
type ReaderStyle int

const (
	ReaderDefault ReaderStyle = iota
	ReaderDark
)

// ReaderStyles lists every reader style.
var ReaderStyles = []ReaderStyle{ReaderDefault, ReaderDark}

func (s ReaderStyle) String() string {
	if s == ReaderDark {
		return "dark"
	}
	return "default"
}

// ViewMode is the display mode of the entry view.
// Style only matters for ViewReader.
type ViewMode struct {
	Type  ViewType    `json:"type"`
	Style ReaderStyle `json:"style"`
}

func (m ViewMode) String() string {
	if m.Type == ViewReader && m.Style != ReaderDefault {
		return fmt.Sprintf("%s (%s)", m.Type, m.Style)
	}
	return m.Type.String()
}
