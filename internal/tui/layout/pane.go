package layout

// PaneLayout holds calculated pane widths.
type PaneLayout struct {
	ListWidth   int
	DetailWidth int
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculatePaneWidths splits the terminal width between the entry list
// and the detail pane. Each pane gets at least its minimum width.
func CalculatePaneWidths(terminalWidth int, cfg PaneConfig) PaneLayout {
	available := terminalWidth - cfg.WidthOffset

	list := available * cfg.ListWidthPercent / 100
	if list < cfg.MinListWidth {
		list = cfg.MinListWidth
	}

	detail := available - list
	if detail < cfg.MinDetailWidth {
		detail = cfg.MinDetailWidth
	}

	return PaneLayout{
		ListWidth:   list,
		DetailWidth: detail,
	}
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
