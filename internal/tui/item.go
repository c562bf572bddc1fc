package tui

import (
	"strconv"
	"strings"

	"github.com/nikbrunner/readme/internal/model"
)

// Item is an entry as listed, with the 1-based number commands refer to.
type Item struct {
	Number int
	Entry  model.Entry
}

// itemsFrom numbers entries in display order.
func itemsFrom(entries []model.Entry) []Item {
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Number: i + 1, Entry: e}
	}
	return items
}

// Prefix returns the number label shown before the title.
func (i Item) Prefix() string {
	return strconv.Itoa(i.Number) + ". "
}

// TagLine returns the tags as "#a #b", or "" when there are none.
func (i Item) TagLine() string {
	if len(i.Entry.Tags) == 0 {
		return ""
	}
	return "#" + strings.Join(i.Entry.Tags, " #")
}
