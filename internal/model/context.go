package model

// Context identifies which entry book the user is working on.
type Context int

const (
	ContextList Context = iota
	ContextArchives
	ContextSearch
	ContextFeeds
)

// Contexts lists every context in display order.
var Contexts = []Context{ContextList, ContextArchives, ContextSearch, ContextFeeds}

// String returns the human-readable name of the context.
func (c Context) String() string {
	switch c {
	case ContextList:
		return "Reading List"
	case ContextArchives:
		return "Archives"
	case ContextSearch:
		return "Results"
	case ContextFeeds:
		return "Feeds"
	default:
		return "Unknown"
	}
}
