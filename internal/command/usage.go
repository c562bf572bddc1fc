package command

import "strings"

// Usage strings shown when a command is malformed.
const (
	UsageAdd = "add: Adds an entry to the reading list.\n" +
		"Parameters: l/LINK [t/TITLE] [d/DESCRIPTION] [a/ADDRESS] [tag/TAG]...\n" +
		"Example: add l/https://go.dev/blog/slices t/Slices tag/go"
	UsageAddResult = "add: Adds the result at INDEX to the reading list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: add 1"
	UsageEdit = "edit: Edits the entry at INDEX in the displayed list. " +
		"Existing values are overwritten; tag/ with no value removes all tags.\n" +
		"Parameters: INDEX [t/TITLE] [d/DESCRIPTION] [l/LINK] [a/ADDRESS] [tag/TAG]...\n" +
		"Example: edit 1 t/Go Slices d/Arrays and slices"
	UsageDelete = "delete: Deletes the entry at INDEX in the displayed list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: delete 1"
	UsageClear = "clear: Removes every entry from the current list."
	UsageFind  = "find: Finds all entries whose title contains any of the keywords " +
		"(case-insensitive) and matches every given field.\n" +
		"Parameters: [KEYWORD]... [t/TITLE] [d/DESCRIPTION] [l/LINK] [a/ADDRESS] [tag/TAG]...\n" +
		"Example: find golang tag/tutorial"
	UsageList      = "list: Shows every entry in the current list."
	UsageArchive   = "archive: Moves the entry at INDEX to the archives.\nExample: archive 1"
	UsageUnarchive = "unarchive: Moves the archived entry at INDEX back to the reading list.\nExample: unarchive 1"
	UsageContext   = "readinglist, archives, feeds: Switches to that list."
	UsageFeed      = "feed: Loads the items of a feed as results.\n" +
		"Parameters: URL\n" +
		"Example: feed https://go.dev/blog/feed.atom"
	UsageSubscribe = "subscribe: Subscribes to a feed.\n" +
		"Parameters: l/URL [t/TITLE] [tag/TAG]...\n" +
		"Example: subscribe l/https://go.dev/blog/feed.atom t/Go Blog tag/go"
	UsageUnsubscribe = "unsubscribe: Removes the subscription at INDEX.\nExample: unsubscribe 1"
	UsageRefresh     = "refresh: Adds new items of every subscribed feed to the reading list."
	UsageViewMode    = "view: Sets how the selected entry is displayed.\n" +
		"Parameters: browser|b, or reader|r [default|dark]\n" +
		"Example: view reader dark"
	UsageHistory = "history: Lists the commands entered so far."
	UsageHelp    = "help: Shows this help."
	UsageExit    = "exit: Exits readme."
)

// HelpText is the full command reference.
var HelpText = strings.Join([]string{
	UsageAdd, UsageAddResult, UsageEdit, UsageDelete, UsageClear, UsageFind,
	UsageList, UsageArchive, UsageUnarchive, UsageContext, UsageFeed,
	UsageSubscribe, UsageUnsubscribe, UsageRefresh, UsageViewMode,
	UsageHistory, UsageHelp, UsageExit,
}, "\n\n")
