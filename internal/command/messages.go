package command

// User-facing messages.
const (
	MessageInvalidIndex  = "The entry index provided is invalid"
	MessageWrongContext  = "This command is not available in %s"
	MessageDuplicate     = "This entry already exists in %s"
	MessageNoFieldEdited = "At least one field to edit must be provided."

	MessageAdded        = "New entry added: %s"
	MessageAddedResult  = "Added to Reading List: %s"
	MessageEdited       = "Edited Entry: %s"
	MessageDeleted      = "Deleted Entry: %s"
	MessageCleared      = "%s has been cleared!"
	MessageListed       = "%d entries listed!"
	MessageListedAll    = "Listed all entries"
	MessageArchived     = "Archived Entry: %s"
	MessageArchivedOnly = "Archived Entry: %s (no offline copy: %v)"
	MessageUnarchived   = "Unarchived Entry: %s"
	MessageSwitched     = "Switched to %s"

	MessageFeedLoaded   = "Fetched entries from feed: %s"
	MessageFeedNetwork  = "Failed to fetch feed: %s"
	MessageFeedNotAFeed = "%s is not a valid feed"
	MessageSubscribed   = "Subscribed to feed: %s"
	MessageUnsubscribed = "Unsubscribed from feed: %s"
	MessageNoFeeds      = "You have not subscribed to any feeds."
	MessageRefreshed    = "Refreshed %d of %d feeds: %d new entries added to Reading List"

	MessageViewMode    = "View mode set to: %s"
	MessageHistory     = "Entered commands (from most recent to earliest):\n%s"
	MessageNoHistory   = "You have not yet entered any commands."
	MessageShowingHelp = "Opened help window."
	MessageExit        = "Exiting readme as requested ..."
)
