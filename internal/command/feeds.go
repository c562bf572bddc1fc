package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikbrunner/readme/internal/feed"
	"github.com/nikbrunner/readme/internal/logger"
	"github.com/nikbrunner/readme/internal/model"
)

// Feed loads the items of a feed into the search results.
type Feed struct {
	URL string
}

// Subscribe adds a feed to the subscriptions.
type Subscribe struct {
	Entry model.Entry
}

// Unsubscribe removes the subscription at Index.
type Unsubscribe struct {
	Index int
}

// Refresh fetches every subscription and adds new items to the reading list.
type Refresh struct{}

func (Feed) command()        {}
func (Subscribe) command()   {}
func (Unsubscribe) command() {}
func (Refresh) command()     {}

func executeFeed(ctx context.Context, c Feed, env Env) (Result, error) {
	entries, err := env.Feeds.Fetch(ctx, c.URL)
	if err != nil {
		return Result{}, feedError(c.URL, err)
	}

	if err := env.Model.SetSearchBook(entries); err != nil {
		return Result{}, &Error{Msg: err.Error()}
	}
	env.Model.SetContext(model.ContextSearch)

	return Result{Feedback: fmt.Sprintf(MessageFeedLoaded, c.URL)}, nil
}

// feedError turns a fetch failure into a user-facing error.
func feedError(url string, err error) *Error {
	var netErr *feed.NetworkError
	switch {
	case errors.As(err, &netErr):
		return failf(MessageFeedNetwork, netErr.Err)
	case errors.Is(err, feed.ErrNotAFeed):
		return failf(MessageFeedNotAFeed, url)
	default:
		return failf(MessageFeedNetwork, err)
	}
}

func executeSubscribe(c Subscribe, env Env) (Result, error) {
	if err := env.Model.AddEntryTo(model.ContextFeeds, c.Entry); err != nil {
		return Result{}, failf(MessageDuplicate, model.ContextFeeds)
	}
	return Result{Feedback: fmt.Sprintf(MessageSubscribed, c.Entry.Link)}, nil
}

func executeUnsubscribe(c Unsubscribe, env Env) (Result, error) {
	m := env.Model
	if err := requireContext(m, model.ContextFeeds); err != nil {
		return Result{}, err
	}
	e, err := entryAt(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	if err := m.DeleteEntry(e); err != nil {
		return Result{}, &Error{Msg: err.Error()}
	}
	return Result{Feedback: fmt.Sprintf(MessageUnsubscribed, e.Link)}, nil
}

func executeRefresh(ctx context.Context, env Env) (Result, error) {
	m := env.Model
	if err := requireContext(m, model.ContextList, model.ContextFeeds); err != nil {
		return Result{}, err
	}
	subs := m.Book(model.ContextFeeds).Entries()
	if len(subs) == 0 {
		return Result{}, &Error{Msg: MessageNoFeeds}
	}

	var fetched []model.Entry
	ok := 0
	for _, sub := range subs {
		entries, err := env.Feeds.Fetch(ctx, sub.Link)
		if err != nil {
			env.Logger.Warn("refresh feed", logger.String("url", sub.Link), logger.Error(err))
			continue
		}
		ok++
		// Items inherit the tags of their subscription.
		for _, e := range entries {
			e.Tags = model.NormalizeTags(append(e.Tags, sub.Tags...))
			fetched = append(fetched, e)
		}
	}

	added, _ := m.MergeInto(model.ContextList, fetched)
	return Result{Feedback: fmt.Sprintf(MessageRefreshed, ok, len(subs), added)}, nil
}
