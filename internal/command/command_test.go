package command_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nikbrunner/readme/internal/command"
	"github.com/nikbrunner/readme/internal/feed"
	"github.com/nikbrunner/readme/internal/model"
)

type fakeFetcher struct {
	feeds map[string][]model.Entry
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]model.Entry, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	return f.feeds[url], nil
}

type fakeArchiver struct {
	archived  []string
	discarded []string
	err       error
}

func (a *fakeArchiver) Archive(_ context.Context, e model.Entry) error {
	if a.err != nil {
		return a.err
	}
	a.archived = append(a.archived, e.Link)
	return nil
}

func (a *fakeArchiver) Discard(e model.Entry) error {
	a.discarded = append(a.discarded, e.Link)
	return nil
}

func entry(title, link string, tags ...string) model.Entry {
	return model.NewEntry(model.NewEntryParams{Title: title, Link: link, Tags: tags})
}

func strPtr(s string) *string { return &s }

func newModel(t *testing.T, list ...model.Entry) *model.Model {
	t.Helper()
	book, err := model.FromEntries(list)
	if err != nil {
		t.Fatalf("FromEntries() error = %v", err)
	}
	return model.NewModel(model.ModelParams{List: book})
}

func newEnv(m *model.Model) command.Env {
	return command.Env{
		Model:   m,
		History: command.NewHistory(),
		Feeds:   &fakeFetcher{},
	}
}

// assertSuccess runs cmd and checks the feedback and the resulting model.
func assertSuccess(t *testing.T, cmd command.Command, env command.Env, wantFeedback string, want *model.Model) {
	t.Helper()
	res, err := command.Execute(context.Background(), cmd, env)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Feedback != wantFeedback {
		t.Errorf("Feedback = %q, want %q", res.Feedback, wantFeedback)
	}
	if !env.Model.Equal(want) {
		t.Errorf("model = %v, want %v", env.Model.FilteredEntries(), want.FilteredEntries())
	}
}

// assertFailure runs cmd and checks the message and that the model is unchanged.
func assertFailure(t *testing.T, cmd command.Command, env command.Env, wantMsg string) {
	t.Helper()
	before := env.Model.Clone()

	_, err := command.Execute(context.Background(), cmd, env)
	var cmdErr *command.Error
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Execute() error = %v, want *command.Error", err)
	}
	if cmdErr.Msg != wantMsg {
		t.Errorf("error = %q, want %q", cmdErr.Msg, wantMsg)
	}
	if !env.Model.Equal(before) {
		t.Error("model changed after failed command")
	}
}

func TestEdit_TitleOnly(t *testing.T) {
	orig := model.NewEntry(model.NewEntryParams{
		Title:       "A",
		Description: "desc",
		Link:        "http://a",
		Address:     "home",
		Tags:        []string{"x"},
	})
	m := newModel(t, orig)
	env := newEnv(m)

	edited := orig
	edited.Title = "B"
	want := newModel(t, edited)

	cmd := command.Edit{Index: 1, Descriptor: command.EditDescriptor{Title: strPtr("B")}}
	assertSuccess(t, cmd, env, fmt.Sprintf(command.MessageEdited, edited), want)

	if m.Book(model.ContextList).Len() != 1 {
		t.Errorf("book size = %d, want 1", m.Book(model.ContextList).Len())
	}
}

func TestEdit_ResolvesAgainstFilteredView(t *testing.T) {
	m := newModel(t, entry("Go Tour", "http://tour"), entry("Rust Book", "http://rust"))
	m.UpdateFilter(model.SearchCriteria{Keywords: []string{"rust"}})
	env := newEnv(m)

	want := newModel(t, entry("Go Tour", "http://tour"), entry("Rust Book", "http://rust", "lang"))

	cmd := command.Edit{Index: 1, Descriptor: command.EditDescriptor{Tags: []string{"lang"}}}
	assertSuccess(t, cmd, env, fmt.Sprintf(command.MessageEdited, entry("Rust Book", "http://rust", "lang")), want)

	if got := len(m.FilteredEntries()); got != 2 {
		t.Errorf("filter not reset: %d entries shown, want 2", got)
	}
}

func TestEdit_Failures(t *testing.T) {
	tests := []struct {
		name    string
		filter  model.Predicate
		cmd     command.Edit
		wantMsg string
	}{
		{
			name:    "no field edited",
			cmd:     command.Edit{Index: 1},
			wantMsg: command.MessageNoFieldEdited,
		},
		{
			name:    "index zero",
			cmd:     command.Edit{Index: 0, Descriptor: command.EditDescriptor{Title: strPtr("C")}},
			wantMsg: command.MessageInvalidIndex,
		},
		{
			name:    "index beyond filtered view",
			filter:  model.SearchCriteria{Keywords: []string{"A"}},
			cmd:     command.Edit{Index: 2, Descriptor: command.EditDescriptor{Title: strPtr("C")}},
			wantMsg: command.MessageInvalidIndex,
		},
		{
			name:    "duplicate of another entry",
			cmd:     command.Edit{Index: 1, Descriptor: command.EditDescriptor{Title: strPtr("B"), Link: strPtr("http://b")}},
			wantMsg: fmt.Sprintf(command.MessageDuplicate, model.ContextList),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, entry("A", "http://a"), entry("B", "http://b"))
			if tt.filter != nil {
				m.UpdateFilter(tt.filter)
			}
			assertFailure(t, tt.cmd, newEnv(m), tt.wantMsg)
		})
	}
}

func TestEditDescriptor_Apply(t *testing.T) {
	orig := model.NewEntry(model.NewEntryParams{Title: "A", Link: "http://a", Tags: []string{"x", "y"}})

	tests := []struct {
		name string
		desc command.EditDescriptor
		want model.Entry
	}{
		{
			name: "address only",
			desc: command.EditDescriptor{Address: strPtr("desk")},
			want: model.NewEntry(model.NewEntryParams{Title: "A", Link: "http://a", Address: "desk", Tags: []string{"x", "y"}}),
		},
		{
			name: "empty tags clear",
			desc: command.EditDescriptor{Tags: []string{}},
			want: entry("A", "http://a"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.desc.IsAnyFieldSet() {
				t.Fatal("IsAnyFieldSet() = false")
			}
			if got := tt.desc.Apply(orig); !got.Equal(tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFind(t *testing.T) {
	m := newModel(t, entry("A", "http://a"))
	env := newEnv(m)

	res, err := command.Execute(context.Background(), command.Find{Criteria: model.SearchCriteria{Keywords: []string{"A"}}}, env)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Feedback != fmt.Sprintf(command.MessageListed, 1) {
		t.Errorf("Feedback = %q", res.Feedback)
	}

	res, _ = command.Execute(context.Background(), command.Find{Criteria: model.SearchCriteria{Keywords: []string{"Z"}}}, env)
	if res.Feedback != fmt.Sprintf(command.MessageListed, 0) {
		t.Errorf("Feedback = %q", res.Feedback)
	}
	if len(m.FilteredEntries()) != 0 {
		t.Errorf("filtered size = %d, want 0", len(m.FilteredEntries()))
	}

	_, _ = command.Execute(context.Background(), command.List{}, env)
	if len(m.FilteredEntries()) != 1 {
		t.Errorf("list did not reset filter")
	}
}

func TestAdd(t *testing.T) {
	a := entry("A", "http://a")
	m := newModel(t)
	env := newEnv(m)

	assertSuccess(t, command.Add{Entry: a}, env, fmt.Sprintf(command.MessageAdded, a), newModel(t, a))
	assertFailure(t, command.Add{Entry: a}, env, fmt.Sprintf(command.MessageDuplicate, model.ContextList))

	m.SetContext(model.ContextArchives)
	assertFailure(t, command.Add{Entry: entry("B", "http://b")}, env, fmt.Sprintf(command.MessageWrongContext, model.ContextArchives))
}

func TestFeed(t *testing.T) {
	const feedURL = "https://example.com/rss.xml"
	items := []model.Entry{entry("Post 1", "https://example.com/1"), entry("Post 2", "https://example.com/2")}

	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name: "success",
		},
		{
			name:    "network failure",
			err:     &feed.NetworkError{URL: feedURL, Err: errors.New("dial tcp: lookup example.com: no such host")},
			wantMsg: fmt.Sprintf(command.MessageFeedNetwork, "dial tcp: lookup example.com: no such host"),
		},
		{
			name:    "not a feed",
			err:     fmt.Errorf("parse %s: %w", feedURL, feed.ErrNotAFeed),
			wantMsg: fmt.Sprintf(command.MessageFeedNotAFeed, feedURL),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, entry("A", "http://a"))
			env := newEnv(m)
			fetcher := &fakeFetcher{
				feeds: map[string][]model.Entry{feedURL: items},
				errs:  map[string]error{},
			}
			if tt.err != nil {
				fetcher.errs[feedURL] = tt.err
			}
			env.Feeds = fetcher

			cmd := command.Feed{URL: feedURL}
			if tt.err != nil {
				assertFailure(t, cmd, env, tt.wantMsg)
				return
			}

			want := m.Clone()
			if err := want.SetSearchBook(items); err != nil {
				t.Fatal(err)
			}
			want.SetContext(model.ContextSearch)

			assertSuccess(t, cmd, env, fmt.Sprintf(command.MessageFeedLoaded, feedURL), want)
			if !strings.Contains(fmt.Sprintf(command.MessageFeedLoaded, feedURL), feedURL) {
				t.Error("success message does not name the URL")
			}
			if m.Context() != model.ContextSearch {
				t.Errorf("Context() = %v, want %v", m.Context(), model.ContextSearch)
			}
		})
	}
}

func TestViewMode(t *testing.T) {
	modes := []model.ViewMode{
		{Type: model.ViewBrowser},
		{Type: model.ViewReader},
		{Type: model.ViewReader, Style: model.ReaderDark},
	}

	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			m := newModel(t, entry("A", "http://a"))
			want := m.Clone()
			want.SetViewMode(mode)

			assertSuccess(t, command.ViewMode{Mode: mode}, newEnv(m), fmt.Sprintf(command.MessageViewMode, mode), want)
		})
	}
}

func TestArchiveAndUnarchive(t *testing.T) {
	a := entry("A", "http://a")
	m := newModel(t, a, entry("B", "http://b"))
	env := newEnv(m)
	archiver := &fakeArchiver{}
	env.Articles = archiver

	res, err := command.Execute(context.Background(), command.Archive{Index: 1}, env)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if res.Feedback != fmt.Sprintf(command.MessageArchived, "A") {
		t.Errorf("Feedback = %q", res.Feedback)
	}
	if !m.Book(model.ContextArchives).Has(a) || m.Book(model.ContextList).Has(a) {
		t.Fatal("entry not moved to archives")
	}
	if diff := cmp.Diff([]string{"http://a"}, archiver.archived); diff != "" {
		t.Errorf("archived (-want +got):\n%s", diff)
	}

	m.SetContext(model.ContextArchives)
	if _, err := command.Execute(context.Background(), command.Unarchive{Index: 1}, env); err != nil {
		t.Fatalf("unarchive: %v", err)
	}
	if !m.Book(model.ContextList).Has(a) {
		t.Error("entry not back in reading list")
	}
	if diff := cmp.Diff([]string{"http://a"}, archiver.discarded); diff != "" {
		t.Errorf("discarded (-want +got):\n%s", diff)
	}
}

func TestArchive_OfflineCopyIsBestEffort(t *testing.T) {
	m := newModel(t, entry("A", "http://a"))
	env := newEnv(m)
	env.Articles = &fakeArchiver{err: errors.New("timeout")}

	res, err := command.Execute(context.Background(), command.Archive{Index: 1}, env)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(res.Feedback, "timeout") {
		t.Errorf("Feedback = %q, want mention of the failure", res.Feedback)
	}
	if m.Book(model.ContextArchives).Len() != 1 {
		t.Error("entry not archived")
	}
}

func TestDeleteArchived_KeepsSharedOfflineCopy(t *testing.T) {
	m := newModel(t)
	first := entry("Go Blog", "https://go.dev/blog")
	second := entry("The Go Blog", "https://go.dev/blog")
	_ = m.AddEntryTo(model.ContextArchives, first)
	_ = m.AddEntryTo(model.ContextArchives, second)
	m.SetContext(model.ContextArchives)

	env := newEnv(m)
	archiver := &fakeArchiver{}
	env.Articles = archiver

	if _, err := command.Execute(context.Background(), command.Delete{Index: 1}, env); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(archiver.discarded) != 0 {
		t.Errorf("discarded = %v, want the copy kept for %q", archiver.discarded, second.Title)
	}

	if _, err := command.Execute(context.Background(), command.Unarchive{Index: 1}, env); err != nil {
		t.Fatalf("unarchive: %v", err)
	}
	if diff := cmp.Diff([]string{"https://go.dev/blog"}, archiver.discarded); diff != "" {
		t.Errorf("discarded (-want +got):\n%s", diff)
	}
}

func TestRefresh(t *testing.T) {
	m := newModel(t, entry("Old", "https://blog.example/old"))
	_ = m.AddEntryTo(model.ContextFeeds, entry("Blog", "https://blog.example/feed", "blog"))
	_ = m.AddEntryTo(model.ContextFeeds, entry("Down", "https://down.example/feed"))

	env := newEnv(m)
	env.Feeds = &fakeFetcher{
		feeds: map[string][]model.Entry{
			"https://blog.example/feed": {entry("Old", "https://blog.example/old"), entry("New", "https://blog.example/new")},
		},
		errs: map[string]error{
			"https://down.example/feed": &feed.NetworkError{Err: errors.New("refused")},
		},
	}

	res, err := command.Execute(context.Background(), command.Refresh{}, env)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Feedback != fmt.Sprintf(command.MessageRefreshed, 1, 2, 1) {
		t.Errorf("Feedback = %q", res.Feedback)
	}
	if !m.Book(model.ContextList).Has(entry("New", "https://blog.example/new")) {
		t.Fatal("new item not merged")
	}
	merged := m.Book(model.ContextList).Entries()[1]
	if !merged.HasTag("blog") {
		t.Errorf("merged item tags = %v, want subscription tag", merged.Tags)
	}
}

func TestRefresh_NoSubscriptions(t *testing.T) {
	assertFailure(t, command.Refresh{}, newEnv(newModel(t)), command.MessageNoFeeds)
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	m := newModel(t)
	env := newEnv(m)
	sub := entry("Go Blog", "https://go.dev/blog/feed.atom")

	if _, err := command.Execute(context.Background(), command.Subscribe{Entry: sub}, env); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	assertFailure(t, command.Subscribe{Entry: sub}, env, fmt.Sprintf(command.MessageDuplicate, model.ContextFeeds))

	assertFailure(t, command.Unsubscribe{Index: 1}, env, fmt.Sprintf(command.MessageWrongContext, model.ContextList))

	m.SetContext(model.ContextFeeds)
	res, err := command.Execute(context.Background(), command.Unsubscribe{Index: 1}, env)
	if err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if res.Feedback != fmt.Sprintf(command.MessageUnsubscribed, sub.Link) {
		t.Errorf("Feedback = %q", res.Feedback)
	}
	if m.Book(model.ContextFeeds).Len() != 0 {
		t.Error("subscription not removed")
	}
}

func TestHistoryCommand(t *testing.T) {
	env := newEnv(newModel(t))

	res, _ := command.Execute(context.Background(), command.HistoryList{}, env)
	if res.Feedback != command.MessageNoHistory {
		t.Errorf("Feedback = %q, want %q", res.Feedback, command.MessageNoHistory)
	}

	env.History.Add("list")
	env.History.Add("find go")

	res, _ = command.Execute(context.Background(), command.HistoryList{}, env)
	want := fmt.Sprintf(command.MessageHistory, "find go\nlist")
	if res.Feedback != want {
		t.Errorf("Feedback = %q, want %q", res.Feedback, want)
	}
}

func TestDeleteAndClear(t *testing.T) {
	m := newModel(t, entry("A", "http://a"), entry("B", "http://b"))
	env := newEnv(m)

	assertSuccess(t, command.Delete{Index: 2}, env,
		fmt.Sprintf(command.MessageDeleted, entry("B", "http://b")), newModel(t, entry("A", "http://a")))
	assertFailure(t, command.Delete{Index: 2}, env, command.MessageInvalidIndex)

	res, err := command.Execute(context.Background(), command.Clear{}, env)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if res.Feedback != fmt.Sprintf(command.MessageCleared, model.ContextList) {
		t.Errorf("Feedback = %q", res.Feedback)
	}
	if m.Book(model.ContextList).Len() != 0 {
		t.Error("list not cleared")
	}
}

func TestHelpAndExit(t *testing.T) {
	env := newEnv(newModel(t))

	res, _ := command.Execute(context.Background(), command.Help{}, env)
	if !res.ShowHelp {
		t.Error("Help did not request help")
	}
	res, _ = command.Execute(context.Background(), command.Exit{}, env)
	if !res.Exit {
		t.Error("Exit did not request exit")
	}
}
