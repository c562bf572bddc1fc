package importer_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nikbrunner/readme/internal/importer"
	"github.com/nikbrunner/readme/internal/model"
)

func TestParseHTML_SingleBookmark(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	entries, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []model.Entry{{
		Title: "Example Site",
		Link:  "https://example.com",
		Tags:  []string{},
	}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHTML_NestedFoldersBecomeTags(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React &amp; Co</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	entries, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []model.Entry{
		{Title: "React Docs", Link: "https://react.dev", Tags: []string{"development", "react-co"}},
		{Title: "GitHub", Link: "https://github.com", Tags: []string{"development"}},
		{Title: "Google", Link: "https://google.com", Tags: []string{}},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHTML_TagsAndDescription(t *testing.T) {
	html := `<DL><p>
    <DT><A HREF="https://go.dev/blog" TAGS="Go,news">Go Blog</A>
    <DD>Official   posts from the Go team
    <DT><A HREF="https://example.com">Example</A>
</DL>`

	entries, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []model.Entry{
		{
			Title:       "Go Blog",
			Description: "Official posts from the Go team",
			Link:        "https://go.dev/blog",
			Tags:        []string{"go", "news"},
		},
		{Title: "Example", Link: "https://example.com", Tags: []string{}},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHTML_SkipsMissingHref(t *testing.T) {
	html := `<DL><p>
    <DT><A>No link</A>
    <DT><A HREF="https://example.com"></A>
</DL>`

	entries, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	// Title falls back to the link
	if entries[0].Title != "https://example.com" {
		t.Errorf("expected title to fall back to link, got %q", entries[0].Title)
	}
}

func TestParseHTML_Empty(t *testing.T) {
	entries, err := importer.ParseHTMLBookmarks(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
