package reader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nikbrunner/readme/internal/model"
	"github.com/nikbrunner/readme/internal/reader"
	"github.com/nikbrunner/readme/internal/storage"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>Understanding Slices</title></head>
<body>
  <nav><a href="/">Home</a> | <a href="/blog">Blog</a></nav>
  <article>
    <h1>Understanding Slices</h1>
    <p>A slice is a descriptor of an array segment. It consists of a pointer to the array,
    the length of the segment, and its capacity. Slices are one of the most important types in Go
    and understanding them pays off quickly when writing real programs.</p>
    <p>The length is the number of elements referred to by the slice. The capacity is the number
    of elements in the underlying array, beginning at the element referred to by the slice pointer.
    Growing a slice beyond its capacity allocates a new array and copies the elements.</p>
    <ul><li>append grows slices</li><li>copy copies elements</li></ul>
  </article>
  <footer>Copyright</footer>
</body>
</html>`

func servePage(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testPage))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestRead_ExtractsAndCaches(t *testing.T) {
	srv, hits := servePage(t)
	svc := reader.New(reader.Options{})

	a, err := svc.Read(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if a.Title != "Understanding Slices" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Offline {
		t.Error("fresh article marked offline")
	}
	if !strings.Contains(a.Text, "A slice is a descriptor of an array segment.") {
		t.Errorf("Text missing body: %q", a.Text)
	}

	if _, err := svc.Read(context.Background(), srv.URL); err != nil {
		t.Fatalf("second Read() error = %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestArchive_ServesOfflineCopy(t *testing.T) {
	srv, hits := servePage(t)
	store := storage.NewArticleStore(t.TempDir())
	e := model.NewEntry(model.NewEntryParams{Title: "Slices", Link: srv.URL})

	if err := reader.New(reader.Options{Store: store}).Archive(context.Background(), e); err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	// A new service has an empty cache, so the copy must come from the store.
	svc := reader.New(reader.Options{Store: store})
	srv.Close()

	a, err := svc.Read(context.Background(), e.Link)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !a.Offline {
		t.Error("article not served from offline copy")
	}
	if a.Title != "Understanding Slices" {
		t.Errorf("Title = %q", a.Title)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}

	if err := svc.Discard(e); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	if store.Has(e.Link) {
		t.Error("offline copy not discarded")
	}
}

func TestRead_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := reader.New(reader.Options{}).Read(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404")
	}
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "paragraphs",
			in:   "<p>First   line\nwrapped.</p><p>Second.</p>",
			want: "First line wrapped.\n\nSecond.",
		},
		{
			name: "lists and headings",
			in:   "<h2>Title</h2><ul><li>one</li><li></li><li>two</li></ul>",
			want: "Title\n\n- one\n\n- two",
		},
		{
			name: "skips scripts",
			in:   "<div>text<script>alert(1)</script></div>",
			want: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reader.HTMLToText(tt.in); got != tt.want {
				t.Errorf("HTMLToText() = %q, want %q", got, tt.want)
			}
		})
	}
}
