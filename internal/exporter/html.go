// Package exporter writes entries to files other tools can read.
package exporter

import (
	"fmt"
	"html"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/nikbrunner/readme/internal/model"
)

// DefaultExportPath returns the default export file path for a format.
// Format: ~/Downloads/readme-<book>-YYYY-MM-DD.<ext>
func DefaultExportPath(book, ext string) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("readme-%s-%s.%s", book, time.Now().Format("2006-01-02"), ext)
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders entries as Netscape bookmark HTML.
// Tags go into the TAGS attribute and descriptions into a <DD>.
func ExportHTML(title string, entries []model.Entry) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	fmt.Fprintf(&b, "<TITLE>%s</TITLE>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<H1>%s</H1>\n", html.EscapeString(title))
	b.WriteString("<DL><p>\n")

	for _, e := range entries {
		writeEntry(&b, e)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeEntry(b *strings.Builder, e model.Entry) {
	const prefix = "    "

	b.WriteString(prefix + "<DT><A HREF=\"" + html.EscapeString(e.Link) + "\"")
	if len(e.Tags) > 0 {
		fmt.Fprintf(b, " TAGS=\"%s\"", html.EscapeString(strings.Join(e.Tags, ",")))
	}
	fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(e.Title))

	if e.Description != "" {
		fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(e.Description))
	}
}

type yamlDocument struct {
	Title   string        `yaml:"title"`
	Entries []model.Entry `yaml:"entries"`
}

// ExportYAML writes entries as a YAML document to w.
func ExportYAML(w io.Writer, title string, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDocument{Title: title, Entries: entries}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
