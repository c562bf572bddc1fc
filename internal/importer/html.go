// Package importer reads entries from browser bookmark exports.
package importer

import (
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/nikbrunner/readme/internal/model"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into entries.
// The folders a bookmark sits in and its TAGS attribute become tags,
// and a following <DD> becomes the description.
func ParseHTMLBookmarks(r io.Reader) ([]model.Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var params []model.NewEntryParams

	var folderStack []string  // tags of the open folders
	var pendingFolder *string // folder waiting to be pushed on next DL
	last := -1                // index of the bookmark a <DD> describes

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition; pushed when its DL starts
				tag := folderTag(getTextContent(n))
				pendingFolder = &tag
				last = -1
				return

			case "a":
				href := strings.TrimSpace(getAttr(n, "href"))
				if href == "" {
					return
				}

				tags := append([]string{}, folderStack...)
				for _, t := range strings.Split(getAttr(n, "tags"), ",") {
					tags = append(tags, folderTag(t))
				}

				params = append(params, model.NewEntryParams{
					Title: getTextContent(n),
					Link:  href,
					Tags:  tags,
				})
				last = len(params) - 1
				return

			case "dd":
				if last >= 0 {
					params[last].Description = ownText(n)
					last = -1
				}

			case "dl":
				pushed := false
				if pendingFolder != nil {
					folderStack = append(folderStack, *pendingFolder)
					pendingFolder = nil
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				last = -1
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)

	entries := make([]model.Entry, 0, len(params))
	for _, p := range params {
		entries = append(entries, model.NewEntry(p))
	}
	return entries, nil
}

// folderTag turns a folder name into a tag: lowercase, with runs of other
// characters replaced by '-'. Returns "" when nothing usable remains.
func folderTag(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) || r == '_':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// ownText returns the text of n up to its first nested list.
func ownText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.ToLower(c.Data) == "dl" {
			break
		}
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
			continue
		}
		text.WriteString(" " + getTextContent(c) + " ")
	}
	return strings.Join(strings.Fields(text.String()), " ")
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
