package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/nikbrunner/readme/internal/model"
)

type rssDoc struct {
	XMLName xml.Name `xml:"rss"`
	Channel []struct {
		Title string `xml:"title"`
		Items []struct {
			Title       string   `xml:"title"`
			Link        string   `xml:"link"`
			GUID        string   `xml:"guid"`
			Description string   `xml:"description"`
			Categories  []string `xml:"category"`
		} `xml:"item"`
	} `xml:"channel"`
}

type atomDoc struct {
	XMLName xml.Name `xml:"feed"`
	Title   string   `xml:"title"`
	Entries []struct {
		Title   string     `xml:"title"`
		ID      string     `xml:"id"`
		Links   []atomLink `xml:"link"`
		Summary string     `xml:"summary"`
		Content string     `xml:"content"`
	} `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
}

const (
	formatRSS  = "rss"
	formatAtom = "atom"
)

// detectFormat peeks at the root element. Anything that is not an Atom
// feed is decoded as RSS.
func detectFormat(data []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return formatRSS
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local == "feed" {
				return formatAtom
			}
			return formatRSS
		}
	}
}

// Parse converts an RSS 2.0 or Atom document into entries.
// Items without a link and repeated items are dropped.
func Parse(data []byte) ([]model.Entry, error) {
	var items []model.NewEntryParams
	var err error

	switch detectFormat(data) {
	case formatAtom:
		items, err = parseAtom(data)
	default:
		items, err = parseRSS(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAFeed, err)
	}

	entries := make([]model.Entry, 0, len(items))
	for _, params := range items {
		if params.Link == "" {
			continue
		}
		params.Tags = validTags(params.Tags)
		entries = append(entries, model.NewEntry(params))
	}

	// Feeds repeat items; keep the first of each
	book := model.NewEntryBook()
	book.Merge(entries)
	return book.Entries(), nil
}

func parseRSS(data []byte) ([]model.NewEntryParams, error) {
	var doc rssDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Channel) == 0 {
		return nil, fmt.Errorf("rss document has no channel")
	}

	var items []model.NewEntryParams
	for _, channel := range doc.Channel {
		for _, item := range channel.Items {
			link := strings.TrimSpace(item.Link)
			if link == "" && strings.HasPrefix(item.GUID, "http") {
				link = strings.TrimSpace(item.GUID)
			}
			items = append(items, model.NewEntryParams{
				Title:       sanitize(item.Title),
				Description: sanitize(item.Description),
				Link:        link,
				Tags:        item.Categories,
			})
		}
	}
	return items, nil
}

func parseAtom(data []byte) ([]model.NewEntryParams, error) {
	var doc atomDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var items []model.NewEntryParams
	for _, entry := range doc.Entries {
		desc := entry.Summary
		if desc == "" {
			desc = entry.Content
		}
		items = append(items, model.NewEntryParams{
			Title:       sanitize(entry.Title),
			Description: sanitize(desc),
			Link:        alternateLink(entry.Links),
		})
	}
	return items, nil
}

func alternateLink(links []atomLink) string {
	for _, l := range links {
		if l.Rel == "" || l.Rel == "alternate" {
			return strings.TrimSpace(l.Href)
		}
	}
	return ""
}

// validTags keeps categories usable as tags.
func validTags(categories []string) []string {
	var tags []string
	for _, c := range categories {
		c = strings.ReplaceAll(strings.TrimSpace(c), " ", "-")
		if model.IsValidTag(c) {
			tags = append(tags, c)
		}
	}
	return tags
}

var stripPolicy = bluemonday.StrictPolicy()

// maxTextBytes caps titles and descriptions taken from a feed.
const maxTextBytes = 2048

// sanitize removes all html tags and caps the length of the text.
// The cut never splits a rune.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = html.UnescapeString(stripPolicy.Sanitize(s))
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxTextBytes {
		n := maxTextBytes
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n]
	}
	return s
}
