// Package parser turns command lines into commands.
package parser

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/nikbrunner/readme/internal/command"
	"github.com/nikbrunner/readme/internal/model"
)

const (
	MessageUnknownCommand = "Unknown command"
	MessageInvalidFormat  = "Invalid command format!"
	MessageInvalidIndex   = "Index is not a non-zero unsigned integer."
	MessageInvalidURL     = "Links must be absolute http or https URLs: %q"
	MessageInvalidTag     = "Tags may only contain letters, digits, '-' and '_': %q"
	MessageBlankTitle     = "Titles may not be blank."
)

// Error is a command line that could not be parsed.
type Error struct {
	Msg   string
	Usage string
}

func (e *Error) Error() string {
	if e.Usage == "" {
		return e.Msg
	}
	return e.Msg + "\n" + e.Usage
}

func formatError(usage string) *Error {
	return &Error{Msg: MessageInvalidFormat, Usage: usage}
}

type parseFunc func(args string) (command.Command, error)

// Parser parses the command lines valid in one context.
type Parser struct {
	context  model.Context
	commands map[string]parseFunc
}

// New creates the parser for context c.
func New(c model.Context) *Parser {
	commands := make(map[string]parseFunc)
	for word, fn := range commonCommands {
		commands[word] = fn
	}
	for word, fn := range contextCommands[c] {
		commands[word] = fn
	}
	return &Parser{context: c, commands: commands}
}

// Context returns the context the parser belongs to.
func (p *Parser) Context() model.Context {
	return p.context
}

// Parse parses a full command line.
func (p *Parser) Parse(line string) (command.Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, formatError(command.UsageHelp)
	}

	word, args := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		word, args = line[:i], line[i:]
	}
	fn, ok := p.commands[strings.ToLower(word)]
	if !ok {
		return nil, &Error{Msg: MessageUnknownCommand}
	}
	return fn(strings.TrimSpace(args))
}

var commonCommands = map[string]parseFunc{
	"find":        parseFind,
	"f":           parseFind,
	"list":        noArgs(command.List{}),
	"ls":          noArgs(command.List{}),
	"readinglist": noArgs(command.SwitchContext{Context: model.ContextList}),
	"rl":          noArgs(command.SwitchContext{Context: model.ContextList}),
	"archives":    noArgs(command.SwitchContext{Context: model.ContextArchives}),
	"feeds":       noArgs(command.SwitchContext{Context: model.ContextFeeds}),
	"feed":        parseFeed,
	"subscribe":   parseSubscribe,
	"sub":         parseSubscribe,
	"view":        parseViewMode,
	"v":           parseViewMode,
	"history":     noArgs(command.HistoryList{}),
	"h":           noArgs(command.HistoryList{}),
	"help":        noArgs(command.Help{}),
	"exit":        noArgs(command.Exit{}),
	"quit":        noArgs(command.Exit{}),
}

var contextCommands = map[model.Context]map[string]parseFunc{
	model.ContextList: {
		"add":     parseAdd,
		"a":       parseAdd,
		"edit":    parseEdit,
		"e":       parseEdit,
		"delete":  indexed(command.UsageDelete, func(i int) command.Command { return command.Delete{Index: i} }),
		"d":       indexed(command.UsageDelete, func(i int) command.Command { return command.Delete{Index: i} }),
		"clear":   noArgs(command.Clear{}),
		"archive": indexed(command.UsageArchive, func(i int) command.Command { return command.Archive{Index: i} }),
		"refresh": noArgs(command.Refresh{}),
	},
	model.ContextArchives: {
		"delete":    indexed(command.UsageDelete, func(i int) command.Command { return command.Delete{Index: i} }),
		"d":         indexed(command.UsageDelete, func(i int) command.Command { return command.Delete{Index: i} }),
		"clear":     noArgs(command.Clear{}),
		"unarchive": indexed(command.UsageUnarchive, func(i int) command.Command { return command.Unarchive{Index: i} }),
	},
	model.ContextSearch: {
		"add": indexed(command.UsageAddResult, func(i int) command.Command { return command.AddResult{Index: i} }),
		"a":   indexed(command.UsageAddResult, func(i int) command.Command { return command.AddResult{Index: i} }),
	},
	model.ContextFeeds: {
		"delete":      indexed(command.UsageDelete, func(i int) command.Command { return command.Delete{Index: i} }),
		"d":           indexed(command.UsageDelete, func(i int) command.Command { return command.Delete{Index: i} }),
		"unsubscribe": indexed(command.UsageUnsubscribe, func(i int) command.Command { return command.Unsubscribe{Index: i} }),
		"unsub":       indexed(command.UsageUnsubscribe, func(i int) command.Command { return command.Unsubscribe{Index: i} }),
		"refresh":     noArgs(command.Refresh{}),
	},
}

// noArgs parses commands that take no arguments. Extra text is ignored.
func noArgs(cmd command.Command) parseFunc {
	return func(string) (command.Command, error) {
		return cmd, nil
	}
}

// indexed parses commands whose only argument is an index.
func indexed(usage string, build func(int) command.Command) parseFunc {
	return func(args string) (command.Command, error) {
		index, err := parseIndex(args, usage)
		if err != nil {
			return nil, err
		}
		return build(index), nil
	}
}

func parseIndex(s, usage string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, formatError(usage)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, &Error{Msg: MessageInvalidIndex, Usage: usage}
	}
	return n, nil
}

func parseURL(s, usage string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", &Error{Msg: fmt.Sprintf(MessageInvalidURL, s), Usage: usage}
	}
	return u.String(), nil
}

func parseTags(values []string, usage string) ([]string, error) {
	tags := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if !model.IsValidTag(v) {
			return nil, &Error{Msg: fmt.Sprintf(MessageInvalidTag, v), Usage: usage}
		}
		tags = append(tags, v)
	}
	return tags, nil
}

// parseEntry builds an entry from prefixed arguments. The link is required.
func parseEntry(args argMap, usage string) (model.Entry, error) {
	raw, ok := args.value(prefixLink)
	if !ok || args.preamble != "" {
		return model.Entry{}, formatError(usage)
	}
	link, err := parseURL(raw, usage)
	if err != nil {
		return model.Entry{}, err
	}
	tags, err := parseTags(args.all(prefixTag), usage)
	if err != nil {
		return model.Entry{}, err
	}

	title, _ := args.value(prefixTitle)
	desc, _ := args.value(prefixDescription)
	addr, _ := args.value(prefixAddress)

	return model.NewEntry(model.NewEntryParams{
		Title:       title,
		Description: desc,
		Link:        link,
		Address:     addr,
		Tags:        tags,
	}), nil
}

func parseAdd(args string) (command.Command, error) {
	e, err := parseEntry(tokenize(args), command.UsageAdd)
	if err != nil {
		return nil, err
	}
	return command.Add{Entry: e}, nil
}

func parseSubscribe(args string) (command.Command, error) {
	e, err := parseEntry(tokenize(args), command.UsageSubscribe)
	if err != nil {
		return nil, err
	}
	return command.Subscribe{Entry: e}, nil
}

func parseEdit(args string) (command.Command, error) {
	m := tokenize(args)
	index, err := parseIndex(m.preamble, command.UsageEdit)
	if err != nil {
		return nil, err
	}

	var d command.EditDescriptor
	if v, ok := m.value(prefixTitle); ok {
		if strings.TrimSpace(v) == "" {
			return nil, &Error{Msg: MessageBlankTitle, Usage: command.UsageEdit}
		}
		d.Title = &v
	}
	if v, ok := m.value(prefixDescription); ok {
		d.Description = &v
	}
	if v, ok := m.value(prefixLink); ok {
		link, err := parseURL(v, command.UsageEdit)
		if err != nil {
			return nil, err
		}
		d.Link = &link
	}
	if v, ok := m.value(prefixAddress); ok {
		d.Address = &v
	}
	if m.has(prefixTag) {
		tags, err := parseTags(m.all(prefixTag), command.UsageEdit)
		if err != nil {
			return nil, err
		}
		d.Tags = tags
	}

	return command.Edit{Index: index, Descriptor: d}, nil
}

func parseFind(args string) (command.Command, error) {
	m := tokenize(args)

	var c model.SearchCriteria
	c.Keywords = strings.Fields(m.preamble)
	c.Title, _ = m.value(prefixTitle)
	c.Description, _ = m.value(prefixDescription)
	c.Link, _ = m.value(prefixLink)
	c.Address, _ = m.value(prefixAddress)
	if m.has(prefixTag) {
		tags, err := parseTags(m.all(prefixTag), command.UsageFind)
		if err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			c.Tags = tags
		}
	}

	if c.IsEmpty() {
		return nil, formatError(command.UsageFind)
	}
	return command.Find{Criteria: c}, nil
}

func parseFeed(args string) (command.Command, error) {
	if args == "" || strings.ContainsAny(args, " \t") {
		return nil, formatError(command.UsageFeed)
	}
	link, err := parseURL(args, command.UsageFeed)
	if err != nil {
		return nil, err
	}
	return command.Feed{URL: link}, nil
}

func parseViewMode(args string) (command.Command, error) {
	fields := strings.Fields(strings.ToLower(args))
	if len(fields) == 0 || len(fields) > 2 {
		return nil, formatError(command.UsageViewMode)
	}

	switch fields[0] {
	case "browser", "b":
		if len(fields) > 1 {
			return nil, formatError(command.UsageViewMode)
		}
		return command.ViewMode{Mode: model.ViewMode{Type: model.ViewBrowser}}, nil
	case "reader", "r":
		mode := model.ViewMode{Type: model.ViewReader}
		if len(fields) == 2 {
			style, ok := readerStyle(fields[1])
			if !ok {
				return nil, formatError(command.UsageViewMode)
			}
			mode.Style = style
		}
		return command.ViewMode{Mode: mode}, nil
	default:
		return nil, formatError(command.UsageViewMode)
	}
}

func readerStyle(s string) (model.ReaderStyle, bool) {
	for _, style := range model.ReaderStyles {
		if style.String() == s {
			return style, true
		}
	}
	return 0, false
}
