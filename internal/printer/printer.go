// Package printer renders entries and command output for the one-shot CLI.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/nikbrunner/readme/internal/culler"
	"github.com/nikbrunner/readme/internal/model"
)

var (
	bold    = color.New(color.Bold)
	heading = color.New(color.Bold, color.Underline)
	faint   = color.New(color.Faint)
	tagged  = color.New(color.FgCyan)
	success = color.New(color.FgGreen)
	failure = color.New(color.FgRed, color.Bold)
	warning = color.New(color.FgYellow)
)

// maxColWidth caps the title and link columns.
const maxColWidth = 60

// Entries prints entries as a numbered table under a heading.
// Numbers are the 1-based indexes commands refer to.
func Entries(w io.Writer, title string, entries []model.Entry) {
	_, _ = fmt.Fprintln(w, heading.Sprint(title))

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint("  (empty)"))
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = maxColWidth
	tbl.AddRow(bold.Sprint("#"), bold.Sprint("Title"), bold.Sprint("Link"), bold.Sprint("Tags"))
	for i, e := range entries {
		tbl.AddRow(i+1, e.Title, faint.Sprint(e.Link), tags(e.Tags))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}

func tags(ts []string) string {
	if len(ts) == 0 {
		return ""
	}
	return tagged.Sprint("#" + strings.Join(ts, " #"))
}

// Feedback prints the message of a successful command.
func Feedback(w io.Writer, msg string) {
	if msg == "" {
		return
	}
	_, _ = fmt.Fprintln(w, success.Sprint(msg))
}

// Error prints err. Multi-line messages keep their usage lines unstyled.
func Error(w io.Writer, err error) {
	first, rest, _ := strings.Cut(err.Error(), "\n")
	_, _ = fmt.Fprintln(w, failure.Sprint(first))
	if rest != "" {
		_, _ = fmt.Fprintln(w, rest)
	}
}

// CullReport prints a table of links that are not healthy, and a summary line.
func CullReport(w io.Writer, results []culler.Result) {
	var dead, unreachable int

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = maxColWidth
	tbl.AddRow(bold.Sprint("Status"), bold.Sprint("Title"), bold.Sprint("Link"), bold.Sprint("Reason"))
	for _, r := range results {
		switch r.Status {
		case culler.Healthy:
			continue
		case culler.Dead:
			dead++
			tbl.AddRow(failure.Sprint(r.Status), r.Entry.Title, faint.Sprint(r.Entry.Link), reason(r))
		default:
			unreachable++
			tbl.AddRow(warning.Sprint(r.Status), r.Entry.Title, faint.Sprint(r.Entry.Link), reason(r))
		}
	}

	if dead+unreachable > 0 {
		_, _ = fmt.Fprintln(w, tbl)
		_, _ = fmt.Fprintln(w)
	}
	_, _ = fmt.Fprintf(w, "%s checked, %s dead, %s unreachable\n",
		bold.Sprint(len(results)), failure.Sprint(dead), warning.Sprint(unreachable))
}

func reason(r culler.Result) string {
	if r.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d", r.StatusCode)
	}
	return r.Reason
}
