package command

import "slices"

// History records the command lines that executed successfully.
type History struct {
	entries []string
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{}
}

// Add appends a command line.
func (h *History) Add(line string) {
	h.entries = append(h.entries, line)
}

// Len returns the number of recorded lines.
func (h *History) Len() int {
	return len(h.entries)
}

// IsEmpty reports whether nothing has been recorded.
func (h *History) IsEmpty() bool {
	return len(h.entries) == 0
}

// Entries returns the recorded lines, earliest first.
func (h *History) Entries() []string {
	return slices.Clone(h.entries)
}

// Recall walks the history for input recall.
// The cursor starts past the newest line.
type Recall struct {
	lines  []string
	cursor int
}

// NewRecall creates a Recall over the current contents of h.
func (h *History) NewRecall() *Recall {
	return &Recall{lines: h.Entries(), cursor: len(h.entries)}
}

// Previous moves to the next older line.
// Returns false when there is no older line.
func (r *Recall) Previous() (string, bool) {
	if r.cursor == 0 {
		return "", false
	}
	r.cursor--
	return r.lines[r.cursor], true
}

// Next moves to the next newer line.
// Returns false, with the cursor past the newest line, when there is none.
func (r *Recall) Next() (string, bool) {
	if r.cursor >= len(r.lines)-1 {
		r.cursor = len(r.lines)
		return "", false
	}
	r.cursor++
	return r.lines[r.cursor], true
}
