package parser

import "strings"

// Argument prefixes.
const (
	prefixTitle       = "t/"
	prefixDescription = "d/"
	prefixLink        = "l/"
	prefixAddress     = "a/"
	prefixTag         = "tag/"
)

var prefixes = []string{prefixTag, prefixTitle, prefixDescription, prefixLink, prefixAddress}

// argMap holds the text before the first prefix and the values of each prefix
// in the order they appeared.
type argMap struct {
	preamble string
	values   map[string][]string
}

// tokenize splits args into a preamble and prefixed values.
// A prefix only counts at the start of a whitespace-separated word.
func tokenize(args string) argMap {
	m := argMap{values: make(map[string][]string)}

	var preamble []string
	current := ""
	var value []string

	flush := func() {
		if current != "" {
			m.values[current] = append(m.values[current], strings.Join(value, " "))
		}
	}

	for _, word := range strings.Fields(args) {
		if p := prefixOf(word); p != "" {
			flush()
			current = p
			value = nil
			if rest := strings.TrimPrefix(word, p); rest != "" {
				value = append(value, rest)
			}
			continue
		}
		if current == "" {
			preamble = append(preamble, word)
		} else {
			value = append(value, word)
		}
	}
	flush()

	m.preamble = strings.Join(preamble, " ")
	return m
}

func prefixOf(word string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(word, p) {
			return p
		}
	}
	return ""
}

// value returns the last value given for prefix.
func (m argMap) value(prefix string) (string, bool) {
	vs := m.values[prefix]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// all returns every value given for prefix.
func (m argMap) all(prefix string) []string {
	return m.values[prefix]
}

func (m argMap) has(prefix string) bool {
	return len(m.values[prefix]) > 0
}
