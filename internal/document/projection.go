package document

import (
	"fmt"
	"strings"
)

// SearchMode selects which side of an entry a search term is matched against.
type SearchMode int

const (
	SearchKey SearchMode = iota
	SearchValue
)

func (m SearchMode) String() string {
	if m == SearchValue {
		return "Value"
	}
	return "Key"
}

func (m SearchMode) Toggle() SearchMode {
	if m == SearchValue {
		return SearchKey
	}
	return SearchValue
}

// ParseSearchMode accepts "key" or "value" in any case. An empty string means key.
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "key":
		return SearchKey, nil
	case "value":
		return SearchValue, nil
	}
	return SearchKey, fmt.Errorf("unknown search mode %q (want key or value)", s)
}

// SearchState is the live search field: a mode and a case-insensitive term.
type SearchState struct {
	Mode SearchMode
	Term string
}

func (s SearchState) Active() bool { return s.Term != "" }

// DisplayEntry is a read-only row for the view.
type DisplayEntry struct {
	Key     string
	Value   Value
	Display string
}

// Project returns the entries matching state in document order. An empty term
// matches everything. Value searches only ever match String values. The
// result is a copy and does not follow later document changes.
func Project(doc *Document, state SearchState) []DisplayEntry {
	term := strings.ToLower(state.Term)
	out := make([]DisplayEntry, 0, doc.Len())
	for _, k := range doc.keys {
		v := doc.values[k]
		if term != "" && !matches(k, v, state.Mode, term) {
			continue
		}
		out = append(out, DisplayEntry{Key: k, Value: v, Display: v.String()})
	}
	return out
}

func matches(key string, v Value, mode SearchMode, term string) bool {
	if mode == SearchKey {
		return strings.Contains(strings.ToLower(key), term)
	}
	s, ok := v.AsString()
	return ok && strings.Contains(strings.ToLower(s), term)
}
