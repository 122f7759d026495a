// Package highlight renders a line with its matched spans marked.
package highlight

import (
	"sort"
	"strings"

	"github.com/phyten/findx/internal/model"
	"github.com/phyten/findx/internal/termcolor"
)

// Marker wraps one marked segment for display.
type Marker func(segment string) string

// Plain leaves segments unchanged.
func Plain(segment string) string { return segment }

// Wrap returns a Marker that surrounds segments with open and close.
func Wrap(open, close string) Marker {
	return func(segment string) string {
		return open + segment + close
	}
}

// ANSI returns a Marker that colors segments with the given terminal style.
func ANSI(style termcolor.Style) Marker {
	return func(segment string) string {
		return termcolor.Apply(style, segment, true)
	}
}

// Render copies text, marking each span. Spans are visited in ascending start order
// with a cursor: text before a span is copied as is, the span is marked from
// max(cursor, start) through end, and the cursor moves past end. A span that lies
// entirely behind the cursor emits nothing, so overlapping spans yield one
// continuous marked region.
func Render(text string, spans model.MatchSet, mark Marker) string {
	if len(spans) == 0 || text == "" {
		return text
	}
	if mark == nil {
		mark = Plain
	}
	rs := []rune(text)
	sorted := make(model.MatchSet, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	var b strings.Builder
	b.Grow(len(text) + len(sorted)*8)
	cursor := 0
	for _, sp := range sorted {
		start, end := sp.Start, sp.End
		if end >= len(rs) {
			end = len(rs) - 1
		}
		if start < cursor {
			start = cursor
		}
		if start < 0 || start > end {
			continue
		}
		b.WriteString(string(rs[cursor:start]))
		b.WriteString(mark(string(rs[start : end+1])))
		cursor = end + 1
	}
	b.WriteString(string(rs[cursor:]))
	return b.String()
}

// Strip removes every occurrence of open and close from s. It inverts Render for
// Wrap markers whose delimiters do not occur in the original text.
func Strip(s, open, close string) string {
	if open != "" {
		s = strings.ReplaceAll(s, open, "")
	}
	if close != "" {
		s = strings.ReplaceAll(s, close, "")
	}
	return s
}
