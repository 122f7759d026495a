// Package textutil measures and trims text by terminal cell width.
package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CSI sequences plus OSC sequences terminated by BEL or ST.
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

type cluster struct {
	text  string
	width int
}

// clusters splits s into grapheme clusters with their display widths.
func clusters(s string) []cluster {
	var out []cluster
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		seg := g.Str()
		out = append(out, cluster{text: seg, width: runewidth.StringWidth(seg)})
	}
	return out
}

// VisibleWidth returns the number of terminal cells s occupies once escape
// sequences are removed.
func VisibleWidth(s string) int {
	n := 0
	for _, c := range clusters(StripANSI(s)) {
		n += c.width
	}
	return n
}

// TruncateByWidth cuts s down to at most w cells without splitting a grapheme
// cluster. When a cut happens the ellipsis is appended if it fits.
func TruncateByWidth(s string, w int, ellipsis string) string {
	if w <= 0 || s == "" {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	budget := w
	ellW := runewidth.StringWidth(ellipsis)
	if ellipsis != "" && ellW <= w {
		budget -= ellW
	} else {
		ellipsis = ""
	}
	var b strings.Builder
	used := 0
	for _, c := range clusters(StripANSI(s)) {
		if used+c.width > budget {
			break
		}
		b.WriteString(c.text)
		used += c.width
	}
	return b.String() + ellipsis
}

// PadRight appends spaces until s is w cells wide.
func PadRight(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// ExpandTabs replaces tabs with spaces up to the next multiple of tabWidth columns.
func ExpandTabs(s string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, c := range clusters(s) {
		if c.text == "\t" {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteString(c.text)
		col += c.width
	}
	return b.String()
}

// TruncateAround trims s to width w while keeping the rune at index focus visible.
// Text cut from the front is replaced by the ellipsis, as is text cut from the end.
func TruncateAround(s string, focus, w int, ellipsis string) string {
	if w <= 0 {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	runes := []rune(StripANSI(s))
	if focus <= 0 || focus >= len(runes) {
		return TruncateByWidth(s, w, ellipsis)
	}
	ellW := runewidth.StringWidth(ellipsis)
	// roughly a third of the budget is leading context
	lead := w / 3
	start := focus
	used := 0
	for start > 0 {
		rw := runewidth.RuneWidth(runes[start-1])
		if used+rw > lead {
			break
		}
		used += rw
		start--
	}
	if start == 0 {
		return TruncateByWidth(string(runes), w, ellipsis)
	}
	if ellW >= w {
		return TruncateByWidth(string(runes[start:]), w, "")
	}
	return ellipsis + TruncateByWidth(string(runes[start:]), w-ellW, ellipsis)
}
