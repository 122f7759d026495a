package termcolor

import (
	"strconv"
	"strings"
)

type colorKind uint8

const (
	colorNone colorKind = iota
	colorBasic
	color256
	colorTrue
)

// Color is one foreground color in the palette of a terminal profile.
type Color struct {
	kind colorKind
	v    [3]uint8
}

// Basic is one of the 8 standard colors (0 black .. 7 white).
func Basic(n uint8) Color { return Color{kind: colorBasic, v: [3]uint8{n % 8}} }

// Index is an entry of the 256-color palette.
func Index(n uint8) Color { return Color{kind: color256, v: [3]uint8{n}} }

// TrueColor is a 24-bit color.
func TrueColor(r, g, b uint8) Color { return Color{kind: colorTrue, v: [3]uint8{r, g, b}} }

// Style is a set of SGR attributes with at most one foreground color.
type Style struct {
	Bold      bool
	Dim       bool
	Underline bool
	FG        Color
}

// IsZero reports whether the style carries no attributes.
func (s Style) IsZero() bool {
	return !s.Bold && !s.Dim && !s.Underline && s.FG.kind == colorNone
}

// Apply wraps text in the SGR sequence for s and a trailing reset.
func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" || s.IsZero() {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 24)
	b.WriteString("\x1b[")
	sep := ""
	param := func(p string) {
		b.WriteString(sep)
		b.WriteString(p)
		sep = ";"
	}
	if s.Bold {
		param("1")
	}
	if s.Dim {
		param("2")
	}
	if s.Underline {
		param("4")
	}
	switch s.FG.kind {
	case colorBasic:
		param("3" + strconv.Itoa(int(s.FG.v[0])))
	case color256:
		param("38;5;" + strconv.Itoa(int(s.FG.v[0])))
	case colorTrue:
		param("38;2;" + strconv.Itoa(int(s.FG.v[0])) + ";" + strconv.Itoa(int(s.FG.v[1])) + ";" + strconv.Itoa(int(s.FG.v[2])))
	}
	b.WriteString("m")
	b.WriteString(text)
	b.WriteString("\x1b[0m")
	return b.String()
}
