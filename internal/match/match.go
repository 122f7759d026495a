// Package match locates occurrences of a query inside a single line of text.
//
// Offsets are rune indices into the original text. Comparison is case-insensitive:
// both sides are lower-cased rune by rune, so every offset in the lowered text maps
// to the same rune in the original.
package match

import (
	"unicode"

	"github.com/phyten/findx/internal/model"
)

// Matcher finds spans using a configurable similarity measure for fuzzy mode.
type Matcher struct {
	sim Similarity
}

// New returns a Matcher that scores fuzzy windows with sim. A nil sim falls back to Ratio.
func New(sim Similarity) Matcher {
	if sim == nil {
		sim = Ratio
	}
	return Matcher{sim: sim}
}

// Find returns every match of term in text using the gestalt ratio for fuzzy mode.
func Find(text, term string, tolerance int) model.MatchSet {
	return New(Ratio).Find(text, term, tolerance)
}

// Find dispatches on tolerance: 0 (or below) is exact substring matching,
// anything above is fuzzy window matching.
func (m Matcher) Find(text, term string, tolerance int) model.MatchSet {
	if tolerance <= 0 {
		return Exact(text, term)
	}
	return m.Fuzzy(text, term, tolerance)
}

// Exact reports every position where term occurs in text. The scan resumes one rune
// after each hit, so overlapping occurrences are all reported.
func Exact(text, term string) model.MatchSet {
	needle := lowerRunes(term)
	if len(needle) == 0 {
		return nil
	}
	hay := lowerRunes(text)
	n := len(needle)
	var out model.MatchSet
	for i := 0; i+n <= len(hay); i++ {
		if hay[i] != needle[0] {
			continue
		}
		if equalRunes(hay[i:i+n], needle) {
			out = append(out, model.Span{Start: i, End: i + n - 1})
		}
	}
	return out
}

// Fuzzy slides a window of len(term) runes over text with stride 1 and keeps every
// window whose similarity to term is at least 1 - tolerance/100. Overlapping windows
// are all kept.
func (m Matcher) Fuzzy(text, term string, tolerance int) model.MatchSet {
	needle := lowerRunes(term)
	n := len(needle)
	if n == 0 {
		return nil
	}
	hay := lowerRunes(text)
	if n > len(hay) {
		return nil
	}
	score := m.sim.Prepare(string(needle))
	var out model.MatchSet
	for i := 0; i+n <= len(hay); i++ {
		if meetsThreshold(score(string(hay[i:i+n])), tolerance) {
			out = append(out, model.Span{Start: i, End: i + n - 1})
		}
	}
	return out
}

// scoreEpsilon absorbs rounding in both the score and 1 - tolerance/100, so a
// window sitting exactly on the threshold is kept.
const scoreEpsilon = 1e-6

func meetsThreshold(score float64, tolerance int) bool {
	return score+scoreEpsilon >= 1-float64(tolerance)/100
}

func lowerRunes(s string) []rune {
	if s == "" {
		return nil
	}
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
