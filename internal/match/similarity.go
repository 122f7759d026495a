package match

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"github.com/pmezard/go-difflib/difflib"
)

// Scorer returns the similarity in [0,1] between a window and the prepared term.
type Scorer func(window string) float64

// Similarity builds a Scorer bound to one term. Scorers are not safe for concurrent use.
type Similarity interface {
	Prepare(term string) Scorer
}

type similarityFunc func(term string) Scorer

func (f similarityFunc) Prepare(term string) Scorer { return f(term) }

var (
	// Ratio is the gestalt pattern matching ratio (2*M/T) computed by SequenceMatcher.
	Ratio Similarity = similarityFunc(prepareRatio)
	// Levenshtein is 1 - distance/max(len).
	Levenshtein Similarity = similarityFunc(prepareLevenshtein)
	// JaroWinkler is the Jaro-Winkler similarity.
	JaroWinkler Similarity = edlibSimilarity(edlib.JaroWinkler)
)

var algorithms = map[string]Similarity{
	"ratio":        Ratio,
	"levenshtein":  Levenshtein,
	"jaro-winkler": JaroWinkler,
}

// Algorithm resolves a similarity measure by name.
func Algorithm(name string) (Similarity, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	if key == "" {
		return Ratio, nil
	}
	if sim, ok := algorithms[key]; ok {
		return sim, nil
	}
	return nil, fmt.Errorf("unknown algorithm: %s", name)
}

// AlgorithmNames lists the accepted algorithm names in sorted order.
func AlgorithmNames() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func prepareRatio(term string) Scorer {
	// b holds the term so its index is built once; only a changes per window.
	m := difflib.NewMatcher(nil, splitRunes(term))
	return func(window string) float64 {
		m.SetSeq1(splitRunes(window))
		return m.Ratio()
	}
}

func prepareLevenshtein(term string) Scorer {
	termLen := utf8.RuneCountInString(term)
	return func(window string) float64 {
		longest := max(termLen, utf8.RuneCountInString(window))
		if longest == 0 {
			return 1
		}
		return 1 - float64(edlib.LevenshteinDistance(window, term))/float64(longest)
	}
}

// edlibSimilarity widens edlib's float32 score; meetsThreshold tolerates the rounding.
func edlibSimilarity(algo edlib.Algorithm) Similarity {
	return similarityFunc(func(term string) Scorer {
		return func(window string) float64 {
			if window == term {
				return 1
			}
			score, err := edlib.StringsSimilarity(window, term, algo)
			if err != nil {
				return 0
			}
			return float64(score)
		}
	})
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
