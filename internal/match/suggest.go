package match

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Suggest returns up to limit base names from paths whose edit distance to term is
// at most maxDist, closest first.
func Suggest(paths []string, term string, maxDist, limit int) []string {
	want := strings.ToLower(strings.TrimSpace(term))
	if want == "" || limit <= 0 {
		return nil
	}
	type candidate struct {
		name string
		dist int
	}
	seen := make(map[string]struct{}, len(paths))
	var cands []candidate
	for _, p := range paths {
		name := filepath.Base(p)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		d := edlib.LevenshteinDistance(strings.ToLower(name), want)
		if stem := strings.TrimSuffix(name, filepath.Ext(name)); stem != name && stem != "" {
			if ds := edlib.LevenshteinDistance(strings.ToLower(stem), want); ds < d {
				d = ds
			}
		}
		if d <= maxDist {
			cands = append(cands, candidate{name: name, dist: d})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].name < cands[j].name
	})
	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.name
	}
	return out
}
