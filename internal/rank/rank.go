// Package rank builds per-file results and orders them by relevance.
package rank

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/phyten/findx/internal/highlight"
	"github.com/phyten/findx/internal/model"
)

const (
	filenamePrefix = "Found in filename"
	contentPrefix  = "Found in content"
)

// Build assembles the FileResult for one file. lines must hold only lines with at
// least one span, in ascending line order. ok is false when neither the name nor
// any line matched; no result is produced for such files.
func Build(path string, nameSpans model.MatchSet, lines []model.LineMatch, mark highlight.Marker) (res model.FileResult, ok bool) {
	kept := make([]model.LineMatch, 0, len(lines))
	count := 0
	for _, ln := range lines {
		if len(ln.Spans) == 0 {
			continue
		}
		kept = append(kept, ln)
		count += len(ln.Spans)
	}
	if len(nameSpans) == 0 && len(kept) == 0 {
		return model.FileResult{}, false
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Number < kept[j].Number })

	report := make([]string, 0, len(kept)+1)
	if len(nameSpans) > 0 {
		report = append(report, filenameLine(len(nameSpans), highlight.Render(path, nameSpans, mark)))
	}
	for _, ln := range kept {
		report = append(report, contentLine(len(ln.Spans), ln.Number, highlight.Render(ln.Text, ln.Spans, mark)))
	}
	res = model.FileResult{
		Path:              path,
		ContentMatchCount: count,
		ReportLines:       report,
	}
	if len(nameSpans) > 0 {
		res.NameSpans = append(model.MatchSet(nil), nameSpans...)
	}
	if len(kept) > 0 {
		res.Lines = kept
	}
	return res, true
}

func filenameLine(n int, path string) string {
	return fmt.Sprintf("%s (%d): %s", filenamePrefix, n, path)
}

func contentLine(n, lineNo int, text string) string {
	return fmt.Sprintf("%s (%d): Line [%d]: %s", contentPrefix, n, lineNo, text)
}

// Headline is the first report line of r rendered without highlight markers.
func Headline(r model.FileResult) string {
	if r.NameMatched() {
		return filenameLine(len(r.NameSpans), r.Path)
	}
	if len(r.Lines) > 0 {
		ln := r.Lines[0]
		return contentLine(len(ln.Spans), ln.Number, ln.Text)
	}
	if len(r.ReportLines) > 0 {
		return r.ReportLines[0]
	}
	return ""
}

// Less orders a before b: filename matches first, then more content matches, then
// the lower-cased headline, then the path.
func Less(a, b model.FileResult) bool {
	an, bn := a.NameMatched(), b.NameMatched()
	if an != bn {
		return an
	}
	if a.ContentMatchCount != b.ContentMatchCount {
		return a.ContentMatchCount > b.ContentMatchCount
	}
	ah := strings.ToLower(Headline(a))
	bh := strings.ToLower(Headline(b))
	if ah != bh {
		return ah < bh
	}
	return a.Path < b.Path
}

// Sort orders results in place.
func Sort(results []model.FileResult) {
	sort.SliceStable(results, func(i, j int) bool { return Less(results[i], results[j]) })
}

// Collector gathers results from concurrent scanners.
type Collector struct {
	mu      sync.Mutex
	results []model.FileResult
}

// Add records one result. Safe for concurrent use.
func (c *Collector) Add(r model.FileResult) {
	c.mu.Lock()
	c.results = append(c.results, r)
	c.mu.Unlock()
}

// Len reports how many results have been collected so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

// Sorted returns a ranked copy of everything collected. Call it only after every
// scanner has finished.
func (c *Collector) Sorted() []model.FileResult {
	c.mu.Lock()
	out := make([]model.FileResult, len(c.results))
	copy(out, c.results)
	c.mu.Unlock()
	Sort(out)
	return out
}
