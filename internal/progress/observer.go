package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Observer receives snapshots while a search runs and once when it ends.
// Publish may be called from several goroutines at once.
type Observer interface {
	Publish(Snapshot)
	Done(Snapshot)
}

type NoopObserver struct{}

func (NoopObserver) Publish(Snapshot) {}
func (NoopObserver) Done(Snapshot)    {}

// Ordered serializes calls to obs and drops a snapshot that arrives after a newer
// one of the same stage, so Done never moves backwards for the observer.
func Ordered(obs Observer) Observer {
	if obs == nil {
		return NoopObserver{}
	}
	return &orderedObserver{obs: obs}
}

type orderedObserver struct {
	mu   sync.Mutex
	obs  Observer
	last Snapshot
	seen bool
}

func (o *orderedObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.seen && s.Stage == o.last.Stage && s.Done < o.last.Done {
		return
	}
	o.last, o.seen = s, true
	o.obs.Publish(s)
}

func (o *orderedObserver) Done(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.last, o.seen = s, true
	o.obs.Done(s)
}

// ShouldShowProgress resolves --progress / --no-progress. Without either flag the
// indicator is shown only when both stdout and stderr are terminals.
func ShouldShowProgress(force, no bool, stdout, stderr *os.File) bool {
	switch {
	case no:
		return false
	case force:
		return true
	}
	return isTTY(stdout) && isTTY(stderr)
}

// NewAutoObserver redraws a single status line on terminals and prints one
// key=value line per update otherwise.
func NewAutoObserver(w io.Writer) Observer {
	if w == nil {
		w = os.Stderr
	}
	f, ok := w.(*os.File)
	return &writerObserver{w: w, tty: ok && isTTY(f)}
}

type writerObserver struct {
	mu  sync.Mutex
	w   io.Writer
	tty bool
}

func (o *writerObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.tty {
		_, _ = fmt.Fprintf(o.w, "\r\033[K%s", renderTTY(s))
		return
	}
	_, _ = fmt.Fprintln(o.w, renderLine(s))
}

func (o *writerObserver) Done(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.tty {
		_, _ = fmt.Fprint(o.w, "\r\033[K")
		return
	}
	_, _ = fmt.Fprintln(o.w, renderLine(s))
}

func renderTTY(s Snapshot) string {
	if s.Stage == StageWalk || s.Total < 0 {
		return fmt.Sprintf("[progress] %s %d files found", s.Stage, s.Done)
	}
	rate, eta := "--/s", "--:--"
	if !s.Warmup {
		if s.Rate > 0 {
			rate = fmt.Sprintf("%.1f/s", s.Rate)
		}
		if s.ETA > 0 {
			eta = clock(s.ETA)
		}
	}
	return fmt.Sprintf("[progress] %s %3d%% %d/%d files, %d matched %s ETA %s",
		s.Stage, percent(s.Done, s.Total), s.Done, s.Total, s.Matched, rate, eta)
}

func renderLine(s Snapshot) string {
	eta := -1.0
	if s.ETA > 0 {
		eta = s.ETA.Seconds()
	}
	return fmt.Sprintf("progress stage=%s total=%d done=%d matched=%d rate=%.3f eta=%g warmup=%t elapsed=%s",
		s.Stage, s.Total, s.Done, s.Matched, s.Rate, eta, s.Warmup, s.Elapsed.Round(time.Millisecond))
}

// clock formats d as HH:MM:SS, capping hours at 99.
func clock(d time.Duration) string {
	secs := int(math.Round(d.Seconds()))
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	if h > 99 {
		h = 99
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, secs%3600/60, secs%60)
}

func percent(done, total int) int {
	switch {
	case total <= 0 && done > 0:
		return 100
	case total <= 0 || done <= 0:
		return 0
	case done >= total:
		return 100
	}
	return done * 100 / total
}

func isTTY(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
