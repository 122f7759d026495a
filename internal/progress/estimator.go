// Package progress estimates search throughput and reports it while files are
// walked and scanned.
package progress

import (
	"math"
	"sync"
	"time"
)

// Stage names the phase a search is in. Walk counts discovered files against an
// unknown total; scan counts searched files against the walk result.
type Stage string

const (
	StageWalk Stage = "walk"
	StageScan Stage = "scan"
)

// Snapshot is the state of the current stage at one instant. Total and Remaining
// are -1 while the total is unknown.
type Snapshot struct {
	Stage     Stage         `json:"stage"`
	Total     int           `json:"total"`
	Done      int           `json:"done"`
	Matched   int           `json:"matched"`
	Remaining int           `json:"remaining"`
	Rate      float64       `json:"rate_per_sec"`
	ETA       time.Duration `json:"eta"`
	Warmup    bool          `json:"warmup"`
	Elapsed   time.Duration `json:"elapsed"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type Config struct {
	// Alpha weights the newest instantaneous rate in the moving average.
	Alpha          float64
	Samples        int
	WarmupFiles    int
	WarmupDuration time.Duration
	NotifyInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Alpha:          0.2,
		Samples:        64,
		WarmupFiles:    20,
		WarmupDuration: 2 * time.Second,
		NotifyInterval: 250 * time.Millisecond,
	}
}

// Estimator is safe for concurrent use by the scan workers.
type Estimator struct {
	mu         sync.Mutex
	cfg        Config
	stage      Stage
	total      int
	done       int
	matched    int
	start      time.Time
	last       time.Time
	lastNotify time.Time
	ema        float64
	rates      rateRing
}

func NewEstimator(cfg Config) *Estimator {
	def := DefaultConfig()
	if cfg.Alpha <= 0 || cfg.Alpha > 1 {
		cfg.Alpha = def.Alpha
	}
	if cfg.Samples <= 0 {
		cfg.Samples = def.Samples
	}
	if cfg.WarmupFiles <= 0 {
		cfg.WarmupFiles = def.WarmupFiles
	}
	if cfg.WarmupDuration <= 0 {
		cfg.WarmupDuration = def.WarmupDuration
	}
	if cfg.NotifyInterval <= 0 {
		cfg.NotifyInterval = def.NotifyInterval
	}
	e := &Estimator{cfg: cfg, rates: newRateRing(cfg.Samples)}
	e.Begin(StageScan, -1)
	return e
}

// Begin switches to stage and restarts the counters and clock against total.
func (e *Estimator) Begin(stage Stage, total int) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now()
	e.stage = stage
	e.total = total
	e.done, e.matched = 0, 0
	e.start, e.last, e.lastNotify = now, now, now
	e.ema = 0
	e.rates.reset()
	return e.snapshotLocked(now)
}

// Record advances by one file and counts it as matched when hit is set.
func (e *Estimator) Record(hit bool) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if hit {
		e.matched++
	}
	return e.advanceLocked(1)
}

// Advance adds delta finished items. notify reports whether observers are due an
// update; it is always set when the stage reaches its total.
func (e *Estimator) Advance(delta int) (snap Snapshot, notify bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if delta <= 0 {
		return e.snapshotLocked(time.Now()), false
	}
	return e.advanceLocked(delta)
}

func (e *Estimator) advanceLocked(delta int) (Snapshot, bool) {
	now := time.Now()
	if now.Before(e.last) {
		now = e.last
	}
	dt := now.Sub(e.last).Seconds()
	if dt <= 0 {
		dt = 1e-6
	}
	e.done += delta
	if r := float64(delta) / dt; !math.IsNaN(r) && !math.IsInf(r, 0) {
		if e.ema == 0 {
			e.ema = r
		} else {
			e.ema = e.cfg.Alpha*r + (1-e.cfg.Alpha)*e.ema
		}
		e.rates.add(r)
	}
	e.last = now
	snap := e.snapshotLocked(now)
	notify := now.Sub(e.lastNotify) >= e.cfg.NotifyInterval || snap.Remaining == 0
	if notify {
		e.lastNotify = now
	}
	return snap, notify
}

func (e *Estimator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(time.Now())
}

// Complete marks the stage finished, even when the search was cut short.
func (e *Estimator) Complete() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.total >= 0 && e.done < e.total {
		e.done = e.total
	}
	now := time.Now()
	e.lastNotify = now
	return e.snapshotLocked(now)
}

func (e *Estimator) snapshotLocked(now time.Time) Snapshot {
	remaining := -1
	if e.total >= 0 {
		remaining = e.total - e.done
		if remaining < 0 {
			remaining = 0
		}
	}
	elapsed := now.Sub(e.start)
	warm := e.done >= e.cfg.WarmupFiles && elapsed >= e.cfg.WarmupDuration
	// the median is steadier than the moving average when file sizes vary
	rate := e.rates.median()
	if rate <= 0 {
		rate = e.ema
	}
	var eta time.Duration
	if warm && remaining > 0 {
		eta = etaFor(remaining, rate)
	}
	return Snapshot{
		Stage:     e.stage,
		Total:     e.total,
		Done:      e.done,
		Matched:   e.matched,
		Remaining: remaining,
		Rate:      rate,
		ETA:       eta,
		Warmup:    !warm,
		Elapsed:   elapsed,
		UpdatedAt: now,
	}
}

func etaFor(remaining int, rate float64) time.Duration {
	if rate <= 0 {
		return 0
	}
	seconds := float64(remaining) / rate
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0
	}
	if seconds >= float64(math.MaxInt64)/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}
