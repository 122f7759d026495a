package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phyten/findx/internal/highlight"
	"github.com/phyten/findx/internal/linereader"
	"github.com/phyten/findx/internal/match"
	"github.com/phyten/findx/internal/model"
	"github.com/phyten/findx/internal/progress"
	"github.com/phyten/findx/internal/rank"
	"github.com/phyten/findx/internal/walk"
)

const (
	suggestMaxDist = 3
	suggestLimit   = 5
)

// Run は root 以下のファイル名と内容を検索し、関連度順に並べた結果を返します。
//
// root が存在しない、またはディレクトリでない場合はエラーを返します。
// ファイル単位の読み込み・デコード失敗は Result.Errors に集約され、走査は継続します。
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Marker == nil {
		opts.Marker = highlight.Plain
	}
	if opts.MatchRate < 0 || opts.MatchRate > 100 {
		return nil, fmt.Errorf("invalid match rate: %d (want 0..100)", opts.MatchRate)
	}
	sim, err := match.Algorithm(opts.Algorithm)
	if err != nil {
		return nil, err
	}
	matcher := match.New(sim)

	// workers publish after releasing the estimator lock
	obs := progress.Ordered(opts.ProgressObserver)
	est := progress.NewEstimator(progress.DefaultConfig())

	var errsMu sync.Mutex
	var errs []FileError
	addErr := func(e FileError) {
		errsMu.Lock()
		errs = append(errs, e)
		errsMu.Unlock()
	}

	est.Begin(progress.StageWalk, -1)
	var entries []walk.Entry
	err = walk.Walk(ctx, opts.Root, walk.Options{Recursive: opts.Recursive, Excludes: opts.Excludes},
		func(e walk.Entry) error {
			entries = append(entries, e)
			if snap, notify := est.Advance(1); notify {
				obs.Publish(snap)
			}
			return nil
		},
		func(path string, err error) {
			addErr(newFileError(path, StageWalk, err))
		})
	if err != nil {
		return nil, err
	}

	est.Begin(progress.StageScan, len(entries))
	var collector rank.Collector
	var skippedLarge int
	var skippedMu sync.Mutex

	// worker pool
	jobs := make(chan walk.Entry)
	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for e := range jobs {
			out := scanFile(ctx, opts, matcher, e)
			if out.err != nil {
				addErr(*out.err)
			}
			if out.tooLarge {
				skippedMu.Lock()
				skippedLarge++
				skippedMu.Unlock()
			}
			if out.ok {
				collector.Add(out.result)
			}
			if snap, notify := est.Record(out.ok); notify {
				obs.Publish(snap)
			}
		}
	}

	nw := opts.Jobs
	if nw > len(entries) {
		nw = len(entries)
	}
	if nw < 1 {
		nw = 1
	}
	wg.Add(nw)
	for i := 0; i < nw; i++ {
		go worker()
	}
	cancelled := false
feed:
	for _, e := range entries {
		select {
		case jobs <- e:
		case <-ctx.Done():
			cancelled = true
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	obs.Done(est.Complete())
	if cancelled {
		return nil, ctx.Err()
	}

	files := collector.Sorted()
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Path == errs[j].Path {
			return errs[i].Stage < errs[j].Stage
		}
		return errs[i].Path < errs[j].Path
	})

	res := &Result{
		Root:         opts.Root,
		Term:         opts.Term,
		Files:        files,
		Total:        len(files),
		Scanned:      len(entries),
		SkippedLarge: skippedLarge,
		Errors:       errs,
		ErrorCount:   len(errs),
	}
	if len(files) == 0 && opts.Suggest {
		paths := make([]string, len(entries))
		for i, e := range entries {
			paths[i] = e.Path
		}
		res.Suggestions = match.Suggest(paths, opts.Term, suggestMaxDist, suggestLimit)
	}
	res.ElapsedMS = msSince(start)
	return res, nil
}

type scanOutcome struct {
	result   model.FileResult
	ok       bool
	tooLarge bool
	err      *FileError
}

// scanFile はファイル名検索を必ず行い、names_only でなければ内容も検索する。
// 内容の読み込みに失敗した場合は内容側の一致を捨て、ファイル名の一致だけを残す。
// 通常ファイル以外 (FIFO、ソケット、デバイス、ディレクトリへのリンク) は名前だけを検索する。
func scanFile(ctx context.Context, opts Options, m match.Matcher, e walk.Entry) scanOutcome {
	var out scanOutcome
	path := e.Path
	nameSpans := m.Find(path, opts.Term, opts.MatchRate)

	var lines []model.LineMatch
	if !opts.NamesOnly && e.Regular {
		err := linereader.Read(ctx, path, opts.MaxFileBytes, func(n int, text string) {
			if spans := m.Find(text, opts.Term, opts.MatchRate); len(spans) > 0 {
				lines = append(lines, model.LineMatch{Number: n, Text: text, Spans: spans})
			}
		})
		if err != nil {
			lines = nil
			if errors.Is(err, linereader.ErrTooLarge) {
				out.tooLarge = true
			} else {
				fe := newFileError(path, stageOf(err), err)
				out.err = &fe
			}
		}
	}
	out.result, out.ok = rank.Build(path, nameSpans, lines, opts.Marker)
	return out
}

func stageOf(err error) string {
	var de *linereader.DecodeError
	var re *linereader.ReadError
	switch {
	case errors.As(err, &de):
		return StageDecode
	case errors.As(err, &re):
		return StageRead
	default:
		return StageOpen
	}
}

func newFileError(path, stage string, err error) FileError {
	msg := err.Error()
	var pe *fs.PathError
	if errors.As(err, &pe) {
		msg = pe.Op + ": " + pe.Err.Error()
	}
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = "unknown error"
	}
	return FileError{Path: filepath.Clean(path), Stage: stage, Message: msg}
}

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }
