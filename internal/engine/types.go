package engine

import (
	"github.com/phyten/findx/internal/highlight"
	"github.com/phyten/findx/internal/model"
	"github.com/phyten/findx/internal/progress"
)

// FileError はファイル単位の失敗を表す。走査は中断されない。
type FileError struct {
	Path    string `json:"path"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// エラーが発生した段階
const (
	StageWalk   = "walk"
	StageOpen   = "open"
	StageRead   = "read"
	StageDecode = "decode"
)

// Options は 1 回の検索を表す不変のクエリ値
type Options struct {
	Root         string
	Term         string
	MatchRate    int // 0 は完全一致、1..100 は許容率 (%)
	Algorithm    string
	NamesOnly    bool
	Recursive    bool
	Jobs         int
	Excludes     []string
	MaxFileBytes int64
	Suggest      bool
	Progress     bool

	Marker           highlight.Marker  `json:"-"`
	ProgressObserver progress.Observer `json:"-"`
}

// Result は出力
type Result struct {
	Root         string             `json:"root"`
	Term         string             `json:"term"`
	Files        []model.FileResult `json:"files"`
	Total        int                `json:"total"`
	Scanned      int                `json:"scanned"`
	SkippedLarge int                `json:"skipped_large"`
	ElapsedMS    int64              `json:"elapsed_ms"`
	Errors       []FileError        `json:"errors,omitempty"`
	ErrorCount   int                `json:"error_count"`
	Suggestions  []string           `json:"suggestions,omitempty"`
}
