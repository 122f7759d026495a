package model

// Span は 1 件の一致範囲を表します。Start と End はどちらも含む rune オフセットです。
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int { return s.End - s.Start + 1 }

// MatchSet は 1 つのテキストとクエリの組に対する一致範囲の列です。
// 長さがそのテキストの一致件数になります。
type MatchSet []Span

// LineMatch は内容検索で一致した 1 行を表します。
type LineMatch struct {
	Number int      `json:"line"`
	Text   string   `json:"text"`
	Spans  MatchSet `json:"spans"`
}

// FileResult は 1 ファイル分の集計結果です。名前か内容のどちらかで 1 件以上一致した
// ファイルについてのみ作られ、作成後は変更されません。
type FileResult struct {
	Path              string      `json:"path"`
	ContentMatchCount int         `json:"content_match_count"`
	NameSpans         MatchSet    `json:"name_spans,omitempty"`
	Lines             []LineMatch `json:"lines,omitempty"`
	ReportLines       []string    `json:"report_lines"`
}

// NameMatched reports whether the path itself matched the query.
func (r FileResult) NameMatched() bool { return len(r.NameSpans) > 0 }
