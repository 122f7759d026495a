package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phyten/findx/internal/engine"
)

type scanRun struct {
	stdout string
	stderr string
	code   int
}

// runScan executes scanCmd with stdout/stderr captured through pipes.
func runScan(t *testing.T, env []string, args ...string) scanRun {
	t.Helper()
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("パイプの作成に失敗しました: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("パイプの作成に失敗しました: %v", err)
	}
	outCh := make(chan string, 1)
	errCh := make(chan string, 1)
	go func() { b, _ := io.ReadAll(outR); outCh <- string(b) }()
	go func() { b, _ := io.ReadAll(errR); errCh <- string(b) }()

	home := t.TempDir()
	base := []string{"HOME=" + home, "XDG_CONFIG_HOME=" + home, "NO_COLOR=1"}
	code := scanCmd(context.Background(), args, outW, errW, append(base, env...))
	_ = outW.Close()
	_ = errW.Close()
	return scanRun{stdout: <-outCh, stderr: <-errCh, code: code}
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("ディレクトリの作成に失敗しました: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("ファイルの作成に失敗しました: %v", err)
		}
	}
	return root
}

func sampleTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"needle.md":        "nothing to see\n",
		"notes/a.txt":      "one needle\ntwo\nneedle and needle\n",
		"notes/deep/b.txt": "a needle deep down\n",
		"other.txt":        "hay only\n",
	})
}

func TestScanCmdはテキストレポートを順位順に出力する(t *testing.T) {
	root := sampleTree(t)
	run := runScan(t, nil, root, "needle")
	if run.code != 0 {
		t.Fatalf("終了コードが 0 ではありません: %d\n%s", run.code, run.stderr)
	}
	nameHeader := filepath.Join(root, "needle.md") + " (no matches in content):"
	aHeader := filepath.Join(root, "notes", "a.txt") + " (3 matches in content):"
	bHeader := filepath.Join(root, "notes", "deep", "b.txt") + " (1 matches in content):"
	iName := strings.Index(run.stdout, nameHeader)
	iA := strings.Index(run.stdout, aHeader)
	iB := strings.Index(run.stdout, bHeader)
	if iName < 0 || iA < 0 || iB < 0 {
		t.Fatalf("見出しが揃っていません:\n%s", run.stdout)
	}
	if !(iName < iA && iA < iB) {
		t.Fatalf("順位が期待と異なります:\n%s", run.stdout)
	}
	if !strings.Contains(run.stdout, "\tFound in content (2): Line [3]: [needle] and [needle]\n") {
		t.Fatalf("報告行が見つかりません:\n%s", run.stdout)
	}
	if strings.Contains(run.stdout, "\x1b[") {
		t.Fatalf("NO_COLOR でも色が出力されています:\n%q", run.stdout)
	}
	if run.stderr != "" {
		t.Fatalf("標準エラーに出力があります: %q", run.stderr)
	}
}

func TestScanCmdはフラグを位置引数の後にも受け付ける(t *testing.T) {
	root := sampleTree(t)
	run := runScan(t, nil, root, "needle", "-n", "-o", "json")
	if run.code != 0 {
		t.Fatalf("終了コードが 0 ではありません: %d\n%s", run.code, run.stderr)
	}
	var res engine.Result
	if err := json.Unmarshal([]byte(run.stdout), &res); err != nil {
		t.Fatalf("JSON のデコードに失敗しました: %v\n%s", err, run.stdout)
	}
	if res.Total != 1 || res.Files[0].Path != filepath.Join(root, "needle.md") {
		t.Fatalf("names_only の結果が期待と異なります: %+v", res.Files)
	}
}

func TestScanCmdはrフラグで再帰を止める(t *testing.T) {
	root := sampleTree(t)
	run := runScan(t, nil, "-r", "-o", "json", root, "needle")
	if run.code != 0 {
		t.Fatalf("終了コードが 0 ではありません: %d\n%s", run.code, run.stderr)
	}
	var res engine.Result
	if err := json.Unmarshal([]byte(run.stdout), &res); err != nil {
		t.Fatalf("JSON のデコードに失敗しました: %v", err)
	}
	if res.Total != 1 {
		t.Fatalf("直下のファイルだけが対象のはずです: %+v", res.Files)
	}
}

func TestScanCmdは結果なしでも正常終了する(t *testing.T) {
	root := writeTree(t, map[string]string{"search.txt": "x\n"})
	run := runScan(t, nil, root, "serch")
	if run.code != 0 {
		t.Fatalf("終了コードが 0 ではありません: %d", run.code)
	}
	if !strings.HasPrefix(run.stdout, "No results found in directory: "+root+"\n") {
		t.Fatalf("結果なしのメッセージが期待と異なります:\n%s", run.stdout)
	}
	if !strings.Contains(run.stdout, "Did you mean:\n\tsearch.txt\n") {
		t.Fatalf("候補が表示されていません:\n%s", run.stdout)
	}
}

func TestScanCmdの終了コード(t *testing.T) {
	root := sampleTree(t)
	cases := []struct {
		name string
		args []string
		env  []string
		want int
		msg  string
	}{
		{"存在しないルート", []string{filepath.Join(root, "missing"), "x"}, nil, exitError, "findx: "},
		{"ファイルをルートに指定", []string{filepath.Join(root, "other.txt"), "x"}, nil, exitError, "not a directory"},
		{"match_rate範囲外", []string{"-m", "101", root, "x"}, nil, exitUsage, "match_rate"},
		{"不明な出力形式", []string{"-o", "xml", root, "x"}, nil, exitUsage, "xml"},
		{"不明なアルゴリズム", []string{"--algorithm", "soundex", root, "x"}, nil, exitUsage, "--algorithm"},
		{"検索語なし", []string{root}, nil, exitUsage, "Run 'findx --help'"},
		{"不正な環境変数", []string{root, "x"}, []string{"FINDX_JOBS=many"}, exitUsage, "FINDX_JOBS"},
		{"ヘルプ", []string{"--help"}, nil, exitOK, "Usage:"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			run := runScan(t, tc.env, tc.args...)
			if run.code != tc.want {
				t.Fatalf("終了コード = %d, want %d\nstderr: %s", run.code, tc.want, run.stderr)
			}
			if !strings.Contains(run.stderr, tc.msg) {
				t.Fatalf("標準エラーに %q が含まれません: %q", tc.msg, run.stderr)
			}
		})
	}
}

func TestScanCmdは環境変数と設定ファイルを重ねる(t *testing.T) {
	root := sampleTree(t)
	if err := os.WriteFile(filepath.Join(root, ".findx.yaml"), []byte("names_only: true\noutput: ndjson\n"), 0o644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
	}

	run := runScan(t, nil, root, "needle")
	if run.code != 0 {
		t.Fatalf("終了コードが 0 ではありません: %d\n%s", run.code, run.stderr)
	}
	lines := strings.Split(strings.TrimSuffix(run.stdout, "\n"), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], `{"path":`) || !strings.Contains(lines[0], "needle.md") {
		t.Fatalf("設定ファイルの names_only / ndjson が効いていません:\n%s", run.stdout)
	}

	run = runScan(t, []string{"FINDX_NAMES_ONLY=0"}, root, "needle")
	if n := strings.Count(run.stdout, "\n"); n != 3 {
		t.Fatalf("環境変数が設定ファイルを上書きしていません (%d 行):\n%s", n, run.stdout)
	}

	run = runScan(t, []string{"FINDX_NAMES_ONLY=0"}, root, "needle", "-o", "text")
	if !strings.Contains(run.stdout, "matches in content):") {
		t.Fatalf("フラグが環境変数を上書きしていません:\n%s", run.stdout)
	}
}

func TestScanCmdはcolorAlwaysで一致箇所に色を付ける(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "find the word\n"})
	run := runScan(t, []string{"TERM=xterm"}, "--color", "always", root, "word")
	if run.code != 0 {
		t.Fatalf("終了コードが 0 ではありません: %d\n%s", run.code, run.stderr)
	}
	if !strings.Contains(run.stdout, "\x1b[1;31mword\x1b[0m") {
		t.Fatalf("一致箇所が着色されていません: %q", run.stdout)
	}

	run = runScan(t, nil, "--color", "always", "-o", "csv", root, "word")
	if strings.Contains(run.stdout, "\x1b[") {
		t.Fatalf("CSV に色が混入しています: %q", run.stdout)
	}
}

func TestScanCmdは色なしでも一致箇所を括弧で示す(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "find the word, every word\n"})
	for _, args := range [][]string{
		{"--color", "never", root, "word"},
		{root, "word"},
	} {
		run := runScan(t, []string{"TERM=xterm"}, args...)
		if run.code != 0 {
			t.Fatalf("%v: 終了コードが 0 ではありません: %d\n%s", args, run.code, run.stderr)
		}
		if strings.Contains(run.stdout, "\x1b[") {
			t.Fatalf("%v: 色が出力されています: %q", args, run.stdout)
		}
		if !strings.Contains(run.stdout, "Line [1]: find the [word], every [word]\n") {
			t.Fatalf("%v: 一致箇所が区別できません: %q", args, run.stdout)
		}
	}

	run := runScan(t, nil, "--color", "never", "-o", "csv", root, "word")
	if strings.Contains(run.stdout, "[word]") {
		t.Fatalf("CSV に括弧が混入しています: %q", run.stdout)
	}
}

func TestScanCmdはパイプ出力では進捗を出さない(t *testing.T) {
	root := writeTree(t, map[string]string{"a.txt": "needle\n"})
	run := runScan(t, nil, root, "needle")
	if run.code != 0 {
		t.Fatalf("終了コードが 0 ではありません: %d\n%s", run.code, run.stderr)
	}
	if strings.Contains(run.stderr, "progress") {
		t.Fatalf("端末でない出力先に進捗が出ています:\n%s", run.stderr)
	}

	run = runScan(t, nil, "--progress", root, "needle")
	if !strings.Contains(run.stderr, "progress stage=scan total=1 done=1 matched=1") {
		t.Fatalf("--progress で進捗行が出ていません:\n%s", run.stderr)
	}
	if strings.Contains(run.stderr, "\r") {
		t.Fatalf("パイプには 1 行ずつ出力するべきです: %q", run.stderr)
	}
}

func TestScanCmdは読めないファイルを診断して続行する(t *testing.T) {
	root := writeTree(t, map[string]string{
		"bad.txt":  "needle \xff\xfe\n",
		"good.txt": "needle\n",
	})
	run := runScan(t, nil, root, "needle")
	if run.code != 0 {
		t.Fatalf("終了コードが 0 ではありません: %d\n%s", run.code, run.stderr)
	}
	wantDiag := "findx: error reading or decoding file: " + filepath.Join(root, "bad.txt") + ": invalid UTF-8 at line 1. Skipping.\n"
	if !strings.Contains(run.stderr, wantDiag) {
		t.Fatalf("診断メッセージが期待と異なります:\n%s", run.stderr)
	}
	if !strings.Contains(run.stderr, "findx: 1 file(s) skipped due to errors\n") {
		t.Fatalf("集計行がありません:\n%s", run.stderr)
	}
	if !strings.Contains(run.stdout, filepath.Join(root, "good.txt")) || strings.Contains(run.stdout, "bad.txt") {
		t.Fatalf("レポートが期待と異なります:\n%s", run.stdout)
	}
}
