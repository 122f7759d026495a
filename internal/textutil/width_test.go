package textutil

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestVisibleWidth(t *testing.T) {
	setEastAsianWidth(t, false)
	cases := []struct {
		name string
		s    string
		want int
	}{
		{name: "ASCII", s: "ABC", want: 3},
		{name: "ひらがな", s: "あいう", want: 6},
		{name: "CombiningMark", s: "é", want: 1},
		{name: "EmojiZWJ", s: "\U0001F468\u200d\U0001F4BB", want: 2},
		{name: "ANSIColored", s: "\x1b[31m赤\x1b[0m", want: 2},
		{name: "Empty", s: "", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VisibleWidth(tc.s); got != tc.want {
				t.Fatalf("VisibleWidth(%q) = %d, want %d", tc.s, got, tc.want)
			}
		})
	}
}

func TestTruncateByWidth(t *testing.T) {
	setEastAsianWidth(t, false)
	cases := []struct {
		name     string
		s        string
		width    int
		want     string
		ellipsis string
	}{
		{name: "日本語", s: "こんにちは世界", width: 6, want: "こん…", ellipsis: "…"},
		{name: "EmojiSafe", s: "\U0001F468\u200d\U0001F4BBテスト", width: 4, want: "\U0001F468\u200d\U0001F4BB…", ellipsis: "…"},
		{name: "NoEllipsis", s: "abcdef", width: 3, want: "abc", ellipsis: ""},
		{name: "省略記号が入らない", s: "abcdef", width: 2, want: "ab", ellipsis: "..."},
		{name: "ANSIStripped", s: "\x1b[31mabcdef\x1b[0m", width: 4, want: "abc…", ellipsis: "…"},
		{name: "Fits", s: "abc", width: 3, want: "abc", ellipsis: "…"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateByWidth(tc.s, tc.width, tc.ellipsis); got != tc.want {
				t.Fatalf("TruncateByWidth(%q, %d) = %q, want %q", tc.s, tc.width, got, tc.want)
			}
			if width := VisibleWidth(tc.want); width > tc.width {
				t.Fatalf("result width %d exceeds limit %d", width, tc.width)
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "\x1b[1;31mword\x1b[0m", want: "word"},
		{in: "\x1b]8;;https://example.com\x07link\x1b]8;;\x07", want: "link"},
	}
	for _, tc := range cases {
		if got := StripANSI(tc.in); got != tc.want {
			t.Fatalf("StripANSI(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	setEastAsianWidth(t, false)
	if got := VisibleWidth(PadRight("あ", 6)); got != 6 {
		t.Fatalf("PadRight did not reach target width: %d", got)
	}
	if got := PadRight("テスト", 4); got != "テスト" {
		t.Fatalf("PadRight should not shrink wider text: %q", got)
	}
	if got := PadRight("ab", 4); got != "ab  " {
		t.Fatalf("PadRight(ab, 4) = %q", got)
	}
}

func TestExpandTabs(t *testing.T) {
	setEastAsianWidth(t, false)
	cases := []struct {
		in   string
		want string
	}{
		{in: "a\tb", want: "a   b"},
		{in: "\tx", want: "    x"},
		{in: "abcd\te", want: "abcd    e"},
		{in: "あ\tb", want: "あ  b"},
		{in: "no tabs", want: "no tabs"},
	}
	for _, tc := range cases {
		if got := ExpandTabs(tc.in, 4); got != tc.want {
			t.Fatalf("ExpandTabs(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateAroundKeepsFocusVisible(t *testing.T) {
	setEastAsianWidth(t, false)
	s := "0123456789abcdefghijKEYWORDklmnopqrstuvwxyz"
	focus := 20
	got := TruncateAround(s, focus, 16, "…")
	if w := VisibleWidth(got); w > 16 {
		t.Fatalf("width %d exceeds 16: %q", w, got)
	}
	if !strings.Contains(got, "KEY") {
		t.Fatalf("focus rune dropped: %q", got)
	}
	if !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis on both sides: %q", got)
	}
	if got := TruncateAround("short", 3, 16, "…"); got != "short" {
		t.Fatalf("short strings should be untouched: %q", got)
	}
	if got := TruncateAround(s, 0, 5, "…"); got != "0123…" {
		t.Fatalf("focus at start should truncate from the end: %q", got)
	}
}

func setEastAsianWidth(t *testing.T, eastAsian bool) {
	t.Helper()
	prev := runewidth.EastAsianWidth
	runewidth.EastAsianWidth = eastAsian
	runewidth.DefaultCondition = runewidth.NewCondition()
	t.Cleanup(func() {
		runewidth.EastAsianWidth = prev
		runewidth.DefaultCondition = runewidth.NewCondition()
	})
}
