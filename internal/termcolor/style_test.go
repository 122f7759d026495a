package termcolor

import "testing"

func TestApply(t *testing.T) {
	cases := []struct {
		name  string
		style Style
		want  string
	}{
		{"bold red", Style{Bold: true, FG: Basic(1)}, "\x1b[1;31mhit\x1b[0m"},
		{"dim 256", Style{Dim: true, FG: Index(196)}, "\x1b[2;38;5;196mhit\x1b[0m"},
		{"truecolor", Style{FG: TrueColor(1, 2, 3)}, "\x1b[38;2;1;2;3mhit\x1b[0m"},
		{"header", Style{Bold: true, Underline: true}, "\x1b[1;4mhit\x1b[0m"},
		{"empty", Style{}, "hit"},
	}
	for _, tc := range cases {
		if got := Apply(tc.style, "hit", true); got != tc.want {
			t.Errorf("%s: Apply = %q, want %q", tc.name, got, tc.want)
		}
	}
	if got := Apply(Style{Bold: true}, "hit", false); got != "hit" {
		t.Fatalf("disabled Apply should return original text, got %q", got)
	}
	if got := Apply(Style{Bold: true}, "", true); got != "" {
		t.Fatalf("empty text should stay empty, got %q", got)
	}
}

func TestStyleIsZero(t *testing.T) {
	if !(Style{}).IsZero() {
		t.Fatal("empty style should be zero")
	}
	if (Style{FG: Basic(0)}).IsZero() {
		t.Fatal("black foreground is still a color")
	}
	if PathStyle().IsZero() {
		t.Fatal("path style should carry attributes")
	}
}
