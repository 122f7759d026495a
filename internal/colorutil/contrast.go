package colorutil

import "math"

// RGB is an sRGB color with 8-bit channels.
type RGB struct{ R, G, B uint8 }

var (
	black = RGB{0, 0, 0}
	white = RGB{255, 255, 255}
)

func linear(v uint8) float64 {
	c := float64(v) / 255
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Luminance is the relative luminance of c, 0 for black and 1 for white.
func (c RGB) Luminance() float64 {
	return 0.2126*linear(c.R) + 0.7152*linear(c.G) + 0.0722*linear(c.B)
}

// ContrastRatio is the WCAG contrast ratio between two colors, in [1, 21].
func ContrastRatio(fg, bg RGB) float64 {
	hi, lo := fg.Luminance(), bg.Luminance()
	if hi < lo {
		hi, lo = lo, hi
	}
	return (hi + 0.05) / (lo + 0.05)
}

// AutoTextColor picks black or white, whichever reads better on bg.
func AutoTextColor(bg RGB) RGB {
	onBlack := ContrastRatio(black, bg)
	if onBlack >= 4.5 || onBlack >= ContrastRatio(white, bg) {
		return black
	}
	return white
}

// Darken scales every channel towards black by amount (0..1).
func Darken(c RGB, amount float64) RGB {
	k := 1 - clamp01(amount)
	return RGB{scale(c.R, k), scale(c.G, k), scale(c.B, k)}
}

// Lighten moves every channel towards white by amount (0..1).
func Lighten(c RGB, amount float64) RGB {
	a := clamp01(amount)
	mix := func(v uint8) uint8 {
		return uint8(math.Round(float64(v) + (255-float64(v))*a))
	}
	return RGB{mix(c.R), mix(c.G), mix(c.B)}
}

// EnsureContrast keeps the hue of fg and darkens or lightens it in 10% steps until it
// reaches minRatio against bg. If that never happens it falls back to black or white.
func EnsureContrast(fg, bg RGB, minRatio float64) RGB {
	if minRatio <= 0 {
		minRatio = 4.5
	}
	darker := bg.Luminance() > 0.18
	cur := fg
	for i := 0; i < 20; i++ {
		if ContrastRatio(cur, bg) >= minRatio {
			return cur
		}
		if darker {
			cur = Darken(cur, 0.1)
		} else {
			cur = Lighten(cur, 0.1)
		}
	}
	return AutoTextColor(bg)
}

func scale(v uint8, k float64) uint8 {
	return uint8(math.Round(float64(v) * k))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
