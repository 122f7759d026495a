package termcolor

import "github.com/phyten/findx/internal/colorutil"

var (
	matchRGB = colorutil.RGB{R: 255, G: 85, B: 85}
	darkBG   = colorutil.RGB{R: 30, G: 30, B: 30}
	lightBG  = colorutil.RGB{R: 249, G: 250, B: 251}
)

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// PathStyle is used for the per-file heading of the text report.
func PathStyle() Style {
	return Style{Bold: true}
}

// DiagStyle marks per-file diagnostics on stderr.
func DiagStyle() Style {
	return Style{FG: Basic(3)}
}

// MatchStyle is the highlight applied to matched spans. On light backgrounds the red
// is darkened or lightened until it keeps a 4.5:1 contrast ratio.
func MatchStyle(scheme Scheme, profile Profile) Style {
	bg := darkBG
	if scheme == SchemeLight {
		bg = lightBG
	}
	fg := colorutil.EnsureContrast(matchRGB, bg, 4.5)
	switch profile {
	case ProfileTrueColor:
		return Style{Bold: true, FG: TrueColor(fg.R, fg.G, fg.B)}
	case ProfileANSI256:
		return Style{Bold: true, FG: Index(rgbToANSI256(fg.R, fg.G, fg.B))}
	default:
		return Style{Bold: true, FG: Basic(1)}
	}
}

func rgbToANSI256(r, g, b uint8) uint8 {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return uint8(232 + (int(r)-8)*24/247)
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return uint8(16 + 36*rr + 6*gg + bb)
}
