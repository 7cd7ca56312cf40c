package splat

import (
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
)

// RGB is a normalized color with float32 channels in [0, 1], the layout of
// the Store's packed color column.
type RGB struct {
	R, G, B float32
}

// Common colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
	Red   = RGB{1, 0, 0}
	Green = RGB{0, 1, 0}
	Blue  = RGB{0, 0, 1}
)

// Lerp blends c toward target by t: c + (target - c) * t.
func (c RGB) Lerp(target RGB, t float32) RGB {
	return RGB{
		R: c.R + (target.R-c.R)*t,
		G: c.G + (target.G-c.G)*t,
		B: c.B + (target.B-c.B)*t,
	}
}

// NRGBA converts the color and an opacity to an 8-bit non-premultiplied
// color.
func (c RGB) NRGBA(opacity float32) color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(opacity),
	}
}

func to8(x float32) uint8 {
	return uint8(math32.Round(clamp01(x) * 255))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float32) float32 {
	return math32.Max(0, math32.Min(1, x))
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RRGGBB", with optional '#' prefix.
// Returns Black for malformed input; use ParseHex to detect errors.
func Hex(hex string) RGB {
	c, err := ParseHex(hex)
	if err != nil {
		return Black
	}
	return c
}

// ParseHex parses "#RGB" or "#RRGGBB" (the '#' is optional).
func ParseHex(hex string) (RGB, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	var ok bool
	switch len(s) {
	case 3:
		if r, ok = parseHex(s[0:1]); ok {
			if g, ok = parseHex(s[1:2]); ok {
				b, ok = parseHex(s[2:3])
			}
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if r, ok = parseHex(s[0:2]); ok {
			if g, ok = parseHex(s[2:4]); ok {
				b, ok = parseHex(s[4:6])
			}
		}
	}
	if !ok {
		return Black, fmt.Errorf("splat: invalid hex color %q", hex)
	}

	return RGB{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
	}, nil
}

// parseHex decodes a run of hex digits.
func parseHex(s string) (uint32, bool) {
	var val uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		val *= 16
		switch {
		case '0' <= c && c <= '9':
			val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			val += uint32(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return val, true
}
