package colorspace

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB represents a color with red, green and blue channels in the 0-255 range.
//
// Channels are real numbers so that intermediate values produced by other
// color spaces survive without rounding.
type RGB struct {
	R float64 `json:"r"` // Red channel (0-255)
	G float64 `json:"g"` // Green channel (0-255)
	B float64 `json:"b"` // Blue channel (0-255)
}

// XYZ represents a device-independent CIE 1931 tristimulus color.
type XYZ struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Lab represents a color in CIE-L*a*b* space.
//
//   - L is lightness, 0 (black) to 100 (white)
//   - A is the green (negative) to red (positive) axis
//   - B is the blue (negative) to yellow (positive) axis
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// HSV represents a color as hue, saturation and value.
type HSV struct {
	H float64 `json:"h"` // Hue: 0-360 degrees, NaN when degenerate
	S float64 `json:"s"` // Saturation: 0-1
	V float64 `json:"v"` // Value: 0-1
}

// Degenerate reports whether the hue carries no information because the
// color it was derived from had no positive channel.
func (c HSV) Degenerate() bool {
	return math.IsNaN(c.H)
}

// Point is a plain 3-D vector used as the common input of EuclideanDistance.
type Point struct {
	X, Y, Z float64
}

// Common reference colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Clamp returns c with every channel forced into 0-255.
func (c RGB) Clamp() RGB {
	return RGB{R: clamp(c.R, 0, 255), G: clamp(c.G, 0, 255), B: clamp(c.B, 0, 255)}
}

// RGB8 rounds the clamped channels to 8-bit values.
func (c RGB) RGB8() (r, g, b uint8) {
	c = c.Clamp()
	return uint8(math.Round(c.R)), uint8(math.Round(c.G)), uint8(math.Round(c.B))
}

// Hex formats the color as "#RRGGBB".
func (c RGB) Hex() string {
	r, g, b := c.RGB8()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c.R, c.G, c.B)
}

// ParseHex parses "#RRGGBB" or the short "#RGB" form into an RGB color.
func ParseHex(s string) (RGB, error) {
	if !isHexColor(s) {
		return RGB{}, fmt.Errorf("invalid hex color %q: want #rgb or #rrggbb", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: float64(r), G: float64(g), B: float64(b)}, nil
}

// isHexColor reports whether s is '#' followed by exactly 3 or 6 hex digits.
// colorful.Hex scans with fmt and accepts other lengths.
func isHexColor(s string) bool {
	if (len(s) != 4 && len(s) != 7) || s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
