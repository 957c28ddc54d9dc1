package imaging

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-pattern-mcp/internal/colorspace"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// ColorResult contains one color in every representation the server uses.
type ColorResult struct {
	Hex   string         `json:"hex"`   // Hex format "#rrggbb" (no alpha)
	RGB   RGBColor       `json:"rgb"`   // 8-bit components
	Alpha uint8          `json:"alpha"` // Opacity (0-255)
	Lab   colorspace.Lab `json:"lab"`   // CIE-Lab under D65
	HSV   colorspace.HSV `json:"hsv"`   // Hue in degrees, S and V in 0-1
}

// DescribeColor converts c into a ColorResult. Channels are clamped to 0-255
// first, so the HSV hue is always defined. Alpha is reported as opaque.
func DescribeColor(c colorspace.RGB) *ColorResult {
	c = c.Clamp()
	r, g, b := c.RGB8()

	return &ColorResult{
		Hex:   c.Hex(),
		RGB:   RGBColor{R: r, G: g, B: b},
		Alpha: 255,
		Lab:   colorspace.RGBToLab(c),
		HSV:   colorspace.RGBToHSV(c),
	}
}

// SampleColor extracts the color at pixel (x, y), origin top-left.
//
// 16-bit channels are reduced to 8 bits by right-shifting, and the Lab and
// HSV forms are computed from those 8-bit values.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, a := img.At(x, y).RGBA()
	r8, g8, b8, a8 := uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)

	result := DescribeColor(colorspace.RGB{R: float64(r8), G: float64(g8), B: float64(b8)})
	result.Alpha = a8
	return result, nil
}
