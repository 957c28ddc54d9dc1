// Package metric selects the color space in which patterns are stored and compared.
//
// A Space bundles the conversion from RGB, the conversion back to RGB and the
// distance function of one color representation. The active Space is chosen
// once at start-up and passed to everything that builds or compares patterns;
// nothing downstream inspects which variant it holds.
package metric

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/image-pattern-mcp/internal/colorspace"
)

// ErrUnknownSpace is returned by Parse for an unrecognized space name.
var ErrUnknownSpace = errors.New("unknown metric color space")

// Name identifies a metric color space.
type Name string

// Supported metric color spaces.
const (
	NameRGB Name = "rgb"
	NameLab Name = "cielab"
	NameHSV Name = "hsv"
)

// Color is a color in a metric space, stored as its three components in the
// space's order: (r, g, b), (l, a, b) or (h, s, v).
//
// Components are 32-bit so that a stored pattern holds exactly what its
// binary record holds.
type Color [3]float32

// Space is a metric color space.
type Space interface {
	// Name returns the identifier of the space.
	Name() Name

	// FromRGB converts an RGB color into the space.
	FromRGB(c colorspace.RGB) Color

	// ToRGB converts a color of the space back to RGB, clamping as needed.
	ToRGB(c Color) colorspace.RGB

	// Distance measures the dissimilarity of two colors of the space.
	Distance(a, b Color) float64

	// Components names the three components in storage order.
	Components() [3]string
}

var (
	rgbInstance = rgbSpace{}
	labInstance = labSpace{}
	hsvInstance = hsvSpace{}
)

// RGB returns the space that stores raw RGB channels.
func RGB() Space { return rgbInstance }

// Lab returns the CIE-Lab space.
func Lab() Space { return labInstance }

// HSV returns the HSV space.
func HSV() Space { return hsvInstance }

// Names lists the accepted space names.
func Names() []Name {
	return []Name{NameRGB, NameLab, NameHSV}
}

// Parse resolves a space by name. Matching is case-insensitive and "lab" is
// accepted as an alias of "cielab".
func Parse(name string) (Space, error) {
	switch Name(strings.ToLower(strings.TrimSpace(name))) {
	case NameRGB:
		return RGB(), nil
	case NameLab, "lab":
		return Lab(), nil
	case NameHSV:
		return HSV(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpace, name)
	}
}

// MaxDistance returns the distance between black and white in s.
func MaxDistance(s Space) float64 {
	return s.Distance(s.FromRGB(colorspace.Black), s.FromRGB(colorspace.White))
}

type rgbSpace struct{}

func (rgbSpace) Name() Name { return NameRGB }

func (rgbSpace) FromRGB(c colorspace.RGB) Color {
	return Color{float32(c.R), float32(c.G), float32(c.B)}
}

func (rgbSpace) ToRGB(c Color) colorspace.RGB {
	return colorspace.RGB{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}
}

func (s rgbSpace) Distance(a, b Color) float64 {
	return colorspace.RGBDistance(s.ToRGB(a), s.ToRGB(b))
}

func (rgbSpace) Components() [3]string { return [3]string{"r", "g", "b"} }

type labSpace struct{}

func (labSpace) Name() Name { return NameLab }

func (labSpace) FromRGB(c colorspace.RGB) Color {
	lab := colorspace.RGBToLab(c)
	return Color{float32(lab.L), float32(lab.A), float32(lab.B)}
}

func (labSpace) ToRGB(c Color) colorspace.RGB {
	return colorspace.LabToRGB(toLab(c))
}

func (labSpace) Distance(a, b Color) float64 {
	return colorspace.LabDistance(toLab(a), toLab(b))
}

func (labSpace) Components() [3]string { return [3]string{"l", "a", "b"} }

func toLab(c Color) colorspace.Lab {
	return colorspace.Lab{L: float64(c[0]), A: float64(c[1]), B: float64(c[2])}
}

type hsvSpace struct{}

func (hsvSpace) Name() Name { return NameHSV }

func (hsvSpace) FromRGB(c colorspace.RGB) Color {
	hsv := colorspace.RGBToHSV(c)
	return Color{float32(hsv.H), float32(hsv.S), float32(hsv.V)}
}

func (hsvSpace) ToRGB(c Color) colorspace.RGB {
	return colorspace.HSVToRGB(toHSV(c))
}

func (hsvSpace) Distance(a, b Color) float64 {
	return colorspace.HSVDistance(toHSV(a), toHSV(b))
}

func (hsvSpace) Components() [3]string { return [3]string{"h", "s", "v"} }

func toHSV(c Color) colorspace.HSV {
	return colorspace.HSV{H: float64(c[0]), S: float64(c[1]), V: float64(c[2])}
}
