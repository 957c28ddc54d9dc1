package colorspace

import "math"

// D65/2° reference white.
const (
	refX = 95.047
	refY = 100.0
	refZ = 108.883
)

// CIE and sRGB calibration constants.
const (
	labEpsilon   = 0.008856
	labKappa     = 7.787
	labOffset    = 16.0 / 116.0
	gammaIn      = 0.04045
	gammaOut     = 0.0031308
	hsvMinDelta  = 0.00001
	channelScale = 255.0
)

// RGBToXYZ converts an sRGB color to CIE-XYZ under the D65/2° observer.
//
// Each channel is normalized to 0-1, linearized with the sRGB inverse gamma
// curve, scaled to 0-100 and multiplied by the fixed RGB-to-XYZ matrix.
func RGBToXYZ(c RGB) XYZ {
	r := linearize(c.R/channelScale) * 100
	g := linearize(c.G/channelScale) * 100
	b := linearize(c.B/channelScale) * 100

	return XYZ{
		X: r*0.4124 + g*0.3576 + b*0.1805,
		Y: r*0.2126 + g*0.7152 + b*0.0722,
		Z: r*0.0193 + g*0.1192 + b*0.9505,
	}
}

// XYZToLab converts a CIE-XYZ color to CIE-Lab relative to the D65/2° white.
func XYZToLab(c XYZ) Lab {
	x := labForward(c.X / refX)
	y := labForward(c.Y / refY)
	z := labForward(c.Z / refZ)

	return Lab{
		L: 116*y - 16,
		A: 500 * (x - y),
		B: 200 * (y - z),
	}
}

// RGBToLab converts an sRGB color straight to CIE-Lab.
func RGBToLab(c RGB) Lab {
	return XYZToLab(RGBToXYZ(c))
}

// LabToXYZ inverts XYZToLab.
func LabToXYZ(c Lab) XYZ {
	y := (c.L + 16) / 116
	x := c.A/500 + y
	z := y - c.B/200

	return XYZ{
		X: refX * labInverse(x),
		Y: refY * labInverse(y),
		Z: refZ * labInverse(z),
	}
}

// LabToRGB converts a CIE-Lab color back to sRGB.
//
// Lab values outside the sRGB gamut saturate: every channel is clamped to
// 0-1 before scaling to 0-255, so the round trip is lossy at the boundary.
func LabToRGB(c Lab) RGB {
	xyz := LabToXYZ(c)
	x, y, z := xyz.X/100, xyz.Y/100, xyz.Z/100

	r := x*3.2406 + y*-1.5372 + z*-0.4986
	g := x*-0.9689 + y*1.8758 + z*0.0415
	b := x*0.0557 + y*-0.2040 + z*1.0570

	return RGB{
		R: clamp(compand(r), 0, 1) * channelScale,
		G: clamp(compand(g), 0, 1) * channelScale,
		B: clamp(compand(b), 0, 1) * channelScale,
	}
}

// RGBToHSV converts an sRGB color to HSV.
//
// Channels are normalized by 255 so that S and V land in 0-1. Two degenerate
// cases are handled before the hue is derived:
//   - max-min below 1e-5 (achromatic): S=0 and H=0
//   - max not positive: S=0 and H=NaN
//
// The hue otherwise falls in [0,360).
func RGBToHSV(c RGB) HSV {
	r, g, b := c.R/channelScale, c.G/channelScale, c.B/channelScale

	lo := math.Min(r, math.Min(g, b))
	hi := math.Max(r, math.Max(g, b))
	delta := hi - lo

	out := HSV{V: hi}
	if delta < hsvMinDelta {
		return out
	}
	if hi <= 0 {
		out.H = math.NaN()
		return out
	}
	out.S = delta / hi

	switch {
	case r >= hi:
		out.H = (g - b) / delta
	case g >= hi:
		out.H = 2 + (b-r)/delta
	default:
		out.H = 4 + (r-g)/delta
	}

	out.H *= 60
	if out.H < 0 {
		out.H += 360
	}
	return out
}

// HSVToRGB converts an HSV color back to sRGB using the six-sector
// reconstruction. A non-positive saturation yields a gray of the given value.
// Results are clamped to 0-255.
func HSVToRGB(c HSV) RGB {
	if c.S <= 0 {
		return scaleUnit(c.V, c.V, c.V)
	}

	hh := c.H
	if hh >= 360 {
		hh = 0
	}
	hh /= 60
	sector := int(hh)
	ff := hh - float64(sector)

	p := c.V * (1 - c.S)
	q := c.V * (1 - c.S*ff)
	t := c.V * (1 - c.S*(1-ff))

	switch sector {
	case 0:
		return scaleUnit(c.V, t, p)
	case 1:
		return scaleUnit(q, c.V, p)
	case 2:
		return scaleUnit(p, c.V, t)
	case 3:
		return scaleUnit(p, q, c.V)
	case 4:
		return scaleUnit(t, p, c.V)
	default:
		return scaleUnit(c.V, p, q)
	}
}

// HSVToPoint projects an HSV color onto a cylinder: x=S·cos(H), y=S·sin(H),
// z=V. H is passed to the trigonometric functions as stored, in degrees.
// Stored pattern distances depend on this exact mapping.
func HSVToPoint(c HSV) Point {
	return Point{
		X: c.S * math.Cos(c.H),
		Y: c.S * math.Sin(c.H),
		Z: c.V,
	}
}

func linearize(v float64) float64 {
	if v > gammaIn {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

func compand(v float64) float64 {
	if v > gammaOut {
		return 1.055*math.Pow(v, 1/2.4) - 0.055
	}
	return 12.92 * v
}

func labForward(v float64) float64 {
	if v > labEpsilon {
		return math.Cbrt(v)
	}
	return labKappa*v + labOffset
}

func labInverse(v float64) float64 {
	if cube := v * v * v; cube > labEpsilon {
		return cube
	}
	return (v - labOffset) / labKappa
}

func scaleUnit(r, g, b float64) RGB {
	return RGB{
		R: clamp(r, 0, 1) * channelScale,
		G: clamp(g, 0, 1) * channelScale,
		B: clamp(b, 0, 1) * channelScale,
	}
}
