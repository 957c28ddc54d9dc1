package colorspace

import "math"

// EuclideanDistance returns the straight-line distance between two points.
func EuclideanDistance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// RGBDistance is the Euclidean distance between two colors in RGB space.
func RGBDistance(a, b RGB) float64 {
	return EuclideanDistance(Point{a.R, a.G, a.B}, Point{b.R, b.G, b.B})
}

// LabDistance is the Euclidean distance between two colors in Lab space (CIE76 ΔE).
func LabDistance(a, b Lab) float64 {
	return EuclideanDistance(Point{a.L, a.A, a.B}, Point{b.L, b.A, b.B})
}

// HSVDistance projects both colors with HSVToPoint and measures the
// Euclidean distance between the projections. The result is not
// hue-wraparound aware and saturation and value are unscaled.
func HSVDistance(a, b HSV) float64 {
	return EuclideanDistance(HSVToPoint(a), HSVToPoint(b))
}
