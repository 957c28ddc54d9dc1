// Package colorspace converts single colors between RGB, CIE-XYZ, CIE-Lab and HSV
// and measures distances between them.
//
// Every function in this package is pure and total: it never fails and never
// touches shared state, so all of them are safe for concurrent use.
//
// # Ranges
//
//   - RGB: each channel nominally 0-255 (not enforced on input)
//   - XYZ: X 0-95.047, Y 0-100, Z 0-108.883 under the D65/2° reference white
//   - Lab: L 0-100, A and B roughly -128 to 127
//   - HSV: H 0-360 degrees, S 0-1, V 0-1
//
// # Degenerate Values
//
// RGBToHSV reports a hue of NaN when the brightest channel is not positive but
// the channels still differ. The value is kept as data; use HSV.Degenerate to
// detect it. Conversions back to RGB clamp out-of-gamut results instead of
// failing.
package colorspace
