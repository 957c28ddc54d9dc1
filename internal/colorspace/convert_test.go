package colorspace

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// sweep calls fn for a coarse lattice over the 8-bit RGB cube.
func sweep(step int, fn func(c RGB)) {
	for r := 0; r <= 255; r += step {
		for g := 0; g <= 255; g += step {
			for b := 0; b <= 255; b += step {
				fn(RGB{R: float64(r), G: float64(g), B: float64(b)})
			}
		}
	}
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRGBToLab_KnownColors(t *testing.T) {
	tests := []struct {
		name  string
		color RGB
		want  Lab
	}{
		{"white", White, Lab{L: 100, A: 0, B: 0}},
		{"black", Black, Lab{L: 0, A: 0, B: 0}},
		{"red", RGB{255, 0, 0}, Lab{L: 53.23, A: 80.11, B: 67.22}},
		{"green", RGB{0, 255, 0}, Lab{L: 87.74, A: -86.18, B: 83.18}},
		{"blue", RGB{0, 0, 255}, Lab{L: 32.30, A: 79.20, B: -107.86}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToLab(tt.color)
			if !near(got.L, tt.want.L, 0.05) || !near(got.A, tt.want.A, 0.05) || !near(got.B, tt.want.B, 0.05) {
				t.Errorf("RGBToLab(%v) = %+v, want %+v", tt.color, got, tt.want)
			}
		})
	}
}

func TestRGBToLab_MatchesColorful(t *testing.T) {
	sweep(51, func(c RGB) {
		got := RGBToLab(c)
		l, a, b := colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}.Lab()
		if !near(got.L, l*100, 0.5) || !near(got.A, a*100, 0.5) || !near(got.B, b*100, 0.5) {
			t.Errorf("RGBToLab(%v) = %+v, colorful says (%.3f, %.3f, %.3f)", c, got, l*100, a*100, b*100)
		}
	})
}

func TestRGBToXYZ_White(t *testing.T) {
	got := RGBToXYZ(White)
	if !near(got.X, 95.05, 0.01) || !near(got.Y, 100, 0.01) || !near(got.Z, 108.9, 0.01) {
		t.Errorf("RGBToXYZ(white) = %+v", got)
	}
}

func TestRGBToXYZ_LinearBranch(t *testing.T) {
	// 10/255 is below the 0.04045 gamma threshold.
	got := RGBToXYZ(RGB{10, 10, 10})
	lin := 10.0 / 255 / 12.92 * 100
	if !near(got.Y, lin, 1e-9) {
		t.Errorf("Y = %v, want %v", got.Y, lin)
	}
}

func TestLabRoundTrip(t *testing.T) {
	sweep(15, func(c RGB) {
		got := LabToRGB(RGBToLab(c))
		if !near(got.R, c.R, 1) || !near(got.G, c.G, 1) || !near(got.B, c.B, 1) {
			t.Errorf("LabToRGB(RGBToLab(%v)) = %v", c, got)
		}
	})
}

func TestLabToRGB_ClampsOutOfGamut(t *testing.T) {
	tests := []Lab{
		{L: 100, A: 127, B: 127},
		{L: 0, A: -128, B: -128},
		{L: 150, A: 0, B: 0},
		{L: 50, A: 200, B: -200},
	}

	for _, lab := range tests {
		got := LabToRGB(lab)
		for _, ch := range []float64{got.R, got.G, got.B} {
			if ch < 0 || ch > 255 {
				t.Errorf("LabToRGB(%+v) = %v, channel outside 0-255", lab, got)
			}
		}
	}
}

func TestLabToXYZ_InvertsXYZToLab(t *testing.T) {
	xyz := XYZ{X: 41.24, Y: 21.26, Z: 1.93}
	got := LabToXYZ(XYZToLab(xyz))
	if !near(got.X, xyz.X, 1e-6) || !near(got.Y, xyz.Y, 1e-6) || !near(got.Z, xyz.Z, 1e-6) {
		t.Errorf("LabToXYZ(XYZToLab(%+v)) = %+v", xyz, got)
	}
}

func TestRGBToHSV_KnownColors(t *testing.T) {
	tests := []struct {
		name  string
		color RGB
		want  HSV
	}{
		{"red", RGB{255, 0, 0}, HSV{H: 0, S: 1, V: 1}},
		{"green", RGB{0, 255, 0}, HSV{H: 120, S: 1, V: 1}},
		{"blue", RGB{0, 0, 255}, HSV{H: 240, S: 1, V: 1}},
		{"magenta", RGB{255, 0, 255}, HSV{H: 300, S: 1, V: 1}},
		{"gray", RGB{128, 128, 128}, HSV{H: 0, S: 0, V: 128.0 / 255}},
		{"black", Black, HSV{H: 0, S: 0, V: 0}},
		{"white", White, HSV{H: 0, S: 0, V: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSV(tt.color)
			if got.Degenerate() {
				t.Fatalf("RGBToHSV(%v) returned a degenerate hue", tt.color)
			}
			if !near(got.H, tt.want.H, 1e-9) || !near(got.S, tt.want.S, 1e-9) || !near(got.V, tt.want.V, 1e-9) {
				t.Errorf("RGBToHSV(%v) = %+v, want %+v", tt.color, got, tt.want)
			}
		})
	}
}

func TestRGBToHSV_MatchesColorful(t *testing.T) {
	sweep(51, func(c RGB) {
		got := RGBToHSV(c)
		h, s, v := colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}.Hsv()
		if !near(got.S, s, 1e-9) || !near(got.V, v, 1e-9) {
			t.Errorf("RGBToHSV(%v) = %+v, colorful says (%v, %v, %v)", c, got, h, s, v)
		}
		if got.S > 0 && !near(got.H, h, 1e-6) {
			t.Errorf("RGBToHSV(%v).H = %v, colorful says %v", c, got.H, h)
		}
	})
}

func TestRGBToHSV_NegativeChannelsAreDegenerate(t *testing.T) {
	got := RGBToHSV(RGB{R: -10, G: -20, B: 0})
	if !got.Degenerate() {
		t.Fatalf("expected NaN hue, got %+v", got)
	}
	if got.S != 0 {
		t.Errorf("S = %v, want 0", got.S)
	}
}

func TestHSVRoundTrip(t *testing.T) {
	sweep(15, func(c RGB) {
		hsv := RGBToHSV(c)
		got := HSVToRGB(hsv)
		if !near(got.R, c.R, 1e-6) || !near(got.G, c.G, 1e-6) || !near(got.B, c.B, 1e-6) {
			t.Errorf("HSVToRGB(RGBToHSV(%v)) = %v (hsv %+v)", c, got, hsv)
		}
	})
}

func TestHSVToRGB_Gray(t *testing.T) {
	got := HSVToRGB(HSV{H: 200, S: 0, V: 0.5})
	if got.R != 127.5 || got.G != 127.5 || got.B != 127.5 {
		t.Errorf("HSVToRGB gray = %v, want 127.5 on every channel", got)
	}
}

func TestHSVToRGB_HueWrap(t *testing.T) {
	got := HSVToRGB(HSV{H: 360, S: 1, V: 1})
	if got != (RGB{255, 0, 0}) {
		t.Errorf("HSVToRGB(h=360) = %v, want red", got)
	}
}

func TestHSVToRGB_ClampsOvershoot(t *testing.T) {
	got := HSVToRGB(HSV{H: 30, S: 1, V: 1.5})
	if got.R != 255 {
		t.Errorf("R = %v, want 255", got.R)
	}
}

func TestHSVToPoint_UsesStoredUnits(t *testing.T) {
	p := HSVToPoint(HSV{H: 90, S: 1, V: 0.25})
	if !near(p.X, math.Cos(90), 1e-12) || !near(p.Y, math.Sin(90), 1e-12) || p.Z != 0.25 {
		t.Errorf("HSVToPoint = %+v", p)
	}
}

func TestHex(t *testing.T) {
	if got := (RGB{220, 20, 60}).Hex(); got != "#dc143c" {
		t.Errorf("Hex() = %s, want #dc143c", got)
	}

	c, err := ParseHex("#DC143C")
	if err != nil {
		t.Fatalf("ParseHex failed: %v", err)
	}
	if c != (RGB{220, 20, 60}) {
		t.Errorf("ParseHex = %v", c)
	}

	if c, err := ParseHex("#fff"); err != nil || c != (RGB{255, 255, 255}) {
		t.Errorf("ParseHex(#fff) = %v, %v", c, err)
	}

	for _, in := range []string{"crimson", "#12345", "#1234567", "#12g", "#", "", "dc143c", "#dc143cff"} {
		if c, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) = %v, want error", in, c)
		}
	}
}
