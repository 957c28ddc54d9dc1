package metric

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/image-pattern-mcp/internal/colorspace"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Name
	}{
		{"rgb", NameRGB},
		{"RGB", NameRGB},
		{"cielab", NameLab},
		{"CIELAB", NameLab},
		{"lab", NameLab},
		{" hsv ", NameHSV},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if s.Name() != tt.want {
				t.Errorf("Parse(%q).Name() = %s, want %s", tt.input, s.Name(), tt.want)
			}
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse("cmyk")
	if !errors.Is(err, ErrUnknownSpace) {
		t.Fatalf("Parse(cmyk) error = %v, want ErrUnknownSpace", err)
	}
}

func TestMaxDistance(t *testing.T) {
	tests := []struct {
		space Space
		want  float64
		tol   float64
	}{
		{RGB(), math.Sqrt(3 * 255 * 255), 1e-4},
		{Lab(), 100, 0.02},
		{HSV(), 1, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.space.Name()), func(t *testing.T) {
			got := MaxDistance(tt.space)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("MaxDistance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpaces_Components(t *testing.T) {
	want := map[Name][3]string{
		NameRGB: {"r", "g", "b"},
		NameLab: {"l", "a", "b"},
		NameHSV: {"h", "s", "v"},
	}
	for _, name := range Names() {
		s, err := Parse(string(name))
		if err != nil {
			t.Fatalf("Parse(%s) failed: %v", name, err)
		}
		if s.Components() != want[name] {
			t.Errorf("%s components = %v, want %v", name, s.Components(), want[name])
		}
	}
}

func TestSpaces_RoundTripThroughRGB(t *testing.T) {
	samples := []colorspace.RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 220, G: 20, B: 60},
		{R: 64, G: 224, B: 208},
		{R: 128, G: 128, B: 0},
	}

	for _, name := range Names() {
		s, _ := Parse(string(name))
		for _, c := range samples {
			got := s.ToRGB(s.FromRGB(c))
			if math.Abs(got.R-c.R) > 1 || math.Abs(got.G-c.G) > 1 || math.Abs(got.B-c.B) > 1 {
				t.Errorf("%s: ToRGB(FromRGB(%v)) = %v", name, c, got)
			}
		}
	}
}

func TestSpaces_DistanceIdentityAndSymmetry(t *testing.T) {
	a := colorspace.RGB{R: 10, G: 100, B: 200}
	b := colorspace.RGB{R: 250, G: 128, B: 114}

	for _, name := range Names() {
		s, _ := Parse(string(name))
		ca, cb := s.FromRGB(a), s.FromRGB(b)
		if d := s.Distance(ca, ca); d != 0 {
			t.Errorf("%s: distance to itself = %v", name, d)
		}
		if s.Distance(ca, cb) != s.Distance(cb, ca) {
			t.Errorf("%s: distance not symmetric", name)
		}
	}
}

func TestHSV_FromRGBScenario(t *testing.T) {
	got := HSV().FromRGB(colorspace.RGB{R: 0, G: 255, B: 0})
	if got != (Color{120, 1, 1}) {
		t.Errorf("HSV().FromRGB(green) = %v, want [120 1 1]", got)
	}
}
