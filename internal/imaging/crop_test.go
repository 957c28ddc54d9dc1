package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	cropped, err := Crop(img, Region{X1: 10, Y1: 10, X2: 60, Y2: 40})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	b := cropped.Bounds()
	if b.Dx() != 50 || b.Dy() != 30 {
		t.Errorf("dimensions = %dx%d, want 50x30", b.Dx(), b.Dy())
	}
	if b.Min != (image.Point{}) {
		t.Errorf("cropped image should start at origin, got %v", b.Min)
	}
}

func TestCrop_VerifyContent(t *testing.T) {
	img := createPatternImage(100, 100)

	// The bottom-right quadrant is white.
	cropped, err := Crop(img, Region{X1: 50, Y1: 50, X2: 100, Y2: 100})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	c := cropped.NRGBAAt(10, 10)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("cropped pixel = %+v, want white", c)
	}
}

func TestCrop_InvalidRegion(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	tests := []struct {
		name   string
		region Region
	}{
		{"negative origin", Region{X1: -10, Y1: 0, X2: 50, Y2: 50}},
		{"past right edge", Region{X1: 50, Y1: 50, X2: 150, Y2: 100}},
		{"past bottom edge", Region{X1: 0, Y1: 0, X2: 100, Y2: 101}},
		{"x1 equals x2", Region{X1: 50, Y1: 10, X2: 50, Y2: 60}},
		{"y1 greater than y2", Region{X1: 10, Y1: 60, X2: 50, Y2: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.region); err == nil {
				t.Errorf("Crop(%+v) should fail", tt.region)
			}
		})
	}
}

func TestNamedRegion(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)

	tests := []struct {
		name string
		want Region
	}{
		{"full", Region{0, 0, 100, 80}},
		{"top-left", Region{0, 0, 50, 40}},
		{"top-right", Region{50, 0, 100, 40}},
		{"bottom-left", Region{0, 40, 50, 80}},
		{"bottom-right", Region{50, 40, 100, 80}},
		{"top-half", Region{0, 0, 100, 40}},
		{"bottom-half", Region{0, 40, 100, 80}},
		{"left-half", Region{0, 0, 50, 80}},
		{"right-half", Region{50, 0, 100, 80}},
		{"center", Region{25, 20, 75, 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NamedRegion(bounds, tt.name)
			if err != nil {
				t.Fatalf("NamedRegion failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("NamedRegion(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNamedRegion_OffsetBounds(t *testing.T) {
	got, err := NamedRegion(image.Rect(10, 20, 30, 40), "bottom-right")
	if err != nil {
		t.Fatalf("NamedRegion failed: %v", err)
	}
	if want := (Region{20, 30, 30, 40}); got != want {
		t.Errorf("NamedRegion = %+v, want %+v", got, want)
	}
}

func TestNamedRegion_Unknown(t *testing.T) {
	if _, err := NamedRegion(image.Rect(0, 0, 10, 10), "middle-ish"); err == nil {
		t.Error("NamedRegion should fail for an unknown name")
	}
}
