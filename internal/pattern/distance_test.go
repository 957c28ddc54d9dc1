package pattern

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/image-pattern-mcp/internal/colorspace"
	"github.com/ironsheep/image-pattern-mcp/internal/metric"
)

func TestDistance_Identity(t *testing.T) {
	for _, name := range metric.Names() {
		t.Run(string(name), func(t *testing.T) {
			space, _ := metric.Parse(string(name))
			p := mustBuild(t, mustBuilder(t, space, DefaultSize), gradientGrid(DefaultSize))

			d, err := NewComparer(space).Distance(p, p)
			if err != nil {
				t.Fatalf("Distance failed: %v", err)
			}
			if d != 0 {
				t.Errorf("Distance(p, p) = %v, want 0", d)
			}
		})
	}
}

func TestDistance_BlackWhiteIsMax(t *testing.T) {
	for _, name := range metric.Names() {
		t.Run(string(name), func(t *testing.T) {
			space, _ := metric.Parse(string(name))
			b := mustBuilder(t, space, DefaultSize)
			black := mustBuild(t, b, uniformGrid(DefaultSize, colorspace.Black))
			white := mustBuild(t, b, uniformGrid(DefaultSize, colorspace.White))

			c := NewComparer(space)
			d, err := c.Distance(black, white)
			if err != nil {
				t.Fatalf("Distance failed: %v", err)
			}
			if limit := c.MaxDistance(DefaultSize); d != limit {
				t.Errorf("Distance(black, white) = %v, want exactly %v", d, limit)
			}
		})
	}
}

func TestMaxDistance_Values(t *testing.T) {
	tests := []struct {
		space metric.Space
		want  float64
		tol   float64
	}{
		{metric.RGB(), 144 * math.Sqrt(3*255*255), 1e-6},
		{metric.Lab(), 144 * 100, 144 * 0.02},
		{metric.HSV(), 144, 1e-9},
	}

	for _, tt := range tests {
		t.Run(string(tt.space.Name()), func(t *testing.T) {
			got := NewComparer(tt.space).MaxDistance(DefaultSize)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("MaxDistance(12) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	b := mustBuilder(t, metric.Lab(), DefaultSize)
	p := mustBuild(t, b, gradientGrid(DefaultSize))
	q := mustBuild(t, b, uniformGrid(DefaultSize, colorspace.RGB{R: 30, G: 140, B: 200}))

	c := NewComparer(metric.Lab())
	pq, _ := c.Distance(p, q)
	qp, _ := c.Distance(q, p)
	if pq != qp {
		t.Errorf("Distance not symmetric: %v vs %v", pq, qp)
	}
	if pq <= 0 {
		t.Errorf("Distance of different patterns = %v, want > 0", pq)
	}
}

func TestDistance_RGBBounded(t *testing.T) {
	b := mustBuilder(t, metric.RGB(), 4)
	c := NewComparer(metric.RGB())
	limit := c.MaxDistance(4)

	colors := []colorspace.RGB{
		colorspace.Black,
		colorspace.White,
		{R: 255},
		{G: 255, B: 255},
		{R: 12, G: 200, B: 77},
	}
	for _, x := range colors {
		for _, y := range colors {
			d, err := c.Distance(
				mustBuild(t, b, uniformGrid(4, x)),
				mustBuild(t, b, uniformGrid(4, y)),
			)
			if err != nil {
				t.Fatalf("Distance failed: %v", err)
			}
			if d > limit {
				t.Errorf("Distance(%v, %v) = %v exceeds %v", x, y, d, limit)
			}
		}
	}
}

func TestDistance_SizeMismatch(t *testing.T) {
	a, _ := Filled(3, metric.Color{})
	b, _ := Filled(4, metric.Color{})

	if _, err := NewComparer(metric.RGB()).Distance(a, b); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Distance error = %v, want ErrSizeMismatch", err)
	}
	if _, err := NewComparer(metric.RGB()).Score(a, b); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Score error = %v, want ErrSizeMismatch", err)
	}
}

func TestScore(t *testing.T) {
	c := NewComparer(metric.HSV())
	limit := c.MaxDistance(2)

	tests := []struct {
		name     string
		distance float64
		wantProp float64
		wantSim  float64
		wantPct  float64
	}{
		{"identical", 0, 0, 1, 100},
		{"half", limit / 2, 0.5, 0.5, 50},
		{"maximal", limit, 1, 0, 0},
		{"beyond maximal", limit * 1.5, 1.5, 0, 0},
		{"rounded percentage", limit * 0.123456, 0.123456, 0.876544, 87.65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := c.ScoreOf(tt.distance, 2)
			if s.Distance != tt.distance {
				t.Errorf("Distance = %v, want %v", s.Distance, tt.distance)
			}
			if math.Abs(s.Proportional-tt.wantProp) > 1e-9 {
				t.Errorf("Proportional = %v, want %v", s.Proportional, tt.wantProp)
			}
			if math.Abs(s.Similarity-tt.wantSim) > 1e-9 {
				t.Errorf("Similarity = %v, want %v", s.Similarity, tt.wantSim)
			}
			if math.Abs(s.Percentage-tt.wantPct) > 1e-9 {
				t.Errorf("Percentage = %v, want %v", s.Percentage, tt.wantPct)
			}
		})
	}
}

func TestScore_ZeroSize(t *testing.T) {
	s := NewComparer(metric.RGB()).ScoreOf(5, 0)
	if s.Proportional != 0 || s.Similarity != 1 {
		t.Errorf("ScoreOf with no cells = %+v, want zero proportion", s)
	}
}
