package pattern

import (
	"fmt"
	"math"

	"github.com/ironsheep/image-pattern-mcp/internal/metric"
)

// Comparer measures distances between patterns of one metric space.
type Comparer struct {
	space metric.Space
}

// NewComparer creates a comparer for patterns stored in space.
func NewComparer(space metric.Space) *Comparer {
	return &Comparer{space: space}
}

// Space returns the comparer's metric space.
func (c *Comparer) Space() metric.Space {
	return c.space
}

// Distance sums the per-cell color distance over every cell pair. There is
// no weighting and no normalization by grid size.
func (c *Comparer) Distance(a, b *Pattern) (float64, error) {
	if a.size != b.size {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, a.size, a.size, b.size, b.size)
	}

	var total float64
	for i := range a.cells {
		total += c.space.Distance(a.cells[i], b.cells[i])
	}
	return total, nil
}

// MaxDistance returns the distance between an all-black and an all-white
// pattern of the given size: the black-to-white color distance accumulated
// over size×size cells.
//
// In RGB this bounds every pattern distance. In Lab and HSV some color
// pairs lie further apart than black and white, so distances above it are
// possible there.
func (c *Comparer) MaxDistance(size int) float64 {
	d := metric.MaxDistance(c.space)
	var total float64
	for i := 0; i < size*size; i++ {
		total += d
	}
	return total
}

// Score describes how far apart two patterns are.
type Score struct {
	// Distance is the raw pattern distance.
	Distance float64 `json:"distance"`

	// Proportional is Distance divided by the maximum pattern distance.
	Proportional float64 `json:"proportional_distance"`

	// Similarity is 1 - Proportional, floored at 0.
	Similarity float64 `json:"similarity"`

	// Percentage is Similarity expressed as 0-100, rounded to two decimals.
	Percentage float64 `json:"percentage_similarity"`
}

// Score computes the distance between a and b together with its normalized forms.
func (c *Comparer) Score(a, b *Pattern) (Score, error) {
	d, err := c.Distance(a, b)
	if err != nil {
		return Score{}, err
	}
	return c.ScoreOf(d, a.size), nil
}

// ScoreOf normalizes an already computed distance between size×size patterns.
func (c *Comparer) ScoreOf(d float64, size int) Score {
	var prop float64
	if limit := c.MaxDistance(size); limit > 0 {
		prop = d / limit
	}
	sim := math.Max(0, 1-prop)
	return Score{
		Distance:     d,
		Proportional: prop,
		Similarity:   sim,
		Percentage:   math.Round(sim*10000) / 100,
	}
}
