// Package pattern implements the image fingerprint: a fixed N×N grid of colors
// in one metric color space.
//
// A Pattern is built once from an N×N grid of RGB samples (see Builder), is
// immutable afterwards and can be serialized to a canonical text form or to a
// fixed-size binary record. Two patterns built in the same space and size are
// compared with a Comparer, which sums per-cell color distances.
//
// # Grid Layout
//
// Cells are stored row-major: cell (row, col) corresponds to the pixel at
// x=col, y=row of the resampled image.
//
// # Thread Safety
//
// Patterns are never mutated after construction, so a single Pattern may be
// read from any number of goroutines without synchronization.
package pattern

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/image-pattern-mcp/internal/metric"
)

// DefaultSize is the default grid edge length.
const DefaultSize = 12

// Errors reported by this package.
var (
	// ErrInvalidSize is returned when a grid size is not positive or the
	// provided cells do not fill the grid.
	ErrInvalidSize = errors.New("invalid pattern size")

	// ErrSizeMismatch is returned when comparing patterns of different sizes.
	ErrSizeMismatch = errors.New("pattern sizes differ")
)

// Pattern is an immutable N×N grid of metric colors.
type Pattern struct {
	size  int
	cells []metric.Color
}

// New creates a pattern of the given size from row-major cells. The cells
// are copied.
func New(size int, cells []metric.Color) (*Pattern, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if len(cells) != size*size {
		return nil, fmt.Errorf("%w: %d cells for a %dx%d grid", ErrInvalidSize, len(cells), size, size)
	}
	p := &Pattern{size: size, cells: make([]metric.Color, len(cells))}
	copy(p.cells, cells)
	return p, nil
}

// Filled creates a pattern whose every cell is c.
func Filled(size int, c metric.Color) (*Pattern, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	cells := make([]metric.Color, size*size)
	for i := range cells {
		cells[i] = c
	}
	return &Pattern{size: size, cells: cells}, nil
}

// Size returns the grid edge length N.
func (p *Pattern) Size() int {
	return p.size
}

// At returns the color at (row, col). It panics if either index is out of
// range, like a slice index would.
func (p *Pattern) At(row, col int) metric.Color {
	if row < 0 || row >= p.size || col < 0 || col >= p.size {
		panic(fmt.Sprintf("pattern: cell (%d,%d) outside %dx%d grid", row, col, p.size, p.size))
	}
	return p.cells[row*p.size+col]
}

// Cells returns a row-major copy of all cells.
func (p *Pattern) Cells() []metric.Color {
	out := make([]metric.Color, len(p.cells))
	copy(out, p.cells)
	return out
}

// Equal reports whether p and q have the same size and bit-identical cells.
// A NaN component equals a NaN with the same bits, so a pattern holding a
// degenerate HSV hue equals itself. Nil patterns only equal each other.
func (p *Pattern) Equal(q *Pattern) bool {
	if p == nil || q == nil {
		return p == q
	}
	if p.size != q.size {
		return false
	}
	for i := range p.cells {
		for k := 0; k < 3; k++ {
			if math.Float32bits(p.cells[i][k]) != math.Float32bits(q.cells[i][k]) {
				return false
			}
		}
	}
	return true
}
