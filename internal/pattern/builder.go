package pattern

import (
	"fmt"

	"github.com/ironsheep/image-pattern-mcp/internal/colorspace"
	"github.com/ironsheep/image-pattern-mcp/internal/metric"
	"github.com/ironsheep/image-pattern-mcp/internal/palette"
)

// Builder turns RGB sample grids into patterns and patterns back into RGB grids.
//
// A Builder is configured once and is safe for concurrent use.
type Builder struct {
	space     metric.Space
	size      int
	quantizer *palette.Quantizer
}

// Option configures a Builder.
type Option func(*Builder)

// WithPalette snaps every cell to the nearest named palette color before
// storage. Nearness is measured in the builder's space.
func WithPalette() Option {
	return func(b *Builder) {
		b.quantizer = palette.NewQuantizer(b.space)
	}
}

// NewBuilder creates a builder for size×size patterns in space.
func NewBuilder(space metric.Space, size int, opts ...Option) (*Builder, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	b := &Builder{space: space, size: size}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Space returns the metric space patterns are built in.
func (b *Builder) Space() metric.Space { return b.space }

// Size returns the grid edge length of built patterns.
func (b *Builder) Size() int { return b.size }

// Quantized reports whether the builder snaps cells to the palette.
func (b *Builder) Quantized() bool { return b.quantizer != nil }

// FromRGBGrid builds a pattern from a grid indexed [row][col]. The grid must
// be exactly size×size.
func (b *Builder) FromRGBGrid(grid [][]colorspace.RGB) (*Pattern, error) {
	if len(grid) != b.size {
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrInvalidSize, len(grid), b.size)
	}

	cells := make([]metric.Color, 0, b.size*b.size)
	for row, samples := range grid {
		if len(samples) != b.size {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrInvalidSize, row, len(samples), b.size)
		}
		for _, rgb := range samples {
			c := b.space.FromRGB(rgb)
			if b.quantizer != nil {
				c = b.quantizer.Quantize(c)
			}
			cells = append(cells, c)
		}
	}

	return &Pattern{size: b.size, cells: cells}, nil
}

// RGBGrid converts every cell of p back to RGB, indexed [row][col]. Colors
// outside the RGB gamut are clamped.
func (b *Builder) RGBGrid(p *Pattern) [][]colorspace.RGB {
	grid := make([][]colorspace.RGB, p.size)
	for row := range grid {
		grid[row] = make([]colorspace.RGB, p.size)
		for col := range grid[row] {
			grid[row][col] = b.space.ToRGB(p.cells[row*p.size+col]).Clamp()
		}
	}
	return grid
}
