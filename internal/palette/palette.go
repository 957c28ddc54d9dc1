// Package palette holds the 147 standard web colors and snaps colors to the
// nearest of them.
//
// The table is immutable package data; every function here is safe for
// concurrent use.
package palette

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ironsheep/image-pattern-mcp/internal/colorspace"
	"github.com/ironsheep/image-pattern-mcp/internal/metric"
)

// Size is the number of named colors in the palette.
const Size = 147

// Entry is one named palette color.
type Entry struct {
	Name string         `json:"name"` // Lowercase web color name, e.g. "crimson"
	RGB  colorspace.RGB `json:"rgb"`
}

// DisplayName returns the name title-cased for presentation, e.g. "Crimson".
func (e Entry) DisplayName() string {
	return cases.Title(language.English).String(e.Name)
}

// Hex returns the entry's color as "#rrggbb".
func (e Entry) Hex() string {
	return e.RGB.Hex()
}

var byName = func() map[string]int {
	m := make(map[string]int, Size)
	for i, e := range named {
		m[e.Name] = i
	}
	return m
}()

// All returns a copy of the palette in its canonical alphabetical order.
func All() []Entry {
	out := make([]Entry, Size)
	copy(out, named[:])
	return out
}

// Lookup finds a palette color by name, ignoring case ("CRIMSON", "Crimson"
// and "crimson" are the same entry).
func Lookup(name string) (Entry, bool) {
	i, ok := byName[cases.Fold().String(name)]
	if !ok {
		return Entry{}, false
	}
	return named[i], true
}

// Quantizer replaces colors of a metric space with the nearest palette color.
type Quantizer struct {
	space metric.Space
}

// NewQuantizer creates a quantizer measuring nearness in space.
func NewQuantizer(space metric.Space) *Quantizer {
	return &Quantizer{space: space}
}

// Space returns the metric space the quantizer works in.
func (q *Quantizer) Space() metric.Space {
	return q.space
}

// Nearest returns the palette entry closest to c together with that entry
// converted into the quantizer's space.
//
// Palette colors are converted per lookup. When several entries are equally
// close the first one in palette order wins.
func (q *Quantizer) Nearest(c metric.Color) (Entry, metric.Color) {
	best := 0
	bestColor := q.space.FromRGB(named[0].RGB)
	bestDist := q.space.Distance(c, bestColor)

	for i := 1; i < Size; i++ {
		candidate := q.space.FromRGB(named[i].RGB)
		if d := q.space.Distance(c, candidate); d < bestDist {
			best, bestColor, bestDist = i, candidate, d
		}
	}
	return named[best], bestColor
}

// Quantize is Nearest without the entry.
func (q *Quantizer) Quantize(c metric.Color) metric.Color {
	_, out := q.Nearest(c)
	return out
}
