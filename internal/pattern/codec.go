package pattern

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/ironsheep/image-pattern-mcp/internal/metric"
)

// Codec errors.
var (
	// ErrSyntax is wrapped by every *SyntaxError.
	ErrSyntax = errors.New("invalid input syntax for image pattern")

	// ErrInvalidRecord is returned for binary records whose length does not
	// describe a square grid of float32 triples.
	ErrInvalidRecord = errors.New("invalid binary pattern record")
)

// cellBytes is the size of one cell in the binary record: three float32s.
const cellBytes = 3 * 4

// SyntaxError describes malformed pattern text.
type SyntaxError struct {
	Offset int    // Byte offset at which parsing failed
	Msg    string // Description of the problem
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d", ErrSyntax, e.Msg, e.Offset)
}

// Unwrap lets errors.Is match ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// MarshalText encodes the pattern in its canonical text form:
//
//	[[[c1, c2, c3], [c1, c2, c3], ...], [[...], ...], ...]
//
// One inner list per row, one bracketed triple per cell, components in the
// space's order, each printed with six decimals.
func (p *Pattern) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(p.size * p.size * 40)

	buf.WriteByte('[')
	for row := 0; row < p.size; row++ {
		if row > 0 {
			buf.WriteString(", ")
		}
		buf.WriteByte('[')
		for col := 0; col < p.size; col++ {
			if col > 0 {
				buf.WriteString(", ")
			}
			c := p.cells[row*p.size+col]
			buf.WriteByte('[')
			buf.WriteString(formatComponent(c[0]))
			buf.WriteString(", ")
			buf.WriteString(formatComponent(c[1]))
			buf.WriteString(", ")
			buf.WriteString(formatComponent(c[2]))
			buf.WriteByte(']')
		}
		buf.WriteByte(']')
	}
	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// String returns the canonical text form.
func (p *Pattern) String() string {
	b, _ := p.MarshalText()
	return string(b)
}

func formatComponent(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 6, 64)
}

// ParseText decodes pattern text.
//
// The reader skips whitespace, '[', ']' and ',' between numbers, so the
// bracket structure is not validated; only the sequence of numbers matters.
// With size > 0 exactly size×size×3 numbers are required. With size == 0 the
// size is inferred from the number count, which must be 3·N² for some N.
//
// Any failure is reported as a *SyntaxError and no partial pattern is
// returned.
func ParseText(data []byte, size int) (*Pattern, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	s := &textScanner{data: data}

	if size > 0 {
		cells := make([]metric.Color, size*size)
		for i := range cells {
			for k := 0; k < 3; k++ {
				v, err := s.next()
				if err != nil {
					return nil, err
				}
				cells[i][k] = v
			}
		}
		if s.more() {
			return nil, &SyntaxError{Offset: s.pos, Msg: "unexpected data after last cell"}
		}
		return &Pattern{size: size, cells: cells}, nil
	}

	var values []float32
	for s.more() {
		v, err := s.next()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	n, ok := gridSize(len(values), 3)
	if !ok {
		return nil, &SyntaxError{Offset: s.pos, Msg: fmt.Sprintf("%d values do not form a square grid of triples", len(values))}
	}

	cells := make([]metric.Color, n*n)
	for i := range cells {
		copy(cells[i][:], values[i*3:i*3+3])
	}
	return &Pattern{size: n, cells: cells}, nil
}

// textScanner reads floating-point literals separated by pattern punctuation.
type textScanner struct {
	data []byte
	pos  int
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '[', ']', ',':
		return true
	}
	return false
}

func (s *textScanner) skip() {
	for s.pos < len(s.data) && isSeparator(s.data[s.pos]) {
		s.pos++
	}
}

// more reports whether anything other than separators remains.
func (s *textScanner) more() bool {
	s.skip()
	return s.pos < len(s.data)
}

func (s *textScanner) next() (float32, error) {
	s.skip()
	if s.pos >= len(s.data) {
		return 0, &SyntaxError{Offset: s.pos, Msg: "unexpected end of input"}
	}

	start := s.pos
	for s.pos < len(s.data) && !isSeparator(s.data[s.pos]) {
		s.pos++
	}

	tok := string(s.data[start:s.pos])
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, &SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid number %q", tok)}
	}
	return float32(v), nil
}

// MarshalBinary encodes the pattern as size×size consecutive triples of
// little-endian IEEE-754 float32 values, row-major, with no header.
func (p *Pattern) MarshalBinary() ([]byte, error) {
	out := make([]byte, len(p.cells)*cellBytes)
	for i, c := range p.cells {
		off := i * cellBytes
		binary.LittleEndian.PutUint32(out[off:], math.Float32bits(c[0]))
		binary.LittleEndian.PutUint32(out[off+4:], math.Float32bits(c[1]))
		binary.LittleEndian.PutUint32(out[off+8:], math.Float32bits(c[2]))
	}
	return out, nil
}

// RecordSize returns the binary record length of a size×size pattern.
func RecordSize(size int) int {
	return size * size * cellBytes
}

// ParseBinary decodes a record produced by MarshalBinary. The grid size is
// derived from the record length.
func ParseBinary(data []byte) (*Pattern, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 4", ErrInvalidRecord, len(data))
	}
	n, ok := gridSize(len(data)/4, 3)
	if !ok {
		return nil, fmt.Errorf("%w: length %d does not hold a square grid", ErrInvalidRecord, len(data))
	}

	cells := make([]metric.Color, n*n)
	for i := range cells {
		off := i * cellBytes
		cells[i] = metric.Color{
			math.Float32frombits(binary.LittleEndian.Uint32(data[off:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:])),
		}
	}
	return &Pattern{size: n, cells: cells}, nil
}

// gridSize returns N such that count == per·N·N, N > 0.
func gridSize(count, per int) (int, bool) {
	if count <= 0 || count%per != 0 {
		return 0, false
	}
	cells := count / per
	n := int(math.Round(math.Sqrt(float64(cells))))
	if n*n != cells {
		return 0, false
	}
	return n, true
}
