package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-pattern-mcp/internal/colorspace"
)

// DefaultJPEGQuality is the export quality used when none is configured.
const DefaultJPEGQuality = 100

// EncodedImage contains an encoded image ready to hand to a client.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderGrid paints a [row][col] grid one pixel per cell. Channels are
// clamped to 0..255 and rounded.
func RenderGrid(grid [][]colorspace.RGB) *image.NRGBA {
	h := len(grid)
	w := 0
	if h > 0 {
		w = len(grid[0])
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for row, cells := range grid {
		for col, c := range cells {
			r, g, b := c.RGB8()
			img.SetNRGBA(col, row, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// EncodeJPEG writes img to w as a baseline JPEG of the given quality (1-100).
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	if quality < 1 || quality > 100 {
		return fmt.Errorf("jpeg quality %d out of range 1-100", quality)
	}
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// EncodeBase64JPEG encodes img as JPEG and returns it base64 encoded.
func EncodeBase64JPEG(img image.Image, quality int) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := EncodeJPEG(&buf, img, quality); err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &EncodedImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/jpeg",
	}, nil
}

// Enlarge scales a rendered grid so every cell covers cell×cell pixels.
// Cells stay sharp; no interpolation happens between neighbors.
func Enlarge(img *image.NRGBA, cell int) (*image.NRGBA, error) {
	if cell < 1 {
		return nil, fmt.Errorf("invalid cell size %d", cell)
	}
	if cell == 1 {
		return img, nil
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*cell, b.Dy()*cell, imaging.NearestNeighbor), nil
}

// DrawCellGrid draws one-pixel lines in c along the boundaries between cells
// of an image enlarged with Enlarge. The image is modified in place.
func DrawCellGrid(img *image.NRGBA, cell int, c colorspace.RGB) {
	if cell < 2 {
		return
	}
	r, g, b := c.RGB8()
	line := color.NRGBA{R: r, G: g, B: b, A: 255}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Draw vertical lines
	for x := cell; x < width; x += cell {
		for y := 0; y < height; y++ {
			img.SetNRGBA(bounds.Min.X+x, bounds.Min.Y+y, line)
		}
	}

	// Draw horizontal lines
	for y := cell; y < height; y += cell {
		for x := 0; x < width; x++ {
			img.SetNRGBA(bounds.Min.X+x, bounds.Min.Y+y, line)
		}
	}
}
