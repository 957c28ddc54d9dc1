package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-pattern-mcp/internal/colorspace"
)

// Resample scales img to exactly size×size pixels, ignoring its aspect ratio.
// Each output pixel is the box-filtered average of the source area it covers.
func Resample(img image.Image, size int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid sample size %d", size)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("cannot sample an empty image")
	}
	return imaging.Resize(img, size, size, imaging.Box), nil
}

// SampleGrid reduces img to a size×size grid of RGB samples indexed
// [row][col], row 0 being the top of the image.
//
// With blurRadius > 0 the reduced image is smoothed with a Gaussian blur of
// that radius before sampling. Alpha is ignored; channels are read
// unpremultiplied.
func SampleGrid(img image.Image, size int, blurRadius float64) ([][]colorspace.RGB, error) {
	small, err := Resample(img, size)
	if err != nil {
		return nil, err
	}

	var src image.Image = small
	if blurRadius > 0 {
		src = blur.Gaussian(small, blurRadius)
	}

	return pixelGrid(imaging.Clone(src)), nil
}

// pixelGrid reads every pixel of img into a [row][col] grid.
func pixelGrid(img *image.NRGBA) [][]colorspace.RGB {
	b := img.Bounds()
	grid := make([][]colorspace.RGB, b.Dy())
	for row := range grid {
		grid[row] = make([]colorspace.RGB, b.Dx())
		for col := range grid[row] {
			i := img.PixOffset(b.Min.X+col, b.Min.Y+row)
			grid[row][col] = colorspace.RGB{
				R: float64(img.Pix[i]),
				G: float64(img.Pix[i+1]),
				B: float64(img.Pix[i+2]),
			}
		}
	}
	return grid
}
