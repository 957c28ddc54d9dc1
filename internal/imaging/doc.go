// Package imaging is the image side of the pattern server: it decodes image
// files, reduces them to the small RGB sample grids patterns are built from,
// and renders patterns back into viewable JPEG images.
//
// All operations work with standard Go image.Image types and use a
// coordinate system where (0,0) is the top-left corner, X increases
// rightward and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based. For regions, (x1,y1) is
// inclusive (top-left) and (x2,y2) is exclusive (bottom-right).
//
// Sample grids are indexed [row][col]: row follows Y and col follows X.
//
// # Supported Formats
//
// JPEG, PNG and GIF are decoded by the standard library; BMP, TIFF and WebP
// by golang.org/x/image. The format is detected from file content.
//
// # Resampling
//
// SampleGrid scales the whole image (or a cropped region of it) to exactly
// N×N pixels with a box filter, so every sample is the average of the source
// area it covers. Aspect ratio is not preserved. An optional Gaussian blur is
// applied to the reduced image before the samples are read.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently.
package imaging
