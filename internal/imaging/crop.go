package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/dip-studio/internal/filter"
)

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1"` // Left edge X coordinate (inclusive)
	Y1 int `json:"y1"` // Top edge Y coordinate (inclusive)
	X2 int `json:"x2"` // Right edge X coordinate (exclusive)
	Y2 int `json:"y2"` // Bottom edge Y coordinate (exclusive)
}

// CropImage extracts a rectangular region from an image. The region is
// relative to the image's top-left corner.
func CropImage(img image.Image, r Region) (image.Image, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if r.X1 < 0 || r.Y1 < 0 || r.X2 > w || r.Y2 > h {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, w, h)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	rect := image.Rect(r.X1, r.Y1, r.X2, r.Y2).Add(bounds.Min)
	cropped := imaging.Crop(img, rect)
	if isGray(img) {
		// Crop always returns NRGBA; keep gray sources recognizable.
		gray := image.NewGray(cropped.Rect)
		for i := 0; i < len(gray.Pix); i++ {
			gray.Pix[i] = cropped.Pix[i*4]
		}
		return gray, nil
	}
	return cropped, nil
}

// DefaultMaxOutputPixels bounds the size of a rescaled result (64 megapixels).
const DefaultMaxOutputPixels = 8192 * 8192

// ScaleBuffer resizes a buffer by scale using Lanczos resampling. A scale of
// 1 (or 0, treated as unset) returns the buffer unchanged. The channel count
// is preserved.
//
// maxPixels caps Width*Height of the result; a non-positive value selects
// DefaultMaxOutputPixels. The cap is checked before anything is allocated.
func ScaleBuffer(b *filter.Buffer, scale float64, maxPixels int) (*filter.Buffer, error) {
	if scale == 0 || scale == 1 {
		return b, nil
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("invalid scale %g: must be a finite value > 0", scale)
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxOutputPixels
	}

	// Compare in float64 so huge scales cannot overflow the int conversion.
	fw := math.Floor(float64(b.Width) * scale)
	fh := math.Floor(float64(b.Height) * scale)
	if fw < 1 || fh < 1 {
		return nil, fmt.Errorf("scale %g reduces %dx%d image to nothing", scale, b.Width, b.Height)
	}
	if fw*fh > float64(maxPixels) {
		return nil, fmt.Errorf("scale %g enlarges %dx%d image to %.0fx%.0f, above the %d pixel limit",
			scale, b.Width, b.Height, fw, fh, maxPixels)
	}

	img, err := FromBuffer(b)
	if err != nil {
		return nil, err
	}
	resized := imaging.Resize(img, int(fw), int(fh), imaging.Lanczos)
	return nrgbaToBuffer(resized, b.Channels)
}
