package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/dip-studio/internal/filter"
)

// ToBuffer converts img into a filter.Buffer.
//
// Color images become 3-channel RGB buffers with alpha dropped (straight, not
// premultiplied, color values are kept). Gray sources are replicated into
// three channels unless keepGray is set, in which case they stay
// single-channel.
func ToBuffer(img image.Image, keepGray bool) (*filter.Buffer, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("cannot convert empty image")
	}

	if keepGray && isGray(img) {
		w, h := bounds.Dx(), bounds.Dy()
		pix := make([]uint8, w*h)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				pix[y*w+x] = uint8(r >> 8)
			}
		}
		return filter.FromPix(w, h, 1, pix)
	}

	return nrgbaToBuffer(imaging.Clone(img), 3)
}

// FromBuffer converts a buffer into an image: *image.Gray for single-channel
// buffers and an opaque *image.NRGBA for RGB buffers.
func FromBuffer(b *filter.Buffer) (image.Image, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, b.Width, b.Height)
	if b.Channels == 1 {
		img := image.NewGray(rect)
		copy(img.Pix, b.Pix)
		return img, nil
	}

	img := image.NewNRGBA(rect)
	for i := 0; i < b.Width*b.Height; i++ {
		copy(img.Pix[i*4:i*4+3], b.Pix[i*3:i*3+3])
		img.Pix[i*4+3] = 255
	}
	return img, nil
}

// nrgbaToBuffer copies the color samples of n into a buffer with the given
// channel count. For one channel the red sample is taken, which is exact for
// images whose channels are equal.
func nrgbaToBuffer(n *image.NRGBA, channels int) (*filter.Buffer, error) {
	w, h := n.Rect.Dx(), n.Rect.Dy()
	pix := make([]uint8, w*h*channels)
	for y := 0; y < h; y++ {
		row := n.Pix[y*n.Stride : y*n.Stride+w*4]
		for x := 0; x < w; x++ {
			copy(pix[(y*w+x)*channels:(y*w+x+1)*channels], row[x*4:x*4+channels])
		}
	}
	return filter.FromPix(w, h, channels, pix)
}

func isGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	return false
}
