package filter

import "math"

// Buffer is a rectangular grid of 8-bit samples.
//
// Pix holds Height rows of Width pixels, each pixel made of Channels
// consecutive samples. Channels is 1 for gray or 3 for interleaved RGB.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewBuffer allocates a zeroed buffer of the given shape.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	b := &Buffer{Width: width, Height: height, Channels: channels}
	if err := b.validateShape(); err != nil {
		return nil, err
	}
	b.Pix = make([]uint8, width*height*channels)
	return b, nil
}

// FromPix wraps existing samples in a Buffer after checking that the slice
// length matches the shape. The slice is not copied.
func FromPix(width, height, channels int, pix []uint8) (*Buffer, error) {
	b := &Buffer{Width: width, Height: height, Channels: channels, Pix: pix}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the buffer invariants: positive dimensions, one or three
// channels, and a sample slice of exactly Width*Height*Channels bytes.
func (b *Buffer) Validate() error {
	if b == nil {
		return &ShapeError{Reason: "nil buffer"}
	}
	if err := b.validateShape(); err != nil {
		return err
	}
	if want := b.Width * b.Height * b.Channels; len(b.Pix) != want {
		return &ShapeError{
			Width: b.Width, Height: b.Height, Channels: b.Channels,
			Reason: "sample count does not match dimensions",
		}
	}
	return nil
}

func (b *Buffer) validateShape() error {
	switch {
	case b.Width <= 0 || b.Height <= 0:
		return &ShapeError{Width: b.Width, Height: b.Height, Channels: b.Channels, Reason: "dimensions must be positive"}
	case b.Channels != 1 && b.Channels != 3:
		return &ShapeError{Width: b.Width, Height: b.Height, Channels: b.Channels, Reason: "channel count must be 1 or 3"}
	}
	return nil
}

// At returns the sample of channel c at column x, row y.
func (b *Buffer) At(x, y, c int) uint8 {
	return b.Pix[(y*b.Width+x)*b.Channels+c]
}

// Set stores v as the sample of channel c at column x, row y.
func (b *Buffer) Set(x, y, c int, v uint8) {
	b.Pix[(y*b.Width+x)*b.Channels+c] = v
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Channels: b.Channels, Pix: pix}
}

// Equal reports whether two buffers have the same shape and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Width != o.Width || b.Height != o.Height || b.Channels != o.Channels || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// sameShape allocates an output buffer with the shape of b.
func (b *Buffer) sameShape() *Buffer {
	return &Buffer{Width: b.Width, Height: b.Height, Channels: b.Channels, Pix: make([]uint8, len(b.Pix))}
}

// plane extracts channel c as a float64 plane of Width*Height values.
func (b *Buffer) plane(c int) []float64 {
	out := make([]float64, b.Width*b.Height)
	for i := range out {
		out[i] = float64(b.Pix[i*b.Channels+c])
	}
	return out
}

// setPlane writes a float plane into channel c, clamping and rounding each value.
func (b *Buffer) setPlane(c int, plane []float64) {
	for i, v := range plane {
		b.Pix[i*b.Channels+c] = clampToByte(v)
	}
}

// clampToByte saturates v to [0,255] and rounds half away from zero.
func clampToByte(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// normalizeOddSize forces a kernel or window size to be odd by incrementing
// even values. Sizes below 1 are rejected.
func normalizeOddSize(op string, size int) (int, error) {
	if size < 1 {
		return 0, paramErr(op, "kernel_size", float64(size), "must be at least 1")
	}
	if size%2 == 0 {
		size++
	}
	return size, nil
}

// reflectIndex maps i into [0,n) by mirroring across the edges without
// repeating the edge sample (…2 1 | 0 1 2 … n-1 | n-2 n-3…).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}
