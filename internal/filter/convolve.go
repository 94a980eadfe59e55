package filter

import (
	"github.com/anthonynsimon/bild/parallel"
)

// Convolve correlates every channel of in with k and returns a new buffer of
// the same shape.
//
// The input is reflect-padded by k.Radius() pixels on each side so the kernel
// always has full support. Each channel is processed independently with the
// same kernel. Sums are accumulated in float64 and then clamped to [0,255].
func Convolve(in *Buffer, k *Kernel) (*Buffer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if k == nil {
		return nil, paramErr("convolve", "", 0, "nil kernel")
	}
	out := in.sameShape()
	for c := 0; c < in.Channels; c++ {
		out.setPlane(c, convolvePlane(in.plane(c), in.Width, in.Height, k))
	}
	return out, nil
}

// ConvolveFloat correlates a single-channel buffer with k without clamping,
// returning the raw float64 responses in row-major order. Derivative kernels
// need the signed values for magnitude computation.
func ConvolveFloat(in *Buffer, k *Kernel) ([]float64, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Channels != 1 {
		return nil, &ShapeError{Width: in.Width, Height: in.Height, Channels: in.Channels, Reason: "unclamped convolution needs a single-channel buffer"}
	}
	if k == nil {
		return nil, paramErr("convolve", "", 0, "nil kernel")
	}
	return convolvePlane(in.plane(0), in.Width, in.Height, k), nil
}

// convolvePlane runs the correlation over one float plane. Rows are split
// across CPUs; every output row depends only on read-only input.
func convolvePlane(src []float64, w, h int, k *Kernel) []float64 {
	r := k.Radius()
	size := k.Size()
	rows := reflectTable(h, r)
	cols := reflectTable(w, r)

	dst := make([]float64, w*h)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				var sum float64
				for i := 0; i < size; i++ {
					row := src[rows[y+i]*w:]
					for j := 0; j < size; j++ {
						sum += k.weights[i*size+j] * row[cols[x+j]]
					}
				}
				dst[y*w+x] = sum
			}
		}
	})
	return dst
}

// reflectTable maps padded coordinates [0, n+2r) to source coordinates.
func reflectTable(n, r int) []int {
	t := make([]int, n+2*r)
	for p := range t {
		t[p] = reflectIndex(p-r, n)
	}
	return t
}
