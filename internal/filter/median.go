package filter

import (
	"slices"

	"github.com/anthonynsimon/bild/parallel"
)

// Median replaces every sample with the median of the size×size window
// centered on it, using reflect padding at the borders.
//
// Even sizes are incremented to the next odd value so the window always has a
// unique middle element. Channels are filtered independently and never mixed.
func Median(in *Buffer, size int) (*Buffer, error) {
	size, err := normalizeOddSize("median", size)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	w, h, ch := in.Width, in.Height, in.Channels
	r := size / 2
	rows := reflectTable(h, r)
	cols := reflectTable(w, r)
	out := in.sameShape()

	parallel.Line(h, func(start, end int) {
		window := make([]uint8, size*size)
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				for c := 0; c < ch; c++ {
					n := 0
					for i := 0; i < size; i++ {
						base := rows[y+i] * w
						for j := 0; j < size; j++ {
							window[n] = in.Pix[(base+cols[x+j])*ch+c]
							n++
						}
					}
					slices.Sort(window)
					out.Pix[(y*w+x)*ch+c] = window[len(window)/2]
				}
			}
		}
	})
	return out, nil
}
