package filter

import "testing"

// flatBuffer creates a buffer where every pixel has the given channel values.
func flatBuffer(t *testing.T, width, height int, values ...uint8) *Buffer {
	t.Helper()

	b, err := NewBuffer(width, height, len(values))
	if err != nil {
		t.Fatalf("NewBuffer(%d, %d, %d) failed: %v", width, height, len(values), err)
	}
	for i := 0; i < width*height; i++ {
		copy(b.Pix[i*len(values):], values)
	}
	return b
}

// patternBuffer creates a buffer with a deterministic, non-uniform pattern.
func patternBuffer(t *testing.T, width, height, channels int) *Buffer {
	t.Helper()

	b, err := NewBuffer(width, height, channels)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	for i := range b.Pix {
		b.Pix[i] = uint8((i*37 + i/7*11) % 256)
	}
	return b
}

// stepBuffer creates a single-channel image that is 0 left of column edgeX and
// high from edgeX onward.
func stepBuffer(t *testing.T, width, height, edgeX int, high uint8) *Buffer {
	t.Helper()

	b, err := NewBuffer(width, height, 1)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := edgeX; x < width; x++ {
			b.Set(x, y, 0, high)
		}
	}
	return b
}

func maxSample(b *Buffer) uint8 {
	var m uint8
	for _, v := range b.Pix {
		if v > m {
			m = v
		}
	}
	return m
}

func allEqual(b *Buffer, v uint8) bool {
	for _, s := range b.Pix {
		if s != v {
			return false
		}
	}
	return true
}
