// Package filter implements a spatial-domain image filtering engine that works
// directly on raw 8-bit pixel buffers.
//
// Every operator reads an input Buffer and returns a freshly allocated output
// Buffer. Inputs are never modified, so operators can be called concurrently
// on the same or different buffers without synchronization.
//
// # Buffers
//
// A Buffer is a row-major grid of Height rows and Width columns with either one
// (gray) or three (interleaved RGB) channels per pixel. Intermediate arithmetic
// is done in float64 and converted back to bytes by clamping to [0,255] and
// rounding. Values never wrap around.
//
// # Borders
//
// Neighborhood operators (convolution and median) use reflect padding: a
// sample outside the image is taken from the mirror position across the edge,
// excluding the edge pixel itself, so index -1 reads index 1.
//
// # Operators
//
// Point operators:
//   - Grayscale: Y = 0.299R + 0.587G + 0.114B, single-channel output
//   - Invert: 255 - v
//   - Brightness: v + delta
//   - Contrast: (v - 128) * factor + 128
//   - Threshold: 255 where gray > value, else 0
//
// Neighborhood operators:
//   - GaussianBlur, BoxBlur, Sharpen, Emboss: convolution with a Kernel
//   - MedianFilter: order-statistic filter over a square window
//
// Composite operators:
//   - Sobel, Laplacian: edge magnitude normalized by the per-image maximum
//   - Sepia: fixed 3x3 color mixing matrix
//
// The Sobel and Laplacian normalization is relative to the strongest edge in
// the image, so the same absolute gradient can map to different output levels
// in different images. A flat image produces an all-zero result together with
// a degenerate_result Warning instead of dividing by zero.
//
// # Errors
//
// Invalid buffers are reported as *ShapeError and invalid operator parameters
// as *ParameterError, always before any pixel is computed. Even kernel sizes
// are not an error: they are incremented to the next odd value.
package filter
