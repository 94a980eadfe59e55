package filter

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"
	"gonum.org/v1/gonum/mat"
)

// sepiaMatrix maps an RGB column vector to its sepia-toned RGB.
var sepiaMatrix = mat.NewDense(3, 3, []float64{
	0.393, 0.769, 0.189,
	0.349, 0.686, 0.168,
	0.272, 0.534, 0.131,
})

// SobelMagnitude returns the normalized gradient magnitude of the grayscale
// version of in. ksize selects the 3x3 or 5x5 Sobel pair.
//
// Gradients are computed without clamping, combined as sqrt(gx²+gy²) and
// scaled so the strongest edge in the image maps to 255. A flat image yields
// an all-zero buffer.
func SobelMagnitude(in *Buffer, ksize int) (*Buffer, error) {
	out, _, err := sobel(in, ksize)
	return out, err
}

// LaplacianEdges returns |laplacian(gray(in))| normalized by its per-image
// maximum. A flat image yields an all-zero buffer.
func LaplacianEdges(in *Buffer) (*Buffer, error) {
	out, _, err := laplacian(in)
	return out, err
}

func sobel(in *Buffer, ksize int) (*Buffer, bool, error) {
	kx, ky, err := SobelKernels(ksize)
	if err != nil {
		return nil, false, err
	}
	gray, err := ToGrayscale(in)
	if err != nil {
		return nil, false, err
	}
	gx, err := ConvolveFloat(gray, kx)
	if err != nil {
		return nil, false, err
	}
	gy, err := ConvolveFloat(gray, ky)
	if err != nil {
		return nil, false, err
	}
	for i := range gx {
		gx[i] = math.Sqrt(gx[i]*gx[i] + gy[i]*gy[i])
	}
	degenerate := normalizeByMax(gray, gx)
	return gray, degenerate, nil
}

func laplacian(in *Buffer) (*Buffer, bool, error) {
	gray, err := ToGrayscale(in)
	if err != nil {
		return nil, false, err
	}
	resp, err := ConvolveFloat(gray, laplacian3)
	if err != nil {
		return nil, false, err
	}
	for i, v := range resp {
		resp[i] = math.Abs(v)
	}
	degenerate := normalizeByMax(gray, resp)
	return gray, degenerate, nil
}

// normalizeByMax writes values/max*255 into the single channel of dst. When
// the maximum is zero dst is zeroed and true is returned.
func normalizeByMax(dst *Buffer, values []float64) bool {
	var peak float64
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		clear(dst.Pix)
		return true
	}
	scale := 255 / peak
	for i, v := range values {
		dst.Pix[i] = clampToByte(v * scale)
	}
	return false
}

// SepiaTone applies the fixed sepia color-mixing matrix to every pixel. Gray
// input is replicated into three channels first; the output is always RGB.
func SepiaTone(in *Buffer) (*Buffer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	w, h := in.Width, in.Height
	out := &Buffer{Width: w, Height: h, Channels: 3, Pix: make([]uint8, w*h*3)}

	parallel.Line(h, func(start, end int) {
		row := make([]float64, w*3)
		var mixed mat.Dense
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				for c := 0; c < 3; c++ {
					src := c
					if in.Channels == 1 {
						src = 0
					}
					row[x*3+c] = float64(in.Pix[(y*w+x)*in.Channels+src])
				}
			}
			// (w×3) · Mᵀ gives every pixel's mixed triple in one product.
			mixed.Reset()
			mixed.Mul(mat.NewDense(w, 3, row), sepiaMatrix.T())
			dst := out.Pix[y*w*3 : (y+1)*w*3]
			for x := 0; x < w; x++ {
				for c := 0; c < 3; c++ {
					dst[x*3+c] = clampToByte(mixed.At(x, c))
				}
			}
		}
	})
	return out, nil
}

// EmbossRelief correlates each channel with the emboss kernel, adds a bias of
// 128 and only then clamps to [0,255].
func EmbossRelief(in *Buffer) (*Buffer, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	out := in.sameShape()
	for c := 0; c < in.Channels; c++ {
		resp := convolvePlane(in.plane(c), in.Width, in.Height, emboss3)
		for i := range resp {
			resp[i] += 128
		}
		out.setPlane(c, resp)
	}
	return out, nil
}
