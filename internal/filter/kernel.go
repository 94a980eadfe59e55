package filter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Kernel is a square, odd-sized grid of correlation weights stored row-major.
type Kernel struct {
	size    int
	weights []float64
}

// NewKernel builds a kernel from rows of weights. Non-square grids and even
// edge lengths are rejected here so that convolution never has to check.
func NewKernel(rows [][]float64) (*Kernel, error) {
	n := len(rows)
	if n == 0 {
		return nil, paramErr("kernel", "", 0, "kernel has no rows")
	}
	if n%2 == 0 {
		return nil, paramErr("kernel", "size", float64(n), "kernel edge length must be odd")
	}
	weights := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, paramErr("kernel", "", 0, fmt.Sprintf("row %d has %d weights, want %d", i, len(row), n))
		}
		weights = append(weights, row...)
	}
	return &Kernel{size: n, weights: weights}, nil
}

// mustKernel is used for the fixed kernels below, which are valid by construction.
func mustKernel(rows [][]float64) *Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// Size returns the edge length of the kernel.
func (k *Kernel) Size() int { return k.size }

// Radius returns floor(Size/2), the reflect padding applied on each side.
func (k *Kernel) Radius() int { return k.size / 2 }

// At returns the weight in row i, column j.
func (k *Kernel) At(i, j int) float64 { return k.weights[i*k.size+j] }

// Sum returns the total of all weights.
func (k *Kernel) Sum() float64 { return floats.Sum(k.weights) }

// Rows returns a copy of the weights as a slice of rows.
func (k *Kernel) Rows() [][]float64 {
	rows := make([][]float64, k.size)
	for i := range rows {
		rows[i] = append([]float64(nil), k.weights[i*k.size:(i+1)*k.size]...)
	}
	return rows
}

// GaussianKernel returns a normalized size×size Gaussian kernel.
//
// Weights are exp(-(x²+y²)/(2σ²)) over the centered grid [-size/2, size/2],
// divided by their sum. Even sizes are incremented to the next odd value.
func GaussianKernel(size int, sigma float64) (*Kernel, error) {
	size, err := normalizeOddSize("gaussian_blur", size)
	if err != nil {
		return nil, err
	}
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, paramErr("gaussian_blur", "sigma", sigma, "must be greater than 0")
	}

	r := size / 2
	weights := make([]float64, size*size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			y := float64(i - r)
			x := float64(j - r)
			weights[i*size+j] = math.Exp(-(x*x + y*y) / (2 * sigma * sigma))
		}
	}
	floats.Scale(1/floats.Sum(weights), weights)
	return &Kernel{size: size, weights: weights}, nil
}

// BoxKernel returns a size×size kernel with uniform weights 1/size².
// Even sizes are incremented to the next odd value.
func BoxKernel(size int) (*Kernel, error) {
	size, err := normalizeOddSize("box_blur", size)
	if err != nil {
		return nil, err
	}
	weights := make([]float64, size*size)
	for i := range weights {
		weights[i] = 1
	}
	floats.Scale(1/float64(size*size), weights)
	return &Kernel{size: size, weights: weights}, nil
}

var (
	identity3 = mustKernel([][]float64{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	sharpenBase = mustKernel([][]float64{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	})
	sobelX3 = mustKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
	sobelY3 = mustKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
	sobelX5 = mustKernel([][]float64{
		{-1, -2, 0, 2, 1},
		{-4, -8, 0, 8, 4},
		{-6, -12, 0, 12, 6},
		{-4, -8, 0, 8, 4},
		{-1, -2, 0, 2, 1},
	})
	sobelY5 = mustKernel([][]float64{
		{-1, -4, -6, -4, -1},
		{-2, -8, -12, -8, -2},
		{0, 0, 0, 0, 0},
		{2, 8, 12, 8, 2},
		{1, 4, 6, 4, 1},
	})
	laplacian3 = mustKernel([][]float64{
		{0, 1, 0},
		{1, -4, 1},
		{0, 1, 0},
	})
	emboss3 = mustKernel([][]float64{
		{-2, -1, 0},
		{-1, 1, 1},
		{0, 1, 2},
	})
)

// SharpenKernel returns identity + strength*(base - identity) where base is
// the classic 5-point sharpen kernel. Strength 0 is the identity, 1 is the
// full base kernel and values above 1 over-sharpen.
func SharpenKernel(strength float64) (*Kernel, error) {
	if strength < 0 || math.IsNaN(strength) || math.IsInf(strength, 0) {
		return nil, paramErr("sharpen", "strength", strength, "must be a finite value >= 0")
	}
	if strength == 1 {
		return sharpenBase.clone(), nil
	}
	weights := make([]float64, len(identity3.weights))
	for i := range weights {
		weights[i] = identity3.weights[i] + strength*(sharpenBase.weights[i]-identity3.weights[i])
	}
	return &Kernel{size: 3, weights: weights}, nil
}

// SobelKernels returns the horizontal and vertical derivative kernels for
// ksize 3 or 5. Even values are incremented first, so 4 selects 5.
func SobelKernels(ksize int) (x, y *Kernel, err error) {
	ksize, err = normalizeOddSize("sobel", ksize)
	if err != nil {
		return nil, nil, err
	}
	switch ksize {
	case 3:
		return sobelX3.clone(), sobelY3.clone(), nil
	case 5:
		return sobelX5.clone(), sobelY5.clone(), nil
	default:
		return nil, nil, paramErr("sobel", "ksize", float64(ksize), "must be 3 or 5")
	}
}

// LaplacianKernel returns the 4-neighbour second-derivative kernel.
func LaplacianKernel() *Kernel { return laplacian3.clone() }

// EmbossKernel returns the diagonal emboss kernel.
func EmbossKernel() *Kernel { return emboss3.clone() }

func (k *Kernel) clone() *Kernel {
	return &Kernel{size: k.size, weights: append([]float64(nil), k.weights...)}
}
