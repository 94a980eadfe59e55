package filter

import (
	"errors"
	"math"
	"testing"
)

func TestNewKernel_Rejects(t *testing.T) {
	tests := []struct {
		name string
		rows [][]float64
	}{
		{"empty", nil},
		{"even size", [][]float64{{1, 0}, {0, 1}}},
		{"ragged", [][]float64{{1, 0, 0}, {0, 1}, {0, 0, 1}}},
		{"non-square", [][]float64{{1, 0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKernel(tt.rows)
			var paramErr *ParameterError
			if !errors.As(err, &paramErr) {
				t.Fatalf("expected *ParameterError, got %v", err)
			}
		})
	}
}

func TestNewKernel_Rows(t *testing.T) {
	rows := [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	k, err := NewKernel(rows)
	if err != nil {
		t.Fatalf("NewKernel failed: %v", err)
	}
	if k.Size() != 3 || k.Radius() != 1 {
		t.Errorf("size/radius: got %d/%d, want 3/1", k.Size(), k.Radius())
	}
	if k.At(1, 2) != 6 {
		t.Errorf("At(1,2): got %v, want 6", k.At(1, 2))
	}
	if k.Sum() != 45 {
		t.Errorf("Sum: got %v, want 45", k.Sum())
	}

	got := k.Rows()
	got[0][0] = 100
	if k.At(0, 0) != 1 {
		t.Error("Rows should return a copy")
	}
}

func TestGaussianKernel_SumsToOne(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4, 5, 7, 9, 15} {
		for _, sigma := range []float64{0.3, 0.5, 1, 2.5, 10} {
			k, err := GaussianKernel(size, sigma)
			if err != nil {
				t.Fatalf("GaussianKernel(%d, %v) failed: %v", size, sigma, err)
			}
			if sum := k.Sum(); math.Abs(sum-1) > 1e-9 {
				t.Errorf("GaussianKernel(%d, %v) sum: got %v, want 1", size, sigma, sum)
			}
		}
	}
}

func TestGaussianKernel_Shape(t *testing.T) {
	k, err := GaussianKernel(4, 1)
	if err != nil {
		t.Fatalf("GaussianKernel failed: %v", err)
	}
	if k.Size() != 5 {
		t.Fatalf("even size should be forced odd: got %d, want 5", k.Size())
	}

	center := k.At(2, 2)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			if k.At(i, j) > center {
				t.Errorf("weight (%d,%d) = %v exceeds center %v", i, j, k.At(i, j), center)
			}
			if math.Abs(k.At(i, j)-k.At(4-i, 4-j)) > 1e-15 || math.Abs(k.At(i, j)-k.At(j, i)) > 1e-15 {
				t.Errorf("kernel not symmetric at (%d,%d)", i, j)
			}
		}
	}
}

func TestGaussianKernel_InvalidParams(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		sigma float64
	}{
		{"zero sigma", 5, 0},
		{"negative sigma", 5, -1},
		{"NaN sigma", 5, math.NaN()},
		{"zero size", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GaussianKernel(tt.size, tt.sigma)
			var paramErr *ParameterError
			if !errors.As(err, &paramErr) {
				t.Fatalf("expected *ParameterError, got %v", err)
			}
		})
	}
}

func TestBoxKernel(t *testing.T) {
	k, err := BoxKernel(6)
	if err != nil {
		t.Fatalf("BoxKernel failed: %v", err)
	}
	if k.Size() != 7 {
		t.Errorf("size: got %d, want 7", k.Size())
	}
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			if math.Abs(k.At(i, j)-1.0/49) > 1e-15 {
				t.Fatalf("weight (%d,%d): got %v, want 1/49", i, j, k.At(i, j))
			}
		}
	}
}

func TestSharpenKernel(t *testing.T) {
	tests := []struct {
		strength float64
		center   float64
		edge     float64
	}{
		{0, 1, 0},
		{0.5, 3, -0.5},
		{1, 5, -1},
		{2, 9, -2},
	}

	for _, tt := range tests {
		k, err := SharpenKernel(tt.strength)
		if err != nil {
			t.Fatalf("SharpenKernel(%v) failed: %v", tt.strength, err)
		}
		if k.At(1, 1) != tt.center {
			t.Errorf("strength %v center: got %v, want %v", tt.strength, k.At(1, 1), tt.center)
		}
		if k.At(0, 1) != tt.edge || k.At(1, 0) != tt.edge {
			t.Errorf("strength %v edge: got %v, want %v", tt.strength, k.At(0, 1), tt.edge)
		}
		if k.At(0, 0) != 0 {
			t.Errorf("strength %v corner: got %v, want 0", tt.strength, k.At(0, 0))
		}
	}

	if _, err := SharpenKernel(-0.1); err == nil {
		t.Error("expected error for negative strength")
	}
}

func TestSobelKernels(t *testing.T) {
	for _, ksize := range []int{3, 4, 5} {
		kx, ky, err := SobelKernels(ksize)
		if err != nil {
			t.Fatalf("SobelKernels(%d) failed: %v", ksize, err)
		}
		if kx.Sum() != 0 || ky.Sum() != 0 {
			t.Errorf("ksize %d: derivative kernels should sum to 0", ksize)
		}
		n := kx.Size()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if kx.At(i, j) != ky.At(j, i) {
					t.Fatalf("ksize %d: Y kernel is not the transpose of X at (%d,%d)", ksize, i, j)
				}
			}
		}
	}

	for _, bad := range []int{1, 7, 0} {
		if _, _, err := SobelKernels(bad); err == nil {
			t.Errorf("SobelKernels(%d): expected error", bad)
		}
	}
}

func TestFixedKernels(t *testing.T) {
	if LaplacianKernel().Sum() != 0 {
		t.Error("laplacian kernel should sum to 0")
	}
	if EmbossKernel().Sum() != 1 {
		t.Errorf("emboss kernel sum: got %v, want 1", EmbossKernel().Sum())
	}

	// Returned kernels are copies; editing them must not leak into later calls.
	k := LaplacianKernel()
	k.weights[4] = 100
	if LaplacianKernel().At(1, 1) != -4 {
		t.Error("LaplacianKernel returned shared storage")
	}
}
