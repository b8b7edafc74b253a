package cpu

import (
	"testing"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

func TestSum(t *testing.T) {
	backend := New()

	x := newFloat32(t, backend, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	result := backend.Sum(x)

	if !result.Shape().Equal(tensor.Shape{}) {
		t.Fatalf("Expected scalar shape, got %v", result.Shape())
	}
	if got := result.AsFloat32()[0]; got != 21 {
		t.Errorf("sum = %f, expected 21", got)
	}
}

func TestSumComplex(t *testing.T) {
	backend := New()

	x, err := tensor.NewRaw(tensor.Shape{3}, tensor.Complex128, backend.Device())
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}
	copy(x.AsComplex128(), []complex128{1 + 1i, 2 - 1i, -1 + 3i})

	result := backend.Sum(x)
	if got := result.AsComplex128()[0]; got != 2+3i {
		t.Errorf("sum = %v, expected (2+3i)", got)
	}
}

func TestSumDim(t *testing.T) {
	backend := New()

	tests := []struct {
		name     string
		shape    tensor.Shape
		data     []float32
		dim      int
		keepDim  bool
		expShape tensor.Shape
		expected []float32
	}{
		{
			name:     "dim 0 keep",
			shape:    tensor.Shape{2, 3},
			data:     []float32{1, 2, 3, 4, 5, 6},
			dim:      0,
			keepDim:  true,
			expShape: tensor.Shape{1, 3},
			expected: []float32{5, 7, 9},
		},
		{
			name:     "dim 1 squeeze",
			shape:    tensor.Shape{2, 3},
			data:     []float32{1, 2, 3, 4, 5, 6},
			dim:      1,
			keepDim:  false,
			expShape: tensor.Shape{2},
			expected: []float32{6, 15},
		},
		{
			name:     "middle dim of 3D",
			shape:    tensor.Shape{2, 2, 2},
			data:     []float32{1, 2, 3, 4, 5, 6, 7, 8},
			dim:      1,
			keepDim:  true,
			expShape: tensor.Shape{2, 1, 2},
			expected: []float32{4, 6, 12, 14},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := newFloat32(t, backend, tt.shape, tt.data)
			result := backend.SumDim(x, tt.dim, tt.keepDim)

			if !result.Shape().Equal(tt.expShape) {
				t.Fatalf("Expected shape %v, got %v", tt.expShape, result.Shape())
			}
			output := result.AsFloat32()
			for i, want := range tt.expected {
				if output[i] != want {
					t.Errorf("result[%d] = %f, expected %f", i, output[i], want)
				}
			}
		})
	}
}

func TestTranspose(t *testing.T) {
	backend := New()

	t.Run("default reverses axes", func(t *testing.T) {
		x := newFloat32(t, backend, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
		result := backend.Transpose(x)

		if !result.Shape().Equal(tensor.Shape{3, 2}) {
			t.Fatalf("Expected shape [3 2], got %v", result.Shape())
		}
		expected := []float32{1, 4, 2, 5, 3, 6}
		for i, want := range expected {
			if result.AsFloat32()[i] != want {
				t.Errorf("result[%d] = %f, expected %f", i, result.AsFloat32()[i], want)
			}
		}
	})

	t.Run("explicit permutation", func(t *testing.T) {
		x := newFloat32(t, backend, tensor.Shape{2, 1, 3}, []float32{1, 2, 3, 4, 5, 6})
		result := backend.Transpose(x, 1, 0, 2)

		if !result.Shape().Equal(tensor.Shape{1, 2, 3}) {
			t.Fatalf("Expected shape [1 2 3], got %v", result.Shape())
		}
		for i, want := range []float32{1, 2, 3, 4, 5, 6} {
			if result.AsFloat32()[i] != want {
				t.Errorf("result[%d] = %f, expected %f", i, result.AsFloat32()[i], want)
			}
		}
	})
}
