package cpu

import (
	"math"
	"testing"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

func TestCast(t *testing.T) {
	backend := New()

	t.Run("float32 to float64", func(t *testing.T) {
		x := newFloat32(t, backend, tensor.Shape{3}, []float32{1.5, -2, 3})
		result := backend.Cast(x, tensor.Float64)
		if result.DType() != tensor.Float64 {
			t.Fatalf("Expected Float64, got %s", result.DType())
		}
		for i, want := range []float64{1.5, -2, 3} {
			if result.AsFloat64()[i] != want {
				t.Errorf("result[%d] = %f, expected %f", i, result.AsFloat64()[i], want)
			}
		}
	})

	t.Run("float64 to bfloat16", func(t *testing.T) {
		x := newFloat64(t, backend, tensor.Shape{2}, []float64{1.0, 0.5})
		result := backend.Cast(x, tensor.BFloat16)
		for i, want := range []float32{1.0, 0.5} {
			got := result.AsBFloat16()[i].Float32()
			if math.Abs(float64(got-want)) > 1e-2 {
				t.Errorf("result[%d] = %f, expected %f", i, got, want)
			}
		}
	})

	t.Run("float32 to complex64", func(t *testing.T) {
		x := newFloat32(t, backend, tensor.Shape{2}, []float32{2, -3})
		result := backend.Cast(x, tensor.Complex64)
		for i, want := range []complex64{2, -3} {
			if result.AsComplex64()[i] != want {
				t.Errorf("result[%d] = %v, expected %v", i, result.AsComplex64()[i], want)
			}
		}
	})

	t.Run("int64 to float32", func(t *testing.T) {
		x, err := tensor.NewRaw(tensor.Shape{3}, tensor.Int64, backend.Device())
		if err != nil {
			t.Fatalf("Failed to create tensor: %v", err)
		}
		copy(x.AsInt64(), []int64{-1, 0, 7})
		result := backend.Cast(x, tensor.Float32)
		for i, want := range []float32{-1, 0, 7} {
			if result.AsFloat32()[i] != want {
				t.Errorf("result[%d] = %f, expected %f", i, result.AsFloat32()[i], want)
			}
		}
	})

	t.Run("same dtype is identity", func(t *testing.T) {
		x := newFloat32(t, backend, tensor.Shape{2}, []float32{1, 2})
		result := backend.Cast(x, tensor.Float32)
		if result.DType() != tensor.Float32 {
			t.Fatalf("Expected Float32, got %s", result.DType())
		}
	})
}

func TestConjAndReal(t *testing.T) {
	backend := New()

	x, err := tensor.NewRaw(tensor.Shape{2}, tensor.Complex128, backend.Device())
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}
	copy(x.AsComplex128(), []complex128{1 + 2i, -3 - 4i})

	conj := backend.Conj(x).AsComplex128()
	for i, want := range []complex128{1 - 2i, -3 + 4i} {
		if conj[i] != want {
			t.Errorf("conj[%d] = %v, expected %v", i, conj[i], want)
		}
	}

	re := backend.Real(x)
	if re.DType() != tensor.Float64 {
		t.Fatalf("Expected Float64 real part, got %s", re.DType())
	}
	for i, want := range []float64{1, -3} {
		if re.AsFloat64()[i] != want {
			t.Errorf("real[%d] = %f, expected %f", i, re.AsFloat64()[i], want)
		}
	}

	// Conj of a real tensor is the tensor itself.
	y := newFloat32(t, backend, tensor.Shape{2}, []float32{1, 2})
	conjReal := backend.Conj(y).AsFloat32()
	for i, want := range []float32{1, 2} {
		if conjReal[i] != want {
			t.Errorf("conj real[%d] = %f, expected %f", i, conjReal[i], want)
		}
	}
}
