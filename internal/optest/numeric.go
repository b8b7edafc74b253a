package optest

import (
	"testing"

	"github.com/hadamard-ml/hadamard/internal/backend/cpu"
	"github.com/hadamard-ml/hadamard/internal/elementwise"
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// numericGrad approximates the gradient of the seeded output sum with
// respect to one input using central finite differences:
//
//	grad_i = Σ_j seed_j * (f(x+εe_i)_j - f(x-εe_i)_j) / (2ε)
//
// Only float32 and float64 inputs are supported; lower-precision and
// complex cases supply UserGrads instead.
func numericGrad(t *testing.T, c *Case, name string, seed *tensor.RawTensor) *tensor.RawTensor {
	t.Helper()

	input := c.X
	if name == InputY {
		input = c.Y
	}

	var eps float64
	switch input.DType() {
	case tensor.Float64:
		eps = 1e-6
	case tensor.Float32:
		eps = 1e-3
	default:
		t.Fatalf("numeric gradient needs float32/float64 input, got %s (supply UserGrads)", input.DType())
	}

	backend := cpu.New()
	seedF := asFloat64(seed)

	grad, err := tensor.NewRaw(input.Shape(), tensor.Float64, backend.Device())
	if err != nil {
		t.Fatalf("numeric gradient: %v", err)
	}
	gradData := grad.AsFloat64()

	forward := func(perturbed *tensor.RawTensor) []float64 {
		x, y := c.X, c.Y
		if name == InputX {
			x = perturbed
		} else {
			y = perturbed
		}
		out, err := elementwise.MulAxis(x, y, c.Axis, backend)
		if err != nil {
			t.Fatalf("numeric gradient forward failed: %v", err)
		}
		return asFloat64(out)
	}

	for i := range gradData {
		plus := perturb(t, input, i, eps)
		minus := perturb(t, input, i, -eps)

		fPlus := forward(plus)
		fMinus := forward(minus)

		var acc float64
		for j := range seedF {
			acc += seedF[j] * (fPlus[j] - fMinus[j]) / (2 * eps)
		}
		gradData[i] = acc
	}

	return grad
}

// perturb clones the input with element i shifted by delta.
func perturb(t *testing.T, input *tensor.RawTensor, i int, delta float64) *tensor.RawTensor {
	t.Helper()

	out, err := tensor.NewRaw(input.Shape(), input.DType(), input.Device())
	if err != nil {
		t.Fatalf("numeric gradient: %v", err)
	}
	switch input.DType() {
	case tensor.Float64:
		copy(out.AsFloat64(), input.AsFloat64())
		out.AsFloat64()[i] += delta
	case tensor.Float32:
		copy(out.AsFloat32(), input.AsFloat32())
		out.AsFloat32()[i] += float32(delta)
	}
	return out
}
