package optest

import (
	"testing"

	"github.com/hadamard-ml/hadamard/internal/elementwise"
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

func rawFromFloat64(t *testing.T, shape tensor.Shape, data []float64) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	copy(raw.AsFloat64(), data)
	return raw
}

func TestHarnessSimpleCase(t *testing.T) {
	c := NewCase("simple",
		rawFromFloat64(t, tensor.Shape{2, 2}, []float64{1, 2, 3, 4}),
		rawFromFloat64(t, tensor.Shape{2, 2}, []float64{5, 6, 7, 8}))

	CheckOutput(t, c)
	CheckGrad(t, c)
}

func TestHarnessExplicitExpected(t *testing.T) {
	c := NewCase("explicit",
		rawFromFloat64(t, tensor.Shape{2}, []float64{2, 3}),
		rawFromFloat64(t, tensor.Shape{2}, []float64{4, 5}))
	c.Expected = rawFromFloat64(t, tensor.Shape{2}, []float64{8, 15})

	CheckOutput(t, c)
}

func TestHarnessUserGrads(t *testing.T) {
	x := rawFromFloat64(t, tensor.Shape{2}, []float64{2, 3})
	y := rawFromFloat64(t, tensor.Shape{2}, []float64{4, 5})

	c := NewCase("user grads", x, y)
	c.UserGrads = map[string]*tensor.RawTensor{
		InputX: rawFromFloat64(t, tensor.Shape{2}, []float64{4, 5}),
		InputY: rawFromFloat64(t, tensor.Shape{2}, []float64{2, 3}),
	}

	CheckGrad(t, c)
}

func TestHarnessNoGrad(t *testing.T) {
	c := NewCase("no grad y",
		rawFromFloat64(t, tensor.Shape{2}, []float64{2, 3}),
		rawFromFloat64(t, tensor.Shape{2}, []float64{4, 5}))
	c.NoGrad = []string{InputY}

	// Must not fail even though y's gradient is never inspected.
	CheckGrad(t, c)
}

func TestHarnessAxisAlignment(t *testing.T) {
	// x[2,3,4] * y[3] aligned at axis 1.
	xData := make([]float64, 24)
	for i := range xData {
		xData[i] = float64(i + 1)
	}
	c := NewCase("axis aligned",
		rawFromFloat64(t, tensor.Shape{2, 3, 4}, xData),
		rawFromFloat64(t, tensor.Shape{3}, []float64{1, 2, 3}))
	c.Axis = 1

	CheckOutput(t, c)
	CheckGrad(t, c)
}

func TestHarnessGradOutputSeed(t *testing.T) {
	c := NewCase("seeded",
		rawFromFloat64(t, tensor.Shape{2}, []float64{2, 3}),
		rawFromFloat64(t, tensor.Shape{2}, []float64{4, 5}))
	c.GradOutput = rawFromFloat64(t, tensor.Shape{2}, []float64{10, 100})
	c.UserGrads = map[string]*tensor.RawTensor{
		InputX: rawFromFloat64(t, tensor.Shape{2}, []float64{40, 500}),
		InputY: rawFromFloat64(t, tensor.Shape{2}, []float64{20, 300}),
	}

	CheckGrad(t, c)
}

func TestCaseString(t *testing.T) {
	c := NewCase("demo",
		rawFromFloat64(t, tensor.Shape{2}, []float64{1, 2}),
		rawFromFloat64(t, tensor.Shape{2}, []float64{3, 4}))
	if c.Axis != elementwise.TrailingAxis {
		t.Fatalf("NewCase axis = %d, want trailing", c.Axis)
	}
	if c.String() == "" {
		t.Fatal("String() should describe the case")
	}
}
