// Package optest provides the conformance harness for element-wise
// operators.
//
// A Case bundles the operands, axis and expectations for one operator
// invocation. CheckOutput runs the forward pass on every execution mode
// (eager, tape-recorded, deferred program) and compares against a reference
// product. CheckGrad validates the analytic gradients from the tape against
// central finite differences, or against caller-supplied gradients for
// dtypes where finite differences are meaningless.
package optest

import (
	"fmt"
	"testing"

	"k8s.io/klog/v2"

	"github.com/hadamard-ml/hadamard/internal/autodiff"
	"github.com/hadamard-ml/hadamard/internal/backend/cpu"
	"github.com/hadamard-ml/hadamard/internal/backend/deferred"
	"github.com/hadamard-ml/hadamard/internal/elementwise"
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// Input names used in NoGrad and UserGrads.
const (
	InputX = "x"
	InputY = "y"
)

// Case describes one operator conformance case.
type Case struct {
	Name string
	X, Y *tensor.RawTensor

	// Axis selects the legacy alignment convention; TrailingAxis means
	// plain right-aligned broadcasting.
	Axis int

	// Expected overrides the computed reference output.
	Expected *tensor.RawTensor

	// Atol and Rtol override the per-dtype output tolerances when > 0.
	Atol, Rtol float64

	// GradOutput seeds the backward pass; nil seeds with ones.
	GradOutput *tensor.RawTensor

	// NoGrad lists inputs excluded from the gradient check.
	NoGrad []string

	// UserGrads supplies expected gradients per input, replacing the
	// finite-difference reference.
	UserGrads map[string]*tensor.RawTensor

	// MaxRelError overrides the gradient comparison tolerance when > 0.
	MaxRelError float64

	// SkipDeferred excludes the deferred-program mode from CheckOutput.
	SkipDeferred bool
}

// NewCase builds a case with standard trailing-axis broadcasting.
func NewCase(name string, x, y *tensor.RawTensor) *Case {
	return &Case{
		Name: name,
		X:    x,
		Y:    y,
		Axis: elementwise.TrailingAxis,
	}
}

// CheckOutput runs the operator in all three execution modes and compares
// every result against the reference product.
func CheckOutput(t *testing.T, c *Case) {
	t.Helper()

	// The same operands run through every mode; keep kernels from taking
	// the inplace path over them.
	defer c.X.ForceNonUnique()()
	defer c.Y.ForceNonUnique()()

	expected := c.Expected
	if expected == nil {
		expected = referenceMul(t, c.X, c.Y, c.Axis)
	}
	// Tolerances follow the dtype the operator actually computes in, not the
	// wide dtype of the reference product.
	atol, rtol := c.tolerances(tensor.PromoteTypes(c.X.DType(), c.Y.DType()))

	t.Run("eager", func(t *testing.T) {
		backend := cpu.New()
		got, err := elementwise.MulAxis(c.X, c.Y, c.Axis, backend)
		if err != nil {
			t.Fatalf("forward failed: %v", err)
		}
		compareOutputs(t, got, expected, atol, rtol)
	})

	t.Run("recorded", func(t *testing.T) {
		backend := autodiff.New(cpu.New())
		backend.Tape().StartRecording()
		got, err := elementwise.MulAxis(c.X, c.Y, c.Axis, backend)
		if err != nil {
			t.Fatalf("forward failed: %v", err)
		}
		compareOutputs(t, got, expected, atol, rtol)
		if backend.Tape().NumOps() == 0 {
			t.Error("recorded mode left the tape empty")
		}
	})

	t.Run("deferred", func(t *testing.T) {
		if c.SkipDeferred {
			t.Skip("deferred mode excluded by case")
		}
		backend := deferred.New(cpu.New())
		got, err := elementwise.MulAxis(c.X, c.Y, c.Axis, backend)
		if err != nil {
			t.Fatalf("forward failed: %v", err)
		}
		if !backend.Pending(got) {
			t.Error("deferred mode produced an already-materialized tensor")
		}
		if err := backend.Run(); err != nil {
			t.Fatalf("program run failed: %v", err)
		}
		compareOutputs(t, got, expected, atol, rtol)
	})
}

// CheckGrad validates analytic gradients for the inputs not listed in
// NoGrad.
func CheckGrad(t *testing.T, c *Case) {
	t.Helper()

	defer c.X.ForceNonUnique()()
	defer c.Y.ForceNonUnique()()

	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	out, err := elementwise.MulAxis(c.X, c.Y, c.Axis, backend)
	if err != nil {
		t.Fatalf("forward failed: %v", err)
	}

	seed := c.GradOutput
	if seed == nil {
		seed = autodiff.OnesLike(out, backend)
	}

	grads := backend.GetTape().Backward(
		map[*tensor.RawTensor]*tensor.RawTensor{out: seed}, backend)

	maxRel := c.MaxRelError
	if maxRel == 0 {
		maxRel = 0.005
	}

	inputs := map[string]*tensor.RawTensor{InputX: c.X, InputY: c.Y}
	for _, name := range []string{InputX, InputY} {
		if c.skipsGrad(name) {
			klog.V(2).Infof("%s: gradient check for %q skipped by case", c.Name, name)
			continue
		}
		input := inputs[name]
		analytic, ok := grads[input]
		if !ok {
			t.Errorf("no gradient flowed to %q", name)
			continue
		}
		if !analytic.Shape().Equal(input.Shape()) {
			t.Errorf("gradient for %q has shape %v, input has %v", name, analytic.Shape(), input.Shape())
			continue
		}

		if user, ok := c.UserGrads[name]; ok {
			atol, rtol := c.tolerances(user.DType())
			compareNamed(t, name, analytic, user, atol, rtol)
			continue
		}

		numeric := numericGrad(t, c, name, seed)
		compareGrads(t, name, analytic, numeric, maxRel)
	}
}

func (c *Case) skipsGrad(name string) bool {
	for _, n := range c.NoGrad {
		if n == name {
			return true
		}
	}
	return false
}

// tolerances returns the output comparison tolerances for a dtype.
func (c *Case) tolerances(dtype tensor.DataType) (atol, rtol float64) {
	switch dtype {
	case tensor.Float64, tensor.Complex128:
		atol, rtol = 1e-12, 1e-12
	case tensor.Float16, tensor.BFloat16:
		atol, rtol = 1e-2, 1e-2
	default:
		atol, rtol = 1e-5, 1e-5
	}
	if c.Atol > 0 {
		atol = c.Atol
	}
	if c.Rtol > 0 {
		rtol = c.Rtol
	}
	return atol, rtol
}

func compareOutputs(t *testing.T, got, want *tensor.RawTensor, atol, rtol float64) {
	t.Helper()
	compareNamed(t, "output", got, want, atol, rtol)
}

func compareNamed(t *testing.T, name string, got, want *tensor.RawTensor, atol, rtol float64) {
	t.Helper()

	if !got.Shape().Equal(want.Shape()) {
		t.Fatalf("%s shape = %v, want %v", name, got.Shape(), want.Shape())
	}

	if got.DType().IsComplex() || want.DType().IsComplex() {
		gotC, wantC := asComplex128(got), asComplex128(want)
		for i := range wantC {
			if cmplxAbs(gotC[i]-wantC[i]) > atol+rtol*cmplxAbs(wantC[i]) {
				t.Errorf("%s[%d] = %v, want %v (atol=%g rtol=%g)", name, i, gotC[i], wantC[i], atol, rtol)
				return
			}
		}
		return
	}

	gotF, wantF := asFloat64(got), asFloat64(want)
	for i := range wantF {
		if absF(gotF[i]-wantF[i]) > atol+rtol*absF(wantF[i]) {
			t.Errorf("%s[%d] = %g, want %g (atol=%g rtol=%g)", name, i, gotF[i], wantF[i], atol, rtol)
			return
		}
	}
}

func compareGrads(t *testing.T, name string, analytic, numeric *tensor.RawTensor, maxRel float64) {
	t.Helper()

	a, n := asFloat64(analytic), asFloat64(numeric)
	if len(a) != len(n) {
		t.Fatalf("gradient for %q has %d elements, numeric reference has %d", name, len(a), len(n))
	}
	for i := range n {
		denom := maxF(absF(n[i]), 1)
		if absF(a[i]-n[i])/denom > maxRel {
			t.Errorf("gradient %s[%d] = %g, numeric %g (max relative error %g)", name, i, a[i], n[i], maxRel)
			return
		}
	}
}

// referenceMul computes the expected product in wide precision on a plain
// CPU backend.
func referenceMul(t *testing.T, x, y *tensor.RawTensor, axis int) *tensor.RawTensor {
	t.Helper()

	backend := cpu.New()
	wide := tensor.Float64
	if x.DType().IsComplex() || y.DType().IsComplex() {
		wide = tensor.Complex128
	}
	result, err := elementwise.MulAxis(backend.Cast(x, wide), backend.Cast(y, wide), axis, backend)
	if err != nil {
		t.Fatalf("reference forward failed: %v", err)
	}
	return result
}

func asFloat64(x *tensor.RawTensor) []float64 {
	if x.DType() == tensor.Float64 {
		return x.AsFloat64()
	}
	return cpu.New().Cast(x, tensor.Float64).AsFloat64()
}

func asComplex128(x *tensor.RawTensor) []complex128 {
	if x.DType() == tensor.Complex128 {
		return x.AsComplex128()
	}
	return cpu.New().Cast(x, tensor.Complex128).AsComplex128()
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func cmplxAbs(v complex128) float64 {
	// The 1-norm bound is fine for tolerance checks.
	return absF(real(v)) + absF(imag(v))
}

// String implements fmt.Stringer for logging.
func (c *Case) String() string {
	return fmt.Sprintf("%s: %v x %v (axis=%d)", c.Name, c.X.Shape(), c.Y.Shape(), c.Axis)
}
