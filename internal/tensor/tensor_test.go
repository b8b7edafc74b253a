package tensor_test

import (
	"testing"

	"github.com/hadamard-ml/hadamard/internal/backend/cpu"
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	data := []float32{1, 2, 3, 4, 5, 6}
	tt, err := tensor.FromSlice(data, tensor.Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	if !tt.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("shape = %v, want [2 3]", tt.Shape())
	}
	if tt.DType() != tensor.Float32 {
		t.Errorf("dtype = %s, want float32", tt.DType())
	}
	if got := tt.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %v, want 6", got)
	}
}

func TestFromSliceShapeMismatch(t *testing.T) {
	backend := cpu.New()

	_, err := tensor.FromSlice([]float64{1, 2, 3}, tensor.Shape{2, 3}, backend)
	if err == nil {
		t.Fatal("expected error for mismatched shape, got nil")
	}
}

func TestZeroDimTensor(t *testing.T) {
	backend := cpu.New()

	scalar, err := tensor.FromSlice([]float64{2.5}, tensor.Shape{}, backend)
	if err != nil {
		t.Fatalf("FromSlice scalar: %v", err)
	}

	if scalar.NumElements() != 1 {
		t.Errorf("NumElements = %d, want 1", scalar.NumElements())
	}
	if got := scalar.Item(); got != 2.5 {
		t.Errorf("Item() = %v, want 2.5", got)
	}
}

func TestComplexTensor(t *testing.T) {
	backend := cpu.New()

	data := []complex128{1 + 2i, 3 - 4i}
	tt, err := tensor.FromSlice(data, tensor.Shape{2}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}

	if tt.DType() != tensor.Complex128 {
		t.Errorf("dtype = %s, want complex128", tt.DType())
	}
	if got := tt.Data()[1]; got != 3-4i {
		t.Errorf("Data()[1] = %v, want (3-4i)", got)
	}
}

func TestCloneSharesBufferCopyOnWrite(t *testing.T) {
	backend := cpu.New()

	a := tensor.Ones[float32](tensor.Shape{4}, backend)
	if !a.Raw().IsUnique() {
		t.Fatal("fresh tensor should own its buffer")
	}

	b := a.Clone()
	if a.Raw().IsUnique() {
		t.Error("clone should share the buffer (refcount > 1)")
	}
	b.Raw().Release()
	if !a.Raw().IsUnique() {
		t.Error("releasing the clone should return exclusive ownership")
	}
}

func TestDetachStopsGradTracking(t *testing.T) {
	backend := cpu.New()

	a := tensor.Ones[float32](tensor.Shape{2}, backend).RequireGrad()
	d := a.Detach()

	if d.RequiresGrad() {
		t.Error("detached tensor should not require grad")
	}
	// Data is shared, not copied.
	a.Data()[0] = 7
	if d.Data()[0] != 7 {
		t.Error("detached tensor should share data with the original")
	}
}
