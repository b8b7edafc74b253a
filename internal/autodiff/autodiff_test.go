package autodiff_test

import (
	"math"
	"testing"

	"github.com/hadamard-ml/hadamard/internal/autodiff"
	"github.com/hadamard-ml/hadamard/internal/backend/cpu"
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

const epsilon = 1e-5

func TestAutodiffBackend_Name(t *testing.T) {
	backend := autodiff.New(cpu.New())
	if backend.Name() != "Autodiff(CPU)" {
		t.Errorf("Name() = %s, want Autodiff(CPU)", backend.Name())
	}
}

func TestTape_Recording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	if tape.IsRecording() {
		t.Error("Tape should not be recording initially")
	}
	tape.StartRecording()
	if !tape.IsRecording() {
		t.Error("Tape should be recording after StartRecording()")
	}
	tape.StopRecording()
	if tape.IsRecording() {
		t.Error("Tape should not be recording after StopRecording()")
	}
}

func TestMulBackward(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float64{2, 3, 4}, tensor.Shape{3}, backend)
	y, _ := tensor.FromSlice([]float64{5, 6, 7}, tensor.Shape{3}, backend)
	z := x.Mul(y)

	grads := autodiff.Backward(z, backend)

	gradX := grads[x.Raw()].AsFloat64()
	gradY := grads[y.Raw()].AsFloat64()
	for i := 0; i < 3; i++ {
		if gradX[i] != y.Raw().AsFloat64()[i] {
			t.Errorf("grad_x[%d] = %f, want %f", i, gradX[i], y.Raw().AsFloat64()[i])
		}
		if gradY[i] != x.Raw().AsFloat64()[i] {
			t.Errorf("grad_y[%d] = %f, want %f", i, gradY[i], x.Raw().AsFloat64()[i])
		}
	}
}

func TestMulBackward_SameTensorTwice(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	// y = x², dy/dx = 2x
	x, _ := tensor.FromSlice([]float32{3}, tensor.Shape{1}, backend)
	y := x.Mul(x)

	grads := autodiff.Backward(y, backend)

	got := grads[x.Raw()].AsFloat32()[0]
	if math.Abs(float64(got-6)) > epsilon {
		t.Errorf("grad = %f, want 6", got)
	}
}

func TestMulBackward_Broadcast(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	y, _ := tensor.FromSlice([]float64{10, 20, 30}, tensor.Shape{3}, backend)
	z := x.Mul(y)

	grads := autodiff.Backward(z, backend)

	// grad_x broadcasts y over rows.
	gradX := grads[x.Raw()].AsFloat64()
	wantX := []float64{10, 20, 30, 10, 20, 30}
	for i, want := range wantX {
		if gradX[i] != want {
			t.Errorf("grad_x[%d] = %f, want %f", i, gradX[i], want)
		}
	}

	// grad_y sums x over the broadcast dimension.
	gradY := grads[y.Raw()]
	if !gradY.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("grad_y shape = %v, want [3]", gradY.Shape())
	}
	wantY := []float64{5, 7, 9}
	for i, want := range wantY {
		if gradY.AsFloat64()[i] != want {
			t.Errorf("grad_y[%d] = %f, want %f", i, gradY.AsFloat64()[i], want)
		}
	}
}

func TestMulBackward_ComplexConjugate(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]complex128{1 + 2i, 3 - 1i}, tensor.Shape{2}, backend)
	y, _ := tensor.FromSlice([]complex128{2 - 1i, 1 + 1i}, tensor.Shape{2}, backend)
	z := x.Mul(y)

	grads := autodiff.Backward(z, backend)

	// grad_x = seed * conj(y) with seed = 1+0i
	gradX := grads[x.Raw()].AsComplex128()
	wantX := []complex128{2 + 1i, 1 - 1i}
	for i, want := range wantX {
		if gradX[i] != want {
			t.Errorf("grad_x[%d] = %v, want %v", i, gradX[i], want)
		}
	}

	gradY := grads[y.Raw()].AsComplex128()
	wantY := []complex128{1 - 2i, 3 + 1i}
	for i, want := range wantY {
		if gradY[i] != want {
			t.Errorf("grad_y[%d] = %v, want %v", i, gradY[i], want)
		}
	}
}

func TestMulBackward_RealTimesComplex(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float64{2, 3}, tensor.Shape{2}, backend)
	y, _ := tensor.FromSlice([]complex128{1 + 1i, 2 - 1i}, tensor.Shape{2}, backend)

	z := backend.Mul(x.Raw(), y.Raw())
	if z.DType() != tensor.Complex128 {
		t.Fatalf("output dtype = %s, want complex128", z.DType())
	}

	out := tensor.New[complex128](z, backend)
	grads := autodiff.Backward(out, backend)

	// The real operand receives real(seed * conj(y)).
	gradX := grads[x.Raw()]
	if gradX.DType() != tensor.Float64 {
		t.Fatalf("grad_x dtype = %s, want float64", gradX.DType())
	}
	wantX := []float64{1, 2}
	for i, want := range wantX {
		if gradX.AsFloat64()[i] != want {
			t.Errorf("grad_x[%d] = %f, want %f", i, gradX.AsFloat64()[i], want)
		}
	}

	gradY := grads[y.Raw()].AsComplex128()
	wantY := []complex128{2, 3}
	for i, want := range wantY {
		if gradY[i] != want {
			t.Errorf("grad_y[%d] = %v, want %v", i, gradY[i], want)
		}
	}
}

func TestBackwardWithGrad(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float64{2, 3}, tensor.Shape{2}, backend)
	y, _ := tensor.FromSlice([]float64{4, 5}, tensor.Shape{2}, backend)
	z := x.Mul(y)

	seed, err := tensor.NewRaw(tensor.Shape{2}, tensor.Float64, backend.Device())
	if err != nil {
		t.Fatal(err)
	}
	copy(seed.AsFloat64(), []float64{10, 100})

	grads := autodiff.BackwardWithGrad(z, seed, backend)

	gradX := grads[x.Raw()].AsFloat64()
	wantX := []float64{40, 500}
	for i, want := range wantX {
		if gradX[i] != want {
			t.Errorf("grad_x[%d] = %f, want %f", i, gradX[i], want)
		}
	}
}

func TestReshapeBackward(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{6}, backend)
	reshaped := backend.Reshape(x.Raw(), tensor.Shape{2, 3})
	y, _ := tensor.FromSlice([]float64{1, 1, 1, 2, 2, 2}, tensor.Shape{2, 3}, backend)
	z := backend.Mul(reshaped, y.Raw())

	out := tensor.New[float64](z, backend)
	grads := autodiff.Backward(out, backend)

	gradX := grads[x.Raw()]
	if !gradX.Shape().Equal(tensor.Shape{6}) {
		t.Fatalf("grad shape = %v, want [6]", gradX.Shape())
	}
	for i, want := range []float64{1, 1, 1, 2, 2, 2} {
		if gradX.AsFloat64()[i] != want {
			t.Errorf("grad[%d] = %f, want %f", i, gradX.AsFloat64()[i], want)
		}
	}
}

func TestReLUBackward(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float32{-1, 0, 2, -3, 4}, tensor.Shape{5}, backend)
	y := backend.ReLU(x.Raw())

	out := tensor.New[float32](y, backend)
	grads := autodiff.Backward(out, backend)

	gradX := grads[x.Raw()].AsFloat32()
	want := []float32{0, 0, 1, 0, 1}
	for i, w := range want {
		if gradX[i] != w {
			t.Errorf("grad[%d] = %f, want %f", i, gradX[i], w)
		}
	}
}

func TestSumBackward(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	s := backend.Sum(x.Raw())

	out := tensor.New[float64](s, backend)
	grads := autodiff.Backward(out, backend)

	gradX := grads[x.Raw()]
	if !gradX.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("grad shape = %v, want [2 2]", gradX.Shape())
	}
	for i := 0; i < 4; i++ {
		if gradX.AsFloat64()[i] != 1 {
			t.Errorf("grad[%d] = %f, want 1", i, gradX.AsFloat64()[i])
		}
	}
}

func TestChainRule(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	// z = (x*y) + x  =>  dz/dx = y + 1, dz/dy = x
	x, _ := tensor.FromSlice([]float64{2}, tensor.Shape{1}, backend)
	y, _ := tensor.FromSlice([]float64{5}, tensor.Shape{1}, backend)
	prod := backend.Mul(x.Raw(), y.Raw())
	z := backend.Add(prod, x.Raw())

	out := tensor.New[float64](z, backend)
	grads := autodiff.Backward(out, backend)

	if got := grads[x.Raw()].AsFloat64()[0]; got != 6 {
		t.Errorf("dz/dx = %f, want 6", got)
	}
	if got := grads[y.Raw()].AsFloat64()[0]; got != 2 {
		t.Errorf("dz/dy = %f, want 2", got)
	}
}
