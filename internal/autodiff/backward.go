package autodiff

import (
	"fmt"

	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// BackwardCapable is a backend that can replay a gradient tape.
// AutodiffBackend implements this interface.
type BackwardCapable interface {
	tensor.Backend
	GetTape() *GradientTape
}

// GetTape returns the gradient tape (implements BackwardCapable).
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Backward computes gradients of t with respect to every tensor on the tape,
// seeding the output gradient with ones.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x := tensor.Ones[float32](tensor.Shape{2}, backend)
//	y := x.Mul(x)
//	grads := autodiff.Backward(y, backend)
//	grad := grads[x.Raw()]
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return BackwardWithGrad(t, OnesLike(t.Raw(), backend), backend)
}

// BackwardWithGrad computes gradients with a caller-supplied output gradient.
// The seed must match the output's shape and dtype.
func BackwardWithGrad[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], outputGrad *tensor.RawTensor, backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.GetTape()
	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget to call Tape().StartRecording()?)")
	}
	if !outputGrad.Shape().Equal(t.Shape()) {
		panic(fmt.Sprintf("backward: output gradient shape %v does not match output shape %v",
			outputGrad.Shape(), t.Shape()))
	}

	seeds := map[*tensor.RawTensor]*tensor.RawTensor{t.Raw(): outputGrad}
	return tape.Backward(seeds, backend)
}

// OnesLike builds the canonical seed gradient: ones in the shape and dtype
// of the given tensor. Complex dtypes seed with 1+0i.
func OnesLike(t *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	grad, err := tensor.NewRaw(t.Shape(), t.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("backward: failed to create output gradient: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		data := grad.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float16:
		data := grad.AsFloat16()
		for i := range data {
			data[i] = float16.Fromfloat32(1)
		}
	case tensor.BFloat16:
		data := grad.AsBFloat16()
		for i := range data {
			data[i] = bfloat16.FromFloat32(1)
		}
	case tensor.Float64:
		data := grad.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	case tensor.Complex64:
		data := grad.AsComplex64()
		for i := range data {
			data[i] = 1
		}
	case tensor.Complex128:
		data := grad.AsComplex128()
		for i := range data {
			data[i] = 1
		}
	default:
		panic(fmt.Sprintf("backward: unsupported output dtype %s", t.DType()))
	}

	return grad
}
