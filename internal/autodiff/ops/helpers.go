package ops

// Shared gradient plumbing for the op implementations.

import (
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// reduceBroadcast reduces a gradient tensor back to the target shape after a
// broadcast in the forward pass.
//
// Example:
//
//	Forward: a[3,1] * b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	// Clone on the no-op path so inplace ops downstream cannot corrupt a
	// gradient shared with another graph edge.
	if gradShape.Equal(targetShape) {
		return grad.Clone()
	}

	if len(targetShape) == 0 {
		return backend.Sum(grad)
	}

	// Broadcasting aligns shapes from the right: first collapse the extra
	// leading dimensions, then the dimensions the target holds at size 1.
	result := grad
	for len(result.Shape()) > len(targetShape) {
		result = backend.SumDim(result, 0, false)
	}
	for i, dim := range targetShape {
		if dim == 1 && result.Shape()[i] > 1 {
			result = backend.SumDim(result, i, true)
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}
	return result
}

// matchDType casts a gradient to the dtype of the forward input. A complex
// gradient flowing into a real input is projected onto its real part first,
// so real inputs of mixed real/complex products receive real gradients.
func matchDType(grad *tensor.RawTensor, want tensor.DataType, backend tensor.Backend) *tensor.RawTensor {
	if grad.DType() == want {
		return grad
	}
	if grad.DType().IsComplex() && !want.IsComplex() {
		grad = backend.Real(grad)
	}
	if grad.DType() == want {
		return grad
	}
	return backend.Cast(grad, want)
}
