package ops

import "github.com/hadamard-ml/hadamard/internal/tensor"

// MulScalarOp records multiplication by a constant: output = x * scalar.
//
// Backward pass: grad_x = outputGrad * conj(scalar).
type MulScalarOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scalar any
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(input, output *tensor.RawTensor, scalar any) *MulScalarOp {
	return &MulScalarOp{input: input, output: output, scalar: scalar}
}

// Backward scales the output gradient by the conjugated constant.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := backend.MulScalar(outputGrad, conjScalar(op.scalar))
	return []*tensor.RawTensor{matchDType(grad, op.input.DType(), backend)}
}

func conjScalar(scalar any) any {
	switch v := scalar.(type) {
	case complex64:
		return complex(real(v), -imag(v))
	case complex128:
		return complex(real(v), -imag(v))
	default:
		return scalar
	}
}

// Inputs returns the input tensor.
func (op *MulScalarOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the scaled tensor.
func (op *MulScalarOp) Output() *tensor.RawTensor {
	return op.output
}
