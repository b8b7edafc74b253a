package ops

import "github.com/hadamard-ml/hadamard/internal/tensor"

// ConjOp records a complex conjugation: output = conj(x).
//
// Backward pass: grad_x = conj(outputGrad). On real dtypes both directions
// are the identity.
type ConjOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewConjOp creates a new ConjOp.
func NewConjOp(input, output *tensor.RawTensor) *ConjOp {
	return &ConjOp{input: input, output: output}
}

// Backward conjugates the output gradient.
func (op *ConjOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Conj(outputGrad)}
}

// Inputs returns the input tensor.
func (op *ConjOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns conj(x).
func (op *ConjOp) Output() *tensor.RawTensor {
	return op.output
}

// RealOp records a projection onto the real part: output = real(x).
//
// Backward pass: the real gradient is lifted back into the complex input
// dtype with a zero imaginary part.
type RealOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewRealOp creates a new RealOp.
func NewRealOp(input, output *tensor.RawTensor) *RealOp {
	return &RealOp{input: input, output: output}
}

// Backward lifts the gradient back into the input dtype.
func (op *RealOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := outputGrad
	if grad.DType() != op.input.DType() {
		grad = backend.Cast(grad, op.input.DType())
	} else {
		grad = grad.Clone()
	}
	return []*tensor.RawTensor{grad}
}

// Inputs returns the input tensor.
func (op *RealOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns real(x).
func (op *RealOp) Output() *tensor.RawTensor {
	return op.output
}
