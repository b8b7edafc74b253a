package ops

import "github.com/hadamard-ml/hadamard/internal/tensor"

// CastOp records a dtype conversion: output = cast(x, dtype).
//
// Backward pass: cast the gradient back to the input dtype. A complex
// gradient flowing into a real input keeps only its real part.
type CastOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewCastOp creates a new CastOp.
func NewCastOp(input, output *tensor.RawTensor) *CastOp {
	return &CastOp{input: input, output: output}
}

// Backward casts the gradient back to the input dtype.
func (op *CastOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{matchDType(outputGrad.Clone(), op.input.DType(), backend)}
}

// Inputs returns the input tensor.
func (op *CastOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the converted tensor.
func (op *CastOp) Output() *tensor.RawTensor {
	return op.output
}
