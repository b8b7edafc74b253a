package ops

import "github.com/hadamard-ml/hadamard/internal/tensor"

// SubOp represents an element-wise subtraction: output = a - b.
//
// Backward pass:
//   - grad_a = outputGrad
//   - grad_b = -outputGrad
type SubOp struct {
	inputs []*tensor.RawTensor // [a, b]
	output *tensor.RawTensor
}

// NewSubOp creates a new SubOp.
func NewSubOp(a, b, output *tensor.RawTensor) *SubOp {
	return &SubOp{
		inputs: []*tensor.RawTensor{a, b},
		output: output,
	}
}

// Backward computes input gradients for subtraction.
func (op *SubOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]

	gradA := matchDType(reduceBroadcast(outputGrad, a.Shape(), backend), a.DType(), backend)

	negGrad := backend.MulScalar(outputGrad, negOne(outputGrad.DType()))
	gradB := matchDType(reduceBroadcast(negGrad, b.Shape(), backend), b.DType(), backend)

	return []*tensor.RawTensor{gradA, gradB}
}

func negOne(dtype tensor.DataType) any {
	switch dtype {
	case tensor.Complex64:
		return complex64(-1)
	case tensor.Complex128:
		return complex128(-1)
	case tensor.Float64:
		return float64(-1)
	default:
		return float32(-1)
	}
}

// Inputs returns the input tensors [a, b].
func (op *SubOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor a - b.
func (op *SubOp) Output() *tensor.RawTensor {
	return op.output
}
