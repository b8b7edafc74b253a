package ops

import "github.com/hadamard-ml/hadamard/internal/tensor"

// DivOp represents an element-wise division: output = a / b.
//
// Backward pass:
//   - grad_a = outputGrad * conj(1 / b)
//   - grad_b = -outputGrad * conj(a / b²)
type DivOp struct {
	inputs []*tensor.RawTensor // [a, b]
	output *tensor.RawTensor   // a / b
}

// NewDivOp creates a new DivOp.
func NewDivOp(a, b, output *tensor.RawTensor) *DivOp {
	return &DivOp{
		inputs: []*tensor.RawTensor{a, b},
		output: output,
	}
}

// Backward computes input gradients for division.
func (op *DivOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]

	// grad_a = outputGrad / conj(b)
	conjB := backend.Conj(b)
	gradA := backend.Div(outputGrad, conjB)
	gradA = reduceBroadcast(gradA, a.Shape(), backend)
	gradA = matchDType(gradA, a.DType(), backend)

	// grad_b = -outputGrad * conj(a) / conj(b)²
	gradB := backend.Mul(outputGrad, backend.Conj(a))
	gradB = backend.Div(gradB, backend.Mul(conjB.Clone(), conjB))
	gradB = backend.MulScalar(gradB, negOne(gradB.DType()))
	gradB = reduceBroadcast(gradB, b.Shape(), backend)
	gradB = matchDType(gradB, b.DType(), backend)

	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors [a, b].
func (op *DivOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor a / b.
func (op *DivOp) Output() *tensor.RawTensor {
	return op.output
}
