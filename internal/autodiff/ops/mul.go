package ops

import "github.com/hadamard-ml/hadamard/internal/tensor"

// MulOp represents an element-wise multiplication: output = a * b.
//
// Backward pass (Wirtinger convention, identical to the real rule when the
// operands are real):
//   - grad_a = outputGrad * conj(b)
//   - grad_b = outputGrad * conj(a)
//
// When one operand is real and the other complex, the complex gradient is
// projected onto its real part before flowing into the real operand.
type MulOp struct {
	inputs []*tensor.RawTensor // [a, b]
	output *tensor.RawTensor   // a * b
}

// NewMulOp creates a new MulOp.
func NewMulOp(a, b, output *tensor.RawTensor) *MulOp {
	return &MulOp{
		inputs: []*tensor.RawTensor{a, b},
		output: output,
	}
}

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]

	gradA := backend.Mul(outputGrad, backend.Conj(b))
	gradA = reduceBroadcast(gradA, a.Shape(), backend)
	gradA = matchDType(gradA, a.DType(), backend)

	gradB := backend.Mul(outputGrad, backend.Conj(a))
	gradB = reduceBroadcast(gradB, b.Shape(), backend)
	gradB = matchDType(gradB, b.DType(), backend)

	return []*tensor.RawTensor{gradA, gradB}
}

// Inputs returns the input tensors [a, b].
func (op *MulOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor a * b.
func (op *MulOp) Output() *tensor.RawTensor {
	return op.output
}
