package ops

import (
	"fmt"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// SumOp records a full reduction to a scalar.
//
// Backward pass: the scalar gradient is broadcast back over the input shape.
type SumOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor // scalar
}

// NewSumOp creates a new SumOp.
func NewSumOp(input, output *tensor.RawTensor) *SumOp {
	return &SumOp{input: input, output: output}
}

// Backward broadcasts the scalar gradient over the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	gradInput := broadcastTo(outputGrad, op.input.Shape(), backend)
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor.
func (op *SumOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the scalar sum.
func (op *SumOp) Output() *tensor.RawTensor {
	return op.output
}

// SumDimOp records a reduction along one dimension.
type SumDimOp struct {
	input   *tensor.RawTensor
	output  *tensor.RawTensor
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp.
func NewSumDimOp(input, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{input: input, output: output, dim: dim, keepDim: keepDim}
}

// Backward broadcasts the gradient along the reduced dimension.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := outputGrad
	if !op.keepDim {
		// Re-insert the reduced dimension so broadcasting lines up.
		shape := op.input.Shape().Clone()
		shape[op.dim] = 1
		grad = backend.Reshape(grad, shape)
	}
	gradInput := broadcastTo(grad, op.input.Shape(), backend)
	return []*tensor.RawTensor{gradInput}
}

// Inputs returns the input tensor.
func (op *SumDimOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the reduced tensor.
func (op *SumDimOp) Output() *tensor.RawTensor {
	return op.output
}

// broadcastTo expands grad to shape by adding it to a zero tensor of the
// target shape, reusing the backend's broadcasting rules.
func broadcastTo(grad *tensor.RawTensor, shape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	zeros, err := tensor.NewRaw(shape, grad.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("broadcastTo: %v", err))
	}
	return backend.Add(zeros, grad)
}
