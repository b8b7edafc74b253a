// Package ops defines the differentiable operations recorded on a gradient tape.
//
// Each operation captures its inputs and output during the forward pass and
// knows how to turn the output gradient into input gradients during the
// backward pass. Gradients follow the Wirtinger convention for complex
// dtypes: the multiply rule is grad_a = outputGrad * conj(b), which reduces
// to the familiar real rule when the imaginary parts are zero.
package ops

import "github.com/hadamard-ml/hadamard/internal/tensor"

// Operation is one node of the recorded computation graph.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns one gradient per input tensor, in Inputs() order.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
