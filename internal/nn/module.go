// Package nn implements neural network modules.
//
// The package provides the building blocks used by the model fixtures:
//   - Module interface: base interface for all components
//   - Parameter: trainable tensors
//   - Conv2D: 2D convolutional layer
//   - ReLU: rectified linear activation
//   - Sequential: container stacking modules
//
// Design follows PyTorch's nn.Module adapted for Go generics.
package nn

import (
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules compose into larger architectures:
//
//	model := nn.NewSequential[B](
//	    nn.NewConv2D(3, 8, 3, 3, 2, 1, true, backend),
//	    nn.NewReLU[B](),
//	)
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module,
	// including nested module parameters. Modules without trainable
	// state return an empty slice.
	Parameters() []*Parameter[B]
}
