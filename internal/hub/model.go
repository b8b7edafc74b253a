package hub

import (
	"github.com/hadamard-ml/hadamard/internal/nn"
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// ConvReLU is the name of the downsampling conv fixture.
const ConvReLU = "conv_relu"

// ConvReLUChannels is the fixture's output channel count.
const ConvReLUChannels = 8

// NewConvReLU builds the standard fixture: a 3x3 convolution over RGB input
// with stride 2 and padding 1, followed by ReLU. An input of [N, 3, H, W]
// produces [N, 8, (H+1)/2, (W+1)/2].
func NewConvReLU[B tensor.Backend](backend B) nn.Module[B] {
	return nn.NewSequential[B](
		nn.NewConv2D(3, ConvReLUChannels, 3, 3, 2, 1, true, backend),
		nn.NewReLU[B](),
	)
}

// DefaultModels registers the built-in fixtures on a fresh registry.
func DefaultModels[B tensor.Backend]() *Registry[B] {
	r := NewRegistry[B]()
	r.Register(ConvReLU, NewConvReLU[B])
	return r
}
