package hub_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadamard-ml/hadamard/internal/backend/cpu"
	"github.com/hadamard-ml/hadamard/internal/hub"
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

func TestRegistryLoad(t *testing.T) {
	backend := cpu.New()
	registry := hub.DefaultModels[*cpu.CPUBackend]()

	model, err := registry.Load(hub.ConvReLU, backend)
	require.NoError(t, err)
	require.NotNil(t, model)

	_, err = registry.Load("does-not-exist", backend)
	assert.ErrorContains(t, err, "unknown model")
	assert.ErrorContains(t, err, hub.ConvReLU, "error should list available models")
}

func TestRegistryNames(t *testing.T) {
	registry := hub.DefaultModels[*cpu.CPUBackend]()
	assert.Equal(t, []string{hub.ConvReLU}, registry.Names())
}

func TestRegistryDuplicatePanics(t *testing.T) {
	registry := hub.DefaultModels[*cpu.CPUBackend]()
	assert.Panics(t, func() {
		registry.Register(hub.ConvReLU, hub.NewConvReLU[*cpu.CPUBackend])
	})
}

func TestConvReLUForward(t *testing.T) {
	backend := cpu.New()
	registry := hub.DefaultModels[*cpu.CPUBackend]()

	model, err := registry.Load(hub.ConvReLU, backend)
	require.NoError(t, err)

	input := tensor.Uniform[float32](tensor.Shape{2, 3, 32, 32}, -1, 1, backend)
	output := model.Forward(input)

	// Stride-2 halves the spatial dimensions.
	assert.Equal(t, tensor.Shape{2, hub.ConvReLUChannels, 16, 16}, output.Shape())

	for i, v := range output.Raw().AsFloat32() {
		if v < 0 {
			t.Fatalf("output[%d] = %f, expected non-negative after ReLU", i, v)
		}
	}
}

func TestConvReLUOddInput(t *testing.T) {
	backend := cpu.New()

	model := hub.NewConvReLU(backend)
	input := tensor.Uniform[float32](tensor.Shape{1, 3, 15, 15}, -1, 1, backend)
	output := model.Forward(input)

	// (15 + 2 - 3)/2 + 1 = 8 = (15+1)/2
	assert.Equal(t, tensor.Shape{1, hub.ConvReLUChannels, 8, 8}, output.Shape())
}

func TestConvReLUParameterCount(t *testing.T) {
	backend := cpu.New()
	model := hub.NewConvReLU(backend)

	params := model.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, tensor.Shape{hub.ConvReLUChannels, 3, 3, 3}, params[0].Tensor().Shape())
	assert.Equal(t, tensor.Shape{hub.ConvReLUChannels}, params[1].Tensor().Shape())
}
