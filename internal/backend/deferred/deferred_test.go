package deferred

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadamard-ml/hadamard/internal/backend/cpu"
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

func newRaw(t *testing.T, shape tensor.Shape, data []float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	copy(raw.AsFloat32(), data)
	return raw
}

func TestDeferredRecordsWithoutExecuting(t *testing.T) {
	backend := New(cpu.New())

	a := newRaw(t, tensor.Shape{3}, []float32{1, 2, 3})
	b := newRaw(t, tensor.Shape{3}, []float32{4, 5, 6})

	result := backend.Mul(a, b)

	assert.Equal(t, 1, backend.Len())
	assert.True(t, backend.Pending(result), "result should be a placeholder before Run")
	assert.Equal(t, tensor.Shape{3}, result.Shape())

	require.NoError(t, backend.Run())

	assert.False(t, backend.Pending(result))
	assert.Equal(t, []float32{4, 10, 18}, result.AsFloat32())
	assert.Equal(t, 0, backend.Len(), "program should be consumed by Run")
}

func TestDeferredChainedProgram(t *testing.T) {
	backend := New(cpu.New())

	a := newRaw(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
	b := newRaw(t, tensor.Shape{2, 2}, []float32{10, 10, 10, 10})

	// (a * b) summed to a scalar, recorded as two nodes.
	prod := backend.Mul(a, b)
	total := backend.Sum(prod)

	assert.Equal(t, 2, backend.Len())
	require.NoError(t, backend.Run())

	assert.Equal(t, float32(100), total.AsFloat32()[0])
}

func TestDeferredBroadcastShape(t *testing.T) {
	backend := New(cpu.New())

	a := newRaw(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	b := newRaw(t, tensor.Shape{3}, []float32{1, 10, 100})

	result := backend.Mul(a, b)
	assert.Equal(t, tensor.Shape{2, 3}, result.Shape(), "placeholder shape known before Run")

	require.NoError(t, backend.Run())
	assert.Equal(t, []float32{1, 20, 300, 4, 50, 600}, result.AsFloat32())
}

func TestDeferredReshapeAndSumDim(t *testing.T) {
	backend := New(cpu.New())

	a := newRaw(t, tensor.Shape{6}, []float32{1, 2, 3, 4, 5, 6})

	reshaped := backend.Reshape(a, tensor.Shape{2, 3})
	summed := backend.SumDim(reshaped, 1, false)
	assert.Equal(t, tensor.Shape{2}, summed.Shape())

	require.NoError(t, backend.Run())
	assert.Equal(t, []float32{6, 15}, summed.AsFloat32())
}

func TestDeferredName(t *testing.T) {
	backend := New(cpu.New())
	assert.Equal(t, "Deferred(CPU)", backend.Name())
}
