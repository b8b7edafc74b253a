package cpu

import (
	"fmt"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// Transpose permutes the tensor's dimensions.
// With no axes the dimension order is reversed.
// The copy is dtype-agnostic: elements move as raw byte groups.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: got %d axes for %dD tensor", len(axes), ndim))
	}

	outShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: axis %d out of range for shape %v", ax, shape))
		}
		outShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(outShape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	elemSize := t.DType().Size()
	srcStrides := shape.ComputeStrides()
	outStrides := outShape.ComputeStrides()
	src := t.Data()
	dst := result.Data()

	n := t.NumElements()
	for i := 0; i < n; i++ {
		// Decompose the destination index, map coordinates through axes.
		rem := i
		srcIdx := 0
		for d := 0; d < ndim; d++ {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			srcIdx += coord * srcStrides[axes[d]]
		}
		copy(dst[i*elemSize:(i+1)*elemSize], src[srcIdx*elemSize:(srcIdx+1)*elemSize])
	}

	return result
}
