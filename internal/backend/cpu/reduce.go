package cpu

import (
	"fmt"

	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// Sum reduces the tensor to a 0-D scalar sum.
// The 16-bit float formats accumulate in float32.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sum: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		result.AsFloat32()[0] = sumAll(x.AsFloat32())
	case tensor.Float64:
		result.AsFloat64()[0] = sumAll(x.AsFloat64())
	case tensor.Complex64:
		result.AsComplex64()[0] = sumAll(x.AsComplex64())
	case tensor.Complex128:
		result.AsComplex128()[0] = sumAll(x.AsComplex128())
	case tensor.Float16:
		var acc float32
		for _, v := range x.AsFloat16() {
			acc += v.Float32()
		}
		result.AsFloat16()[0] = float16.Fromfloat32(acc)
	case tensor.BFloat16:
		var acc float32
		for _, v := range x.AsBFloat16() {
			acc += v.Float32()
		}
		result.AsBFloat16()[0] = bfloat16.FromFloat32(acc)
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return result
}

// SumDim sums the tensor along the given dimension.
// With keepDim the reduced dimension stays with size 1, otherwise it is
// removed from the shape.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("sumdim: invalid dimension %d for shape %v", dim, shape))
	}

	outShape := shape.Clone()
	outShape[dim] = 1

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("sumdim: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		sumAlongDim(x.AsFloat32(), result.AsFloat32(), shape, dim)
	case tensor.Float64:
		sumAlongDim(x.AsFloat64(), result.AsFloat64(), shape, dim)
	case tensor.Complex64:
		sumAlongDim(x.AsComplex64(), result.AsComplex64(), shape, dim)
	case tensor.Complex128:
		sumAlongDim(x.AsComplex128(), result.AsComplex128(), shape, dim)
	case tensor.Float16:
		wide := make([]float32, len(result.AsFloat16()))
		sumAlongDimWiden(x.AsFloat16(), wide, shape, dim, float16.Float16.Float32)
		dst := result.AsFloat16()
		for i, v := range wide {
			dst[i] = float16.Fromfloat32(v)
		}
	case tensor.BFloat16:
		wide := make([]float32, len(result.AsBFloat16()))
		sumAlongDimWiden(x.AsBFloat16(), wide, shape, dim, bfloat16.BFloat16.Float32)
		dst := result.AsBFloat16()
		for i, v := range wide {
			dst[i] = bfloat16.FromFloat32(v)
		}
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s", x.DType()))
	}

	if !keepDim {
		squeezed := make(tensor.Shape, 0, len(outShape)-1)
		for i, d := range outShape {
			if i != dim {
				squeezed = append(squeezed, d)
			}
		}
		return cpu.Reshape(result, squeezed)
	}
	return result
}

func sumAll[T number](src []T) T {
	var acc T
	for _, v := range src {
		acc += v
	}
	return acc
}

// sumAlongDim accumulates src into dst, where dst holds the shape with
// dimension dim reduced to 1.
func sumAlongDim[T number](src, dst []T, shape tensor.Shape, dim int) {
	srcStrides := shape.ComputeStrides()
	outShape := shape.Clone()
	outShape[dim] = 1
	outStrides := outShape.ComputeStrides()

	for i := range src {
		rem := i
		reducedIdx := 0
		for d := 0; d < len(shape); d++ {
			coord := rem / srcStrides[d]
			rem %= srcStrides[d]
			if d != dim {
				reducedIdx += coord * outStrides[d]
			}
		}
		dst[reducedIdx] += src[i]
	}
}

// sumAlongDimWiden is sumAlongDim for 16-bit storage types, accumulating in
// float32 through the given widening function.
func sumAlongDimWiden[S any](src []S, dst []float32, shape tensor.Shape, dim int, widen func(S) float32) {
	srcStrides := shape.ComputeStrides()
	outShape := shape.Clone()
	outShape[dim] = 1
	outStrides := outShape.ComputeStrides()

	for i := range src {
		rem := i
		reducedIdx := 0
		for d := 0; d < len(shape); d++ {
			coord := rem / srcStrides[d]
			rem %= srcStrides[d]
			if d != dim {
				reducedIdx += coord * outStrides[d]
			}
		}
		dst[reducedIdx] += widen(src[i])
	}
}
