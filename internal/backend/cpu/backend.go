// Package cpu implements the pure-Go CPU backend for tensor operations.
package cpu

import (
	"fmt"

	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opAdd, a, b)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opSub, a, b)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opMul, a, b)
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary(opDiv, a, b)
}

// binary runs one elementwise binary operation. Operands of different dtypes
// are promoted to a common dtype first; the result takes the broadcasted
// shape. Same-shape operands with a uniquely owned lhs buffer are computed
// inplace.
func (cpu *CPUBackend) binary(op binOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		target := tensor.PromoteTypes(a.DType(), b.DType())
		a = cpu.Cast(a, target)
		b = cpu.Cast(b, target)
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	sameShape := a.Shape().Equal(b.Shape())

	var result *tensor.RawTensor
	if sameShape && a.IsUnique() {
		// Inplace fast path: write into a.
		result = a
	} else {
		result, err = tensor.NewRaw(outShape, a.DType(), cpu.device)
		if err != nil {
			panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
		}
	}

	switch a.DType() {
	case tensor.Float32:
		execBinary(pickFn[float32](op), result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, sameShape)
	case tensor.Float64:
		execBinary(pickFn[float64](op), result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, sameShape)
	case tensor.Float16:
		execBinaryFloat16(pickFn[float32](op), result.AsFloat16(), a.AsFloat16(), b.AsFloat16(), a.Shape(), b.Shape(), outShape, sameShape)
	case tensor.BFloat16:
		execBinaryBFloat16(pickFn[float32](op), result.AsBFloat16(), a.AsBFloat16(), b.AsBFloat16(), a.Shape(), b.Shape(), outShape, sameShape)
	case tensor.Complex64:
		execBinary(pickFn[complex64](op), result.AsComplex64(), a.AsComplex64(), b.AsComplex64(), a.Shape(), b.Shape(), outShape, sameShape)
	case tensor.Complex128:
		execBinary(pickFn[complex128](op), result.AsComplex128(), a.AsComplex128(), b.AsComplex128(), a.Shape(), b.Shape(), outShape, sameShape)
	case tensor.Int32:
		execBinary(pickFn[int32](op), result.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, sameShape)
	case tensor.Int64:
		execBinary(pickFn[int64](op), result.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, sameShape)
	case tensor.Uint8:
		execBinary(pickFn[uint8](op), result.AsUint8(), a.AsUint8(), b.AsUint8(), a.Shape(), b.Shape(), outShape, sameShape)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}

	return result
}

// MulScalar multiplies every element by a scalar.
// The scalar is converted to the tensor's dtype.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("mulscalar: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		c := toFloat64(scalar)
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			dst[i] = v * float32(c)
		}
	case tensor.Float64:
		c := toFloat64(scalar)
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			dst[i] = v * c
		}
	case tensor.Float16:
		c := float32(toFloat64(scalar))
		src, dst := x.AsFloat16(), result.AsFloat16()
		for i, v := range src {
			dst[i] = float16.Fromfloat32(v.Float32() * c)
		}
	case tensor.BFloat16:
		c := float32(toFloat64(scalar))
		src, dst := x.AsBFloat16(), result.AsBFloat16()
		for i, v := range src {
			dst[i] = bfloat16.FromFloat32(v.Float32() * c)
		}
	case tensor.Complex64:
		c := toComplex128(scalar)
		src, dst := x.AsComplex64(), result.AsComplex64()
		for i, v := range src {
			dst[i] = v * complex64(c)
		}
	case tensor.Complex128:
		c := toComplex128(scalar)
		src, dst := x.AsComplex128(), result.AsComplex128()
		for i, v := range src {
			dst[i] = v * c
		}
	default:
		panic(fmt.Sprintf("mulscalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// Reshape returns a view of the tensor with a new shape.
// The number of elements must match.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	view, err := t.WithShape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return view
}

// ReLU computes element-wise max(0, x).
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("relu: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			if v > 0 {
				dst[i] = v
			}
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			if v > 0 {
				dst[i] = v
			}
		}
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

func toFloat64(scalar any) float64 {
	switch v := scalar.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		panic(fmt.Sprintf("unsupported scalar type %T", scalar))
	}
}

func toComplex128(scalar any) complex128 {
	switch v := scalar.(type) {
	case complex64:
		return complex128(v)
	case complex128:
		return v
	default:
		return complex(toFloat64(scalar), 0)
	}
}
