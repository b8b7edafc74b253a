package cpu

import (
	"fmt"

	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// Cast converts the tensor to a different data type.
//
// Real values route through a float64 intermediate; complex values keep their
// imaginary component when the target is complex and drop it (real part) when
// the target is real. Casting bool is not supported.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	// No-op if same dtype
	if x.DType() == dtype {
		return x
	}

	result, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	// Widen every source element to complex128, then narrow to the target.
	// Correct for all supported dtype pairs and keeps the dispatch to two
	// switches instead of one per pair.
	n := x.NumElements()
	wide := make([]complex128, n)

	switch x.DType() {
	case tensor.Float32:
		for i, v := range x.AsFloat32() {
			wide[i] = complex(float64(v), 0)
		}
	case tensor.Float64:
		for i, v := range x.AsFloat64() {
			wide[i] = complex(v, 0)
		}
	case tensor.Float16:
		for i, v := range x.AsFloat16() {
			wide[i] = complex(float64(v.Float32()), 0)
		}
	case tensor.BFloat16:
		for i, v := range x.AsBFloat16() {
			wide[i] = complex(float64(v.Float32()), 0)
		}
	case tensor.Int32:
		for i, v := range x.AsInt32() {
			wide[i] = complex(float64(v), 0)
		}
	case tensor.Int64:
		for i, v := range x.AsInt64() {
			wide[i] = complex(float64(v), 0)
		}
	case tensor.Uint8:
		for i, v := range x.AsUint8() {
			wide[i] = complex(float64(v), 0)
		}
	case tensor.Complex64:
		for i, v := range x.AsComplex64() {
			wide[i] = complex128(v)
		}
	case tensor.Complex128:
		copy(wide, x.AsComplex128())
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}

	switch dtype {
	case tensor.Float32:
		dst := result.AsFloat32()
		for i, v := range wide {
			dst[i] = float32(real(v))
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		for i, v := range wide {
			dst[i] = real(v)
		}
	case tensor.Float16:
		dst := result.AsFloat16()
		for i, v := range wide {
			dst[i] = float16.Fromfloat32(float32(real(v)))
		}
	case tensor.BFloat16:
		dst := result.AsBFloat16()
		for i, v := range wide {
			dst[i] = bfloat16.FromFloat32(float32(real(v)))
		}
	case tensor.Int32:
		dst := result.AsInt32()
		for i, v := range wide {
			dst[i] = int32(real(v))
		}
	case tensor.Int64:
		dst := result.AsInt64()
		for i, v := range wide {
			dst[i] = int64(real(v))
		}
	case tensor.Uint8:
		dst := result.AsUint8()
		for i, v := range wide {
			dst[i] = uint8(real(v))
		}
	case tensor.Complex64:
		dst := result.AsComplex64()
		for i, v := range wide {
			dst[i] = complex64(v)
		}
	case tensor.Complex128:
		copy(result.AsComplex128(), wide)
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", dtype))
	}

	return result
}
