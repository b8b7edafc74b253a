package cpu

import (
	"fmt"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// Conj computes the element-wise complex conjugate.
// For real dtypes conjugation is the identity, so a shared view is returned.
func (cpu *CPUBackend) Conj(x *tensor.RawTensor) *tensor.RawTensor {
	if !x.DType().IsComplex() {
		return x.Clone()
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conj: %v", err))
	}

	switch x.DType() {
	case tensor.Complex64:
		src, dst := x.AsComplex64(), result.AsComplex64()
		for i, v := range src {
			dst[i] = complex(real(v), -imag(v))
		}
	case tensor.Complex128:
		src, dst := x.AsComplex128(), result.AsComplex128()
		for i, v := range src {
			dst[i] = complex(real(v), -imag(v))
		}
	}

	return result
}

// Real projects a complex tensor onto its real component dtype
// (complex64 → float32, complex128 → float64).
// For real dtypes a shared view is returned.
func (cpu *CPUBackend) Real(x *tensor.RawTensor) *tensor.RawTensor {
	if !x.DType().IsComplex() {
		return x.Clone()
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType().RealType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("real: %v", err))
	}

	switch x.DType() {
	case tensor.Complex64:
		src, dst := x.AsComplex64(), result.AsFloat32()
		for i, v := range src {
			dst[i] = real(v)
		}
	case tensor.Complex128:
		src, dst := x.AsComplex128(), result.AsFloat64()
		for i, v := range src {
			dst[i] = real(v)
		}
	}

	return result
}
