package tensor

import (
	"math"

	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
)

// Float32ToBFloat16Bits encodes a float32 as the 16 high-order bits of its
// IEEE 754 representation, rounding to nearest even. This is the brain-float
// encoding used to feed bfloat16 kernels from float32 reference data.
func Float32ToBFloat16Bits(f float32) uint16 {
	bits := math.Float32bits(f)
	// Round to nearest even on the truncated 16 bits.
	rounding := uint32(0x7fff + (bits>>16)&1)
	return uint16((bits + rounding) >> 16)
}

// BFloat16BitsToFloat32 decodes the 16-bit brain-float encoding back to float32.
func BFloat16BitsToFloat32(u uint16) float32 {
	return math.Float32frombits(uint32(u) << 16)
}

// ToBFloat16 converts a float32 slice to bfloat16 storage values.
func ToBFloat16(src []float32) []bfloat16.BFloat16 {
	dst := make([]bfloat16.BFloat16, len(src))
	for i, v := range src {
		dst[i] = bfloat16.FromFloat32(v)
	}
	return dst
}

// FromBFloat16 widens bfloat16 storage values back to float32.
func FromBFloat16(src []bfloat16.BFloat16) []float32 {
	dst := make([]float32, len(src))
	for i, v := range src {
		dst[i] = v.Float32()
	}
	return dst
}

// ToFloat16 converts a float32 slice to IEEE half-precision storage values.
func ToFloat16(src []float32) []float16.Float16 {
	dst := make([]float16.Float16, len(src))
	for i, v := range src {
		dst[i] = float16.Fromfloat32(v)
	}
	return dst
}

// FromFloat16 widens half-precision storage values back to float32.
func FromFloat16(src []float16.Float16) []float32 {
	dst := make([]float32, len(src))
	for i, v := range src {
		dst[i] = v.Float32()
	}
	return dst
}
