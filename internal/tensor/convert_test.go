package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBFloat16BitsRoundTrip(t *testing.T) {
	// Values exactly representable in bfloat16 survive the round trip.
	for _, v := range []float32{0, 1, -1, 0.5, 2, -0.25, 128, 1.0 / 256} {
		bits := Float32ToBFloat16Bits(v)
		assert.Equal(t, v, BFloat16BitsToFloat32(bits), "value %v", v)
	}
}

func TestBFloat16BitsRounding(t *testing.T) {
	// Encoding keeps 8 mantissa bits; relative error is bounded by 2^-8.
	for _, v := range []float32{0.1, 0.3, 1.7, 13.37, 1e-3, 1e3} {
		got := BFloat16BitsToFloat32(Float32ToBFloat16Bits(v))
		relErr := math.Abs(float64(got-v)) / math.Abs(float64(v))
		assert.LessOrEqual(t, relErr, 1.0/256, "value %v decoded as %v", v, got)
	}
}

func TestBFloat16BitsMatchesLibrary(t *testing.T) {
	// The bit-level helper and the bfloat16 storage type used by the
	// kernels must decode to values within one bfloat16 ulp of each other.
	src := []float32{0.1, 0.9, 0.33, 5.5, -2.25, 1e-2}
	stored := ToBFloat16(src)
	require.Len(t, stored, len(src))
	for i, v := range src {
		helper := float64(BFloat16BitsToFloat32(Float32ToBFloat16Bits(v)))
		lib := float64(stored[i].Float32())
		assert.InEpsilon(t, helper, lib, 1.0/128, "value %v", v)
	}
}

func TestFloat16RoundTrip(t *testing.T) {
	src := []float32{0, 1, -1, 0.5, 0.099975586, 2048}
	back := FromFloat16(ToFloat16(src))
	require.Len(t, back, len(src))
	for i, v := range src {
		relErr := 0.0
		if v != 0 {
			relErr = math.Abs(float64(back[i]-v)) / math.Abs(float64(v))
		}
		assert.LessOrEqual(t, relErr, 1.0/1024, "value %v decoded as %v", v, back[i])
	}
}
