package tensor

import (
	"math"
	"math/rand"

	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	dtype := inferDataType(dummy)

	raw, err := NewRaw(shape, dtype, b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()

	var dummy T
	var one any
	switch any(dummy).(type) {
	case float32:
		one = float32(1)
	case float64:
		one = float64(1)
	case float16.Float16:
		one = float16.Fromfloat32(1)
	case bfloat16.BFloat16:
		one = bfloat16.FromFloat32(1)
	case complex64:
		one = complex64(1)
	case complex128:
		one = complex128(1)
	case int32:
		one = int32(1)
	case int64:
		one = int64(1)
	case uint8:
		one = uint8(1)
	case bool:
		one = true
	}

	for i := range data {
		data[i] = one.(T)
	}
	return t
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Rand creates a tensor with random values uniformly distributed in [0, 1).
// Complex dtypes get independent uniform real and imaginary components.
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Uniform[T, B](shape, 0, 1, b)
}

// Uniform creates a tensor with random values uniformly distributed in [lo, hi).
// Note: uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
//
// Example:
//
//	t := tensor.Uniform[float64](Shape{13, 17}, 0.1, 1, backend)
func Uniform[T DType, B Backend](shape Shape, lo, hi float64, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	sample := func() float64 {
		return lo + (hi-lo)*rand.Float64() //nolint:gosec // G404: statistical use
	}

	var dummy T
	switch any(dummy).(type) {
	case float32:
		dst := any(data).([]float32)
		for i := range dst {
			dst[i] = float32(sample())
		}
	case float64:
		dst := any(data).([]float64)
		for i := range dst {
			dst[i] = sample()
		}
	case float16.Float16:
		dst := any(data).([]float16.Float16)
		for i := range dst {
			dst[i] = float16.Fromfloat32(float32(sample()))
		}
	case bfloat16.BFloat16:
		dst := any(data).([]bfloat16.BFloat16)
		for i := range dst {
			dst[i] = bfloat16.FromFloat32(float32(sample()))
		}
	case complex64:
		dst := any(data).([]complex64)
		for i := range dst {
			dst[i] = complex(float32(sample()), float32(sample()))
		}
	case complex128:
		dst := any(data).([]complex128)
		for i := range dst {
			dst[i] = complex(sample(), sample())
		}
	default:
		panic("Uniform only supports float and complex types")
	}
	return t
}

// Randn creates a tensor with random values from a normal distribution
// (mean=0, std=1) using the Box-Muller transform. Only float types.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()

	var dummy T
	switch any(dummy).(type) {
	case float32:
		dst := any(data).([]float32)
		for i := 0; i < len(dst); i += 2 {
			z0, z1 := boxMuller()
			dst[i] = float32(z0)
			if i+1 < len(dst) {
				dst[i+1] = float32(z1)
			}
		}
	case float64:
		dst := any(data).([]float64)
		for i := 0; i < len(dst); i += 2 {
			z0, z1 := boxMuller()
			dst[i] = z0
			if i+1 < len(dst) {
				dst[i+1] = z1
			}
		}
	default:
		panic("Randn only supports float32 and float64 types")
	}
	return t
}

func boxMuller() (float64, float64) {
	u1 := rand.Float64() //nolint:gosec // G404: statistical use
	u2 := rand.Float64() //nolint:gosec // G404: statistical use
	z0 := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
	z1 := math.Sqrt(-2.0*math.Log(u1)) * math.Sin(2.0*math.Pi*u2)
	return z0, z1
}
