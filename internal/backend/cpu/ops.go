package cpu

import (
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/x448/float16"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// binOp identifies an elementwise binary operation kernel.
type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
)

func (op binOp) String() string {
	switch op {
	case opAdd:
		return "add"
	case opSub:
		return "sub"
	case opMul:
		return "mul"
	case opDiv:
		return "div"
	default:
		return "unknown"
	}
}

// number covers every dtype whose kernels run on native Go arithmetic.
// The 16-bit float formats are excluded: they compute by widening to float32.
type number interface {
	~float32 | ~float64 | ~complex64 | ~complex128 | ~int32 | ~int64 | ~uint8
}

func pickFn[T number](op binOp) func(a, b T) T {
	switch op {
	case opAdd:
		return func(a, b T) T { return a + b }
	case opSub:
		return func(a, b T) T { return a - b }
	case opMul:
		return func(a, b T) T { return a * b }
	case opDiv:
		return func(a, b T) T { return a / b }
	default:
		panic("unknown binary op")
	}
}

// execBinary runs an elementwise kernel over native-arithmetic slices.
// dst may alias a for the inplace fast path (same shape, unique buffer).
func execBinary[T number](opFn func(a, b T) T, dst, a, b []T, aShape, bShape, outShape tensor.Shape, sameShape bool) {
	if sameShape {
		for i := range dst {
			dst[i] = opFn(a[i], b[i])
		}
		return
	}
	if len(b) == 1 {
		// One side is a single element: only iterate over the other.
		c := b[0]
		for i, v := range a {
			dst[i] = opFn(v, c)
		}
		return
	}
	if len(a) == 1 {
		c := a[0]
		for i, v := range b {
			dst[i] = opFn(c, v)
		}
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	for i := range dst {
		aIdx := computeFlatIndex(i, outStrides, aStrides)
		bIdx := computeFlatIndex(i, outStrides, bStrides)
		dst[i] = opFn(a[aIdx], b[bIdx])
	}
}

// execBinaryFloat16 runs a float32 kernel over half-precision slices,
// widening each operand and narrowing the result.
func execBinaryFloat16(opFn func(a, b float32) float32, dst, a, b []float16.Float16, aShape, bShape, outShape tensor.Shape, sameShape bool) {
	if sameShape {
		for i := range dst {
			dst[i] = float16.Fromfloat32(opFn(a[i].Float32(), b[i].Float32()))
		}
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	for i := range dst {
		av := a[computeFlatIndex(i, outStrides, aStrides)].Float32()
		bv := b[computeFlatIndex(i, outStrides, bStrides)].Float32()
		dst[i] = float16.Fromfloat32(opFn(av, bv))
	}
}

// execBinaryBFloat16 is the brain-float counterpart of execBinaryFloat16.
func execBinaryBFloat16(opFn func(a, b float32) float32, dst, a, b []bfloat16.BFloat16, aShape, bShape, outShape tensor.Shape, sameShape bool) {
	if sameShape {
		for i := range dst {
			dst[i] = bfloat16.FromFloat32(opFn(a[i].Float32(), b[i].Float32()))
		}
		return
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	for i := range dst {
		av := a[computeFlatIndex(i, outStrides, aStrides)].Float32()
		bv := b[computeFlatIndex(i, outStrides, bStrides)].Float32()
		dst[i] = bfloat16.FromFloat32(opFn(av, bv))
	}
}
