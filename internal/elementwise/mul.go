// Package elementwise implements the element-wise operator entry points.
//
// The functions here sit between the user-facing tensor API and the compute
// backends: they resolve the legacy axis-aligned broadcasting convention
// into plain NumPy broadcasting, then hand off to the backend. Running them
// against an autodiff backend records every step, so gradients flow back
// through the alignment reshape as well as the multiply.
package elementwise

import (
	"github.com/pkg/errors"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// TrailingAxis selects standard right-aligned broadcasting.
const TrailingAxis = -1

// Mul multiplies x and y element-wise with NumPy broadcasting.
func Mul(x, y *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	return backend.Mul(x, y)
}

// MulAxis multiplies x and y with axis-aligned broadcasting: the lower-rank
// operand's dimensions are aligned to the higher-rank operand starting at
// axis, padding with size-1 dimensions on both sides. TrailingAxis aligns at
// the end, which matches NumPy broadcasting.
//
// Either operand may be the lower-rank one. Operands of equal rank ignore
// the axis and broadcast directly.
func MulAxis(x, y *tensor.RawTensor, axis int, backend tensor.Backend) (*tensor.RawTensor, error) {
	xRank, yRank := len(x.Shape()), len(y.Shape())

	switch {
	case xRank == yRank:
		// Equal ranks never need alignment.
	case xRank > yRank:
		aligned, err := tensor.AlignBroadcastShape(x.Shape(), y.Shape(), axis)
		if err != nil {
			return nil, errors.Wrap(err, "elementwise mul")
		}
		y = backend.Reshape(y, aligned)
	default:
		aligned, err := tensor.AlignBroadcastShape(y.Shape(), x.Shape(), axis)
		if err != nil {
			return nil, errors.Wrap(err, "elementwise mul")
		}
		x = backend.Reshape(x, aligned)
	}

	return backend.Mul(x, y), nil
}
