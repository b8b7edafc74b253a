package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
// An empty Shape is a zero-dimensional (scalar) tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Rules:
// 1. Compare shapes element-wise from right to left
// 2. Dimensions are compatible if:
//   - They are equal, OR
//   - One of them is 1
//
// 3. Missing dimensions are treated as 1
//
// Returns the broadcasted shape, a flag indicating if broadcasting is needed,
// and an error if the shapes are incompatible.
//
// Examples:
//
//	(3, 1) * (3, 5) → (3, 5), true, nil
//	(1, 5) * (3, 5) → (3, 5), true, nil
//	(3, 5) * (3, 5) → (3, 5), false, nil
//	(3, 4) * (3, 5) → nil, false, Error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	needsBroadcast := false

	for i := 0; i < maxLen; i++ {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i

		aDim := 1
		if aIdx >= 0 {
			aDim = a[aIdx]
		}

		bDim := 1
		if bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
			needsBroadcast = true
		case bDim == 1:
			result[maxLen-1-i] = aDim
			needsBroadcast = true
		default:
			return nil, false, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, needsBroadcast, nil
}

// AlignBroadcastShape implements legacy axis-aligned broadcasting: the
// lower-rank shape `small` is padded with 1s so that its first dimension
// lines up with dimension `axis` of the higher-rank shape `big`, instead of
// aligning at the trailing dimension.
//
// axis == -1 selects trailing alignment (the plain NumPy rule), i.e.
// axis = len(big) - len(small).
//
// Examples:
//
//	big=(2, 100, 3), small=(100,), axis=1  → (1, 100, 1)
//	big=(2, 10, 12, 3), small=(10, 12), axis=1 → (1, 10, 12, 1)
//	big=(100, 2, 3), small=(100,), axis=0 → (100, 1, 1)
//
// The aligned dimensions must match big's dimensions exactly or be 1.
func AlignBroadcastShape(big, small Shape, axis int) (Shape, error) {
	if len(small) > len(big) {
		return nil, fmt.Errorf("align: shape %v has higher rank than %v", small, big)
	}
	if axis == -1 {
		axis = len(big) - len(small)
	}
	if axis < 0 || axis+len(small) > len(big) {
		return nil, fmt.Errorf("align: axis %d out of range for shapes %v and %v", axis, big, small)
	}

	aligned := make(Shape, len(big))
	for i := range aligned {
		aligned[i] = 1
	}
	for i, dim := range small {
		if dim != big[axis+i] && dim != 1 && big[axis+i] != 1 {
			return nil, fmt.Errorf("align: dimension %d of %v (%d) does not match dimension %d of %v (%d)",
				i, small, dim, axis+i, big, big[axis+i])
		}
		aligned[axis+i] = dim
	}
	return aligned, nil
}
