package tensor

// Add performs element-wise addition with broadcasting.
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Add(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[T, B]) Sub(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Sub(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
//
// Example:
//
//	a := tensor.Ones[float32](Shape{3, 1}, backend)
//	b := tensor.Ones[float32](Shape{3, 5}, backend)
//	c := a.Mul(b) // Shape: [3, 5] (broadcasted)
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Mul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// MulAxis performs element-wise multiplication with legacy axis-aligned
// broadcasting: the lower-rank operand is aligned to this tensor starting at
// dimension axis instead of the trailing dimension. axis == -1 selects the
// plain trailing-aligned NumPy rule.
func (t *Tensor[T, B]) MulAxis(other *Tensor[T, B], axis int) *Tensor[T, B] {
	x, y := t.raw, other.raw
	if len(y.Shape()) < len(x.Shape()) {
		aligned, err := AlignBroadcastShape(x.Shape(), y.Shape(), axis)
		if err != nil {
			panic(err)
		}
		y = t.backend.Reshape(y, aligned)
	} else if len(x.Shape()) < len(y.Shape()) {
		aligned, err := AlignBroadcastShape(y.Shape(), x.Shape(), axis)
		if err != nil {
			panic(err)
		}
		x = t.backend.Reshape(x, aligned)
	}
	result := t.backend.Mul(x, y)
	return New[T, B](result, t.backend)
}

// Div performs element-wise division with broadcasting.
func (t *Tensor[T, B]) Div(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Div(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Reshape returns a tensor with the same data but different shape.
// The new shape must have the same number of elements.
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	result := t.backend.Reshape(t.raw, Shape(newShape))
	return New[T, B](result, t.backend)
}

// Sum reduces the tensor to a scalar sum.
func (t *Tensor[T, B]) Sum() *Tensor[T, B] {
	result := t.backend.Sum(t.raw)
	return New[T, B](result, t.backend)
}

// Conj returns the element-wise complex conjugate.
// For real dtypes this is the identity.
func (t *Tensor[T, B]) Conj() *Tensor[T, B] {
	result := t.backend.Conj(t.raw)
	return New[T, B](result, t.backend)
}
