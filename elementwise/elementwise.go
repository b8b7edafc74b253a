// Copyright 2025 Hadamard ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package elementwise exposes the element-wise operator entry points.
package elementwise

import (
	"github.com/hadamard-ml/hadamard/internal/elementwise"
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// TrailingAxis selects standard right-aligned broadcasting.
const TrailingAxis = elementwise.TrailingAxis

// Mul multiplies x and y element-wise with NumPy broadcasting.
func Mul(x, y *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	return elementwise.Mul(x, y, backend)
}

// MulAxis multiplies x and y with axis-aligned broadcasting: the lower-rank
// operand is aligned to the higher-rank one starting at axis. TrailingAxis
// aligns at the end, matching NumPy broadcasting.
func MulAxis(x, y *tensor.RawTensor, axis int, backend tensor.Backend) (*tensor.RawTensor, error) {
	return elementwise.MulAxis(x, y, axis, backend)
}
