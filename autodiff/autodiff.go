// Copyright 2025 Hadamard ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// It wraps any backend with a gradient tape that records operations during
// the forward pass.
//
// Example:
//
//	base := cpu.New()
//	backend := autodiff.New(base)
//	backend.Tape().StartRecording()
//
//	x, _ := tensor.FromSlice([]float32{2}, tensor.Shape{1}, backend)
//	y := x.Mul(x)
//
//	grads := autodiff.Backward(y, backend)
package autodiff

import (
	"github.com/hadamard-ml/hadamard/internal/autodiff"
	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// Backend is the autodiff-enabled backend decorator.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// BackwardCapable is a backend that can replay a gradient tape.
type BackwardCapable = autodiff.BackwardCapable

// New creates an autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// Backward computes gradients of t with respect to every tensor on the
// tape, seeding the output gradient with ones.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}

// BackwardWithGrad computes gradients with a caller-supplied output
// gradient.
func BackwardWithGrad[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], outputGrad *tensor.RawTensor, backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.BackwardWithGrad(t, outputGrad, backend)
}

// OnesLike builds a ones gradient seed matching t's shape and dtype.
func OnesLike(t *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	return autodiff.OnesLike(t, backend)
}
