// Copyright 2025 Hadamard ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes the pure Go CPU backend.
package cpu

import (
	internalcpu "github.com/hadamard-ml/hadamard/internal/backend/cpu"
	"github.com/hadamard-ml/hadamard/tensor"
)

// Backend is the CPU backend implementation. It provides pure Go kernels
// for every supported dtype, including float16, bfloat16 and the complex
// types.
type Backend = internalcpu.CPUBackend

var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func New() *Backend {
	return internalcpu.New()
}
