// Package deferred implements a program-recording backend decorator.
//
// Operations are not executed when called; instead each call appends a node
// to a program and returns a placeholder tensor whose buffer is filled only
// when Run executes the recorded program against the wrapped backend. This
// mirrors graph-mode execution: build first, run once.
package deferred

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// node is one recorded operation. exec recomputes the node's value with the
// inner backend when the program runs.
type node struct {
	name string
	exec func() *tensor.RawTensor
	out  *tensor.RawTensor
}

// Backend records operations against an inner backend and replays them on Run.
type Backend[B tensor.Backend] struct {
	inner B

	mu      sync.Mutex
	program []node
	pending map[*tensor.RawTensor]bool
}

// New wraps a backend in a deferred program recorder.
func New[B tensor.Backend](inner B) *Backend[B] {
	return &Backend[B]{
		inner:   inner,
		pending: make(map[*tensor.RawTensor]bool),
	}
}

// Inner returns the wrapped backend.
func (d *Backend[B]) Inner() B {
	return d.inner
}

// Name returns the backend name.
func (d *Backend[B]) Name() string {
	return fmt.Sprintf("Deferred(%s)", d.inner.Name())
}

// Device returns the device of the wrapped backend.
func (d *Backend[B]) Device() tensor.Device {
	return d.inner.Device()
}

// Len returns the number of recorded operations.
func (d *Backend[B]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.program)
}

// Pending reports whether t is a placeholder that has not been materialized
// by Run yet. Reading a pending tensor's data is a bug in the caller.
func (d *Backend[B]) Pending(t *tensor.RawTensor) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending[t]
}

// Run executes the recorded program in order, filling every placeholder
// tensor with its computed value. The program is consumed: after Run the
// recorder is empty and can record a new program.
func (d *Backend[B]) Run() error {
	d.mu.Lock()
	program := d.program
	d.program = nil
	d.mu.Unlock()

	for i, n := range program {
		result := func() (out *tensor.RawTensor) {
			defer func() {
				if r := recover(); r != nil {
					out = nil
				}
			}()
			return n.exec()
		}()
		if result == nil {
			return errors.Errorf("deferred: op %d (%s) failed", i, n.name)
		}
		if result.ByteSize() != n.out.ByteSize() {
			return errors.Errorf("deferred: op %d (%s) produced %d bytes, placeholder has %d",
				i, n.name, result.ByteSize(), n.out.ByteSize())
		}
		copy(n.out.Data(), result.Data())

		d.mu.Lock()
		delete(d.pending, n.out)
		d.mu.Unlock()
	}
	return nil
}

// record appends a node whose output shape and dtype are known up front and
// returns the placeholder tensor.
func (d *Backend[B]) record(name string, shape tensor.Shape, dtype tensor.DataType, exec func() *tensor.RawTensor) *tensor.RawTensor {
	out, err := tensor.NewRaw(shape, dtype, d.inner.Device())
	if err != nil {
		panic(fmt.Sprintf("deferred: cannot allocate placeholder: %v", err))
	}

	d.mu.Lock()
	d.program = append(d.program, node{name: name, exec: exec, out: out})
	d.pending[out] = true
	d.mu.Unlock()

	return out
}

// binaryResult computes the shape and dtype a binary op will produce.
func binaryResult(a, b *tensor.RawTensor) (tensor.Shape, tensor.DataType) {
	shape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("deferred: %v", err))
	}
	return shape, tensor.PromoteTypes(a.DType(), b.DType())
}

func (d *Backend[B]) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	shape, dtype := binaryResult(a, b)
	return d.record("add", shape, dtype, func() *tensor.RawTensor { return d.inner.Add(a, b) })
}

func (d *Backend[B]) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	shape, dtype := binaryResult(a, b)
	return d.record("sub", shape, dtype, func() *tensor.RawTensor { return d.inner.Sub(a, b) })
}

func (d *Backend[B]) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	shape, dtype := binaryResult(a, b)
	return d.record("mul", shape, dtype, func() *tensor.RawTensor { return d.inner.Mul(a, b) })
}

func (d *Backend[B]) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	shape, dtype := binaryResult(a, b)
	return d.record("div", shape, dtype, func() *tensor.RawTensor { return d.inner.Div(a, b) })
}

func (d *Backend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return d.record("mul_scalar", x.Shape().Clone(), x.DType(),
		func() *tensor.RawTensor { return d.inner.MulScalar(x, scalar) })
}

func (d *Backend[B]) Conj(x *tensor.RawTensor) *tensor.RawTensor {
	return d.record("conj", x.Shape().Clone(), x.DType(),
		func() *tensor.RawTensor { return d.inner.Conj(x) })
}

func (d *Backend[B]) Real(x *tensor.RawTensor) *tensor.RawTensor {
	return d.record("real", x.Shape().Clone(), x.DType().RealType(),
		func() *tensor.RawTensor { return d.inner.Real(x) })
}

func (d *Backend[B]) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if x.NumElements() != shape.NumElements() {
		panic(fmt.Sprintf("deferred: cannot reshape %v to %v", x.Shape(), shape))
	}
	return d.record("reshape", shape.Clone(), x.DType(),
		func() *tensor.RawTensor { return d.inner.Reshape(x, shape) })
}

func (d *Backend[B]) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	rank := len(x.Shape())
	perm := axes
	if len(perm) == 0 {
		perm = make([]int, rank)
		for i := range perm {
			perm[i] = rank - 1 - i
		}
	}
	outShape := make(tensor.Shape, rank)
	for i, ax := range perm {
		outShape[i] = x.Shape()[ax]
	}
	return d.record("transpose", outShape, x.DType(),
		func() *tensor.RawTensor { return d.inner.Transpose(x, axes...) })
}

func (d *Backend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	return d.record("sum", tensor.Shape{}, x.DType(),
		func() *tensor.RawTensor { return d.inner.Sum(x) })
}

func (d *Backend[B]) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape().Clone()
	if keepDim {
		shape[dim] = 1
	} else {
		shape = append(shape[:dim], shape[dim+1:]...)
	}
	return d.record("sum_dim", shape, x.DType(),
		func() *tensor.RawTensor { return d.inner.SumDim(x, dim, keepDim) })
}

func (d *Backend[B]) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	in, k := input.Shape(), kernel.Shape()
	hOut := (in[2]+2*padding-k[2])/stride + 1
	wOut := (in[3]+2*padding-k[3])/stride + 1
	shape := tensor.Shape{in[0], k[0], hOut, wOut}
	return d.record("conv2d", shape, input.DType(),
		func() *tensor.RawTensor { return d.inner.Conv2D(input, kernel, stride, padding) })
}

func (d *Backend[B]) Conv2DInputBackward(input, kernel, grad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	return d.record("conv2d_input_backward", input.Shape().Clone(), input.DType(),
		func() *tensor.RawTensor { return d.inner.Conv2DInputBackward(input, kernel, grad, stride, padding) })
}

func (d *Backend[B]) Conv2DKernelBackward(input, kernel, grad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	return d.record("conv2d_kernel_backward", kernel.Shape().Clone(), kernel.DType(),
		func() *tensor.RawTensor { return d.inner.Conv2DKernelBackward(input, kernel, grad, stride, padding) })
}

func (d *Backend[B]) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return d.record("relu", x.Shape().Clone(), x.DType(),
		func() *tensor.RawTensor { return d.inner.ReLU(x) })
}

func (d *Backend[B]) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	return d.record("cast", x.Shape().Clone(), dtype,
		func() *tensor.RawTensor { return d.inner.Cast(x, dtype) })
}
