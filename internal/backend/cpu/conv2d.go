package cpu

import (
	"fmt"

	"github.com/hadamard-ml/hadamard/internal/tensor"
)

// Conv2D performs 2D convolution with direct accumulation.
//
// Input shape:  [batch, in_channels, height, width]
// Kernel shape: [out_channels, in_channels, kernel_h, kernel_w]
// Output shape: [batch, out_channels, out_h, out_w]
//
// where out_h = (height + 2*padding - kernel_h)/stride + 1 and the analogous
// formula for out_w.
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}
	if inputShape[1] != kernelShape[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", inputShape[1], kernelShape[1]))
	}
	if input.DType() != tensor.Float32 || kernel.DType() != tensor.Float32 {
		panic(fmt.Sprintf("conv2d: unsupported dtype %s (only float32 supported)", input.DType()))
	}

	n, cIn, h, w := inputShape[0], inputShape[1], inputShape[2], inputShape[3]
	cOut, kH, kW := kernelShape[0], kernelShape[2], kernelShape[3]

	hOut := (h+2*padding-kH)/stride + 1
	wOut := (w+2*padding-kW)/stride + 1
	if hOut <= 0 || wOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions out_h=%d out_w=%d (check stride/padding)", hOut, wOut))
	}

	output, err := tensor.NewRaw(tensor.Shape{n, cOut, hOut, wOut}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d: %v", err))
	}

	src := input.AsFloat32()
	ker := kernel.AsFloat32()
	dst := output.AsFloat32()

	for batch := 0; batch < n; batch++ {
		srcBatch := src[batch*cIn*h*w:]
		dstBatch := dst[batch*cOut*hOut*wOut:]
		for oc := 0; oc < cOut; oc++ {
			kerOC := ker[oc*cIn*kH*kW:]
			for oh := 0; oh < hOut; oh++ {
				for ow := 0; ow < wOut; ow++ {
					var acc float32
					for ic := 0; ic < cIn; ic++ {
						srcChan := srcBatch[ic*h*w:]
						kerChan := kerOC[ic*kH*kW:]
						for kh := 0; kh < kH; kh++ {
							ih := oh*stride + kh - padding
							if ih < 0 || ih >= h {
								continue
							}
							for kw := 0; kw < kW; kw++ {
								iw := ow*stride + kw - padding
								if iw < 0 || iw >= w {
									continue
								}
								acc += srcChan[ih*w+iw] * kerChan[kh*kW+kw]
							}
						}
					}
					dstBatch[oc*hOut*wOut+oh*wOut+ow] = acc
				}
			}
		}
	}

	return output
}

// Conv2DInputBackward computes the convolution gradient w.r.t. the input by
// distributing each output gradient back through the kernel (transposed
// convolution).
func (cpu *CPUBackend) Conv2DInputBackward(input, kernel, grad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()
	gradShape := grad.Shape()

	n, cIn, h, w := inputShape[0], inputShape[1], inputShape[2], inputShape[3]
	cOut, kH, kW := kernelShape[0], kernelShape[2], kernelShape[3]
	hOut, wOut := gradShape[2], gradShape[3]

	inputGrad, err := tensor.NewRaw(inputShape.Clone(), tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d input backward: %v", err))
	}

	gradData := grad.AsFloat32()
	ker := kernel.AsFloat32()
	dst := inputGrad.AsFloat32()

	for batch := 0; batch < n; batch++ {
		gradBatch := gradData[batch*cOut*hOut*wOut:]
		dstBatch := dst[batch*cIn*h*w:]
		for oc := 0; oc < cOut; oc++ {
			kerOC := ker[oc*cIn*kH*kW:]
			for oh := 0; oh < hOut; oh++ {
				for ow := 0; ow < wOut; ow++ {
					g := gradBatch[oc*hOut*wOut+oh*wOut+ow]
					for ic := 0; ic < cIn; ic++ {
						dstChan := dstBatch[ic*h*w:]
						kerChan := kerOC[ic*kH*kW:]
						for kh := 0; kh < kH; kh++ {
							ih := oh*stride + kh - padding
							if ih < 0 || ih >= h {
								continue
							}
							for kw := 0; kw < kW; kw++ {
								iw := ow*stride + kw - padding
								if iw < 0 || iw >= w {
									continue
								}
								dstChan[ih*w+iw] += g * kerChan[kh*kW+kw]
							}
						}
					}
				}
			}
		}
	}

	return inputGrad
}

// Conv2DKernelBackward computes the convolution gradient w.r.t. the kernel by
// correlating the input with the output gradient.
func (cpu *CPUBackend) Conv2DKernelBackward(input, kernel, grad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()
	gradShape := grad.Shape()

	n, cIn, h, w := inputShape[0], inputShape[1], inputShape[2], inputShape[3]
	cOut, kH, kW := kernelShape[0], kernelShape[2], kernelShape[3]
	hOut, wOut := gradShape[2], gradShape[3]

	kernelGrad, err := tensor.NewRaw(kernelShape.Clone(), tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d kernel backward: %v", err))
	}

	src := input.AsFloat32()
	gradData := grad.AsFloat32()
	dst := kernelGrad.AsFloat32()

	for batch := 0; batch < n; batch++ {
		srcBatch := src[batch*cIn*h*w:]
		gradBatch := gradData[batch*cOut*hOut*wOut:]
		for oc := 0; oc < cOut; oc++ {
			dstOC := dst[oc*cIn*kH*kW:]
			for oh := 0; oh < hOut; oh++ {
				for ow := 0; ow < wOut; ow++ {
					g := gradBatch[oc*hOut*wOut+oh*wOut+ow]
					for ic := 0; ic < cIn; ic++ {
						srcChan := srcBatch[ic*h*w:]
						dstChan := dstOC[ic*kH*kW:]
						for kh := 0; kh < kH; kh++ {
							ih := oh*stride + kh - padding
							if ih < 0 || ih >= h {
								continue
							}
							for kw := 0; kw < kW; kw++ {
								iw := ow*stride + kw - padding
								if iw < 0 || iw >= w {
									continue
								}
								dstChan[kh*kW+kw] += g * srcChan[ih*w+iw]
							}
						}
					}
				}
			}
		}
	}

	return kernelGrad
}
