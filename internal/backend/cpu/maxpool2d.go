package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/vgg/internal/parallel"
	"github.com/born-ml/vgg/internal/tensor"
)

// MaxPool2D performs 2D max pooling.
//
// Input shape:  [batch, channels, height, width]
// Output shape: [batch, channels, out_height, out_width]
//
// Where:
//
//	out_height = (height - kernelSize) / stride + 1
//	out_width = (width - kernelSize) / stride + 1
//
// Example (2x2 pool, stride=2):
//
//	Input: [[1,2,3,4],    Output: [[6,8],
//	        [5,6,7,8],             [14,16]]
//	        [9,10,11,12],
//	        [13,14,15,16]]
func (cpu *CPUBackend) MaxPool2D(input *tensor.RawTensor, kernelSize, stride int) *tensor.RawTensor {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("maxpool2d: expected 4D input [N,C,H,W], got %dD", len(inputShape)))
	}

	N, C, H, W := inputShape[0], inputShape[1], inputShape[2], inputShape[3]

	if kernelSize <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid kernel size %d", kernelSize))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid stride %d", stride))
	}
	if kernelSize > H || kernelSize > W {
		panic(fmt.Sprintf("maxpool2d: kernel size %d too large for input %dx%d", kernelSize, H, W))
	}

	HOut := (H-kernelSize)/stride + 1
	WOut := (W-kernelSize)/stride + 1

	output := cpu.newRaw("maxpool2d", tensor.Shape{N, C, HOut, WOut}, input.DType())
	p := poolGeometry{h: H, w: W, hOut: HOut, wOut: WOut, kernel: kernelSize, stride: stride}

	switch input.DType() {
	case tensor.Float32:
		maxpool2d(cpu, N*C, p, output.AsFloat32(), input.AsFloat32())
	case tensor.Float64:
		maxpool2d(cpu, N*C, p, output.AsFloat64(), input.AsFloat64())
	default:
		panic(fmt.Sprintf("maxpool2d: unsupported dtype %v", input.DType()))
	}

	return output
}

type poolGeometry struct {
	h, w, hOut, wOut int
	kernel, stride   int
}

// maxpool2d pools planes independently; each (n, c) plane is one work item.
func maxpool2d[T float](cpu *CPUBackend, planes int, p poolGeometry, out, in []T) {
	inPlane := p.h * p.w
	outPlane := p.hOut * p.wOut

	parallel.For(planes, func(k int) {
		src := in[k*inPlane : (k+1)*inPlane]
		dst := out[k*outPlane : (k+1)*outPlane]

		for oh := 0; oh < p.hOut; oh++ {
			hStart := oh * p.stride
			for ow := 0; ow < p.wOut; ow++ {
				wStart := ow * p.stride
				maxVal := T(math.Inf(-1))

				for kh := 0; kh < p.kernel; kh++ {
					row := src[(hStart+kh)*p.w : (hStart+kh+1)*p.w]
					for kw := 0; kw < p.kernel; kw++ {
						if v := row[wStart+kw]; v > maxVal {
							maxVal = v
						}
					}
				}

				dst[oh*p.wOut+ow] = maxVal
			}
		}
	}, cpu.par.WithMinChunk(4))
}
