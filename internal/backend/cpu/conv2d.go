package cpu

import (
	"fmt"

	"github.com/born-ml/vgg/internal/parallel"
	"github.com/born-ml/vgg/internal/tensor"
)

// Conv2D performs 2D convolution using the im2col algorithm.
//
// Input shape:  [batch, in_channels, height, width]
// Kernel shape: [out_channels, in_channels, kernel_h, kernel_w]
// Bias shape:   [out_channels] (optional, may be nil)
// Output shape: [batch, out_channels, out_h, out_w]
//
// Algorithm, per sample:
//  1. Unfold the input into a column matrix [C_in*K_h*K_w, H_out*W_out]
//  2. Fill the output plane with the bias
//  3. GEMM: [C_out, C_in*K_h*K_w] @ columns + output
//
// The column layout makes the GEMM result land directly in NCHW order, and
// working one sample at a time bounds the column buffer to a single image
// (a 64-channel 224x224 layer needs ~115 MB of columns per image).
func (cpu *CPUBackend) Conv2D(input, kernel, bias *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}
	if input.DType() != kernel.DType() {
		panic(fmt.Sprintf("conv2d: dtype mismatch input %s vs kernel %s", input.DType(), kernel.DType()))
	}
	if stride <= 0 || padding < 0 {
		panic(fmt.Sprintf("conv2d: invalid stride %d or padding %d", stride, padding))
	}

	g := convGeometry{
		n: inputShape[0], cIn: inputShape[1], h: inputShape[2], w: inputShape[3],
		cOut: kernelShape[0], kh: kernelShape[2], kw: kernelShape[3],
		stride: stride, padding: padding,
	}
	if g.cIn != kernelShape[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", g.cIn, kernelShape[1]))
	}
	if bias != nil && (len(bias.Shape()) != 1 || bias.Shape()[0] != g.cOut) {
		panic(fmt.Sprintf("conv2d: bias shape %v does not match %d output channels", bias.Shape(), g.cOut))
	}

	g.hOut = (g.h+2*padding-g.kh)/stride + 1
	g.wOut = (g.w+2*padding-g.kw)/stride + 1
	if g.hOut <= 0 || g.wOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)", g.hOut, g.wOut))
	}

	output := cpu.newRaw("conv2d", tensor.Shape{g.n, g.cOut, g.hOut, g.wOut}, input.DType())

	switch input.DType() {
	case tensor.Float32:
		var b []float32
		if bias != nil {
			b = bias.AsFloat32()
		}
		conv2d(cpu, g, output.AsFloat32(), input.AsFloat32(), kernel.AsFloat32(), b)
	case tensor.Float64:
		var b []float64
		if bias != nil {
			b = bias.AsFloat64()
		}
		conv2d(cpu, g, output.AsFloat64(), input.AsFloat64(), kernel.AsFloat64(), b)
	default:
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}

	return output
}

// convGeometry holds the dimensions of one convolution call.
type convGeometry struct {
	n, cIn, h, w    int
	cOut, kh, kw    int
	hOut, wOut      int
	stride, padding int
}

func conv2d[T float](cpu *CPUBackend, g convGeometry, out, in, kernel, bias []T) {
	colRows := g.cIn * g.kh * g.kw
	plane := g.hOut * g.wOut
	cols := make([]T, colRows*plane)

	inSize := g.cIn * g.h * g.w
	outSize := g.cOut * plane

	for n := 0; n < g.n; n++ {
		im2col(cpu, g, cols, in[n*inSize:(n+1)*inSize])

		dst := out[n*outSize : (n+1)*outSize]
		var beta T
		if bias != nil {
			for c := 0; c < g.cOut; c++ {
				row := dst[c*plane : (c+1)*plane]
				for i := range row {
					row[i] = bias[c]
				}
			}
			beta = 1
		}

		gemm(false, g.cOut, plane, colRows, kernel, cols, dst, beta)
	}
}

// im2col unfolds one image [C, H, W] into cols [C*K_h*K_w, H_out*W_out].
// Row r = (c*K_h + i)*K_w + j holds the input pixel under kernel tap (i, j)
// of channel c for every output position; taps in the padding read zero.
func im2col[T float](cpu *CPUBackend, g convGeometry, cols, img []T) {
	plane := g.hOut * g.wOut
	rows := g.cIn * g.kh * g.kw

	parallel.ForRange(rows, func(start, end int) {
		for r := start; r < end; r++ {
			c := r / (g.kh * g.kw)
			i := (r / g.kw) % g.kh
			j := r % g.kw

			src := img[c*g.h*g.w : (c+1)*g.h*g.w]
			dst := cols[r*plane : (r+1)*plane]

			for oh := 0; oh < g.hOut; oh++ {
				ih := oh*g.stride - g.padding + i
				row := dst[oh*g.wOut : (oh+1)*g.wOut]
				if ih < 0 || ih >= g.h {
					clear(row)
					continue
				}
				srcRow := src[ih*g.w : (ih+1)*g.w]
				for ow := range row {
					iw := ow*g.stride - g.padding + j
					if iw < 0 || iw >= g.w {
						row[ow] = 0
						continue
					}
					row[ow] = srcRow[iw]
				}
			}
		}
	}, cpu.par.WithMinChunk(8))
}
