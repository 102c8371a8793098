package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/vgg/internal/parallel"
	"github.com/born-ml/vgg/internal/tensor"
)

// ChannelMoments computes the mean and biased variance of every channel of a
// [N, C, H, W] tensor over the N, H and W axes.
//
// Sums are accumulated in float64 so that a 8x64x224x224 activation does not
// lose precision in float32.
func (cpu *CPUBackend) ChannelMoments(x *tensor.RawTensor) (mean, variance *tensor.RawTensor) {
	n, c, plane := nchw("channel_moments", x)

	mean = cpu.newRaw("channel_moments", tensor.Shape{c}, x.DType())
	variance = cpu.newRaw("channel_moments", tensor.Shape{c}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		channelMoments(cpu, n, c, plane, x.AsFloat32(), mean.AsFloat32(), variance.AsFloat32())
	case tensor.Float64:
		channelMoments(cpu, n, c, plane, x.AsFloat64(), mean.AsFloat64(), variance.AsFloat64())
	default:
		panic(fmt.Sprintf("channel_moments: unsupported dtype %s", x.DType()))
	}
	return mean, variance
}

// BatchNorm2D applies y = gamma * (x - mean) / sqrt(variance + eps) + beta per
// channel of a [N, C, H, W] tensor. mean, variance, gamma and beta are [C].
func (cpu *CPUBackend) BatchNorm2D(x, mean, variance, gamma, beta *tensor.RawTensor, eps float64) *tensor.RawTensor {
	n, c, plane := nchw("batchnorm2d", x)
	for _, v := range []*tensor.RawTensor{mean, variance, gamma, beta} {
		if !v.Shape().Equal(tensor.Shape{c}) {
			panic(fmt.Sprintf("batchnorm2d: statistics shape %v does not match %d channels", v.Shape(), c))
		}
		if v.DType() != x.DType() {
			panic(fmt.Sprintf("batchnorm2d: dtype mismatch %s vs %s", v.DType(), x.DType()))
		}
	}

	result := cpu.newRaw("batchnorm2d", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		batchNorm(cpu, n, c, plane, eps, result.AsFloat32(), x.AsFloat32(),
			mean.AsFloat32(), variance.AsFloat32(), gamma.AsFloat32(), beta.AsFloat32())
	case tensor.Float64:
		batchNorm(cpu, n, c, plane, eps, result.AsFloat64(), x.AsFloat64(),
			mean.AsFloat64(), variance.AsFloat64(), gamma.AsFloat64(), beta.AsFloat64())
	default:
		panic(fmt.Sprintf("batchnorm2d: unsupported dtype %s", x.DType()))
	}
	return result
}

func nchw(op string, x *tensor.RawTensor) (n, c, plane int) {
	shape := x.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("%s: expected 4D input [N,C,H,W], got %dD", op, len(shape)))
	}
	return shape[0], shape[1], shape[2] * shape[3]
}

func channelMoments[T float](cpu *CPUBackend, n, c, plane int, x, mean, variance []T) {
	count := float64(n * plane)

	parallel.For(c, func(ch int) {
		var sum float64
		for b := 0; b < n; b++ {
			base := (b*c + ch) * plane
			for _, v := range x[base : base+plane] {
				sum += float64(v)
			}
		}
		mu := sum / count

		var sq float64
		for b := 0; b < n; b++ {
			base := (b*c + ch) * plane
			for _, v := range x[base : base+plane] {
				d := float64(v) - mu
				sq += d * d
			}
		}

		mean[ch] = T(mu)
		variance[ch] = T(sq / count)
	}, cpu.par.WithMinChunk(4))
}

func batchNorm[T float](cpu *CPUBackend, n, c, plane int, eps float64, dst, x, mean, variance, gamma, beta []T) {
	parallel.ForBatch(n, c, func(b, ch int) {
		scale := float64(gamma[ch]) / math.Sqrt(float64(variance[ch])+eps)
		shift := float64(beta[ch]) - float64(mean[ch])*scale

		base := (b*c + ch) * plane
		src := x[base : base+plane]
		out := dst[base : base+plane]
		for i, v := range src {
			out[i] = T(float64(v)*scale + shift)
		}
	}, cpu.par.WithMinChunk(4))
}
