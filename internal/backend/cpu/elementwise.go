package cpu

import (
	"fmt"

	"github.com/born-ml/vgg/internal/tensor"
)

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

func (cpu *CPUBackend) binary(
	op string,
	a, b *tensor.RawTensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	result := cpu.newRaw(op, outShape, a.DType())

	var aStrides, bStrides []int
	if needsBroadcast {
		aStrides = a.Shape().BroadcastStrides(outShape)
		bStrides = b.Shape().BroadcastStrides(outShape)
	}

	switch a.DType() {
	case tensor.Float32:
		applyBinary(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), aStrides, bStrides, outShape, f32)
	case tensor.Float64:
		applyBinary(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), aStrides, bStrides, outShape, f64)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", op, a.DType()))
	}
	return result
}

// applyBinary writes op(a, b) into dst. Nil strides mean both operands
// already have the output shape.
func applyBinary[T float](dst, a, b []T, aStrides, bStrides []int, out tensor.Shape, op func(x, y T) T) {
	if aStrides == nil {
		for i := range dst {
			dst[i] = op(a[i], b[i])
		}
		return
	}

	// Odometer walk over the output index; broadcast dims have stride 0.
	idx := make([]int, len(out))
	ai, bi := 0, 0
	for i := range dst {
		dst[i] = op(a[ai], b[bi])
		for d := len(out) - 1; d >= 0; d-- {
			idx[d]++
			ai += aStrides[d]
			bi += bStrides[d]
			if idx[d] < out[d] {
				break
			}
			ai -= aStrides[d] * out[d]
			bi -= bStrides[d] * out[d]
			idx[d] = 0
		}
	}
}
