package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/vgg/internal/tensor"
)

// MatMul performs 2D matrix multiplication: [M, K] @ [K, N] -> [M, N].
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	m, k, n := matmulDims("matmul", a, b, false)
	result := cpu.newRaw("matmul", tensor.Shape{m, n}, a.DType())
	gemmRaw(false, m, n, k, a, b, result)
	return result
}

// MatMulTransposed computes a @ b^T: [M, K] @ [N, K]^T -> [M, N].
//
// Linear layers store weights as [out, in], so this avoids materializing a
// transposed copy of a 25088x4096 weight on every forward pass.
func (cpu *CPUBackend) MatMulTransposed(a, b *tensor.RawTensor) *tensor.RawTensor {
	m, k, n := matmulDims("matmul_t", a, b, true)
	result := cpu.newRaw("matmul_t", tensor.Shape{m, n}, a.DType())
	gemmRaw(true, m, n, k, a, b, result)
	return result
}

func matmulDims(op string, a, b *tensor.RawTensor, transB bool) (m, k, n int) {
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		panic(fmt.Sprintf("%s: expected 2D tensors, got %v and %v", op, as, bs))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType()))
	}

	m, k = as[0], as[1]
	bk, n := bs[0], bs[1]
	if transB {
		n, bk = bs[0], bs[1]
	}
	if k != bk {
		panic(fmt.Sprintf("%s: inner dimensions do not match: %v and %v", op, as, bs))
	}
	return m, k, n
}

func gemmRaw(transB bool, m, n, k int, a, b, c *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float32:
		gemm(transB, m, n, k, a.AsFloat32(), b.AsFloat32(), c.AsFloat32(), 0)
	case tensor.Float64:
		gemm(transB, m, n, k, a.AsFloat64(), b.AsFloat64(), c.AsFloat64(), 0)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}
}

// gemm computes c = a @ op(b) + beta*c with row-major operands:
//
//	a: [m, k]
//	b: [k, n], or [n, k] when transB is set
//	c: [m, n]
func gemm[T float](transB bool, m, n, k int, a, b, c []T, beta T) {
	tB := blas.NoTrans
	bRows, bCols := k, n
	if transB {
		tB = blas.Trans
		bRows, bCols = n, k
	}

	switch av := any(a).(type) {
	case []float32:
		blas32.Gemm(blas.NoTrans, tB, 1,
			blas32.General{Rows: m, Cols: k, Data: av, Stride: k},
			blas32.General{Rows: bRows, Cols: bCols, Data: any(b).([]float32), Stride: bCols},
			float32(beta),
			blas32.General{Rows: m, Cols: n, Data: any(c).([]float32), Stride: n})
	case []float64:
		blas64.Gemm(blas.NoTrans, tB, 1,
			blas64.General{Rows: m, Cols: k, Data: av, Stride: k},
			blas64.General{Rows: bRows, Cols: bCols, Data: any(b).([]float64), Stride: bCols},
			float64(beta),
			blas64.General{Rows: m, Cols: n, Data: any(c).([]float64), Stride: n})
	default:
		panic("gemm: unsupported element type")
	}
}
