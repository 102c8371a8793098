package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"

	"github.com/born-ml/vgg/internal/tensor"
)

// naiveMatMul is the reference triple loop: [m, k] @ [k, n].
func naiveMatMul(a, b []float32, m, k, n int) []float32 {
	out := make([]float32, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum float32
			for p := 0; p < k; p++ {
				sum += a[i*k+p] * b[p*n+j]
			}
			out[i*n+j] = sum
		}
	}
	return out
}

func randomData(rng *rand.Rand, n int) []float32 {
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(rng.NormFloat64())
	}
	return data
}

func TestMatMul_KnownValues(t *testing.T) {
	backend := New()

	// [[1, 2], [3, 4]] @ [[5, 6], [7, 8]] = [[19, 22], [43, 50]]
	a := raw32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := raw32(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	result := backend.MatMul(a, b)

	assert.Equal(t, []float32{19, 22, 43, 50}, result.AsFloat32())
}

func TestMatMul_MatchesReference(t *testing.T) {
	backend := New()
	rng := rand.New(rand.NewSource(7))

	m, k, n := 5, 17, 9
	aData := randomData(rng, m*k)
	bData := randomData(rng, k*n)

	result := backend.MatMul(raw32(t, aData, tensor.Shape{m, k}), raw32(t, bData, tensor.Shape{k, n}))

	assert.True(t, result.Shape().Equal(tensor.Shape{m, n}))
	assert.InDeltaSlice(t, naiveMatMul(aData, bData, m, k, n), result.AsFloat32(), 1e-4)
}

func TestMatMulTransposed_MatchesReference(t *testing.T) {
	backend := New()
	rng := rand.New(rand.NewSource(11))

	m, k, n := 3, 8, 6
	aData := randomData(rng, m*k)
	wData := randomData(rng, n*k) // [n, k], Linear weight layout

	// Reference: a @ w^T.
	wT := make([]float32, k*n)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			wT[j*n+i] = wData[i*k+j]
		}
	}

	result := backend.MatMulTransposed(raw32(t, aData, tensor.Shape{m, k}), raw32(t, wData, tensor.Shape{n, k}))

	assert.True(t, result.Shape().Equal(tensor.Shape{m, n}))
	assert.InDeltaSlice(t, naiveMatMul(aData, wT, m, k, n), result.AsFloat32(), 1e-4)
}

func TestMatMul_InnerDimensionMismatchPanics(t *testing.T) {
	backend := New()

	a := raw32(t, make([]float32, 6), tensor.Shape{2, 3})
	b := raw32(t, make([]float32, 8), tensor.Shape{4, 2})

	assert.Panics(t, func() { backend.MatMul(a, b) })
	assert.Panics(t, func() { backend.MatMulTransposed(a, b) })
}
