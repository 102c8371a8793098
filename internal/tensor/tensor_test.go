package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/born-ml/vgg/internal/backend/cpu"
	"github.com/born-ml/vgg/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, tensor.CPU, x.Device())
	assert.Equal(t, float32(6), x.At(1, 2))

	x.Set(10, 0, 1)
	assert.Equal(t, float32(10), x.Data()[1])

	_, err = tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 2}, backend)
	assert.Error(t, err)
}

func TestAt_OutOfBoundsPanics(t *testing.T) {
	x := tensor.Zeros[float32](tensor.Shape{2, 2}, cpu.New())
	assert.Panics(t, func() { x.At(2, 0) })
	assert.Panics(t, func() { x.At(0) })
}

func TestCreation(t *testing.T) {
	backend := cpu.New()

	assert.Equal(t, []float64{0, 0, 0}, tensor.Zeros[float64](tensor.Shape{3}, backend).Data())
	assert.Equal(t, []float64{1, 1, 1}, tensor.Ones[float64](tensor.Shape{3}, backend).Data())
	assert.Equal(t, []float32{2.5, 2.5}, tensor.Full[float32](tensor.Shape{2}, 2.5, backend).Data())
}

func TestRandnWith_Reproducible(t *testing.T) {
	backend := cpu.New()

	a := tensor.RandnWith[float32](tensor.Shape{4, 8}, rand.New(rand.NewSource(42)), backend)
	b := tensor.RandnWith[float32](tensor.Shape{4, 8}, rand.New(rand.NewSource(42)), backend)
	c := tensor.RandnWith[float32](tensor.Shape{4, 8}, rand.New(rand.NewSource(43)), backend)

	assert.Equal(t, a.Data(), b.Data())
	assert.NotEqual(t, a.Data(), c.Data())
}

func TestRandn_Statistics(t *testing.T) {
	x := tensor.Randn[float64](tensor.Shape{100000}, cpu.New())

	var sum, sq float64
	for _, v := range x.Data() {
		sum += v
		sq += v * v
	}
	mean := sum / 100000
	assert.InDelta(t, 0, mean, 0.02)
	assert.InDelta(t, 1, sq/100000-mean*mean, 0.03)
}

func TestTensorOps(t *testing.T) {
	backend := cpu.New()

	a, err := tensor.FromSlice([]float32{1, -2, 3, -4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{10, 20}, tensor.Shape{2}, backend)
	require.NoError(t, err)

	assert.Equal(t, []float32{11, 18, 13, 16}, a.Add(b).Data())
	assert.Equal(t, []float32{10, -40, 30, -80}, a.Mul(b).Data())
	assert.Equal(t, []float32{1, 0, 3, 0}, a.ReLU().Data())

	// [[1,-2],[3,-4]] @ [[1,-2],[3,-4]]
	assert.Equal(t, []float32{-5, 6, -9, 10}, a.MatMul(a).Data())
	// [[1,-2],[3,-4]] @ [[1,-2],[3,-4]]^T
	assert.Equal(t, []float32{5, 11, 11, 25}, a.MatMulTransposed(a).Data())
}

func TestReshape_FlattensBatch(t *testing.T) {
	x := tensor.Zeros[float32](tensor.Shape{2, 512, 7, 7}, cpu.New())

	flat := x.Reshape(2, -1)

	assert.Equal(t, tensor.Shape{2, 25088}, flat.Shape())
	flat.Data()[0] = 1
	assert.Equal(t, float32(1), x.At(0, 0, 0, 0))
	assert.Panics(t, func() { x.Reshape(3, -1) })
}

func TestClone_IsIndependent(t *testing.T) {
	x := tensor.Ones[float32](tensor.Shape{2}, cpu.New())
	y := x.Clone()
	y.Data()[0] = 5

	assert.Equal(t, float32(1), x.Data()[0])
	assert.Equal(t, "Tensor[float32][2] on CPU", x.String())
}
