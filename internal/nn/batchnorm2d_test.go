package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vgg/internal/backend/cpu"
	"github.com/born-ml/vgg/internal/tensor"
)

// bnInput builds a [2, 2, 1, 2] batch where channel 0 holds 1, 3, 5, 7 and
// channel 1 is constant 2.
func bnInput(t *testing.T, backend *cpu.CPUBackend) *tensor.Tensor[float32, *cpu.CPUBackend] {
	t.Helper()
	x, err := tensor.FromSlice([]float32{
		1, 3, 2, 2,
		5, 7, 2, 2,
	}, tensor.Shape{2, 2, 1, 2}, backend)
	require.NoError(t, err)
	return x
}

func TestBatchNorm2D_TrainingUsesBatchStatistics(t *testing.T) {
	backend := cpu.New()
	bn := NewBatchNorm2D(2, backend)
	require.True(t, bn.Training())

	out := bn.Forward(bnInput(t, backend))

	s := float32(1 / math.Sqrt(5+DefaultBatchNormEps))
	want := []float32{-3 * s, -1 * s, 0, 0, 1 * s, 3 * s, 0, 0}
	assert.InDeltaSlice(t, want, out.Data(), 1e-5)
}

func TestBatchNorm2D_RunningStatistics(t *testing.T) {
	backend := cpu.New()
	bn := NewBatchNorm2D(2, backend)

	bn.Forward(bnInput(t, backend))

	// mean: 0.9*0 + 0.1*[4, 2]
	// var:  0.9*1 + 0.1*[5, 0]*4/3
	assert.InDeltaSlice(t, []float32{0.4, 0.2}, bn.RunningMean().Data(), 1e-6)
	assert.InDeltaSlice(t, []float32{0.9 + 0.1*5*4/3.0, 0.9}, bn.RunningVar().Data(), 1e-6)
}

func TestBatchNorm2D_EvalUsesRunningStatistics(t *testing.T) {
	backend := cpu.New()
	bn := NewBatchNorm2D(2, backend)
	bn.SetTraining(false)

	x := bnInput(t, backend)
	out := bn.Forward(x)

	// Fresh running stats are mean 0, var 1: output is x/sqrt(1+eps).
	s := float32(1 / math.Sqrt(1+DefaultBatchNormEps))
	for i, v := range x.Data() {
		assert.InDelta(t, v*s, out.Data()[i], 1e-6)
	}
	assert.Equal(t, []float32{0, 0}, bn.RunningMean().Data(), "eval must not touch running stats")
}

func TestBatchNorm2D_Affine(t *testing.T) {
	backend := cpu.New()
	bn := NewBatchNorm2D(2, backend)
	bn.SetTraining(false)
	copy(bn.gamma.Tensor().Data(), []float32{2, 3})
	copy(bn.beta.Tensor().Data(), []float32{1, -1})

	zeros := tensor.Zeros[float32](tensor.Shape{1, 2, 1, 1}, backend)
	out := bn.Forward(zeros)

	assert.InDeltaSlice(t, []float32{1, -1}, out.Data(), 1e-6)
	assert.Len(t, bn.Parameters(), 2)
	assert.Equal(t, "BatchNorm2D(num_features=2, eps=1e-05, momentum=0.1)", bn.String())
}

func TestBatchNorm2D_SingleValuePerChannelPanics(t *testing.T) {
	backend := cpu.New()
	bn := NewBatchNorm2D(3, backend)

	x := tensor.Zeros[float32](tensor.Shape{1, 3, 1, 1}, backend)
	assert.Panics(t, func() { bn.Forward(x) })

	bn.SetTraining(false)
	assert.NotPanics(t, func() { bn.Forward(x) })
}

func TestBatchNorm2D_ChannelMismatchPanics(t *testing.T) {
	backend := cpu.New()
	bn := NewBatchNorm2D(3, backend)

	assert.Panics(t, func() {
		bn.Forward(tensor.Zeros[float32](tensor.Shape{2, 4, 2, 2}, backend))
	})
}
