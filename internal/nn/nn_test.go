package nn_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/vgg/internal/backend/cpu"
	"github.com/born-ml/vgg/internal/nn"
	"github.com/born-ml/vgg/internal/tensor"
)

type backend = *cpu.CPUBackend

// TestParameter tests Parameter creation and methods.
func TestParameter(t *testing.T) {
	b := cpu.New()

	data, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3}, b)
	require.NoError(t, err)
	param := nn.NewParameter("test_param", data)

	if param.Name() != "test_param" {
		t.Errorf("Name() = %s, want test_param", param.Name())
	}
	if param.Tensor() != data {
		t.Error("Tensor() should return the original tensor")
	}
	if param.NumElements() != 3 {
		t.Errorf("NumElements() = %d, want 3", param.NumElements())
	}
}

func TestReLU(t *testing.T) {
	b := cpu.New()
	x, err := tensor.FromSlice([]float32{-2, -0.5, 0, 0.5, 2}, tensor.Shape{5}, b)
	require.NoError(t, err)

	y := nn.NewReLU[backend]().Forward(x)

	assert.Equal(t, []float32{0, 0, 0, 0.5, 2}, y.Data())
	assert.Nil(t, nn.NewReLU[backend]().Parameters())
}

func TestFlatten(t *testing.T) {
	b := cpu.New()
	x := tensor.Zeros[float32](tensor.Shape{2, 512, 7, 7}, b)

	y := nn.NewFlatten[backend]().Forward(x)

	assert.Equal(t, tensor.Shape{2, 25088}, y.Shape())
	assert.Panics(t, func() {
		nn.NewFlatten[backend]().Forward(tensor.Zeros[float32](tensor.Shape{3}, b))
	})
}

func TestSequential(t *testing.T) {
	b := cpu.New()

	model := nn.NewSequential[backend](
		nn.NewConv2D(3, 4, 3, 3, 1, 1, true, b),
		nn.NewBatchNorm2D(4, b),
		nn.NewReLU[backend](),
		nn.NewMaxPool2D(2, 2, b),
	)
	model.Add(nn.NewFlatten[backend]())

	require.Equal(t, 5, model.Len())

	x := tensor.Randn[float32](tensor.Shape{2, 3, 8, 8}, b)
	y := model.Forward(x)
	assert.Equal(t, tensor.Shape{2, 4 * 4 * 4}, y.Shape())

	// conv weight + bias, batchnorm gamma + beta
	params := model.Parameters()
	require.Len(t, params, 4)
	assert.Equal(t, 4*3*3*3+4+4+4, nn.CountParameters(params))

	assert.Panics(t, func() { model.Module(5) })
}

func TestSequential_SetTrainingPropagates(t *testing.T) {
	b := cpu.New()

	bn := nn.NewBatchNorm2D(2, b)
	drop := nn.NewDropout[backend](0.5)
	inner := nn.NewSequential[backend](drop)
	model := nn.NewSequential[backend](bn, nn.NewReLU[backend](), inner)

	model.SetTraining(false)
	assert.False(t, bn.Training())
	assert.False(t, drop.Training())

	model.SetTraining(true)
	assert.True(t, bn.Training())
	assert.True(t, drop.Training())
}

func TestSequential_String(t *testing.T) {
	b := cpu.New()

	model := nn.NewSequential[backend](
		nn.NewMaxPool2D(2, 2, b),
		nn.NewSequential[backend](nn.NewReLU[backend]()),
	)

	want := strings.Join([]string{
		"Sequential(",
		"  (0): MaxPool2D(kernel_size=2, stride=2)",
		"  (1): Sequential(",
		"    (0): ReLU()",
		"  )",
		")",
	}, "\n")
	assert.Equal(t, want, model.String())
}

func TestSeed_Reproducible(t *testing.T) {
	b := cpu.New()

	nn.Seed(99)
	first := nn.NewConv2D(3, 8, 3, 3, 1, 1, true, b)
	nn.Seed(99)
	second := nn.NewConv2D(3, 8, 3, 3, 1, 1, true, b)

	assert.Equal(t, first.Weight().Tensor().Data(), second.Weight().Tensor().Data())

	third := nn.NewConv2D(3, 8, 3, 3, 1, 1, true, b)
	assert.NotEqual(t, first.Weight().Tensor().Data(), third.Weight().Tensor().Data())
}
