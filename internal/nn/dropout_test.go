package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/vgg/internal/backend/cpu"
	"github.com/born-ml/vgg/internal/tensor"
)

func TestDropout_Training(t *testing.T) {
	backend := cpu.New()
	Seed(11)
	drop := NewDropout[*cpu.CPUBackend](0.5)

	x := tensor.Ones[float32](tensor.Shape{100, 100}, backend)
	y := drop.Forward(x)

	zeros := 0
	for _, v := range y.Data() {
		switch v {
		case 0:
			zeros++
		case 2:
		default:
			t.Fatalf("unexpected value %f; survivors must be scaled to 1/(1-p)", v)
		}
	}
	assert.InDelta(t, 5000, zeros, 300)
}

func TestDropout_EvalIsIdentity(t *testing.T) {
	backend := cpu.New()
	drop := NewDropout[*cpu.CPUBackend](0.5)
	drop.SetTraining(false)

	x := tensor.Randn[float32](tensor.Shape{4, 8}, backend)

	assert.Same(t, x, drop.Forward(x))
	assert.False(t, drop.Training())
}

func TestDropout_Reproducible(t *testing.T) {
	backend := cpu.New()
	x := tensor.Ones[float32](tensor.Shape{64}, backend)

	Seed(3)
	a := NewDropout[*cpu.CPUBackend](0.5).Forward(x)
	Seed(3)
	b := NewDropout[*cpu.CPUBackend](0.5).Forward(x)

	assert.Equal(t, a.Data(), b.Data())
}

func TestDropout_InvalidProbability(t *testing.T) {
	assert.Panics(t, func() { NewDropout[*cpu.CPUBackend](1) })
	assert.Panics(t, func() { NewDropout[*cpu.CPUBackend](-0.1) })
	assert.Equal(t, "Dropout(p=0.5)", NewDropout[*cpu.CPUBackend](0.5).String())
}
