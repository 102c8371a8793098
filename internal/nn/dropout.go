package nn

import (
	"fmt"

	"github.com/born-ml/vgg/internal/tensor"
)

// Dropout zeroes each element with probability p during training and scales
// the survivors by 1/(1-p), so the expected activation is unchanged. In eval
// mode it is the identity.
//
// Masks are drawn from the generator reseeded by Seed.
//
// Example:
//
//	drop := nn.NewDropout[B](0.5)
//	y := drop.Forward(x)
type Dropout[B tensor.Backend] struct {
	p        float64
	training bool
}

// NewDropout creates a dropout layer with drop probability p in [0, 1).
func NewDropout[B tensor.Backend](p float64) *Dropout[B] {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("dropout: probability must be in [0, 1), got %g", p))
	}
	return &Dropout[B]{p: p, training: true}
}

// Forward applies the dropout mask in training mode.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.training || d.p == 0 {
		return input
	}

	mask := tensor.Zeros[float32](input.Shape(), input.Backend())
	keep := float32(1 / (1 - d.p))
	rng := newRNG()
	data := mask.Data()
	for i := range data {
		if rng.Float64() >= d.p {
			data[i] = keep
		}
	}

	return input.Mul(mask)
}

// Parameters returns nil; Dropout has no learnable parameters.
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}

// SetTraining enables (true) or disables (false) the dropout mask.
func (d *Dropout[B]) SetTraining(training bool) {
	d.training = training
}

// Training reports whether the mask is applied.
func (d *Dropout[B]) Training() bool {
	return d.training
}

// P returns the drop probability.
func (d *Dropout[B]) P() float64 {
	return d.p
}

// String returns a string representation of the layer.
func (d *Dropout[B]) String() string {
	return fmt.Sprintf("Dropout(p=%g)", d.p)
}
