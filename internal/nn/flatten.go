package nn

import (
	"fmt"

	"github.com/born-ml/vgg/internal/tensor"
)

// Flatten collapses every non-batch dimension into one feature axis:
// [N, C, H, W] -> [N, C*H*W]. The result shares storage with the input.
type Flatten[B tensor.Backend] struct{}

// NewFlatten creates a new Flatten module.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return &Flatten[B]{}
}

// Forward reshapes input to [batch, -1].
func (f *Flatten[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("flatten: expected at least 2D input, got shape %v", shape))
	}
	return input.Reshape(shape[0], -1)
}

// Parameters returns nil; Flatten has no learnable parameters.
func (f *Flatten[B]) Parameters() []*Parameter[B] {
	return nil
}

// String returns a string representation of the layer.
func (f *Flatten[B]) String() string {
	return "Flatten()"
}
