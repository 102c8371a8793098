// Package nn implements the neural network modules VGG networks are
// assembled from.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named learnable tensors
//   - Conv2D, MaxPool2D, BatchNorm2D: Feature extraction stages
//   - Linear, Dropout, Flatten: Classifier stages
//   - ReLU: Rectifying nonlinearity
//   - Sequential: Container for stacking layers
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/born-ml/vgg/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential[B](
//	    nn.NewConv2D(3, 64, 3, 3, 1, 1, true, backend),
//	    nn.NewReLU[B](),
//	    nn.NewMaxPool2D(2, 2, backend),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	//
	// Modules panic when the input shape does not match what they were
	// built for, e.g. Conv2D expects [batch, in_channels, height, width].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all learnable parameters of this module,
	// including those of nested modules. Modules without parameters
	// return an empty slice.
	Parameters() []*Parameter[B]
}

// Trainer is implemented by modules whose forward pass differs between
// training and inference, such as Dropout and BatchNorm2D.
//
// Modules start in training mode.
type Trainer interface {
	SetTraining(training bool)
}

// CountParameters returns the total number of scalar values held by params.
func CountParameters[B tensor.Backend](params []*Parameter[B]) int {
	n := 0
	for _, p := range params {
		n += p.NumElements()
	}
	return n
}
