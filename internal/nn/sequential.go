package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/vgg/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input, creating a
// sequential pipeline of transformations.
//
// Example:
//
//	features := nn.NewSequential[B](
//	    nn.NewConv2D(3, 64, 3, 3, 1, 1, true, backend),
//	    nn.NewReLU[B](),
//	    nn.NewMaxPool2D(2, 2, backend),
//	)
//
//	output := features.Forward(input)
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	output := input

	for _, module := range s.modules {
		output = module.Forward(output)
	}

	return output
}

// Parameters returns all learnable parameters from all modules, in order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]

	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}

	return params
}

// SetTraining switches every nested module that implements Trainer.
func (s *Sequential[B]) SetTraining(training bool) {
	for _, module := range s.modules {
		if t, ok := module.(Trainer); ok {
			t.SetTraining(training)
		}
	}
}

// Add appends a module to the sequence.
//
// This allows building models incrementally:
//
//	features := nn.NewSequential[B]()
//	features.Add(nn.NewConv2D(3, 64, 3, 3, 1, 1, true, backend))
//	features.Add(nn.NewReLU[B]())
func (s *Sequential[B]) Add(module Module[B]) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[B]) Module(index int) Module[B] {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}

// String lists the contained modules one per line, prefixed with their
// index:
//
//	Sequential(
//	  (0): Conv2D(in_channels=3, out_channels=64, ...)
//	  (1): ReLU()
//	)
func (s *Sequential[B]) String() string {
	var sb strings.Builder
	sb.WriteString("Sequential(\n")
	for i, module := range s.modules {
		desc := fmt.Sprintf("%T", module)
		if str, ok := module.(fmt.Stringer); ok {
			desc = str.String()
		}
		// Nested containers are indented one more level.
		desc = strings.ReplaceAll(desc, "\n", "\n  ")
		fmt.Fprintf(&sb, "  (%d): %s\n", i, desc)
	}
	sb.WriteString(")")
	return sb.String()
}
