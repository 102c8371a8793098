package vgg

import (
	"fmt"
	"strings"

	"github.com/born-ml/vgg/internal/nn"
	"github.com/born-ml/vgg/internal/tensor"
)

// Network is a VGG model: feature stages expanded from a configuration row,
// a flatten step and the fixed classifier head.
//
// Input shape:  [batch, 3, 224, 224]
// Output shape: [batch, 10]
//
// A Network starts in training mode, where dropout is active and batch
// normalization uses batch statistics. Call Eval for deterministic
// inference.
//
// Example:
//
//	backend := cpu.New()
//	net, err := vgg.New("VGG16", true, backend)
//	if err != nil {
//	    return err
//	}
//	net.Eval()
//	scores := net.Forward(batch) // [N, 10]
type Network[B tensor.Backend] struct {
	name      string
	row       Row
	normalize bool
	channels  int
	head      head
	training  bool

	features   *nn.Sequential[B]
	flatten    *nn.Flatten[B]
	classifier *nn.Sequential[B]
}

// Compile-time checks that Network is a module with a training mode.
var (
	_ nn.Module[tensor.Backend] = (*Network[tensor.Backend])(nil)
	_ nn.Trainer                = (*Network[tensor.Backend])(nil)
)

// New builds the built-in architecture name, with batch normalization when
// normalize is set. Unknown names fail with ErrUnknownArchitecture.
func New[B tensor.Backend](name string, normalize bool, backend B) (*Network[B], error) {
	row, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return NewFromRow(name, row, normalize, backend)
}

// NewFromRow builds a network from an arbitrary row. The row must validate
// and must end with FeatureChannels channels after exactly PoolStages
// pooling stages; otherwise it fails with ErrInvalidRow or
// ErrIncompatibleHead.
func NewFromRow[B tensor.Backend](name string, row Row, normalize bool, backend B) (*Network[B], error) {
	return newNetwork(name, row, normalize, defaultHead, backend)
}

func newNetwork[B tensor.Backend](name string, row Row, normalize bool, h head, backend B) (*Network[B], error) {
	if err := h.checkRow(row); err != nil {
		return nil, fmt.Errorf("architecture %q: %w", name, err)
	}

	features, channels := Build(row, normalize, backend)

	return &Network[B]{
		name:       name,
		row:        row.Clone(),
		normalize:  normalize,
		channels:   channels,
		head:       h,
		training:   true,
		features:   features,
		flatten:    nn.NewFlatten[B](),
		classifier: newClassifier(h, backend),
	}, nil
}

// Forward computes class scores for a batch.
//
// Input: [batch, 3, 224, 224]
// Output: [batch, 10].
//
// Panics with a *ShapeError if the input does not have that layout; use
// Infer to get the error instead.
func (n *Network[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if err := n.CheckInput(input.Shape()); err != nil {
		panic(err)
	}

	x := n.features.Forward(input)
	x = n.flatten.Forward(x)
	return n.classifier.Forward(x)
}

// Infer is Forward with the input check reported as an error wrapping
// ErrShapeMismatch.
func (n *Network[B]) Infer(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	if err := n.CheckInput(input.Shape()); err != nil {
		return nil, err
	}
	return n.Forward(input), nil
}

// CheckInput reports whether shape is a valid input batch. The returned
// error is a *ShapeError.
func (n *Network[B]) CheckInput(shape tensor.Shape) error {
	fail := func(reason string, args ...any) error {
		return &ShapeError{
			Got:    shape.Clone(),
			Want:   n.head.inputShape(0),
			Reason: fmt.Sprintf(reason, args...),
		}
	}

	if len(shape) != 4 {
		return fail("expected rank 4, got %d", len(shape))
	}
	if shape[0] < 1 {
		return fail("batch size %d", shape[0])
	}
	if shape[1] != InputChannels {
		return fail("%d channels", shape[1])
	}
	if shape[2] != n.head.inputSize || shape[3] != n.head.inputSize {
		return fail("spatial size %dx%d", shape[2], shape[3])
	}
	return nil
}

// InputShape returns the expected input shape for a batch of size batch.
func (n *Network[B]) InputShape(batch int) tensor.Shape {
	return n.head.inputShape(batch)
}

// Parameters returns the feature parameters followed by the classifier
// parameters.
func (n *Network[B]) Parameters() []*nn.Parameter[B] {
	return append(n.features.Parameters(), n.classifier.Parameters()...)
}

// NumParameters returns the total number of learnable values.
func (n *Network[B]) NumParameters() int {
	return nn.CountParameters(n.Parameters())
}

// Features returns the feature-extraction stages.
func (n *Network[B]) Features() *nn.Sequential[B] {
	return n.features
}

// Classifier returns the classifier head.
func (n *Network[B]) Classifier() *nn.Sequential[B] {
	return n.classifier
}

// FeatureChannels returns the channel count leaving the feature stages.
func (n *Network[B]) FeatureChannels() int {
	return n.channels
}

// Name returns the architecture name.
func (n *Network[B]) Name() string {
	return n.name
}

// Row returns a copy of the configuration row the network was built from.
func (n *Network[B]) Row() Row {
	return n.row.Clone()
}

// Normalized reports whether the feature stages include batch
// normalization.
func (n *Network[B]) Normalized() bool {
	return n.normalize
}

// SetTraining switches dropout and batch normalization between training
// (true) and inference (false) behavior.
func (n *Network[B]) SetTraining(training bool) {
	n.training = training
	n.features.SetTraining(training)
	n.classifier.SetTraining(training)
}

// Train puts the network in training mode.
func (n *Network[B]) Train() {
	n.SetTraining(true)
}

// Eval puts the network in inference mode.
func (n *Network[B]) Eval() {
	n.SetTraining(false)
}

// Training reports whether the network is in training mode.
func (n *Network[B]) Training() bool {
	return n.training
}

// String lists the network layer by layer.
func (n *Network[B]) String() string {
	title := n.name
	if n.normalize {
		title += "-BN"
	}
	indent := func(s string) string { return strings.ReplaceAll(s, "\n", "\n  ") }

	return fmt.Sprintf("%s(\n  (features): %s\n  (flatten): %s\n  (classifier): %s\n)",
		title, indent(n.features.String()), n.flatten.String(), indent(n.classifier.String()))
}
