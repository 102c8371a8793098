package vgg

import (
	"fmt"

	"github.com/born-ml/vgg/internal/nn"
	"github.com/born-ml/vgg/internal/tensor"
)

// Classifier head geometry. The head accepts only the features produced by
// InputSize x InputSize images after PoolStages halvings of a row ending in
// FeatureChannels channels.
const (
	InputSize       = 224  // Input height and width
	FeatureChannels = 512  // Channels leaving the feature stages
	PoolStages      = 5    // Pooling stages in every row
	HiddenFeatures  = 4096 // Width of the two hidden layers
	NumClasses      = 10   // Class scores per sample
	DropoutRate     = 0.5  // Drop probability before each hidden layer

	// GridSize is the spatial size of the final feature map, 224/2^5 = 7.
	GridSize = InputSize >> PoolStages

	// FlattenFeatures is the input width of the first head layer, 25088.
	FlattenFeatures = FeatureChannels * GridSize * GridSize
)

// head describes the classifier geometry a Network is built against.
type head struct {
	inputSize int
	channels  int
	pools     int
	hidden    int
	classes   int
	dropout   float64
}

var defaultHead = head{
	inputSize: InputSize,
	channels:  FeatureChannels,
	pools:     PoolStages,
	hidden:    HiddenFeatures,
	classes:   NumClasses,
	dropout:   DropoutRate,
}

func (h head) grid() int {
	return h.inputSize >> h.pools
}

func (h head) flattenFeatures() int {
	return h.channels * h.grid() * h.grid()
}

// inputShape returns the expected input with batch size n.
func (h head) inputShape(n int) tensor.Shape {
	return tensor.Shape{n, InputChannels, h.inputSize, h.inputSize}
}

// checkRow verifies that row produces exactly the features the head
// consumes.
func (h head) checkRow(row Row) error {
	if err := row.Validate(); err != nil {
		return err
	}
	if got := row.PoolCount(); got != h.pools {
		return fmt.Errorf("%w: %d pooling stages, head expects %d", ErrIncompatibleHead, got, h.pools)
	}
	if got := row.OutChannels(InputChannels); got != h.channels {
		return fmt.Errorf("%w: row ends with %d channels, head expects %d", ErrIncompatibleHead, got, h.channels)
	}
	return nil
}

// newClassifier assembles the fixed head:
//
//	Dropout -> Linear(flatten, hidden) -> ReLU ->
//	Dropout -> Linear(hidden, hidden) -> ReLU ->
//	Linear(hidden, classes)
func newClassifier[B tensor.Backend](h head, backend B) *nn.Sequential[B] {
	return nn.NewSequential[B](
		nn.NewDropout[B](h.dropout),
		nn.NewLinear(h.flattenFeatures(), h.hidden, backend),
		nn.NewReLU[B](),
		nn.NewDropout[B](h.dropout),
		nn.NewLinear(h.hidden, h.hidden, backend),
		nn.NewReLU[B](),
		nn.NewLinear(h.hidden, h.classes, backend),
	)
}
