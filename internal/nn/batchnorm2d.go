package nn

import (
	"fmt"

	"github.com/born-ml/vgg/internal/tensor"
)

// Default BatchNorm2D hyperparameters.
const (
	DefaultBatchNormEps      = 1e-5
	DefaultBatchNormMomentum = 0.1
)

// BatchNorm2D normalizes each channel of a [N, C, H, W] batch.
//
//	y = gamma * (x - mean) / sqrt(var + eps) + beta
//
// In training mode mean and var are the statistics of the current batch over
// the N, H and W axes, and the running statistics are updated:
//
//	running = (1 - momentum) * running + momentum * batch
//
// where the variance fed into the running estimate is unbiased. In eval
// mode the running statistics are used instead, making Forward a fixed
// per-channel affine map.
//
// Example:
//
//	bn := nn.NewBatchNorm2D(64, backend)
//	out := bn.Forward(x) // x: [2, 64, 224, 224]
type BatchNorm2D[B tensor.Backend] struct {
	numFeatures int
	eps         float64
	momentum    float64
	training    bool

	gamma *Parameter[B] // [C], initialized to ones
	beta  *Parameter[B] // [C], initialized to zeros

	runningMean *tensor.Tensor[float32, B] // [C]
	runningVar  *tensor.Tensor[float32, B] // [C]

	backend B
}

// NewBatchNorm2D creates a batch normalization layer over numFeatures
// channels with eps 1e-5 and momentum 0.1.
func NewBatchNorm2D[B tensor.Backend](numFeatures int, backend B) *BatchNorm2D[B] {
	if numFeatures <= 0 {
		panic(fmt.Sprintf("batchnorm2d: invalid number of features %d", numFeatures))
	}

	shape := tensor.Shape{numFeatures}
	return &BatchNorm2D[B]{
		numFeatures: numFeatures,
		eps:         DefaultBatchNormEps,
		momentum:    DefaultBatchNormMomentum,
		training:    true,
		gamma:       NewParameter("weight", Ones(shape, backend)),
		beta:        NewParameter("bias", Zeros(shape, backend)),
		runningMean: Zeros(shape, backend),
		runningVar:  Ones(shape, backend),
		backend:     backend,
	}
}

// Forward normalizes input [batch, channels, height, width].
func (bn *BatchNorm2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("batchnorm2d: expected 4D input [N,C,H,W], got %dD", len(shape)))
	}
	if shape[1] != bn.numFeatures {
		panic(fmt.Sprintf("batchnorm2d: input channels %d != expected %d", shape[1], bn.numFeatures))
	}

	mean, variance := bn.runningMean.Raw(), bn.runningVar.Raw()
	if bn.training {
		count := shape[0] * shape[2] * shape[3]
		if count < 2 {
			panic(fmt.Sprintf("batchnorm2d: expected more than 1 value per channel when training, got input shape %v", shape))
		}
		mean, variance = bn.backend.ChannelMoments(input.Raw())
		bn.updateRunningStats(mean.AsFloat32(), variance.AsFloat32(), count)
	}

	out := bn.backend.BatchNorm2D(input.Raw(), mean, variance,
		bn.gamma.Tensor().Raw(), bn.beta.Tensor().Raw(), bn.eps)
	return tensor.New[float32, B](out, bn.backend)
}

func (bn *BatchNorm2D[B]) updateRunningStats(mean, variance []float32, count int) {
	correction := float64(count) / float64(count-1)
	m := bn.momentum

	rm := bn.runningMean.Data()
	rv := bn.runningVar.Data()
	for c := range rm {
		rm[c] = float32((1-m)*float64(rm[c]) + m*float64(mean[c]))
		rv[c] = float32((1-m)*float64(rv[c]) + m*float64(variance[c])*correction)
	}
}

// Parameters returns the scale (gamma) and shift (beta) parameters.
// Running statistics are buffers, not parameters.
func (bn *BatchNorm2D[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{bn.gamma, bn.beta}
}

// SetTraining switches between batch statistics (true) and running
// statistics (false).
func (bn *BatchNorm2D[B]) SetTraining(training bool) {
	bn.training = training
}

// Training reports whether the layer uses batch statistics.
func (bn *BatchNorm2D[B]) Training() bool {
	return bn.training
}

// RunningMean returns the running mean buffer.
func (bn *BatchNorm2D[B]) RunningMean() *tensor.Tensor[float32, B] {
	return bn.runningMean
}

// RunningVar returns the running variance buffer.
func (bn *BatchNorm2D[B]) RunningVar() *tensor.Tensor[float32, B] {
	return bn.runningVar
}

// NumFeatures returns the number of normalized channels.
func (bn *BatchNorm2D[B]) NumFeatures() int {
	return bn.numFeatures
}

// String returns a string representation of the layer.
func (bn *BatchNorm2D[B]) String() string {
	return fmt.Sprintf("BatchNorm2D(num_features=%d, eps=%g, momentum=%g)", bn.numFeatures, bn.eps, bn.momentum)
}
