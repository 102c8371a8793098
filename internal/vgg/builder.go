package vgg

import (
	"fmt"

	"github.com/born-ml/vgg/internal/nn"
	"github.com/born-ml/vgg/internal/tensor"
)

// InputChannels is the channel count of the input images (RGB).
const InputChannels = 3

// Fixed geometry of the feature stages.
const (
	convKernel  = 3 // 3x3 receptive field
	convPadding = 1 // preserves height and width
	poolKernel  = 2
	poolStride  = 2
)

// Build expands a configuration row into feature-extraction stages.
//
// Starting from InputChannels, each pooling marker emits a 2x2/stride-2
// MaxPool2D, and each channel count n emits a 3x3 Conv2D (current -> n,
// padding 1), a BatchNorm2D(n) when normalize is set, and a ReLU. Build
// returns the stages and the final channel count.
//
// A stage of unknown kind is a programming error and panics.
//
// Example:
//
//	row, _ := vgg.Lookup("VGG11")
//	features, channels := vgg.Build(row, true, backend) // channels == 512
func Build[B tensor.Backend](row Row, normalize bool, backend B) (*nn.Sequential[B], int) {
	features := nn.NewSequential[B]()
	channels := InputChannels

	for i, stage := range row {
		switch stage.Kind() {
		case KindPool:
			features.Add(nn.NewMaxPool2D(poolKernel, poolStride, backend))
		case KindConv:
			n := stage.Channels()
			features.Add(nn.NewConv2D(channels, n, convKernel, convKernel, 1, convPadding, true, backend))
			if normalize {
				features.Add(nn.NewBatchNorm2D(n, backend))
			}
			features.Add(nn.NewReLU[B]())
			channels = n
		default:
			panic(fmt.Sprintf("vgg: stage %d has unknown kind %s", i, stage.Kind()))
		}
	}

	return features, channels
}

// StageCount returns the number of modules Build emits for row without
// allocating any parameters.
func StageCount(row Row, normalize bool) int {
	perConv := 2
	if normalize {
		perConv = 3
	}
	return row.PoolCount() + perConv*row.ConvCount()
}
