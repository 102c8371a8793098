// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network modules VGG networks are built
// from.
//
// # Overview
//
// Modules implement Forward and Parameters and compose with Sequential:
//   - Conv2D, MaxPool2D, BatchNorm2D: feature extraction
//   - Linear, Dropout, Flatten: classifier
//   - ReLU: activation
//
// Dropout and BatchNorm2D behave differently in training and inference;
// they implement Trainer and start in training mode.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/vgg/backend/cpu"
//	    "github.com/born-ml/vgg/nn"
//	    "github.com/born-ml/vgg/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    nn.Seed(42)
//
//	    block := nn.NewSequential[*cpu.Backend](
//	        nn.NewConv2D(3, 64, 3, 3, 1, 1, true, backend),
//	        nn.NewBatchNorm2D(64, backend),
//	        nn.NewReLU[*cpu.Backend](),
//	        nn.NewMaxPool2D(2, 2, backend),
//	    )
//	    block.SetTraining(false)
//
//	    x := tensor.Randn[float32](tensor.Shape{1, 3, 32, 32}, backend)
//	    y := block.Forward(x) // [1, 64, 16, 16]
//	}
//
// # Initialization
//
// Convolutions use Kaiming-normal weights (fan_out), linear layers N(0, 0.01),
// biases zero and normalization scale one. Seed makes it reproducible.
package nn
