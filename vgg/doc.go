// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package vgg provides the VGG11/13/16/19 convolutional networks, with and
// without batch normalization.
//
// # Overview
//
// Each architecture is a configuration row of stages: a channel count emits
// a 3x3 convolution (optionally followed by batch normalization) and a ReLU,
// and a pooling marker emits a 2x2 max pool. The rows feed a fixed
// classifier head that expects 512x7x7 features, so inputs must be
// [N, 3, 224, 224]. The network produces [N, 10] class scores.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/vgg/backend/cpu"
//	    "github.com/born-ml/vgg/tensor"
//	    "github.com/born-ml/vgg/vgg"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    net := vgg.VGG11(backend)
//	    net.Eval()
//
//	    x := tensor.Randn[float32](tensor.Shape{2, 3, 224, 224}, backend)
//	    scores := net.Forward(x) // [2, 10]
//	}
//
// # Custom Architectures
//
// Rows can be built with Channels and Pool and registered in a Catalog.
// They must end in 512 channels after exactly five pools to fit the head:
//
//	row := vgg.Row{vgg.Channels(64), vgg.Pool(), ...}
//	net, err := vgg.NewFromRow("custom", row, true, backend)
package vgg
