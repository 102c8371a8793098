// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensors for building and running the VGG
// networks.
//
// # Overview
//
// This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting for element-wise operations
//   - Zero-copy reshapes
//   - Seedable random creation for reproducible inputs
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/vgg/backend/cpu"
//	    "github.com/born-ml/vgg/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // A synthetic batch of two RGB images
//	    x := tensor.Randn[float32](tensor.Shape{2, 3, 224, 224}, backend)
//
//	    // Flatten every non-batch dimension
//	    flat := x.Reshape(2, -1) // [2, 150528]
//	}
//
// # Supported Data Types
//
// The DType constraint admits float32 and float64. Network modules operate
// on float32.
//
// # Backends
//
// Every tensor carries the backend that computes its operations. The CPU
// backend lives in the backend/cpu package.
package tensor
