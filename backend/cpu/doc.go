// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Matrix products through gonum's BLAS (blas32/blas64 Gemm)
//   - Im2col convolutions, one image at a time
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/vgg/backend/cpu"
//	    "github.com/born-ml/vgg/vgg"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    net := vgg.VGG16BN(backend)
//	}
//
// # Thread Safety
//
// The backend holds no mutable state. Kernels split work across goroutines
// internally and return only after all of them finish.
package cpu
