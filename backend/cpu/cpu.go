// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/vgg/internal/backend/cpu"
	"github.com/born-ml/vgg/internal/parallel"
	"github.com/born-ml/vgg/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend that uses all available cores.
//
// Example:
//
//	import (
//	    "github.com/born-ml/vgg/backend/cpu"
//	    "github.com/born-ml/vgg/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithWorkers creates a CPU backend whose element-wise kernels use at
// most workers goroutines. workers <= 0 selects all cores, 1 runs
// sequentially.
func NewWithWorkers(workers int) *Backend {
	cfg := parallel.DefaultConfig()
	switch {
	case workers == 1:
		cfg.Enabled = false
	case workers > 1:
		cfg.NumWorkers = workers
	}
	return internalcpu.NewWithConfig(cfg)
}
