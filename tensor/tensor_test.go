// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/born-ml/vgg/backend/cpu"
	"github.com/born-ml/vgg/tensor"
)

// TestBackendInterface verifies that the CPU backend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.Backend)(nil)
}

// TestRawTensorAPI verifies RawTensor type alias exposes expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", raw.DType())
	}
	if raw.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", raw.Device())
	}
	if raw.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", raw.NumElements())
	}
	if raw.ByteSize() != 6*4 {
		t.Errorf("ByteSize() = %d, want %d", raw.ByteSize(), 6*4)
	}
}

// TestRandnSeeded verifies that equal seeds give equal tensors.
func TestRandnSeeded(t *testing.T) {
	backend := cpu.New()

	a := tensor.RandnSeeded[float32](tensor.Shape{2, 3, 4, 4}, 42, backend)
	b := tensor.RandnSeeded[float32](tensor.Shape{2, 3, 4, 4}, 42, backend)
	c := tensor.RandnSeeded[float32](tensor.Shape{2, 3, 4, 4}, 7, backend)

	same, differ := true, false
	for i := range a.Data() {
		if a.Data()[i] != b.Data()[i] {
			same = false
		}
		if a.Data()[i] != c.Data()[i] {
			differ = true
		}
	}
	if !same {
		t.Error("RandnSeeded with equal seeds produced different tensors")
	}
	if !differ {
		t.Error("RandnSeeded with different seeds produced equal tensors")
	}
}

// TestCreationAndReshape covers the public creation helpers.
func TestCreationAndReshape(t *testing.T) {
	backend := cpu.New()

	x := tensor.Full[float32](tensor.Shape{2, 512, 7, 7}, 1.5, backend)
	flat := x.Reshape(2, -1)
	if !flat.Shape().Equal(tensor.Shape{2, 25088}) {
		t.Errorf("Reshape(2, -1) = %v, want [2 25088]", flat.Shape())
	}

	y, err := tensor.FromSlice([]float32{-1, 2}, tensor.Shape{2}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if got := y.ReLU().Data(); got[0] != 0 || got[1] != 2 {
		t.Errorf("ReLU() = %v, want [0 2]", got)
	}

	shape, broadcast, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{3, 4})
	if err != nil || !broadcast || !shape.Equal(tensor.Shape{3, 4}) {
		t.Errorf("BroadcastShapes = %v, %v, %v", shape, broadcast, err)
	}
}
