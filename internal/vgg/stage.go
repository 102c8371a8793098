// Package vgg defines the VGG architecture family: a configuration table of
// stage descriptors, a builder that expands a row into feature-extraction
// layers, a fixed classifier head and the Network composing them.
package vgg

import (
	"fmt"
	"strings"
)

// StageKind tags a Stage descriptor. The zero value is not a valid kind.
type StageKind uint8

// Stage kinds.
const (
	KindConv StageKind = iota + 1 // 3x3 convolution producing Channels outputs
	KindPool                      // 2x2 max pooling, stride 2
)

// String returns the kind name.
func (k StageKind) String() string {
	switch k {
	case KindConv:
		return "conv"
	case KindPool:
		return "pool"
	default:
		return fmt.Sprintf("StageKind(%d)", uint8(k))
	}
}

// Stage is one descriptor of a configuration row: either a convolution
// stage with a channel count or a pooling marker.
//
// Build a Stage with Channels or Pool.
type Stage struct {
	kind     StageKind
	channels int
}

// Channels returns a convolution stage producing n output channels.
func Channels(n int) Stage {
	return Stage{kind: KindConv, channels: n}
}

// Pool returns a pooling stage.
func Pool() Stage {
	return Stage{kind: KindPool}
}

// Kind returns the stage kind.
func (s Stage) Kind() StageKind {
	return s.kind
}

// Channels returns the output channel count of a convolution stage and 0
// for a pooling stage.
func (s Stage) Channels() int {
	return s.channels
}

// String renders the stage in table notation: the channel count, or "M".
func (s Stage) String() string {
	switch s.kind {
	case KindConv:
		return fmt.Sprint(s.channels)
	case KindPool:
		return "M"
	default:
		return s.kind.String()
	}
}

// Row is an ordered sequence of stages; order is execution order.
type Row []Stage

// PoolCount returns the number of pooling stages.
func (r Row) PoolCount() int {
	n := 0
	for _, s := range r {
		if s.kind == KindPool {
			n++
		}
	}
	return n
}

// ConvCount returns the number of convolution stages.
func (r Row) ConvCount() int {
	n := 0
	for _, s := range r {
		if s.kind == KindConv {
			n++
		}
	}
	return n
}

// OutChannels returns the channel count after running the row on an input
// with in channels.
func (r Row) OutChannels(in int) int {
	for _, s := range r {
		if s.kind == KindConv {
			in = s.channels
		}
	}
	return in
}

// Validate reports whether every stage is a pooling marker or a
// convolution with a positive channel count. Errors wrap ErrInvalidRow.
func (r Row) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("%w: empty row", ErrInvalidRow)
	}
	for i, s := range r {
		switch s.kind {
		case KindPool:
		case KindConv:
			if s.channels <= 0 {
				return fmt.Errorf("%w: stage %d has %d channels", ErrInvalidRow, i, s.channels)
			}
		default:
			return fmt.Errorf("%w: stage %d has unknown kind %s", ErrInvalidRow, i, s.kind)
		}
	}
	return nil
}

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	return append(Row(nil), r...)
}

// String renders the row in table notation, e.g. "[64 M 128 M]".
func (r Row) String() string {
	parts := make([]string, len(r))
	for i, s := range r {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
