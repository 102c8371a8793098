package vgg

import (
	"errors"
	"fmt"

	"github.com/born-ml/vgg/internal/tensor"
)

// Common errors.
var (
	ErrUnknownArchitecture   = errors.New("unknown architecture")
	ErrDuplicateArchitecture = errors.New("architecture already defined")
	ErrInvalidRow            = errors.New("invalid configuration row")
	ErrIncompatibleHead      = errors.New("row does not match the classifier head")
	ErrShapeMismatch         = errors.New("input shape mismatch")
)

// ShapeError describes an input batch that does not have the layout the
// network was built for.
type ShapeError struct {
	Got    tensor.Shape // Shape of the rejected input
	Want   tensor.Shape // Expected shape; the batch dimension is free
	Reason string       // Which dimension is wrong
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	want := "N"
	if len(e.Want) > 1 {
		for _, d := range e.Want[1:] {
			want += fmt.Sprintf(" %d", d)
		}
	}
	return fmt.Sprintf("%s: got %v, want [%s]: %s", ErrShapeMismatch, e.Got, want, e.Reason)
}

// Unwrap makes ShapeError match ErrShapeMismatch with errors.Is.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
