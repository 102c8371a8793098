// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package vgg

import (
	"github.com/born-ml/vgg/internal/nn"
	"github.com/born-ml/vgg/internal/tensor"
	"github.com/born-ml/vgg/internal/vgg"
)

// Stage is one descriptor of a configuration row.
type Stage = vgg.Stage

// StageKind tags a Stage.
type StageKind = vgg.StageKind

// Stage kinds.
const (
	KindConv = vgg.KindConv
	KindPool = vgg.KindPool
)

// Row is an ordered sequence of stages.
type Row = vgg.Row

// Network is a VGG model.
type Network[B tensor.Backend] = vgg.Network[B]

// Catalog is a lookup table of architecture rows.
type Catalog = vgg.Catalog

// ShapeError describes an input batch with the wrong layout.
type ShapeError = vgg.ShapeError

// Errors.
var (
	ErrUnknownArchitecture   = vgg.ErrUnknownArchitecture
	ErrDuplicateArchitecture = vgg.ErrDuplicateArchitecture
	ErrInvalidRow            = vgg.ErrInvalidRow
	ErrIncompatibleHead      = vgg.ErrIncompatibleHead
	ErrShapeMismatch         = vgg.ErrShapeMismatch
)

// Geometry of the input and the classifier head.
const (
	InputChannels   = vgg.InputChannels
	InputSize       = vgg.InputSize
	FeatureChannels = vgg.FeatureChannels
	PoolStages      = vgg.PoolStages
	HiddenFeatures  = vgg.HiddenFeatures
	NumClasses      = vgg.NumClasses
	FlattenFeatures = vgg.FlattenFeatures
)

// Channels returns a convolution stage producing n channels.
func Channels(n int) Stage { return vgg.Channels(n) }

// Pool returns a pooling stage.
func Pool() Stage { return vgg.Pool() }

// Lookup returns a copy of a built-in configuration row.
func Lookup(name string) (Row, error) { return vgg.Lookup(name) }

// Names returns the built-in architecture names.
func Names() []string { return vgg.Names() }

// NewCatalog returns a catalog seeded with the built-in architectures.
func NewCatalog() *Catalog { return vgg.NewCatalog() }

// Build expands a row into feature-extraction stages and returns them with
// the final channel count.
func Build[B tensor.Backend](row Row, normalize bool, backend B) (*nn.Sequential[B], int) {
	return vgg.Build(row, normalize, backend)
}

// StageCount returns the number of feature stages Build produces for row.
func StageCount(row Row, normalize bool) int { return vgg.StageCount(row, normalize) }

// New builds a built-in architecture by name.
//
// Example:
//
//	net, err := vgg.New("VGG16", true, cpu.New())
func New[B tensor.Backend](name string, normalize bool, backend B) (*Network[B], error) {
	return vgg.New(name, normalize, backend)
}

// NewFromRow builds a network from a custom row.
func NewFromRow[B tensor.Backend](name string, row Row, normalize bool, backend B) (*Network[B], error) {
	return vgg.NewFromRow(name, row, normalize, backend)
}

// Named constructors

// VGG11 builds VGG11 without normalization.
func VGG11[B tensor.Backend](backend B) *Network[B] { return vgg.VGG11(backend) }

// VGG13 builds VGG13 without normalization.
func VGG13[B tensor.Backend](backend B) *Network[B] { return vgg.VGG13(backend) }

// VGG16 builds VGG16 without normalization.
func VGG16[B tensor.Backend](backend B) *Network[B] { return vgg.VGG16(backend) }

// VGG19 builds VGG19 without normalization.
func VGG19[B tensor.Backend](backend B) *Network[B] { return vgg.VGG19(backend) }

// VGG11BN builds VGG11 with batch normalization.
func VGG11BN[B tensor.Backend](backend B) *Network[B] { return vgg.VGG11BN(backend) }

// VGG13BN builds VGG13 with batch normalization.
func VGG13BN[B tensor.Backend](backend B) *Network[B] { return vgg.VGG13BN(backend) }

// VGG16BN builds VGG16 with batch normalization.
func VGG16BN[B tensor.Backend](backend B) *Network[B] { return vgg.VGG16BN(backend) }

// VGG19BN builds VGG19 with batch normalization.
func VGG19BN[B tensor.Backend](backend B) *Network[B] { return vgg.VGG19BN(backend) }
