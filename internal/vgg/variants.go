package vgg

import (
	"github.com/born-ml/vgg/internal/tensor"
)

// mustNew builds a built-in architecture. The built-in rows always match
// the classifier head, so an error here is a programming error.
func mustNew[B tensor.Backend](name string, normalize bool, backend B) *Network[B] {
	net, err := New(name, normalize, backend)
	if err != nil {
		panic(err)
	}
	return net
}

// VGG11 builds the 11-layer network without normalization.
func VGG11[B tensor.Backend](backend B) *Network[B] { return mustNew("VGG11", false, backend) }

// VGG13 builds the 13-layer network without normalization.
func VGG13[B tensor.Backend](backend B) *Network[B] { return mustNew("VGG13", false, backend) }

// VGG16 builds the 16-layer network without normalization.
func VGG16[B tensor.Backend](backend B) *Network[B] { return mustNew("VGG16", false, backend) }

// VGG19 builds the 19-layer network without normalization.
func VGG19[B tensor.Backend](backend B) *Network[B] { return mustNew("VGG19", false, backend) }

// VGG11BN builds the 11-layer network with batch normalization.
func VGG11BN[B tensor.Backend](backend B) *Network[B] { return mustNew("VGG11", true, backend) }

// VGG13BN builds the 13-layer network with batch normalization.
func VGG13BN[B tensor.Backend](backend B) *Network[B] { return mustNew("VGG13", true, backend) }

// VGG16BN builds the 16-layer network with batch normalization.
func VGG16BN[B tensor.Backend](backend B) *Network[B] { return mustNew("VGG16", true, backend) }

// VGG19BN builds the 19-layer network with batch normalization.
func VGG19BN[B tensor.Backend](backend B) *Network[B] { return mustNew("VGG19", true, backend) }

// Constructor builds one named variant.
type Constructor[B tensor.Backend] func(backend B) *Network[B]

// Variants returns the eight named constructors keyed by their variant
// name, e.g. "VGG16" and "VGG16BN".
func Variants[B tensor.Backend]() map[string]Constructor[B] {
	return map[string]Constructor[B]{
		"VGG11":   VGG11[B],
		"VGG13":   VGG13[B],
		"VGG16":   VGG16[B],
		"VGG19":   VGG19[B],
		"VGG11BN": VGG11BN[B],
		"VGG13BN": VGG13BN[B],
		"VGG16BN": VGG16BN[B],
		"VGG19BN": VGG19BN[B],
	}
}
