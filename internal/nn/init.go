package nn

import (
	"math"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/born-ml/vgg/internal/tensor"
)

// lockedSource serializes access to a rand.Source shared by all modules.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

var globalSource = &lockedSource{src: rand.NewSource(uint64(time.Now().UnixNano()))}

// Seed reseeds the generator behind weight initialization and dropout
// masks. Two networks built after the same Seed call are identical.
func Seed(seed uint64) {
	globalSource.Seed(seed)
}

// newRNG returns a generator for one tensor fill, derived from the global
// source so that fills stay reproducible after Seed.
func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(globalSource.Uint64()))
}

// KaimingNormal initializes weights from N(0, 2/fanOut).
//
// This is He initialization in fan_out mode for ReLU networks, the scheme
// torchvision uses for VGG convolutions. For Conv2D:
//
//	fan_out = out_channels * kernel_h * kernel_w
func KaimingNormal[B tensor.Backend](fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	if fanOut <= 0 {
		panic("KaimingNormal: fan_out must be positive")
	}
	return Normal(0, math.Sqrt(2.0/float64(fanOut)), shape, backend)
}

// Normal initializes a tensor from N(mean, std^2).
//
// Linear layers of the classifier use Normal(0, 0.01).
func Normal[B tensor.Backend](mean, std float64, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	t := tensor.RandnWith[float32](shape, newRNG(), backend)
	data := t.Data()
	for i, v := range data {
		data[i] = float32(mean + std*float64(v))
	}
	return t
}

// Zeros creates a tensor filled with zeros.
//
// This is commonly used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}

// Randn creates a tensor with values from the standard normal distribution,
// drawn from the seeded generator.
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.RandnWith[float32](shape, newRNG(), backend)
}
