package cpu

import (
	"fmt"

	"github.com/born-ml/vgg/internal/parallel"
	"github.com/born-ml/vgg/internal/tensor"
)

// ReLU applies the rectified linear unit element-wise: max(0, x).
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newRaw("relu", x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		relu(cpu, result.AsFloat32(), x.AsFloat32())
	case tensor.Float64:
		relu(cpu, result.AsFloat64(), x.AsFloat64())
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s", x.DType()))
	}

	return result
}

func relu[T float](cpu *CPUBackend, dst, src []T) {
	parallel.ForRange(len(src), func(start, end int) {
		for i := start; i < end; i++ {
			if v := src[i]; v > 0 {
				dst[i] = v
			} else {
				dst[i] = 0
			}
		}
	}, cpu.par.WithMinChunk(1<<14))
}
