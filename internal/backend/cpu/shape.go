package cpu

import (
	"fmt"

	"github.com/born-ml/vgg/internal/tensor"
)

// Reshape returns a view of t with a new shape. The data is shared, not
// copied. A single -1 dimension is inferred from the element count.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	view, err := t.View(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: cannot reshape %v to %v: %v", t.Shape(), newShape, err))
	}
	return view
}
