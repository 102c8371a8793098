package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1 // Scalar has 1 element
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// stride[i] is the product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// Resolve replaces a single -1 entry with the size implied by numElements.
//
// Example:
//
//	Shape{2, -1}.Resolve(2 * 512 * 7 * 7) // [2, 25088]
func (s Shape) Resolve(numElements int) (Shape, error) {
	out := s.Clone()
	inferred := -1
	known := 1
	for i, dim := range out {
		switch {
		case dim == -1:
			if inferred >= 0 {
				return nil, fmt.Errorf("shape %v: only one dimension can be inferred", s)
			}
			inferred = i
		case dim <= 0:
			return nil, fmt.Errorf("shape %v: invalid dimension %d at index %d", s, dim, i)
		default:
			known *= dim
		}
	}

	if inferred >= 0 {
		if numElements%known != 0 {
			return nil, fmt.Errorf("shape %v is not compatible with %d elements", s, numElements)
		}
		out[inferred] = numElements / known
	}
	if out.NumElements() != numElements {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", out, out.NumElements(), numElements)
	}
	return out, nil
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Shapes are compared from the rightmost dimension. Two dimensions are
// compatible when they are equal or one of them is 1; missing dimensions are
// treated as 1.
//
// Returns the broadcasted shape, whether broadcasting is needed, and an error
// if the shapes are incompatible.
//
//	(1, C, 1, 1) + (N, C, H, W) → (N, C, H, W), true, nil
//	(N, F) + (N, F)             → (N, F), false, nil
//	(3, 4) + (3, 5)             → nil, false, error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	maxLen := max(len(a), len(b))
	result := make(Shape, maxLen)
	needsBroadcast := len(a) != len(b)

	for i := 0; i < maxLen; i++ {
		aIdx := len(a) - 1 - i
		bIdx := len(b) - 1 - i

		aDim := 1
		if aIdx >= 0 {
			aDim = a[aIdx]
		}

		bDim := 1
		if bIdx >= 0 {
			bDim = b[bIdx]
		}

		switch {
		case aDim == bDim:
			result[maxLen-1-i] = aDim
		case aDim == 1:
			result[maxLen-1-i] = bDim
			needsBroadcast = true
		case bDim == 1:
			result[maxLen-1-i] = aDim
			needsBroadcast = true
		default:
			return nil, false, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, maxLen-1-i, aDim, bDim)
		}
	}

	return result, needsBroadcast, nil
}

// BroadcastStrides returns strides that walk a tensor of shape s as if it
// had shape out. Broadcast dimensions get stride 0.
func (s Shape) BroadcastStrides(out Shape) []int {
	strides := make([]int, len(out))
	own := s.ComputeStrides()
	offset := len(out) - len(s)
	for i, dim := range s {
		if dim != 1 {
			strides[offset+i] = own[i]
		}
	}
	return strides
}
