package tensor

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	out := tensor.Zeros[float32](Shape{2, 4096}, backend)
//	bias := tensor.Ones[float32](Shape{1, 4096}, backend)
//	y := out.Add(bias) // Shape: [2, 4096] (broadcasted)
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Add(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Mul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// MatMul performs matrix multiplication: (M, K) @ (K, N) → (M, N).
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.MatMul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// MatMulTransposed multiplies by the transpose of other without
// materializing it: (M, K) @ (N, K)^T → (M, N).
func (t *Tensor[T, B]) MatMulTransposed(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.MatMulTransposed(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// ReLU applies max(0, x) element-wise.
func (t *Tensor[T, B]) ReLU() *Tensor[T, B] {
	result := t.backend.ReLU(t.raw)
	return New[T, B](result, t.backend)
}

// Reshape returns a tensor with the same data but different shape.
// One dimension may be -1, in which case it is inferred.
//
// Example:
//
//	x := tensor.Zeros[float32](Shape{2, 512, 7, 7}, backend)
//	flat := x.Reshape(2, -1) // Shape: [2, 25088]
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	result := t.backend.Reshape(t.raw, Shape(newShape))
	return New[T, B](result, t.backend)
}
