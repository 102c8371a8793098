package tensor

// Backend defines the operations a compute backend provides to the network
// modules. Backends own the numerical kernels; modules only arrange them.
//
// Shape misuse (rank, channel or inner-dimension mismatch) is a programming
// error and backends panic with a descriptive message.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// MatMul computes a @ b for 2D tensors: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// MatMulTransposed computes a @ b^T for 2D tensors:
	// [M, K] @ [N, K]^T -> [M, N]. This is the affine-map layout of Linear.
	MatMulTransposed(a, b *RawTensor) *RawTensor

	// Conv2D convolves input [N, C_in, H, W] with kernel
	// [C_out, C_in, K_h, K_w]. bias is [C_out] or nil.
	Conv2D(input, kernel, bias *RawTensor, stride, padding int) *RawTensor

	// MaxPool2D takes the maximum over square windows of each channel plane.
	MaxPool2D(input *RawTensor, kernelSize, stride int) *RawTensor

	// ReLU computes max(0, x) element-wise.
	ReLU(x *RawTensor) *RawTensor

	// ChannelMoments returns the per-channel mean and biased variance of a
	// [N, C, H, W] tensor, each of shape [C].
	ChannelMoments(x *RawTensor) (mean, variance *RawTensor)

	// BatchNorm2D normalizes each channel of x with the given statistics and
	// applies the affine transform gamma * x_hat + beta. All vectors are [C].
	BatchNorm2D(x, mean, variance, gamma, beta *RawTensor, eps float64) *RawTensor

	// Reshape returns a tensor with the same data and a new shape. A single
	// -1 dimension is inferred.
	Reshape(t *RawTensor, newShape Shape) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
