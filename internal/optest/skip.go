package optest

import (
	"testing"

	"k8s.io/klog/v2"

	"github.com/hadamard-ml/hadamard/internal/backend/gpu"
)

// SkipGradCheck skips the calling test and logs why. Used by cases whose
// gradient semantics are checked elsewhere, such as scalar operands kept
// for shape-compatibility only.
func SkipGradCheck(t *testing.T, reason string) {
	t.Helper()
	klog.V(1).Infof("gradient check skipped: %s", reason)
	t.Skip(reason)
}

// RequireGPU skips the calling test when no WebGPU adapter is available.
// Mirrors CUDA-gated operator coverage: half-precision kernels only get
// exercised on machines with a GPU.
func RequireGPU(t *testing.T) {
	t.Helper()
	if !gpu.Available() {
		t.Skip("WebGPU adapter not available")
	}
}
