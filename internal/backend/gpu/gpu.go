// Package gpu probes for WebGPU compute devices.
//
// The probe is used to gate tests and tooling that need a GPU: kernels for
// half-precision multiply only exist on GPU-class hardware, so callers skip
// that coverage when no adapter is present. Uses go-webgpu
// (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package gpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// AdapterInfo describes one WebGPU adapter.
type AdapterInfo struct {
	Name       string
	VendorName string
	Driver     string
}

var probeOnce struct {
	sync.Once
	available bool
}

// Available reports whether a WebGPU adapter can be acquired. The probe runs
// once per process; the native library missing entirely counts as unavailable.
func Available() bool {
	probeOnce.Do(func() {
		probeOnce.available = probe()
		if !probeOnce.available {
			klog.V(2).Info("webgpu: no adapter available, gpu-gated paths disabled")
		}
	})
	return probeOnce.available
}

func probe() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}

// ListAdapters returns information about the available GPU adapters.
// WebGPU has no enumeration API, so this reports the default adapter.
func ListAdapters() (adapters []AdapterInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			adapters = nil
			err = errors.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance, instanceErr := wgpu.CreateInstance(nil)
	if instanceErr != nil {
		return nil, errors.Wrap(instanceErr, "webgpu: failed to create instance")
	}
	defer instance.Release()

	adapter, adapterErr := instance.RequestAdapter(nil)
	if adapterErr != nil {
		return nil, errors.Wrap(adapterErr, "webgpu: no adapters available")
	}
	defer adapter.Release()

	info, infoErr := adapter.GetInfo()
	if infoErr != nil {
		return nil, errors.Wrap(infoErr, "webgpu: failed to get adapter info")
	}

	return []AdapterInfo{{
		Name:       info.Device,
		VendorName: info.Vendor,
		Driver:     info.Description,
	}}, nil
}
