// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// halProvider is implemented by device providers that expose their HAL
// device and queue.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// HALFromProvider extracts the HAL device and queue from a shared device
// provider (for example a gogpu window).
func HALFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, ErrNoHAL
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, ErrNoHAL
	}
	return device, queue, nil
}

// NewSplatBuffersFromProvider creates splat buffers on a provider's shared
// device.
func NewSplatBuffersFromProvider(provider gpucontext.DeviceProvider) (*SplatBuffers, error) {
	device, queue, err := HALFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return NewSplatBuffers(device, queue)
}
