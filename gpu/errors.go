// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "errors"

var (
	// ErrNilDevice is returned when a device or queue is missing.
	ErrNilDevice = errors.New("gpu: device or queue is nil")

	// ErrNilProvider is returned when constructing from a nil provider.
	ErrNilProvider = errors.New("gpu: provider is nil")

	// ErrNoHAL is returned when a provider does not expose HAL types.
	ErrNoHAL = errors.New("gpu: provider does not expose HAL device and queue")

	// ErrDestroyed is returned when using buffers after Destroy.
	ErrDestroyed = errors.New("gpu: buffers have been destroyed")

	// ErrShortReadback is returned when readback data is smaller than its
	// layout requires.
	ErrShortReadback = errors.New("gpu: readback data too short")

	// ErrInvalidSize is returned for non-positive target dimensions.
	ErrInvalidSize = errors.New("gpu: invalid target size")
)
