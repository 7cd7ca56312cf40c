// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/splat"
)

// SplatBuffers mirrors a splat.Store in GPU instance buffers.
//
// Buffers are sized for the store's capacity, so appends never reallocate;
// they are recreated only when the capacity changes. Upload writes the
// live prefix [0, Count) of each column and skips stores whose revision
// has already been uploaded.
//
// SplatBuffers is not safe for concurrent use.
type SplatBuffers struct {
	device hal.Device
	queue  hal.Queue

	quad     hal.Buffer
	position hal.Buffer
	color    hal.Buffer
	opacity  hal.Buffer
	size     hal.Buffer

	capacity int
	count    int
	revision uint64
	uploaded bool

	destroyed bool
}

// NewSplatBuffers creates empty splat buffers on device. The shared quad
// vertex buffer is created immediately; instance buffers on first Upload.
func NewSplatBuffers(device hal.Device, queue hal.Queue) (*SplatBuffers, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	b := &SplatBuffers{device: device, queue: queue}

	quad, err := b.createAndUpload("splat_quad", float32Bytes(quadCorners[:]),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	b.quad = quad
	return b, nil
}

// Capacity returns the number of instances the buffers hold.
func (b *SplatBuffers) Capacity() int { return b.capacity }

// Count returns the number of instances to draw.
func (b *SplatBuffers) Count() int { return b.count }

// Upload copies the store's live columns to the GPU. It reports whether
// anything was written.
func (b *SplatBuffers) Upload(store *splat.Store) (bool, error) {
	if b.destroyed {
		return false, ErrDestroyed
	}
	if b.uploaded && b.capacity == store.Capacity() && b.revision == store.Revision() {
		return false, nil
	}

	if b.capacity != store.Capacity() {
		if err := b.allocate(store.Capacity()); err != nil {
			return false, err
		}
	}

	if store.Count() > 0 {
		writes := []struct {
			label string
			dst   hal.Buffer
			data  []float32
		}{
			{"splat_position", b.position, store.Positions()},
			{"splat_color", b.color, store.Colors()},
			{"splat_opacity", b.opacity, store.Opacities()},
			{"splat_size", b.size, store.Sizes()},
		}
		for _, w := range writes {
			if err := b.queue.WriteBuffer(w.dst, 0, float32Bytes(w.data)); err != nil {
				// The columns may be partly written; force the next Upload.
				b.uploaded = false
				return false, fmt.Errorf("write %s: %w", w.label, err)
			}
		}
	}
	b.count = store.Count()
	b.revision = store.Revision()
	b.uploaded = true
	return true, nil
}

// VertexBuffers returns the buffers to bind, in SplatVertexLayout order.
func (b *SplatBuffers) VertexBuffers() []hal.Buffer {
	return []hal.Buffer{b.quad, b.position, b.color, b.opacity, b.size}
}

// Destroy releases all GPU buffers. It is safe to call more than once.
func (b *SplatBuffers) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyInstances()
	if b.quad != nil {
		b.device.DestroyBuffer(b.quad)
		b.quad = nil
	}
	b.destroyed = true
}

func (b *SplatBuffers) allocate(capacity int) error {
	b.destroyInstances()

	usage := gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
	n := uint64(capacity) //nolint:gosec // capacity is positive
	bufs := []struct {
		label  string
		stride uint64
		dst    *hal.Buffer
	}{
		{"splat_position", positionStride, &b.position},
		{"splat_color", colorStride, &b.color},
		{"splat_opacity", opacityStride, &b.opacity},
		{"splat_size", sizeStride, &b.size},
	}
	for _, d := range bufs {
		buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: d.label,
			Size:  n * d.stride,
			Usage: usage,
		})
		if err != nil {
			b.destroyInstances()
			return fmt.Errorf("create %s: %w", d.label, err)
		}
		*d.dst = buf
	}

	b.capacity = capacity
	b.uploaded = false
	splat.Logger().Info("gpu: splat buffers allocated",
		"capacity", capacity,
		"bytes", n*(positionStride+colorStride+opacityStride+sizeStride))
	return nil
}

func (b *SplatBuffers) destroyInstances() {
	for _, buf := range []*hal.Buffer{&b.position, &b.color, &b.opacity, &b.size} {
		if *buf != nil {
			b.device.DestroyBuffer(*buf)
			*buf = nil
		}
	}
	b.capacity = 0
	b.count = 0
}

func (b *SplatBuffers) createAndUpload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := b.queue.WriteBuffer(buf, 0, data); err != nil {
		b.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, nil
}

// float32Bytes packs values as little-endian IEEE 754.
func float32Bytes(values []float32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}
