// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/splat"
)

// copyPitchAlignment is the WebGPU BytesPerRow alignment for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// RowLayout describes a texture readback with padded rows.
type RowLayout struct {
	Width         int
	Height        int
	BytesPerPixel int
}

// BytesPerRow returns the unpadded row size.
func (l RowLayout) BytesPerRow() int {
	return l.Width * l.BytesPerPixel
}

// AlignedBytesPerRow returns the row pitch of the staging buffer.
func (l RowLayout) AlignedBytesPerRow() int {
	return (l.BytesPerRow() + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// Size returns the staging buffer size in bytes.
func (l RowLayout) Size() int {
	return l.AlignedBytesPerRow() * l.Height
}

// IDLayout is the readback layout of a width×height R32Uint target.
func IDLayout(width, height int) RowLayout {
	return RowLayout{Width: width, Height: height, BytesPerPixel: 4}
}

// DepthLayout is the readback layout of a width×height Depth32Float target.
func DepthLayout(width, height int) RowLayout {
	return RowLayout{Width: width, Height: height, BytesPerPixel: 4}
}

// eachPixel calls fn with the 4-byte little-endian word of every pixel.
func (l RowLayout) eachPixel(data []byte, fn func(i int, word uint32)) error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, l.Width, l.Height)
	}
	// The last row need not carry padding.
	need := l.AlignedBytesPerRow()*(l.Height-1) + l.BytesPerRow()
	if len(data) < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrShortReadback, len(data), need)
	}
	pitch := l.AlignedBytesPerRow()
	for y := range l.Height {
		row := data[y*pitch:]
		for x := range l.Width {
			fn(y*l.Width+x, binary.LittleEndian.Uint32(row[x*4:]))
		}
	}
	return nil
}

// DecodeIDs strips row padding from an R32Uint readback.
func DecodeIDs(data []byte, width, height int) ([]uint32, error) {
	out := make([]uint32, max(width*height, 0))
	err := IDLayout(width, height).eachPixel(data, func(i int, w uint32) {
		out[i] = w
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeDepth strips row padding from a Depth32Float readback.
func DecodeDepth(data []byte, width, height int) ([]float32, error) {
	out := make([]float32, max(width*height, 0))
	err := DepthLayout(width, height).eachPixel(data, func(i int, w uint32) {
		out[i] = math.Float32frombits(w)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeUnormDepth strips row padding from a 32-bit unsigned-normalized
// depth readback and converts it to [0, 1].
func DecodeUnormDepth(data []byte, width, height int) ([]float32, error) {
	out := make([]float32, max(width*height, 0))
	err := DepthLayout(width, height).eachPixel(data, func(i int, w uint32) {
		out[i] = float32(splat.DepthFromUnorm32(w))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StagingBuffer is a mappable buffer that receives a texture copy.
type StagingBuffer struct {
	device hal.Device
	buf    hal.Buffer
	label  string
	layout RowLayout
}

// NewStagingBuffer creates a staging buffer sized for layout.
func NewStagingBuffer(device hal.Device, label string, layout RowLayout) (*StagingBuffer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if layout.Width <= 0 || layout.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, layout.Width, layout.Height)
	}
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(layout.Size()), //nolint:gosec // size is positive
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return &StagingBuffer{device: device, buf: buf, label: label, layout: layout}, nil
}

// Buffer returns the underlying HAL buffer, the destination of the copy.
func (s *StagingBuffer) Buffer() hal.Buffer { return s.buf }

// Layout returns the row layout.
func (s *StagingBuffer) Layout() RowLayout { return s.layout }

// CopyTexture records a copy of the whole of tex into the staging buffer.
// tex must be a render attachment; it is returned to that usage after the
// copy. Use gputypes.TextureAspectDepthOnly for depth targets.
func (s *StagingBuffer) CopyTexture(encoder hal.CommandEncoder, tex hal.Texture, aspect gputypes.TextureAspect) error {
	if s.buf == nil {
		return ErrDestroyed
	}
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(tex, s.buf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			BytesPerRow:  uint32(s.layout.AlignedBytesPerRow()), //nolint:gosec // row pitch fits uint32
			RowsPerImage: uint32(s.layout.Height),               //nolint:gosec // height is positive
		},
		TextureBase: hal.ImageCopyTexture{Texture: tex, Aspect: aspect},
		Size: hal.Extent3D{
			Width:              uint32(s.layout.Width),  //nolint:gosec // width is positive
			Height:             uint32(s.layout.Height), //nolint:gosec // height is positive
			DepthOrArrayLayers: 1,
		},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
	return nil
}

// ReadTexture copies tex into the staging buffer, waits for the GPU and
// returns the padded rows.
func (s *StagingBuffer) ReadTexture(queue hal.Queue, tex hal.Texture, aspect gputypes.TextureAspect) ([]byte, error) {
	if s.buf == nil {
		return nil, ErrDestroyed
	}
	if queue == nil {
		return nil, ErrNilDevice
	}

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: s.label + "_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Destroy()

	if err := encoder.BeginEncoding(s.label); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	if err := s.CopyTexture(encoder, tex, aspect); err != nil {
		encoder.DiscardEncoding()
		return nil, err
	}
	cmd, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer s.device.FreeCommandBuffer(cmd)

	if _, err := queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return nil, fmt.Errorf("submit %s: %w", s.label, err)
	}
	if err := s.device.WaitIdle(); err != nil {
		return nil, fmt.Errorf("wait for %s: %w", s.label, err)
	}
	return s.Read()
}

// Read maps the staging buffer and copies its contents to the CPU. The
// copy into it must have completed.
func (s *StagingBuffer) Read() ([]byte, error) {
	if s.buf == nil {
		return nil, ErrDestroyed
	}
	size := uint64(s.layout.Size()) //nolint:gosec // size is positive
	mapping, err := s.device.MapBuffer(s.buf, 0, size)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", s.label, err)
	}
	data := make([]byte, size)
	copy(data, unsafe.Slice((*byte)(mapping.Ptr), size))
	if err := s.device.UnmapBuffer(s.buf); err != nil {
		return nil, fmt.Errorf("unmap %s: %w", s.label, err)
	}
	return data, nil
}

// Destroy releases the buffer. It is safe to call more than once.
func (s *StagingBuffer) Destroy() {
	if s.buf != nil {
		s.device.DestroyBuffer(s.buf)
		s.buf = nil
	}
}
