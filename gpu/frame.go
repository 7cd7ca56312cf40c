// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/splat"
)

// Frame holds the decoded ID and depth targets of one rendered frame and
// answers paint picks from them.
type Frame struct {
	width  int
	height int
	ids    []uint32
	depth  []float32
}

// NewFrame decodes padded ID (R32Uint) and depth (Depth32Float) readbacks.
func NewFrame(idData, depthData []byte, width, height int) (*Frame, error) {
	ids, err := DecodeIDs(idData, width, height)
	if err != nil {
		return nil, err
	}
	depth, err := DecodeDepth(depthData, width, height)
	if err != nil {
		return nil, err
	}
	return &Frame{width: width, height: height, ids: ids, depth: depth}, nil
}

// ReadFrame copies the ID (IDFormat) and depth (DepthFormat) targets of a
// finished frame back to the CPU and decodes them.
func ReadFrame(device hal.Device, queue hal.Queue, ids, depth hal.Texture, width, height int) (*Frame, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	idStaging, err := NewStagingBuffer(device, "splat_id_readback", IDLayout(width, height))
	if err != nil {
		return nil, err
	}
	defer idStaging.Destroy()
	depthStaging, err := NewStagingBuffer(device, "splat_depth_readback", DepthLayout(width, height))
	if err != nil {
		return nil, err
	}
	defer depthStaging.Destroy()

	idData, err := idStaging.ReadTexture(queue, ids, gputypes.TextureAspectAll)
	if err != nil {
		return nil, err
	}
	depthData, err := depthStaging.ReadTexture(queue, depth, gputypes.TextureAspectDepthOnly)
	if err != nil {
		return nil, err
	}
	return NewFrame(idData, depthData, width, height)
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Depth returns the normalized depth at a pixel.
func (f *Frame) Depth(x, y int) (float64, bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 1, false
	}
	return float64(f.depth[y*f.width+x]), true
}

// IDs returns the raw IDs inside r, row by row.
func (f *Frame) IDs(r splat.Rect) []uint32 {
	r = r.Intersect(f.width, f.height)
	if r.Empty() {
		return nil
	}
	out := make([]uint32, 0, r.W*r.H)
	for y := r.Y; y < r.Y+r.H; y++ {
		row := y * f.width
		out = append(out, f.ids[row+r.X:row+r.X+r.W]...)
	}
	return out
}
