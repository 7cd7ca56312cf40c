// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "github.com/gogpu/gputypes"

// Attachment formats of the ID pass.
const (
	IDFormat    = gputypes.TextureFormatR32Uint
	DepthFormat = gputypes.TextureFormatDepth32Float
)

// Per-instance strides, in bytes.
const (
	positionStride = 12
	colorStride    = 12
	opacityStride  = 4
	sizeStride     = 4
	cornerStride   = 8
)

// quadCorners is the unit quad drawn per instance as two triangles.
var quadCorners = [12]float32{
	-1, -1, 1, -1, 1, 1,
	-1, -1, 1, 1, -1, 1,
}

// QuadVertexCount is the number of vertices drawn per splat instance.
const QuadVertexCount = len(quadCorners) / 2

// SplatVertexLayout returns the vertex buffer layouts of the splat and ID
// passes: the per-vertex quad corner at location 0 and the four
// per-instance store columns at locations 1 to 4.
func SplatVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: cornerStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // corner
			},
		},
		{
			ArrayStride: positionStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1}, // position
			},
		},
		{
			ArrayStride: colorStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 2}, // color
			},
		},
		{
			ArrayStride: opacityStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32, Offset: 0, ShaderLocation: 3}, // opacity
			},
		},
		{
			ArrayStride: sizeStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32, Offset: 0, ShaderLocation: 4}, // size
			},
		},
	}
}
