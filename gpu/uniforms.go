// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"

	"golang.org/x/image/math/f32"

	"github.com/gogpu/splat"
)

// CameraUniformSize is the byte size of the Camera uniform block.
const CameraUniformSize = 2*64 + 16

// CursorUniformSize is the byte size of the Cursor uniform block.
const CursorUniformSize = 2*64 + 2*16

// CameraUniforms is the camera block shared by the splat and ID passes.
// Matrices are held row-major as f32.Mat4 does and written column-major
// for WGSL.
type CameraUniforms struct {
	View     f32.Mat4
	Proj     f32.Mat4
	Viewport f32.Vec4 // width, height, 1/width, 1/height
}

// NewCameraUniforms converts a camera to its uniform block.
func NewCameraUniforms(view, proj splat.Mat4, width, height int) CameraUniforms {
	u := CameraUniforms{
		View: toF32(view),
		Proj: toF32(proj),
	}
	if width > 0 && height > 0 {
		w, h := float32(width), float32(height)
		u.Viewport = f32.Vec4{w, h, 1 / w, 1 / h}
	}
	return u
}

// Bytes packs the block in WGSL uniform layout.
func (u CameraUniforms) Bytes() []byte {
	buf := make([]byte, CameraUniformSize)
	off := putMat4(buf, 0, u.View)
	off = putMat4(buf, off, u.Proj)
	putVec4(buf, off, u.Viewport)
	return buf
}

// CursorUniforms is the block of the brush cursor pass.
type CursorUniforms struct {
	View   f32.Mat4
	Proj   f32.Mat4
	Center f32.Vec4 // xyz world position, w radius
	Color  f32.Vec4
}

// NewCursorUniforms builds the cursor block for a ring of radius at p.
func NewCursorUniforms(view, proj splat.Mat4, p splat.Vec3, radius float64, c splat.RGB) CursorUniforms {
	return CursorUniforms{
		View:   toF32(view),
		Proj:   toF32(proj),
		Center: f32.Vec4{float32(p.X), float32(p.Y), float32(p.Z), float32(radius)},
		Color:  f32.Vec4{c.R, c.G, c.B, 1},
	}
}

// Bytes packs the block in WGSL uniform layout.
func (u CursorUniforms) Bytes() []byte {
	buf := make([]byte, CursorUniformSize)
	off := putMat4(buf, 0, u.View)
	off = putMat4(buf, off, u.Proj)
	off = putVec4(buf, off, u.Center)
	putVec4(buf, off, u.Color)
	return buf
}

// toF32 converts a column-major Mat4 to row-major float32.
func toF32(m splat.Mat4) f32.Mat4 {
	var out f32.Mat4
	for r := range 4 {
		for c := range 4 {
			out[r*4+c] = float32(m.At(r, c))
		}
	}
	return out
}

// putMat4 writes m column by column and returns the next offset.
func putMat4(buf []byte, off int, m f32.Mat4) int {
	for c := range 4 {
		for r := range 4 {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(m[r*4+c]))
			off += 4
		}
	}
	return off
}

func putVec4(buf []byte, off int, v f32.Vec4) int {
	for _, x := range v {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(x))
		off += 4
	}
	return off
}
