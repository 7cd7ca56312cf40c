// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster draws splats on the CPU into ID, depth and color targets.
//
// A Target holds the same three attachments the GPU ID pass produces: a
// uint32 ID per pixel (slot+1, 0 = empty), a normalized depth per pixel
// (1 = far plane) and the color of the nearest splat. It satisfies
// paint.Picker, so a paint session can run headless:
//
//	t := raster.NewTarget(800, 600)
//	t.Render(store, cam)
//	session.SetPicker(t)
//
// Each splat is drawn as a camera-facing disc at the depth of its centre,
// with a less-than depth test. No blending happens between splats.
package raster

import (
	"math"

	"github.com/gogpu/splat"
	"github.com/gogpu/splat/paint"
)

// Target is a CPU ID/depth/color render target.
type Target struct {
	width  int
	height int

	ids     []uint32
	depth   []float32
	color   []splat.RGB
	opacity []float32

	// revision of the store last rendered, valid when rendered is set.
	revision uint64
	rendered bool
}

var _ paint.Picker = (*Target)(nil)

// NewTarget creates a cleared target. Non-positive dimensions are clamped
// to 1.
func NewTarget(width, height int) *Target {
	t := &Target{}
	t.Resize(width, height)
	return t
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.height }

// Resize reallocates the attachments when the size changes and clears
// them.
func (t *Target) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width != t.width || height != t.height {
		n := width * height
		t.width, t.height = width, height
		t.ids = make([]uint32, n)
		t.depth = make([]float32, n)
		t.color = make([]splat.RGB, n)
		t.opacity = make([]float32, n)
	}
	t.Clear()
}

// Clear resets every pixel to no splat at the far plane.
func (t *Target) Clear() {
	clear(t.ids)
	clear(t.color)
	clear(t.opacity)
	for i := range t.depth {
		t.depth[i] = 1
	}
	t.rendered = false
}

// Render clears the target and draws every live splat of store as seen
// by cam. The target is resized to the camera viewport. It returns the
// number of splats that reached at least one pixel.
func (t *Target) Render(store *splat.Store, cam paint.Camera) int {
	t.Resize(cam.Width, cam.Height)

	vp := cam.Proj.Multiply(cam.View)
	focal := cam.Proj.At(1, 1) * float64(t.height) / 2

	pos := store.Positions()
	col := store.Colors()
	opa := store.Opacities()
	size := store.Sizes()

	drawn := 0
	for i := range store.Count() {
		clip := vp.MulVec4(splat.Vec4{
			X: float64(pos[i*3+0]),
			Y: float64(pos[i*3+1]),
			Z: float64(pos[i*3+2]),
			W: 1,
		})
		if clip.W <= 0 {
			continue
		}
		ndc, _ := clip.Point()
		if ndc.Z < -1 || ndc.Z > 1 {
			continue
		}

		cx, cy := splat.NDCToScreen(ndc.X, ndc.Y, float64(t.width), float64(t.height))
		d := disc{
			cx:     cx,
			cy:     cy,
			radius: float64(size[i]) * focal / clip.W,
			depth:  float32((ndc.Z + 1) / 2),
			id:     splat.IDFromSlot(i),
			color:  splat.RGB{R: col[i*3+0], G: col[i*3+1], B: col[i*3+2]},
			alpha:  opa[i],
		}
		if t.drawDisc(d) {
			drawn++
		}
	}

	t.revision = store.Revision()
	t.rendered = true
	splat.Logger().Debug("raster: rendered",
		"splats", store.Count(),
		"drawn", drawn,
		"width", t.width,
		"height", t.height)
	return drawn
}

// Stale reports whether store changed since the last Render.
func (t *Target) Stale(store *splat.Store) bool {
	return !t.rendered || t.revision != store.Revision()
}

type disc struct {
	cx, cy float64
	radius float64
	depth  float32
	id     uint32
	color  splat.RGB
	alpha  float32
}

// drawDisc covers the pixels whose centres lie inside the disc, plus the
// pixel holding the centre so sub-pixel splats stay pickable.
func (t *Target) drawDisc(d disc) bool {
	r := max(d.radius, 0)
	x0 := max(int(math.Floor(d.cx-r)), 0)
	y0 := max(int(math.Floor(d.cy-r)), 0)
	x1 := min(int(math.Ceil(d.cx+r)), t.width-1)
	y1 := min(int(math.Ceil(d.cy+r)), t.height-1)
	if x1 < x0 || y1 < y0 {
		return false
	}

	hx, hy := int(math.Floor(d.cx)), int(math.Floor(d.cy))
	r2 := r * r
	hit := false
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - d.cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - d.cx
			if dx*dx+dy*dy > r2 && (x != hx || y != hy) {
				continue
			}
			hit = true
			i := y*t.width + x
			if d.depth >= t.depth[i] {
				continue
			}
			t.depth[i] = d.depth
			t.ids[i] = d.id
			t.color[i] = d.color
			t.opacity[i] = d.alpha
		}
	}
	return hit
}

// ID returns the raw ID at a pixel, or splat.NoID outside the target.
func (t *Target) ID(x, y int) uint32 {
	if !t.inside(x, y) {
		return splat.NoID
	}
	return t.ids[y*t.width+x]
}

// Depth returns the normalized depth at a pixel.
func (t *Target) Depth(x, y int) (float64, bool) {
	if !t.inside(x, y) {
		return 1, false
	}
	return float64(t.depth[y*t.width+x]), true
}

// IDs returns the raw IDs inside r, row by row. r is clipped to the
// target first.
func (t *Target) IDs(r splat.Rect) []uint32 {
	r = r.Intersect(t.width, t.height)
	if r.Empty() {
		return nil
	}
	out := make([]uint32, 0, r.W*r.H)
	for y := r.Y; y < r.Y+r.H; y++ {
		row := y * t.width
		out = append(out, t.ids[row+r.X:row+r.X+r.W]...)
	}
	return out
}

func (t *Target) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.width && y < t.height
}
