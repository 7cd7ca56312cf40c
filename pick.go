package splat

import "math"

// NoID is the ID-buffer value for pixels that show no splat.
const NoID uint32 = 0

// IDFromSlot encodes a slot for the ID pass: slot k is written as k+1 so
// that zero can mean "no splat".
func IDFromSlot(slot int) uint32 {
	return uint32(slot) + 1
}

// SlotFromID decodes an ID-buffer value. The second result is false for
// NoID.
func SlotFromID(id uint32) (int, bool) {
	if id == NoID {
		return NoSlot, false
	}
	return int(id - 1), true
}

// UniqueSlots decodes a block of ID-buffer values into the distinct slots
// it contains, in order of first appearance. NoID pixels are ignored.
func UniqueSlots(ids []uint32) []int {
	seen := make(map[uint32]struct{})
	var slots []int
	for _, id := range ids {
		if id == NoID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		slots = append(slots, int(id-1))
	}
	return slots
}

// DepthFromUnorm32 converts a 32-bit unsigned-normalized depth sample to
// [0, 1].
func DepthFromUnorm32(v uint32) float64 {
	return float64(v) / math.MaxUint32
}

// SurfaceDepth reports whether a depth sample hit geometry. A sample at
// (or beyond) the far plane means nothing was drawn at that pixel.
func SurfaceDepth(depth01 float64) bool {
	return depth01 < 1
}

// PickRadiusPixels maps a world-space brush radius to the half-size of the
// square ID-buffer window read around the pointer. It is a fixed
// heuristic, not a projection: 50 px per world unit, at least 1 px.
func PickRadiusPixels(brushRadius float64) int {
	return max(1, int(math.Round(brushRadius*50)))
}

// Rect is a pixel rectangle with a top-left origin.
type Rect struct {
	X, Y, W, H int
}

// PickRect returns the 2r×2r window centred on the pointer.
func PickRect(xPx, yPx float64, radiusPx int) Rect {
	return Rect{
		X: int(math.Round(xPx)) - radiusPx,
		Y: int(math.Round(yPx)) - radiusPx,
		W: radiusPx * 2,
		H: radiusPx * 2,
	}
}

// Intersect clips r to the viewport [0, width) × [0, height).
// An empty result has zero width or height.
func (r Rect) Intersect(width, height int) Rect {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.W, width), min(r.Y+r.H, height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
