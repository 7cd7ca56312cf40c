package paint

import "github.com/gogpu/splat"

// Camera is the view state a pointer event is interpreted against.
type Camera struct {
	View   splat.Mat4
	Proj   splat.Mat4
	Width  int
	Height int
}

// NewCamera returns a perspective camera at eye looking at target with +Y
// up. fovY is in radians.
func NewCamera(eye, target splat.Vec3, fovY float64, width, height int) Camera {
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	return Camera{
		View:   splat.LookAt(eye, target, splat.V3(0, 1, 0)),
		Proj:   splat.Perspective(fovY, aspect, 0.1, 1000),
		Width:  width,
		Height: height,
	}
}

// Ray returns the world-space ray under a pixel.
func (c Camera) Ray(xPx, yPx float64) (splat.Ray, bool) {
	return splat.BuildRay(xPx, yPx, c.View, c.Proj, float64(c.Width), float64(c.Height))
}

// Unproject maps a pixel and normalized depth to world space.
func (c Camera) Unproject(xPx, yPx, depth01 float64) splat.Vec3 {
	return splat.Unproject(xPx, yPx, depth01, c.View, c.Proj, float64(c.Width), float64(c.Height))
}

// Project maps a world point to pixel coordinates and normalized depth.
func (c Camera) Project(p splat.Vec3) (xPx, yPx, depth01 float64, ok bool) {
	return splat.ProjectToScreen(p, c.View, c.Proj, float64(c.Width), float64(c.Height))
}

// Picker reads back the ID and depth targets of the last rendered frame.
// Pixel coordinates have a top-left origin.
type Picker interface {
	// Depth returns the normalized depth at a pixel. The second result is
	// false outside the target.
	Depth(x, y int) (float64, bool)

	// IDs returns the raw ID values inside r, row by row. r is already
	// clipped to the target.
	IDs(r splat.Rect) []uint32
}
