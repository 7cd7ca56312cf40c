// Package splat provides the core of an interactive point-cloud painter:
// a packed splat store with grouped undo, a brush stroke resampler, and the
// screen/world projection math used for placement and picking.
//
// # Overview
//
// A user paints, recolors and erases a 3D point cloud ("splats") with
// screen-space brush strokes. New splats are placed on an axis-aligned plane
// or on existing geometry (via depth readback); existing splats are edited
// through an ID buffer that a renderer draws and reads back.
//
// # Quick Start
//
//	s := splat.NewStore(splat.WithCapacity(300_000))
//	b := splat.NewBrush(0.05)
//
//	s.StartStroke(splat.StrokeAdd)
//	ray, _ := splat.BuildRay(x, y, view, proj, w, h)
//	if p, ok := ray.IntersectPlane(splat.AxisY, 0); ok {
//	    for dab := range b.Continue(p) {
//	        s.Add(splat.Splat{Position: dab, Color: splat.Red, Opacity: 1, Size: 0.05})
//	    }
//	}
//	s.EndStroke()
//	b.End()
//
//	s.Undo() // removes the whole stroke
//
// # Architecture
//
// The module is organized into:
//   - splat (this package): Store, Brush, projection math, picking helpers
//   - paint: the session controller that turns pointer events into store calls
//   - raster: a software ID/depth rasterizer for headless picking and previews
//   - gpu: instance buffer upload, shaders and readback decoding over gogpu/wgpu
//   - config: YAML settings with validation and hot reload
//
// # Coordinate System
//
// Pixel coordinates have their origin at the top-left with Y down. NDC and
// clip space follow the OpenGL convention (Y up, z in [-1, 1]); matrices are
// column-major. Normalized depth is 0 at the near plane and 1 at the far
// plane.
//
// # Identity
//
// A splat is identified only by its slot index. Undoing an append shrinks
// the live count, and later appends reuse the freed slots, so pick results
// must not be held across Undo or Clear.
//
// # Concurrency
//
// Store and Brush are not safe for concurrent use. They are meant to be
// driven from the single goroutine that handles input and rendering.
package splat

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
