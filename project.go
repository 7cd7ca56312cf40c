package splat

import (
	"fmt"
	"math"
)

// PlaneEpsilon is the minimum |dot(normal, direction)| for a ray to be
// considered non-parallel to a placement plane.
const PlaneEpsilon = 1e-6

// Axis selects an axis-aligned placement plane.
type Axis int

const (
	// AxisNone disables the placement plane. Placement falls back to the
	// Y plane.
	AxisNone Axis = iota
	// AxisX is the plane x = offset.
	AxisX
	// AxisY is the plane y = offset.
	AxisY
	// AxisZ is the plane z = offset.
	AxisZ
)

// String returns the lowercase axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	case AxisNone:
		return "none"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis parses "x", "y", "z" or "none".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	case "none", "":
		return AxisNone, nil
	}
	return AxisNone, fmt.Errorf("splat: unknown axis %q", s)
}

// Normal returns the unit normal of the plane perpendicular to the axis.
func (a Axis) Normal() Vec3 {
	switch a {
	case AxisX:
		return Vec3{X: 1}
	case AxisZ:
		return Vec3{Z: 1}
	default:
		return Vec3{Y: 1}
	}
}

// Ray is a half-line in world space. Direction is unit length for rays
// built by BuildRay.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectPlane intersects the ray with the plane axis = offset.
// See the package-level IntersectPlane.
func (r Ray) IntersectPlane(axis Axis, offset float64) (Vec3, bool) {
	return IntersectPlane(r.Origin, r.Direction, axis, offset)
}

// ScreenToNDC maps pixel coordinates (origin top-left, Y down) to
// normalized device coordinates in [-1, 1] with Y up.
func ScreenToNDC(xPx, yPx, width, height float64) (x, y float64) {
	x = xPx/width*2 - 1
	y = 1 - yPx/height*2
	return x, y
}

// NDCToScreen is the inverse of ScreenToNDC.
func NDCToScreen(x, y, width, height float64) (xPx, yPx float64) {
	xPx = (x + 1) / 2 * width
	yPx = (1 - y) / 2 * height
	return xPx, yPx
}

// inverseViewProjection returns (proj × view)⁻¹.
func inverseViewProjection(view, proj Mat4) (Mat4, bool) {
	inv, ok := proj.Multiply(view).Invert()
	if !ok {
		Logger().Warn("splat: singular view-projection matrix")
	}
	return inv, ok
}

// BuildRay constructs a world-space picking ray through the pixel
// (xPx, yPx). The origin lies on the near plane and the direction points
// toward the far plane.
//
// The second result is false, and the zero Ray is returned, when the
// view-projection matrix is singular or an unprojected point lands at
// infinity.
func BuildRay(xPx, yPx float64, view, proj Mat4, width, height float64) (Ray, bool) {
	x, y := ScreenToNDC(xPx, yPx, width, height)

	inv, ok := inverseViewProjection(view, proj)
	if !ok {
		return Ray{}, false
	}

	near, okNear := inv.MulVec4(Vec4{X: x, Y: y, Z: -1, W: 1}).Point()
	far, okFar := inv.MulVec4(Vec4{X: x, Y: y, Z: 1, W: 1}).Point()
	if !okNear || !okFar {
		return Ray{}, false
	}

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}, true
}

// IntersectPlane solves for the point where the ray (origin, direction)
// crosses the axis-aligned plane axis = offset. AxisNone uses the Y plane.
//
// Returns false when the direction is parallel to the plane (|n·d| below
// PlaneEpsilon) or when the intersection lies behind the origin.
// direction need not be normalized.
func IntersectPlane(origin, direction Vec3, axis Axis, offset float64) (Vec3, bool) {
	n := axis.Normal()
	denom := n.Dot(direction)
	if math.Abs(denom) < PlaneEpsilon {
		return Vec3{}, false
	}

	t := (offset - n.Dot(origin)) / denom
	if t < 0 {
		return Vec3{}, false
	}

	return origin.Add(direction.Mul(t)), true
}

// Unproject maps a pixel and a normalized depth (0 = near, 1 = far) back to
// world space through the inverse view-projection matrix.
//
// The origin is returned when the homogeneous W of the unprojected point is
// exactly zero, or when the view-projection matrix is singular.
func Unproject(xPx, yPx, depth01 float64, view, proj Mat4, width, height float64) Vec3 {
	x, y := ScreenToNDC(xPx, yPx, width, height)
	z := depth01*2 - 1

	inv, ok := inverseViewProjection(view, proj)
	if !ok {
		return Vec3{}
	}

	p, _ := inv.MulVec4(Vec4{X: x, Y: y, Z: z, W: 1}).Point()
	return p
}

// ProjectToScreen maps a world point to pixel coordinates and normalized
// depth, the forward transform that Unproject inverts.
// The last result is false when the point is at or behind the camera plane
// (clip W <= 0).
func ProjectToScreen(p Vec3, view, proj Mat4, width, height float64) (xPx, yPx, depth01 float64, ok bool) {
	clip := proj.Multiply(view).MulVec4(Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if clip.W <= 0 {
		return 0, 0, 0, false
	}
	ndc, _ := clip.Point()
	xPx, yPx = NDCToScreen(ndc.X, ndc.Y, width, height)
	return xPx, yPx, (ndc.Z + 1) / 2, true
}
