package splat

import "math"

// Mat4 is a 4x4 matrix stored in column-major order, the layout used by
// WebGPU/OpenGL uniforms and by most camera libraries:
//
//	| m[0]  m[4]  m[8]   m[12] |
//	| m[1]  m[5]  m[9]   m[13] |
//	| m[2]  m[6]  m[10]  m[14] |
//	| m[3]  m[7]  m[11]  m[15] |
//
// Clip space follows the OpenGL convention: NDC z spans [-1, 1].
type Mat4 [16]float64

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate4 creates a translation matrix.
func Translate4(v Vec3) Mat4 {
	m := Identity4()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// At returns the element at the given row and column.
func (m Mat4) At(row, col int) float64 {
	return m[col*4+row]
}

// Multiply multiplies two matrices (m * other).
func (m Mat4) Multiply(other Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = m[r]*other[c*4] +
				m[4+r]*other[c*4+1] +
				m[8+r]*other[c*4+2] +
				m[12+r]*other[c*4+3]
		}
	}
	return out
}

// MulVec4 applies the matrix to a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	b := m.cofactorPairs()
	return b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
}

// cofactorPairs returns the twelve 2x2 minors shared by Determinant and
// Invert.
func (m Mat4) cofactorPairs() [12]float64 {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]
	return [12]float64{
		a00*a11 - a01*a10,
		a00*a12 - a02*a10,
		a00*a13 - a03*a10,
		a01*a12 - a02*a11,
		a01*a13 - a03*a11,
		a02*a13 - a03*a12,
		a20*a31 - a21*a30,
		a20*a32 - a22*a30,
		a20*a33 - a23*a30,
		a21*a32 - a22*a31,
		a21*a33 - a23*a31,
		a22*a33 - a23*a32,
	}
}

// Invert returns the inverse matrix.
// The second result is false when the matrix is singular (or contains
// non-finite values); the returned matrix is then the zero matrix.
func (m Mat4) Invert() (Mat4, bool) {
	b := m.cofactorPairs()
	det := b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Mat4{}, false
	}
	inv := 1 / det

	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	return Mat4{
		(a11*b[11] - a12*b[10] + a13*b[9]) * inv,
		(a02*b[10] - a01*b[11] - a03*b[9]) * inv,
		(a31*b[5] - a32*b[4] + a33*b[3]) * inv,
		(a22*b[4] - a21*b[5] - a23*b[3]) * inv,
		(a12*b[8] - a10*b[11] - a13*b[7]) * inv,
		(a00*b[11] - a02*b[8] + a03*b[7]) * inv,
		(a32*b[2] - a30*b[5] - a33*b[1]) * inv,
		(a20*b[5] - a22*b[2] + a23*b[1]) * inv,
		(a10*b[10] - a11*b[8] + a13*b[6]) * inv,
		(a01*b[8] - a00*b[10] - a03*b[6]) * inv,
		(a30*b[4] - a31*b[2] + a33*b[0]) * inv,
		(a21*b[2] - a20*b[4] - a23*b[0]) * inv,
		(a11*b[7] - a10*b[9] - a12*b[6]) * inv,
		(a00*b[9] - a01*b[7] + a02*b[6]) * inv,
		(a31*b[1] - a30*b[3] - a32*b[0]) * inv,
		(a20*b[3] - a21*b[1] + a22*b[0]) * inv,
	}, true
}

// Approx returns true if all elements are within epsilon of other.
func (m Mat4) Approx(other Mat4, epsilon float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > epsilon {
			return false
		}
	}
	return true
}

// Perspective creates a right-handed perspective projection matrix.
// fovY is the vertical field of view in radians.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Orthographic creates an orthographic projection matrix.
func Orthographic(left, right, bottom, top, near, far float64) Mat4 {
	return Mat4{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}

// LookAt creates a view matrix for a camera at eye looking toward target.
func LookAt(eye, target, up Vec3) Mat4 {
	z := eye.Sub(target).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1,
	}
}
