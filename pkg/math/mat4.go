package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 = mgl32.Mat4

// Identity returns an identity matrix.
func Identity() Mat4 {
	return mgl32.Ident4()
}

// Compose returns T(translation) * R(rotation) * S(scale) * matrix.
// Translation is outermost and the baked matrix innermost, so a point is
// first transformed by matrix, then scaled, rotated and translated.
func Compose(translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3, matrix Mat4) Mat4 {
	t := mgl32.Translate3D(translation[0], translation[1], translation[2])
	r := NormalizeQuat(rotation).Mat4()
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(r).Mul4(s).Mul4(matrix)
}

// FromColumnMajor builds a matrix from 16 column-major floats.
// The second result is false when v does not hold exactly 16 values.
func FromColumnMajor(v []float32) (Mat4, bool) {
	if len(v) != 16 {
		return Identity(), false
	}
	var m Mat4
	copy(m[:], v)
	return m, true
}

// TransformPoint transforms a 3D point by m (assumes w=1).
func TransformPoint(m Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v[3] != 0 && v[3] != 1 {
		return mgl32.Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
	}
	return v.Vec3()
}

// Translation returns the translation column of m.
func Translation(m Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m[12], m[13], m[14]}
}

// Mat4ApproxEqual compares two matrices element-wise within eps.
func Mat4ApproxEqual(a, b Mat4, eps float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
