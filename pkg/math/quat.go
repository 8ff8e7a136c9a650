package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// nlerpThreshold is the cosine above which two quaternions are treated as
// parallel and blended linearly instead of spherically.
const nlerpThreshold = 0.9995

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() mgl32.Quat {
	return mgl32.QuatIdent()
}

// QuatFromXYZW builds a quaternion from glTF component order (x, y, z, w),
// where w is the scalar part.
func QuatFromXYZW(v [4]float32) mgl32.Quat {
	return mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}
}

// QuatFromVec4 builds a quaternion from a keyframe output stored as (x, y, z, w).
func QuatFromVec4(v mgl32.Vec4) mgl32.Quat {
	return mgl32.Quat{W: v[3], V: mgl32.Vec3{v[0], v[1], v[2]}}
}

// QuatToXYZW returns the quaternion components in (x, y, z, w) order.
func QuatToXYZW(q mgl32.Quat) [4]float32 {
	return [4]float32{q.V[0], q.V[1], q.V[2], q.W}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis mgl32.Vec3, angle float32) mgl32.Quat {
	s, c := math32.Sincos(angle / 2)
	return mgl32.Quat{W: c, V: axis.Mul(s)}
}

// NormalizeQuat returns q scaled to unit length.
// A zero or non-finite quaternion collapses to identity.
func NormalizeQuat(q mgl32.Quat) mgl32.Quat {
	length := math32.Sqrt(q.W*q.W + q.V.Dot(q.V))
	if length < 0.0001 || math32.IsNaN(length) || math32.IsInf(length, 0) {
		return QuatIdentity()
	}
	inv := 1 / length
	return mgl32.Quat{W: q.W * inv, V: q.V.Mul(inv)}
}

// Slerp performs spherical linear interpolation from a to b.
// t should be in range [0, 1]. The shorter arc is always taken and the result
// is renormalized.
func Slerp(a, b mgl32.Quat, t float32) mgl32.Quat {
	dot := a.Dot(b)

	// Negate one end to take the shorter path
	if dot < 0 {
		b = mgl32.Quat{W: -b.W, V: b.V.Mul(-1)}
		dot = -dot
	}

	if dot > nlerpThreshold {
		return NormalizeQuat(mgl32.Quat{
			W: a.W + t*(b.W-a.W),
			V: a.V.Add(b.V.Sub(a.V).Mul(t)),
		})
	}

	theta0 := math32.Acos(dot)
	theta := theta0 * t
	sinTheta := math32.Sin(theta)
	sinTheta0 := math32.Sin(theta0)

	s0 := math32.Cos(theta) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return NormalizeQuat(mgl32.Quat{
		W: a.W*s0 + b.W*s1,
		V: a.V.Mul(s0).Add(b.V.Mul(s1)),
	})
}

// QuatApproxEqual reports whether a and b describe the same rotation within eps.
// q and -q are considered equal.
func QuatApproxEqual(a, b mgl32.Quat, eps float32) bool {
	return math32.Abs(math32.Abs(a.Dot(b))-1) <= eps
}
