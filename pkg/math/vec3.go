// Package math provides the vector, quaternion and matrix helpers used by the
// scene graph and animation engine. Storage types come from mgl32; this package
// adds the operations whose exact semantics the engine depends on.
package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3One is the default node scale.
var Vec3One = mgl32.Vec3{1, 1, 1}

// LerpVec3 performs component-wise linear interpolation between a and b.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		a[0] + t*(b[0]-a[0]),
		a[1] + t*(b[1]-a[1]),
		a[2] + t*(b[2]-a[2]),
	}
}

// Vec3ApproxEqual compares two vectors component-wise within eps.
func Vec3ApproxEqual(a, b mgl32.Vec3, eps float32) bool {
	for i := 0; i < 3; i++ {
		if math32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v ...float32) bool {
	for _, f := range v {
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return false
		}
	}
	return true
}
