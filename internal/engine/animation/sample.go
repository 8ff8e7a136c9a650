package animation

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/nodeanim/pkg/math"
)

// Interval locates the keyframe pair [i, i+1] that contains t and the
// blend factor between them.
//
// The scan runs from the first keyframe and the first containing interval
// wins, so a time exactly on an inner keyframe resolves to the interval that
// ends there (alpha 1), which yields that keyframe's value. Times before the
// first keyframe clamp to it (i=0, alpha=0) and times after the last clamp to
// the last keyframe. A zero-length interval yields alpha 0.
func (s *Sampler) Interval(t float32) (int, float32) {
	n := len(s.Inputs)
	if n < 2 || math32.IsNaN(t) || t <= s.Inputs[0] {
		return 0, 0
	}

	for i := 0; i < n-1; i++ {
		lo, hi := s.Inputs[i], s.Inputs[i+1]
		if t >= lo && t <= hi {
			span := hi - lo
			if span <= 0 {
				return i, 0
			}
			return i, (t - lo) / span
		}
	}

	return n - 2, 1
}

// Vec3 samples a translation or scale curve at time t.
func (s *Sampler) Vec3(t float32) mgl32.Vec3 {
	if len(s.Outputs) == 1 {
		return s.Outputs[0].Vec3()
	}
	i, alpha := s.Interval(t)
	return math.LerpVec3(s.Outputs[i].Vec3(), s.Outputs[i+1].Vec3(), alpha)
}

// Quat samples a rotation curve at time t. The two bracketing keyframes are
// slerped and the result renormalized.
func (s *Sampler) Quat(t float32) mgl32.Quat {
	if len(s.Outputs) == 1 {
		return math.NormalizeQuat(math.QuatFromVec4(s.Outputs[0]))
	}
	i, alpha := s.Interval(t)
	q1 := math.QuatFromVec4(s.Outputs[i])
	q2 := math.QuatFromVec4(s.Outputs[i+1])
	return math.Slerp(q1, q2, alpha)
}
