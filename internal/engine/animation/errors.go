package animation

import "errors"

// Data-integrity errors. A clip that fails with one of these is not loaded.
var (
	ErrDanglingNode       = errors.New("channel targets a node that is not in the graph")
	ErrSamplerIndex       = errors.New("channel sampler index out of range")
	ErrInvalidPath        = errors.New("invalid channel target path")
	ErrEmptySampler       = errors.New("sampler has no keyframes")
	ErrKeyframeMismatch   = errors.New("sampler keyframe and output counts differ")
	ErrOutputWidth        = errors.New("invalid sampler output width")
	ErrUnorderedKeyframes = errors.New("sampler keyframe times are not ordered")
)

// Unsupported-feature errors. The data is well formed but the engine cannot
// play it; affected channels are disabled at playback time.
var (
	ErrUnsupportedInterpolation = errors.New("unsupported interpolation")
	ErrUnsupportedPath          = errors.New("unsupported channel target path")
)

// Supported reports whether a channel can be played, returning an
// unsupported-feature error when it cannot.
func (c *Clip) Supported(ch Channel) error {
	if ch.Path == PathWeights {
		return ErrUnsupportedPath
	}
	if s := c.Samplers[ch.Sampler]; s.Interpolation != InterpolationLinear {
		return ErrUnsupportedInterpolation
	}
	return nil
}
