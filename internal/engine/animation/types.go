// Package animation holds keyframe clips and the sampling routines that turn
// them into per-node local transforms.
package animation

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Path is the node property a channel drives.
type Path int

const (
	PathTranslation Path = iota
	PathRotation
	PathScale
	PathWeights // morph weights; recognized but not animated
)

func (p Path) String() string {
	switch p {
	case PathTranslation:
		return "translation"
	case PathRotation:
		return "rotation"
	case PathScale:
		return "scale"
	case PathWeights:
		return "weights"
	default:
		return "unknown"
	}
}

// ParsePath resolves a channel target path name.
func ParsePath(s string) (Path, error) {
	switch strings.ToLower(s) {
	case "translation":
		return PathTranslation, nil
	case "rotation":
		return PathRotation, nil
	case "scale":
		return PathScale, nil
	case "weights":
		return PathWeights, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPath, s)
}

// Interpolation is a sampler's keyframe interpolation mode.
type Interpolation int

const (
	InterpolationLinear Interpolation = iota
	InterpolationStep
	InterpolationCubicSpline
	InterpolationUnknown
)

func (i Interpolation) String() string {
	switch i {
	case InterpolationLinear:
		return "LINEAR"
	case InterpolationStep:
		return "STEP"
	case InterpolationCubicSpline:
		return "CUBICSPLINE"
	default:
		return "UNKNOWN"
	}
}

// ParseInterpolation resolves an interpolation name. An empty name is LINEAR,
// the glTF default. Names that are not recognized map to InterpolationUnknown;
// they are unsupported rather than malformed.
func ParseInterpolation(s string) Interpolation {
	switch strings.ToUpper(s) {
	case "", "LINEAR":
		return InterpolationLinear
	case "STEP":
		return InterpolationStep
	case "CUBICSPLINE":
		return InterpolationCubicSpline
	default:
		return InterpolationUnknown
	}
}

// Channel binds one property of one node to a sampler.
type Channel struct {
	Node    int // target node index; association only
	Path    Path
	Sampler int
}

// Sampler is a keyframe curve. Outputs are stored as 4-component values;
// the 4th component is unused for translation and scale.
type Sampler struct {
	Interpolation Interpolation
	Inputs        []float32
	Outputs       []mgl32.Vec4
}

// Clip is a named set of channels sharing one timeline.
type Clip struct {
	Name     string
	Channels []Channel
	Samplers []Sampler

	// Start and End are the min and max keyframe times over all samplers.
	Start float32
	End   float32

	CurrentTime float32
}

// Duration returns End - Start.
func (c *Clip) Duration() float32 {
	return c.End - c.Start
}

// Reset rewinds the clip to its first keyframe time.
func (c *Clip) Reset() {
	c.CurrentTime = c.Start
}

// Advance moves the clock forward by delta. When the time passes End and
// loop is set, one clip duration is subtracted; a single wrap happens per
// call. Without loop the clock holds at End. It reports whether a wrap
// occurred.
func (c *Clip) Advance(delta float32, loop bool) bool {
	c.CurrentTime += delta
	if c.CurrentTime <= c.End {
		return false
	}
	if !loop {
		c.CurrentTime = c.End
		return false
	}
	duration := c.Duration()
	if duration <= 0 {
		c.CurrentTime = c.Start
		return true
	}
	c.CurrentTime -= duration
	return true
}

// Targets returns the paths the clip animates on the given node.
func (c *Clip) Targets(node int) []Path {
	var paths []Path
	for _, ch := range c.Channels {
		if ch.Node == node {
			paths = append(paths, ch.Path)
		}
	}
	return paths
}
