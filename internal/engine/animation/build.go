package animation

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/nodeanim/internal/engine/scene"
)

// ChannelImport is a channel as handed over by an asset loader.
type ChannelImport struct {
	Node    int    `yaml:"node"`
	Path    string `yaml:"path"`
	Sampler int    `yaml:"sampler"`
}

// SamplerImport is a keyframe curve as handed over by an asset loader.
// Outputs holds Width floats per keyframe. A zero Width is inferred from
// the output and input counts.
type SamplerImport struct {
	Interpolation string    `yaml:"interpolation,omitempty"`
	Inputs        []float32 `yaml:"inputs"`
	Outputs       []float32 `yaml:"outputs"`
	Width         int       `yaml:"width,omitempty"`
}

// ClipImport is a clip as handed over by an asset loader.
type ClipImport struct {
	Name     string          `yaml:"name"`
	Channels []ChannelImport `yaml:"channels"`
	Samplers []SamplerImport `yaml:"samplers"`
}

// NodeResolver looks up nodes by index.
type NodeResolver interface {
	NodeFromIndex(index int) *scene.Node
}

// BuildClip converts an imported clip, checking every channel target and
// sampler. Any data-integrity problem fails the whole clip. Unsupported
// interpolation modes and weight channels are kept; playback disables them.
func BuildClip(rec ClipImport, nodes NodeResolver) (*Clip, error) {
	clip := &Clip{
		Name:     rec.Name,
		Samplers: make([]Sampler, len(rec.Samplers)),
		Channels: make([]Channel, len(rec.Channels)),
	}

	widths := make([]int, len(rec.Samplers))
	for i := range rec.Samplers {
		s, width, err := buildSampler(&rec.Samplers[i])
		if err != nil {
			return nil, fmt.Errorf("clip %q sampler %d: %w", rec.Name, i, err)
		}
		clip.Samplers[i] = s
		widths[i] = width

		// Inputs are ordered, so the ends are the sampler's min and max.
		first, last := s.Inputs[0], s.Inputs[len(s.Inputs)-1]
		if i == 0 || first < clip.Start {
			clip.Start = first
		}
		if i == 0 || last > clip.End {
			clip.End = last
		}
	}

	for i, c := range rec.Channels {
		ch, err := buildChannel(c, widths, nodes)
		if err != nil {
			return nil, fmt.Errorf("clip %q channel %d: %w", rec.Name, i, err)
		}
		clip.Channels[i] = ch
	}

	clip.Reset()
	return clip, nil
}

func buildChannel(c ChannelImport, widths []int, nodes NodeResolver) (Channel, error) {
	path, err := ParsePath(c.Path)
	if err != nil {
		return Channel{}, err
	}
	if c.Sampler < 0 || c.Sampler >= len(widths) {
		return Channel{}, fmt.Errorf("%w: %d", ErrSamplerIndex, c.Sampler)
	}
	if nodes.NodeFromIndex(c.Node) == nil {
		return Channel{}, fmt.Errorf("%w: node %d", ErrDanglingNode, c.Node)
	}

	width := widths[c.Sampler]
	switch path {
	case PathRotation:
		if width != 4 {
			return Channel{}, fmt.Errorf("%w: rotation needs 4 components, sampler has %d", ErrOutputWidth, width)
		}
	case PathTranslation, PathScale:
		if width != 3 {
			return Channel{}, fmt.Errorf("%w: %s needs 3 components, sampler has %d", ErrOutputWidth, path, width)
		}
	}

	return Channel{Node: c.Node, Path: path, Sampler: c.Sampler}, nil
}

func buildSampler(rec *SamplerImport) (Sampler, int, error) {
	n := len(rec.Inputs)
	if n == 0 {
		return Sampler{}, 0, ErrEmptySampler
	}
	for i := 0; i < n; i++ {
		if math32.IsNaN(rec.Inputs[i]) || math32.IsInf(rec.Inputs[i], 0) {
			return Sampler{}, 0, fmt.Errorf("%w: keyframe %d is not finite", ErrUnorderedKeyframes, i)
		}
		if i > 0 && rec.Inputs[i] < rec.Inputs[i-1] {
			return Sampler{}, 0, fmt.Errorf("%w: keyframe %d at %v precedes %v", ErrUnorderedKeyframes, i, rec.Inputs[i], rec.Inputs[i-1])
		}
	}

	width := rec.Width
	if width == 0 {
		switch len(rec.Outputs) {
		case 3 * n:
			width = 3
		case 4 * n:
			width = 4
		}
	}
	if width <= 0 || len(rec.Outputs) != width*n {
		return Sampler{}, 0, fmt.Errorf("%w: %d keyframes, %d output values", ErrKeyframeMismatch, n, len(rec.Outputs))
	}

	s := Sampler{
		Interpolation: ParseInterpolation(rec.Interpolation),
		Inputs:        append([]float32(nil), rec.Inputs...),
		Outputs:       make([]mgl32.Vec4, n),
	}
	// Other widths are morph weight curves, which are never sampled.
	if width == 3 || width == 4 {
		for i := 0; i < n; i++ {
			v := rec.Outputs[i*width : (i+1)*width]
			s.Outputs[i] = mgl32.Vec4{v[0], v[1], v[2]}
			if width == 4 {
				s.Outputs[i][3] = v[3]
			}
		}
	}
	return s, width, nil
}
