package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/nodeanim/internal/engine/animation"
	"github.com/Faultbox/nodeanim/internal/engine/playback"
	"github.com/Faultbox/nodeanim/internal/engine/scene"
	"github.com/Faultbox/nodeanim/internal/engine/skeleton"
)

// ErrDuplicateClip is returned when two clips share a name.
var ErrDuplicateClip = errors.New("duplicate clip name")

// Build loads the scene graph and every clip. Loading is all or nothing:
// any data-integrity error returns a nil model.
func Build(a *Asset) (*Model, error) {
	g, err := scene.Build(a.Nodes, a.Roots)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", a.Name, err)
	}

	clips := make([]*animation.Clip, 0, len(a.Clips))
	names := make(map[string]struct{}, len(a.Clips))
	for i, rec := range a.Clips {
		if rec.Name == "" {
			rec.Name = fmt.Sprintf("clip%d", i)
		}
		if _, ok := names[rec.Name]; ok {
			return nil, fmt.Errorf("load %q: %w: %q", a.Name, ErrDuplicateClip, rec.Name)
		}
		names[rec.Name] = struct{}{}

		clip, err := animation.BuildClip(rec, g)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", a.Name, err)
		}
		clips = append(clips, clip)
	}

	return &Model{
		Name:      a.Name,
		Graph:     g,
		Clips:     clips,
		NodeCount: g.Len(),
		Skeleton:  skeleton.NewPropagator(g.Len()).Propagate(g),
	}, nil
}

// HasAnimation reports whether the model has at least one channel to play.
func (m *Model) HasAnimation() bool {
	for _, c := range m.Clips {
		if len(c.Channels) > 0 {
			return true
		}
	}
	return false
}

// NewBuffer allocates a host skeleton buffer sized for the model.
func (m *Model) NewBuffer() *skeleton.HostBuffer {
	return skeleton.NewHostBuffer(m.NodeCount)
}

// NewPlayer creates a player for the model and publishes the load-time
// skeleton so the buffer is valid before the first frame.
func (m *Model) NewPlayer(cfg playback.Config, opts ...playback.Option) (*playback.Player, error) {
	p, err := playback.New(m.Graph, m.Clips, cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Publish(); err != nil {
		return nil, err
	}
	return p, nil
}
