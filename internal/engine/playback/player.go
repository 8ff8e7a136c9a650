// Package playback drives the per-frame animation pass: clock advance,
// channel resampling, world-transform propagation and buffer publish.
package playback

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/nodeanim/internal/engine/animation"
	"github.com/Faultbox/nodeanim/internal/engine/scene"
	"github.com/Faultbox/nodeanim/internal/engine/skeleton"
	"github.com/Faultbox/nodeanim/pkg/math"
)

// Playback errors.
var (
	ErrNoClip       = errors.New("no such clip")
	ErrInvalidSpeed = errors.New("playback speed must not be negative")
	ErrPublish      = errors.New("publish skeleton")
)

// Config selects the active clip and how its clock runs.
type Config struct {
	Clip  string  // active clip name; empty selects the first clip
	Speed float32 // multiplier applied to every delta
	Loop  bool
}

// DefaultConfig plays the first clip at normal speed, looping.
func DefaultConfig() Config {
	return Config{Speed: 1, Loop: true}
}

// Option configures a Player during construction.
type Option func(*Player)

// WithLogger sets the player's logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Player) {
		if log != nil {
			p.log = log
		}
	}
}

// WithBuffer sets the destination the world matrices are published to.
func WithBuffer(buf skeleton.Buffer) Option {
	return func(p *Player) {
		p.buffer = buf
	}
}

// Player owns the playback state of one graph and its clips.
// It is not safe for concurrent use; readers should go through the buffer.
type Player struct {
	graph      *scene.Graph
	clips      []*animation.Clip
	propagator *skeleton.Propagator
	buffer     skeleton.Buffer
	log        *zap.Logger

	cfg    Config
	active *animation.Clip
	paused bool
	frame  uint64

	// disabled marks channels of the active clip that cannot be played.
	disabled    []bool
	unsupported error
}

// New creates a player over the graph and clips and activates cfg.Clip.
// A graph without clips is valid; Update then only propagates.
func New(g *scene.Graph, clips []*animation.Clip, cfg Config, opts ...Option) (*Player, error) {
	if cfg.Speed < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpeed, cfg.Speed)
	}

	p := &Player{
		graph:      g,
		clips:      clips,
		propagator: skeleton.NewPropagator(g.Len()),
		log:        zap.NewNop(),
		cfg:        cfg,
	}
	for _, opt := range opts {
		opt(p)
	}

	if len(clips) > 0 {
		name := cfg.Clip
		if name == "" {
			name = clips[0].Name
		}
		if err := p.SetActiveClip(name); err != nil {
			return nil, err
		}
	} else if cfg.Clip != "" {
		return nil, fmt.Errorf("%w: %q", ErrNoClip, cfg.Clip)
	}
	return p, nil
}

// Clips returns every loaded clip in load order.
func (p *Player) Clips() []*animation.Clip {
	return p.clips
}

// Clip returns the clip with the given name, or nil.
func (p *Player) Clip(name string) *animation.Clip {
	for _, c := range p.clips {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ActiveClip returns the clip being played, or nil.
func (p *Player) ActiveClip() *animation.Clip {
	return p.active
}

// SetActiveClip switches playback to the named clip and rewinds it.
// Channels the engine cannot play are disabled once here and logged.
func (p *Player) SetActiveClip(name string) error {
	clip := p.Clip(name)
	if clip == nil {
		return fmt.Errorf("%w: %q", ErrNoClip, name)
	}

	p.active = clip
	p.cfg.Clip = name
	clip.Reset()

	p.disabled = make([]bool, len(clip.Channels))
	var errs []error
	for i, ch := range clip.Channels {
		err := clip.Supported(ch)
		if err == nil {
			continue
		}
		p.disabled[i] = true
		errs = append(errs, fmt.Errorf("clip %q channel %d (%s on node %d): %w", clip.Name, i, ch.Path, ch.Node, err))
		p.log.Warn("channel disabled",
			zap.String("clip", clip.Name),
			zap.Int("channel", i),
			zap.Int("node", ch.Node),
			zap.Stringer("path", ch.Path),
			zap.Stringer("interpolation", clip.Samplers[ch.Sampler].Interpolation),
			zap.Error(err))
	}
	p.unsupported = errors.Join(errs...)
	return nil
}

// Disabled reports whether channel i of the active clip is skipped.
func (p *Player) Disabled(i int) bool {
	return i >= 0 && i < len(p.disabled) && p.disabled[i]
}

// Config returns the current playback configuration.
func (p *Player) Config() Config {
	return p.cfg
}

// SetSpeed changes the delta multiplier.
func (p *Player) SetSpeed(speed float32) error {
	if speed < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, speed)
	}
	p.cfg.Speed = speed
	return nil
}

// SetLoop turns looping on or off.
func (p *Player) SetLoop(loop bool) {
	p.cfg.Loop = loop
}

// Pause stops the clock; Update still propagates and publishes.
func (p *Player) Pause() {
	p.paused = true
}

// Resume restarts the clock.
func (p *Player) Resume() {
	p.paused = false
}

// Paused reports whether the clock is stopped.
func (p *Player) Paused() bool {
	return p.paused
}

// Seek sets the active clip's time, clamped to [Start, End].
func (p *Player) Seek(t float32) {
	if p.active == nil {
		return
	}
	switch {
	case math32.IsNaN(t) || t < p.active.Start:
		t = p.active.Start
	case t > p.active.End:
		t = p.active.End
	}
	p.active.CurrentTime = t
}

// Time returns the active clip's current time.
func (p *Player) Time() float32 {
	if p.active == nil {
		return 0
	}
	return p.active.CurrentTime
}

// Frame returns the number of completed Update calls.
func (p *Player) Frame() uint64 {
	return p.frame
}

// Matrices returns the world matrices computed by the last pass.
func (p *Player) Matrices() skeleton.Matrices {
	return p.propagator.Matrices()
}

// Graph returns the scene graph the player animates.
func (p *Player) Graph() *scene.Graph {
	return p.graph
}

// Update runs one frame: advance the clock by dt, resample every enabled
// channel, propagate world transforms and publish them.
//
// The frame always completes. If the active clip has disabled channels the
// returned error wraps animation.ErrUnsupportedInterpolation or
// animation.ErrUnsupportedPath; a failed publish wraps ErrPublish.
func (p *Player) Update(dt float32) error {
	if p.active != nil {
		if !p.paused && math.IsFinite(dt) && dt > 0 {
			if p.active.Advance(dt*p.cfg.Speed, p.cfg.Loop) {
				p.log.Debug("clip wrapped", zap.String("clip", p.active.Name), zap.Float32("time", p.active.CurrentTime))
			}
		}
		p.apply(p.active)
	}

	p.frame++
	if err := p.Publish(); err != nil {
		return errors.Join(p.unsupported, err)
	}
	return p.unsupported
}

// Publish recomputes the world-transform array and copies it to the buffer.
// It is also used once after load so the first frame has a skeleton.
func (p *Player) Publish() error {
	world := p.propagator.Propagate(p.graph)
	if p.buffer == nil {
		return nil
	}
	if err := p.buffer.Write(world); err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}
	return nil
}

func (p *Player) apply(clip *animation.Clip) {
	t := clip.CurrentTime
	for i, ch := range clip.Channels {
		if p.disabled[i] {
			continue
		}
		n := p.graph.Node(ch.Node)
		if n == nil {
			continue
		}
		s := &clip.Samplers[ch.Sampler]
		switch ch.Path {
		case animation.PathTranslation:
			n.Translation = s.Vec3(t)
		case animation.PathRotation:
			n.Rotation = s.Quat(t)
		case animation.PathScale:
			n.Scale = s.Vec3(t)
		}
	}
}
