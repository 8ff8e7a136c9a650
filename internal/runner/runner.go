// Package runner implements the headless playback loop.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/nodeanim/internal/config"
	"github.com/Faultbox/nodeanim/internal/debugserver"
	"github.com/Faultbox/nodeanim/internal/engine/animation"
	"github.com/Faultbox/nodeanim/internal/engine/model"
	"github.com/Faultbox/nodeanim/internal/engine/playback"
	"github.com/Faultbox/nodeanim/internal/engine/skeleton"
	"github.com/Faultbox/nodeanim/internal/importer"
)

// ErrNoAsset is returned when no asset path is configured.
var ErrNoAsset = errors.New("no asset configured")

// Runner owns a loaded model and drives its player at a fixed rate.
type Runner struct {
	config *config.Config
	log    *zap.Logger

	model  *model.Model
	buffer *skeleton.HostBuffer
	player *playback.Player
	server *debugserver.Server

	warned bool
}

// New loads the configured asset and prepares playback.
func New(cfg *config.Config, log *zap.Logger) (*Runner, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Asset.Path == "" {
		return nil, ErrNoAsset
	}

	log.Info("loading asset", zap.String("path", cfg.Asset.Path))
	asset, err := importer.Load(cfg.Asset.Path, importer.Options{Scene: cfg.Asset.Scene})
	if err != nil {
		return nil, fmt.Errorf("failed to import asset: %w", err)
	}
	m, err := model.Build(asset)
	if err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}

	r := &Runner{
		config: cfg,
		log:    log,
		model:  m,
		buffer: m.NewBuffer(),
	}

	r.player, err = m.NewPlayer(playback.Config{
		Clip:  cfg.Playback.Clip,
		Speed: cfg.Playback.Speed,
		Loop:  cfg.Playback.Loop,
	}, playback.WithBuffer(r.buffer), playback.WithLogger(log.Named("playback")))
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	if cfg.Server.Enabled {
		r.server = debugserver.New(m, r.buffer,
			debugserver.WithLogger(log.Named("debugserver")),
			debugserver.WithPushInterval(cfg.Server.PushInterval))
	}

	meshNodes, prims := model.CountPrimitives(m.Graph)
	fields := []zap.Field{
		zap.String("model", m.Name),
		zap.Int("nodes", m.NodeCount),
		zap.Int("meshNodes", meshNodes),
		zap.Int("primitives", prims),
		zap.Int("clips", len(m.Clips)),
	}
	if clip := r.player.ActiveClip(); clip != nil {
		fields = append(fields, zap.String("clip", clip.Name), zap.Float32("duration", clip.Duration()))
	}
	log.Info("model loaded", fields...)
	return r, nil
}

// Model returns the loaded model.
func (r *Runner) Model() *model.Model {
	return r.model
}

// Buffer returns the skeleton buffer frames are published to.
func (r *Runner) Buffer() *skeleton.HostBuffer {
	return r.buffer
}

// Frames returns the number of frames played.
func (r *Runner) Frames() uint64 {
	return r.player.Frame()
}

// Run plays frames until ctx is done or the configured frame count is
// reached. The debug server, if enabled, runs for the same duration.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srvErr := make(chan error, 1)
	if r.server != nil {
		go func() {
			srvErr <- r.server.ListenAndServe(ctx, r.config.Server.Addr)
		}()
	}

	step := r.config.Playback.FrameStep()
	dt := float32(step.Seconds())
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	frameCount := 0
	fpsTimer := time.Now()

	r.log.Info("starting playback loop", zap.Duration("step", step))

	for {
		select {
		case <-ctx.Done():
			return r.stopServer(cancel, srvErr)
		case err := <-srvErr:
			// The server also returns nil when ctx is cancelled.
			if err != nil {
				return fmt.Errorf("debug server: %w", err)
			}
			return nil
		case <-ticker.C:
		}

		if err := r.update(dt); err != nil {
			_ = r.stopServer(cancel, srvErr)
			return fmt.Errorf("update error: %w", err)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			r.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("time", r.player.Time()))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if n := r.config.Playback.Frames; n > 0 && r.player.Frame() >= uint64(n) {
			r.log.Info("frame limit reached", zap.Int("frames", n))
			return r.stopServer(cancel, srvErr)
		}
	}
}

// update advances one frame. Disabled channels are reported once; only a
// failed publish stops the loop.
func (r *Runner) update(dt float32) error {
	err := r.player.Update(dt)
	if err == nil {
		return nil
	}
	if errors.Is(err, playback.ErrPublish) {
		return err
	}
	if !r.warned && (errors.Is(err, animation.ErrUnsupportedInterpolation) || errors.Is(err, animation.ErrUnsupportedPath)) {
		r.log.Warn("playing with disabled channels", zap.Error(err))
		r.warned = true
	}
	return nil
}

func (r *Runner) stopServer(cancel context.CancelFunc, srvErr <-chan error) error {
	if r.server == nil {
		return nil
	}
	cancel()
	if err := <-srvErr; err != nil {
		return fmt.Errorf("debug server: %w", err)
	}
	return nil
}

// Close releases resources.
func (r *Runner) Close() {
	r.log.Info("closing player")
	if r.server != nil {
		r.server.Close()
	}
}
