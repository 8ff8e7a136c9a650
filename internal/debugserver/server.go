// Package debugserver exposes a loaded model and its published skeleton
// over HTTP and a websocket stream.
//
// The server never touches live nodes or clips. Everything it serves is
// either captured at construction or read from the skeleton buffer, so it
// can run beside the frame loop.
package debugserver

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/nodeanim/internal/engine/debug"
	"github.com/Faultbox/nodeanim/internal/engine/model"
	"github.com/Faultbox/nodeanim/internal/engine/skeleton"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithPushInterval sets how often websocket clients are checked for new frames.
func WithPushInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.interval = d
		}
	}
}

// Server serves model metadata and skeleton frames.
type Server struct {
	name      string
	nodeCount int
	nodes     []model.NodeDebugInfo
	clips     []model.ClipInfo
	bones     []debug.Bone
	live      []int

	buffer   *skeleton.HostBuffer
	log      *zap.Logger
	interval time.Duration
	upgrader websocket.Upgrader
	router   *mux.Router

	quit     chan struct{}
	quitOnce sync.Once
}

// New captures the model's metadata. Call it before playback starts.
func New(m *model.Model, buf *skeleton.HostBuffer, opts ...Option) *Server {
	s := &Server{
		name:      m.Name,
		nodeCount: m.NodeCount,
		nodes:     model.BuildNodeDebugInfo(m, nil),
		clips:     model.BuildClipInfo(m),
		buffer:    buf,
		log:       zap.NewNop(),
		interval:  50 * time.Millisecond,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		quit: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, n := range s.nodes {
		s.live = append(s.live, n.Index)
		if n.Parent >= 0 {
			s.bones = append(s.bones, debug.Bone{Parent: n.Parent, Child: n.Index})
		}
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/model", s.handleModel).Methods(http.MethodGet)
	r.HandleFunc("/api/nodes", s.handleNodes).Methods(http.MethodGet)
	r.HandleFunc("/api/nodes/{index:[0-9]+}", s.handleNode).Methods(http.MethodGet)
	r.HandleFunc("/api/clips", s.handleClips).Methods(http.MethodGet)
	r.HandleFunc("/api/skeleton", s.handleSkeleton).Methods(http.MethodGet)
	r.HandleFunc("/api/skeleton.bin", s.handleSkeletonBinary).Methods(http.MethodGet)
	r.HandleFunc("/api/lines", s.handleLines).Methods(http.MethodGet)
	r.HandleFunc("/ws/skeleton", s.handleSkeletonStream)
	s.router = r

	return s
}

// Handler returns the router wrapped with request logging and panic recovery.
func (s *Server) Handler() http.Handler {
	stdlog := zap.NewStdLog(s.log)
	var h http.Handler = s.router
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(stdlog))(h)
	h = handlers.LoggingHandler(stdlog.Writer(), h)
	return h
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("debug server listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops all websocket streams.
func (s *Server) Close() {
	s.quitOnce.Do(func() { close(s.quit) })
}
