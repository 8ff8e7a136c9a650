package debugserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// handleSkeletonStream pushes every new skeleton frame to the client. Frames
// published faster than the push interval are coalesced; the client always
// receives the latest one.
func (s *Server) handleSkeletonStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	log := s.log.With(zap.String("remote", r.RemoteAddr))
	log.Debug("skeleton stream opened")

	closed := make(chan struct{})
	go s.readPump(conn, closed)
	s.writePump(conn, closed, log)
}

// readPump drains control frames and reports when the client goes away.
func (s *Server) readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, closed <-chan struct{}, log *zap.Logger) {
	poll := time.NewTicker(s.interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		poll.Stop()
		ping.Stop()
		conn.Close()
		log.Debug("skeleton stream closed")
	}()

	var sent uint64
	send := func() bool {
		world, frame := s.buffer.Snapshot()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(SkeletonFrame{Frame: frame, Matrices: world}); err != nil {
			log.Debug("skeleton stream write", zap.Error(err))
			return false
		}
		sent = frame
		return true
	}

	if !send() {
		return
	}
	for {
		select {
		case <-poll.C:
			if s.buffer.Frame() == sent {
				continue
			}
			if !send() {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			return
		case <-s.quit:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		}
	}
}
