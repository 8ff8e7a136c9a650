package debugserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Faultbox/nodeanim/internal/engine/debug"
	"github.com/Faultbox/nodeanim/internal/engine/model"
	"github.com/Faultbox/nodeanim/internal/engine/skeleton"
	"github.com/Faultbox/nodeanim/pkg/math"
)

// ModelInfo is the /api/model response.
type ModelInfo struct {
	Name      string           `json:"name"`
	NodeCount int              `json:"nodeCount"`
	Clips     []model.ClipInfo `json:"clips"`
	Frame     uint64           `json:"frame"`
}

// SkeletonFrame is one published world-transform array. Matrices are
// column-major, one per node index.
type SkeletonFrame struct {
	Frame    uint64            `json:"frame"`
	Matrices skeleton.Matrices `json:"matrices"`
}

// Lines is the /api/lines response: bone segments and a bounding box as
// [x, y, z] line vertex lists.
type Lines struct {
	Frame  uint64    `json:"frame"`
	Bones  []float32 `json:"bones"`
	Bounds []float32 `json:"bounds"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.log.Debug("write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, _ := json.Marshal(errorResponse{Error: err.Error()})
	_, _ = w.Write(data)
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, ModelInfo{
		Name:      s.name,
		NodeCount: s.nodeCount,
		Clips:     s.clips,
		Frame:     s.buffer.Frame(),
	})
}

// withWorld copies the node info with world positions from the latest frame.
func (s *Server) withWorld() []model.NodeDebugInfo {
	world, _ := s.buffer.Snapshot()
	nodes := make([]model.NodeDebugInfo, len(s.nodes))
	copy(nodes, s.nodes)
	for i := range nodes {
		if idx := nodes[i].Index; idx < len(world) {
			nodes[i].World = math.Translation(world[idx])
		}
	}
	return nodes
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.withWorld())
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	for _, n := range s.withWorld() {
		if n.Index == index {
			s.writeJSON(w, http.StatusOK, n)
			return
		}
	}
	s.writeError(w, http.StatusNotFound, fmt.Errorf("node %d not found", index))
}

func (s *Server) handleClips(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.clips)
}

func (s *Server) handleSkeleton(w http.ResponseWriter, r *http.Request) {
	world, frame := s.buffer.Snapshot()
	s.writeJSON(w, http.StatusOK, SkeletonFrame{Frame: frame, Matrices: world})
}

// handleSkeletonBinary serves the buffer bytes exactly as a renderer would
// bind them.
func (s *Server) handleSkeletonBinary(w http.ResponseWriter, r *http.Request) {
	data, frame := s.buffer.Read()
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-Skeleton-Frame", strconv.FormatUint(frame, 10))
	w.Header().Set("X-Skeleton-Stride", strconv.Itoa(skeleton.MatrixSize))
	if _, err := w.Write(data); err != nil {
		s.log.Debug("write skeleton", zap.Error(err))
	}
}

func (s *Server) handleLines(w http.ResponseWriter, r *http.Request) {
	world, frame := s.buffer.Snapshot()
	resp := Lines{Frame: frame, Bones: debug.BoneLines(s.bones, world)}
	if lo, hi, ok := debug.Bounds(s.live, world); ok {
		resp.Bounds = debug.BoxWireframe(lo, hi, debug.DefaultBoxPadding)
	}
	s.writeJSON(w, http.StatusOK, resp)
}
