// Package model assembles a playable model from imported records.
package model

import (
	"github.com/Faultbox/nodeanim/internal/engine/animation"
	"github.com/Faultbox/nodeanim/internal/engine/scene"
	"github.com/Faultbox/nodeanim/internal/engine/skeleton"
)

// Asset is everything an asset loader hands over: one record per node,
// the root node indices, and the clips.
type Asset struct {
	Name  string                 `yaml:"name"`
	Nodes []scene.NodeImport     `yaml:"nodes"`
	Roots []int                  `yaml:"roots"`
	Clips []animation.ClipImport `yaml:"clips"`
}

// Model is a fully loaded scene graph with its clips.
type Model struct {
	Name  string
	Graph *scene.Graph
	Clips []*animation.Clip

	// NodeCount sizes the world-transform array and the skeleton buffer.
	NodeCount int

	// Skeleton holds the world transforms of the bind pose, computed at load.
	Skeleton skeleton.Matrices
}

// Bounds is an axis-aligned box around node origins.
type Bounds struct {
	Min [3]float32 `json:"min"`
	Max [3]float32 `json:"max"`
}

// NodeDebugInfo describes one node for tooling and the debug server.
type NodeDebugInfo struct {
	Index       int        `json:"index"`
	Name        string     `json:"name"`
	Parent      int        `json:"parent"`
	Children    []int      `json:"children"`
	Translation [3]float32 `json:"translation"`
	Rotation    [4]float32 `json:"rotation"`
	Scale       [3]float32 `json:"scale"`
	HasMatrix   bool       `json:"hasMatrix"`
	Mesh        int        `json:"mesh"`
	Primitives  int        `json:"primitives"`
	Animated    []string   `json:"animated,omitempty"`
	World       [3]float32 `json:"world"`
}

// ClipInfo summarizes a clip.
type ClipInfo struct {
	Name     string  `json:"name"`
	Start    float32 `json:"start"`
	End      float32 `json:"end"`
	Channels int     `json:"channels"`
	Samplers int     `json:"samplers"`
	Keys     int     `json:"keys"`
}
