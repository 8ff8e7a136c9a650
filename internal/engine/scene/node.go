// Package scene holds the node hierarchy of a loaded model.
//
// Nodes live in an arena owned by Graph and are addressed by their load-time
// index. The index is the node's stable identity and its slot in the flat
// world-transform array consumed by the renderer.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/nodeanim/pkg/math"
)

// NoParent marks a root node's parent index.
const NoParent = -1

// Primitive is one draw call's worth of index data. The engine never
// interprets it; renderers walk the graph and draw these in node order.
type Primitive struct {
	FirstIndex uint32 `yaml:"first_index" json:"firstIndex"`
	IndexCount uint32 `yaml:"index_count" json:"indexCount"`
	Material   int    `yaml:"material" json:"material"`
}

// Node is a single element of the scene hierarchy.
type Node struct {
	Index int
	Name  string

	// Parent is a lookup-only back reference (NoParent for roots).
	Parent   int
	Children []int

	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
	// Matrix is the baked local matrix; identity when the source gave TRS.
	Matrix math.Mat4

	Mesh       int // -1 when the node carries no mesh
	Primitives []Primitive
}

// newNode returns a node with an identity local transform.
func newNode(index int) *Node {
	return &Node{
		Index:    index,
		Parent:   NoParent,
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3One,
		Matrix:   math.Identity(),
		Mesh:     -1,
	}
}

// LocalTransform returns T * R * S * M for the node.
func (n *Node) LocalTransform() math.Mat4 {
	return math.Compose(n.Translation, n.Rotation, n.Scale, n.Matrix)
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == NoParent
}

// HasMesh reports whether the node references a mesh with primitives.
func (n *Node) HasMesh() bool {
	return n.Mesh >= 0 || len(n.Primitives) > 0
}
