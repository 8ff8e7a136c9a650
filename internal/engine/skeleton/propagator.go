// Package skeleton computes per-node world transforms and publishes them to a
// renderer-visible buffer.
package skeleton

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/nodeanim/internal/engine/scene"
	"github.com/Faultbox/nodeanim/pkg/math"
)

// Matrices is the flat world-transform array, indexed by node index.
type Matrices []mgl32.Mat4

// NewMatrices returns size identity matrices.
func NewMatrices(size int) Matrices {
	m := make(Matrices, size)
	m.Reset()
	return m
}

// Reset sets every entry to identity.
func (m Matrices) Reset() {
	for i := range m {
		m[i] = math.Identity()
	}
}

// State is the propagator's lifecycle state.
type State int

const (
	StateIdle State = iota
	StatePropagating
)

func (s State) String() string {
	if s == StatePropagating {
		return "propagating"
	}
	return "idle"
}

// Propagator recomputes world transforms from node local transforms.
type Propagator struct {
	state State
	world Matrices
}

// NewPropagator creates a propagator whose output array holds size entries.
func NewPropagator(size int) *Propagator {
	return &Propagator{world: NewMatrices(size)}
}

// State returns the current state.
func (p *Propagator) State() State {
	return p.state
}

// Matrices returns the last computed world-transform array.
// The slice is reused by the next Propagate call.
func (p *Propagator) Matrices() Matrices {
	return p.world
}

// Propagate walks the graph pre-order from an identity parent and writes
// world(node) = world(parent) * local(node) at each node's index. Every node
// is visited whether or not it has a mesh. The array is rebuilt in full.
func (p *Propagator) Propagate(g *scene.Graph) Matrices {
	p.state = StatePropagating
	defer func() { p.state = StateIdle }()

	if len(p.world) < g.Len() {
		p.world = NewMatrices(g.Len())
	} else {
		p.world.Reset()
	}

	identity := math.Identity()
	for _, r := range g.Roots() {
		p.visit(g, g.Node(r), identity)
	}
	return p.world
}

func (p *Propagator) visit(g *scene.Graph, n *scene.Node, parent mgl32.Mat4) {
	if n == nil {
		return
	}
	world := parent.Mul4(n.LocalTransform())
	p.world[n.Index] = world
	for _, c := range n.Children {
		p.visit(g, g.Node(c), world)
	}
}
