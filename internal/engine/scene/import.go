package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/nodeanim/pkg/math"
)

// NodeImport is one node as handed over by an asset loader. Its position in
// the import slice is its node index.
type NodeImport struct {
	Name        string      `yaml:"name,omitempty"`
	Translation *[3]float32 `yaml:"translation,omitempty"`
	Rotation    *[4]float32 `yaml:"rotation,omitempty"` // x, y, z, w
	Scale       *[3]float32 `yaml:"scale,omitempty"`
	Matrix      []float32   `yaml:"matrix,omitempty"` // 16 floats, column-major
	Children    []int       `yaml:"children,omitempty"`
	Mesh        *int        `yaml:"mesh,omitempty"`
	Primitives  []Primitive `yaml:"primitives,omitempty"`
}

// Build creates a graph from node import records, starting at the given
// root indices. The graph's index space is sized to len(records) so that
// nodes unreachable from any root still own a world-transform slot.
func Build(records []NodeImport, roots []int) (*Graph, error) {
	g := New(len(records))
	for _, r := range roots {
		if err := checkRange(records, r); err != nil {
			return nil, fmt.Errorf("root: %w", err)
		}
		n, err := g.AddRoot(r)
		if err != nil {
			return nil, fmt.Errorf("root: %w", err)
		}
		if err := loadNode(g, records, n); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func loadNode(g *Graph, records []NodeImport, n *Node) error {
	rec := &records[n.Index]
	if err := applyImport(n, rec); err != nil {
		return fmt.Errorf("node %d: %w", n.Index, err)
	}

	for _, c := range rec.Children {
		if err := checkRange(records, c); err != nil {
			return fmt.Errorf("node %d child: %w", n.Index, err)
		}
		child, err := g.AddChild(n.Index, c)
		if err != nil {
			return fmt.Errorf("node %d child: %w", n.Index, err)
		}
		if err := loadNode(g, records, child); err != nil {
			return err
		}
	}
	return nil
}

// applyImport copies the local transform and payload from rec. TRS and the
// baked matrix may both be present; they combine as T * R * S * M.
func applyImport(n *Node, rec *NodeImport) error {
	n.Name = rec.Name
	if rec.Translation != nil {
		n.Translation = mgl32.Vec3(*rec.Translation)
	}
	if rec.Rotation != nil {
		n.Rotation = math.NormalizeQuat(math.QuatFromXYZW(*rec.Rotation))
	}
	if rec.Scale != nil {
		n.Scale = mgl32.Vec3(*rec.Scale)
	}
	if rec.Matrix != nil {
		m, ok := math.FromColumnMajor(rec.Matrix)
		if !ok {
			return fmt.Errorf("matrix has %d values, want 16", len(rec.Matrix))
		}
		n.Matrix = m
	}
	if rec.Mesh != nil {
		n.Mesh = *rec.Mesh
	}
	n.Primitives = append([]Primitive(nil), rec.Primitives...)
	return nil
}

func checkRange(records []NodeImport, index int) error {
	if index < 0 || index >= len(records) {
		return fmt.Errorf("%w: %d (have %d nodes)", ErrNodeIndexOutOfRange, index, len(records))
	}
	return nil
}
