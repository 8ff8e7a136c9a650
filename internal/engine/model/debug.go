package model

import (
	"github.com/Faultbox/nodeanim/internal/engine/scene"
	"github.com/Faultbox/nodeanim/internal/engine/skeleton"
	"github.com/Faultbox/nodeanim/pkg/math"
)

// BuildNodeDebugInfo describes every live node in index order. World
// positions come from world, or from the load-time skeleton when world is nil.
func BuildNodeDebugInfo(m *Model, world skeleton.Matrices) []NodeDebugInfo {
	if world == nil {
		world = m.Skeleton
	}

	info := make([]NodeDebugInfo, 0, m.Graph.NodeCount())
	for i := 0; i < m.Graph.Len(); i++ {
		n := m.Graph.Node(i)
		if n == nil {
			continue
		}
		d := NodeDebugInfo{
			Index:       n.Index,
			Name:        n.Name,
			Parent:      n.Parent,
			Children:    n.Children,
			Translation: n.Translation,
			Rotation:    math.QuatToXYZW(n.Rotation),
			Scale:       n.Scale,
			HasMatrix:   n.Matrix != math.Identity(),
			Mesh:        n.Mesh,
			Primitives:  len(n.Primitives),
		}
		for _, c := range m.Clips {
			for _, p := range c.Targets(n.Index) {
				d.Animated = append(d.Animated, c.Name+"/"+p.String())
			}
		}
		if n.Index < len(world) {
			d.World = math.Translation(world[n.Index])
		}
		info = append(info, d)
	}
	return info
}

// BuildClipInfo summarizes every clip.
func BuildClipInfo(m *Model) []ClipInfo {
	info := make([]ClipInfo, len(m.Clips))
	for i, c := range m.Clips {
		keys := 0
		for _, s := range c.Samplers {
			keys += len(s.Inputs)
		}
		info[i] = ClipInfo{
			Name:     c.Name,
			Start:    c.Start,
			End:      c.End,
			Channels: len(c.Channels),
			Samplers: len(c.Samplers),
			Keys:     keys,
		}
	}
	return info
}

// CountPrimitives returns how many nodes carry a mesh and the total number
// of primitives the renderer would draw.
func CountPrimitives(g *scene.Graph) (meshNodes, primitives int) {
	g.Walk(func(n *scene.Node) bool {
		if n.HasMesh() {
			meshNodes++
		}
		primitives += len(n.Primitives)
		return true
	})
	return meshNodes, primitives
}

// SkeletonBounds returns the box around the world origin of every live node.
func SkeletonBounds(g *scene.Graph, world skeleton.Matrices) Bounds {
	var b Bounds
	first := true
	g.Walk(func(n *scene.Node) bool {
		if n.Index >= len(world) {
			return true
		}
		p := math.Translation(world[n.Index])
		if first {
			b.Min, b.Max = p, p
			first = false
			return true
		}
		updateBounds(&b, p)
		return true
	})
	return b
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
