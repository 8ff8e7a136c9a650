// Package debug provides line geometry for skeleton visualization.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/nodeanim/internal/engine/skeleton"
)

// BoxVertexCount is the number of vertices in a box wireframe (12 edges × 2).
const BoxVertexCount = 24

// DefaultBoxPadding is the default padding around skeleton bounds.
const DefaultBoxPadding = 0.05

// Bone is a parent/child pair of node indices.
type Bone struct {
	Parent int `json:"parent"`
	Child  int `json:"child"`
}

// BoxWireframe creates line vertices for an axis-aligned box.
// Format is [x, y, z] per vertex, two vertices per edge.
func BoxWireframe(lo, hi [3]float32, padding float32) []float32 {
	minX, minY, minZ := lo[0]-padding, lo[1]-padding, lo[2]-padding
	maxX, maxY, maxZ := hi[0]+padding, hi[1]+padding, hi[2]+padding
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// BoneLines creates one segment per bone, from the parent's world origin to
// the child's. Bones referencing indices outside world are skipped.
func BoneLines(bones []Bone, world skeleton.Matrices) []float32 {
	out := make([]float32, 0, len(bones)*6)
	for _, b := range bones {
		if b.Parent < 0 || b.Parent >= len(world) || b.Child < 0 || b.Child >= len(world) {
			continue
		}
		p := origin(world[b.Parent])
		c := origin(world[b.Child])
		out = append(out, p[0], p[1], p[2], c[0], c[1], c[2])
	}
	return out
}

// Bounds returns the box around the world origins of the given nodes.
// ok is false when no index is inside world.
func Bounds(nodes []int, world skeleton.Matrices) (lo, hi [3]float32, ok bool) {
	for _, i := range nodes {
		if i < 0 || i >= len(world) {
			continue
		}
		p := origin(world[i])
		if !ok {
			lo, hi, ok = p, p, true
			continue
		}
		for k := 0; k < 3; k++ {
			if p[k] < lo[k] {
				lo[k] = p[k]
			}
			if p[k] > hi[k] {
				hi[k] = p[k]
			}
		}
	}
	return lo, hi, ok
}

func origin(m mgl32.Mat4) [3]float32 {
	return [3]float32{m[12], m[13], m[14]}
}
