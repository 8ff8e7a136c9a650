package debug

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/nodeanim/internal/engine/skeleton"
)

func TestBoxWireframe(t *testing.T) {
	v := BoxWireframe([3]float32{0, 0, 0}, [3]float32{1, 2, 3}, 0.5)
	if len(v) != BoxVertexCount*3 {
		t.Fatalf("len = %d, want %d", len(v), BoxVertexCount*3)
	}
	if v[0] != -0.5 || v[1] != -0.5 || v[2] != -0.5 {
		t.Errorf("first vertex = %v, want padded min", v[:3])
	}
	if v[3] != 1.5 {
		t.Errorf("second vertex x = %v, want 1.5", v[3])
	}
}

func TestBoneLines(t *testing.T) {
	world := skeleton.Matrices{
		mgl32.Ident4(),
		mgl32.Translate3D(0, 1, 0),
		mgl32.Translate3D(0, 2, 0),
	}
	bones := []Bone{{Parent: 0, Child: 1}, {Parent: 1, Child: 2}, {Parent: 1, Child: 9}}

	got := BoneLines(bones, world)
	want := []float32{0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 2, 0}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBounds(t *testing.T) {
	world := skeleton.Matrices{
		mgl32.Translate3D(-1, 0, 2),
		mgl32.Translate3D(3, -4, 0),
		mgl32.Translate3D(100, 100, 100),
	}

	tests := []struct {
		name     string
		nodes    []int
		min, max [3]float32
		ok       bool
	}{
		{"two nodes", []int{0, 1}, [3]float32{-1, -4, 0}, [3]float32{3, 0, 2}, true},
		{"single", []int{1}, [3]float32{3, -4, 0}, [3]float32{3, -4, 0}, true},
		{"out of range", []int{7}, [3]float32{}, [3]float32{}, false},
		{"empty", nil, [3]float32{}, [3]float32{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := Bounds(tt.nodes, world)
			if ok != tt.ok || lo != tt.min || hi != tt.max {
				t.Errorf("Bounds() = %v %v %v, want %v %v %v", lo, hi, ok, tt.min, tt.max, tt.ok)
			}
		})
	}
}
