package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLerpVec3(t *testing.T) {
	a := mgl32.Vec3{0, 0, 0}
	b := mgl32.Vec3{10, 20, 30}

	result := LerpVec3(a, b, 0.5)
	expected := mgl32.Vec3{5, 10, 15}

	for i := 0; i < 3; i++ {
		if math.Abs(float64(result[i]-expected[i])) > 0.001 {
			t.Errorf("LerpVec3 component %d: expected %v, got %v", i, expected[i], result[i])
		}
	}
}

func TestLerpVec3Endpoints(t *testing.T) {
	a := mgl32.Vec3{1, -2, 3}
	b := mgl32.Vec3{4, 5, -6}
	if got := LerpVec3(a, b, 0); got != a {
		t.Errorf("LerpVec3 at 0: got %v, want %v", got, a)
	}
	if got := LerpVec3(a, b, 1); got != b {
		t.Errorf("LerpVec3 at 1: got %v, want %v", got, b)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1, 2, 3) {
		t.Error("finite values reported as non-finite")
	}
	if IsFinite(1, float32(math.NaN())) {
		t.Error("NaN reported as finite")
	}
	if IsFinite(float32(math.Inf(1))) {
		t.Error("Inf reported as finite")
	}
}
