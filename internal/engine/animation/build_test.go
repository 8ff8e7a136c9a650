package animation

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/nodeanim/internal/engine/scene"
)

func testGraph(t *testing.T) *scene.Graph {
	t.Helper()
	g, err := scene.Build([]scene.NodeImport{{Children: []int{1}}, {}}, []int{0})
	if err != nil {
		t.Fatalf("scene.Build failed: %v", err)
	}
	return g
}

func translationClip() ClipImport {
	return ClipImport{
		Name: "walk",
		Channels: []ChannelImport{
			{Node: 1, Path: "translation", Sampler: 0},
			{Node: 0, Path: "rotation", Sampler: 1},
		},
		Samplers: []SamplerImport{
			{Interpolation: "LINEAR", Inputs: []float32{0.5, 1, 2}, Outputs: []float32{0, 0, 0, 1, 0, 0, 2, 0, 0}},
			{Inputs: []float32{0, 3}, Outputs: []float32{0, 0, 0, 1, 0, 0, 0, 1}, Width: 4},
		},
	}
}

func TestBuildClip(t *testing.T) {
	clip, err := BuildClip(translationClip(), testGraph(t))
	if err != nil {
		t.Fatalf("BuildClip failed: %v", err)
	}

	if clip.Name != "walk" {
		t.Errorf("name: got %q", clip.Name)
	}
	if clip.Start != 0 || clip.End != 3 {
		t.Errorf("bounds: got [%v, %v], want [0, 3]", clip.Start, clip.End)
	}
	if clip.CurrentTime != clip.Start {
		t.Errorf("clip should start at Start, got %v", clip.CurrentTime)
	}
	if clip.Channels[0].Path != PathTranslation || clip.Channels[1].Path != PathRotation {
		t.Errorf("paths: got %v, %v", clip.Channels[0].Path, clip.Channels[1].Path)
	}

	// 3-wide outputs are widened with a zero 4th component
	if got := clip.Samplers[0].Outputs[1]; got != (mgl32.Vec4{1, 0, 0, 0}) {
		t.Errorf("widened output: got %v", got)
	}
	if got := clip.Samplers[1].Outputs[0]; got != (mgl32.Vec4{0, 0, 0, 1}) {
		t.Errorf("rotation output: got %v", got)
	}

	if paths := clip.Targets(1); len(paths) != 1 || paths[0] != PathTranslation {
		t.Errorf("Targets(1): got %v", paths)
	}
}

func TestBuildClipErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *ClipImport)
		want   error
	}{
		{
			name:   "dangling node",
			mutate: func(c *ClipImport) { c.Channels[0].Node = 9 },
			want:   ErrDanglingNode,
		},
		{
			name:   "sampler index",
			mutate: func(c *ClipImport) { c.Channels[0].Sampler = 5 },
			want:   ErrSamplerIndex,
		},
		{
			name:   "invalid path",
			mutate: func(c *ClipImport) { c.Channels[0].Path = "position" },
			want:   ErrInvalidPath,
		},
		{
			name:   "empty sampler",
			mutate: func(c *ClipImport) { c.Samplers[0].Inputs = nil; c.Samplers[0].Outputs = nil },
			want:   ErrEmptySampler,
		},
		{
			name:   "length mismatch",
			mutate: func(c *ClipImport) { c.Samplers[0].Outputs = c.Samplers[0].Outputs[:7] },
			want:   ErrKeyframeMismatch,
		},
		{
			name:   "explicit width mismatch",
			mutate: func(c *ClipImport) { c.Samplers[1].Width = 3 },
			want:   ErrKeyframeMismatch,
		},
		{
			name:   "unordered keyframes",
			mutate: func(c *ClipImport) { c.Samplers[0].Inputs = []float32{0.5, 2, 1} },
			want:   ErrUnorderedKeyframes,
		},
		{
			name:   "rotation from vec3 sampler",
			mutate: func(c *ClipImport) { c.Channels[1].Sampler = 0 },
			want:   ErrOutputWidth,
		},
		{
			name:   "translation from vec4 sampler",
			mutate: func(c *ClipImport) { c.Channels[0].Sampler = 1 },
			want:   ErrOutputWidth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := translationClip()
			tt.mutate(&rec)
			clip, err := BuildClip(rec, testGraph(t))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if clip != nil {
				t.Error("clip should be nil on failure")
			}
		})
	}
}

func TestBuildClipUnsupportedKept(t *testing.T) {
	rec := translationClip()
	rec.Samplers[0].Interpolation = "CUBICSPLINE"

	clip, err := BuildClip(rec, testGraph(t))
	if err != nil {
		t.Fatalf("unsupported interpolation should not fail the load: %v", err)
	}
	if err := clip.Supported(clip.Channels[0]); !errors.Is(err, ErrUnsupportedInterpolation) {
		t.Errorf("Supported: expected ErrUnsupportedInterpolation, got %v", err)
	}
	if err := clip.Supported(clip.Channels[1]); err != nil {
		t.Errorf("linear channel should be supported, got %v", err)
	}
}

func TestBuildClipWeights(t *testing.T) {
	rec := ClipImport{
		Name:     "morph",
		Channels: []ChannelImport{{Node: 0, Path: "weights", Sampler: 0}},
		Samplers: []SamplerImport{{Inputs: []float32{0, 1}, Outputs: []float32{0, 1, 1, 0}, Width: 2}},
	}
	clip, err := BuildClip(rec, testGraph(t))
	if err != nil {
		t.Fatalf("weights clip should load: %v", err)
	}
	if err := clip.Supported(clip.Channels[0]); !errors.Is(err, ErrUnsupportedPath) {
		t.Errorf("Supported: expected ErrUnsupportedPath, got %v", err)
	}
}

func TestBuildClipEmpty(t *testing.T) {
	clip, err := BuildClip(ClipImport{Name: "empty"}, testGraph(t))
	if err != nil {
		t.Fatalf("empty clip should load: %v", err)
	}
	if clip.Start != 0 || clip.End != 0 {
		t.Errorf("empty clip bounds: got [%v, %v]", clip.Start, clip.End)
	}
}
