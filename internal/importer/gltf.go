package importer

import (
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/nodeanim/internal/engine/animation"
	"github.com/Faultbox/nodeanim/internal/engine/model"
	"github.com/Faultbox/nodeanim/internal/engine/scene"
)

// glTF import errors.
var (
	ErrSceneIndex = errors.New("scene index out of range")
	ErrAccessor   = errors.New("invalid accessor")
)

// OpenGLTF reads a .gltf or .glb file.
func OpenGLTF(path string, opts Options) (*model.Asset, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open gltf %q", path)
	}
	a, err := FromDocument(doc, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to import %q", path)
	}
	if a.Name == "" {
		a.Name = baseName(path)
	}
	return a, nil
}

// FromDocument converts a decoded glTF document. Node indices are the
// document's node indices; roots are the nodes of the selected scene.
func FromDocument(doc *gltf.Document, opts Options) (*model.Asset, error) {
	a := &model.Asset{
		Nodes: make([]scene.NodeImport, len(doc.Nodes)),
	}

	firstIndex := meshIndexOffsets(doc)
	for i, n := range doc.Nodes {
		rec, err := nodeRecord(doc, n, firstIndex)
		if err != nil {
			return nil, errors.Wrapf(err, "node %d", i)
		}
		a.Nodes[i] = rec
	}

	roots, err := sceneRoots(doc, opts.Scene)
	if err != nil {
		return nil, err
	}
	a.Roots = roots

	if len(doc.Scenes) > 0 && len(a.Roots) > 0 {
		a.Name = doc.Scenes[sceneIndex(doc, opts.Scene)].Name
	}

	for i, anim := range doc.Animations {
		clip, err := clipRecord(doc, anim)
		if err != nil {
			return nil, errors.Wrapf(err, "animation %d (%q)", i, anim.Name)
		}
		a.Clips = append(a.Clips, clip)
	}
	return a, nil
}

func sceneIndex(doc *gltf.Document, want int) int {
	if want >= 0 {
		return want
	}
	if doc.Scene != nil {
		return int(*doc.Scene)
	}
	return 0
}

// sceneRoots returns the root nodes of the selected scene. A document
// without scenes uses every node that is nobody's child.
func sceneRoots(doc *gltf.Document, want int) ([]int, error) {
	if len(doc.Scenes) == 0 {
		if want > 0 {
			return nil, errors.Wrapf(ErrSceneIndex, "scene %d of 0", want)
		}
		isChild := make([]bool, len(doc.Nodes))
		for _, n := range doc.Nodes {
			for _, c := range n.Children {
				if int(c) < len(isChild) {
					isChild[c] = true
				}
			}
		}
		var roots []int
		for i, child := range isChild {
			if !child {
				roots = append(roots, i)
			}
		}
		return roots, nil
	}

	idx := sceneIndex(doc, want)
	if idx >= len(doc.Scenes) {
		return nil, errors.Wrapf(ErrSceneIndex, "scene %d of %d", idx, len(doc.Scenes))
	}
	roots := make([]int, len(doc.Scenes[idx].Nodes))
	for i, n := range doc.Scenes[idx].Nodes {
		roots[i] = int(n)
	}
	return roots, nil
}

func nodeRecord(doc *gltf.Document, n *gltf.Node, firstIndex []uint32) (scene.NodeImport, error) {
	rec := scene.NodeImport{Name: n.Name}

	if n.Translation != [3]float32{} {
		t := n.Translation
		rec.Translation = &t
	}
	// The decoder fills absent fields with the glTF defaults, so only those
	// are dropped. A zero quaternion is not a rotation and is dropped too.
	if n.Rotation != [4]float32{} && n.Rotation != gltf.DefaultRotation {
		r := n.Rotation
		rec.Rotation = &r
	}
	if n.Scale != gltf.DefaultScale {
		s := n.Scale
		rec.Scale = &s
	}
	if n.Matrix != gltf.DefaultMatrix {
		rec.Matrix = append([]float32(nil), n.Matrix[:]...)
	}

	for _, c := range n.Children {
		rec.Children = append(rec.Children, int(c))
	}

	if n.Mesh != nil {
		mi := int(*n.Mesh)
		if mi >= len(doc.Meshes) {
			return rec, errors.Errorf("mesh %d out of range", mi)
		}
		rec.Mesh = &mi
		rec.Primitives = primitives(doc, doc.Meshes[mi], firstIndex[mi])
	}
	return rec, nil
}

// meshIndexOffsets lays every mesh's primitives out back to back, as if the
// document's index data were one buffer, and returns each mesh's offset.
func meshIndexOffsets(doc *gltf.Document) []uint32 {
	offsets := make([]uint32, len(doc.Meshes))
	var next uint32
	for i, m := range doc.Meshes {
		offsets[i] = next
		for _, p := range m.Primitives {
			next += primitiveCount(doc, p)
		}
	}
	return offsets
}

func primitiveCount(doc *gltf.Document, p *gltf.Primitive) uint32 {
	if p.Indices != nil {
		if int(*p.Indices) < len(doc.Accessors) {
			return doc.Accessors[*p.Indices].Count
		}
		return 0
	}
	if pos, ok := p.Attributes["POSITION"]; ok && int(pos) < len(doc.Accessors) {
		return doc.Accessors[pos].Count
	}
	return 0
}

func primitives(doc *gltf.Document, m *gltf.Mesh, first uint32) []scene.Primitive {
	out := make([]scene.Primitive, 0, len(m.Primitives))
	for _, p := range m.Primitives {
		count := primitiveCount(doc, p)
		material := -1
		if p.Material != nil {
			material = int(*p.Material)
		}
		out = append(out, scene.Primitive{FirstIndex: first, IndexCount: count, Material: material})
		first += count
	}
	return out
}

func clipRecord(doc *gltf.Document, anim *gltf.Animation) (animation.ClipImport, error) {
	clip := animation.ClipImport{
		Name:     anim.Name,
		Channels: make([]animation.ChannelImport, 0, len(anim.Channels)),
		Samplers: make([]animation.SamplerImport, 0, len(anim.Samplers)),
	}

	for i, ch := range anim.Channels {
		// Channels without a target node belong to extensions.
		if ch.Target.Node == nil {
			continue
		}
		if ch.Sampler == nil {
			return clip, errors.Errorf("channel %d has no sampler", i)
		}
		clip.Channels = append(clip.Channels, animation.ChannelImport{
			Node:    int(*ch.Target.Node),
			Path:    pathName(ch.Target.Path),
			Sampler: int(*ch.Sampler),
		})
	}

	for i, s := range anim.Samplers {
		rec, err := samplerRecord(doc, s)
		if err != nil {
			return clip, errors.Wrapf(err, "sampler %d", i)
		}
		clip.Samplers = append(clip.Samplers, rec)
	}
	return clip, nil
}

func pathName(p gltf.TRSProperty) string {
	switch p {
	case gltf.TRSTranslation:
		return "translation"
	case gltf.TRSRotation:
		return "rotation"
	case gltf.TRSScale:
		return "scale"
	case gltf.TRSWeights:
		return "weights"
	default:
		return ""
	}
}

func interpolationName(i gltf.Interpolation) string {
	switch i {
	case gltf.InterpolationLinear:
		return "LINEAR"
	case gltf.InterpolationStep:
		return "STEP"
	case gltf.InterpolationCubicSpline:
		return "CUBICSPLINE"
	default:
		return "UNKNOWN"
	}
}

func samplerRecord(doc *gltf.Document, s *gltf.AnimationSampler) (animation.SamplerImport, error) {
	rec := animation.SamplerImport{Interpolation: interpolationName(s.Interpolation)}
	if s.Input == nil || s.Output == nil {
		return rec, errors.Wrap(ErrAccessor, "sampler needs input and output accessors")
	}

	in, _, err := readFloats(doc, *s.Input)
	if err != nil {
		return rec, errors.Wrap(err, "input")
	}
	out, width, err := readFloats(doc, *s.Output)
	if err != nil {
		return rec, errors.Wrap(err, "output")
	}

	// Scalar outputs are morph weights: one value per target per keyframe.
	if width == 1 && len(in) > 0 && len(out)%len(in) == 0 {
		width = len(out) / len(in)
	}
	rec.Inputs = in
	rec.Outputs = out
	rec.Width = width
	return rec, nil
}

// readFloats reads an accessor as a flat float array plus its component
// count. Normalized integer data is mapped to [-1,1] or [0,1].
func readFloats(doc *gltf.Document, index uint32) ([]float32, int, error) {
	if int(index) >= len(doc.Accessors) {
		return nil, 0, errors.Wrapf(ErrAccessor, "accessor %d out of range", index)
	}
	data, err := modeler.ReadAccessor(doc, doc.Accessors[index], nil)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "Failed to read accessor %d", index)
	}

	switch v := data.(type) {
	case []float32:
		return v, 1, nil
	case [][3]float32:
		out := make([]float32, 0, len(v)*3)
		for _, e := range v {
			out = append(out, e[:]...)
		}
		return out, 3, nil
	case [][4]float32:
		out := make([]float32, 0, len(v)*4)
		for _, e := range v {
			out = append(out, e[:]...)
		}
		return out, 4, nil
	case [][4]int8:
		return normalized4(len(v), func(i, c int) float32 { return snorm(float32(v[i][c]), 127) }), 4, nil
	case [][4]uint8:
		return normalized4(len(v), func(i, c int) float32 { return float32(v[i][c]) / 255 }), 4, nil
	case [][4]int16:
		return normalized4(len(v), func(i, c int) float32 { return snorm(float32(v[i][c]), 32767) }), 4, nil
	case [][4]uint16:
		return normalized4(len(v), func(i, c int) float32 { return float32(v[i][c]) / 65535 }), 4, nil
	default:
		return nil, 0, errors.Wrapf(ErrAccessor, "accessor %d has unsupported type %T", index, data)
	}
}

func normalized4(n int, at func(i, c int) float32) []float32 {
	out := make([]float32, 0, n*4)
	for i := 0; i < n; i++ {
		for c := 0; c < 4; c++ {
			out = append(out, at(i, c))
		}
	}
	return out
}

func snorm(v, scale float32) float32 {
	if f := v / scale; f > -1 {
		return f
	}
	return -1
}
