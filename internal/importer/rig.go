package importer

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/nodeanim/internal/engine/model"
)

// OpenRig reads a YAML rig description.
func OpenRig(path string) (*model.Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open rig %q", path)
	}
	defer f.Close()

	a, err := DecodeRig(f)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to import %q", path)
	}
	if a.Name == "" {
		a.Name = baseName(path)
	}
	return a, nil
}

// DecodeRig decodes a YAML rig description. Unknown keys are rejected.
// When no roots are listed, every node that is nobody's child is a root.
func DecodeRig(r io.Reader) (*model.Asset, error) {
	var a model.Asset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "Failed to decode rig")
	}

	if len(a.Roots) == 0 {
		isChild := make([]bool, len(a.Nodes))
		for _, n := range a.Nodes {
			for _, c := range n.Children {
				if c >= 0 && c < len(isChild) {
					isChild[c] = true
				}
			}
		}
		for i, child := range isChild {
			if !child {
				a.Roots = append(a.Roots, i)
			}
		}
	}
	return &a, nil
}

// EncodeRig writes an asset as a YAML rig description.
func EncodeRig(w io.Writer, a *model.Asset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(a); err != nil {
		return errors.Wrap(err, "Failed to encode rig")
	}
	return errors.Wrap(enc.Close(), "Failed to encode rig")
}
