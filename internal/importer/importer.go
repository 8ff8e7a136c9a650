// Package importer turns asset files into model import records.
//
// Two formats are understood: glTF 2.0 documents (.gltf, .glb) and YAML rig
// descriptions (.yaml, .yml) that spell the records out directly.
package importer

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/nodeanim/internal/engine/model"
)

// ErrUnknownFormat is returned for files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown asset format")

// Options controls how an asset is imported.
type Options struct {
	// Scene selects the glTF scene whose nodes become roots.
	// A negative value uses the document's default scene.
	Scene int
}

// DefaultOptions uses the document's default scene.
func DefaultOptions() Options {
	return Options{Scene: -1}
}

// Load reads the asset at path, choosing the importer by file extension.
func Load(path string, opts Options) (*model.Asset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return OpenGLTF(path, opts)
	case ".yaml", ".yml":
		return OpenRig(path)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%s", path)
	}
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
