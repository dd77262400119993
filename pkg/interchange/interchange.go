// Package interchange defines the boundary to the interchange-format
// machinery. The pipeline never touches encoder internals; it hands a
// snapshot to a Writer and gets a file. Backends (glb) live in
// subpackages behind this interface so they can be swapped or stubbed.
package interchange

import (
	"github.com/sapiens-modding/partforge/pkg/material"
	"github.com/sapiens-modding/partforge/pkg/scene"
)

// Writer serializes a scene snapshot into one interchange file.
//
// Writers must be able to represent mesh, placeholder and camera nodes;
// other-kind nodes are skipped. A Writer may be stateful (buffer reuse)
// and is therefore not required to be safe for concurrent use; callers
// serialize writes.
type Writer interface {
	WriteScene(path string, snap *scene.Snapshot, opts Options) error
}

// Options tunes a single write.
type Options struct {
	// Materials resolves mesh material names to library entries. Names
	// without an entry get a writer-default placeholder material.
	Materials map[string]material.Material
}
