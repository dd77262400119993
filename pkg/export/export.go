// Package export drives the pipeline: snapshot in, artifacts out. It owns
// the part exporter (one file per export group) and the orchestrator that
// sequences parsing, grouping, placeholder synthesis and writing, then
// reports a run summary.
//
// Failure policy: a node that fails to parse or a group that fails to
// write is collected and reported, never fatal; only layout resolution and
// snapshot loading abort a run.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sapiens-modding/partforge/pkg/grouping"
	"github.com/sapiens-modding/partforge/pkg/interchange"
	"github.com/sapiens-modding/partforge/pkg/layout"
	"github.com/sapiens-modding/partforge/pkg/material"
	"github.com/sapiens-modding/partforge/pkg/preview"
	"github.com/sapiens-modding/partforge/pkg/scene"
	"github.com/sapiens-modding/partforge/pkg/shape"
)

// WriteError reports a failed artifact write for one group. Remaining
// groups still run; partial success is a valid terminal state.
type WriteError struct {
	Group string
	Path  string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s (group %s): %v", e.Path, e.Group, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Warning is one non-fatal finding surfaced in the summary.
type Warning struct {
	Stage   string // "parse", "preview" or "write"
	Subject string // node name or group key
	Err     error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %v", w.Stage, w.Subject, w.Err)
}

// Summary is the outcome of one run.
type Summary struct {
	Parsed       int // mesh nodes grouped
	Skipped      int // mesh nodes excluded by parse failure
	Groups       int
	FilesWritten int
	Artifacts    []string // paths written, in write order
	Warnings     []Warning
}

// Exporter writes the per-group part artifacts.
type Exporter struct {
	Layout    *layout.Layout
	Writer    interchange.Writer
	Ext       string // artifact extension, e.g. ".glb"
	Materials map[string]material.Material
}

// ExportParts writes exactly one file per non-suppressed group: the
// canonical representative's geometry under an identity local transform.
// The engine applies its own placement transform at instantiation time, so
// a baked transform would double-apply.
func (e *Exporter) ExportParts(ctx context.Context, groups *grouping.Result) ([]string, []Warning, error) {
	var written []string
	var warnings []Warning
	for _, g := range groups.Groups {
		if err := ctx.Err(); err != nil {
			return written, warnings, err
		}
		if g.Suppressed() {
			continue
		}
		rep := g.Representative()
		path := e.Layout.PartPath(g.Key.Base, g.Key.Resource, e.Ext)
		if err := e.writePart(path, rep.Node, g.Key.Resource); err != nil {
			warnings = append(warnings, Warning{
				Stage:   "write",
				Subject: g.Key.String(),
				Err:     &WriteError{Group: g.Key.String(), Path: path, Err: err},
			})
			continue
		}
		written = append(written, path)
	}
	return written, warnings, nil
}

// writePart writes a single mesh node, renamed to the resource type and
// zeroed to the identity transform, as its own scene.
func (e *Exporter) writePart(path string, src *scene.Node, partName string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	part := *src
	part.Name = partName
	part.Parent = ""
	part.Transform = scene.Identity()
	return e.Writer.WriteScene(path, scene.NewSnapshot(&part), interchange.Options{Materials: e.Materials})
}

// Artifacts selects which outputs a run produces. The zero value produces
// everything.
type Artifacts struct {
	SkipScene   bool
	SkipEmpties bool
	SkipParts   bool
}

// Loader pulls a scene snapshot from the host bridge file.
type Loader interface {
	Load(path string) (*scene.Snapshot, error)
}

// Orchestrator resolves the project layout, snapshots the scene once and
// runs the pipeline over that snapshot.
type Orchestrator struct {
	Loader       Loader
	Writer       interchange.Writer
	Table        *shape.Table
	Materials    map[string]material.Material
	Ext          string
	ContainerDir string // "" = layout.DefaultContainerDir
	OutputDir    string // "" = layout.DefaultOutputDir
	Artifacts    Artifacts
	// Preview, when set, embeds marker meshes for every placeholder in
	// the empties artifact. A failed embed degrades to a warning and the
	// plain empties are written.
	Preview preview.Kernel
}
