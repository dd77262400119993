package export

import (
	"context"
	"fmt"

	"github.com/sapiens-modding/partforge/pkg/grouping"
	"github.com/sapiens-modding/partforge/pkg/interchange"
	"github.com/sapiens-modding/partforge/pkg/layout"
	"github.com/sapiens-modding/partforge/pkg/placeholder"
	"github.com/sapiens-modding/partforge/pkg/preview"
	"github.com/sapiens-modding/partforge/pkg/scene"
	"github.com/sapiens-modding/partforge/pkg/shape"
)

// Run executes one full export pass for the given scene bridge file.
//
// The layout is resolved first and is the only pre-write fatal check
// besides loading the snapshot itself. Everything after operates on the
// immutable snapshot: grouping, the whole-scene artifact, the placeholder
// ("empties") artifact, then one part per group. Per-group and per-node
// failures land in the summary.
func (o *Orchestrator) Run(ctx context.Context, sceneFile string) (*Summary, error) {
	if o.Table == nil {
		o.Table = shape.DefaultTable()
	}
	ext := o.Ext
	if ext == "" {
		ext = ".glb"
	}

	lay, err := layout.Resolve(sceneFile, o.ContainerDir, o.OutputDir)
	if err != nil {
		return nil, err
	}
	snap, err := o.Loader.Load(lay.SceneFile)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}

	groups := grouping.Build(snap)
	sum := &Summary{
		Parsed:  groups.Parsed,
		Skipped: groups.Skipped,
		Groups:  len(groups.Groups),
	}
	for _, w := range groups.Warnings {
		sum.Warnings = append(sum.Warnings, Warning{Stage: "parse", Subject: w.Node, Err: w.Err})
	}

	opts := interchange.Options{Materials: o.Materials}
	write := func(subject, path string, s *scene.Snapshot) {
		if err := o.Writer.WriteScene(path, s, opts); err != nil {
			sum.Warnings = append(sum.Warnings, Warning{
				Stage:   "write",
				Subject: subject,
				Err:     &WriteError{Group: subject, Path: path, Err: err},
			})
			return
		}
		sum.Artifacts = append(sum.Artifacts, path)
	}

	if !o.Artifacts.SkipScene {
		write("scene", lay.ScenePath(ext), snap)
	}
	if !o.Artifacts.SkipEmpties {
		if err := ctx.Err(); err != nil {
			sum.FilesWritten = len(sum.Artifacts)
			return sum, err
		}
		empties := placeholder.Synthesize(snap, groups, o.Table)
		// Markers go into the synthesized snapshot only: embedding before
		// grouping would feed unparseable *_preview names into the parser
		// and they would never survive synthesis anyway.
		if o.Preview != nil {
			decorated, err := preview.Embed(empties, o.Preview)
			if err != nil {
				sum.Warnings = append(sum.Warnings, Warning{Stage: "preview", Subject: "empties", Err: err})
			} else {
				empties = decorated
			}
		}
		write("empties", lay.EmptiesPath(ext), empties)
	}
	if !o.Artifacts.SkipParts {
		ex := &Exporter{Layout: lay, Writer: o.Writer, Ext: ext, Materials: o.Materials}
		written, warns, err := ex.ExportParts(ctx, groups)
		sum.Artifacts = append(sum.Artifacts, written...)
		sum.Warnings = append(sum.Warnings, warns...)
		if err != nil {
			sum.FilesWritten = len(sum.Artifacts)
			return sum, err
		}
	}

	sum.FilesWritten = len(sum.Artifacts)
	return sum, nil
}
