package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sapiens-modding/partforge/pkg/bridge"
	"github.com/sapiens-modding/partforge/pkg/export"
	"github.com/sapiens-modding/partforge/pkg/interchange/glb"
	"github.com/sapiens-modding/partforge/pkg/preview/sdfxkernel"
	"github.com/sapiens-modding/partforge/pkg/project"
	"github.com/sapiens-modding/partforge/pkg/rules"
	"github.com/sapiens-modding/partforge/pkg/scene"
	"github.com/sapiens-modding/partforge/pkg/shape"
)

func newExportCmd() *cobra.Command {
	var previewFlag bool
	cmd := &cobra.Command{
		Use:   "export <scene.json>",
		Short: "Export the scene, empties and all part files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args[0], export.Artifacts{}, previewOverride(cmd, previewFlag))
		},
	}
	cmd.Flags().BoolVar(&previewFlag, "preview", false, "embed marker meshes for placeholders")
	return cmd
}

func newPartsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parts <scene.json>",
		Short: "Export only the per-part files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args[0],
				export.Artifacts{SkipScene: true, SkipEmpties: true}, nil)
		},
	}
}

func newEmptiesCmd() *cobra.Command {
	var previewFlag bool
	cmd := &cobra.Command{
		Use:   "empties <scene.json>",
		Short: "Export only the placeholder scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), args[0],
				export.Artifacts{SkipScene: true, SkipParts: true}, previewOverride(cmd, previewFlag))
		},
	}
	cmd.Flags().BoolVar(&previewFlag, "preview", false, "embed marker meshes for placeholders")
	return cmd
}

// previewOverride returns the flag value only when the user set it, so
// the project config keeps the last word otherwise.
func previewOverride(cmd *cobra.Command, value bool) *bool {
	if cmd.Flags().Changed("preview") {
		return &value
	}
	return nil
}

// projectDirFor guesses the project root: the parent of the directory
// holding the scene file. Layout resolution validates it properly later.
func projectDirFor(sceneFile string) string {
	abs, err := filepath.Abs(sceneFile)
	if err != nil {
		return "."
	}
	return filepath.Dir(filepath.Dir(abs))
}

// cachedLoader hands a pre-loaded snapshot to the orchestrator, so the
// bridge file is read once even though materials are needed up front.
type cachedLoader struct {
	snap *scene.Snapshot
}

func (l *cachedLoader) Load(string) (*scene.Snapshot, error) {
	return l.snap, nil
}

func runExport(ctx context.Context, sceneFile string, arts export.Artifacts, previewFlag *bool) error {
	cfg, err := project.Load(projectDirFor(sceneFile))
	if err != nil {
		return err
	}
	table, err := rules.Load(cfg.RulesFile, shape.DefaultTable())
	if err != nil {
		return err
	}

	doc, err := bridge.Load(sceneFile)
	if err != nil {
		return err
	}

	orch := &export.Orchestrator{
		Loader:       &cachedLoader{snap: doc.Snapshot()},
		Writer:       glb.New(),
		Table:        table,
		Materials:    doc.MaterialsByName(),
		Ext:          cfg.Extension,
		ContainerDir: cfg.ContainerDir,
		OutputDir:    cfg.OutputDir,
		Artifacts:    arts,
	}
	embed := cfg.Preview
	if previewFlag != nil {
		embed = *previewFlag
	}
	if embed {
		orch.Preview = sdfxkernel.New()
	}

	sum, err := orch.Run(ctx, sceneFile)
	if sum != nil {
		printSummary(sum)
	}
	return err
}

func printSummary(sum *export.Summary) {
	for _, w := range sum.Warnings {
		logger.Printf("warning: %s", w)
	}
	for _, path := range sum.Artifacts {
		logger.Printf("wrote %s", path)
	}
	logger.Printf("done: %d files, %d groups (%d meshes grouped, %d skipped, %d warnings)",
		sum.FilesWritten, sum.Groups, sum.Parsed, sum.Skipped, len(sum.Warnings))
}
