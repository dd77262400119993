package main

import (
	"github.com/spf13/cobra"

	"github.com/sapiens-modding/partforge/pkg/bridge"
	"github.com/sapiens-modding/partforge/pkg/placeholder"
	"github.com/sapiens-modding/partforge/pkg/project"
	"github.com/sapiens-modding/partforge/pkg/rules"
	"github.com/sapiens-modding/partforge/pkg/scene"
	"github.com/sapiens-modding/partforge/pkg/shape"
)

func newNormalizeCmd() *cobra.Command {
	var sizesOnly, typesOnly bool
	cmd := &cobra.Command{
		Use:   "normalize <scene.json>",
		Short: "Reset placeholder display sizes and re-infer display types",
		Long: "Pins every placeholder's display size back to 1 (sizing belongs in the\n" +
			"scale channel) and re-infers display types from node names, then writes\n" +
			"the scene dump back for the editor add-on to pick up.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(args[0], !typesOnly, !sizesOnly)
		},
	}
	cmd.Flags().BoolVar(&sizesOnly, "sizes-only", false, "only reset display sizes")
	cmd.Flags().BoolVar(&typesOnly, "types-only", false, "only re-infer display types")
	cmd.MarkFlagsMutuallyExclusive("sizes-only", "types-only")
	return cmd
}

func runNormalize(sceneFile string, sizes, types bool) error {
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
	snap := doc.Snapshot()

	var edits []scene.Edit
	if sizes {
		edits = append(edits, placeholder.NormalizeDisplaySize(snap)...)
	}
	if types {
		edits = append(edits, placeholder.ApplyShapeTypes(snap, table)...)
	}
	if len(edits) == 0 {
		logger.Print("placeholders already normalized, nothing to do")
		return nil
	}
	for _, e := range edits {
		switch {
		case e.DisplaySize != nil:
			logger.Printf("%s: display size -> %g", e.Node, *e.DisplaySize)
		case e.DisplayType != nil:
			logger.Printf("%s: display type -> %s", e.Node, *e.DisplayType)
		}
	}

	if err := bridge.FromSnapshot(snap.Apply(edits), doc.Materials).Save(sceneFile); err != nil {
		return err
	}
	logger.Printf("applied %d edits to %s", len(edits), sceneFile)
	return nil
}
