package main

import (
	"github.com/spf13/cobra"

	"github.com/sapiens-modding/partforge/pkg/bridge"
	"github.com/sapiens-modding/partforge/pkg/layout"
	"github.com/sapiens-modding/partforge/pkg/material"
	"github.com/sapiens-modding/partforge/pkg/project"
)

func newMaterialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Manage the shared material library",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "export <scene.json>",
			Short: "Copy the scene's material definitions into the shared library",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMaterialsExport(args[0])
			},
		},
		&cobra.Command{
			Use:   "import <scene.json>",
			Short: "Refresh the scene's material definitions from the shared library",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMaterialsImport(args[0])
			},
		},
		&cobra.Command{
			Use:   "dedupe <scene.json>",
			Short: "Fold duplicate-suffixed materials onto their base names",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMaterialsDedupe(args[0])
			},
		},
	)
	return cmd
}

// openLibrary resolves the project layout for the scene file and opens
// its shared material library.
func openLibrary(sceneFile string) (*material.Library, error) {
	cfg, err := project.Load(projectDirFor(sceneFile))
	if err != nil {
		return nil, err
	}
	lay, err := layout.Resolve(sceneFile, cfg.ContainerDir, cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	return material.Open(lay.MaterialLibraryPath())
}

func runMaterialsExport(sceneFile string) error {
	doc, err := bridge.Load(sceneFile)
	if err != nil {
		return err
	}
	lib, err := openLibrary(sceneFile)
	if err != nil {
		return err
	}

	for _, m := range doc.Materials {
		lib.Put(m)
		logger.Printf("export %s", m.Identifier)
	}
	if err := lib.Save(); err != nil {
		return err
	}
	logger.Printf("library now holds %d materials (%s)", lib.Len(), lib.Path())
	return nil
}

func runMaterialsImport(sceneFile string) error {
	doc, err := bridge.Load(sceneFile)
	if err != nil {
		return err
	}
	lib, err := openLibrary(sceneFile)
	if err != nil {
		return err
	}

	updated := 0
	for i, m := range doc.Materials {
		shared, ok := lib.Get(m.Identifier)
		if !ok {
			continue
		}
		if shared != m {
			doc.Materials[i] = shared
			logger.Printf("import %s", m.Identifier)
			updated++
		}
	}
	if updated == 0 {
		logger.Print("scene materials already match the library")
		return nil
	}
	if err := doc.Save(sceneFile); err != nil {
		return err
	}
	logger.Printf("updated %d materials in %s", updated, sceneFile)
	return nil
}

func runMaterialsDedupe(sceneFile string) error {
	doc, err := bridge.Load(sceneFile)
	if err != nil {
		return err
	}

	deduped, remaps := material.Deduplicate(doc.Materials)
	if len(remaps) == 0 {
		logger.Print("no duplicate-suffixed materials found")
		return nil
	}
	doc.Materials = deduped

	// Repoint mesh material references at the surviving names.
	rename := make(map[string]string, len(remaps))
	for _, r := range remaps {
		rename[r.From] = r.To
		logger.Printf("%s -> %s (%s)", r.From, r.To, r.Outcome)
	}
	for _, n := range doc.Nodes {
		if n.Mesh == nil {
			continue
		}
		if to, ok := rename[n.Mesh.Material]; ok {
			n.Mesh.Material = to
		}
	}

	if err := doc.Save(sceneFile); err != nil {
		return err
	}
	logger.Printf("folded %d duplicates in %s", len(remaps), sceneFile)
	return nil
}
