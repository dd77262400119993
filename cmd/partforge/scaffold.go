package main

import (
	"github.com/spf13/cobra"

	"github.com/sapiens-modding/partforge/pkg/bridge"
	"github.com/sapiens-modding/partforge/pkg/buildable"
)

func newScaffoldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scaffold <scene.json>",
		Short: "Add the buildable placeholder scaffold and icon camera to a scene",
		Long: "Adds the bounding radius, attach point and static collider placeholders\n" +
			"plus the icon render camera to the scene dump, skipping any that already\n" +
			"exist. The editor add-on picks the additions up on reload.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScaffold(args[0])
		},
	}
}

func runScaffold(sceneFile string) error {
	doc, err := bridge.Load(sceneFile)
	if err != nil {
		return err
	}
	snap := doc.Snapshot()

	toAdd := append(buildable.Scaffold(), buildable.IconCamera())

	added := 0
	for _, n := range toAdd {
		if snap.Lookup(n.Name) != nil {
			logger.Printf("skip %s: already present", n.Name)
			continue
		}
		snap.Nodes = append(snap.Nodes, n)
		logger.Printf("add %s", n.Name)
		added++
	}
	if added == 0 {
		logger.Print("scaffold already complete, nothing to do")
		return nil
	}

	if err := bridge.FromSnapshot(snap, doc.Materials).Save(sceneFile); err != nil {
		return err
	}
	logger.Printf("added %d nodes to %s", added, sceneFile)
	return nil
}
