// Command partforge exports game-ready artifacts from editor scene dumps.
// Scenes follow the naming convention baseName_resourceType_index; each
// run produces a whole-scene file, a placeholder ("empties") file, and
// one part file per export group.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logger = log.New(os.Stderr, "[PARTFORGE] ", log.LstdFlags)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "partforge",
		Short:         "Export game parts from editor scene dumps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newExportCmd(),
		newPartsCmd(),
		newEmptiesCmd(),
		newScaffoldCmd(),
		newNormalizeCmd(),
		newMaterialsCmd(),
		newWatchCmd(),
	)
	return root
}
