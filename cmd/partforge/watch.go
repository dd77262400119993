package main

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sapiens-modding/partforge/pkg/export"
)

// debounceDelay coalesces the burst of events an editor save produces
// into one export run.
const debounceDelay = 250 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var previewFlag bool
	cmd := &cobra.Command{
		Use:   "watch <scene.json>",
		Short: "Re-export whenever the scene file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), args[0], previewOverride(cmd, previewFlag))
		},
	}
	cmd.Flags().BoolVar(&previewFlag, "preview", false, "embed marker meshes for placeholders")
	return cmd
}

func runWatch(ctx context.Context, sceneFile string, previewFlag *bool) error {
	abs, err := filepath.Abs(sceneFile)
	if err != nil {
		return err
	}

	// Export once up front so the watcher starts from a known-good state.
	if err := watchedExport(ctx, abs, previewFlag); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save,
	// which would silently drop a file-level watch.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	logger.Printf("watching %s", abs)

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Print("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
				fire = debounce.C
			} else {
				debounce.Reset(debounceDelay)
			}

		case <-fire:
			debounce = nil
			fire = nil
			if err := watchedExport(ctx, abs, previewFlag); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				// Keep watching: a broken save should not end the session.
				logger.Printf("export failed: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watch error: %v", err)
		}
	}
}

func watchedExport(ctx context.Context, sceneFile string, previewFlag *bool) error {
	logger.Printf("exporting %s", sceneFile)
	return runExport(ctx, sceneFile, export.Artifacts{}, previewFlag)
}
