// Package layout resolves where a run reads and writes. The scene file
// must live inside the project's container directory (by convention
// "blends"); artifacts go to the sibling output directory ("models"),
// created on demand. A scene file outside the convention is a hard error:
// nothing is written next to stray files.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default directory names for the project convention.
const (
	DefaultContainerDir = "blends"
	DefaultOutputDir    = "models"
)

// BridgeSuffix is the extension of editor bridge dumps. It is stripped as
// a unit when deriving the scene stem, so "hut.scene.json" exports as
// "hut.glb", not "hut.scene.glb".
const BridgeSuffix = ".scene.json"

// LayoutError reports a project layout that violates the convention.
// It is fatal: the orchestrator aborts before any write.
type LayoutError struct {
	Path   string
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout: %s: %s", e.Path, e.Reason)
}

// Layout is a resolved project file layout.
type Layout struct {
	SceneFile  string // absolute path of the scene bridge file
	ProjectDir string // directory containing the container dir
	OutputRoot string // sibling output directory, exists after Resolve
	Stem       string // scene file name without its extension
}

// Resolve validates the scene file's location against the convention and
// ensures the output root exists. containerDir and outputDir default to
// the standard names when empty.
func Resolve(sceneFile, containerDir, outputDir string) (*Layout, error) {
	if containerDir == "" {
		containerDir = DefaultContainerDir
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	abs, err := filepath.Abs(sceneFile)
	if err != nil {
		return nil, &LayoutError{Path: sceneFile, Reason: err.Error()}
	}
	if fi, err := os.Stat(abs); err != nil {
		return nil, &LayoutError{Path: abs, Reason: "scene file not found"}
	} else if fi.IsDir() {
		return nil, &LayoutError{Path: abs, Reason: "is a directory, not a scene file"}
	}

	parent := filepath.Dir(abs)
	if !strings.EqualFold(filepath.Base(parent), containerDir) {
		return nil, &LayoutError{Path: abs, Reason: fmt.Sprintf(
			"scene file must live in a %q directory, found %q", containerDir, filepath.Base(parent))}
	}

	project := filepath.Dir(parent)
	outputRoot := filepath.Join(project, outputDir)
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return nil, &LayoutError{Path: outputRoot, Reason: "cannot create output root: " + err.Error()}
	}

	return &Layout{
		SceneFile:  abs,
		ProjectDir: project,
		OutputRoot: outputRoot,
		Stem:       stem(filepath.Base(abs)),
	}, nil
}

func stem(name string) string {
	if strings.HasSuffix(name, BridgeSuffix) {
		return strings.TrimSuffix(name, BridgeSuffix)
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// PartPath returns the deterministic part file path for an export group:
// <outputRoot>/<base>/<resource><ext>. The resource type always names the
// file and the base name always names the directory, even when the two
// coincide.
func (l *Layout) PartPath(base, resource, ext string) string {
	return filepath.Join(l.OutputRoot, base, resource+ext)
}

// ScenePath returns the whole-scene artifact path.
func (l *Layout) ScenePath(ext string) string {
	return filepath.Join(l.OutputRoot, l.Stem+ext)
}

// EmptiesPath returns the placeholder-scene artifact path.
func (l *Layout) EmptiesPath(ext string) string {
	return filepath.Join(l.OutputRoot, l.Stem+"_empties"+ext)
}

// MaterialLibraryPath returns the shared material library location for
// the project.
func (l *Layout) MaterialLibraryPath() string {
	return filepath.Join(l.ProjectDir, "hammerstone", "shared", "blender_materials.json")
}
