package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/sapiens-modding/partforge/pkg/export"
)

const testScene = `{
  "nodes": [
    {
      "name": "hutWall_frame_1",
      "kind": "mesh",
      "transform": {
        "translation": {"x": 1, "y": 2, "z": 3},
        "rotation": {"x": 0, "y": 0, "z": 0},
        "scale": {"x": 1, "y": 1, "z": 1}
      },
      "mesh": {
        "positions": [0, 0, 0, 1, 0, 0, 0, 1, 0],
        "normals": [0, 0, 1, 0, 0, 1, 0, 0, 1],
        "indices": [0, 1, 2],
        "material": "bone"
      }
    },
    {
      "name": "icon_camera2",
      "kind": "camera",
      "transform": {
        "translation": {"x": 0, "y": -2, "z": 1},
        "rotation": {"x": 75, "y": 0, "z": 0},
        "scale": {"x": 1, "y": 1, "z": 1}
      },
      "camera": {"fov_degrees": 30}
    }
  ],
  "materials": [
    {"identifier": "bone", "color": [0.89, 0.855, 0.788], "metal": 0, "roughness": 0.6}
  ]
}`

func writeTestScene(t *testing.T) (projectDir, sceneFile string) {
	t.Helper()
	projectDir = t.TempDir()
	blends := filepath.Join(projectDir, "blends")
	if err := os.MkdirAll(blends, 0o755); err != nil {
		t.Fatal(err)
	}
	sceneFile = filepath.Join(blends, "hut.scene.json")
	if err := os.WriteFile(sceneFile, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}
	return projectDir, sceneFile
}

func TestRunExportEndToEnd(t *testing.T) {
	projectDir, sceneFile := writeTestScene(t)

	if err := runExport(context.Background(), sceneFile, export.Artifacts{}, nil); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}

	models := filepath.Join(projectDir, "models")
	for _, p := range []string{
		filepath.Join(models, "hut.glb"),
		filepath.Join(models, "hut_empties.glb"),
		filepath.Join(models, "hutWall", "frame.glb"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected artifact %s: %v", p, err)
		}
	}
}

func TestRunExportPreviewFlag(t *testing.T) {
	projectDir, sceneFile := writeTestScene(t)

	on := true
	if err := runExport(context.Background(), sceneFile, export.Artifacts{SkipScene: true, SkipParts: true}, &on); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}

	doc, err := gltf.Open(filepath.Join(projectDir, "models", "hut_empties.glb"))
	if err != nil {
		t.Fatalf("reading empties artifact: %v", err)
	}
	markers := 0
	for _, n := range doc.Nodes {
		if strings.HasSuffix(n.Name, "_preview") {
			markers++
			if n.Mesh == nil {
				t.Errorf("marker %s carries no mesh", n.Name)
			}
		}
	}
	if markers == 0 {
		t.Error("empties artifact has no preview markers")
	}
}

func TestRunExportOutsideContainerFails(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "hut.scene.json")
	if err := os.WriteFile(sceneFile, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := runExport(context.Background(), sceneFile, export.Artifacts{}, nil); err == nil {
		t.Fatal("expected layout error for scene outside the container directory")
	}
}

func TestProjectDirFor(t *testing.T) {
	got := projectDirFor(filepath.Join("home", "mods", "hut", "blends", "hut.scene.json"))
	abs, _ := filepath.Abs(filepath.Join("home", "mods", "hut"))
	if got != abs {
		t.Errorf("projectDirFor = %q, want %q", got, abs)
	}
}

func TestPreviewOverride(t *testing.T) {
	cmd := newExportCmd()
	if got := previewOverride(cmd, false); got != nil {
		t.Errorf("unset flag should return nil, got %v", *got)
	}
	if err := cmd.Flags().Set("preview", "true"); err != nil {
		t.Fatal(err)
	}
	got := previewOverride(cmd, true)
	if got == nil || !*got {
		t.Error("set flag should override with true")
	}
}
