package buildable

import (
	"testing"

	"github.com/sapiens-modding/partforge/pkg/scene"
)

func TestScaffold(t *testing.T) {
	nodes := Scaffold()
	if len(nodes) != 3 {
		t.Fatalf("scaffold has %d nodes, want 3", len(nodes))
	}
	want := map[string]scene.DisplayType{
		"bounding_radius":   scene.DisplaySphere,
		"placeAttach_box_1": scene.DisplayCube,
		"static_box":        scene.DisplayCube,
	}
	for _, n := range nodes {
		if n.Kind != scene.KindPlaceholder {
			t.Errorf("%s kind = %v, want placeholder", n.Name, n.Kind)
		}
		wantType, ok := want[n.Name]
		if !ok {
			t.Errorf("unexpected node %q", n.Name)
			continue
		}
		pd := n.Placeholder()
		if pd.DisplayType != wantType {
			t.Errorf("%s display type = %v, want %v", n.Name, pd.DisplayType, wantType)
		}
		if pd.DisplaySize != 1 {
			t.Errorf("%s display size = %v, want 1", n.Name, pd.DisplaySize)
		}
	}
}

func TestIconCamera(t *testing.T) {
	cam := IconCamera()
	if cam.Kind != scene.KindCamera {
		t.Fatalf("kind = %v", cam.Kind)
	}
	if cd := cam.Camera(); cd.FOVDegrees != 30 {
		t.Errorf("fov = %v, want 30", cd.FOVDegrees)
	}
	if cam.Transform.Scale != scene.One {
		t.Errorf("scale = %+v, want unit", cam.Transform.Scale)
	}
}
