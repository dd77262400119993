package material

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenCreatesMissingLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hammerstone", "shared", "blender_materials.json")
	l, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 0 {
		t.Errorf("fresh library has %d entries", l.Len())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("library file not created: %v", err)
	}
	var raw map[string]map[string][]Material
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["hammerstone:global_definitions"]; !ok {
		t.Errorf("missing framework definition key, got %s", data)
	}
}

func TestPutRoundsAndSaveLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blender_materials.json")
	l, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	l.Put(Material{Identifier: "bone", Color: [3]float64{0.123456, 1, 0}, Metal: 0.0004, Roughness: 0.5})
	l.Put(Material{Identifier: "bark", Color: [3]float64{0.2, 0.1, 0}, Roughness: 0.9})
	if err := l.Save(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	bone, ok := reopened.Get("bone")
	if !ok {
		t.Fatal("bone missing after reload")
	}
	if bone.Color[0] != 0.123 {
		t.Errorf("color not rounded to 3 decimals: %v", bone.Color[0])
	}
	if bone.Metal != 0 {
		t.Errorf("metal not rounded: %v", bone.Metal)
	}

	mats := reopened.Materials()
	if len(mats) != 2 || mats[0].Identifier != "bone" || mats[1].Identifier != "bark" {
		t.Errorf("order not preserved: %+v", mats)
	}
}

func TestPutReplacesExisting(t *testing.T) {
	l := &Library{index: make(map[string]Material)}
	l.Put(Material{Identifier: "bone", Roughness: 0.5})
	l.Put(Material{Identifier: "bone", Roughness: 0.8})
	if l.Len() != 1 {
		t.Fatalf("len = %d, want 1", l.Len())
	}
	if m, _ := l.Get("bone"); m.Roughness != 0.8 {
		t.Errorf("roughness = %v, want 0.8", m.Roughness)
	}
}

func TestDeduplicate(t *testing.T) {
	mats := []Material{
		{Identifier: "bone", Roughness: 0.5},
		{Identifier: "bone.001", Roughness: 0.7},
		{Identifier: "bark.001", Roughness: 0.9},
		{Identifier: "bark.002", Roughness: 0.4},
		{Identifier: "leaf"},
	}
	out, remaps := Deduplicate(mats)

	ids := make([]string, len(out))
	for i, m := range out {
		ids[i] = m.Identifier
	}
	want := []string{"bone", "bark", "leaf"}
	if len(ids) != len(want) {
		t.Fatalf("out = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("out = %v, want %v", ids, want)
		}
	}

	if len(remaps) != 3 {
		t.Fatalf("remaps = %+v, want 3", remaps)
	}
	if remaps[0] != (Remap{From: "bone.001", To: "bone", Outcome: RemapReplaced}) {
		t.Errorf("remap 0 = %+v", remaps[0])
	}
	if remaps[1] != (Remap{From: "bark.001", To: "bark", Outcome: RemapRenamed}) {
		t.Errorf("remap 1 = %+v", remaps[1])
	}
	if remaps[2] != (Remap{From: "bark.002", To: "bark", Outcome: RemapReplaced}) {
		t.Errorf("remap 2 = %+v", remaps[2])
	}

	// The renamed duplicate keeps its properties under the new name.
	if out[1].Roughness != 0.9 {
		t.Errorf("renamed bark roughness = %v, want 0.9", out[1].Roughness)
	}
}
