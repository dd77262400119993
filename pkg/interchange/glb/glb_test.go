package glb

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/sapiens-modding/partforge/pkg/interchange"
	"github.com/sapiens-modding/partforge/pkg/material"
	"github.com/sapiens-modding/partforge/pkg/scene"
)

func triangle(name, mat string) *scene.Node {
	return &scene.Node{
		Name:      name,
		Kind:      scene.KindMesh,
		Transform: scene.Identity(),
		Data: scene.MeshData{
			Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
			Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
			Indices:   []uint32{0, 1, 2},
			Material:  mat,
		},
	}
}

func TestWriteSceneProducesGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hut.glb")
	snap := scene.NewSnapshot(
		triangle("hut_frame_1", "bark"),
		&scene.Node{Name: "static_box_1", Kind: scene.KindPlaceholder, Transform: scene.Identity(),
			Data: scene.PlaceholderData{DisplayType: scene.DisplayCube, DisplaySize: 1}},
		&scene.Node{Name: "icon_camera2", Kind: scene.KindCamera, Transform: scene.Identity(),
			Data: scene.CameraData{FOVDegrees: 30}},
		&scene.Node{Name: "sun", Kind: scene.KindOther, Transform: scene.Identity()},
	)
	opts := interchange.Options{Materials: map[string]material.Material{
		"bark": {Identifier: "bark", Color: [3]float64{0.3, 0.2, 0.1}, Roughness: 0.9},
	}}

	if err := New().WriteScene(path, snap, opts); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[:4]) != "glTF" {
		t.Fatalf("output is not a GLB container (len=%d)", len(data))
	}
}

func TestWriteSceneDocumentStructure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "structured.glb")
	snap := scene.NewSnapshot(
		&scene.Node{Name: "rig_1", Kind: scene.KindPlaceholder, Transform: scene.Identity(),
			Data: scene.PlaceholderData{DisplaySize: 1}},
		func() *scene.Node {
			n := triangle("hut_frame_1", "bark")
			n.Parent = "rig_1"
			return n
		}(),
	)
	opts := interchange.Options{Materials: map[string]material.Material{
		"bark": {Identifier: "bark", Color: [3]float64{0.3, 0.2, 0.1}, Metal: 0.1, Roughness: 0.9},
	}}
	if err := New().WriteScene(path, snap, opts); err != nil {
		t.Fatal(err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("reading back the document: %v", err)
	}
	if len(doc.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(doc.Nodes))
	}
	if got := doc.Nodes[0].Children; len(got) != 1 || got[0] != 1 {
		t.Errorf("parent children = %v, want [1]", got)
	}
	if got := doc.Scenes[0].Nodes; len(got) != 1 || got[0] != 0 {
		t.Errorf("scene roots = %v, want [0]", got)
	}
	mesh := doc.Nodes[1]
	if mesh.Mesh == nil || *mesh.Mesh != 0 {
		t.Fatalf("mesh node index = %v, want 0", mesh.Mesh)
	}
	prim := doc.Meshes[*mesh.Mesh].Primitives[0]
	if _, ok := prim.Attributes[gltf.POSITION]; !ok {
		t.Error("primitive has no position attribute")
	}
	if prim.Indices == nil {
		t.Error("primitive has no index accessor")
	}
	if prim.Material == nil || doc.Materials[*prim.Material].Name != "bark" {
		t.Errorf("primitive material = %v, want bark", prim.Material)
	}
}

func TestWriteSceneParentLinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linked.glb")
	snap := scene.NewSnapshot(
		&scene.Node{Name: "root_1", Kind: scene.KindPlaceholder, Transform: scene.Identity(),
			Data: scene.PlaceholderData{DisplaySize: 1}},
		&scene.Node{Name: "child_1", Kind: scene.KindPlaceholder, Transform: scene.Identity(), Parent: "root_1",
			Data: scene.PlaceholderData{DisplaySize: 1}},
		&scene.Node{Name: "orphan_1", Kind: scene.KindPlaceholder, Transform: scene.Identity(), Parent: "gone",
			Data: scene.PlaceholderData{DisplaySize: 1}},
	)
	if err := New().WriteScene(path, snap, interchange.Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

func TestWriteSceneRejectsTruncatedGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.glb")
	snap := scene.NewSnapshot(&scene.Node{
		Name: "hut_frame_1", Kind: scene.KindMesh, Transform: scene.Identity(),
		Data: scene.MeshData{Positions: []float32{0, 0}, Indices: []uint32{0}},
	})
	if err := New().WriteScene(path, snap, interchange.Options{}); err == nil {
		t.Fatal("want error for truncated position array")
	}
}

func TestEulerToQuat(t *testing.T) {
	cases := []struct {
		name  string
		euler scene.Vec3
		want  [4]float64
	}{
		{"identity", scene.Vec3{}, [4]float64{0, 0, 0, 1}},
		{"x 90", scene.Vec3{X: 90}, [4]float64{math.Sqrt2 / 2, 0, 0, math.Sqrt2 / 2}},
		{"z 180", scene.Vec3{Z: 180}, [4]float64{0, 0, 1, 0}},
	}
	const eps = 1e-5
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := eulerToQuat(tc.euler)
			for i := range got {
				if math.Abs(got[i]-tc.want[i]) > eps {
					t.Errorf("component %d = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestQuatIsNormalized(t *testing.T) {
	q := eulerToQuat(scene.Vec3{X: 75.683, Y: -0.000075, Z: -50.567})
	n := q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3]
	if math.Abs(n-1) > 1e-5 {
		t.Errorf("norm^2 = %v, want 1", n)
	}
}
