// Package glb writes scene snapshots as binary glTF using
// github.com/qmuntal/gltf. It is the concrete backend behind the
// interchange.Writer interface; nothing outside this package touches the
// glTF document model.
package glb

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/sapiens-modding/partforge/pkg/interchange"
	"github.com/sapiens-modding/partforge/pkg/material"
	"github.com/sapiens-modding/partforge/pkg/scene"
)

// Ext is the artifact extension this writer produces.
const Ext = ".glb"

// generator is stamped into the asset header of every file.
const generator = "partforge"

// Writer implements interchange.Writer. A Writer reuses no state between
// calls but is not safe for concurrent use; the export orchestrator
// serializes writes.
type Writer struct{}

var _ interchange.Writer = (*Writer)(nil)

// New returns a GLB writer.
func New() *Writer { return &Writer{} }

// WriteScene encodes the snapshot to a .glb file at path. Mesh,
// placeholder and camera nodes are written; other-kind nodes are skipped.
// Parent links between written nodes become glTF child relationships;
// nodes whose parent is absent become scene roots.
func (w *Writer) WriteScene(path string, snap *scene.Snapshot, opts interchange.Options) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator

	matIndex := make(map[string]int)
	nodeIndex := make(map[string]int, snap.Len())
	var written []*scene.Node

	for _, n := range snap.Nodes {
		if n.Kind == scene.KindOther {
			continue
		}
		gn := &gltf.Node{
			Name:        n.Name,
			Translation: [3]float64{n.Transform.Translation.X, n.Transform.Translation.Y, n.Transform.Translation.Z},
			Rotation:    eulerToQuat(n.Transform.Rotation),
			Scale:       [3]float64{n.Transform.Scale.X, n.Transform.Scale.Y, n.Transform.Scale.Z},
		}
		switch n.Kind {
		case scene.KindMesh:
			md := n.Mesh()
			if md == nil {
				return fmt.Errorf("glb: mesh node %q has no geometry payload", n.Name)
			}
			mi, err := writeMesh(doc, n.Name, md, resolveMaterial(doc, matIndex, md.Material, opts))
			if err != nil {
				return err
			}
			gn.Mesh = gltf.Index(mi)
		case scene.KindCamera:
			cd := n.Camera()
			if cd == nil {
				return fmt.Errorf("glb: camera node %q has no camera payload", n.Name)
			}
			gn.Camera = gltf.Index(writeCamera(doc, n.Name, cd))
		case scene.KindPlaceholder:
			// A placeholder is a bare node. Its display type and size do
			// not survive the format; the transform codec has already put
			// everything that matters into the scale channel.
		}
		idx := len(doc.Nodes)
		doc.Nodes = append(doc.Nodes, gn)
		nodeIndex[n.Name] = idx
		written = append(written, n)
	}

	// Wire parents; unresolved parents make a node a scene root.
	var roots []int
	for _, n := range written {
		idx := nodeIndex[n.Name]
		if n.Parent != "" {
			if pi, ok := nodeIndex[n.Parent]; ok && pi != idx {
				doc.Nodes[pi].Children = append(doc.Nodes[pi].Children, idx)
				continue
			}
		}
		roots = append(roots, idx)
	}
	doc.Scenes[0].Nodes = roots

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("glb: write %s: %w", path, err)
	}
	return nil
}

// writeMesh appends the geometry as a single-primitive mesh and returns
// its index.
func writeMesh(doc *gltf.Document, name string, md *scene.MeshData, matIdx *int) (int, error) {
	if len(md.Positions)%3 != 0 {
		return 0, fmt.Errorf("glb: mesh %q has a truncated position array (%d floats)", name, len(md.Positions))
	}
	attrs := gltf.PrimitiveAttributes{
		gltf.POSITION: modeler.WritePosition(doc, group3(md.Positions)),
	}
	if len(md.Normals) == len(md.Positions) && len(md.Normals) > 0 {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, group3(md.Normals))
	}
	prim := &gltf.Primitive{
		Attributes: attrs,
		Indices:    gltf.Index(modeler.WriteIndices(doc, md.Indices)),
		Material:   matIdx,
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	return len(doc.Meshes) - 1, nil
}

// resolveMaterial returns the document material index for a named
// material, creating it on first use. An empty name means no material.
// Names missing from the library get a neutral placeholder entry so the
// engine still sees a material slot to rebind.
func resolveMaterial(doc *gltf.Document, index map[string]int, name string, opts interchange.Options) *int {
	if name == "" {
		return nil
	}
	if idx, ok := index[name]; ok {
		return gltf.Index(idx)
	}
	m, ok := opts.Materials[name]
	if !ok {
		m = material.Material{Identifier: name, Color: [3]float64{1, 1, 1}, Roughness: 0.5}
	}
	doc.Materials = append(doc.Materials, &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{m.Color[0], m.Color[1], m.Color[2], 1},
			MetallicFactor:  gltf.Float(m.Metal),
			RoughnessFactor: gltf.Float(m.Roughness),
		},
	})
	idx := len(doc.Materials) - 1
	index[name] = idx
	return gltf.Index(idx)
}

// writeCamera appends a perspective camera and returns its index.
func writeCamera(doc *gltf.Document, name string, cd *scene.CameraData) int {
	doc.Cameras = append(doc.Cameras, &gltf.Camera{
		Name: name,
		Perspective: &gltf.Perspective{
			Yfov:  degToRad(cd.FOVDegrees),
			Znear: 0.1,
		},
	})
	return len(doc.Cameras) - 1
}

// group3 reshapes a flat float array into vec3 triples.
func group3(flat []float32) [][3]float32 {
	out := make([][3]float32, len(flat)/3)
	for i := range out {
		out[i] = [3]float32{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return out
}
