// Package preview generates debug geometry for placeholder markers. The
// empties artifact carries bare nodes; viewers without the naming
// convention see nothing at all, so the exporter can optionally embed a
// small mesh per placeholder showing its shape. The geometry backend sits
// behind the Kernel interface so it can be swapped or stubbed.
package preview

import (
	"fmt"

	"github.com/sapiens-modding/partforge/pkg/scene"
)

// PreviewMaterial is the material name stamped on embedded preview
// meshes, so the engine (and humans) can tell them from real parts.
const PreviewMaterial = "partforge_preview"

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry backend for marker meshes.
type Kernel interface {
	// Primitives, centered at the origin.
	Box(x, y, z float64) Solid
	Sphere(radius float64) Solid

	// Composition.
	Union(a, b Solid) Solid
	Translate(s Solid, x, y, z float64) Solid

	// Mesh output.
	ToMesh(s Solid) (*scene.MeshData, error)
}

// axisThickness is the bar thickness of the axes tripod marker.
const axisThickness = 0.04

// Mesh builds the marker mesh for a display type at unit display size,
// centered at the origin. The placeholder's own transform places and
// scales it.
func Mesh(k Kernel, dt scene.DisplayType) (*scene.MeshData, error) {
	var s Solid
	switch dt {
	case scene.DisplayCube:
		s = k.Box(1, 1, 1)
	case scene.DisplaySphere:
		s = k.Sphere(0.5)
	case scene.DisplayAxes:
		// Tripod: one bar per axis, extending in the positive direction so
		// the marker shows orientation, not just position.
		s = k.Union(
			k.Translate(k.Box(1, axisThickness, axisThickness), 0.5, 0, 0),
			k.Union(
				k.Translate(k.Box(axisThickness, 1, axisThickness), 0, 0.5, 0),
				k.Translate(k.Box(axisThickness, axisThickness, 1), 0, 0, 0.5),
			),
		)
	default:
		return nil, fmt.Errorf("preview: no marker geometry for display type %v", dt)
	}
	m, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("preview: mesh %v: %w", dt, err)
	}
	m.Material = PreviewMaterial
	return m, nil
}

// Embed returns a copy of the snapshot with one preview mesh node added
// as a child of every placeholder. Marker geometry is built once per
// display type and shared. The input snapshot is not modified.
func Embed(snap *scene.Snapshot, k Kernel) (*scene.Snapshot, error) {
	cache := make(map[scene.DisplayType]*scene.MeshData)
	out := &scene.Snapshot{Nodes: make([]*scene.Node, 0, snap.Len())}
	for _, n := range snap.Nodes {
		out.Nodes = append(out.Nodes, n)
		pd := n.Placeholder()
		if pd == nil {
			continue
		}
		md, ok := cache[pd.DisplayType]
		if !ok {
			var err error
			md, err = Mesh(k, pd.DisplayType)
			if err != nil {
				return nil, err
			}
			cache[pd.DisplayType] = md
		}
		out.Nodes = append(out.Nodes, &scene.Node{
			Name:      n.Name + "_preview",
			Kind:      scene.KindMesh,
			Transform: scene.Identity(),
			Parent:    n.Name,
			Data:      *md,
		})
	}
	return out, nil
}
