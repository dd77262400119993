// Package bridge reads and writes the editor bridge file: a JSON dump of
// the scene graph (and the scene's material definitions) written next to
// the source file by the editor-side add-on. The bridge file is the
// pipeline's only view of the host scene; loading it is the "snapshot"
// step, so everything downstream works on immutable data.
package bridge

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sapiens-modding/partforge/pkg/material"
	"github.com/sapiens-modding/partforge/pkg/scene"
)

// Document is the on-disk bridge format.
type Document struct {
	Nodes     []NodeRecord        `json:"nodes"`
	Materials []material.Material `json:"materials,omitempty"`
}

// NodeRecord is one scene node in the explicit wire form: the kind tag
// plus at most one kind-specific payload field.
type NodeRecord struct {
	Name        string             `json:"name"`
	Kind        string             `json:"kind"`
	Transform   scene.Transform    `json:"transform"`
	Parent      string             `json:"parent,omitempty"`
	Hidden      bool               `json:"hidden,omitempty"`
	Mesh        *scene.MeshData    `json:"mesh,omitempty"`
	Placeholder *placeholderRecord `json:"placeholder,omitempty"`
	Camera      *scene.CameraData  `json:"camera,omitempty"`
}

type placeholderRecord struct {
	DisplayType string  `json:"display_type"`
	DisplaySize float64 `json:"display_size"`
}

var kindNames = map[string]scene.Kind{
	"mesh":        scene.KindMesh,
	"placeholder": scene.KindPlaceholder,
	"empty":       scene.KindPlaceholder, // editor-side name
	"camera":      scene.KindCamera,
	"other":       scene.KindOther,
}

var displayNames = map[string]scene.DisplayType{
	"plain_axes": scene.DisplayAxes,
	"cube":       scene.DisplayCube,
	"sphere":     scene.DisplaySphere,
}

// Load reads and validates a bridge file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bridge: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("bridge: %s: %w", path, err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("bridge: %s: %w", path, err)
	}
	return &doc, nil
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	return nil
}

func (d *Document) validate() error {
	for i, r := range d.Nodes {
		kind, ok := kindNames[r.Kind]
		if !ok {
			return fmt.Errorf("node %d (%s): unknown kind %q", i, r.Name, r.Kind)
		}
		switch kind {
		case scene.KindMesh:
			if r.Mesh == nil {
				return fmt.Errorf("node %d (%s): mesh node without geometry", i, r.Name)
			}
			if len(r.Mesh.Positions)%3 != 0 {
				return fmt.Errorf("node %d (%s): position array length %d is not a multiple of 3", i, r.Name, len(r.Mesh.Positions))
			}
			if len(r.Mesh.Indices)%3 != 0 {
				return fmt.Errorf("node %d (%s): index array length %d is not a multiple of 3", i, r.Name, len(r.Mesh.Indices))
			}
		case scene.KindPlaceholder:
			if r.Placeholder != nil {
				if _, ok := displayNames[r.Placeholder.DisplayType]; !ok {
					return fmt.Errorf("node %d (%s): unknown display type %q", i, r.Name, r.Placeholder.DisplayType)
				}
			}
		}
	}
	return nil
}

// Snapshot converts the document to a scene snapshot, preserving node
// order (the editor dumps in traversal order).
func (d *Document) Snapshot() *scene.Snapshot {
	snap := &scene.Snapshot{Nodes: make([]*scene.Node, 0, len(d.Nodes))}
	for _, r := range d.Nodes {
		n := &scene.Node{
			Name:      r.Name,
			Kind:      kindNames[r.Kind],
			Transform: r.Transform,
			Parent:    r.Parent,
			Hidden:    r.Hidden,
		}
		switch n.Kind {
		case scene.KindMesh:
			n.Data = *r.Mesh
		case scene.KindPlaceholder:
			pd := scene.PlaceholderData{DisplayType: scene.DisplayAxes, DisplaySize: 1}
			if r.Placeholder != nil {
				pd.DisplayType = displayNames[r.Placeholder.DisplayType]
				pd.DisplaySize = r.Placeholder.DisplaySize
			}
			n.Data = pd
		case scene.KindCamera:
			if r.Camera != nil {
				n.Data = *r.Camera
			} else {
				n.Data = scene.CameraData{}
			}
		}
		snap.Nodes = append(snap.Nodes, n)
	}
	return snap
}

// MaterialsByName returns the document's material definitions as a lookup
// map for the interchange writer.
func (d *Document) MaterialsByName() map[string]material.Material {
	out := make(map[string]material.Material, len(d.Materials))
	for _, m := range d.Materials {
		out[m.Identifier] = m
	}
	return out
}

// FromSnapshot converts a snapshot back into document form, for commands
// that hand a modified scene back to the editor.
func FromSnapshot(snap *scene.Snapshot, mats []material.Material) *Document {
	doc := &Document{Materials: mats}
	for _, n := range snap.Nodes {
		r := NodeRecord{
			Name:      n.Name,
			Kind:      n.Kind.String(),
			Transform: n.Transform,
			Parent:    n.Parent,
			Hidden:    n.Hidden,
		}
		switch n.Kind {
		case scene.KindMesh:
			if md := n.Mesh(); md != nil {
				r.Mesh = md
			}
		case scene.KindPlaceholder:
			if pd := n.Placeholder(); pd != nil {
				r.Placeholder = &placeholderRecord{
					DisplayType: pd.DisplayType.String(),
					DisplaySize: pd.DisplaySize,
				}
			}
		case scene.KindCamera:
			if cd := n.Camera(); cd != nil {
				r.Camera = cd
			}
		}
		doc.Nodes = append(doc.Nodes, r)
	}
	return doc
}

// FileLoader loads snapshots straight from bridge files. It satisfies the
// export orchestrator's Loader contract.
type FileLoader struct{}

// Load reads the bridge file at path and returns its snapshot.
func (FileLoader) Load(path string) (*scene.Snapshot, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Snapshot(), nil
}
