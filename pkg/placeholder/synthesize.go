package placeholder

import (
	"github.com/sapiens-modding/partforge/pkg/grouping"
	"github.com/sapiens-modding/partforge/pkg/scene"
	"github.com/sapiens-modding/partforge/pkg/shape"
)

// Descriptor is the per-node synthesis plan: the placeholder a mesh node
// becomes. It exists only for the duration of one Synthesize call.
type Descriptor struct {
	Name        string
	DisplayType scene.DisplayType
	DisplaySize float64
	Transform   scene.Transform
	Parent      string
	Hidden      bool
}

// Describe computes the placeholder descriptor for one grouped mesh node.
func Describe(m grouping.Member, table *shape.Table) Descriptor {
	tr, size := EncodeScale(m.Node.Transform)
	return Descriptor{
		Name:        m.Token.PlaceholderName(m.Assigned),
		DisplayType: table.Infer(m.Token.Resource),
		DisplaySize: size,
		Transform:   tr,
		Parent:      m.Node.Parent,
		Hidden:      m.Node.Hidden,
	}
}

// Node materializes the descriptor as a scene node.
func (d Descriptor) Node() *scene.Node {
	return &scene.Node{
		Name:      d.Name,
		Kind:      scene.KindPlaceholder,
		Transform: d.Transform,
		Parent:    d.Parent,
		Hidden:    d.Hidden,
		Data: scene.PlaceholderData{
			DisplayType: d.DisplayType,
			DisplaySize: d.DisplaySize,
		},
	}
}

// Synthesize produces a fresh snapshot in which every grouped mesh node is
// replaced by a placeholder named resourceType_assignedIndex. noExport
// members are included; suppression affects part export only. Mesh nodes
// whose names failed to parse have no assignment and are omitted. All
// non-mesh nodes pass through as copies, so the input snapshot is never
// shared with or mutated through the output.
func Synthesize(snap *scene.Snapshot, groups *grouping.Result, table *shape.Table) *scene.Snapshot {
	out := &scene.Snapshot{Nodes: make([]*scene.Node, 0, snap.Len())}
	for _, n := range snap.Nodes {
		if n.Kind != scene.KindMesh {
			cp := *n
			out.Nodes = append(out.Nodes, &cp)
			continue
		}
		m, ok := groups.Assignment(n)
		if !ok {
			continue
		}
		out.Nodes = append(out.Nodes, Describe(m, table).Node())
	}
	return out
}
