package scene

// Snapshot is a flat list of nodes in stable traversal order (depth-first
// by declaration order in the host scene). Two snapshots of an unchanged
// scene list the same nodes in the same order, which is what makes group
// membership and renumbering reproducible.
//
// A Snapshot is read-only once built. Operations that would change the
// host scene return Edits instead of mutating nodes in place.
type Snapshot struct {
	Nodes []*Node
}

// NewSnapshot builds a snapshot from nodes, preserving their order.
func NewSnapshot(nodes ...*Node) *Snapshot {
	return &Snapshot{Nodes: nodes}
}

// Meshes returns the mesh nodes in traversal order.
func (s *Snapshot) Meshes() []*Node {
	var out []*Node
	for _, n := range s.Nodes {
		if n.Kind == KindMesh {
			out = append(out, n)
		}
	}
	return out
}

// Placeholders returns the placeholder nodes in traversal order.
func (s *Snapshot) Placeholders() []*Node {
	var out []*Node
	for _, n := range s.Nodes {
		if n.Kind == KindPlaceholder {
			out = append(out, n)
		}
	}
	return out
}

// Lookup returns the first node with the given name, or nil.
func (s *Snapshot) Lookup(name string) *Node {
	for _, n := range s.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Len returns the number of nodes.
func (s *Snapshot) Len() int { return len(s.Nodes) }

// Edit is a single pending change to a host scene node. The pipeline never
// writes to a snapshot; it emits edits for the invoking layer (the editor
// bridge) to apply.
type Edit struct {
	Node        string       `json:"node"` // display name of the target node
	DisplaySize *float64     `json:"display_size,omitempty"`
	DisplayType *DisplayType `json:"display_type,omitempty"`
}

// Apply returns a copy of the snapshot with the edits applied. Nodes are
// copied on write; untouched nodes are shared with the input.
func (s *Snapshot) Apply(edits []Edit) *Snapshot {
	byName := make(map[string][]Edit, len(edits))
	for _, e := range edits {
		byName[e.Node] = append(byName[e.Node], e)
	}
	out := &Snapshot{Nodes: make([]*Node, len(s.Nodes))}
	for i, n := range s.Nodes {
		es, ok := byName[n.Name]
		if !ok {
			out.Nodes[i] = n
			continue
		}
		cp := *n
		if pd := n.Placeholder(); pd != nil {
			d := *pd
			for _, e := range es {
				if e.DisplaySize != nil {
					d.DisplaySize = *e.DisplaySize
				}
				if e.DisplayType != nil {
					d.DisplayType = *e.DisplayType
				}
			}
			cp.Data = d
		}
		out.Nodes[i] = &cp
	}
	return out
}
