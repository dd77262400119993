// Package grouping partitions a scene's mesh nodes into export groups by
// (base name, resource type). Each group keeps its members in traversal
// order, designates the first member as the canonical representative, and
// renumbers members 1..N. The renumbered index is what placeholder and
// part output use; the authored index is informational only.
package grouping

import (
	"github.com/sapiens-modding/partforge/pkg/naming"
	"github.com/sapiens-modding/partforge/pkg/scene"
)

// Key identifies an export group.
type Key struct {
	Base     string
	Resource string
}

func (k Key) String() string { return k.Base + "/" + k.Resource }

// Member is one mesh node inside a group.
type Member struct {
	Node     *scene.Node
	Token    naming.Token
	Assigned int // renumbered 1-based index within the group
}

// Group is the unit of deduplication: all members share a key and are
// reduced to one exported part plus per-member placeholders.
type Group struct {
	Key     Key
	Members []Member // traversal order; Members[0] is canonical
}

// Representative returns the canonical member, the one whose geometry is
// physically exported.
func (g *Group) Representative() Member { return g.Members[0] }

// Suppressed reports whether the group produces no part file. Suppression
// follows the representative's noexport flag; other members' flags do not
// matter because only the representative is written.
func (g *Group) Suppressed() bool { return g.Members[0].Token.NoExport }

// Warning records a node excluded from grouping.
type Warning struct {
	Node string // display name of the excluded node
	Err  error  // the underlying *naming.ParseError
}

// Result is the outcome of one grouping pass. It is recomputed fresh from
// the snapshot on every run; nothing is cached across invocations.
type Result struct {
	Groups   []*Group // first-seen order
	Parsed   int      // mesh nodes grouped
	Skipped  int      // mesh nodes excluded by parse failure
	Warnings []Warning

	byKey  map[Key]*Group
	byNode map[*scene.Node]Member
}

// Build groups the snapshot's mesh nodes. Parse failures exclude a node
// and are collected as warnings; they never abort the pass.
func Build(s *scene.Snapshot) *Result {
	r := &Result{
		byKey:  make(map[Key]*Group),
		byNode: make(map[*scene.Node]Member),
	}
	for _, n := range s.Meshes() {
		tok, err := naming.Parse(n.Name)
		if err != nil {
			r.Skipped++
			r.Warnings = append(r.Warnings, Warning{Node: n.Name, Err: err})
			continue
		}
		r.Parsed++
		key := Key{Base: tok.Base, Resource: tok.Resource}
		g, ok := r.byKey[key]
		if !ok {
			g = &Group{Key: key}
			r.byKey[key] = g
			r.Groups = append(r.Groups, g)
		}
		g.Members = append(g.Members, Member{Node: n, Token: tok})
	}

	// Renumber in append order, 1-based.
	for _, g := range r.Groups {
		for i := range g.Members {
			g.Members[i].Assigned = i + 1
			r.byNode[g.Members[i].Node] = g.Members[i]
		}
	}
	return r
}

// Group returns the group for a key, or nil.
func (r *Result) Group(key Key) *Group { return r.byKey[key] }

// Assignment returns the membership of a mesh node, if it was grouped.
func (r *Result) Assignment(n *scene.Node) (Member, bool) {
	m, ok := r.byNode[n]
	return m, ok
}
