package placeholder

import (
	"github.com/sapiens-modding/partforge/pkg/scene"
	"github.com/sapiens-modding/partforge/pkg/shape"
)

// NormalizeDisplaySize re-establishes the codec invariant over a scene
// that has been round-tripped or hand-edited: every placeholder's display
// size is set back to 1. It returns edits for the bridge to apply; nodes
// already at 1 produce no edit.
func NormalizeDisplaySize(snap *scene.Snapshot) []scene.Edit {
	var edits []scene.Edit
	for _, n := range snap.Placeholders() {
		pd := n.Placeholder()
		if pd == nil || pd.DisplaySize == EncodedDisplaySize {
			continue
		}
		size := EncodedDisplaySize
		edits = append(edits, scene.Edit{Node: n.Name, DisplaySize: &size})
	}
	return edits
}

// ApplyShapeTypes re-infers each placeholder's display type from its name
// using the rule table. Display type is lost on import, so this restores
// it after a round trip. Placeholders already showing the inferred shape
// produce no edit.
func ApplyShapeTypes(snap *scene.Snapshot, table *shape.Table) []scene.Edit {
	var edits []scene.Edit
	for _, n := range snap.Placeholders() {
		pd := n.Placeholder()
		if pd == nil {
			continue
		}
		want := table.Infer(n.Name)
		if pd.DisplayType == want {
			continue
		}
		dt := want
		edits = append(edits, scene.Edit{Node: n.Name, DisplayType: &dt})
	}
	return edits
}
