package material

import "regexp"

// The host editor disambiguates duplicate material names with a three
// digit dot suffix (bone.001). Those duplicates leak into exports unless
// they are folded back onto the base material.
var duplicateSuffix = regexp.MustCompile(`^(.*)\.(\d{3})$`)

// RemapOutcome says what Deduplicate did with one duplicate.
type RemapOutcome int

const (
	RemapReplaced RemapOutcome = iota // base existed; duplicate dropped
	RemapRenamed                      // no base existed; duplicate renamed to base
)

func (o RemapOutcome) String() string {
	switch o {
	case RemapReplaced:
		return "replaced with base and removed"
	case RemapRenamed:
		return "renamed (no original existed)"
	default:
		return "unknown"
	}
}

// Remap records one duplicate resolution. Callers use From/To to rewrite
// material references on mesh nodes.
type Remap struct {
	From    string
	To      string
	Outcome RemapOutcome
}

// Deduplicate folds dot-suffixed duplicates onto their base materials.
// Duplicates whose base exists are dropped; the first duplicate of a
// missing base is renamed to claim it, and later ones fold onto it.
// Returns the cleaned list (input order, minus dropped entries) and the
// remaps performed.
func Deduplicate(mats []Material) ([]Material, []Remap) {
	present := make(map[string]bool, len(mats))
	for _, m := range mats {
		present[m.Identifier] = true
	}

	var out []Material
	var remaps []Remap
	for _, m := range mats {
		sub := duplicateSuffix.FindStringSubmatch(m.Identifier)
		if sub == nil {
			out = append(out, m)
			continue
		}
		base := sub[1]
		if present[base] {
			remaps = append(remaps, Remap{From: m.Identifier, To: base, Outcome: RemapReplaced})
			continue
		}
		// Claim the base name for this duplicate.
		remaps = append(remaps, Remap{From: m.Identifier, To: base, Outcome: RemapRenamed})
		m.Identifier = base
		present[base] = true
		out = append(out, m)
	}
	return out, remaps
}
