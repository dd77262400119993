// Package naming parses the display-name contract the export pipeline is
// built around: baseName_resourceType_index with an optional trailing
// _noexport marker, and an optional ".anything" duplicate suffix appended
// by the host editor, which is stripped before parsing.
//
// Parsing is pure: the same input always yields the same token, and a name
// that does not decompose is a ParseError, never a silently-tolerated
// default.
package naming

import (
	"fmt"
	"strconv"
	"strings"
)

// NoExportMarker is the reserved fourth segment that suppresses part
// export for a node while still giving it a placeholder.
const NoExportMarker = "noexport"

// Token is the parsed form of a display name.
type Token struct {
	Base     string // model base name, e.g. "chairLeg"
	Resource string // resource type, e.g. "branch"
	Index    int    // authored instance index, >= 1; informational only
	NoExport bool   // trailing _noexport marker present
}

// PlaceholderName renders the placeholder display name for this token
// under an assigned index: resourceType_index. The assigned index comes
// from group renumbering, not from the authored one.
func (t Token) PlaceholderName(index int) string {
	return fmt.Sprintf("%s_%d", t.Resource, index)
}

// Key returns the grouping key string base/resource, used for stable map
// keys and diagnostics.
func (t Token) Key() string {
	return t.Base + "/" + t.Resource
}

// ParseError reports a display name that does not follow the contract.
// It names the offending segment so the author can fix the scene.
type ParseError struct {
	Name    string // original display name, before suffix stripping
	Segment string // which part was unparseable
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("name %q: %s %s", e.Name, e.Segment, e.Reason)
}

// Parse decomposes a display name into a Token.
//
// The host editor disambiguates duplicate names with a ".NNN" suffix;
// everything from the first "." is discarded. What remains must be
// base_resource_index, optionally followed by _noexport. The index must be
// a positive integer.
func Parse(displayName string) (Token, error) {
	name := displayName
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}

	segs := strings.Split(name, "_")
	switch {
	case len(segs) < 3:
		return Token{}, &ParseError{Name: displayName, Segment: "name",
			Reason: fmt.Sprintf("has %d segment(s), want at least base_resource_index", len(segs))}
	case len(segs) > 4:
		return Token{}, &ParseError{Name: displayName, Segment: segs[4],
			Reason: "is an extra segment beyond the optional marker"}
	}

	tok := Token{Base: segs[0], Resource: segs[1]}
	if tok.Base == "" {
		return Token{}, &ParseError{Name: displayName, Segment: "base name", Reason: "is empty"}
	}
	if tok.Resource == "" {
		return Token{}, &ParseError{Name: displayName, Segment: "resource type", Reason: "is empty"}
	}

	idx, err := strconv.Atoi(segs[2])
	if err != nil || idx < 1 {
		return Token{}, &ParseError{Name: displayName, Segment: segs[2],
			Reason: "is not a positive integer index"}
	}
	tok.Index = idx

	if len(segs) == 4 {
		if !strings.EqualFold(segs[3], NoExportMarker) {
			return Token{}, &ParseError{Name: displayName, Segment: segs[3],
				Reason: fmt.Sprintf("is not the reserved %q marker", NoExportMarker)}
		}
		tok.NoExport = true
	}
	return tok, nil
}
