// Package shape maps resource types to placeholder display shapes through
// an ordered rule table. Rules are data: first match wins, more specific
// rules go first, and the table must end in a total fallback so every
// resource type resolves to exactly one shape.
package shape

import (
	"fmt"
	"strings"

	"github.com/sapiens-modding/partforge/pkg/scene"
)

// Rule pairs a predicate with the shape it selects. A nil Match is total
// and matches every resource type; it can only appear as the final rule.
type Rule struct {
	Name  string
	Match func(resource string) bool
	Shape scene.DisplayType
}

// Prefix returns a rule matching resource types starting with p.
// Matching is case-insensitive.
func Prefix(p string, s scene.DisplayType) Rule {
	lp := strings.ToLower(p)
	return Rule{
		Name:  "prefix:" + p,
		Match: func(r string) bool { return strings.HasPrefix(strings.ToLower(r), lp) },
		Shape: s,
	}
}

// Contains returns a rule matching resource types containing sub.
// Matching is case-insensitive.
func Contains(sub string, s scene.DisplayType) Rule {
	ls := strings.ToLower(sub)
	return Rule{
		Name:  "contains:" + sub,
		Match: func(r string) bool { return strings.Contains(strings.ToLower(r), ls) },
		Shape: s,
	}
}

// Fallback returns the total rule that ends a table.
func Fallback(s scene.DisplayType) Rule {
	return Rule{Name: "fallback", Shape: s}
}

// ConfigError reports a malformed rule table. It is a programming error:
// tables are built at startup, so a bad one should never reach an export
// run.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "shape rule table: " + e.Reason
}

// Table is an ordered, total shape-inference rule table.
type Table struct {
	rules []Rule
}

// NewTable validates and builds a table. The final rule must be total and
// no earlier rule may be, otherwise later rules would be unreachable.
func NewTable(rules ...Rule) (*Table, error) {
	if len(rules) == 0 {
		return nil, &ConfigError{Reason: "empty; a total fallback rule is required"}
	}
	for i, r := range rules[:len(rules)-1] {
		if r.Match == nil {
			return nil, &ConfigError{Reason: fmt.Sprintf(
				"rule %d (%s) is total but not last; later rules are unreachable", i, r.Name)}
		}
	}
	if last := rules[len(rules)-1]; last.Match != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf(
			"final rule (%s) is not total; some resource types would have no shape", last.Name)}
	}
	return &Table{rules: rules}, nil
}

// Extend returns a new table with rules inserted ahead of the receiver's,
// keeping the receiver's fallback. Used for user-supplied rules, which
// must win over the defaults.
func (t *Table) Extend(rules ...Rule) (*Table, error) {
	merged := make([]Rule, 0, len(rules)+len(t.rules))
	merged = append(merged, rules...)
	merged = append(merged, t.rules...)
	return NewTable(merged...)
}

// Infer resolves a resource type to a shape. Totality is guaranteed by
// construction.
func (t *Table) Infer(resource string) scene.DisplayType {
	for _, r := range t.rules {
		if r.Match == nil || r.Match(resource) {
			return r.Shape
		}
	}
	// Unreachable: NewTable guarantees a total final rule.
	return scene.DisplayAxes
}

// Len returns the number of rules in the table.
func (t *Table) Len() int { return len(t.rules) }

// DefaultTable returns the built-in rules, matching the conventions the
// engine's buildable definitions expect: colliders and attach points are
// boxes, radii and seats are spheres, everything else shows plain axes.
func DefaultTable() *Table {
	t, err := NewTable(
		Contains("box", scene.DisplayCube),
		Contains("cube", scene.DisplayCube),
		Contains("sphere", scene.DisplaySphere),
		Contains("seat", scene.DisplaySphere),
		Contains("radius", scene.DisplaySphere),
		Contains("store", scene.DisplayAxes),
		Fallback(scene.DisplayAxes),
	)
	if err != nil {
		// The built-in table is static; a failure here is a bug.
		panic(err)
	}
	return t
}
