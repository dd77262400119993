// Package scene defines the immutable scene snapshot the export pipeline
// operates on. A snapshot is pulled once from the host editor at the start
// of a run; every downstream stage reads it and none mutates it.
package scene

import "fmt"

// Vec3 is a 3D vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// One is the unit scale vector.
var One = Vec3{1, 1, 1}

// Transform is a node's local transform. Rotation is Euler angles in
// degrees, applied XYZ. Scale is non-uniform.
type Transform struct {
	Translation Vec3 `json:"translation"`
	Rotation    Vec3 `json:"rotation"`
	Scale       Vec3 `json:"scale"`
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Scale: One}
}

// Kind enumerates the node kinds the pipeline distinguishes.
type Kind int

const (
	KindMesh        Kind = iota // geometry-bearing node
	KindPlaceholder             // empty marker node, no geometry
	KindCamera                  // camera node
	KindOther                   // anything else; passed through or ignored
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindPlaceholder:
		return "placeholder"
	case KindCamera:
		return "camera"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// DisplayType is the visual marker shape of a placeholder node. It is a
// display hint only and does not survive an interchange round trip; sizing
// information must live in the scale channel instead.
type DisplayType int

const (
	DisplayAxes DisplayType = iota // plain axes tripod (default)
	DisplayCube
	DisplaySphere
)

func (d DisplayType) String() string {
	switch d {
	case DisplayAxes:
		return "plain_axes"
	case DisplayCube:
		return "cube"
	case DisplaySphere:
		return "sphere"
	default:
		return fmt.Sprintf("DisplayType(%d)", int(d))
	}
}
