// Package placeholder synthesizes the placeholder scene the "export
// empties" artifact is built from, and houses the transform codec that
// keeps sizing information alive across the interchange round trip.
package placeholder

import "github.com/sapiens-modding/partforge/pkg/scene"

// EncodedDisplaySize is the display size every encoded placeholder gets.
// The interchange format preserves a placeholder's uniform bounding-box
// display size but has no reliable field for non-uniform scale intent, so
// the codec pins display size to 1 and keeps all sizing in the scale
// channel. Downstream consumers read scale alone.
const EncodedDisplaySize = 1.0

// EncodeScale converts a source node transform into the placeholder form:
// the transform is returned unchanged (scale channel carries the full
// non-uniform scale) together with the unit display size. No validation is
// performed; zero or negative scale components pass through as-is.
func EncodeScale(src scene.Transform) (scene.Transform, float64) {
	return src, EncodedDisplaySize
}

// DecodeScale reads the intended scale back out of a placeholder,
// ignoring its display size entirely.
func DecodeScale(t scene.Transform, displaySize float64) scene.Vec3 {
	_ = displaySize
	return t.Scale
}
