package glb

import (
	"math"

	"github.com/chewxy/math32"

	"github.com/sapiens-modding/partforge/pkg/scene"
)

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// eulerToQuat converts Euler angles in degrees (XYZ application order, the
// editor's default) to a normalized glTF quaternion [x y z w]. Trig runs
// in float32 because that is the precision the interchange buffers carry
// anyway; the round trip through the viewer quantizes to float32 either
// way.
func eulerToQuat(r scene.Vec3) [4]float64 {
	hx := math32.Pi / 360 * float32(r.X)
	hy := math32.Pi / 360 * float32(r.Y)
	hz := math32.Pi / 360 * float32(r.Z)

	cx, sx := math32.Cos(hx), math32.Sin(hx)
	cy, sy := math32.Cos(hy), math32.Sin(hy)
	cz, sz := math32.Cos(hz), math32.Sin(hz)

	// X applied first, then Y, then Z: q = qz * qy * qx.
	x := sx*cy*cz - cx*sy*sz
	y := cx*sy*cz + sx*cy*sz
	z := cx*cy*sz - sx*sy*cz
	w := cx*cy*cz + sx*sy*sz

	n := math32.Sqrt(x*x + y*y + z*z + w*w)
	if n == 0 {
		return [4]float64{0, 0, 0, 1}
	}
	return [4]float64{float64(x / n), float64(y / n), float64(z / n), float64(w / n)}
}
