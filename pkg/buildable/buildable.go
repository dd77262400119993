// Package buildable produces the standard scaffolding nodes a buildable
// model needs before its first export: the bounding radius, the default
// attach point and the static collider, plus the icon-render camera the
// engine's thumbnail pass expects.
package buildable

import "github.com/sapiens-modding/partforge/pkg/scene"

// Render resolution of the engine's icon pass.
const (
	IconResolutionX = 1080
	IconResolutionY = 1080
)

// IconCameraFOV is the icon camera's field of view in degrees.
const IconCameraFOV = 30

// Scaffold returns the three placeholder nodes every buildable starts
// from. The attach box follows the naming contract; the bounding radius
// and static box are consumed by the engine under their literal names.
func Scaffold() []*scene.Node {
	return []*scene.Node{
		{
			Name:      "bounding_radius",
			Kind:      scene.KindPlaceholder,
			Transform: scene.Identity(),
			Data:      scene.PlaceholderData{DisplayType: scene.DisplaySphere, DisplaySize: 1},
		},
		{
			Name:      "placeAttach_box_1",
			Kind:      scene.KindPlaceholder,
			Transform: scene.Identity(),
			Data:      scene.PlaceholderData{DisplayType: scene.DisplayCube, DisplaySize: 1},
		},
		{
			Name:      "static_box",
			Kind:      scene.KindPlaceholder,
			Transform: scene.Identity(),
			Data:      scene.PlaceholderData{DisplayType: scene.DisplayCube, DisplaySize: 1},
		},
	}
}

// IconCamera returns the standard icon camera node. Pose matches the
// engine's reference thumbnail framing.
func IconCamera() *scene.Node {
	return &scene.Node{
		Name: "icon_camera2",
		Kind: scene.KindCamera,
		Transform: scene.Transform{
			Translation: scene.Vec3{X: -1.7204, Y: -1.2657, Z: 0.94239},
			Rotation:    scene.Vec3{X: 75.683, Y: -0.000075, Z: -50.567},
			Scale:       scene.One,
		},
		Data: scene.CameraData{FOVDegrees: IconCameraFOV},
	}
}
