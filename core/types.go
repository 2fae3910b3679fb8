package core

import "github.com/go-gl/mathgl/mgl32"

// SurfaceVertex is one vertex of a generated mesh
type SurfaceVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// LightInfo describes a light source as the simulation hands it to the renderer.
// Position is a direction for directional lights.
type LightInfo struct {
	Position    mgl32.Vec3
	Color       mgl32.Vec3
	Directional bool
}

// Homogeneous returns the light position in the 4D form fixed-function
// lighting expects (w = 0 for directional lights)
func (l LightInfo) Homogeneous() mgl32.Vec4 {
	if l.Directional {
		return l.Position.Vec4(0)
	}
	return l.Position.Vec4(1)
}

// Diffuse returns the light color with an opaque alpha
func (l LightInfo) Diffuse() mgl32.Vec4 {
	return l.Color.Vec4(1)
}
