package scene

import (
	"planetview/core"
	"planetview/rendering/pipeline"
)

// SphereModel draws a SphereGeometry as immediate-mode triangle strips
type SphereModel struct {
	geometry *core.SphereGeometry
}

// NewSphereModel wraps generated geometry for drawing
func NewSphereModel(geometry *core.SphereGeometry) *SphereModel {
	return &SphereModel{geometry: geometry}
}

// Geometry returns the mesh the model draws
func (m *SphereModel) Geometry() *core.SphereGeometry {
	return m.geometry
}

// Render draws every strip at a uniform scale. The modelview matrix is
// restored before returning.
func (m *SphereModel) Render(dev pipeline.Device, scale float32) {
	dev.PushMatrix()
	defer dev.PopMatrix()

	dev.Scale(scale)
	for _, strip := range m.geometry.Strips {
		dev.BeginStrip()
		for _, v := range strip {
			dev.TexCoord(v.TexCoord)
			dev.Normal(v.Normal)
			dev.Vertex(v.Position)
		}
		dev.End()
	}
}
