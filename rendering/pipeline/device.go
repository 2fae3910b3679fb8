// Package pipeline describes the immediate-mode fixed-function graphics API
// the scene renderer draws with. The opengl package implements it on top of
// OpenGL 2.1 and Recorder implements it without a GPU.
package pipeline

import (
	"github.com/go-gl/mathgl/mgl32"

	"planetview/rendering/textures"
)

// Capability is a server-side switch toggled with Enable/Disable
type Capability int

const (
	Lighting Capability = iota
	Blend
	CullFace
	Texture2D
	DepthTest
)

func (c Capability) String() string {
	switch c {
	case Lighting:
		return "lighting"
	case Blend:
		return "blend"
	case CullFace:
		return "cull-face"
	case Texture2D:
		return "texture-2d"
	case DepthTest:
		return "depth-test"
	}
	return "unknown"
}

// BlendMode selects the framebuffer blend equation
type BlendMode int

const (
	BlendReplace  BlendMode = iota // src*1 + dst*0
	BlendAdditive                  // src*1 + dst*1
)

// PolygonMode selects how front and back faces are rasterized
type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
)

// DepthFunc is the depth comparison
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
)

// ListID identifies a compiled draw list
type ListID uint32

// TextureID identifies an uploaded texture
type TextureID uint32

// Viewport is the window-space drawing rectangle
type Viewport struct {
	X, Y, Width, Height int32
}

// Aspect returns width/height, or 1 for an empty viewport
func (v Viewport) Aspect() float32 {
	if v.Height <= 0 || v.Width <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Device is the subset of the fixed-function pipeline the renderer uses.
// Calls issued between BeginList and EndList are compiled into the list
// and not executed until CallList.
type Device interface {
	Version() string
	MaxTextureSize() int32
	MaxLights() int

	Viewport() Viewport
	SetViewport(v Viewport)

	// Matrices
	SetProjection(m mgl32.Mat4)
	LoadModelView(m mgl32.Mat4)
	PushMatrix()
	PopMatrix()
	Rotate(degrees float64, axis mgl32.Vec3)
	Scale(s float32)

	// State
	Enable(c Capability)
	Disable(c Capability)
	SetBlend(mode BlendMode)
	SetPolygonMode(mode PolygonMode)
	SetDepthFunc(fn DepthFunc)
	SetAmbient(color mgl32.Vec4)
	Clear()

	// Light slots, 0..MaxLights()-1
	EnableLight(slot int)
	DisableLight(slot int)
	SetLight(slot int, position, diffuse mgl32.Vec4)

	// Textures
	CreateTexture(img textures.Image) TextureID
	BindTexture(id TextureID)
	DeleteTexture(id TextureID)

	// Draw lists
	NewList() ListID
	BeginList(id ListID)
	EndList()
	CallList(id ListID)
	DeleteList(id ListID)

	// Immediate-mode triangle strips
	BeginStrip()
	TexCoord(uv mgl32.Vec2)
	Normal(n mgl32.Vec3)
	Vertex(p mgl32.Vec3)
	End()
}
