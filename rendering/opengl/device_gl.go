package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"

	"planetview/rendering/pipeline"
	"planetview/rendering/textures"
)

// Device drives the OpenGL 2.1 fixed-function pipeline of the current context
type Device struct {
	version   string
	maxLights int
}

var _ pipeline.Device = (*Device)(nil)

// NewDevice loads the GL function table for the current context.
// A context must have been made current first.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	var maxLights int32
	gl.GetIntegerv(gl.MAX_LIGHTS, &maxLights)

	return &Device{
		version:   gl.GoStr(gl.GetString(gl.VERSION)),
		maxLights: int(maxLights),
	}, nil
}

func (d *Device) Version() string { return d.version }
func (d *Device) MaxLights() int  { return d.maxLights }

func (d *Device) MaxTextureSize() int32 {
	var size int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &size)
	return size
}

func (d *Device) Viewport() pipeline.Viewport {
	var vp [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	return pipeline.Viewport{X: vp[0], Y: vp[1], Width: vp[2], Height: vp[3]}
}

func (d *Device) SetViewport(v pipeline.Viewport) {
	gl.Viewport(v.X, v.Y, v.Width, v.Height)
}

func (d *Device) SetProjection(m mgl32.Mat4) {
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&m[0])
	gl.MatrixMode(gl.MODELVIEW)
}

func (d *Device) LoadModelView(m mgl32.Mat4) {
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixf(&m[0])
}

func (d *Device) PushMatrix() { gl.PushMatrix() }
func (d *Device) PopMatrix()  { gl.PopMatrix() }

func (d *Device) Rotate(degrees float64, axis mgl32.Vec3) {
	gl.Rotated(degrees, float64(axis[0]), float64(axis[1]), float64(axis[2]))
}

func (d *Device) Scale(s float32) {
	gl.Scalef(s, s, s)
}

func capability(c pipeline.Capability) uint32 {
	switch c {
	case pipeline.Lighting:
		return gl.LIGHTING
	case pipeline.Blend:
		return gl.BLEND
	case pipeline.CullFace:
		return gl.CULL_FACE
	case pipeline.Texture2D:
		return gl.TEXTURE_2D
	case pipeline.DepthTest:
		return gl.DEPTH_TEST
	}
	panic(fmt.Sprintf("unknown capability %d", c))
}

func (d *Device) Enable(c pipeline.Capability)  { gl.Enable(capability(c)) }
func (d *Device) Disable(c pipeline.Capability) { gl.Disable(capability(c)) }

func (d *Device) SetBlend(mode pipeline.BlendMode) {
	switch mode {
	case pipeline.BlendAdditive:
		gl.BlendFunc(gl.ONE, gl.ONE)
	default:
		gl.BlendFunc(gl.ONE, gl.ZERO)
	}
}

func (d *Device) SetPolygonMode(mode pipeline.PolygonMode) {
	if mode == pipeline.PolygonLine {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

func (d *Device) SetDepthFunc(fn pipeline.DepthFunc) {
	if fn == pipeline.DepthLessEqual {
		gl.DepthFunc(gl.LEQUAL)
		return
	}
	gl.DepthFunc(gl.LESS)
}

func (d *Device) SetAmbient(color mgl32.Vec4) {
	gl.LightModelfv(gl.LIGHT_MODEL_AMBIENT, &color[0])
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func lightEnum(slot int) uint32 {
	return gl.LIGHT0 + uint32(slot)
}

func (d *Device) EnableLight(slot int)  { gl.Enable(lightEnum(slot)) }
func (d *Device) DisableLight(slot int) { gl.Disable(lightEnum(slot)) }

func (d *Device) SetLight(slot int, position, diffuse mgl32.Vec4) {
	gl.Lightfv(lightEnum(slot), gl.POSITION, &position[0])
	gl.Lightfv(lightEnum(slot), gl.DIFFUSE, &diffuse[0])
}

// CreateTexture uploads an RGB8 image with linear filtering
func (d *Device) CreateTexture(img textures.Image) pipeline.TextureID {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	// RGB rows are not 4-byte aligned in general
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if !img.Empty() {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, int32(img.Width), int32(img.Height), 0,
			gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}

	return pipeline.TextureID(id)
}

func (d *Device) BindTexture(id pipeline.TextureID) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

func (d *Device) DeleteTexture(id pipeline.TextureID) {
	tex := uint32(id)
	gl.DeleteTextures(1, &tex)
}

func (d *Device) NewList() pipeline.ListID {
	return pipeline.ListID(gl.GenLists(1))
}

func (d *Device) BeginList(id pipeline.ListID) {
	gl.NewList(uint32(id), gl.COMPILE)
}

func (d *Device) EndList()                      { gl.EndList() }
func (d *Device) CallList(id pipeline.ListID)   { gl.CallList(uint32(id)) }
func (d *Device) DeleteList(id pipeline.ListID) { gl.DeleteLists(uint32(id), 1) }

func (d *Device) BeginStrip()            { gl.Begin(gl.TRIANGLE_STRIP) }
func (d *Device) TexCoord(uv mgl32.Vec2) { gl.TexCoord2fv(&uv[0]) }
func (d *Device) Normal(n mgl32.Vec3)    { gl.Normal3fv(&n[0]) }
func (d *Device) Vertex(p mgl32.Vec3)    { gl.Vertex3fv(&p[0]) }
func (d *Device) End()                   { gl.End() }

// Error returns the pending GL error, if any
func (d *Device) Error() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("OpenGL error 0x%x", code)
	}
	return nil
}
