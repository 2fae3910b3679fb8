package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"planetview/core"
	"planetview/rendering/pipeline"
	"planetview/rendering/textures"
)

// Simulation is the per-frame input the renderer reads.
// Lights are attached to the sphere and rotate with it.
type Simulation interface {
	SunLight() core.LightInfo
	Lights() []core.LightInfo
	SphereRotationAngle() float64 // degrees about the planet axis
}

// RenderOptions are read once at the start of every frame
type RenderOptions struct {
	Wireframe bool
}

// Options configures the camera, mesh and light slots at construction
type Options struct {
	FieldOfView    float32 // degrees
	Near, Far      float32
	CameraDistance float32
	EclipticTilt   float64 // degrees about the view axis
	Ambient        mgl32.Vec3

	LatitudeSteps  int
	LongitudeSteps int
	SphereScale    float32
	StarsScale     float32

	MaxLightSlots int
}

// DefaultOptions frames a unit sphere with a narrow telephoto camera
func DefaultOptions() Options {
	return Options{
		FieldOfView:    5,
		Near:           11,
		Far:            100,
		CameraDistance: 33,
		EclipticTilt:   -23,
		Ambient:        mgl32.Vec3{0.1, 0.1, 0.1},
		LatitudeSteps:  33,
		LongitudeSteps: 65,
		SphereScale:    1,
		StarsScale:     2,
		MaxLightSlots:  DefaultMaxLightSlots,
	}
}

var (
	upAxis   = mgl32.Vec3{0, 1, 0}
	viewAxis = mgl32.Vec3{0, 0, 1}
)

// SceneRenderer draws the starfield and the lit planet
type SceneRenderer struct {
	dev    pipeline.Device
	opts   Options
	slots  int
	sphere *SphereModel

	starsTexture pipeline.TextureID
	earthTexture pipeline.TextureID
	starsList    pipeline.ListID
	sphereList   pipeline.ListID

	camera     mgl32.Mat4
	terminated bool
}

// NewSceneRenderer configures global pipeline state, uploads both textures
// and compiles the stars and sphere draw lists
func NewSceneRenderer(dev pipeline.Device, stars, earth textures.Image, opts Options) (*SceneRenderer, error) {
	if dev == nil {
		return nil, errors.New("nil device")
	}
	if opts.Near <= 0 || opts.Far <= opts.Near {
		return nil, fmt.Errorf("invalid clip planes near=%v far=%v", opts.Near, opts.Far)
	}
	if opts.MaxLightSlots <= 0 {
		opts.MaxLightSlots = DefaultMaxLightSlots
	}

	fmt.Println("OpenGL version:", dev.Version())
	fmt.Println("Max texture size:", dev.MaxTextureSize())

	supported := dev.MaxLights()
	if supported <= 0 {
		return nil, errors.New("device has no fixed-function light slots")
	}
	slots := opts.MaxLightSlots
	if slots > supported {
		fmt.Printf("Warning: %d light slots requested, device supports %d\n", slots, supported)
		slots = supported
	}

	r := &SceneRenderer{
		dev:    dev,
		opts:   opts,
		slots:  slots,
		sphere: NewSphereModel(core.GenerateSphere(opts.LatitudeSteps, opts.LongitudeSteps)),
		camera: mgl32.LookAtV(mgl32.Vec3{0, 0, opts.CameraDistance}, mgl32.Vec3{}, upAxis),
	}

	r.installProjection(dev.Viewport())

	dev.Enable(pipeline.Lighting)
	dev.Enable(pipeline.Blend)
	dev.Enable(pipeline.CullFace)
	dev.SetAmbient(opts.Ambient.Vec4(1))

	dev.Enable(pipeline.Texture2D)
	dev.Enable(pipeline.DepthTest)
	dev.SetDepthFunc(pipeline.DepthLessEqual)

	dev.LoadModelView(r.camera)

	r.starsTexture = dev.CreateTexture(stars)
	r.earthTexture = dev.CreateTexture(earth)

	r.starsList = dev.NewList()
	dev.BeginList(r.starsList)
	r.drawStars()
	dev.EndList()

	r.sphereList = dev.NewList()
	dev.BeginList(r.sphereList)
	r.drawEarth()
	dev.EndList()

	fmt.Printf("Sphere mesh: %d strips, %d vertices, %d light slots\n",
		len(r.sphere.Geometry().Strips), r.sphere.Geometry().VertexCount(), r.slots)

	return r, nil
}

func (r *SceneRenderer) installProjection(vp pipeline.Viewport) {
	proj := mgl32.Perspective(mgl32.DegToRad(r.opts.FieldOfView), vp.Aspect(), r.opts.Near, r.opts.Far)
	r.dev.SetProjection(proj)
}

// drawStars emits a 4x2 camera-facing quad with the starfield mapped corner to corner
func (r *SceneRenderer) drawStars() {
	dev := r.dev
	dev.BindTexture(r.starsTexture)
	dev.PushMatrix()
	dev.Scale(r.opts.StarsScale)
	dev.BeginStrip()
	dev.TexCoord(mgl32.Vec2{0, 1})
	dev.Vertex(mgl32.Vec3{-2, +1, 0})
	dev.TexCoord(mgl32.Vec2{0, 0})
	dev.Vertex(mgl32.Vec3{-2, -1, 0})
	dev.TexCoord(mgl32.Vec2{1, 1})
	dev.Vertex(mgl32.Vec3{+2, +1, 0})
	dev.TexCoord(mgl32.Vec2{1, 0})
	dev.Vertex(mgl32.Vec3{+2, -1, 0})
	dev.End()
	dev.PopMatrix()
}

func (r *SceneRenderer) drawEarth() {
	r.dev.BindTexture(r.earthTexture)
	r.sphere.Render(r.dev, r.opts.SphereScale)
}

// LightSlots returns the number of light slots used per pass
func (r *SceneRenderer) LightSlots() int {
	return r.slots
}

// Camera returns the base modelview matrix
func (r *SceneRenderer) Camera() mgl32.Mat4 {
	return r.camera
}

// Resize updates the viewport and projection after a framebuffer change
func (r *SceneRenderer) Resize(width, height int) {
	vp := pipeline.Viewport{Width: int32(width), Height: int32(height)}
	r.dev.SetViewport(vp)
	r.installProjection(vp)
}

// Render draws one frame: the unlit starfield, the sun-lit sphere, then one
// additive sphere pass per batch of simulation lights.
func (r *SceneRenderer) Render(sim Simulation, ro RenderOptions) {
	dev := r.dev

	if ro.Wireframe {
		dev.SetPolygonMode(pipeline.PolygonLine)
	} else {
		dev.SetPolygonMode(pipeline.PolygonFill)
	}

	dev.Clear()

	dev.SetBlend(pipeline.BlendReplace)
	dev.Disable(pipeline.Lighting)
	dev.CallList(r.starsList)
	dev.Enable(pipeline.Lighting)

	// Sun is set before the planet rotation so it stays fixed in the world
	dev.EnableLight(0)
	for slot := 1; slot < r.slots; slot++ {
		dev.DisableLight(slot)
	}
	applyLight(dev, 0, sim.SunLight())

	dev.PushMatrix()
	dev.Rotate(r.opts.EclipticTilt, viewAxis)
	dev.Rotate(sim.SphereRotationAngle(), upAxis)

	dev.SetBlend(pipeline.BlendReplace)
	dev.CallList(r.sphereList)

	dev.SetBlend(pipeline.BlendAdditive)
	for _, batch := range BatchLights(sim.Lights(), r.slots) {
		assignBatch(dev, batch, r.slots)
		dev.CallList(r.sphereList)
	}

	disableLights(dev, r.slots)
	dev.PopMatrix()
}

// Terminate releases both draw lists and textures
func (r *SceneRenderer) Terminate() {
	if r.terminated {
		return
	}
	r.terminated = true

	r.dev.DeleteList(r.starsList)
	r.dev.DeleteList(r.sphereList)
	r.dev.DeleteTexture(r.starsTexture)
	r.dev.DeleteTexture(r.earthTexture)
}
