package pipeline

import (
	"github.com/go-gl/mathgl/mgl32"

	"planetview/rendering/textures"
)

// LightState is the recorded state of one light slot
type LightState struct {
	Enabled  bool
	Position mgl32.Vec4
	Diffuse  mgl32.Vec4
}

// DrawRecord captures pipeline state at the moment a draw list was called
type DrawRecord struct {
	List        ListID
	Blend       BlendMode
	Polygon     PolygonMode
	Lighting    bool
	ModelView   mgl32.Mat4
	Lights      []LightState
	Texture     TextureID
	StackDepth  int
	FrameNumber int
}

// EnabledSlots returns the indices of the enabled light slots
func (d DrawRecord) EnabledSlots() []int {
	var slots []int
	for i, l := range d.Lights {
		if l.Enabled {
			slots = append(slots, i)
		}
	}
	return slots
}

// RecorderStats counts the work submitted to a Recorder
type RecorderStats struct {
	Frames     int
	ListCalls  int
	Strips     int
	Vertices   int
	Normals    int
	TexCoords  int
	Underflows int // PopMatrix calls with only the base matrix left
}

// EmittedVertex is a strip vertex with the attributes current when it was emitted
type EmittedVertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
	List     ListID
}

// Recorder is a Device that tracks pipeline state in memory instead of
// talking to a GPU. It backs headless runs and the renderer tests.
type Recorder struct {
	version  string
	viewport Viewport

	projection mgl32.Mat4
	stack      []mgl32.Mat4

	caps     map[Capability]bool
	blend    BlendMode
	polygon  PolygonMode
	depth    DepthFunc
	ambient  mgl32.Vec4
	lights   []LightState
	texture  TextureID
	textures map[TextureID]textures.Image

	lists     map[ListID][]func()
	nextList  ListID
	nextTex   TextureID
	recording ListID
	inStrip   bool
	calling   []ListID
	normal    mgl32.Vec3
	texCoord  mgl32.Vec2

	Draws   []DrawRecord
	Emitted []EmittedVertex
	Stats   RecorderStats
}

// NewRecorder creates a recorder with the given viewport size and number of light slots
func NewRecorder(width, height int32, lightSlots int) *Recorder {
	return &Recorder{
		version:    "recorder 2.1",
		viewport:   Viewport{Width: width, Height: height},
		projection: mgl32.Ident4(),
		stack:      []mgl32.Mat4{mgl32.Ident4()},
		caps:       make(map[Capability]bool),
		lights:     make([]LightState, lightSlots),
		textures:   make(map[TextureID]textures.Image),
		lists:      make(map[ListID][]func()),
	}
}

// record defers fn into the list being compiled, or runs it immediately
func (r *Recorder) record(fn func()) {
	if r.recording != 0 {
		r.lists[r.recording] = append(r.lists[r.recording], fn)
		return
	}
	fn()
}

func (r *Recorder) Version() string       { return r.version }
func (r *Recorder) MaxTextureSize() int32 { return 16384 }
func (r *Recorder) MaxLights() int        { return len(r.lights) }
func (r *Recorder) Viewport() Viewport    { return r.viewport }

func (r *Recorder) SetViewport(v Viewport) {
	r.record(func() { r.viewport = v })
}

func (r *Recorder) SetProjection(m mgl32.Mat4) {
	r.record(func() { r.projection = m })
}

func (r *Recorder) LoadModelView(m mgl32.Mat4) {
	r.record(func() { r.stack[len(r.stack)-1] = m })
}

func (r *Recorder) PushMatrix() {
	r.record(func() { r.stack = append(r.stack, r.stack[len(r.stack)-1]) })
}

func (r *Recorder) PopMatrix() {
	r.record(func() {
		if len(r.stack) <= 1 {
			r.Stats.Underflows++
			return
		}
		r.stack = r.stack[:len(r.stack)-1]
	})
}

func (r *Recorder) Rotate(degrees float64, axis mgl32.Vec3) {
	rot := mgl32.HomogRotate3D(mgl32.DegToRad(float32(degrees)), axis.Normalize())
	r.record(func() { r.multiply(rot) })
}

func (r *Recorder) Scale(s float32) {
	r.record(func() { r.multiply(mgl32.Scale3D(s, s, s)) })
}

func (r *Recorder) multiply(m mgl32.Mat4) {
	top := len(r.stack) - 1
	r.stack[top] = r.stack[top].Mul4(m)
}

func (r *Recorder) Enable(c Capability) {
	r.record(func() { r.caps[c] = true })
}

func (r *Recorder) Disable(c Capability) {
	r.record(func() { r.caps[c] = false })
}

func (r *Recorder) SetBlend(mode BlendMode) {
	r.record(func() { r.blend = mode })
}

func (r *Recorder) SetPolygonMode(mode PolygonMode) {
	r.record(func() { r.polygon = mode })
}

func (r *Recorder) SetDepthFunc(fn DepthFunc) {
	r.record(func() { r.depth = fn })
}

func (r *Recorder) SetAmbient(color mgl32.Vec4) {
	r.record(func() { r.ambient = color })
}

func (r *Recorder) Clear() {
	r.record(func() { r.Stats.Frames++ })
}

func (r *Recorder) EnableLight(slot int) {
	r.record(func() { r.lights[slot].Enabled = true })
}

func (r *Recorder) DisableLight(slot int) {
	r.record(func() { r.lights[slot].Enabled = false })
}

// SetLight stores the position in eye space, as fixed-function lighting does
func (r *Recorder) SetLight(slot int, position, diffuse mgl32.Vec4) {
	r.record(func() {
		r.lights[slot].Position = r.ModelView().Mul4x1(position)
		r.lights[slot].Diffuse = diffuse
	})
}

func (r *Recorder) CreateTexture(img textures.Image) TextureID {
	r.nextTex++
	id := r.nextTex
	r.textures[id] = img
	return id
}

func (r *Recorder) BindTexture(id TextureID) {
	r.record(func() { r.texture = id })
}

func (r *Recorder) DeleteTexture(id TextureID) {
	delete(r.textures, id)
}

func (r *Recorder) NewList() ListID {
	r.nextList++
	r.lists[r.nextList] = nil
	return r.nextList
}

func (r *Recorder) BeginList(id ListID) {
	r.lists[id] = nil
	r.recording = id
}

func (r *Recorder) EndList() {
	r.recording = 0
}

func (r *Recorder) CallList(id ListID) {
	r.record(func() {
		cmds, ok := r.lists[id]
		if !ok {
			return
		}
		r.Stats.ListCalls++
		r.Draws = append(r.Draws, r.snapshot(id))
		r.calling = append(r.calling, id)
		for _, cmd := range cmds {
			cmd()
		}
		r.calling = r.calling[:len(r.calling)-1]
	})
}

func (r *Recorder) DeleteList(id ListID) {
	delete(r.lists, id)
}

func (r *Recorder) BeginStrip() {
	r.record(func() {
		r.inStrip = true
		r.Stats.Strips++
	})
}

func (r *Recorder) TexCoord(uv mgl32.Vec2) {
	r.record(func() {
		r.texCoord = uv
		r.Stats.TexCoords++
	})
}

func (r *Recorder) Normal(n mgl32.Vec3) {
	r.record(func() {
		r.normal = n
		r.Stats.Normals++
	})
}

func (r *Recorder) Vertex(p mgl32.Vec3) {
	r.record(func() {
		if !r.inStrip {
			return
		}
		r.Stats.Vertices++
		var list ListID
		if n := len(r.calling); n > 0 {
			list = r.calling[n-1]
		}
		r.Emitted = append(r.Emitted, EmittedVertex{Position: p, Normal: r.normal, TexCoord: r.texCoord, List: list})
	})
}

func (r *Recorder) End() {
	r.record(func() { r.inStrip = false })
}

func (r *Recorder) snapshot(id ListID) DrawRecord {
	lights := make([]LightState, len(r.lights))
	copy(lights, r.lights)
	return DrawRecord{
		List:        id,
		Blend:       r.blend,
		Polygon:     r.polygon,
		Lighting:    r.caps[Lighting],
		ModelView:   r.ModelView(),
		Lights:      lights,
		Texture:     r.texture,
		StackDepth:  len(r.stack),
		FrameNumber: r.Stats.Frames,
	}
}

// ModelView returns the current top of the modelview stack
func (r *Recorder) ModelView() mgl32.Mat4 {
	return r.stack[len(r.stack)-1]
}

// Projection returns the installed projection matrix
func (r *Recorder) Projection() mgl32.Mat4 {
	return r.projection
}

// StackDepth returns the number of entries on the modelview stack
func (r *Recorder) StackDepth() int {
	return len(r.stack)
}

// Enabled reports whether a capability is switched on
func (r *Recorder) Enabled(c Capability) bool {
	return r.caps[c]
}

// Light returns the state of a light slot
func (r *Recorder) Light(slot int) LightState {
	return r.lights[slot]
}

func (r *Recorder) Blend() BlendMode         { return r.blend }
func (r *Recorder) PolygonMode() PolygonMode { return r.polygon }
func (r *Recorder) DepthFunc() DepthFunc     { return r.depth }
func (r *Recorder) Ambient() mgl32.Vec4      { return r.ambient }

// HasList reports whether id names a live draw list
func (r *Recorder) HasList(id ListID) bool {
	_, ok := r.lists[id]
	return ok
}

// TextureCount returns the number of live textures
func (r *Recorder) TextureCount() int {
	return len(r.textures)
}

// Reset drops recorded draws and vertices, keeping pipeline state and lists
func (r *Recorder) Reset() {
	r.Draws = r.Draws[:0]
	r.Emitted = r.Emitted[:0]
}
