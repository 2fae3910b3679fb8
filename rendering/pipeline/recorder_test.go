package pipeline

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"planetview/rendering/textures"
)

func TestRecorderCompilesLists(t *testing.T) {
	r := NewRecorder(800, 600, 8)

	list := r.NewList()
	r.BeginList(list)
	r.Enable(Lighting)
	r.BeginStrip()
	r.Vertex(mgl32.Vec3{0, 0, 0})
	r.Vertex(mgl32.Vec3{1, 0, 0})
	r.Vertex(mgl32.Vec3{0, 1, 0})
	r.End()
	r.EndList()

	if r.Enabled(Lighting) {
		t.Fatal("command executed while compiling")
	}
	if r.Stats.Strips != 0 || r.Stats.Vertices != 0 {
		t.Fatalf("stats counted while compiling: %+v", r.Stats)
	}

	r.CallList(list)
	r.CallList(list)

	if !r.Enabled(Lighting) {
		t.Error("list did not replay Enable")
	}
	if r.Stats.ListCalls != 2 || r.Stats.Strips != 2 || r.Stats.Vertices != 6 {
		t.Errorf("unexpected stats %+v", r.Stats)
	}
	if len(r.Draws) != 2 || r.Draws[0].List != list {
		t.Errorf("unexpected draws %+v", r.Draws)
	}

	r.DeleteList(list)
	if r.HasList(list) {
		t.Error("list still live after DeleteList")
	}
	r.CallList(list)
	if r.Stats.ListCalls != 2 {
		t.Error("deleted list was called")
	}
}

func TestRecorderMatrixStack(t *testing.T) {
	r := NewRecorder(100, 100, 8)
	base := mgl32.LookAtV(mgl32.Vec3{0, 0, 33}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	r.LoadModelView(base)

	r.PushMatrix()
	r.Rotate(-23, mgl32.Vec3{0, 0, 1})
	r.Scale(2)
	if r.StackDepth() != 2 {
		t.Fatalf("depth = %d, want 2", r.StackDepth())
	}
	if r.ModelView() == base {
		t.Fatal("transform not applied")
	}
	r.PopMatrix()

	if r.StackDepth() != 1 || r.ModelView() != base {
		t.Error("pop did not restore the base matrix")
	}

	if r.Stats.Underflows != 0 {
		t.Errorf("balanced push/pop counted %d underflows", r.Stats.Underflows)
	}

	// Popping the last entry is ignored but counted
	r.PopMatrix()
	if r.StackDepth() != 1 {
		t.Error("base matrix popped")
	}
	if r.Stats.Underflows != 1 {
		t.Errorf("Underflows = %d, want 1", r.Stats.Underflows)
	}
}

func TestRecorderVertexAttributes(t *testing.T) {
	r := NewRecorder(100, 100, 8)

	list := r.NewList()
	r.BeginList(list)
	r.BeginStrip()
	r.TexCoord(mgl32.Vec2{0, 1})
	r.Normal(mgl32.Vec3{0, 1, 0})
	r.Vertex(mgl32.Vec3{0, 1, 0})
	r.TexCoord(mgl32.Vec2{1, 0})
	r.Vertex(mgl32.Vec3{1, 0, 0})
	r.End()
	r.EndList()

	if len(r.Emitted) != 0 {
		t.Fatal("vertices emitted while compiling")
	}

	r.CallList(list)

	want := []EmittedVertex{
		{Position: mgl32.Vec3{0, 1, 0}, Normal: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{0, 1}, List: list},
		{Position: mgl32.Vec3{1, 0, 0}, Normal: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{1, 0}, List: list},
	}
	if len(r.Emitted) != len(want) {
		t.Fatalf("emitted %d vertices, want %d", len(r.Emitted), len(want))
	}
	for i, v := range want {
		if r.Emitted[i] != v {
			t.Errorf("vertex %d = %+v, want %+v", i, r.Emitted[i], v)
		}
	}
	if r.Stats.TexCoords != 2 || r.Stats.Normals != 1 {
		t.Errorf("stats %+v", r.Stats)
	}

	r.Reset()
	if len(r.Emitted) != 0 {
		t.Error("Reset kept emitted vertices")
	}
}

func TestRecorderLightPositionInEyeSpace(t *testing.T) {
	r := NewRecorder(100, 100, 8)
	r.LoadModelView(mgl32.Translate3D(0, 0, -33))
	r.SetLight(3, mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec4{1, 1, 1, 1})

	got := r.Light(3).Position
	if got.Sub(mgl32.Vec4{1, 0, -33, 1}).Len() > 1e-5 {
		t.Errorf("eye-space position = %v", got)
	}
	if r.Light(3).Enabled {
		t.Error("SetLight enabled the slot")
	}
}

func TestRecorderTextures(t *testing.T) {
	r := NewRecorder(100, 100, 8)
	id := r.CreateTexture(textures.NewImage(2, 2))
	if r.TextureCount() != 1 {
		t.Fatal("texture not created")
	}
	r.DeleteTexture(id)
	if r.TextureCount() != 0 {
		t.Error("texture not deleted")
	}
}

func TestViewportAspect(t *testing.T) {
	if a := (Viewport{Width: 1280, Height: 720}).Aspect(); a != float32(1280)/720 {
		t.Errorf("aspect = %f", a)
	}
	if a := (Viewport{Width: 1280}).Aspect(); a != 1 {
		t.Errorf("zero-height aspect = %f, want 1", a)
	}
}
