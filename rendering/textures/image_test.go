package textures

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFromImageFlipsRows(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 255, A: 255}) // top-left red
	src.Set(1, 1, color.RGBA{B: 255, A: 255}) // bottom-right blue

	img := FromImage(src)
	if img.Width != 2 || img.Height != 2 || len(img.Pix) != 12 {
		t.Fatalf("unexpected size %dx%d (%d bytes)", img.Width, img.Height, len(img.Pix))
	}

	if r, g, b := img.At(0, 1); r != 255 || g != 0 || b != 0 {
		t.Errorf("top-left texel = %d,%d,%d, want red", r, g, b)
	}
	if r, g, b := img.At(1, 0); r != 0 || g != 0 || b != 255 {
		t.Errorf("bottom-right texel = %d,%d,%d, want blue", r, g, b)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.png")

	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(file, src); err != nil {
		t.Fatal(err)
	}
	file.Close()

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Width != 4 || img.Height != 3 {
		t.Errorf("got %dx%d, want 4x3", img.Width, img.Height)
	}

	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOrGenerateFallback(t *testing.T) {
	called := false
	img := LoadOrGenerate(filepath.Join(t.TempDir(), "nope.jpg"), func() Image {
		called = true
		return NewImage(1, 1)
	})
	if !called || img.Empty() {
		t.Error("fallback not used")
	}
}

func TestProceduralTextures(t *testing.T) {
	stars := Starfield(64, 32, 50, 1)
	if stars.Empty() {
		t.Fatal("empty starfield")
	}
	lit := 0
	for i := 0; i < len(stars.Pix); i += 3 {
		if stars.Pix[i+1] > 0 {
			lit++
		}
	}
	if lit == 0 || lit > 50 {
		t.Errorf("starfield has %d lit texels", lit)
	}

	planet := Planet(64, 32)
	// top row is the north polar cap
	if r, g, b := planet.At(10, planet.Height-1); r < 200 || g < 200 || b < 200 {
		t.Errorf("north pole texel = %d,%d,%d, want ice", r, g, b)
	}
}
