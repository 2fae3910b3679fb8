package textures

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Image is a decoded RGB8 image ready for upload.
// Rows are stored bottom-up, the order OpenGL reads texel rows in,
// so t=1 samples the top of the source picture.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// NewImage allocates a black image
func NewImage(width, height int) Image {
	return Image{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}
}

// Set writes the texel at column x, row y counted from the bottom
func (img Image) Set(x, y int, r, g, b byte) {
	i := (y*img.Width + x) * 3
	img.Pix[i] = r
	img.Pix[i+1] = g
	img.Pix[i+2] = b
}

// At returns the texel at column x, row y counted from the bottom
func (img Image) At(x, y int) (r, g, b byte) {
	i := (y*img.Width + x) * 3
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

// Empty reports whether the image holds no texels
func (img Image) Empty() bool {
	return img.Width <= 0 || img.Height <= 0 || len(img.Pix) < img.Width*img.Height*3
}

// FromImage converts any decoded image to RGB8, flipping it vertically
func FromImage(src image.Image) Image {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)

	img := NewImage(b.Dx(), b.Dy())
	for y := 0; y < img.Height; y++ {
		row := rgba.Pix[y*rgba.Stride:]
		dstY := img.Height - 1 - y
		for x := 0; x < img.Width; x++ {
			img.Set(x, dstY, row[x*4], row[x*4+1], row[x*4+2])
		}
	}
	return img
}

// Load decodes a PNG or JPEG file
func Load(path string) (Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return Image{}, err
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return FromImage(src), nil
}

// LoadOrGenerate loads path, falling back to a generated image when the file
// is missing or unreadable
func LoadOrGenerate(path string, fallback func() Image) Image {
	if path != "" {
		img, err := Load(path)
		if err == nil {
			fmt.Printf("Loaded texture %s (%dx%d)\n", path, img.Width, img.Height)
			return img
		}
		fmt.Printf("Warning: %v, using generated texture\n", err)
	}
	return fallback()
}
