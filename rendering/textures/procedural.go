package textures

import (
	"math"
	"math/rand"
)

// Starfield generates a black image with scattered stars of varying brightness
func Starfield(width, height, stars int, seed int64) Image {
	img := NewImage(width, height)
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < stars; i++ {
		x := rng.Intn(width)
		y := rng.Intn(height)
		brightness := 80 + rng.Intn(176)

		// Slight blue/red tint per star
		tint := rng.Float64()*0.3 - 0.15
		r := clampByte(float64(brightness) * (1 + tint))
		g := clampByte(float64(brightness))
		b := clampByte(float64(brightness) * (1 - tint))
		img.Set(x, y, r, g, b)
	}

	return img
}

// Planet generates an equirectangular planet map: oceans, land bands and
// polar caps. Column 0 is longitude -180°, the top row the north pole.
func Planet(width, height int) Image {
	img := NewImage(width, height)

	for y := 0; y < height; y++ {
		// bottom-up rows: y=0 is the south pole
		lat := (float64(y)+0.5)/float64(height)*math.Pi - math.Pi/2
		for x := 0; x < width; x++ {
			lon := (float64(x)+0.5)/float64(width)*2*math.Pi - math.Pi

			if math.Abs(lat) > 1.22 {
				img.Set(x, y, 235, 240, 245)
				continue
			}

			// Cheap continent mask from a few low frequency waves
			land := math.Sin(lon*2+1.3)*math.Cos(lat*3) +
				0.6*math.Sin(lon*5-lat*4) +
				0.3*math.Cos(lon*9+lat*7)
			if land > 0.45 {
				dry := 1 - math.Abs(lat)/1.22
				img.Set(x, y,
					clampByte(60+90*dry),
					clampByte(110+40*(1-dry)),
					clampByte(40+20*dry))
			} else {
				depth := 0.5 + 0.5*math.Cos(lat)
				img.Set(x, y, 10, clampByte(40+50*depth), clampByte(110+80*depth))
			}
		}
	}

	return img
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
