package core

import "math"

const (
	MinLatitudeSteps  = 2
	MinLongitudeSteps = 3
)

// SphereGeometry is a unit UV sphere stored as triangle strips.
// Strip k runs between latitude ring k and ring k+1.
type SphereGeometry struct {
	Strips        [][]SurfaceVertex
	VertsPerStrip int
}

// GenerateSphere tessellates a unit sphere centered at the origin into
// latitudeSteps rings of longitudeSteps vertices each.
// The first and last vertex of a ring share a position so the texture seam
// gets u=0 and u=1. Ring 0 is the north pole (v=1), the last ring the south pole (v=0).
func GenerateSphere(latitudeSteps, longitudeSteps int) *SphereGeometry {
	if latitudeSteps < MinLatitudeSteps {
		latitudeSteps = MinLatitudeSteps
	}
	if longitudeSteps < MinLongitudeSteps {
		longitudeSteps = MinLongitudeSteps
	}

	rings := make([][]SurfaceVertex, latitudeSteps)
	for ring := 0; ring < latitudeSteps; ring++ {
		latFraction := float64(ring) / float64(latitudeSteps-1)
		lat := math.Pi/2 - latFraction*math.Pi

		rings[ring] = make([]SurfaceVertex, longitudeSteps)
		for seg := 0; seg < longitudeSteps; seg++ {
			lonFraction := float64(seg) / float64(longitudeSteps-1)
			lon := lonFraction*2*math.Pi - math.Pi

			pos := GeographicToCartesian(Geographic{Lat: lat, Lon: lon}, 1)

			rings[ring][seg] = SurfaceVertex{
				Position: pos,
				// Normal (same as position for unit sphere)
				Normal: pos,
			}
			rings[ring][seg].TexCoord[0] = float32(lonFraction)
			rings[ring][seg].TexCoord[1] = float32(1 - latFraction)
		}
	}

	// Pair adjacent rings into strips: upper, lower, upper, lower...
	sphere := &SphereGeometry{
		Strips:        make([][]SurfaceVertex, latitudeSteps-1),
		VertsPerStrip: 2 * longitudeSteps,
	}
	for ring := 0; ring < latitudeSteps-1; ring++ {
		strip := make([]SurfaceVertex, 0, sphere.VertsPerStrip)
		for seg := 0; seg < longitudeSteps; seg++ {
			strip = append(strip, rings[ring][seg], rings[ring+1][seg])
		}
		sphere.Strips[ring] = strip
	}

	return sphere
}

// VertexCount returns the total number of vertices over all strips
func (s *SphereGeometry) VertexCount() int {
	return len(s.Strips) * s.VertsPerStrip
}
