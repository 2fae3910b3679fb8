package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Geographic represents a position in geographic coordinates
type Geographic struct {
	Lat float64 // Latitude in radians [-π/2, π/2], positive = north
	Lon float64 // Longitude in radians [-π, π], positive = east
	Alt float64 // Altitude above reference radius
}

// DegreesToRadians converts degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// RadiansToDegrees converts radians to degrees
func RadiansToDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// GeographicToCartesian converts geographic coordinates to Cartesian.
// Origin at planet center, Y points to the north pole, X to 0° longitude
// and -Z to 90°E, so east runs counter-clockwise seen from above the north pole.
func GeographicToCartesian(g Geographic, radius float64) mgl32.Vec3 {
	r := radius + g.Alt
	cosLat := math.Cos(g.Lat)

	return mgl32.Vec3{
		float32(r * cosLat * math.Cos(g.Lon)),
		float32(r * math.Sin(g.Lat)),
		float32(-r * cosLat * math.Sin(g.Lon)),
	}
}

// CartesianToGeographic converts Cartesian coordinates to geographic
func CartesianToGeographic(c mgl32.Vec3, radius float64) Geographic {
	x, y, z := float64(c[0]), float64(c[1]), float64(c[2])
	r := math.Sqrt(x*x + y*y + z*z)

	// Handle special case of origin
	if r < 1e-10 {
		return Geographic{Lat: 0, Lon: 0, Alt: -radius}
	}

	return Geographic{
		Lat: math.Asin(y / r),
		Lon: math.Atan2(-z, x),
		Alt: r - radius,
	}
}

// NormalizeCoordinates wraps longitude into [-π, π] and clamps latitude
func NormalizeCoordinates(g Geographic) Geographic {
	for g.Lon > math.Pi {
		g.Lon -= 2 * math.Pi
	}
	for g.Lon < -math.Pi {
		g.Lon += 2 * math.Pi
	}

	if g.Lat > math.Pi/2 {
		g.Lat = math.Pi / 2
	}
	if g.Lat < -math.Pi/2 {
		g.Lat = -math.Pi / 2
	}

	return g
}
