package simulation

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"planetview/core"
)

// Settings controls the earth simulation
type Settings struct {
	RotationSpeed   float64    // degrees per second
	SunDirection    mgl32.Vec3 // direction towards the sun, world space
	SunColor        mgl32.Vec3
	LightsPerSphere int
	LightColor      mgl32.Vec3
	LightAltitude   float64 // above the unit sphere
}

// DefaultSettings returns a slowly spinning planet with ten surface lights
func DefaultSettings() Settings {
	return Settings{
		RotationSpeed:   10,
		SunDirection:    mgl32.Vec3{1, 0.2, 0.6},
		SunColor:        mgl32.Vec3{1, 0.97, 0.9},
		LightsPerSphere: 10,
		LightColor:      mgl32.Vec3{0.06, 0.045, 0.02},
		LightAltitude:   0.02,
	}
}

// city is a named surface light site in degrees
type city struct {
	name     string
	lat, lon float64
}

var cities = []city{
	{"Tokyo", 35.7, 139.7},
	{"Delhi", 28.6, 77.2},
	{"Shanghai", 31.2, 121.5},
	{"Sao Paulo", -23.5, -46.6},
	{"Mexico City", 19.4, -99.1},
	{"Cairo", 30.0, 31.2},
	{"Mumbai", 19.1, 72.9},
	{"New York", 40.7, -74.0},
	{"Lagos", 6.5, 3.4},
	{"London", 51.5, -0.1},
	{"Moscow", 55.8, 37.6},
	{"Jakarta", -6.2, 106.8},
	{"Los Angeles", 34.1, -118.2},
	{"Buenos Aires", -34.6, -58.4},
	{"Sydney", -33.9, 151.2},
	{"Johannesburg", -26.2, 28.0},
}

// EarthSimulation produces the light set and rotation the renderer consumes
type EarthSimulation struct {
	sun    core.LightInfo
	lights []core.LightInfo
	angle  float64
	speed  float64
	time   time.Duration

	SpeedMultiplier float64
	Paused          bool
}

// NewEarthSimulation places LightsPerSphere lights on the surface: known
// cities first, then an even spiral for any remaining lights
func NewEarthSimulation(settings Settings) *EarthSimulation {
	sim := &EarthSimulation{
		sun: core.LightInfo{
			Position:    settings.SunDirection.Normalize(),
			Color:       settings.SunColor,
			Directional: true,
		},
		speed:           settings.RotationSpeed,
		SpeedMultiplier: 1,
	}

	radius := 1 + settings.LightAltitude
	for i := 0; i < settings.LightsPerSphere; i++ {
		var g core.Geographic
		if i < len(cities) {
			g = core.Geographic{
				Lat: core.DegreesToRadians(cities[i].lat),
				Lon: core.DegreesToRadians(cities[i].lon),
			}
		} else {
			g = spiralPoint(i-len(cities), settings.LightsPerSphere-len(cities))
		}

		sim.lights = append(sim.lights, core.LightInfo{
			Position: core.GeographicToCartesian(g, radius),
			Color:    settings.LightColor,
		})
	}

	return sim
}

// spiralPoint returns point i of n on a golden-angle spiral
func spiralPoint(i, n int) core.Geographic {
	goldenAngle := math.Pi * (3 - math.Sqrt(5))
	y := 1 - (float64(i)+0.5)/float64(n)*2

	return core.NormalizeCoordinates(core.Geographic{
		Lat: math.Asin(y),
		Lon: float64(i) * goldenAngle,
	})
}

// Step advances the planet rotation by dt
func (s *EarthSimulation) Step(dt time.Duration) {
	if s.Paused {
		return
	}
	s.time += dt
	s.angle = math.Mod(s.angle+s.speed*s.SpeedMultiplier*dt.Seconds(), 360)
	if s.angle < 0 {
		s.angle += 360
	}
}

// SunLight returns the directional sun light
func (s *EarthSimulation) SunLight() core.LightInfo {
	return s.sun
}

// Lights returns the surface lights
func (s *EarthSimulation) Lights() []core.LightInfo {
	return s.lights
}

// SphereRotationAngle returns the current rotation in degrees
func (s *EarthSimulation) SphereRotationAngle() float64 {
	return s.angle
}

// Elapsed returns simulated time
func (s *EarthSimulation) Elapsed() time.Duration {
	return s.time
}

// CityName returns the site name of light i, or "" for spiral lights
func CityName(i int) string {
	if i >= 0 && i < len(cities) {
		return cities[i].name
	}
	return ""
}
