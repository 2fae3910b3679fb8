package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Settings struct {
	Window     WindowSettings     `json:"window"`
	Camera     CameraSettings     `json:"camera"`
	Sphere     SphereSettings     `json:"sphere"`
	Lighting   LightingSettings   `json:"lighting"`
	Simulation SimulationSettings `json:"simulation"`
	Textures   TextureSettings    `json:"textures"`
	Control    ControlSettings    `json:"control"`
}

type WindowSettings struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Title     string `json:"title"`
	VSync     bool   `json:"vsync"`
	Wireframe bool   `json:"wireframe"`
}

type CameraSettings struct {
	FieldOfView  float32 `json:"fieldOfView"`
	Near         float32 `json:"near"`
	Far          float32 `json:"far"`
	Distance     float32 `json:"distance"`
	EclipticTilt float64 `json:"eclipticTilt"`
}

type SphereSettings struct {
	LatitudeSteps  int     `json:"latitudeSteps"`
	LongitudeSteps int     `json:"longitudeSteps"`
	Scale          float32 `json:"scale"`
}

type LightingSettings struct {
	MaxLightSlots int        `json:"maxLightSlots"`
	Ambient       [3]float32 `json:"ambient"`
	SunDirection  [3]float32 `json:"sunDirection"`
	SunColor      [3]float32 `json:"sunColor"`
	LightColor    [3]float32 `json:"lightColor"`
	LightAltitude float64    `json:"lightAltitude"`
}

type SimulationSettings struct {
	LightsPerSphere int     `json:"lightsPerSphere"`
	RotationSpeed   float64 `json:"rotationSpeed"` // degrees per second
}

type TextureSettings struct {
	Stars string `json:"stars"`
	Earth string `json:"earth"`
}

type ControlSettings struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

// Defaults returns the settings used when no file is present
func Defaults() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "Planet View",
			VSync:  true,
		},
		Camera: CameraSettings{
			FieldOfView:  5,
			Near:         11,
			Far:          100,
			Distance:     33,
			EclipticTilt: -23,
		},
		Sphere: SphereSettings{
			LatitudeSteps:  33,
			LongitudeSteps: 65,
			Scale:          1,
		},
		Lighting: LightingSettings{
			MaxLightSlots: 8,
			Ambient:       [3]float32{0.1, 0.1, 0.1},
			SunDirection:  [3]float32{1, 0.2, 0.6},
			SunColor:      [3]float32{1, 0.97, 0.9},
			LightColor:    [3]float32{0.06, 0.045, 0.02},
			LightAltitude: 0.02,
		},
		Simulation: SimulationSettings{
			LightsPerSphere: 10,
			RotationSpeed:   10,
		},
		Textures: TextureSettings{
			Stars: "assets/stars.png",
			Earth: "assets/earth.jpg",
		},
		Control: ControlSettings{
			Enabled: true,
			Addr:    "localhost:8080",
		},
	}
}

// Load reads settings from path on top of the defaults.
// A missing file is not an error.
func Load(path string) (Settings, error) {
	settings := Defaults()

	// Try to load from file
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("No %s found, using defaults\n", path)
			return settings, nil
		}
		return settings, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		return settings, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid %s: %w", path, err)
	}

	fmt.Printf("Loaded settings: sphere %dx%d, %d lights in batches of %d\n",
		settings.Sphere.LatitudeSteps, settings.Sphere.LongitudeSteps,
		settings.Simulation.LightsPerSphere, settings.Lighting.MaxLightSlots)

	return settings, nil
}

// Validate checks values the renderer cannot work with
func (s Settings) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d", s.Window.Width, s.Window.Height)
	case s.Camera.FieldOfView <= 0 || s.Camera.FieldOfView >= 180:
		return fmt.Errorf("field of view %v", s.Camera.FieldOfView)
	case s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near:
		return fmt.Errorf("clip planes near=%v far=%v", s.Camera.Near, s.Camera.Far)
	case s.Sphere.LatitudeSteps < 2 || s.Sphere.LongitudeSteps < 3:
		return fmt.Errorf("sphere tessellation %dx%d", s.Sphere.LatitudeSteps, s.Sphere.LongitudeSteps)
	case s.Sphere.Scale <= 0:
		return fmt.Errorf("sphere scale %v", s.Sphere.Scale)
	case s.Lighting.MaxLightSlots <= 0:
		return fmt.Errorf("max light slots %d", s.Lighting.MaxLightSlots)
	case s.Simulation.LightsPerSphere < 0:
		return fmt.Errorf("lights per sphere %d", s.Simulation.LightsPerSphere)
	}
	return nil
}
