package main

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"planetview/config"
	"planetview/control"
	"planetview/rendering/scene"
	"planetview/simulation"
)

// frameCounter reports frames per second once per second
type frameCounter struct {
	frames      int
	sinceReport int
	lastReport  time.Time
}

func newFrameCounter() *frameCounter {
	return &frameCounter{lastReport: time.Now()}
}

func (c *frameCounter) tick(now time.Time) (float64, bool) {
	c.frames++
	c.sinceReport++

	elapsed := now.Sub(c.lastReport).Seconds()
	if elapsed < 1.0 {
		return 0, false
	}

	fps := float64(c.sinceReport) / elapsed
	c.sinceReport = 0
	c.lastReport = now
	return fps, true
}

func frameStatus(frame int, fps float64, sim *simulation.EarthSimulation, renderer *scene.SceneRenderer, controls *control.Server) control.Status {
	return control.Status{
		Frame:       frame,
		FPS:         fps,
		Wireframe:   controls.Wireframe(),
		Lights:      len(sim.Lights()),
		SphereDraws: scene.PassCount(len(sim.Lights()), renderer.LightSlots()),
		Rotation:    sim.SphereRotationAngle(),
	}
}

func sceneOptions(s config.Settings) scene.Options {
	opts := scene.DefaultOptions()
	opts.FieldOfView = s.Camera.FieldOfView
	opts.Near = s.Camera.Near
	opts.Far = s.Camera.Far
	opts.CameraDistance = s.Camera.Distance
	opts.EclipticTilt = s.Camera.EclipticTilt
	opts.Ambient = mgl32.Vec3(s.Lighting.Ambient)
	opts.LatitudeSteps = s.Sphere.LatitudeSteps
	opts.LongitudeSteps = s.Sphere.LongitudeSteps
	opts.SphereScale = s.Sphere.Scale
	opts.MaxLightSlots = s.Lighting.MaxLightSlots
	return opts
}

func simulationSettings(s config.Settings) simulation.Settings {
	return simulation.Settings{
		RotationSpeed:   s.Simulation.RotationSpeed,
		SunDirection:    mgl32.Vec3(s.Lighting.SunDirection),
		SunColor:        mgl32.Vec3(s.Lighting.SunColor),
		LightsPerSphere: s.Simulation.LightsPerSphere,
		LightColor:      mgl32.Vec3(s.Lighting.LightColor),
		LightAltitude:   s.Lighting.LightAltitude,
	}
}
