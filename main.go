package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"planetview/config"
	"planetview/control"
	"planetview/rendering/opengl"
	"planetview/rendering/pipeline"
	"planetview/rendering/scene"
	"planetview/rendering/textures"
	"planetview/simulation"
)

func main() {
	runtime.LockOSThread()

	// Parse command line flags
	var (
		configPath = flag.String("config", "settings.json", "Settings file")
		headless   = flag.Bool("headless", false, "Render into an in-memory recorder instead of a window")
		frames     = flag.Int("frames", 0, "Stop after this many frames (0 = until the window closes)")
		width      = flag.Int("width", 0, "Window width (overrides settings)")
		height     = flag.Int("height", 0, "Window height (overrides settings)")
		wireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if *width > 0 {
		settings.Window.Width = *width
	}
	if *height > 0 {
		settings.Window.Height = *height
	}
	if *wireframe {
		settings.Window.Wireframe = true
	}

	fmt.Println("=== Planet View ===")
	fmt.Printf("Window: %dx%d\n", settings.Window.Width, settings.Window.Height)
	fmt.Printf("Sphere: %d x %d\n", settings.Sphere.LatitudeSteps, settings.Sphere.LongitudeSteps)
	fmt.Printf("Lights: %d (batches of %d)\n", settings.Simulation.LightsPerSphere, settings.Lighting.MaxLightSlots)

	sim := simulation.NewEarthSimulation(simulationSettings(settings))

	stars := textures.LoadOrGenerate(settings.Textures.Stars, func() textures.Image {
		return textures.Starfield(2048, 1024, 3000, 1)
	})
	earth := textures.LoadOrGenerate(settings.Textures.Earth, func() textures.Image {
		return textures.Planet(1024, 512)
	})

	controls := control.NewServer(settings.Window.Wireframe)

	if *headless {
		runHeadless(settings, sim, controls, stars, earth, *frames)
		return
	}

	if settings.Control.Enabled {
		if err := controls.Start(settings.Control.Addr); err != nil {
			fmt.Printf("Warning: %v\n", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			controls.Close(ctx)
		}()
	}

	window, err := opengl.NewWindow(settings.Window.Width, settings.Window.Height, settings.Window.Title, settings.Window.VSync)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer window.Terminate()

	// Nothing can render without the GL function table
	device, err := opengl.NewDevice()
	if err != nil {
		log.Fatalf("Failed to load OpenGL: %v", err)
	}

	renderer, err := scene.NewSceneRenderer(device, stars, earth, sceneOptions(settings))
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Terminate()

	renderer.Resize(window.FramebufferSize())
	window.OnResize = renderer.Resize
	window.OnToggleWireframe = func() {
		fmt.Printf("WIREFRAME: %v\n", controls.ToggleWireframe())
	}

	fmt.Println("\nControls:")
	fmt.Println("  W: Toggle wireframe")
	fmt.Println("  ESC: Exit")
	if settings.Control.Enabled {
		fmt.Printf("  ws://%s/ws: remote control\n", settings.Control.Addr)
	}
	fmt.Println("\nStarting render loop...")

	counter := newFrameCounter()
	lastTime := time.Now()

	// Main loop
	for !window.ShouldClose() {
		window.PollEvents()

		// Calculate delta time
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		sim.SpeedMultiplier = controls.SpeedMultiplier()
		sim.Paused = controls.Paused()
		sim.Step(dt)

		renderer.Render(sim, scene.RenderOptions{Wireframe: controls.Wireframe()})
		if err := device.Error(); err != nil {
			fmt.Printf("%v in frame %d\n", err, counter.frames)
		}
		window.SwapBuffers()

		if fps, ok := counter.tick(now); ok {
			fmt.Printf("\rFPS: %.1f | Rotation: %.1f°", fps, sim.SphereRotationAngle())
			controls.Publish(frameStatus(counter.frames, fps, sim, renderer, controls))
		}

		if *frames > 0 && counter.frames >= *frames {
			break
		}
	}

	fmt.Println("\nShutting down...")
}

// runHeadless drives the renderer against a Recorder and reports what a
// frame submits to the pipeline
func runHeadless(settings config.Settings, sim *simulation.EarthSimulation, controls *control.Server, stars, earth textures.Image, frames int) {
	if frames <= 0 {
		frames = 60
	}

	recorder := pipeline.NewRecorder(int32(settings.Window.Width), int32(settings.Window.Height), settings.Lighting.MaxLightSlots)
	renderer, err := scene.NewSceneRenderer(recorder, stars, earth, sceneOptions(settings))
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer renderer.Terminate()

	const step = time.Second / 60
	start := time.Now()
	for frame := 1; frame <= frames; frame++ {
		recorder.Reset()
		sim.Step(step)
		renderer.Render(sim, scene.RenderOptions{Wireframe: controls.Wireframe()})
	}
	elapsed := time.Since(start)

	stats := recorder.Stats
	fmt.Printf("Rendered %d frames in %v\n", stats.Frames, elapsed)
	fmt.Printf("Per frame: %d list calls, %d strips, %d vertices\n",
		stats.ListCalls/stats.Frames, stats.Strips/stats.Frames, stats.Vertices/stats.Frames)
	fmt.Printf("Sphere passes per frame: %d\n", scene.PassCount(len(sim.Lights()), renderer.LightSlots()))
	fmt.Printf("Final rotation: %.2f°\n", sim.SphereRotationAngle())
}
