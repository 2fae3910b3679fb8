package main

import (
	"flag"
	"fmt"
	"log"

	"planetview/config"
	"planetview/core"
	"planetview/rendering/scene"
	"planetview/simulation"
)

// lightmap prints where the surface lights sit and how they are split into
// render passes for a settings file
func main() {
	configPath := flag.String("config", "settings.json", "Settings file")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	fmt.Println("=== Light Map ===")

	sphere := core.GenerateSphere(settings.Sphere.LatitudeSteps, settings.Sphere.LongitudeSteps)
	fmt.Printf("Sphere: %d strips x %d vertices = %d vertices\n",
		len(sphere.Strips), sphere.VertsPerStrip, sphere.VertexCount())

	sim := simulation.NewEarthSimulation(simulation.Settings{
		SunDirection:    settings.Lighting.SunDirection,
		SunColor:        settings.Lighting.SunColor,
		LightsPerSphere: settings.Simulation.LightsPerSphere,
		LightColor:      settings.Lighting.LightColor,
		LightAltitude:   settings.Lighting.LightAltitude,
	})

	sun := sim.SunLight()
	fmt.Printf("Sun direction: (%.3f, %.3f, %.3f)\n\n", sun.Position[0], sun.Position[1], sun.Position[2])

	slots := settings.Lighting.MaxLightSlots
	for pass, batch := range scene.BatchLights(sim.Lights(), slots) {
		fmt.Printf("Pass %d:\n", pass+1)
		for slot, light := range batch {
			index := pass*slots + slot
			geo := core.CartesianToGeographic(light.Position, 1)
			name := simulation.CityName(index)
			if name == "" {
				name = "spiral"
			}
			fmt.Printf("  slot %d: light %-3d %-14s %7.2f°, %8.2f°  X=%6.3f Y=%6.3f Z=%6.3f\n",
				slot, index, name,
				core.RadiansToDegrees(geo.Lat), core.RadiansToDegrees(geo.Lon),
				light.Position[0], light.Position[1], light.Position[2])
		}
	}

	fmt.Printf("\nSphere draws per frame: %d\n", scene.PassCount(len(sim.Lights()), slots))
}
