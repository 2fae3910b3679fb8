package scene

import (
	"planetview/core"
	"planetview/rendering/pipeline"
)

// DefaultMaxLightSlots is the number of lights OpenGL 2.1 guarantees
const DefaultMaxLightSlots = 8

// BatchLights splits lights into consecutive groups of at most maxSlots,
// keeping input order. Light i of a group goes to slot i.
func BatchLights(lights []core.LightInfo, maxSlots int) [][]core.LightInfo {
	if maxSlots <= 0 || len(lights) == 0 {
		return nil
	}

	batches := make([][]core.LightInfo, 0, (len(lights)+maxSlots-1)/maxSlots)
	for start := 0; start < len(lights); start += maxSlots {
		end := start + maxSlots
		if end > len(lights) {
			end = len(lights)
		}
		batches = append(batches, lights[start:end])
	}
	return batches
}

// PassCount returns how many times the sphere is drawn for a frame with
// lightCount extra lights: one sun-lit base pass plus one per batch
func PassCount(lightCount, maxSlots int) int {
	if maxSlots <= 0 || lightCount <= 0 {
		return 1
	}
	return 1 + (lightCount+maxSlots-1)/maxSlots
}

// applyLight configures a slot's position and diffuse color
func applyLight(dev pipeline.Device, slot int, light core.LightInfo) {
	dev.SetLight(slot, light.Homogeneous(), light.Diffuse())
}

// assignBatch enables one slot per light in the batch and disables every
// other slot so no light from a previous batch stays on
func assignBatch(dev pipeline.Device, batch []core.LightInfo, slots int) {
	for slot := 0; slot < slots; slot++ {
		if slot < len(batch) {
			dev.EnableLight(slot)
			applyLight(dev, slot, batch[slot])
		} else {
			dev.DisableLight(slot)
		}
	}
}

// disableLights switches off every slot
func disableLights(dev pipeline.Device, slots int) {
	for slot := 0; slot < slots; slot++ {
		dev.DisableLight(slot)
	}
}
