// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import (
	"github.com/jice-nospam/wgen/heightmap"
)

// IslandParams configures the Island border falloff generator.
type IslandParams struct {
	// CoastRange is the width of the falloff band, in percent of the
	// field size per border.
	CoastRange float32 `json:"coastRange"`
}

// DefaultIslandParams returns the standard island configuration.
func DefaultIslandParams() IslandParams {
	return IslandParams{CoastRange: 50}
}

// Island pulls elevation linearly toward the field minimum near each border
// so the land mass never touches the map edge. The falloff is rectangular:
// each axis fades independently over CoastRange percent of its extent.
func Island(src *heightmap.Field, p IslandParams) *heightmap.Field {
	out := src.Clone()
	w, h := out.Width(), out.Height()
	coastH := float32(w) * p.CoastRange / 100
	coastV := float32(h) * p.CoastRange / 100
	min, _ := out.MinMax()
	values := out.Values()

	for x := 0; x < w; x++ {
		for y := 0; y < int(coastV); y++ {
			coef := float32(y) / coastV
			top := x + y*w
			bottom := x + (h-1-y)*w
			values[top] = (values[top]-min)*coef + min
			values[bottom] = (values[bottom]-min)*coef + min
		}
	}
	for y := 0; y < h; y++ {
		yoff := y * w
		for x := 0; x < int(coastH); x++ {
			coef := float32(x) / coastH
			left := x + yoff
			right := w - 1 - x + yoff
			values[left] = (values[left]-min)*coef + min
			values[right] = (values[right]-min)*coef + min
		}
	}
	return out
}
