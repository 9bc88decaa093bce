// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/jice-nospam/wgen/heightmap"
)

// Droplet-based hydraulic erosion, adapted from
// https://www.firespark.de/resources/downloads/implementation%20of%20a%20methode%20for%20hydraulic%20erosion.pdf

// maxPathLength bounds a drop's walk so flat or cyclic terrain cannot loop
// forever.
const maxPathLength = 40

// WaterErosionParams configures the WaterErosion generator.
type WaterErosionParams struct {
	// DropAmount scales the number of simulated drops (1.0 = two per row
	// of cells).
	DropAmount float32 `json:"dropAmount"`
	// ErosionStrength is the fraction of spare capacity eroded per move.
	ErosionStrength float32 `json:"erosionStrength"`
	// Evaporation shrinks the drop's water at each move.
	Evaporation float32 `json:"evaporation"`
	// Capacity is the sediment a full-size drop can carry.
	Capacity float32 `json:"capacity"`
	// MinSlope keeps some carrying capacity on near-flat terrain.
	MinSlope float32 `json:"minSlope"`
	// Deposition is the fraction of excess sediment dropped per move.
	Deposition float32 `json:"deposition"`
	// Inertia blends the previous direction into the new one. Higher values
	// give smoother carving.
	Inertia float32 `json:"inertia"`
}

// DefaultWaterErosionParams returns the standard hydraulic erosion
// configuration.
func DefaultWaterErosionParams() WaterErosionParams {
	return WaterErosionParams{
		DropAmount:      0.5,
		ErosionStrength: 0.1,
		Evaporation:     0.05,
		Capacity:        8,
		MinSlope:        0.05,
		Deposition:      0.1,
		Inertia:         0.4,
	}
}

type drop struct {
	pos      vec2
	dir      vec2
	water    float32
	capacity float32
	sediment float32
}

// WaterErosion simulates discrete raindrops carving the field. Each drop
// walks downhill along the inertia-blended gradient, erodes while it has
// spare capacity and deposits the excess, until it evaporates, leaves the
// field or exceeds the path cap. All deltas accumulate on a working copy;
// the input field is never touched, and cells no drop visits keep their
// exact value.
func WaterErosion(src *heightmap.Field, p WaterErosionParams, seed int64) *heightmap.Field {
	out := src.Clone()
	w, h := out.Width(), out.Height()
	if w < 2 || h < 2 {
		return out
	}
	values := out.Values()
	rng := rand.New(rand.NewSource(seed))

	// maximum drop count is 2 per cell
	dropRows := int(float32(h*2) * p.DropAmount)
	for i := 0; i < dropRows; i++ {
		for j := 0; j < w; j++ {
			simulateDrop(values, w, h, p, rng)
		}
	}
	return out
}

func simulateDrop(values []float32, w, h int, p WaterErosionParams, rng *rand.Rand) {
	d := drop{
		pos: vec2{
			X: float32(rng.Intn(w - 1)),
			Y: float32(rng.Intn(h - 1)),
		},
		water:    1,
		capacity: p.Capacity,
	}
	off := int(d.pos.X) + int(d.pos.Y)*w

	for count := 0; count < maxPathLength; count++ {
		oldh := values[off]
		oldOff := off

		// gradient from the cell's 2x2 neighbourhood
		h00 := oldh
		h10 := values[off+1]
		h01 := values[off+w]
		h11 := values[off+1+w]
		grad := vec2{
			X: h00 + h01 - h10 - h11,
			Y: h00 + h10 - h01 - h11,
		}
		d.dir = grad.AddScaled(d.dir.Add(grad.Mul(-1)), p.Inertia)
		if dirLen := d.dir.Length(); dirLen < 1e-7 {
			// almost flat terrain, pick a random direction
			angle := rng.Float32() * 2 * math32.Pi
			d.dir = vec2{X: math32.Cos(angle), Y: math32.Sin(angle)}
		} else {
			d.dir = d.dir.Mul(1 / dirLen)
		}

		d.pos = d.pos.Add(d.dir)
		ix := int(d.pos.X)
		iy := int(d.pos.Y)
		if ix < 0 || ix >= w-1 || iy < 0 || iy >= h-1 {
			// out of the map
			return
		}
		off = ix + iy*w

		// interpolate height at the new position
		u := d.pos.X - math32.Floor(d.pos.X)
		v := d.pos.Y - math32.Floor(d.pos.Y)
		newh := (values[off]*(1-u)+values[off+1]*u)*(1-v) +
			(values[off+w]*(1-u)+values[off+1+w]*u)*v

		hdif := newh - oldh
		// the bilinear sample can land a few ULPs below oldh on flat
		// terrain; treat that as level ground, not a downhill move
		if hdif >= -1e-7 {
			// going uphill: deposit sediment at the old position
			deposit := minf(d.sediment, hdif+0.001)
			values[oldOff] += deposit
			d.sediment -= deposit
			if d.sediment <= 0 {
				return
			}
		}

		d.capacity = -minf(p.MinSlope, hdif) * d.water * p.Capacity
		if d.sediment > d.capacity {
			// too much sediment in the drop, deposit
			deposit := (d.sediment - d.capacity) * p.Deposition
			values[off] += deposit
			d.sediment -= deposit
		} else {
			// erode
			amount := minf((d.capacity-d.sediment)*p.ErosionStrength, -hdif)
			values[off] = maxf(values[off]-amount, 0)
			d.sediment += amount
		}
		d.water *= 1 - p.Evaporation
	}
}
