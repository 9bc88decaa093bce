// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import (
	"math/rand"

	"github.com/jice-nospam/wgen/heightmap"
)

// MidPointParams configures the midpoint displacement generator.
type MidPointParams struct {
	// Roughness is the amplitude of the random offset at the first
	// subdivision level. It halves at each level.
	Roughness float32 `json:"roughness"`
}

// DefaultMidPointParams returns the standard midpoint configuration.
func DefaultMidPointParams() MidPointParams {
	return MidPointParams{Roughness: 0.7}
}

// MidPoint runs diamond-square displacement on a power-of-two-plus-one
// working grid and resamples the result to the field's size. The input
// contributes nothing: this generator replaces rather than adds, so masking
// it blends against the previous step.
func MidPoint(src *heightmap.Field, p MidPointParams, seed int64) *heightmap.Field {
	w, h := src.Width(), src.Height()
	ws := workingSize(maxInt(w, h))

	rng := rand.New(rand.NewSource(seed))
	work := heightmap.New(ws, ws, 0)
	v := work.Values()
	v[0] = rng.Float32()
	v[ws-1] = rng.Float32()
	v[(ws-1)*ws] = rng.Float32()
	v[ws*ws-1] = rng.Float32()

	rough := p.Roughness
	for step := ws - 1; step > 1; step /= 2 {
		half := step / 2
		for y := half; y < ws; y += step {
			for x := half; x < ws; x += step {
				squareStep(v, rng, ws, x, y, half, rough)
			}
		}
		for y := 0; y < ws; y += half {
			for x := (y + half) % step; x < ws; x += step {
				diamondStep(v, rng, ws, x, y, half, rough)
			}
		}
		rough *= 0.5
	}

	return work.Resize(w, h)
}

// workingSize returns the smallest 2^n+1 grid side that covers size.
func workingSize(size int) int {
	ws := 3
	for ws < size {
		ws = (ws-1)*2 + 1
	}
	return ws
}

// squareStep sets the center of a square to the average of its four corners
// plus a random offset.
func squareStep(v []float32, rng *rand.Rand, ws, x, y, reach int, rough float32) {
	avg := v[x-reach+(y-reach)*ws]
	avg += v[x+reach+(y-reach)*ws]
	avg += v[x-reach+(y+reach)*ws]
	avg += v[x+reach+(y+reach)*ws]
	avg *= 0.25
	v[x+y*ws] = avg + rng.Float32()*2*rough - rough
}

// diamondStep sets the center of a diamond to the average of its edge
// neighbours. Diamonds on the grid border only have three.
func diamondStep(v []float32, rng *rand.Rand, ws, x, y, reach int, rough float32) {
	var avg float32
	var count float32
	if x >= reach {
		avg += v[x-reach+y*ws]
		count++
	}
	if x+reach < ws {
		avg += v[x+reach+y*ws]
		count++
	}
	if y >= reach {
		avg += v[x+(y-reach)*ws]
		count++
	}
	if y+reach < ws {
		avg += v[x+(y+reach)*ws]
		count++
	}
	avg /= count
	v[x+y*ws] = avg + rng.Float32()*2*rough - rough
}
