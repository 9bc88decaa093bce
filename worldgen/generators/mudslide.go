// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import (
	"github.com/jice-nospam/wgen/heightmap"
)

// MudSlideParams configures the MudSlide slope relaxation generator.
type MudSlideParams struct {
	// Iterations is the number of relaxation passes.
	Iterations int `json:"iterations"`
	// MaxErosionAlt disables the slide above this altitude, preserving peaks.
	MaxErosionAlt float32 `json:"maxErosionAlt"`
	// Strength is the fraction of the height difference moved per pass.
	Strength float32 `json:"strength"`
	// WaterLevel disables the slide below the water plane.
	WaterLevel float32 `json:"waterLevel"`
}

// DefaultMudSlideParams returns the standard sediment creep configuration.
func DefaultMudSlideParams() MudSlideParams {
	return MudSlideParams{
		Iterations:    5,
		MaxErosionAlt: 0.9,
		Strength:      0.4,
		WaterLevel:    0.12,
	}
}

// MudSlide relaxes slopes by moving each cell toward the average of its
// strictly lower neighbours, approximating sediment creep. Every pass reads
// the previous field and writes a fresh one, so a move can only reduce the
// local slope and no oscillation builds up.
func MudSlide(src *heightmap.Field, p MudSlideParams) *heightmap.Field {
	out := src.Clone()
	for i := 0; i < p.Iterations; i++ {
		out = slide(out, p)
	}
	return out
}

func slide(src *heightmap.Field, p MudSlideParams) *heightmap.Field {
	w, hgt := src.Width(), src.Height()
	sandCoef := float32(1)
	if p.WaterLevel < 1 {
		sandCoef = 1 / (1 - p.WaterLevel)
	}
	in := src.Values()
	out := heightmap.New(w, hgt, 0)
	dst := out.Values()
	for y := 0; y < hgt; y++ {
		yoff := y * w
		for x := 0; x < w; x++ {
			h := in[x+yoff]
			if h < p.WaterLevel-0.01 || h >= p.MaxErosionAlt {
				dst[x+yoff] = h
				continue
			}
			var sumDiag, sumOrtho float32
			nbDiag := float32(1)
			nbOrtho := float32(1)
			for i := 1; i < 9; i++ {
				ix := x + dirX[i]
				iy := y + dirY[i]
				if ix < 0 || ix >= w || iy < 0 || iy >= hgt {
					continue
				}
				ih := in[ix+iy*w]
				if ih < h {
					if i == 1 || i == 3 || i == 6 || i == 8 {
						sumDiag += (ih - h) * 0.4
						nbDiag++
					} else {
						sumOrtho += (ih - h) * 1.6
						nbOrtho++
					}
				}
			}
			// average height difference with lower neighbours
			dh := sumDiag/nbDiag + sumOrtho/nbOrtho
			dh *= p.Strength
			hcoef := (h - p.WaterLevel) * sandCoef
			// less smoothing at high altitudes
			dh *= 1 - hcoef*hcoef*hcoef
			dst[x+yoff] = h + dh
		}
	}
	return out
}
