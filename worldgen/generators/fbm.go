// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import (
	"context"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/jice-nospam/wgen/heightmap"
)

// NoiseBasis selects the coherent noise function summed by Fbm.
type NoiseBasis string

const (
	// BasisPerlin uses classic gradient noise (the default).
	BasisPerlin NoiseBasis = "perlin"
	// BasisSimplex uses OpenSimplex noise for fewer axis-aligned artifacts.
	BasisSimplex NoiseBasis = "simplex"
)

// FbmParams configures the fractal Brownian motion generator.
type FbmParams struct {
	// MulX, MulY scale the noise space along each axis.
	MulX float32 `json:"mulx"`
	MulY float32 `json:"muly"`
	// AddX, AddY offset the noise space, panning across the infinite plane.
	AddX float32 `json:"addx"`
	AddY float32 `json:"addy"`
	// Octaves is the number of noise layers summed per cell.
	Octaves int `json:"octaves"`
	// Persistence divides the amplitude at each octave.
	Persistence float32 `json:"persistence"`
	// Lacunarity multiplies the frequency at each octave.
	Lacunarity float32 `json:"lacunarity"`
	// Delta is added to every cell, Scale multiplies the noise value.
	Delta float32 `json:"delta"`
	Scale float32 `json:"scale"`
	// Basis picks the underlying noise function. Empty means perlin.
	Basis NoiseBasis `json:"basis,omitempty"`
}

// DefaultFbmParams returns the standard fractal noise configuration.
func DefaultFbmParams() FbmParams {
	return FbmParams{
		MulX:        2.2,
		MulY:        2.2,
		Octaves:     6,
		Persistence: 2,
		Lacunarity:  2,
		Scale:       2.05,
		Basis:       BasisPerlin,
	}
}

// Fbm sums octaves of coherent noise and adds them to the field.
// Cells are independent, so rows are filled by parallel workers; the noise
// sources are read-only after construction and safe to share.
func Fbm(ctx context.Context, src *heightmap.Field, p FbmParams, seed int64) (*heightmap.Field, error) {
	w, h := src.Width(), src.Height()
	octaves := maxInt(p.Octaves, 1)
	persistence := float64(p.Persistence)
	if persistence == 0 {
		persistence = 2
	}
	lacunarity := float64(p.Lacunarity)
	if lacunarity == 0 {
		lacunarity = 2
	}

	var sample func(x, y float64) float64
	switch p.Basis {
	case BasisSimplex:
		noise := opensimplex.New(seed)
		sample = func(x, y float64) float64 {
			sum := 0.0
			scale := 1.0
			freq := 1.0
			for o := 0; o < octaves; o++ {
				sum += noise.Eval2(x*freq, y*freq) / scale
				scale *= persistence
				freq *= lacunarity
			}
			return sum
		}
	default:
		noise := perlin.NewPerlin(persistence, lacunarity, octaves, seed)
		sample = noise.Noise2D
	}

	xcoef := p.MulX / 400
	ycoef := p.MulY / 400
	out := src.Clone()
	values := out.Values()
	err := forEachRowChunk(ctx, h, func(y0, y1 int) error {
		for y := y0; y < y1; y++ {
			fy := float64((float32(y)*512/float32(h) + p.AddY) * ycoef)
			row := y * w
			for x := 0; x < w; x++ {
				fx := float64((float32(x)*512/float32(w) + p.AddX) * xcoef)
				values[row+x] += p.Delta + float32(sample(fx, fy))*p.Scale
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
