// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import (
	"github.com/chewxy/math32"

	"github.com/jice-nospam/wgen/heightmap"
)

// LandMassParams configures the LandMass generator.
type LandMassParams struct {
	// LandProportion is the target fraction of cells above water, in [0, 1].
	LandProportion float32 `json:"landProportion"`
	// WaterLevel is the elevation the water plane maps to.
	WaterLevel float32 `json:"waterLevel"`
	// PlainFactor is the exponent of the shaping curve above water level.
	// Higher values flatten plains and sharpen peaks.
	PlainFactor float32 `json:"plainFactor"`
	// ShoreHeight lowers underwater cells to steepen the coastline.
	ShoreHeight float32 `json:"shoreHeight"`
}

// DefaultLandMassParams returns the standard land/water balance.
func DefaultLandMassParams() LandMassParams {
	return LandMassParams{
		LandProportion: 0.6,
		WaterLevel:     0.12,
		PlainFactor:    2.5,
		ShoreHeight:    0.05,
	}
}

// LandMass shifts the field so the requested fraction of cells ends up above
// the water level, then applies a power curve above water to bias the
// distribution toward flat plains with occasional peaks. The threshold comes
// from a histogram of the observed value distribution, so the input need not
// be normalized beforehand.
func LandMass(src *heightmap.Field, p LandMassParams) *heightmap.Field {
	out := src.Normalize(0, 1)
	values := out.Values()

	var histogram [256]int
	for _, h := range values {
		histogram[minInt(int(h*255), 255)]++
	}

	// walk the histogram until the target water cell count is reached
	targetWaterCells := float32(len(values)) * (1 - p.LandProportion)
	bucket := 0
	waterCells := float32(0)
	for bucket < 256 && waterCells < targetWaterCells {
		waterCells += float32(histogram[bucket])
		bucket++
	}
	observedLevel := float32(bucket) / 255

	var landCoef, waterCoef float32
	if observedLevel < 1 {
		landCoef = (1 - p.WaterLevel) / (1 - observedLevel)
	}
	if observedLevel > 0 {
		waterCoef = p.WaterLevel / observedLevel
	}

	// raise/lower so the observed level lands on the requested water level
	for i, h := range values {
		if h > observedLevel {
			values[i] = p.WaterLevel + (h-observedLevel)*landCoef
		} else {
			values[i] = h*waterCoef - p.ShoreHeight
		}
	}

	// fix the plain/mountain ratio above sea level
	if p.WaterLevel < 1 {
		span := 1 - p.WaterLevel
		for i, h := range values {
			if h >= p.WaterLevel {
				coef := math32.Pow((h-p.WaterLevel)/span, p.PlainFactor)
				values[i] = p.WaterLevel + coef*span
			}
		}
	}
	return out
}
