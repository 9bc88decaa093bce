// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import (
	"context"
	"math/rand"

	"github.com/jice-nospam/wgen/heightmap"
)

// HillsParams configures the Hills generator.
type HillsParams struct {
	// Count is the number of bumps superimposed on the field.
	Count int `json:"count"`
	// BaseRadius is the mean bump radius, in percent of a 200 cell wide map.
	BaseRadius float32 `json:"baseRadius"`
	// RadiusVar spreads the radius in [base*(1-var), base*(1+var)].
	RadiusVar float32 `json:"radiusVar"`
	// Height scales the elevation added at a bump center.
	Height float32 `json:"height"`
}

// DefaultHillsParams returns the standard hill landscape configuration.
func DefaultHillsParams() HillsParams {
	return HillsParams{
		Count:      600,
		BaseRadius: 16,
		RadiusVar:  0.7,
		Height:     0.3,
	}
}

type hill struct {
	x, y   float32
	radius float32
	coef   float32
}

// Hills adds Count paraboloid bumps with randomized center and radius to the
// field. Bump centers may lie partially outside the field and are clipped.
// A collapsed radius range (RadiusVar == 0) uses the base radius directly; a
// zero radius bump touches no cell.
func Hills(ctx context.Context, src *heightmap.Field, p HillsParams, seed int64) (*heightmap.Field, error) {
	w, h := src.Width(), src.Height()
	rng := rand.New(rand.NewSource(seed))

	realRadius := p.BaseRadius * float32(w) / 200
	minRadius := realRadius * (1 - p.RadiusVar)
	maxRadius := realRadius * (1 + p.RadiusVar)

	hills := make([]hill, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		radius := minRadius
		if p.RadiusVar != 0 {
			radius = minRadius + rng.Float32()*(maxRadius-minRadius)
		}
		hx := rng.Float32() * float32(w)
		hy := rng.Float32() * float32(h)
		if radius <= 0 {
			continue
		}
		hills = append(hills, hill{
			x:      hx,
			y:      hy,
			radius: radius,
			coef:   p.Height / (radius * radius),
		})
	}

	out := src.Clone()
	values := out.Values()
	err := forEachRowChunk(ctx, h, func(y0, y1 int) error {
		for _, hl := range hills {
			radius2 := hl.radius * hl.radius
			miny := maxInt(int(maxf(hl.y-hl.radius, 0)), y0)
			maxy := minInt(int(minf(hl.y+hl.radius, float32(h))), y1)
			minx := int(maxf(hl.x-hl.radius, 0))
			maxx := int(minf(hl.x+hl.radius, float32(w)))
			for py := miny; py < maxy; py++ {
				ydist := (float32(py) - hl.y) * (float32(py) - hl.y)
				row := py * w
				for px := minx; px < maxx; px++ {
					xdist := (float32(px) - hl.x) * (float32(px) - hl.x)
					if z := radius2 - xdist - ydist; z > 0 {
						values[row+px] += z * hl.coef
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
