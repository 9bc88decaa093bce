// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import (
	"context"
	"math"
	"testing"

	"github.com/jice-nospam/wgen/heightmap"
)

func landFraction(f *heightmap.Field, waterLevel float32) float64 {
	land := 0
	for _, v := range f.Values() {
		if v >= waterLevel {
			land++
		}
	}
	return float64(land) / float64(len(f.Values()))
}

func TestLandMass_TargetFraction(t *testing.T) {
	src := heightmap.New(128, 128, 0)
	noisy, err := Fbm(context.Background(), src, DefaultFbmParams(), 99)
	if err != nil {
		t.Fatal(err)
	}
	p := DefaultLandMassParams()
	out := LandMass(noisy, p)

	got := landFraction(out, p.WaterLevel)
	if math.Abs(got-float64(p.LandProportion)) > 0.05 {
		t.Error("land fraction expected ~", p.LandProportion, "got", got)
	}
}

// The threshold must come from the observed distribution, not an assumed
// [0,1] range: a field spanning [-40, 250] has to produce the same land
// fraction as its normalized twin.
func TestLandMass_UnnormalizedInput(t *testing.T) {
	src := heightmap.New(96, 96, 0)
	noisy, err := Fbm(context.Background(), src, DefaultFbmParams(), 7)
	if err != nil {
		t.Fatal(err)
	}
	scaled := noisy.Map(func(v float32) float32 { return v*145 + 105 })

	p := DefaultLandMassParams()
	a := LandMass(noisy, p)
	b := LandMass(scaled, p)

	fa := landFraction(a, p.WaterLevel)
	fb := landFraction(b, p.WaterLevel)
	if math.Abs(fa-fb) > 0.01 {
		t.Error("land fraction differs between normalized and scaled input:", fa, fb)
	}
}

func TestLandMass_AllLand(t *testing.T) {
	src := heightmap.New(16, 16, 0)
	noisy, _ := Fbm(context.Background(), src, DefaultFbmParams(), 3)
	p := DefaultLandMassParams()
	p.LandProportion = 1
	out := LandMass(noisy, p)
	if got := landFraction(out, p.WaterLevel); got < 0.99 {
		t.Error("land proportion 1 expected all land, got", got)
	}
}

func TestLandMass_AllWaterNoNaN(t *testing.T) {
	src := heightmap.New(16, 16, 0)
	noisy, _ := Fbm(context.Background(), src, DefaultFbmParams(), 3)
	p := DefaultLandMassParams()
	p.LandProportion = 0
	out := LandMass(noisy, p)
	for i, v := range out.Values() {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatal("land proportion 0 produced non-finite value at", i)
		}
	}
}
