// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import (
	"testing"

	"github.com/jice-nospam/wgen/heightmap"
)

func TestMudSlide_FlatFieldUnchanged(t *testing.T) {
	src := heightmap.New(16, 16, 0.5)
	out := MudSlide(src, DefaultMudSlideParams())
	for i, v := range out.Values() {
		if v != 0.5 {
			t.Fatal("flat field changed at", i, "to", v)
		}
	}
}

// A single spike must creep down toward its neighbours without overshooting
// below them or oscillating upward.
func TestMudSlide_RelaxesSpike(t *testing.T) {
	src := heightmap.New(9, 9, 0.2)
	src.Set(4, 4, 0.8)

	p := DefaultMudSlideParams()
	p.Iterations = 1
	out := MudSlide(src, p)

	peak := out.At(4, 4)
	if peak >= 0.8 {
		t.Error("spike did not relax, peak =", peak)
	}
	if peak < 0.2 {
		t.Error("spike overshot below its neighbours, peak =", peak)
	}
	// repeated passes keep shrinking the slope
	p.Iterations = 5
	again := MudSlide(src, p)
	if again.At(4, 4) >= peak {
		t.Error("more iterations did not relax further")
	}
}

func TestMudSlide_PreservesWaterAndPeaks(t *testing.T) {
	src := heightmap.New(8, 8, 0.5)
	src.Set(0, 0, 0.05) // below water level
	src.Set(7, 7, 0.95) // above max erosion altitude

	out := MudSlide(src, DefaultMudSlideParams())
	if out.At(0, 0) != 0.05 {
		t.Error("underwater cell changed to", out.At(0, 0))
	}
	if out.At(7, 7) != 0.95 {
		t.Error("high altitude cell changed to", out.At(7, 7))
	}
}
