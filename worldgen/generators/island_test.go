// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import (
	"testing"

	"github.com/jice-nospam/wgen/heightmap"
)

func TestIsland_BordersAtMinimum(t *testing.T) {
	src := heightmap.New(32, 32, 1)
	src.Set(5, 5, 0.25) // field minimum

	out := Island(src, DefaultIslandParams())
	for x := 0; x < 32; x++ {
		if out.At(x, 0) != 0.25 || out.At(x, 31) != 0.25 {
			t.Fatal("top/bottom border not pulled to minimum at x =", x)
		}
	}
	for y := 0; y < 32; y++ {
		if out.At(0, y) != 0.25 || out.At(31, y) != 0.25 {
			t.Fatal("left/right border not pulled to minimum at y =", y)
		}
	}
}

func TestIsland_FalloffMonotonic(t *testing.T) {
	src := heightmap.New(64, 64, 1)
	src.Set(63, 63, 0)

	out := Island(src, DefaultIslandParams())
	// walking inward along the middle row, elevation never decreases
	y := 32
	prev := out.At(0, y)
	for x := 1; x < 32; x++ {
		v := out.At(x, y)
		if v < prev {
			t.Fatal("falloff not monotonic at x =", x)
		}
		prev = v
	}
}

func TestIsland_NarrowCoast(t *testing.T) {
	src := heightmap.New(40, 40, 1)
	src.Set(20, 20, 0)

	p := IslandParams{CoastRange: 10}
	out := Island(src, p)
	// cells beyond the 4-cell band keep their value
	if out.At(10, 20) != 1 {
		t.Error("interior cell changed to", out.At(10, 20))
	}
	if out.At(0, 20) != 0 {
		t.Error("border cell expected minimum, got", out.At(0, 20))
	}
}
