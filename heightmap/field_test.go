// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package heightmap

import (
	"testing"
)

func TestField_New(t *testing.T) {
	f := New(4, 3, 1.5)
	if f.Width() != 4 || f.Height() != 3 {
		t.Error("New(4, 3) size expected 4x3 got", f.Width(), f.Height())
	}
	if len(f.Values()) != 12 {
		t.Error("New(4, 3) backing store expected 12 got", len(f.Values()))
	}
	for i, v := range f.Values() {
		if v != 1.5 {
			t.Fatal("New fill expected 1.5 at", i, "got", v)
		}
	}
}

func TestField_NewInvalidSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(0, 4) expected panic")
		}
	}()
	New(0, 4, 0)
}

func TestField_AtOutOfRange(t *testing.T) {
	f := New(4, 4, 0)
	defer func() {
		if recover() == nil {
			t.Error("At(4, 0) expected panic")
		}
	}()
	f.At(4, 0)
}

// A negative x can still land inside the backing slice; the explicit bounds
// check has to catch it anyway.
func TestField_AtNegativeX(t *testing.T) {
	f := New(4, 4, 0)
	defer func() {
		if recover() == nil {
			t.Error("At(-1, 2) expected panic")
		}
	}()
	f.At(-1, 2)
}

func TestField_MinMax(t *testing.T) {
	f := New(3, 3, 0)
	f.Set(1, 1, -2)
	f.Set(2, 0, 7)
	min, max := f.MinMax()
	if min != -2 || max != 7 {
		t.Error("MinMax expected -2 7 got", min, max)
	}
}

func TestField_NormalizeSpansRange(t *testing.T) {
	f := New(4, 4, 0)
	f.Set(0, 0, -3)
	f.Set(3, 3, 5)
	n := f.Normalize(0, 1)
	min, max := n.MinMax()
	if min != 0 || max != 1 {
		t.Error("Normalize expected span [0,1] got", min, max)
	}
	// input untouched
	if f.At(0, 0) != -3 {
		t.Error("Normalize mutated its input")
	}
}

func TestField_NormalizeConstant(t *testing.T) {
	f := New(4, 4, 5)
	n := f.Normalize(0, 1)
	for _, v := range n.Values() {
		if v != 0 {
			t.Fatal("Normalize of constant field expected all-zero got", v)
		}
	}
}

func TestField_CloneIsDeep(t *testing.T) {
	f := New(2, 2, 1)
	c := f.Clone()
	c.Set(0, 0, 9)
	if f.At(0, 0) != 1 {
		t.Error("Clone shares backing store with original")
	}
}

func TestField_Map(t *testing.T) {
	f := New(2, 2, 2)
	m := f.Map(func(v float32) float32 { return v * v })
	if m.At(1, 1) != 4 {
		t.Error("Map expected 4 got", m.At(1, 1))
	}
	if f.At(1, 1) != 2 {
		t.Error("Map mutated its input")
	}
}

func TestField_Sample(t *testing.T) {
	f := New(2, 2, 0)
	f.Set(1, 0, 1)
	f.Set(0, 1, 1)
	// center of a 0/1 checker corner is the average
	if got := f.Sample(0.5, 0.5); got != 0.5 {
		t.Error("Sample(0.5, 0.5) expected 0.5 got", got)
	}
	// edge clamp
	if got := f.Sample(5, 5); got != f.At(1, 1) {
		t.Error("Sample past edge expected corner value got", got)
	}
}

func TestField_ResizeUpDown(t *testing.T) {
	f := New(2, 2, 0)
	f.Set(1, 0, 1)
	f.Set(1, 1, 1)

	up := f.Resize(3, 3)
	if up.Width() != 3 || up.Height() != 3 {
		t.Fatal("Resize(3, 3) size expected 3x3 got", up.Width(), up.Height())
	}
	// corners preserved
	if up.At(0, 0) != 0 || up.At(2, 0) != 1 {
		t.Error("Resize corners expected 0 and 1 got", up.At(0, 0), up.At(2, 0))
	}
	// midpoint of a horizontal gradient
	if got := up.At(1, 1); got != 0.5 {
		t.Error("Resize midpoint expected 0.5 got", got)
	}

	down := up.Resize(2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if down.At(x, y) != f.At(x, y) {
				t.Error("Resize round trip mismatch at", x, y)
			}
		}
	}
}

func TestField_ResizeToOne(t *testing.T) {
	f := New(4, 4, 3)
	one := f.Resize(1, 1)
	if one.At(0, 0) != 3 {
		t.Error("Resize(1, 1) expected 3 got", one.At(0, 0))
	}
}
