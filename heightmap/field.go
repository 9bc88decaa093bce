// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

// Package heightmap provides a dense 2D grid of float32 elevation samples
// and the resampling/normalization utilities shared by all generators.
package heightmap

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Field is a row-major W*H grid of elevation values.
// Generators treat fields as immutable inputs: they clone and return a new
// Field instead of writing through their argument.
type Field struct {
	w, h   int
	values []float32
}

// New allocates a w*h field filled with fill.
// Sizes below 1x1 are a programming error.
func New(w, h int, fill float32) *Field {
	if w < 1 || h < 1 {
		panic(fmt.Sprintf("heightmap: invalid field size %dx%d", w, h))
	}
	f := &Field{
		w:      w,
		h:      h,
		values: make([]float32, w*h),
	}
	if fill != 0 {
		f.Fill(fill)
	}
	return f
}

// Width returns the number of columns.
func (f *Field) Width() int { return f.w }

// Height returns the number of rows.
func (f *Field) Height() int { return f.h }

// Values exposes the backing slice so bulk operations can read/write samples
// directly. Layout is row-major, length is exactly Width*Height.
func (f *Field) Values() []float32 { return f.values }

// Index returns the linear slice index for coordinates (x, y).
func (f *Field) Index(x, y int) int { return y*f.w + x }

func (f *Field) checkBounds(x, y int) {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		panic(fmt.Sprintf("heightmap: access (%d,%d) outside %dx%d field", x, y, f.w, f.h))
	}
}

// At returns the sample at (x, y). Out-of-range access panics.
func (f *Field) At(x, y int) float32 {
	f.checkBounds(x, y)
	return f.values[y*f.w+x]
}

// Set writes the sample at (x, y). Out-of-range access panics.
func (f *Field) Set(x, y int, v float32) {
	f.checkBounds(x, y)
	f.values[y*f.w+x] = v
}

// Fill sets every sample to v.
func (f *Field) Fill(v float32) {
	for i := range f.values {
		f.values[i] = v
	}
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	out := &Field{
		w:      f.w,
		h:      f.h,
		values: make([]float32, len(f.values)),
	}
	copy(out.values, f.values)
	return out
}

// MinMax scans the field and returns its lowest and highest sample.
func (f *Field) MinMax() (min, max float32) {
	min = f.values[0]
	max = f.values[0]
	for _, v := range f.values[1:] {
		if v > max {
			max = v
		} else if v < min {
			min = v
		}
	}
	return
}

// Map returns a new field with fn applied to every sample.
func (f *Field) Map(fn func(float32) float32) *Field {
	out := f.Clone()
	for i, v := range out.values {
		out.values[i] = fn(v)
	}
	return out
}

// Normalize rescales all samples to span [lo, hi].
// A constant field maps to all-lo instead of dividing by zero.
func (f *Field) Normalize(lo, hi float32) *Field {
	min, max := f.MinMax()
	var coef float32
	if max > min {
		coef = (hi - lo) / (max - min)
	}
	out := f.Clone()
	for i, v := range out.values {
		out.values[i] = lo + (v-min)*coef
	}
	return out
}

// Sample bilinearly interpolates the field at fractional grid coordinates.
// Coordinates past the last row/column clamp to the edge sample.
func (f *Field) Sample(fx, fy float32) float32 {
	ix := int(fx)
	iy := int(fy)
	if ix < 0 {
		ix = 0
	}
	if iy < 0 {
		iy = 0
	}
	if ix > f.w-1 {
		ix = f.w - 1
	}
	if iy > f.h-1 {
		iy = f.h - 1
	}
	dx := fx - float32(ix)
	dy := fy - float32(iy)

	nw := f.values[iy*f.w+ix]
	ne := nw
	sw := nw
	se := nw
	if ix < f.w-1 {
		ne = f.values[iy*f.w+ix+1]
	}
	if iy < f.h-1 {
		sw = f.values[(iy+1)*f.w+ix]
		if ix < f.w-1 {
			se = f.values[(iy+1)*f.w+ix+1]
		}
	}
	n := (1-dx)*nw + dx*ne
	s := (1-dx)*sw + dx*se
	return (1-dy)*n + dy*s
}

// Resize returns a new w*h field bilinearly resampled from f.
// Corners map to corners so upsampling and downsampling stay aligned.
func (f *Field) Resize(w, h int) *Field {
	if w < 1 || h < 1 {
		panic(fmt.Sprintf("heightmap: invalid resize target %dx%d", w, h))
	}
	if w == f.w && h == f.h {
		return f.Clone()
	}
	out := New(w, h, 0)
	var sx, sy float32
	if w > 1 {
		sx = float32(f.w-1) / float32(w-1)
	}
	if h > 1 {
		sy = float32(f.h-1) / float32(h-1)
	}
	for y := 0; y < h; y++ {
		fy := math32.Min(float32(y)*sy, float32(f.h-1))
		for x := 0; x < w; x++ {
			fx := math32.Min(float32(x)*sx, float32(f.w-1))
			out.values[y*w+x] = f.Sample(fx, fy)
		}
	}
	return out
}
