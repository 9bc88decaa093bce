// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package worldgen

import (
	"fmt"
)

// Mask holds per-cell blend weights in [0, 1] that attenuate a step's
// effect. Masks are painted at their own resolution (typically 64x64) and
// stretched bilinearly over the field they modulate, so editing a mask never
// forces a field reallocation.
type Mask struct {
	W, H   int
	Values []float32
}

// NewMask allocates a w*h mask with full effect everywhere.
func NewMask(w, h int) *Mask {
	if w < 1 || h < 1 {
		panic(fmt.Sprintf("worldgen: invalid mask size %dx%d", w, h))
	}
	m := &Mask{W: w, H: h, Values: make([]float32, w*h)}
	for i := range m.Values {
		m.Values[i] = 1
	}
	return m
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	out := &Mask{W: m.W, H: m.H, Values: make([]float32, len(m.Values))}
	copy(out.Values, m.Values)
	return out
}

// Clamp forces every weight into [0, 1].
func (m *Mask) Clamp() {
	for i, v := range m.Values {
		if v < 0 {
			m.Values[i] = 0
		} else if v > 1 {
			m.Values[i] = 1
		}
	}
}

// Sample bilinearly interpolates the mask at normalized coordinates
// (u, v in [0, 1]). Samples past the last row/column clamp to the edge.
func (m *Mask) Sample(u, v float32) float32 {
	fx := u * float32(m.W)
	fy := v * float32(m.H)
	ix := int(fx)
	iy := int(fy)
	if ix > m.W-1 {
		ix = m.W - 1
	}
	if iy > m.H-1 {
		iy = m.H - 1
	}
	dx := fx - float32(ix)
	dy := fy - float32(iy)

	val := m.Values[ix+iy*m.W]
	if ix+1 < m.W {
		val = (1-dx)*val + dx*m.Values[ix+1+iy*m.W]
		if iy+1 < m.H {
			bottomLeft := m.Values[ix+(iy+1)*m.W]
			bottomRight := m.Values[ix+1+(iy+1)*m.W]
			bottom := (1-dx)*bottomLeft + dx*bottomRight
			val = (1-dy)*val + dy*bottom
		}
	}
	return val
}
