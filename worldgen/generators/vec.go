// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import "github.com/chewxy/math32"

// vec2 is a 2D float32 vector used by the droplet simulation.
type vec2 struct {
	X float32
	Y float32
}

func (vec vec2) Add(other vec2) vec2 {
	vec.X += other.X
	vec.Y += other.Y
	return vec
}

func (vec vec2) Mul(factor float32) vec2 {
	vec.X *= factor
	vec.Y *= factor
	return vec
}

func (vec vec2) AddScaled(other vec2, factor float32) vec2 {
	vec.X += other.X * factor
	vec.Y += other.Y * factor
	return vec
}

func (vec vec2) Length() float32 {
	return math32.Sqrt(vec.X*vec.X + vec.Y*vec.Y)
}
