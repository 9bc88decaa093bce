// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

// Package generators implements the terrain operators composed by the
// worldgen pipeline. Every generator is a pure transform: it reads its
// input field, derives all randomness from the seed it is given, and
// returns a freshly allocated field.
package generators

// Neighbour offsets, center first, then the 8-connected ring.
// Ring indices 1, 3, 6, 8 are the diagonals.
var (
	dirX = [9]int{0, -1, 0, 1, -1, 1, -1, 0, 1}
	dirY = [9]int{0, -1, -1, -1, 0, 0, 1, 1, 1}
)

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func maxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}
