// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import "github.com/jice-nospam/wgen/heightmap"

// NormalizeParams configures the Normalize generator.
type NormalizeParams struct {
	Min float32 `json:"min"`
	Max float32 `json:"max"`
}

// DefaultNormalizeParams rescales to [0, 1].
func DefaultNormalizeParams() NormalizeParams {
	return NormalizeParams{Min: 0, Max: 1}
}

// Normalize rescales the field to span exactly [Min, Max].
// A constant field maps to all-Min.
func Normalize(src *heightmap.Field, p NormalizeParams) *heightmap.Field {
	return src.Normalize(p.Min, p.Max)
}
