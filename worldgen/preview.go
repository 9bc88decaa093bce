// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package worldgen

import (
	"context"

	"github.com/jice-nospam/wgen/heightmap"
)

// Preview returns the field after step index, downsampled to size*size and
// normalized to [0, 1] for display. The preview layer maps values to
// grayscale or mesh heights on its own; this only guarantees the numbers.
func Preview(ctx context.Context, p *Pipeline, index, size int) (*heightmap.Field, error) {
	if size < 1 {
		return nil, configErrorf("preview", "invalid preview size %d", size)
	}
	field, err := p.Field(ctx, index, size, size)
	if err != nil {
		return nil, err
	}
	return field.Normalize(0, 1), nil
}
