// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package worldgen

import (
	"fmt"
)

// Project files store mask weights quantized to a byte and run-length
// encoded as (value, count-1) pairs. Painted masks are dominated by long
// runs of 0.0 and 1.0, so this typically shrinks them by two orders of
// magnitude.

// EncodeMask quantizes the mask weights and compresses them.
func EncodeMask(m *Mask) []byte {
	buf := make([]byte, 0, 64)
	for _, v := range m.Values {
		next := quantizeWeight(v)

		if len(buf) > 0 {
			end := len(buf) - 1
			if buf[end-1] == next && buf[end] < 255 {
				buf[end]++
				continue
			}
		}
		buf = append(buf, next, 0)
	}
	return buf
}

// DecodeMask expands an encoded weight stream into a w*h mask.
// The stream must decode to exactly w*h weights.
func DecodeMask(w, h int, data []byte) (*Mask, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("worldgen: invalid mask size %dx%d", w, h)
	}
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("worldgen: truncated mask data (%d bytes)", len(data))
	}
	m := &Mask{W: w, H: h, Values: make([]float32, 0, w*h)}
	for i := 0; i < len(data); i += 2 {
		value := float32(data[i]) / 255
		count := int(data[i+1]) + 1
		if len(m.Values)+count > w*h {
			return nil, fmt.Errorf("worldgen: mask data overflows %dx%d mask", w, h)
		}
		for j := 0; j < count; j++ {
			m.Values = append(m.Values, value)
		}
	}
	if len(m.Values) != w*h {
		return nil, fmt.Errorf("worldgen: mask data holds %d of %d weights", len(m.Values), w*h)
	}
	return m, nil
}

func quantizeWeight(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
