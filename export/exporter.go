// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

// Package export slices a heightmap into tiles and writes them as grayscale
// PNG or raw float32 files, plus a colored relief preview.
package export

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jice-nospam/wgen/heightmap"
)

// BitDepth selects the sample encoding of exported tiles.
type BitDepth int

const (
	// Depth8 writes 8-bit grayscale PNG tiles.
	Depth8 BitDepth = iota
	// Depth16 writes 16-bit grayscale PNG tiles.
	Depth16
	// DepthF32 writes raw little-endian float32 tiles (.r32), one sample
	// per cell, rows top to bottom.
	DepthF32
)

// ParseBitDepth maps the CLI spelling of a depth to its value.
func ParseBitDepth(s string) (BitDepth, error) {
	switch s {
	case "8":
		return Depth8, nil
	case "16":
		return Depth16, nil
	case "f32":
		return DepthF32, nil
	}
	return 0, fmt.Errorf("export: unknown bit depth %q (want 8, 16 or f32)", s)
}

// Ext returns the file extension tiles of this depth are written with.
func (d BitDepth) Ext() string {
	if d == DepthF32 {
		return ".r32"
	}
	return ".png"
}

func (d BitDepth) String() string {
	switch d {
	case Depth8:
		return "8"
	case Depth16:
		return "16"
	case DepthF32:
		return "f32"
	}
	return fmt.Sprintf("BitDepth(%d)", int(d))
}

// Config describes a tiled export: the size of each tile, the tile grid and
// the sample encoding. When Seamless is set, adjacent tiles share one row or
// column of samples so terrain engines can stitch them without cracks.
type Config struct {
	TileWidth  int
	TileHeight int
	TilesX     int
	TilesY     int
	Depth      BitDepth
	Seamless   bool
}

// Validate reports the first problem with the config, if any.
func (c Config) Validate() error {
	if c.TileWidth < 2 || c.TileHeight < 2 {
		return fmt.Errorf("export: tile size %dx%d too small", c.TileWidth, c.TileHeight)
	}
	if c.TilesX < 1 || c.TilesY < 1 {
		return fmt.Errorf("export: invalid tile grid %dx%d", c.TilesX, c.TilesY)
	}
	switch c.Depth {
	case Depth8, Depth16, DepthF32:
	default:
		return fmt.Errorf("export: invalid bit depth %d", int(c.Depth))
	}
	return nil
}

// FieldSize returns the field resolution this config slices.
func (c Config) FieldSize() (w, h int) {
	return c.TileWidth * c.TilesX, c.TileHeight * c.TilesY
}

// Tile is one exported sub-rectangle with its grid position.
type Tile struct {
	X, Y  int
	Field *heightmap.Field
}

// Name returns the tile's file name for the given pattern and depth.
func (t Tile) Name(pattern string, depth BitDepth) string {
	return fmt.Sprintf("%s_x%d_y%d%s", pattern, t.X, t.Y, depth.Ext())
}

// Slice normalizes the field to [0, 1] and cuts it into TilesX*TilesY tiles,
// in row-major order. A field whose resolution does not match the config is
// bilinearly resampled first. Normalization is global, so every tile shares
// one height scale and seamless neighbours carry bit-identical edge samples.
func Slice(f *heightmap.Field, cfg Config) ([]Tile, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, h := cfg.FieldSize()
	if f.Width() != w || f.Height() != h {
		f = f.Resize(w, h)
	}
	f = f.Normalize(0, 1)

	tiles := make([]Tile, 0, cfg.TilesX*cfg.TilesY)
	for ty := 0; ty < cfg.TilesY; ty++ {
		for tx := 0; tx < cfg.TilesX; tx++ {
			offsetX := tx * cfg.TileWidth
			offsetY := ty * cfg.TileHeight
			if cfg.Seamless {
				offsetX = tx * (cfg.TileWidth - 1)
				offsetY = ty * (cfg.TileHeight - 1)
			}
			tile := heightmap.New(cfg.TileWidth, cfg.TileHeight, 0)
			for py := 0; py < cfg.TileHeight; py++ {
				for px := 0; px < cfg.TileWidth; px++ {
					tile.Set(px, py, f.At(px+offsetX, py+offsetY))
				}
			}
			tiles = append(tiles, Tile{X: tx, Y: ty, Field: tile})
		}
	}
	return tiles, nil
}

// WriteTiles writes every tile under dir as pattern_x{i}_y{j} plus the
// depth's extension. Tile files are written concurrently.
func WriteTiles(dir, pattern string, tiles []Tile, depth BitDepth) error {
	var g errgroup.Group
	g.SetLimit(4)
	for _, tile := range tiles {
		tile := tile
		g.Go(func() error {
			path := filepath.Join(dir, tile.Name(pattern, depth))
			if err := writeTile(path, tile.Field, depth); err != nil {
				return fmt.Errorf("export: %s: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Export is the one-call form: slice the field per cfg and write the tiles.
func Export(f *heightmap.Field, cfg Config, dir, pattern string) error {
	tiles, err := Slice(f, cfg)
	if err != nil {
		return err
	}
	return WriteTiles(dir, pattern, tiles, cfg.Depth)
}

func writeTile(path string, f *heightmap.Field, depth BitDepth) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	switch depth {
	case Depth8:
		err = png.Encode(file, grayImage(f))
	case Depth16:
		err = png.Encode(file, gray16Image(f))
	case DepthF32:
		err = writeRaw32(file, f)
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	return err
}

func grayImage(f *heightmap.Field) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width(), f.Height()))
	for i, v := range f.Values() {
		img.Pix[i] = quantize8(v)
	}
	return img
}

func gray16Image(f *heightmap.Field) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, f.Width(), f.Height()))
	for i, v := range f.Values() {
		pixel := quantize16(v)
		img.Pix[i*2] = byte(pixel >> 8)
		img.Pix[i*2+1] = byte(pixel)
	}
	return img
}

func writeRaw32(w io.Writer, f *heightmap.Field) error {
	values := f.Values()
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	_, err := w.Write(buf)
	return err
}

// quantize8 maps [0, 1] to 0..255, rounding to nearest.
func quantize8(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

// quantize16 maps [0, 1] to 0..65535, rounding to nearest.
func quantize16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 65535
	}
	return uint16(v*65535 + 0.5)
}
