// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package export

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jice-nospam/wgen/heightmap"
)

func rampField(w, h int) *heightmap.Field {
	f := heightmap.New(w, h, 0)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.Set(x, y, float32(x)+float32(y)*0.25)
		}
	}
	return f
}

func TestSlice_TileGrid(t *testing.T) {
	cfg := Config{TileWidth: 64, TileHeight: 64, TilesX: 4, TilesY: 2, Depth: Depth16}
	tiles, err := Slice(rampField(256, 128), cfg)
	require.NoError(t, err)
	require.Len(t, tiles, 8)

	require.Equal(t, 0, tiles[0].X)
	require.Equal(t, 0, tiles[0].Y)
	require.Equal(t, 3, tiles[3].X)
	require.Equal(t, 1, tiles[7].Y)
	for _, tile := range tiles {
		require.Equal(t, 64, tile.Field.Width())
		require.Equal(t, 64, tile.Field.Height())
	}

	// row-major cut: tile (1,0) continues where tile (0,0)'s columns end
	require.Greater(t, tiles[1].Field.At(0, 0), tiles[0].Field.At(63, 0))
}

func TestSlice_GlobalNormalization(t *testing.T) {
	f := rampField(128, 64)
	cfg := Config{TileWidth: 64, TileHeight: 64, TilesX: 2, TilesY: 1, Depth: Depth8}
	tiles, err := Slice(f, cfg)
	require.NoError(t, err)

	// left tile holds the global minimum, right tile the global maximum
	require.Equal(t, float32(0), tiles[0].Field.At(0, 0))
	require.Equal(t, float32(1), tiles[1].Field.At(63, 63))

	// the ramp keeps rising across the tile boundary
	require.Greater(t, tiles[1].Field.At(0, 0), tiles[0].Field.At(63, 0))
}

func TestSlice_SeamlessSharesEdges(t *testing.T) {
	cfg := Config{TileWidth: 128, TileHeight: 128, TilesX: 2, TilesY: 2, Depth: Depth16, Seamless: true}
	tiles, err := Slice(rampField(256, 256), cfg)
	require.NoError(t, err)
	require.Len(t, tiles, 4)

	left, right := tiles[0].Field, tiles[1].Field
	for y := 0; y < 128; y++ {
		require.Equal(t, left.At(127, y), right.At(0, y), "row %d", y)
	}
	top, bottom := tiles[0].Field, tiles[2].Field
	for x := 0; x < 128; x++ {
		require.Equal(t, top.At(x, 127), bottom.At(x, 0), "column %d", x)
	}
}

func TestSlice_ResamplesMismatchedField(t *testing.T) {
	cfg := Config{TileWidth: 32, TileHeight: 32, TilesX: 2, TilesY: 2, Depth: Depth8}
	tiles, err := Slice(rampField(100, 60), cfg)
	require.NoError(t, err)
	require.Len(t, tiles, 4)
	for _, tile := range tiles {
		require.Equal(t, 32, tile.Field.Width())
		require.Equal(t, 32, tile.Field.Height())
	}
}

func TestSlice_RejectsBadConfig(t *testing.T) {
	f := rampField(8, 8)
	_, err := Slice(f, Config{TileWidth: 1, TileHeight: 8, TilesX: 1, TilesY: 1})
	require.Error(t, err)
	_, err = Slice(f, Config{TileWidth: 8, TileHeight: 8, TilesX: 0, TilesY: 1})
	require.Error(t, err)
	_, err = Slice(f, Config{TileWidth: 8, TileHeight: 8, TilesX: 1, TilesY: 1, Depth: BitDepth(42)})
	require.Error(t, err)
}

func TestWriteTiles_Depth16(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{TileWidth: 16, TileHeight: 16, TilesX: 2, TilesY: 1, Depth: Depth16}
	tiles, err := Slice(rampField(32, 16), cfg)
	require.NoError(t, err)
	require.NoError(t, WriteTiles(dir, "world", tiles, cfg.Depth))

	for _, name := range []string{"world_x0_y0.png", "world_x1_y0.png"} {
		file, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		img, err := png.Decode(file)
		file.Close()
		require.NoError(t, err)
		gray, ok := img.(*image.Gray16)
		require.True(t, ok, "%s should be 16-bit grayscale", name)
		require.Equal(t, 16, gray.Bounds().Dx())
	}

	// global max lands in the right tile's last column
	file, err := os.Open(filepath.Join(dir, "world_x1_y0.png"))
	require.NoError(t, err)
	defer file.Close()
	img, err := png.Decode(file)
	require.NoError(t, err)
	require.Equal(t, uint16(0xffff), img.At(15, 15).(color.Gray16).Y)
}

func TestWriteTiles_RawFloat(t *testing.T) {
	dir := t.TempDir()
	f := heightmap.New(4, 4, 0)
	f.Set(3, 3, 2) // normalizes to exactly 1
	cfg := Config{TileWidth: 4, TileHeight: 4, TilesX: 1, TilesY: 1, Depth: DepthF32}
	require.NoError(t, Export(f, cfg, dir, "raw"))

	data, err := os.ReadFile(filepath.Join(dir, "raw_x0_y0.r32"))
	require.NoError(t, err)
	require.Len(t, data, 4*4*4)
	first := math.Float32frombits(binary.LittleEndian.Uint32(data))
	last := math.Float32frombits(binary.LittleEndian.Uint32(data[15*4:]))
	require.Equal(t, float32(0), first)
	require.Equal(t, float32(1), last)
}

func TestQuantization(t *testing.T) {
	require.Equal(t, byte(0), quantize8(-0.5))
	require.Equal(t, byte(0), quantize8(0))
	require.Equal(t, byte(128), quantize8(0.5))
	require.Equal(t, byte(255), quantize8(1))
	require.Equal(t, byte(255), quantize8(1.5))

	require.Equal(t, uint16(0), quantize16(0))
	require.Equal(t, uint16(32768), quantize16(0.5))
	require.Equal(t, uint16(65535), quantize16(1))
}

func TestTileName(t *testing.T) {
	tile := Tile{X: 2, Y: 5}
	require.Equal(t, "map_x2_y5.png", tile.Name("map", Depth8))
	require.Equal(t, "map_x2_y5.r32", tile.Name("map", DepthF32))
}

func TestParseBitDepth(t *testing.T) {
	d, err := ParseBitDepth("16")
	require.NoError(t, err)
	require.Equal(t, Depth16, d)
	_, err = ParseBitDepth("24")
	require.Error(t, err)
}

func TestRender_PaletteBands(t *testing.T) {
	f := rampField(64, 1)
	img := Render(f)
	require.Equal(t, 64, img.Bounds().Dx())

	deepWater := img.At(0, 0).(color.RGBA)
	snow := img.At(63, 0).(color.RGBA)
	require.Greater(t, deepWater.B, deepWater.R, "low end should be water blue")
	require.Greater(t, int(snow.R), 200, "high end should be near white")
}
