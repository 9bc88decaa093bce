package export

import (
	"fmt"
	"image"
	"image/color"

	"github.com/jice-nospam/wgen/heightmap"
)

type ColorVec [3]float32

const (
	waterLevel = 0.12
	sandLevel  = 0.16
	grassLevel = 0.5
	rockLevel  = 0.85
)

var colors = [...]ColorVec{
	RGB(0, 50, 115),
	RGB(0, 75, 130),
	RGB(194, 178, 128),
	RGB(90, 180, 30),
	RGB(105, 110, 115),
	Gray(220),
}

// Render paints the field as a colored relief preview. Heights are
// normalized to [0, 1] first, so the palette bands land in the same place
// for any input range.
func Render(f *heightmap.Field) image.Image {
	norm := f.Normalize(0, 1)
	width := norm.Width()
	height := norm.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c ColorVec

			h := norm.At(x, y)
			switch {
			case h <= waterLevel:
				c = colors[0].Lerp(colors[1], clamp(h/waterLevel))
			case h <= sandLevel:
				c = colors[2]
			case h <= grassLevel:
				c = colors[2].Lerp(colors[3], clamp((h-sandLevel)/(grassLevel-sandLevel)))
			case h <= rockLevel:
				c = colors[3].Lerp(colors[4], clamp((h-grassLevel)/(rockLevel-grassLevel)))
			default:
				c = colors[4].Lerp(colors[5], clamp((h-rockLevel)/(1-rockLevel)))
			}

			img.Set(x, y, c.Color())
		}
	}

	return img
}

func Gray(v byte) ColorVec {
	return RGB(v, v, v)
}

func RGB(r, g, b byte) ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

func (vec ColorVec) String() string {
	return fmt.Sprintf("rgb(%.3f, %.3f, %.3f)", vec[0], vec[1], vec[2])
}

func (vec ColorVec) Lerp(other ColorVec, factor float32) ColorVec {
	for i := range vec {
		vec[i] += (other[i] - vec[i]) * factor
	}
	return vec
}

func (vec ColorVec) Color() color.RGBA {
	return color.RGBA{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2]), A: 255}
}

func clamp(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func floatToByte(f float32) byte {
	if f < 0 {
		return 0
	}
	if f > 1.0 {
		return 255
	}
	return byte(f * 255)
}
