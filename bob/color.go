package bob

import (
	"bytes"
	"fmt"
	"github.com/lucasb-eyer/go-colorful"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
)

const colorPreviewSize = 100

// rgbColor is a 24-bit color, as picked by `/random color`
type rgbColor struct {
	R, G, B uint8
}

func rgbFromInt(v int) rgbColor {
	return rgbColor{
		R: uint8(v >> 16 & 0xff),
		G: uint8(v >> 8 & 0xff),
		B: uint8(v & 0xff),
	}
}

func (c rgbColor) Int() int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

func (c rgbColor) Hex() string {
	return fmt.Sprintf("%06X", c.Int())
}

func (c rgbColor) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// CMYK returns cyan, magenta, yellow and key as whole percentages
func (c rgbColor) CMYK() (cyan, magenta, yellow, key int) {
	col := c.toColorful()
	k := 1 - math.Max(col.R, math.Max(col.G, col.B))
	if k == 1 {
		return 0, 0, 0, 100
	}
	return percent((1 - col.R - k) / (1 - k)),
		percent((1 - col.G - k) / (1 - k)),
		percent((1 - col.B - k) / (1 - k)),
		percent(k)
}

// HSL returns hue in degrees, saturation and lightness as percentages
func (c rgbColor) HSL() (hue, saturation, lightness int) {
	h, s, l := c.toColorful().Hsl()
	return int(math.Round(h)) % 360, percent(s), percent(l)
}

// HSV returns hue in degrees, saturation and value as percentages
func (c rgbColor) HSV() (hue, saturation, value int) {
	h, s, v := c.toColorful().Hsv()
	return int(math.Round(h)) % 360, percent(s), percent(v)
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}

// colorPreviewPNG renders a square of the given color
func colorPreviewPNG(c rgbColor, size int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(
		img,
		img.Bounds(),
		&image.Uniform{C: color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}},
		image.Point{},
		draw.Src,
	)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
