package bob

import (
	"bytes"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"image/png"
	"strings"
	"testing"
)

func TestRGBColor(t *testing.T) {
	tests := []struct {
		name  string
		value int
		hex   string
		cmyk  [4]int
		hsl   [3]int
		hsv   [3]int
	}{
		{
			name:  "red",
			value: 0xFF0000,
			hex:   "FF0000",
			cmyk:  [4]int{0, 100, 100, 0},
			hsl:   [3]int{0, 100, 50},
			hsv:   [3]int{0, 100, 100},
		},
		{
			name:  "black",
			value: 0x000000,
			hex:   "000000",
			cmyk:  [4]int{0, 0, 0, 100},
			hsl:   [3]int{0, 0, 0},
			hsv:   [3]int{0, 0, 0},
		},
		{
			name:  "white",
			value: 0xFFFFFF,
			hex:   "FFFFFF",
			cmyk:  [4]int{0, 0, 0, 0},
			hsl:   [3]int{0, 0, 100},
			hsv:   [3]int{0, 0, 100},
		},
		{
			name:  "blue",
			value: 0x0000FF,
			hex:   "0000FF",
			cmyk:  [4]int{100, 100, 0, 0},
			hsl:   [3]int{240, 100, 50},
			hsv:   [3]int{240, 100, 100},
		},
		{
			name:  "teal",
			value: 0x008080,
			hex:   "008080",
			cmyk:  [4]int{100, 0, 0, 50},
			hsl:   [3]int{180, 100, 25},
			hsv:   [3]int{180, 100, 50},
		},
		{
			name:  "navy",
			value: 0x123456,
			hex:   "123456",
			cmyk:  [4]int{79, 40, 0, 66},
			hsl:   [3]int{210, 65, 20},
			hsv:   [3]int{210, 79, 34},
		},
		{
			name:  "orange",
			value: 0xFFA500,
			hex:   "FFA500",
			cmyk:  [4]int{0, 35, 100, 0},
			hsl:   [3]int{39, 100, 50},
			hsv:   [3]int{39, 100, 100},
		},
	}
	for _, tc := range tests {
		t.Run(
			tc.name, func(t *testing.T) {
				c := rgbFromInt(tc.value)
				assert.Equal(t, tc.value, c.Int())
				assert.Equal(t, tc.hex, c.Hex())

				cyan, magenta, yellow, key := c.CMYK()
				assert.Equal(t, tc.cmyk, [4]int{cyan, magenta, yellow, key})

				h, s, l := c.HSL()
				assert.Equal(t, tc.hsl, [3]int{h, s, l})

				h, s, v := c.HSV()
				assert.Equal(t, tc.hsv, [3]int{h, s, v})

				parsed, err := colorful.Hex("#" + tc.hex)
				require.NoError(t, err)
				r, g, b := parsed.RGB255()
				assert.Equal(t, c, rgbColor{R: r, G: g, B: b})
				assert.Equal(t, "#"+strings.ToLower(tc.hex), c.toColorful().Hex())
			},
		)
	}
}

func TestColorPreviewPNG(t *testing.T) {
	c := rgbColor{R: 0x12, G: 0x34, B: 0x56}
	data, err := colorPreviewPNG(c, colorPreviewSize)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, colorPreviewSize, bounds.Dx())
	assert.Equal(t, colorPreviewSize, bounds.Dy())

	r, g, b, a := img.At(colorPreviewSize-1, colorPreviewSize-1).RGBA()
	assert.Equal(t, uint32(0x12), r>>8)
	assert.Equal(t, uint32(0x34), g>>8)
	assert.Equal(t, uint32(0x56), b>>8)
	assert.Equal(t, uint32(0xFF), a>>8)
}

func TestColorEmbed(t *testing.T) {
	embed := colorEmbed(rgbFromInt(0xFF0000))
	assert.Equal(t, 0xFF0000, embed.Color)
	require.Len(t, embed.Fields, 5)
	assert.Equal(t, "Hex", embed.Fields[0].Name)
	assert.Equal(t, "```#FF0000```", embed.Fields[0].Value)
	assert.Equal(t, "```R: 255, G: 0, B: 0```", embed.Fields[1].Value)
	assert.Equal(t, "```C: 0, M: 100, Y: 100, K: 0```", embed.Fields[2].Value)
	assert.Equal(t, "```H: 0, S: 100, L: 50```", embed.Fields[3].Value)
	assert.Equal(t, "```H: 0, S: 100, V: 100```", embed.Fields[4].Value)
}
