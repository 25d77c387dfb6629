package render

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/Alias1177/Dashboard/internal/config"
)

// Theme is the palette resolved from configuration into drawable
// colors.
type Theme struct {
	Bullish    color.Color
	Bearish    color.Color
	Neutral    color.Color
	Accent     color.Color
	Muted      color.Color
	Background color.Color
	Panel      color.Color
	Text       color.Color
	Frame      color.Color
}

// parseHexColor converts a "#rrggbb" string to a color.
func parseHexColor(s string) (color.Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return nil, fmt.Errorf("%q is not a #rrggbb color", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%q is not a #rrggbb color: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}

// themeFromPalette resolves every configured role. The frame color is
// fixed: it only outlines panels and is not worth a config knob.
func themeFromPalette(p config.Palette) (Theme, error) {
	var t Theme
	for _, c := range []struct {
		hex string
		dst *color.Color
	}{
		{p.Bullish, &t.Bullish},
		{p.Bearish, &t.Bearish},
		{p.Neutral, &t.Neutral},
		{p.Accent, &t.Accent},
		{p.Muted, &t.Muted},
		{p.Background, &t.Background},
		{p.Panel, &t.Panel},
		{p.Text, &t.Text},
	} {
		parsed, err := parseHexColor(c.hex)
		if err != nil {
			return Theme{}, err
		}
		*c.dst = parsed
	}
	t.Frame = color.RGBA{R: 0x30, G: 0x36, B: 0x3d, A: 0xff}
	return t, nil
}
