package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Grey is used for colors that fail to parse.
var Grey = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// ParseColor accepts #RGB, #RRGGBB and #RRGGBBAA.
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	switch len(h) {
	case 6:
		h += "ff"
	case 8:
	default:
		return Grey, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Grey, fmt.Errorf("invalid color %q: %w", s, err)
	}
	nc := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return color.RGBAModel.Convert(nc).(color.RGBA), nil
}

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// Luminance is the WCAG relative luminance of c in [0,1].
func Luminance(c color.Color) float64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	lin := func(v uint8) float64 {
		x := float64(v) / 255
		if x <= 0.03928 {
			return x / 12.92
		}
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(n.R) + 0.7152*lin(n.G) + 0.0722*lin(n.B)
}

// TextColorFor picks light on dark fills and dark otherwise.
func TextColorFor(fill, dark, light color.Color) color.Color {
	if Luminance(fill) < 0.5 {
		return light
	}
	return dark
}
