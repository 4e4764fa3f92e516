package shape

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Palette is the general fill palette. Layouts sample fills from it without
// replacement, so its size caps the shape count of a single challenge.
var Palette = []string{
	"#FF0000", // red
	"#0000FF", // blue
	"#008000", // green
	"#FFBF00", // amber
	"#800080", // purple
	"#FFA500", // orange
	"#808080", // grey
	"#00BFFF", // deep sky blue
	"#FF00FF", // magenta
	"#00FF00", // lime
	"#FF69B4", // hot pink
	"#008080", // teal
	"#A52A2A", // brown
	"#D2691E", // chocolate
	"#808000", // olive
	"#4682B4", // steel blue
	"#3CB371", // medium sea green
	"#FFC0CB", // pink
	"#FFA07A", // light salmon
	"#ADD8E6", // light blue
}

// Backgrounds are light canvas colors that keep every palette fill legible.
var Backgrounds = []string{
	"#F8F9FA", "#FAFAFA", "#F0F8FF", "#FAFAD2", "#F0FFF0", "#FFFAF0",
	"#F8F8FF", "#FFF0F5", "#E6E6FA", "#FDF5E6", "#FFFFFF",
}

// ParseHex parses a #RRGGBB color. Invalid input falls back to mid grey so
// rendering can always proceed.
func ParseHex(s string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.TrimPrefix(s, "#"), "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// HexString formats an RGBA as #RRGGBB.
func HexString(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// AdjustBrightness scales the HSL lightness of c by factor, clamped so a
// darkened color never goes fully black and a lightened one never fully
// white.
func AdjustBrightness(c color.RGBA, factor float64) color.RGBA {
	h, s, l := rgbToHSL(c)
	adjusted := l * factor
	switch {
	case factor < 1.0 && l > 0.01:
		adjusted = math.Max(0.03, adjusted)
	case factor > 1.0 && l < 0.99:
		adjusted = math.Min(0.97, adjusted)
	}
	adjusted = math.Max(0, math.Min(1, adjusted))
	return hslToRGB(h, s, adjusted)
}

// OutlineFor derives a contrasting outline color: light fills get a darkened
// outline, dark fills a lightened one.
func OutlineFor(fill color.RGBA, darkFactor float64) color.RGBA {
	if darkFactor <= 0 {
		darkFactor = 0.4
	}
	_, _, l := rgbToHSL(fill)
	if l > 0.5 {
		return AdjustBrightness(fill, darkFactor)
	}
	return AdjustBrightness(fill, 1.7)
}

// EdgeColorFor derives a contrasting color for the edge lines of pseudo-3D
// solids. Near-greys get fixed defaults so the edges stay visible.
func EdgeColorFor(fill color.RGBA) color.RGBA {
	_, s, l := rgbToHSL(fill)
	if l > 0.9 && s < 0.15 {
		return color.RGBA{R: 80, G: 80, B: 80, A: 255}
	}
	if l < 0.1 && s < 0.15 {
		return color.RGBA{R: 170, G: 170, B: 170, A: 255}
	}
	if l > 0.45 {
		return AdjustBrightness(fill, 0.25)
	}
	return AdjustBrightness(fill, 2.0)
}

func rgbToHSL(c color.RGBA) (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6
	return h, s, l
}

func hslToRGB(h, s, l float64) color.RGBA {
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	r := hueToChannel(p, q, h+1.0/3)
	g := hueToChannel(p, q, h)
	b := hueToChannel(p, q, h-1.0/3)
	return color.RGBA{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
		A: 255,
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
