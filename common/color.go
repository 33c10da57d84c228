package common

import (
	"fmt"
	"image/color"
	"math/rand"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// LinearColor is a color in linear RGB space with straight alpha.
type LinearColor struct {
	R, G, B, A float64
}

var (
	Black = LinearColor{A: 1}
	White = LinearColor{R: 1, G: 1, B: 1, A: 1}
)

// RandomColor picks a fully saturated, full-value color with a uniform hue.
func RandomColor(rng *rand.Rand) LinearColor {
	hue := rng.Float64() * 360
	r, g, b := colorful.Hsv(hue, 1, 1).LinearRgb()
	return LinearColor{R: r, G: g, B: b, A: 1}
}

// FromColor converts an sRGB color.Color into linear space.
func FromColor(c color.Color) LinearColor {
	cf, _ := colorful.MakeColor(c)
	r, g, b := cf.LinearRgb()
	_, _, _, a := c.RGBA()
	return LinearColor{R: r, G: g, B: b, A: float64(a) / 0xffff}
}

// ToNRGBA converts to 8-bit sRGB for drawing.
func (c LinearColor) ToNRGBA() color.NRGBA {
	r, g, b := colorful.LinearRgb(clamp01(c.R), clamp01(c.G), clamp01(c.B)).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(c.A)*255 + 0.5)}
}

// RGBA implements color.Color.
func (c LinearColor) RGBA() (r, g, b, a uint32) {
	return c.ToNRGBA().RGBA()
}

func (c LinearColor) String() string {
	return fmt.Sprintf("(R=%f,G=%f,B=%f,A=%f)", c.R, c.G, c.B, c.A)
}

// ParseColor accepts "#RRGGBB", "#RRGGBBAA" or an SVG color name.
func ParseColor(s string) (LinearColor, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LinearColor{}, fmt.Errorf("color: empty value")
	}
	if !strings.HasPrefix(s, "#") {
		named, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return LinearColor{}, fmt.Errorf("color: unknown name %q", s)
		}
		return FromColor(named), nil
	}

	hex := strings.TrimPrefix(s, "#")
	alpha := 1.0
	switch len(hex) {
	case 6:
	case 8:
		v, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return LinearColor{}, fmt.Errorf("color: invalid alpha in %q: %w", s, err)
		}
		alpha = float64(v) / 255
		hex = hex[:6]
	default:
		return LinearColor{}, fmt.Errorf("color: invalid format %q", s)
	}

	cf, err := colorful.Hex("#" + hex)
	if err != nil {
		return LinearColor{}, fmt.Errorf("color: %w", err)
	}
	r, g, b := cf.LinearRgb()
	return LinearColor{R: r, G: g, B: b, A: alpha}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
