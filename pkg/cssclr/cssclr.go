// Package cssclr parses the subset of CSS color syntax accepted by the render
// endpoint: hex notation, rgb()/rgba() functions, the transparent keyword and
// the CSS named colors most commonly used for backgrounds.
package cssclr

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ErrEmpty is returned when the input contains no color at all.
var ErrEmpty = errors.New("cssclr: empty color")

// Parse converts a CSS color string into a non-premultiplied color.
func Parse(raw string) (color.NRGBA, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return color.NRGBA{}, ErrEmpty
	}

	switch {
	case strings.HasPrefix(value, "#"):
		return parseHex(value[1:])
	case strings.HasPrefix(value, "rgba(") || strings.HasPrefix(value, "rgb("):
		return parseFunc(value)
	case value == "transparent":
		return color.NRGBA{}, nil
	}

	if c, ok := named[value]; ok {
		return c, nil
	}
	return color.NRGBA{}, fmt.Errorf("cssclr: unsupported color %q", raw)
}

// WithOpacity scales the alpha channel of c by opacity, clamped to [0,1].
func WithOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		c.A = 0
		return c
	}
	c.A = uint8(math.Round(float64(c.A) * opacity))
	return c
}

func parseHex(digits string) (color.NRGBA, error) {
	for _, r := range digits {
		if !isHexDigit(r) {
			return color.NRGBA{}, fmt.Errorf("cssclr: invalid hex color %q", "#"+digits)
		}
	}

	switch len(digits) {
	case 3, 4:
		expanded := make([]byte, 0, len(digits)*2)
		for i := 0; i < len(digits); i++ {
			expanded = append(expanded, digits[i], digits[i])
		}
		return parseHex(string(expanded))
	case 6, 8:
		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("cssclr: parse hex: %w", err)
		}
		if len(digits) == 6 {
			return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
		}
		return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
	}
	return color.NRGBA{}, fmt.Errorf("cssclr: invalid hex length in %q", "#"+digits)
}

func parseFunc(value string) (color.NRGBA, error) {
	open := strings.IndexByte(value, '(')
	if !strings.HasSuffix(value, ")") {
		return color.NRGBA{}, fmt.Errorf("cssclr: unterminated function %q", value)
	}
	body := value[open+1 : len(value)-1]

	// Accept both the legacy comma form and the space/slash form.
	body = strings.ReplaceAll(body, "/", " ")
	body = strings.ReplaceAll(body, ",", " ")
	parts := strings.Fields(body)
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("cssclr: expected 3 or 4 components in %q", value)
	}

	var out color.NRGBA
	channels := []*uint8{&out.R, &out.G, &out.B}
	for i, dst := range channels {
		v, err := parseChannel(parts[i])
		if err != nil {
			return color.NRGBA{}, err
		}
		*dst = v
	}

	out.A = 0xff
	if len(parts) == 4 {
		a, err := parseAlpha(parts[3])
		if err != nil {
			return color.NRGBA{}, err
		}
		out.A = a
	}
	return out, nil
}

func parseChannel(raw string) (uint8, error) {
	if strings.HasSuffix(raw, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("cssclr: parse channel %q: %w", raw, err)
		}
		return clampByte(f / 100 * 255), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("cssclr: parse channel %q: %w", raw, err)
	}
	return clampByte(f), nil
}

func parseAlpha(raw string) (uint8, error) {
	if strings.HasSuffix(raw, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("cssclr: parse alpha %q: %w", raw, err)
		}
		return clampByte(f / 100 * 255), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("cssclr: parse alpha %q: %w", raw, err)
	}
	return clampByte(f * 255), nil
}

func clampByte(f float64) uint8 {
	switch {
	case f <= 0 || math.IsNaN(f):
		return 0
	case f >= 255:
		return 255
	}
	return uint8(math.Round(f))
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}

var named = map[string]color.NRGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xff, 0x00, 0x00, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"orange":  {0xff, 0xa5, 0x00, 0xff},
	"purple":  {0x80, 0x00, 0x80, 0xff},
	"pink":    {0xff, 0xc0, 0xcb, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"silver":  {0xc0, 0xc0, 0xc0, 0xff},
	"navy":    {0x00, 0x00, 0x80, 0xff},
	"teal":    {0x00, 0x80, 0x80, 0xff},
	"maroon":  {0x80, 0x00, 0x00, 0xff},
	"olive":   {0x80, 0x80, 0x00, 0xff},
	"lime":    {0x00, 0xff, 0x00, 0xff},
	"aqua":    {0x00, 0xff, 0xff, 0xff},
	"cyan":    {0x00, 0xff, 0xff, 0xff},
	"fuchsia": {0xff, 0x00, 0xff, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"indigo":  {0x4b, 0x00, 0x82, 0xff},
	"crimson": {0xdc, 0x14, 0x3c, 0xff},
	"gold":    {0xff, 0xd7, 0x00, 0xff},
	"coral":   {0xff, 0x7f, 0x50, 0xff},
	"salmon":  {0xfa, 0x80, 0x72, 0xff},
	"tomato":  {0xff, 0x63, 0x47, 0xff},
	"ivory":   {0xff, 0xff, 0xf0, 0xff},
	"beige":   {0xf5, 0xf5, 0xdc, 0xff},
}
