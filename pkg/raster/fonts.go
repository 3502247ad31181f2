package raster

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/goliatone/go-ogstudio/pkg/layout"
)

// FontSet holds the parsed regular and bold families. Parsed fonts are read
// only and shared across renders; faces are not and live in a faceCache.
type FontSet struct {
	regular *truetype.Font
	bold    *truetype.Font
}

// DefaultFonts parses the embedded Go fonts.
func DefaultFonts() (*FontSet, error) {
	return ParseFonts(goregular.TTF, gobold.TTF)
}

// ParseFonts parses TrueType data for the regular and bold weights.
func ParseFonts(regular, bold []byte) (*FontSet, error) {
	r, err := truetype.Parse(regular)
	if err != nil {
		return nil, fmt.Errorf("raster: parse regular font: %w", err)
	}
	b, err := truetype.Parse(bold)
	if err != nil {
		return nil, fmt.Errorf("raster: parse bold font: %w", err)
	}
	return &FontSet{regular: r, bold: b}, nil
}

type faceKey struct {
	size float64
	bold bool
}

// faceCache creates faces lazily for a single render. truetype faces keep an
// internal glyph cache and must not be shared between goroutines.
type faceCache struct {
	fonts *FontSet
	faces map[faceKey]font.Face
}

func newFaceCache(fonts *FontSet) *faceCache {
	return &faceCache{fonts: fonts, faces: make(map[faceKey]font.Face)}
}

func (c *faceCache) face(size float64, weight layout.FontWeight) font.Face {
	key := faceKey{size: size, bold: weight >= 600}
	if f, ok := c.faces[key]; ok {
		return f
	}
	src := c.fonts.regular
	if key.bold {
		src = c.fonts.bold
	}
	f := truetype.NewFace(src, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[key] = f
	return f
}

// MeasureString implements layout.Measurer.
func (c *faceCache) MeasureString(text string, size float64, weight layout.FontWeight) float64 {
	if text == "" {
		return 0
	}
	return fixedToFloat(font.MeasureString(c.face(size, weight), text))
}

func (c *faceCache) close() {
	for _, f := range c.faces {
		_ = f.Close()
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
