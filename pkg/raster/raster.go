// Package raster paints a computed layout tree onto an RGBA canvas with gg
// and encodes it as PNG. Rendering is deterministic: the same tree and size
// always produce the same bytes.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/goliatone/go-ogstudio/pkg/cssclr"
	"github.com/goliatone/go-ogstudio/pkg/layout"
)

// Renderer turns layout trees into encoded images.
type Renderer struct {
	fonts *FontSet
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFonts replaces the embedded Go fonts.
func WithFonts(fonts *FontSet) Option {
	return func(r *Renderer) {
		if fonts != nil {
			r.fonts = fonts
		}
	}
}

// New builds a Renderer, parsing the default fonts unless WithFonts is given.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.fonts == nil {
		fonts, err := DefaultFonts()
		if err != nil {
			return nil, err
		}
		r.fonts = fonts
	}
	return r, nil
}

// ContentType reports the MIME type produced by Render.
func (r *Renderer) ContentType() string { return "image/png" }

// Render lays out root on a width x height canvas and returns PNG bytes.
func (r *Renderer) Render(ctx context.Context, root *layout.Node, width, height int) ([]byte, error) {
	dc, err := r.paint(ctx, root, width, height)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("raster: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Image is Render without the encoding step.
func (r *Renderer) Image(ctx context.Context, root *layout.Node, width, height int) (image.Image, error) {
	dc, err := r.paint(ctx, root, width, height)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func (r *Renderer) paint(ctx context.Context, root *layout.Node, width, height int) (*gg.Context, error) {
	if r == nil || r.fonts == nil {
		return nil, errors.New("raster: renderer is not initialised")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	faces := newFaceCache(r.fonts)
	defer faces.close()

	frame, err := layout.Compute(root, float64(width), float64(height), faces)
	if err != nil {
		return nil, fmt.Errorf("raster: layout: %w", err)
	}

	dc := gg.NewContext(width, height)
	p := painter{dc: dc, faces: faces}
	if err := p.frame(frame); err != nil {
		return nil, err
	}
	return dc, nil
}

type painter struct {
	dc    *gg.Context
	faces *faceCache
}

func (p painter) frame(f *layout.Frame) error {
	// An empty background leaves the canvas transparent.
	if f.Background != "" {
		bg, err := cssclr.Parse(f.Background)
		if err != nil {
			return fmt.Errorf("raster: background of %q: %w", f.Node.Key, err)
		}
		p.dc.SetColor(cssclr.WithOpacity(bg, f.Opacity))
		if f.Radius > 0 {
			p.dc.DrawRoundedRectangle(f.X, f.Y, f.W, f.H, f.Radius)
		} else {
			p.dc.DrawRectangle(f.X, f.Y, f.W, f.H)
		}
		p.dc.Fill()
	}

	if f.Node.Kind == layout.KindText && len(f.Lines) > 0 {
		if err := p.text(f); err != nil {
			return err
		}
	}

	for _, child := range f.Children {
		if err := p.frame(child); err != nil {
			return err
		}
	}
	return nil
}

func (p painter) text(f *layout.Frame) error {
	fg, err := cssclr.Parse(f.Color)
	if err != nil {
		return fmt.Errorf("raster: color of %q: %w", f.Node.Key, err)
	}
	face := p.faces.face(f.FontSize, f.FontWeight)
	metrics := face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)
	descent := fixedToFloat(metrics.Descent)

	pad := f.Node.Style.Padding
	x := f.X + pad.Left
	top := f.Y + pad.Top

	p.dc.SetFontFace(face)
	p.dc.SetColor(cssclr.WithOpacity(fg, f.Opacity))
	for i, line := range f.Lines {
		lineTop := top + float64(i)*f.LineHeight
		baseline := lineTop + (f.LineHeight-(ascent+descent))/2 + ascent
		p.dc.DrawString(line, x, baseline)
	}
	return nil
}
