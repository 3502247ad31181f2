package ogimage

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/goliatone/go-ogstudio/pkg/layout"
	"github.com/goliatone/go-ogstudio/pkg/raster"
)

// Renderer rasterizes a card tree. *raster.Renderer satisfies it.
type Renderer interface {
	Render(ctx context.Context, root *layout.Node, width, height int) ([]byte, error)
	ContentType() string
}

type GuardFunc func(r *http.Request) error

type LogFunc func(format string, args ...any)

type Options struct {
	RoutePath    string
	DefaultTitle string
	Renderer     Renderer
	Guard        GuardFunc
	Logf         LogFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/render",
		DefaultTitle: DefaultTitle,
		Logf:         log.Printf,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/render"
	}
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = DefaultTitle
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithDefaultTitle changes the title used when the query has no title
// parameter at all.
func WithDefaultTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultTitle = title
	}
}

func WithRenderer(r Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = r
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithLogf sets the logger used for render failures. Nil silences them.
func WithLogf(logf LogFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logf = logf
	}
}

var (
	sharedRendererOnce sync.Once
	sharedRenderer     *raster.Renderer
	sharedRendererErr  error
)

// resolveRenderer returns opts.Renderer or the process-wide raster renderer.
// The embedded fonts are parsed once and reused by every request.
func resolveRenderer(opts Options) (Renderer, error) {
	if opts.Renderer != nil {
		return opts.Renderer, nil
	}
	sharedRendererOnce.Do(func() {
		sharedRenderer, sharedRendererErr = raster.New()
	})
	if sharedRendererErr != nil {
		return nil, sharedRendererErr
	}
	return sharedRenderer, nil
}
