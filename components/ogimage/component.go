package ogimage

import (
	"context"
	"net/http"
	"net/url"
)

// Component bundles the render handler, its configuration, and routing
// helpers so servers and the CLI share one configured renderer.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Parse turns query values into a RenderRequest honouring the configured
// default title.
func (c *Component) Parse(values url.Values) RenderRequest {
	return parseRequest(values, c.Options().DefaultTitle)
}

// Render produces the encoded card for query values without going through
// HTTP.
func (c *Component) Render(ctx context.Context, values url.Values) ([]byte, error) {
	opts := c.Options()
	renderer, err := resolveRenderer(opts)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, BuildCard(parseRequest(values, opts.DefaultTitle)), Width, Height)
}

// Handler returns a net/http handler serving rendered cards.
func (c *Component) Handler() http.Handler {
	return HandlerWithOptions(c.Options())
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, c.Options())
}
