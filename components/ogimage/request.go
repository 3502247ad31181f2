package ogimage

import (
	"net/url"

	"github.com/goliatone/go-ogstudio/pkg/palette"
)

// DefaultTitle is used when the query carries no title parameter.
const DefaultTitle = "OG Image Studio"

// Query parameter names understood by the endpoint.
const (
	ParamTitle    = "title"
	ParamSubtitle = "subtitle"
	ParamBadge    = "badge"
	ParamTheme    = "theme"
	ParamBG       = "bg"
)

// RenderRequest is the validated input to a single render. It is built per
// request and never mutated afterwards.
type RenderRequest struct {
	Title      string
	Subtitle   string
	Badge      string
	Theme      palette.Theme
	Background string
	// Foreground depends only on Theme. A custom Background never changes
	// it, so callers choosing a background own the contrast.
	Foreground string
	BadgeFill  string
}

// ParseRequest builds a RenderRequest from query values using DefaultTitle.
func ParseRequest(values url.Values) RenderRequest {
	return parseRequest(values, DefaultTitle)
}

func parseRequest(values url.Values, defaultTitle string) RenderRequest {
	th := palette.ParseTheme(lookup(values, ParamTheme, string(palette.Light)))
	colors := palette.Resolve(th)

	return RenderRequest{
		Title:      lookup(values, ParamTitle, defaultTitle),
		Subtitle:   lookup(values, ParamSubtitle, ""),
		Badge:      lookup(values, ParamBadge, ""),
		Theme:      th,
		Background: lookup(values, ParamBG, colors.Background),
		Foreground: colors.Foreground,
		BadgeFill:  colors.Badge,
	}
}

// lookup returns the first value for key, or fallback when the key is absent.
// A present but empty value is returned as is.
func lookup(values url.Values, key, fallback string) string {
	if vs, ok := values[key]; ok && len(vs) > 0 {
		return vs[0]
	}
	return fallback
}
