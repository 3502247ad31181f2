package studio

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-ogstudio/pkg/palette"
)

// FormState mirrors the studio form. It is a plain value: every edit builds a
// new state and the preview URL is derived from it.
type FormState struct {
	Title      string `json:"title" yaml:"title"`
	Subtitle   string `json:"subtitle" yaml:"subtitle"`
	Emoji      string `json:"emoji" yaml:"emoji"`
	Badge      string `json:"badge" yaml:"badge"`
	Theme      string `json:"theme" yaml:"theme"`
	Background string `json:"bg" yaml:"bg"`
}

// DefaultFormState is the state a fresh studio page starts from.
func DefaultFormState() FormState {
	return FormState{
		Title:    "OG Image Studio",
		Subtitle: "Generated at the edge",
		Emoji:    "✨",
		Badge:    "NEXT.JS",
		Theme:    string(palette.Dark),
	}
}

// Get returns the value of the form field called name.
func (s FormState) Get(name string) string {
	switch name {
	case "title":
		return s.Title
	case "subtitle":
		return s.Subtitle
	case "emoji":
		return s.Emoji
	case "badge":
		return s.Badge
	case "theme":
		return s.Theme
	case "bg":
		return s.Background
	}
	return ""
}

// With returns a copy of s with the field called name set to value. Unknown
// names leave the state unchanged.
func (s FormState) With(name, value string) FormState {
	switch name {
	case "title":
		s.Title = value
	case "subtitle":
		s.Subtitle = value
	case "emoji":
		s.Emoji = value
	case "badge":
		s.Badge = value
	case "theme":
		s.Theme = value
	case "bg":
		s.Background = value
	}
	return s
}

// FromValues overlays the fields present in values onto base. The theme is
// normalized so it always matches one of the select options.
func FromValues(values url.Values, base FormState) FormState {
	state := base
	for _, name := range fieldOrder {
		if vs, ok := values[name]; ok && len(vs) > 0 {
			state = state.With(name, vs[0])
		}
	}
	state.Theme = string(palette.ParseTheme(state.Theme))
	return state
}

var fieldOrder = []string{"title", "subtitle", "emoji", "badge", "theme", "bg"}

// Query encodes the state the way the browser's URLSearchParams does: fixed
// field order, spaces as '+', and bg only when set.
func (s FormState) Query() string {
	var b strings.Builder
	for _, name := range fieldOrder {
		value := s.Get(name)
		if name == "bg" && value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(formEscape(name))
		b.WriteByte('=')
		b.WriteString(formEscape(value))
	}
	return b.String()
}

// PreviewURL is the shareable render URL for s under renderPath.
func (s FormState) PreviewURL(renderPath string) string {
	return renderPath + "?" + s.Query()
}

// formEscape matches the application/x-www-form-urlencoded serializer, which
// leaves '*' alone and escapes '~', unlike url.QueryEscape.
func formEscape(v string) string {
	escaped := url.QueryEscape(v)
	escaped = strings.ReplaceAll(escaped, "%2A", "*")
	return strings.ReplaceAll(escaped, "~", "%7E")
}
