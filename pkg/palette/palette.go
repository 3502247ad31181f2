// Package palette owns the two card themes and the colors each one resolves
// to. The themes are described as a go-theme manifest so the studio page and
// the renderer read their tokens from the same source.
package palette

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme is the two-valued card theme.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// ManifestName is the go-theme manifest name used for the card palette.
const ManifestName = "og"

// Token keys carried by every variant.
const (
	TokenBackground = "background"
	TokenForeground = "foreground"
	TokenBadge      = "badge"
)

// ParseTheme lower-cases raw and maps anything other than "dark" to Light.
func ParseTheme(raw string) Theme {
	if strings.ToLower(raw) == string(Dark) {
		return Dark
	}
	return Light
}

func (t Theme) String() string { return string(t) }

// Palette is the resolved set of colors for one theme.
type Palette struct {
	Theme      Theme
	Background string
	Foreground string
	Badge      string
}

// Manifest returns a fresh go-theme manifest describing both variants. The
// base tokens repeat the light ones so an unknown variant still resolves.
func Manifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ManifestName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenBackground: "#ffffff",
			TokenForeground: "#111827",
			TokenBadge:      "rgba(0,0,0,0.06)",
		},
		Variants: map[string]theme.Variant{
			string(Dark): {
				Tokens: map[string]string{
					TokenBackground: "#0b0f17",
					TokenForeground: "#e5e7eb",
					TokenBadge:      "rgba(255,255,255,0.08)",
				},
			},
			string(Light): {
				Tokens: map[string]string{
					TokenBackground: "#ffffff",
					TokenForeground: "#111827",
					TokenBadge:      "rgba(0,0,0,0.06)",
				},
			},
		},
	}
}

var defaultManifest = Manifest()

// Resolve returns the palette for t from the default manifest.
func Resolve(t Theme) Palette {
	return resolve(defaultManifest, t)
}

func resolve(m *theme.Manifest, t Theme) Palette {
	tokens := Tokens(m, t)
	return Palette{
		Theme:      t,
		Background: tokens[TokenBackground],
		Foreground: tokens[TokenForeground],
		Badge:      tokens[TokenBadge],
	}
}

// Tokens merges the manifest base tokens with the variant overrides for t.
func Tokens(m *theme.Manifest, t Theme) map[string]string {
	out := make(map[string]string)
	if m == nil {
		return out
	}
	for key, value := range m.Tokens {
		out[key] = value
	}
	if variant, ok := m.Variants[string(t)]; ok {
		for key, value := range variant.Tokens {
			out[key] = value
		}
	}
	return out
}

// Selector resolves theme selections against a single manifest. It satisfies
// theme.ThemeSelector.
type Selector struct {
	manifest *theme.Manifest
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector wraps m, falling back to the default manifest when m is nil.
func NewSelector(m *theme.Manifest) *Selector {
	if m == nil {
		m = defaultManifest
	}
	return &Selector{manifest: m}
}

// Select accepts an empty name or the manifest name and normalizes the
// variant with ParseTheme.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name != "" && name != s.manifest.Name {
		return nil, fmt.Errorf("palette: unknown theme %q", name)
	}
	return &theme.Selection{
		Theme:    s.manifest.Name,
		Variant:  string(ParseTheme(variant)),
		Manifest: s.manifest,
	}, nil
}

// RendererConfig converts a selection into the config handed to page
// templates. Every token is exposed as a CSS variable prefixed with --og-.
func RendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil {
		return nil
	}
	tokens := Tokens(sel.Manifest, Theme(sel.Variant))
	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--og-"+key] = value
	}
	return &theme.RendererConfig{
		Theme:   sel.Theme,
		Variant: sel.Variant,
		Tokens:  tokens,
		CSSVars: vars,
	}
}

// CSSVarsStyle renders CSS variables as a stable inline declaration list.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
