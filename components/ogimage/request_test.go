package ogimage

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ogstudio/pkg/palette"
)

func TestParseRequest_NoParametersUsesLightDefaults(t *testing.T) {
	got := ParseRequest(url.Values{})
	want := RenderRequest{
		Title:      "OG Image Studio",
		Theme:      palette.Light,
		Background: "#ffffff",
		Foreground: "#111827",
		BadgeFill:  "rgba(0,0,0,0.06)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRequest_DarkScenario(t *testing.T) {
	q, _ := url.ParseQuery("title=Hello&subtitle=Edge&badge=DEMO&theme=dark")
	got := ParseRequest(q)
	want := RenderRequest{
		Title:      "Hello",
		Subtitle:   "Edge",
		Badge:      "DEMO",
		Theme:      palette.Dark,
		Background: "#0b0f17",
		Foreground: "#e5e7eb",
		BadgeFill:  "rgba(255,255,255,0.08)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRequest_ThemeIsCaseInsensitiveAndFallsBackToLight(t *testing.T) {
	cases := map[string]palette.Theme{
		"dark":   palette.Dark,
		"DaRk":   palette.Dark,
		"light":  palette.Light,
		"PURPLE": palette.Light,
		"":       palette.Light,
	}
	for raw, want := range cases {
		got := ParseRequest(url.Values{ParamTheme: {raw}})
		if got.Theme != want {
			t.Fatalf("theme %q resolved to %q, want %q", raw, got.Theme, want)
		}
	}
}

func TestParseRequest_ForegroundIgnoresCustomBackground(t *testing.T) {
	for _, bg := range []string{"#000000", "#ffffff", "rgb(10, 20, 30)"} {
		dark := ParseRequest(url.Values{ParamTheme: {"dark"}, ParamBG: {bg}})
		if dark.Background != bg || dark.Foreground != "#e5e7eb" {
			t.Fatalf("dark with bg %q: got bg=%q fg=%q", bg, dark.Background, dark.Foreground)
		}
		light := ParseRequest(url.Values{ParamBG: {bg}})
		if light.Background != bg || light.Foreground != "#111827" {
			t.Fatalf("light with bg %q: got bg=%q fg=%q", bg, light.Background, light.Foreground)
		}
	}
}

func TestParseRequest_PresentButEmptyValuesPassThrough(t *testing.T) {
	got := ParseRequest(url.Values{ParamTitle: {""}, ParamBG: {""}})
	if got.Title != "" {
		t.Fatalf("expected empty title to pass through, got %q", got.Title)
	}
	if got.Background != "" {
		t.Fatalf("expected empty bg to pass through, got %q", got.Background)
	}
}

func TestParseRequest_FirstValueWinsAndUnknownIgnored(t *testing.T) {
	q, _ := url.ParseQuery("title=First&title=Second&emoji=%E2%9C%A8&foo=bar")
	got := ParseRequest(q)
	if got.Title != "First" {
		t.Fatalf("expected first title value, got %q", got.Title)
	}
	if diff := cmp.Diff(ParseRequest(url.Values{ParamTitle: {"First"}}), got); diff != "" {
		t.Fatalf("unknown parameters changed the request (-want +got):\n%s", diff)
	}
}
