package ogimage

import (
	"net/url"
	"testing"

	"github.com/goliatone/go-ogstudio/pkg/layout"
)

func TestBuildCard_OmitsEmptyBadgeAndSubtitle(t *testing.T) {
	card := BuildCard(ParseRequest(url.Values{}))

	if card.Find(KeyBadge) != nil || card.Find(KeyBadgeText) != nil {
		t.Fatalf("expected no badge nodes without a badge")
	}
	if card.Find(KeySubtitle) != nil {
		t.Fatalf("expected no subtitle node without a subtitle")
	}
	if n := len(card.Find(KeyMiddle).Children); n != 1 {
		t.Fatalf("expected title only in middle block, got %d children", n)
	}
	if title := card.Find(KeyTitle); title == nil || title.Text != DefaultTitle {
		t.Fatalf("expected default title node, got %#v", title)
	}
}

func TestBuildCard_DarkScenario(t *testing.T) {
	q, _ := url.ParseQuery("title=Hello&subtitle=Edge&badge=DEMO&theme=dark")
	card := BuildCard(ParseRequest(q))

	if card.Style.Background != "#0b0f17" || card.Style.Color != "#e5e7eb" {
		t.Fatalf("unexpected card colors: bg=%q fg=%q", card.Style.Background, card.Style.Color)
	}
	if card.Style.Padding != layout.Uniform(64) || card.Style.Width != Width || card.Style.Height != Height {
		t.Fatalf("unexpected card geometry: %+v", card.Style)
	}

	pill := card.Find(KeyBadge)
	if pill == nil || pill.Style.Background != "rgba(255,255,255,0.08)" || pill.Style.Radius != 12 {
		t.Fatalf("unexpected badge pill: %#v", pill)
	}
	if text := card.Find(KeyBadgeText); text.Text != "DEMO" || text.Style.FontSize != 40 {
		t.Fatalf("unexpected badge text: %#v", text)
	}

	title := card.Find(KeyTitle)
	if title.Text != "Hello" || title.Style.FontSize != 100 || title.Style.FontWeight != layout.WeightBold {
		t.Fatalf("unexpected title: %#v", title)
	}
	sub := card.Find(KeySubtitle)
	if sub.Text != "Edge" || sub.Style.FontSize != 44 || sub.Style.Opacity != 0.8 {
		t.Fatalf("unexpected subtitle: %#v", sub)
	}
}

func TestBuildCard_LightBadgeUsesDarkOverlay(t *testing.T) {
	card := BuildCard(ParseRequest(url.Values{ParamBadge: {"NEW"}}))
	if fill := card.Find(KeyBadge).Style.Background; fill != "rgba(0,0,0,0.06)" {
		t.Fatalf("unexpected light badge fill %q", fill)
	}
}

func TestBuildCard_FooterIsFixed(t *testing.T) {
	card := BuildCard(ParseRequest(url.Values{ParamTitle: {"anything"}}))
	footer := card.Find(KeyFooter)
	if footer.Style.Justify != layout.JustifySpaceBetween || footer.Style.Opacity != 0.6 {
		t.Fatalf("unexpected footer style: %+v", footer.Style)
	}
	if card.Find(KeyFooterSize).Text != "1200×630" || card.Find(KeyFooterLabel).Text != "og-image-studio" {
		t.Fatalf("unexpected footer labels")
	}
}

func TestBuildCard_ComputedLayoutKeepsRowsInOrder(t *testing.T) {
	q, _ := url.ParseQuery("title=Hello&subtitle=Edge&badge=DEMO&theme=dark")
	frame, err := layout.Compute(BuildCard(ParseRequest(q)), Width, Height, fixedWidth{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	badge, title, sub, footer := frame.Find(KeyBadge), frame.Find(KeyTitle), frame.Find(KeySubtitle), frame.Find(KeyFooter)
	if badge.X != 64 || badge.Y != 64 {
		t.Fatalf("expected badge at top-left content corner, got (%v,%v)", badge.X, badge.Y)
	}
	if !(badge.Y < title.Y && title.Y+title.H+12 <= sub.Y+0.001 && sub.Y < footer.Y) {
		t.Fatalf("rows out of order: badge=%v title=%v sub=%v footer=%v", badge.Y, title.Y, sub.Y, footer.Y)
	}
	if bottom := footer.Y + footer.H; bottom < Height-64-0.001 || bottom > Height-64+0.001 {
		t.Fatalf("expected footer flush with bottom padding, got %v", bottom)
	}
}

type fixedWidth struct{}

func (fixedWidth) MeasureString(text string, size float64, _ layout.FontWeight) float64 {
	return float64(len([]rune(text))) * size * 0.6
}
