package ogimage

import "github.com/goliatone/go-ogstudio/pkg/layout"

// Canvas size of every rendered card.
const (
	Width  = 1200
	Height = 630
)

// Footer labels, fixed and not parameterized.
const (
	FooterSize  = "1200×630"
	FooterLabel = "og-image-studio"
)

// Node keys used in the card tree.
const (
	KeyCard        = "card"
	KeyTop         = "top"
	KeyBadge       = "badge"
	KeyBadgeText   = "badge-text"
	KeyMiddle      = "middle"
	KeyTitle       = "title"
	KeySubtitle    = "subtitle"
	KeyFooter      = "footer"
	KeyFooterSize  = "footer-size"
	KeyFooterLabel = "footer-label"
)

// BuildCard describes the card for req: an optional badge row, the title
// block and the footer, spread over the canvas with space-between. Empty
// badge and subtitle values leave their nodes out entirely.
func BuildCard(req RenderRequest) *layout.Node {
	return layout.Box(KeyCard, layout.Style{
		Direction:  layout.Column,
		Justify:    layout.JustifySpaceBetween,
		Width:      Width,
		Height:     Height,
		Padding:    layout.Uniform(64),
		Background: req.Background,
		Color:      req.Foreground,
	},
		layout.Box(KeyTop, layout.Style{
			Direction: layout.Row,
			Gap:       16,
			Align:     layout.AlignCenter,
			Opacity:   0.9,
		}, badge(req)),
		layout.Box(KeyMiddle, layout.Style{Direction: layout.Column},
			layout.Text(KeyTitle, layout.Style{FontSize: 100, FontWeight: layout.WeightBold}, req.Title),
			subtitle(req),
		),
		layout.Box(KeyFooter, layout.Style{
			Direction: layout.Row,
			Justify:   layout.JustifySpaceBetween,
			Opacity:   0.6,
		},
			layout.Text(KeyFooterSize, layout.Style{FontSize: 28}, FooterSize),
			layout.Text(KeyFooterLabel, layout.Style{FontSize: 28}, FooterLabel),
		),
	)
}

func badge(req RenderRequest) *layout.Node {
	if req.Badge == "" {
		return nil
	}
	return layout.Box(KeyBadge, layout.Style{
		Direction:  layout.Row,
		Padding:    layout.Symmetric(8, 14),
		Radius:     12,
		Background: req.BadgeFill,
	},
		layout.Text(KeyBadgeText, layout.Style{FontSize: 40, LineHeight: 1}, req.Badge),
	)
}

func subtitle(req RenderRequest) *layout.Node {
	if req.Subtitle == "" {
		return nil
	}
	return layout.Text(KeySubtitle, layout.Style{
		MarginTop: 12,
		FontSize:  44,
		Opacity:   0.8,
	}, req.Subtitle)
}
