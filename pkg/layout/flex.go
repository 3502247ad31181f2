package layout

import (
	"errors"
	"math"
	"strings"
)

// Defaults applied at the root when a style leaves them unset.
const (
	DefaultFontSize   = 16
	DefaultLineHeight = 1.2
	DefaultColor      = "#000000"
)

// Measurer reports the advance width of a single line of text.
type Measurer interface {
	MeasureString(text string, size float64, weight FontWeight) float64
}

// Frame is a node after layout: an absolute rectangle plus the resolved,
// inherited paint properties.
type Frame struct {
	Node *Node
	X, Y float64
	W, H float64

	Color      string
	Background string
	Opacity    float64
	Radius     float64

	FontSize   float64
	FontWeight FontWeight
	LineHeight float64 // pixels
	Lines      []string

	Children []*Frame
}

// Find returns the first frame whose node carries key.
func (f *Frame) Find(key string) *Frame {
	if f == nil {
		return nil
	}
	if f.Node != nil && f.Node.Key == key {
		return f
	}
	for _, child := range f.Children {
		if found := child.Find(key); found != nil {
			return found
		}
	}
	return nil
}

// Compute lays root out on a width x height canvas. The root always fills the
// canvas regardless of its own Width and Height.
func Compute(root *Node, width, height float64, m Measurer) (*Frame, error) {
	if root == nil {
		return nil, errors.New("layout: root node is nil")
	}
	if m == nil {
		return nil, errors.New("layout: measurer is nil")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New("layout: canvas size must be positive")
	}

	inherit := Frame{
		Color:      DefaultColor,
		Opacity:    1,
		FontSize:   DefaultFontSize,
		FontWeight: WeightRegular,
		LineHeight: DefaultLineHeight,
	}
	e := engine{m: m}
	f := e.measure(root, width, inherit)
	f.W, f.H = width, height
	e.place(f, 0, 0)
	return f, nil
}

type engine struct {
	m Measurer
}

// measure resolves inherited properties and the intrinsic size of n given the
// width available to it. LineHeight on the inherit frame is a multiplier.
func (e engine) measure(n *Node, avail float64, inherit Frame) *Frame {
	st := n.Style
	f := &Frame{
		Node:       n,
		Color:      pick(st.Color, inherit.Color),
		Background: st.Background,
		Opacity:    inherit.Opacity,
		Radius:     st.Radius,
		FontSize:   pickFloat(st.FontSize, inherit.FontSize),
		FontWeight: inherit.FontWeight,
	}
	if st.FontWeight != 0 {
		f.FontWeight = st.FontWeight
	}
	if st.Opacity > 0 && st.Opacity < 1 {
		f.Opacity *= st.Opacity
	}
	lineHeight := pickFloat(st.LineHeight, inherit.LineHeight)
	f.LineHeight = lineHeight * f.FontSize

	if st.Width > 0 {
		avail = st.Width
	}
	inner := math.Max(0, avail-st.Padding.horizontal())

	switch n.Kind {
	case KindText:
		f.Lines = e.wrap(n.Text, inner, f.FontSize, f.FontWeight)
		var widest float64
		for _, line := range f.Lines {
			widest = math.Max(widest, e.m.MeasureString(line, f.FontSize, f.FontWeight))
		}
		f.W = widest + st.Padding.horizontal()
		f.H = float64(len(f.Lines))*f.LineHeight + st.Padding.vertical()
	default:
		child := *f
		child.LineHeight = lineHeight
		var mainSum, crossMax float64
		for i, c := range n.Children {
			cf := e.measure(c, inner, child)
			f.Children = append(f.Children, cf)
			if i > 0 {
				mainSum += st.Gap
			}
			if st.Direction == Column {
				mainSum += cf.H + c.Style.MarginTop
				crossMax = math.Max(crossMax, cf.W)
			} else {
				mainSum += cf.W
				crossMax = math.Max(crossMax, cf.H+c.Style.MarginTop)
			}
		}
		if st.Direction == Column {
			f.W = crossMax + st.Padding.horizontal()
			f.H = mainSum + st.Padding.vertical()
		} else {
			f.W = mainSum + st.Padding.horizontal()
			f.H = crossMax + st.Padding.vertical()
		}
	}

	if st.Width > 0 {
		f.W = st.Width
	}
	if st.Height > 0 {
		f.H = st.Height
	}
	return f
}

// place assigns absolute positions to f and its children. f.W and f.H are
// already final.
func (e engine) place(f *Frame, x, y float64) {
	f.X, f.Y = x, y
	if len(f.Children) == 0 {
		return
	}

	st := f.Node.Style
	contentX := x + st.Padding.Left
	contentY := y + st.Padding.Top
	contentW := math.Max(0, f.W-st.Padding.horizontal())
	contentH := math.Max(0, f.H-st.Padding.vertical())

	column := st.Direction == Column
	mainSize, crossSize := contentW, contentH
	if column {
		mainSize, crossSize = contentH, contentW
	}

	// Stretch first so the main-axis sums below see final sizes.
	for _, c := range f.Children {
		if st.Align != AlignStretch || c.Node.Kind == KindText && !column {
			continue
		}
		if column {
			if c.Node.Style.Width <= 0 {
				c.W = crossSize
			}
		} else if c.Node.Style.Height <= 0 {
			c.H = crossSize - c.Node.Style.MarginTop
		}
	}

	var used float64
	for i, c := range f.Children {
		if i > 0 {
			used += st.Gap
		}
		if column {
			used += c.H + c.Node.Style.MarginTop
		} else {
			used += c.W
		}
	}

	free := mainSize - used
	offset, between := 0.0, st.Gap
	switch st.Justify {
	case JustifyCenter:
		offset = free / 2
	case JustifyEnd:
		offset = free
	case JustifySpaceBetween:
		if len(f.Children) > 1 && free > 0 {
			between += free / float64(len(f.Children)-1)
		}
	}

	cursor := offset
	for _, c := range f.Children {
		ms := c.Node.Style.MarginTop
		var childCross, cross float64
		if column {
			childCross = c.W
		} else {
			childCross = c.H + ms
		}
		switch st.Align {
		case AlignCenter:
			cross = (crossSize - childCross) / 2
		case AlignEnd:
			cross = crossSize - childCross
		}

		if column {
			e.place(c, contentX+cross, contentY+cursor+ms)
			cursor += c.H + ms + between
		} else {
			e.place(c, contentX+cursor, contentY+cross+ms)
			cursor += c.W + between
		}
	}
}

// wrap breaks text into lines no wider than maxWidth. A single word wider
// than maxWidth keeps its own line. Explicit newlines start new lines.
func (e engine) wrap(text string, maxWidth, size float64, weight FontWeight) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			candidate := current + " " + word
			if maxWidth > 0 && e.m.MeasureString(candidate, size, weight) > maxWidth {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		lines = append(lines, current)
	}
	return lines
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func pickFloat(value, fallback float64) float64 {
	if value > 0 {
		return value
	}
	return fallback
}
