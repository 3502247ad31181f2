package layout

// Kind tags a node as a container or a run of text.
type Kind int

const (
	KindBox Kind = iota
	KindText
)

func (k Kind) String() string {
	if k == KindText {
		return "text"
	}
	return "box"
}

// Direction is the main axis of a box.
type Direction int

const (
	Row Direction = iota
	Column
)

// Justify distributes free space along the main axis.
type Justify int

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
)

// Align positions children on the cross axis.
type Align int

const (
	AlignStretch Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

// FontWeight follows the CSS numeric scale. Zero inherits.
type FontWeight int

const (
	WeightRegular FontWeight = 400
	WeightBold    FontWeight = 700
)

// Edges holds per-side spacing in pixels.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns the same spacing on every side.
func Uniform(v float64) Edges {
	return Edges{Top: v, Right: v, Bottom: v, Left: v}
}

// Symmetric returns vertical spacing for top/bottom and horizontal for the sides.
func Symmetric(vertical, horizontal float64) Edges {
	return Edges{Top: vertical, Right: horizontal, Bottom: vertical, Left: horizontal}
}

func (e Edges) horizontal() float64 { return e.Left + e.Right }
func (e Edges) vertical() float64   { return e.Top + e.Bottom }

// Style is the subset of CSS box and text properties the card needs.
//
// Color, FontSize, FontWeight and LineHeight inherit from the parent when
// left at their zero value. Opacity zero means fully opaque; nested
// opacities multiply.
type Style struct {
	Direction Direction
	Justify   Justify
	Align     Align
	Gap       float64
	Padding   Edges
	MarginTop float64
	Width     float64
	Height    float64

	Background string
	Color      string
	Opacity    float64
	Radius     float64

	FontSize   float64
	FontWeight FontWeight
	LineHeight float64
}

// Node is one element of a declarative layout tree.
type Node struct {
	Key      string
	Kind     Kind
	Style    Style
	Text     string
	Children []*Node
}

// Box builds a container node. Nil children are dropped so optional rows can
// be passed inline and collapse when absent.
func Box(key string, style Style, children ...*Node) *Node {
	n := &Node{Key: key, Kind: KindBox, Style: style}
	for _, child := range children {
		if child == nil {
			continue
		}
		n.Children = append(n.Children, child)
	}
	return n
}

// Text builds a text node.
func Text(key string, style Style, text string) *Node {
	return &Node{Key: key, Kind: KindText, Style: style, Text: text}
}

// Find returns the first node with key in a depth-first walk, or nil.
func (n *Node) Find(key string) *Node {
	if n == nil {
		return nil
	}
	if n.Key == key {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(key); found != nil {
			return found
		}
	}
	return nil
}
