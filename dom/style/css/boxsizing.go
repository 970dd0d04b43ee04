package css

import (
	"strings"

	"github.com/npillmayer/tinyq/dom/style"
)

// BoxSizing is a type for CSS property "box-sizing".
type BoxSizing uint8

// Values for box-sizing.
const (
	ContentBox BoxSizing = iota // width and height denote the content box (default)
	BorderBox                   // width and height include padding and border
)

func (bs BoxSizing) String() string {
	if bs == BorderBox {
		return "border-box"
	}
	return "content-box"
}

// ParseBoxSizing returns the box-sizing mode from a property string.
// Anything but "border-box" is treated as content-box.
func ParseBoxSizing(p style.Property) BoxSizing {
	if strings.ToLower(strings.TrimSpace(p.String())) == "border-box" {
		return BorderBox
	}
	return ContentBox
}

// Edges holds four pixel values, e.g. the widths of the borders of a box.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Horizontal is Left + Right.
func (e Edges) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical is Top + Bottom.
func (e Edges) Vertical() float64 {
	return e.Top + e.Bottom
}

// Add adds two sets of edges.
func (e Edges) Add(o Edges) Edges {
	return Edges{e.Top + o.Top, e.Right + o.Right, e.Bottom + o.Bottom, e.Left + o.Left}
}

// Neg negates all four edges.
func (e Edges) Neg() Edges {
	return Edges{-e.Top, -e.Right, -e.Bottom, -e.Left}
}
