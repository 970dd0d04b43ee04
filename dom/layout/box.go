package layout

import (
	"fmt"

	"github.com/npillmayer/tinyq/dom/style/css"
	"github.com/npillmayer/tinyq/dom/styledtree"
	"github.com/npillmayer/tinyq/tree"
	"golang.org/x/net/html"
)

// Rect is a rectangle in pixels.
type Rect struct {
	Top, Left, Right, Bottom, Width, Height float64
}

// NewRect creates a rectangle from its top-left corner and its size.
func NewRect(left, top, width, height float64) Rect {
	return Rect{
		Top:    top,
		Left:   left,
		Right:  left + width,
		Bottom: top + height,
		Width:  width,
		Height: height,
	}
}

// Translate moves a rectangle.
func (r Rect) Translate(dx, dy float64) Rect {
	return NewRect(r.Left+dx, r.Top+dy, r.Width, r.Height)
}

// ExpandedBy grows a rectangle by edges. Negative edges shrink it.
func (r Rect) ExpandedBy(e css.Edges) Rect {
	return NewRect(r.Left-e.Left, r.Top-e.Top, r.Width+e.Horizontal(), r.Height+e.Vertical())
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.Left, r.Top, r.Width, r.Height)
}

// Dimensions defines the geometry of a layout box, in page coordinates.
type Dimensions struct {
	Content Rect
	Padding css.Edges
	Border  css.Edges
	Margin  css.Edges
}

// PaddingBox returns the rectangle enclosing the padding area.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox returns the rectangle enclosing the border area.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox returns the rectangle enclosing the margin area.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// Box is a layout box, generated for every rendered element.
type Box struct {
	tree.Node[*Box]
	HTMLNode   *html.Node
	StyledNode *styledtree.StyNode
	Dimensions Dimensions
	Display    css.DisplayMode
	Position   css.PositionT
	Sizing     css.BoxSizing
	FontSize   float64
	LineHeight float64
	static     [2]float64 // static position (x, y) of the margin box
	overflow   [2]float64 // right and bottom edge of content, incl. descendants
}

func newBox(h *html.Node, sn *styledtree.StyNode) *Box {
	b := &Box{HTMLNode: h, StyledNode: sn}
	b.Payload = b // Payload will always reference the box itself
	return b
}

// ParentBox returns the box of the nearest rendered ancestor, or nil.
func (b *Box) ParentBox() *Box {
	if p := b.Parent(); p != nil {
		return p.Payload
	}
	return nil
}

// translate moves a box together with its descendants.
func (b *Box) translate(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	_ = b.TopDown(func(n *tree.Node[*Box]) error {
		box := n.Payload
		box.Dimensions.Content = box.Dimensions.Content.Translate(dx, dy)
		box.static[0] += dx
		box.static[1] += dy
		box.overflow[0] += dx
		box.overflow[1] += dy
		return nil
	})
}

func (b *Box) String() string {
	return fmt.Sprintf("<%s> %s %v", b.HTMLNode.Data, b.Position, b.Dimensions.BorderBox())
}
