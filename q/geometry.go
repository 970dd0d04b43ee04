package q

import (
	"strconv"
	"strings"

	"github.com/npillmayer/tinyq"
	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/dom/layout"
	"github.com/npillmayer/tinyq/dom/style/css"
	"github.com/npillmayer/tinyq/maybe"
	"golang.org/x/net/html"
)

// BoxKind selects one of the boxes of an element.
type BoxKind string

// Box kinds, from the outside in. Client and scroll boxes are read-only.
const (
	MarginBox  BoxKind = "margin"
	BorderBox  BoxKind = "border"
	PaddingBox BoxKind = "padding"
	ContentBox BoxKind = "content"
	ClientBox  BoxKind = "client"
	ScrollBox  BoxKind = "scroll"
)

// boxKind resolves a box kind and its aliases "outer" (border) and "inner"
// (padding). The empty string denotes the border box.
func boxKind(kind string) (BoxKind, error) {
	switch k := BoxKind(strings.ToLower(strings.TrimSpace(kind))); k {
	case "", "outer":
		return BorderBox, nil
	case "inner":
		return PaddingBox, nil
	case MarginBox, BorderBox, PaddingBox, ContentBox, ClientBox, ScrollBox:
		return k, nil
	}
	return "", tinyq.TypeError("box", "unknown box type %q", kind)
}

// Size holds optional width and height values.
type Size struct {
	Width, Height maybe.Maybe[float64]
}

// borderRect returns the border box of a rendered element, relative to its
// offset parent or, if absolute is set, to the document. Fixed elements are
// always reported relative to the document.
func borderRect(host *layout.Host, doc *dom.Document, n *html.Node, absolute bool) layout.Rect {
	if absolute || host.Position(n).IsFixed() {
		s := doc.PageScroll()
		return host.BoundingClientRect(n).Translate(s.X, s.Y)
	}
	l, t := host.Offset(n)
	w, h := host.OffsetSize(n)
	return layout.NewRect(l, t, w, h)
}

func boxOf(host *layout.Host, doc *dom.Document, n *html.Node, kind BoxKind, absolute bool) layout.Rect {
	if !host.Rendered(n) {
		return layout.Rect{}
	}
	border := borderRect(host, doc, n, absolute)
	margin, bor, pad := host.Edges(n)
	switch kind {
	case MarginBox:
		return border.ExpandedBy(margin)
	case PaddingBox:
		return border.ExpandedBy(bor.Neg())
	case ContentBox:
		return border.ExpandedBy(bor.Add(pad).Neg())
	case ClientBox:
		cr := host.ClientRect(n)
		return layout.NewRect(border.Left+cr.Left, border.Top+cr.Top, cr.Width, cr.Height)
	case ScrollBox:
		w, h := host.ScrollSize(n)
		return layout.NewRect(border.Left+bor.Left, border.Top+bor.Top, w, h)
	}
	return border
}

// Box returns a box of the first element. Elements which are not rendered
// report an empty box.
func (c *Collection) Box(kind string, absolute bool) (layout.Rect, error) {
	if c.err != nil {
		return layout.Rect{}, c.err
	}
	k, err := boxKind(kind)
	if err != nil {
		return layout.Rect{}, err
	}
	n := c.first()
	if !dom.IsElement(n) {
		return layout.Rect{}, nil
	}
	return boxOf(c.engine.host(), c.engine.doc, n, k, absolute), nil
}

// sizeDelta is what a box of the given kind adds to the size denoted by the
// CSS width or height property, for one axis.
func sizeDelta(kind BoxKind, sizing css.BoxSizing, margin, border, padding float64) float64 {
	if sizing == css.BorderBox {
		switch kind {
		case ContentBox:
			return -(padding + border)
		case PaddingBox:
			return -border
		case MarginBox:
			return margin
		}
		return 0
	}
	switch kind {
	case PaddingBox:
		return padding
	case BorderBox:
		return padding + border
	case MarginBox:
		return padding + border + margin
	}
	return 0
}

// SetBox sets the size of a box of every element, by writing the CSS width
// and height properties with respect to the element's box-sizing. Nothing
// values are left unchanged. Resulting negative sizes are clamped to 0.
func (c *Collection) SetBox(kind string, size Size) *Collection {
	if c.err != nil {
		return c
	}
	k, err := boxKind(kind)
	if err != nil {
		return c.fail(err, "box")
	}
	if k == ClientBox || k == ScrollBox {
		return c.fail(tinyq.TypeError("box", "%s box is read-only", k), "box")
	}
	host := c.engine.host()
	type write struct {
		n      *html.Node
		values map[string]string
	}
	var writes []write
	for _, n := range c.elements() {
		sizing := host.BoxSizing(n)
		margin, border, padding := host.Edges(n)
		values := make(map[string]string)
		if w, ok := size.Width.Get(); ok {
			d := sizeDelta(k, sizing, margin.Horizontal(), border.Horizontal(), padding.Horizontal())
			values["width"] = pixels(max(w-d, 0))
		}
		if h, ok := size.Height.Get(); ok {
			d := sizeDelta(k, sizing, margin.Vertical(), border.Vertical(), padding.Vertical())
			values["height"] = pixels(max(h-d, 0))
		}
		writes = append(writes, write{n, values})
	}
	for _, w := range writes {
		if err := setInlineStyles(w.n, sortedKeys(w.values), w.values); err != nil {
			return c.fail(err, "box")
		}
	}
	c.engine.doc.Touch()
	return c
}

// Width returns the width of the border box of the first element.
func (c *Collection) Width() float64 {
	r, _ := c.Box(string(BorderBox), false)
	return r.Width
}

// Height returns the height of the border box of the first element.
func (c *Collection) Height() float64 {
	r, _ := c.Box(string(BorderBox), false)
	return r.Height
}

// SetWidth sets the width of the border box of every element.
func (c *Collection) SetWidth(w float64) *Collection {
	return c.SetBox(string(BorderBox), Size{Width: maybe.Just(w)})
}

// SetHeight sets the height of the border box of every element.
func (c *Collection) SetHeight(h float64) *Collection {
	return c.SetBox(string(BorderBox), Size{Height: maybe.Just(h)})
}

// --- Positions -------------------------------------------------------------

// Position returns the top-left corner of the border box of the first element,
// relative to its offset parent or, if absolute is set, to the document.
// Fixed elements are always reported relative to the document. Elements which
// are not rendered report (0, 0).
func (c *Collection) Position(absolute bool) dom.Point {
	n := c.first()
	if !dom.IsElement(n) {
		return dom.Point{}
	}
	host := c.engine.host()
	if !host.Rendered(n) {
		return dom.Point{}
	}
	r := borderRect(host, c.engine.doc, n, absolute)
	return dom.Point{X: r.Left, Y: r.Top}
}

// SetPosition moves every rendered element so that the top-left corner of its
// border box lands at (x, y), relative to its offset parent or, if absolute is
// set, to the document. Statically positioned elements become relatively
// positioned. Nothing values leave the coordinate unchanged.
func (c *Collection) SetPosition(x, y maybe.Maybe[float64], absolute bool) *Collection {
	if c.err != nil {
		return c
	}
	host := c.engine.host()
	type write struct {
		n      *html.Node
		values map[string]string
	}
	var writes []write
	for _, n := range c.elements() {
		if !host.Rendered(n) {
			continue
		}
		cur := borderRect(host, c.engine.doc, n, absolute)
		left, top := usedOffsets(host, n)
		values := make(map[string]string)
		if host.Position(n).IsStatic() {
			values["position"] = "relative"
		}
		if tx, ok := x.Get(); ok {
			values["left"] = pixels(left + tx - cur.Left)
		}
		if ty, ok := y.Get(); ok {
			values["top"] = pixels(top + ty - cur.Top)
		}
		writes = append(writes, write{n, values})
	}
	for _, w := range writes {
		if err := setInlineStyles(w.n, sortedKeys(w.values), w.values); err != nil {
			return c.fail(err, "position")
		}
	}
	c.engine.doc.Touch()
	return c
}

// usedOffsets returns the values of CSS left and top which reproduce the
// current position of an element. Boxes of absolute and fixed elements are
// placed by their margin edge, so the margin has to be subtracted.
func usedOffsets(host *layout.Host, n *html.Node) (left, top float64) {
	pos := host.Position(n)
	margin, _, _ := host.Edges(n)
	switch {
	case pos.IsFixed():
		r := host.BoundingClientRect(n)
		return r.Left - margin.Left, r.Top - margin.Top
	case pos.IsAbsolute():
		l, t := host.Offset(n)
		return l - margin.Left, t - margin.Top
	case pos.IsRelative():
		return cssOffset(host, n, "left", "right"), cssOffset(host, n, "top", "bottom")
	}
	return 0, 0
}

// cssOffset reads a relative offset, falling back to the negated opposite one.
func cssOffset(host *layout.Host, n *html.Node, key, opposite string) float64 {
	if v, ok := parsePixels(host.ComputedStyle(n, key)); ok {
		return v
	}
	if v, ok := parsePixels(host.ComputedStyle(n, opposite)); ok {
		return -v
	}
	return 0
}

func parsePixels(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "px") {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	return v, err == nil
}

func pixels(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for _, k := range []string{"position", "left", "top", "width", "height"} {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}
