package layout

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/dom/style/css"
	"github.com/npillmayer/tinyq/dom/style/cssom"
	"github.com/npillmayer/tinyq/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/tinyq/dom/styledtree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Host answers geometry and style questions about the nodes of a document,
// the way a browser would.
type Host struct {
	doc      *dom.Document
	styler   *cssom.Styler
	styles   *styledtree.Tree
	root     *Box
	boxes    map[*html.Node]*Box
	mx       sync.Mutex
	detached map[*html.Node]*styledtree.Tree
}

// For returns the host for a document. Hosts are cached and recomputed only
// after the document has changed.
func For(doc *dom.Document) *Host {
	return doc.Cached("tinyq.layout", func() any {
		return newHost(doc)
	}).(*Host)
}

func newHost(doc *dom.Document) *Host {
	styler := cssom.NewStyler(douceuradapter.ParseInline)
	for _, sheet := range douceuradapter.ExtractStyleElements(doc.Root()) {
		styler.AddStyleSheet(sheet)
	}
	for _, src := range doc.StyleSheets() {
		sheet, err := douceuradapter.Parse(src)
		if err != nil {
			tracer().Errorf("user style sheet: %v", err)
			continue
		}
		styler.AddStyleSheet(sheet)
	}
	h := &Host{
		doc:      doc,
		styler:   styler,
		styles:   styler.Style(doc.Root()),
		boxes:    make(map[*html.Node]*Box),
		detached: make(map[*html.Node]*styledtree.Tree),
	}
	h.layout()
	return h
}

func (h *Host) layout() {
	vw, vh := h.doc.Viewport()
	scroll := h.doc.PageScroll()
	e := &engine{
		styles:       h.styles,
		viewport:     [2]float64{vw, vh},
		scroll:       [2]float64{scroll.X, scroll.Y},
		rootFontSize: BaseFontSize,
		boxes:        h.boxes,
	}
	if de := h.doc.DocumentElement(); de != nil {
		e.rootFontSize = e.fontSize(h.styles.Lookup(de), BaseFontSize)
	}
	root := newBox(h.doc.Root(), h.styles.Root())
	root.FontSize = BaseFontSize
	root.LineHeight = BaseFontSize * DefaultLineHeight
	root.Position = css.Static()
	e.build(root, h.doc.Root())
	root.Dimensions.Content = NewRect(0, 0, vw, vh)
	height := e.flow(root, true)
	root.Dimensions.Content = NewRect(0, 0, vw, math.Max(vh, height))
	e.placeOutOfFlow()
	h.root = root
	tracer().Debugf("layout of %d boxes, document height %g", len(h.boxes), root.Dimensions.Content.Height)
}

// --- Styles ----------------------------------------------------------------

// StyledNode returns the styled node for an element. Elements not part of the
// document (e.g., fragments not yet inserted) are styled on demand.
func (h *Host) StyledNode(n *html.Node) *styledtree.StyNode {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	if sn := h.styles.Lookup(n); sn != nil {
		return sn
	}
	root := dom.Root(n)
	h.mx.Lock()
	defer h.mx.Unlock()
	t, ok := h.detached[root]
	if !ok {
		t = h.styler.Style(root)
		h.detached[root] = t
	}
	return t.Lookup(n)
}

// ComputedStyle returns the value of a style property for an element.
// Lengths are reported in pixels; for rendered elements, width and height
// report the used size.
func (h *Host) ComputedStyle(n *html.Node, key string) string {
	sn := h.StyledNode(n)
	if sn == nil {
		return ""
	}
	key = strings.ToLower(strings.TrimSpace(key))
	b := h.boxes[n]
	if b != nil && (key == "width" || key == "height") {
		r := b.Dimensions.Content
		if b.Sizing == css.BorderBox {
			r = b.Dimensions.BorderBox()
		}
		if key == "width" {
			return px(r.Width)
		}
		return px(r.Height)
	}
	p := css.GetProperty(sn, key)
	if isLength(key) {
		ref := 0.0
		if b != nil {
			if cb := b.ParentBox(); cb != nil {
				ref = cb.Dimensions.Content.Width
			}
		}
		d, err := css.ParseDimen(p)
		if err == nil && !d.IsAuto() && !d.IsNone() {
			if v, ok := d.Resolve(h.context(n, ref)); ok {
				return px(css.ToPx(v))
			}
		}
	}
	return p.String()
}

func (h *Host) context(n *html.Node, ref float64) css.Context {
	vw, vh := h.doc.Viewport()
	ctx := css.Context{
		Percent:      ref,
		FontSize:     BaseFontSize,
		RootFontSize: BaseFontSize,
		Viewport:     [2]float64{vw, vh},
	}
	if b := h.boxes[n]; b != nil {
		ctx.FontSize = b.FontSize
	}
	return ctx
}

func isLength(key string) bool {
	switch key {
	case "top", "right", "bottom", "left", "min-width", "min-height", "max-width", "max-height",
		"font-size", "width", "height":
		return true
	}
	return strings.HasPrefix(key, "margin-") || strings.HasPrefix(key, "padding-") ||
		(strings.HasPrefix(key, "border-") && strings.HasSuffix(key, "-width"))
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Position returns the CSS position of an element.
func (h *Host) Position(n *html.Node) css.PositionT {
	if b := h.boxes[n]; b != nil {
		return b.Position
	}
	return css.PositionOf(h.StyledNode(n))
}

// BoxSizing returns the CSS box-sizing mode of an element.
func (h *Host) BoxSizing(n *html.Node) css.BoxSizing {
	if b := h.boxes[n]; b != nil {
		return b.Sizing
	}
	return css.BoxSizingOf(h.StyledNode(n))
}

// Edges returns the margins, border widths and padding of an element in pixels.
func (h *Host) Edges(n *html.Node) (margin, border, padding css.Edges) {
	if b := h.boxes[n]; b != nil {
		d := b.Dimensions
		return d.Margin, d.Border, d.Padding
	}
	sn := h.StyledNode(n)
	if sn == nil {
		return
	}
	ctx := h.context(n, 0)
	return css.EdgesOf(sn, "margin", ctx), css.EdgesOf(sn, "border", ctx), css.EdgesOf(sn, "padding", ctx)
}

// --- Geometry --------------------------------------------------------------

// Box returns the layout box of an element, or nil if the element is not
// rendered.
func (h *Host) Box(n *html.Node) *Box {
	return h.boxes[n]
}

// Root returns the box of the document node.
func (h *Host) Root() *Box {
	return h.root
}

// Rendered is true if an element generates a box, i.e. is part of the document
// and neither it nor any of its ancestors has display:none.
func (h *Host) Rendered(n *html.Node) bool {
	return h.boxes[n] != nil
}

// scrollShift sums up the scroll offsets of the ancestors of a box.
func (h *Host) scrollShift(b *Box) (dx, dy float64) {
	if b.Position.IsFixed() {
		return
	}
	for a := b.ParentBox(); a != nil && a != h.root; a = a.ParentBox() {
		s := h.doc.ScrollOffset(a.HTMLNode)
		dx += s.X
		dy += s.Y
		if a.Position.IsFixed() {
			break
		}
	}
	return
}

// PageRect returns the border box of an element relative to the document.
// Elements which are not rendered report an empty rect.
func (h *Host) PageRect(n *html.Node) Rect {
	b := h.boxes[n]
	if b == nil {
		return Rect{}
	}
	dx, dy := h.scrollShift(b)
	return b.Dimensions.BorderBox().Translate(-dx, -dy)
}

// BoundingClientRect returns the border box of an element relative to the
// viewport.
func (h *Host) BoundingClientRect(n *html.Node) Rect {
	if h.boxes[n] == nil {
		return Rect{}
	}
	s := h.doc.PageScroll()
	return h.PageRect(n).Translate(-s.X, -s.Y)
}

// OffsetParent returns the element an element's offsets refer to: the nearest
// positioned ancestor, or, for statically positioned elements, the nearest
// table cell or table; the body element otherwise.
// Elements which are not rendered, fixed elements and the body have no offset
// parent.
func (h *Host) OffsetParent(n *html.Node) *html.Node {
	b := h.boxes[n]
	if b == nil || b.Position.IsFixed() || n.DataAtom == atom.Body || n.DataAtom == atom.Html {
		return nil
	}
	static := b.Position.IsStatic()
	for a := b.ParentBox(); a != nil && a != h.root; a = a.ParentBox() {
		if a.Position.IsPositioned() || a.HTMLNode.DataAtom == atom.Body {
			return a.HTMLNode
		}
		if static {
			switch a.HTMLNode.DataAtom {
			case atom.Td, atom.Th, atom.Table:
				return a.HTMLNode
			}
		}
	}
	return nil
}

// Offset returns offsetLeft and offsetTop of an element: the position of its
// border box relative to the padding box of its offset parent. If the offset
// parent is a statically positioned body, or there is none, the offsets are
// relative to the document.
func (h *Host) Offset(n *html.Node) (left, top float64) {
	if h.boxes[n] == nil {
		return 0, 0
	}
	r := h.PageRect(n)
	op := h.OffsetParent(n)
	if op == nil {
		return r.Left, r.Top
	}
	pb := h.boxes[op]
	if op.DataAtom == atom.Body && pb.Position.IsStatic() {
		return r.Left, r.Top
	}
	dx, dy := h.scrollShift(pb)
	pad := pb.Dimensions.PaddingBox().Translate(-dx, -dy)
	return r.Left - pad.Left, r.Top - pad.Top
}

// OffsetSize returns offsetWidth and offsetHeight, the size of the border box.
func (h *Host) OffsetSize(n *html.Node) (width, height float64) {
	if b := h.boxes[n]; b != nil {
		r := b.Dimensions.BorderBox()
		return r.Width, r.Height
	}
	return 0, 0
}

// ClientRect returns clientLeft, clientTop, clientWidth and clientHeight: the
// widths of the left and top border and the size of the padding box.
func (h *Host) ClientRect(n *html.Node) Rect {
	b := h.boxes[n]
	if b == nil {
		return Rect{}
	}
	d := b.Dimensions
	pad := d.PaddingBox()
	return NewRect(d.Border.Left, d.Border.Top, pad.Width, pad.Height)
}

// ScrollSize returns scrollWidth and scrollHeight: the size of the padding box
// or of the content overflowing it, whichever is larger.
func (h *Host) ScrollSize(n *html.Node) (width, height float64) {
	b := h.boxes[n]
	if b == nil {
		return 0, 0
	}
	d := b.Dimensions
	pad := d.PaddingBox()
	width = math.Max(pad.Width, b.overflow[0]+d.Padding.Right-pad.Left)
	height = math.Max(pad.Height, b.overflow[1]+d.Padding.Bottom-pad.Top)
	return width, height
}
