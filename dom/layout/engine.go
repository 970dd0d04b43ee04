package layout

import (
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/tinyq/dom/style"
	"github.com/npillmayer/tinyq/dom/style/css"
	"github.com/npillmayer/tinyq/dom/styledtree"
	"github.com/npillmayer/tinyq/tree"
	"golang.org/x/net/html"
)

// engine lays out a single box tree.
type engine struct {
	styles       *styledtree.Tree
	viewport     [2]float64
	scroll       [2]float64 // page scroll, for fixed boxes
	rootFontSize float64
	boxes        map[*html.Node]*Box
	outOfFlow    []*Box
}

// --- Box tree --------------------------------------------------------------

// build creates the box tree for the element children of h, attaching them to
// parent. Elements with display:none do not generate boxes, nor do their
// descendants. Elements with display:contents do not generate a box, but their
// children do.
func (e *engine) build(parent *Box, h *html.Node) {
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type != html.ElementNode {
			continue
		}
		sn := e.styles.Lookup(ch)
		disp := css.DisplayOf(sn)
		if disp.IsNone() {
			continue
		}
		if disp.Contains(css.ContentsMode) {
			e.build(parent, ch)
			continue
		}
		b := newBox(ch, sn)
		b.Display = disp
		b.Position = css.PositionOf(sn)
		b.Sizing = css.BoxSizingOf(sn)
		b.FontSize = e.fontSize(sn, parent.FontSize)
		b.LineHeight = lineHeight(css.GetProperty(sn, "line-height"), b.FontSize)
		parent.AddChild(&b.Node)
		e.boxes[ch] = b
		e.build(b, ch)
	}
}

var fontSizeKeywords = map[string]float64{
	"xx-small": 9,
	"x-small":  10,
	"small":    13,
	"medium":   16,
	"large":    18,
	"x-large":  24,
	"xx-large": 32,
}

// fontSize computes the font size of a node. Font sizes inherit as computed
// values, so only a local declaration is resolved, relative to the parent.
func (e *engine) fontSize(sn *styledtree.StyNode, parent float64) float64 {
	p := css.GetLocalProperty(sn.Styles(), "font-size")
	s := p.String()
	if px, ok := fontSizeKeywords[s]; ok {
		return px
	}
	switch s {
	case "", "inherit":
		return parent
	case "initial":
		return BaseFontSize
	case "smaller":
		return parent / 1.2
	case "larger":
		return parent * 1.2
	}
	d, err := css.ParseDimen(p)
	if err != nil {
		tracer().Debugf("font-size: %v", err)
		return parent
	}
	return d.ResolvePx(css.Context{
		Percent:      parent,
		FontSize:     parent,
		RootFontSize: e.rootFontSize,
		Viewport:     e.viewport,
	}, parent)
}

func lineHeight(p style.Property, fontSize float64) float64 {
	s := p.String()
	if s == "" || s == "normal" {
		return fontSize * DefaultLineHeight
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f * fontSize
	}
	d, err := css.ParseDimen(p)
	if err != nil {
		return fontSize * DefaultLineHeight
	}
	return d.ResolvePx(css.Context{Percent: fontSize, FontSize: fontSize}, fontSize*DefaultLineHeight)
}

// --- Block layout ----------------------------------------------------------

func (e *engine) context(b *Box, percent float64) css.Context {
	return css.Context{
		Percent:      percent,
		FontSize:     b.FontSize,
		RootFontSize: e.rootFontSize,
		Viewport:     e.viewport,
	}
}

// edges resolves margins, borders and padding. Percentages refer to the width
// of the containing block.
func (e *engine) edges(b *Box, cbWidth float64) {
	ctx := e.context(b, cbWidth)
	b.Dimensions.Margin = css.EdgesOf(b.StyledNode, "margin", ctx)
	b.Dimensions.Border = css.EdgesOf(b.StyledNode, "border", ctx)
	b.Dimensions.Padding = css.EdgesOf(b.StyledNode, "padding", ctx)
}

// contentSize computes the size of the content box from a CSS width or height
// property. It returns false for `auto`.
func (e *engine) contentSize(b *Box, key string, ref float64, refDefinite bool) (float64, bool) {
	d := css.DimenOf(b.StyledNode, key)
	if d.IsPercent() && !refDefinite {
		return 0, false
	}
	du, ok := d.Resolve(e.context(b, ref))
	if !ok {
		return 0, false
	}
	v := css.ToPx(du)
	if b.Sizing == css.BorderBox {
		dd := b.Dimensions
		if key == "width" {
			v -= dd.Border.Horizontal() + dd.Padding.Horizontal()
		} else {
			v -= dd.Border.Vertical() + dd.Padding.Vertical()
		}
	}
	return math.Max(v, 0), true
}

func (e *engine) clamp(b *Box, key string, v, ref float64) float64 {
	ctx := e.context(b, ref)
	if min, ok := css.DimenOf(b.StyledNode, "min-"+key).Resolve(ctx); ok {
		v = math.Max(v, css.ToPx(min))
	}
	if max, ok := css.DimenOf(b.StyledNode, "max-"+key).Resolve(ctx); ok {
		v = math.Min(v, css.ToPx(max))
	}
	return v
}

// place lays out an in-flow box. x and y denote the top-left corner of its
// margin box, cb is the content box of the containing block.
// place returns the height of the margin box.
func (e *engine) place(b *Box, x, y float64, cb Rect, cbDefiniteHeight bool) float64 {
	h := e.layout(b, x, y, cb, cb.Width, cbDefiniteHeight)
	if b.Position.IsRelative() {
		e.shiftRelative(b, cb)
	}
	return h
}

// layout computes the dimensions of a box and lays out its content. Boxes with
// width auto fill avail.
func (e *engine) layout(b *Box, x, y float64, cb Rect, avail float64, cbDefiniteHeight bool) float64 {
	e.edges(b, cb.Width)
	dd := &b.Dimensions
	w, ok := e.contentSize(b, "width", cb.Width, true)
	if !ok {
		w = avail - dd.Margin.Horizontal() - dd.Border.Horizontal() - dd.Padding.Horizontal()
	}
	w = math.Max(e.clamp(b, "width", w, cb.Width), 0)
	left := x + dd.Margin.Left + dd.Border.Left + dd.Padding.Left
	top := y + dd.Margin.Top + dd.Border.Top + dd.Padding.Top
	dd.Content = NewRect(left, top, w, 0)
	h, definite := e.contentSize(b, "height", cb.Height, cbDefiniteHeight)
	if definite {
		dd.Content = NewRect(left, top, w, h)
	}
	contentHeight := e.flow(b, definite)
	if !definite {
		dd.Content = NewRect(left, top, w, contentHeight)
	}
	dd.Content.Height = math.Max(e.clamp(b, "height", dd.Content.Height, cb.Height), 0)
	dd.Content = NewRect(left, top, w, dd.Content.Height)
	return dd.MarginBox().Height
}

// flow lays out the children of b one below the other and returns the height
// of the content.
func (e *engine) flow(b *Box, definiteHeight bool) float64 {
	content := b.Dimensions.Content
	cursor := content.Top
	b.overflow = [2]float64{content.Right, content.Top}
	children := b.Children()
	next := 0
	e.flowNodes(b.HTMLNode, func(h *html.Node) {
		if h.Type == html.TextNode {
			cursor += b.LineHeight
			return
		}
		for next < len(children) && children[next].Payload.HTMLNode != h {
			next++
		}
		if next == len(children) {
			return
		}
		child := children[next].Payload
		child.static = [2]float64{content.Left, cursor}
		if child.Position.OutOfFlow() {
			e.outOfFlow = append(e.outOfFlow, child)
			return
		}
		cursor += e.place(child, content.Left, cursor, content, definiteHeight)
		b.overflow[0] = math.Max(b.overflow[0], child.overflow[0])
		b.overflow[1] = math.Max(b.overflow[1], child.overflow[1])
	})
	b.overflow[1] = math.Max(b.overflow[1], cursor)
	return cursor - content.Top
}

// flowNodes calls f for every node contributing to the flow of h: non-blank
// text and rendered elements, with display:contents elements flattened.
func (e *engine) flowNodes(h *html.Node, f func(*html.Node)) {
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		switch ch.Type {
		case html.TextNode:
			if strings.TrimSpace(ch.Data) != "" {
				f(ch)
			}
		case html.ElementNode:
			if _, ok := e.boxes[ch]; ok {
				f(ch)
			} else if sn := e.styles.Lookup(ch); sn != nil && css.DisplayOf(sn).Contains(css.ContentsMode) {
				e.flowNodes(ch, f)
			}
		}
	}
}

// shiftRelative applies the offsets of a relatively positioned box.
func (e *engine) shiftRelative(b *Box, cb Rect) {
	var dx, dy float64
	wctx, hctx := e.context(b, cb.Width), e.context(b, cb.Height)
	if l, ok := b.Position.Offset(css.Left).Resolve(wctx); ok {
		dx = css.ToPx(l)
	} else if r, ok := b.Position.Offset(css.Right).Resolve(wctx); ok {
		dx = -css.ToPx(r)
	}
	if t, ok := b.Position.Offset(css.Top).Resolve(hctx); ok {
		dy = css.ToPx(t)
	} else if bo, ok := b.Position.Offset(css.Bottom).Resolve(hctx); ok {
		dy = -css.ToPx(bo)
	}
	b.translate(dx, dy)
}

// --- Positioned boxes ------------------------------------------------------

// containingBlock returns the padding box of the nearest positioned ancestor of
// an absolutely positioned box, or the initial containing block. For fixed boxes
// it returns the viewport.
func (e *engine) containingBlock(b *Box) Rect {
	if b.Position.IsFixed() {
		return NewRect(e.scroll[0], e.scroll[1], e.viewport[0], e.viewport[1])
	}
	if a := b.AncestorWith(isPositioned); a != nil {
		return a.Payload.Dimensions.PaddingBox()
	}
	return NewRect(0, 0, e.viewport[0], e.viewport[1])
}

func isPositioned(n *tree.Node[*Box]) bool {
	return n.Payload.HTMLNode.Type == html.ElementNode && n.Payload.Position.IsPositioned()
}

// placeOutOfFlow lays out absolutely positioned and fixed boxes, after the
// in-flow layout has been completed. Placing a box may queue further
// positioned descendants.
func (e *engine) placeOutOfFlow() {
	for len(e.outOfFlow) > 0 {
		b := e.outOfFlow[0]
		e.outOfFlow = e.outOfFlow[1:]
		e.placeAbsolute(b)
	}
}

func (e *engine) placeAbsolute(b *Box) {
	cb := e.containingBlock(b)
	e.edges(b, cb.Width)
	dd := &b.Dimensions
	wctx, hctx := e.context(b, cb.Width), e.context(b, cb.Height)
	left, hasLeft := b.Position.Offset(css.Left).Resolve(wctx)
	right, hasRight := b.Position.Offset(css.Right).Resolve(wctx)
	top, hasTop := b.Position.Offset(css.Top).Resolve(hctx)
	bottom, hasBottom := b.Position.Offset(css.Bottom).Resolve(hctx)
	frame := dd.Margin.Horizontal() + dd.Border.Horizontal() + dd.Padding.Horizontal()
	w, ok := e.contentSize(b, "width", cb.Width, true)
	if !ok {
		avail := cb.Width
		if hasLeft {
			avail -= css.ToPx(left)
		}
		if hasRight {
			avail -= css.ToPx(right)
		}
		w = avail - frame
	}
	w = math.Max(e.clamp(b, "width", w, cb.Width), 0)
	x := b.static[0]
	switch {
	case hasLeft:
		x = cb.Left + css.ToPx(left)
	case hasRight:
		x = cb.Right - css.ToPx(right) - w - frame
	}
	// lay out at the top first, then align
	y := b.static[1]
	if hasTop {
		y = cb.Top + css.ToPx(top)
	}
	e.layout(b, x, y, cb, w+frame, true)
	if !hasTop && hasBottom {
		bottomEdge := cb.Bottom - css.ToPx(bottom)
		b.translate(0, bottomEdge-dd.MarginBox().Bottom)
	}
	tracer().Debugf("placed out-of-flow box %v", b)
}
