package css

import (
	"github.com/npillmayer/tinyq/dom/style"
	"github.com/npillmayer/tinyq/dom/styledtree"
)

// defaults holds the initial values of inherited properties. Properties
// cascading all the way up to the root will be found here.
var defaults = style.InitializeDefaultPropertyValues(nil)

// GetCascadedProperty gets the value of a property. The search cascades to
// parent property maps, if available, and finally to the user-agent defaults.
//
// Clients will usually call GetProperty(…) instead as this will respect
// CSS semantics for inherited properties.
func GetCascadedProperty(node *styledtree.StyNode, key string) style.Property {
	for node != nil {
		p := GetLocalProperty(node.Styles(), key)
		if !p.IsEmpty() && !p.IsInherit() {
			if p.IsInitial() {
				return initialValue(node, key)
			}
			return p
		}
		node = node.ParentNode()
	}
	if p, ok := defaults.Property(key); ok {
		return p
	}
	return style.GetUserAgentDefaultProperty(nil, key)
}

// GetProperty gets the value of a property. If the property is not set
// locally on the style node and the property is inheritable, the search
// cascades to parent property maps. Otherwise the user-agent default
// is returned.
func GetProperty(node *styledtree.StyNode, key string) style.Property {
	if node == nil {
		return style.GetUserAgentDefaultProperty(nil, key)
	}
	p := GetLocalProperty(node.Styles(), key)
	switch {
	case p.IsInherit():
		return GetCascadedProperty(node.ParentNode(), key)
	case p.IsInitial():
		return initialValue(node, key)
	case p.IsEmpty() && style.IsCascading(key):
		return GetCascadedProperty(node.ParentNode(), key)
	case p.IsEmpty():
		return style.GetUserAgentDefaultProperty(node.HTMLNode(), key)
	}
	return p
}

func initialValue(node *styledtree.StyNode, key string) style.Property {
	if p, ok := defaults.Property(key); ok {
		return p
	}
	return style.GetUserAgentDefaultProperty(node.HTMLNode(), key)
}

// GetLocalProperty returns a style property value, if it is set locally
// for a styled node's property map. No cascading is performed.
func GetLocalProperty(pmap *style.PropertyMap, key string) style.Property {
	p, _ := pmap.Property(key)
	return p
}

// --- Typed accessors -------------------------------------------------------

// DisplayOf returns the display mode of a styled node.
func DisplayOf(node *styledtree.StyNode) DisplayMode {
	p := GetProperty(node, "display")
	d, err := ParseDisplay(p.String())
	if err != nil {
		tracer().Debugf("%v", err)
	}
	return d
}

// PositionOf returns the position of a styled node, including its offsets.
func PositionOf(node *styledtree.StyNode) PositionT {
	return PositionWithOffsets(GetProperty(node, "position"), func(key string) style.Property {
		return GetProperty(node, key)
	})
}

// BoxSizingOf returns the box-sizing mode of a styled node.
func BoxSizingOf(node *styledtree.StyNode) BoxSizing {
	return ParseBoxSizing(GetProperty(node, "box-sizing"))
}

// DimenOf returns a length property of a styled node.
func DimenOf(node *styledtree.StyNode, key string) DimenT {
	return DimenOrAuto(GetProperty(node, key))
}

// EdgesOf resolves the four sides of margins ("margin"), padding ("padding") or
// border widths ("border") to pixels. Borders with style none or hidden have
// zero width.
func EdgesOf(node *styledtree.StyNode, kind string, ctx Context) Edges {
	var e [4]float64
	for i, dir := range [4]string{"top", "right", "bottom", "left"} {
		key := kind + "-" + dir
		if kind == "border" {
			if s := GetProperty(node, key+"-style"); s == "none" || s == "hidden" {
				continue
			}
			key += "-width"
		}
		e[i] = DimenOf(node, key).ResolvePx(ctx, 0)
	}
	return Edges{Top: e[0], Right: e[1], Bottom: e[2], Left: e[3]}
}
