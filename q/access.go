package q

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/npillmayer/tinyq"
	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/dom/style/cssom/douceuradapter"
	"github.com/spf13/cast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// --- Text and HTML ---------------------------------------------------------

// Text returns the text content of the first node.
func (c *Collection) Text() string {
	if n := c.first(); n != nil {
		return dom.TextContent(n)
	}
	return ""
}

// SetText replaces the content of every node by a text.
func (c *Collection) SetText(text string) *Collection {
	if c.err != nil {
		return c
	}
	for _, n := range c.nodes {
		old := dom.ChildNodes(n)
		dom.SetTextContent(n, text)
		c.engine.doc.ForgetDetached(old)
	}
	c.engine.doc.Touch()
	return c
}

// HTML returns the inner HTML of the first node.
func (c *Collection) HTML() string {
	if n := c.first(); n != nil {
		return dom.InnerHTML(n)
	}
	return ""
}

// SetHTML replaces the content of every node by the nodes parsed from markup.
func (c *Collection) SetHTML(markup string) *Collection {
	if c.err != nil {
		return c
	}
	for _, n := range c.elements() {
		old := dom.ChildNodes(n)
		if err := dom.SetInnerHTML(n, markup); err != nil {
			return c.fail(tinyq.SyntaxError("html", -1, "%v", err), "html")
		}
		c.engine.doc.ForgetDetached(old)
	}
	c.engine.doc.Touch()
	return c
}

// OuterHTML returns the HTML of the first node, including its own tags.
func (c *Collection) OuterHTML() string {
	if n := c.first(); n != nil {
		return dom.OuterHTML(n)
	}
	return ""
}

// --- Attributes ------------------------------------------------------------

// Attr returns an attribute of the first node.
func (c *Collection) Attr(key string) (string, bool) {
	return dom.Attr(c.first(), strings.ToLower(key))
}

// SetAttr sets an attribute of every element.
func (c *Collection) SetAttr(key, value string) *Collection {
	return c.SetAttrs(Attrs{key: value})
}

// SetAttrs sets attributes of every element. Keys "_text" and "_html" replace
// the content of the elements.
func (c *Collection) SetAttrs(attrs Attrs) *Collection {
	if c.err != nil {
		return c
	}
	lower := make(Attrs, len(attrs))
	for k, v := range attrs {
		lower[strings.ToLower(k)] = v
	}
	for _, n := range c.elements() {
		if err := applyAttrs(n, lower); err != nil {
			return c.fail(err, "attr")
		}
	}
	c.engine.doc.Touch()
	return c
}

// RemoveAttr removes an attribute from every element.
func (c *Collection) RemoveAttr(key string) *Collection {
	if c.err != nil {
		return c
	}
	for _, n := range c.elements() {
		dom.RemoveAttr(n, strings.ToLower(key))
	}
	c.engine.doc.Touch()
	return c
}

// --- DOM properties --------------------------------------------------------

// propAttrs maps DOM properties reflecting an attribute to the attribute name.
var propAttrs = map[string]string{
	"id": "id", "className": "class", "title": "title", "name": "name", "href": "href",
	"src": "src", "alt": "alt", "lang": "lang", "dir": "dir", "placeholder": "placeholder",
	"htmlFor": "for", "rel": "rel", "target": "target", "action": "action", "method": "method",
}

// boolProps maps boolean DOM properties reflecting an attribute to the attribute
// name.
var boolProps = map[string]string{
	"disabled": "disabled", "readOnly": "readonly", "required": "required",
	"multiple": "multiple", "hidden": "hidden", "autofocus": "autofocus", "open": "open",
}

// readOnlyProps cannot be set.
var readOnlyProps = map[string]bool{
	"tagName": true, "nodeName": true, "nodeType": true, "outerHTML": true,
	"childElementCount": true, "offsetParent": true,
	"offsetLeft": true, "offsetTop": true, "offsetWidth": true, "offsetHeight": true,
	"clientLeft": true, "clientTop": true, "clientWidth": true, "clientHeight": true,
	"scrollWidth": true, "scrollHeight": true,
}

// Prop returns a DOM property of the first node. Properties which are neither
// reflected attributes nor facts about the node are stored per node by the
// document.
func (c *Collection) Prop(key string) any {
	n := c.first()
	if n == nil {
		return nil
	}
	doc := c.engine.doc
	if attr, ok := propAttrs[key]; ok {
		return dom.AttrOr(n, attr, "")
	}
	if attr, ok := boolProps[key]; ok {
		return dom.HasAttr(n, attr)
	}
	switch key {
	case "checked":
		return isChecked(doc, n)
	case "selected":
		return isSelected(doc, n)
	case "value":
		return valueString(doc, n)
	case "type":
		return controlType(n)
	case "tagName", "nodeName":
		return dom.NodeName(n)
	case "nodeType":
		return nodeType(n)
	case "textContent":
		return dom.TextContent(n)
	case "innerHTML":
		return dom.InnerHTML(n)
	case "outerHTML":
		return dom.OuterHTML(n)
	case "childElementCount":
		k := 0
		for ch := dom.FirstElementChild(n); ch != nil; ch = dom.NextElementSibling(ch) {
			k++
		}
		return k
	case "offsetParent":
		return c.engine.host().OffsetParent(n)
	case "offsetLeft", "offsetTop":
		l, t := c.engine.host().Offset(n)
		return pick(key == "offsetLeft", l, t)
	case "offsetWidth", "offsetHeight":
		w, h := c.engine.host().OffsetSize(n)
		return pick(key == "offsetWidth", w, h)
	case "clientLeft", "clientTop", "clientWidth", "clientHeight":
		r := c.engine.host().ClientRect(n)
		return map[string]float64{
			"clientLeft": r.Left, "clientTop": r.Top, "clientWidth": r.Width, "clientHeight": r.Height,
		}[key]
	case "scrollWidth", "scrollHeight":
		w, h := c.engine.host().ScrollSize(n)
		return pick(key == "scrollWidth", w, h)
	case "scrollLeft", "scrollTop":
		s := doc.ScrollOffset(n)
		return pick(key == "scrollLeft", s.X, s.Y)
	}
	v, _ := doc.Expando(n, key)
	return v
}

func pick(first bool, a, b float64) float64 {
	if first {
		return a
	}
	return b
}

func nodeType(n *html.Node) int {
	switch n.Type {
	case html.ElementNode:
		return 1
	case html.TextNode:
		return 3
	case html.CommentNode:
		return 8
	case html.DocumentNode:
		return 9
	case html.DoctypeNode:
		return 10
	}
	return 0
}

// SetProp sets a DOM property of every node. Setting a read-only property is a
// TypeError, as is a value which cannot be converted to the property's type.
func (c *Collection) SetProp(key string, value any) *Collection {
	if c.err != nil {
		return c
	}
	if readOnlyProps[key] {
		return c.fail(tinyq.TypeError("prop", "property %q is read-only", key), "prop")
	}
	doc := c.engine.doc
	touch := true
	for _, n := range c.nodes {
		var err error
		switch key {
		case "checked":
			var b bool
			if b, err = cast.ToBoolE(value); err == nil {
				setChecked(doc, n, b)
			}
			touch = false
		case "selected":
			var b bool
			if b, err = cast.ToBoolE(value); err == nil {
				setSelected(doc, n, b)
			}
			touch = false
		case "value":
			var s string
			if s, err = cast.ToStringE(value); err == nil {
				doc.SetExpando(n, "value", s)
			}
			touch = false
		case "textContent":
			var s string
			if s, err = cast.ToStringE(value); err == nil {
				old := dom.ChildNodes(n)
				dom.SetTextContent(n, s)
				doc.ForgetDetached(old)
			}
		case "innerHTML":
			var s string
			if s, err = cast.ToStringE(value); err == nil {
				old := dom.ChildNodes(n)
				if err = dom.SetInnerHTML(n, s); err == nil {
					doc.ForgetDetached(old)
				}
			}
		case "scrollLeft", "scrollTop":
			var f float64
			if f, err = cast.ToFloat64E(value); err == nil {
				s := doc.ScrollOffset(n)
				if key == "scrollLeft" {
					doc.ScrollTo(n, f, s.Y)
				} else {
					doc.ScrollTo(n, s.X, f)
				}
			}
			touch = false
		default:
			if attr, ok := propAttrs[key]; ok {
				var s string
				if s, err = cast.ToStringE(value); err == nil {
					dom.SetAttr(n, attr, s)
				}
			} else if attr, ok := boolProps[key]; ok {
				var b bool
				if b, err = cast.ToBoolE(value); err == nil {
					if b {
						dom.SetAttr(n, attr, "")
					} else {
						dom.RemoveAttr(n, attr)
					}
				}
			} else {
				doc.SetExpando(n, key, value)
				touch = false
			}
		}
		if err != nil {
			return c.fail(tinyq.TypeError("prop", "cannot set property %q: %v", key, err), "prop")
		}
	}
	if touch {
		doc.Touch()
	}
	return c
}

// --- Styles ----------------------------------------------------------------

// unitless CSS properties do not receive a "px" unit when set from a number.
var unitless = map[string]bool{
	"opacity": true, "z-index": true, "line-height": true, "font-weight": true, "order": true,
	"flex": true, "flex-grow": true, "flex-shrink": true, "zoom": true, "orphans": true,
	"widows": true, "column-count": true,
}

// cssName converts "marginTop" to "margin-top".
func cssName(key string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(key) {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// cssValue converts a style value. Numbers are lengths in pixels, unless the
// property is unitless; nil removes the property.
func cssValue(key string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return "", err
		}
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if unitless[key] {
			return s, nil
		}
		return s + "px", nil
	}
	return "", tinyq.TypeError("style", "unsupported value of type %T for %q", value, key)
}

// Style returns the computed value of a style property of the first node.
// Lengths are reported in pixels.
func (c *Collection) Style(key string) string {
	n := c.first()
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return c.engine.host().ComputedStyle(n, cssName(key))
}

// SetStyle sets an inline style property of every element.
func (c *Collection) SetStyle(key string, value any) *Collection {
	return c.SetStyles(map[string]any{key: value})
}

// SetStyles sets inline style properties of every element. styles must be
// convertible to a map of property names to values.
func (c *Collection) SetStyles(styles any) *Collection {
	if c.err != nil {
		return c
	}
	m, err := styleMap(styles)
	if err != nil {
		return c.fail(tinyq.TypeError("style", "styles must be a map: %v", err), "style")
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make(map[string]string, len(m))
	for _, k := range keys {
		v, err := cssValue(cssName(k), m[k])
		if err != nil {
			return c.fail(err, "style")
		}
		values[k] = v
	}
	for _, n := range c.elements() {
		if err := setInlineStyles(n, keys, values); err != nil {
			return c.fail(err, "style")
		}
	}
	c.engine.doc.Touch()
	return c
}

func styleMap(styles any) (map[string]any, error) {
	if ss, ok := styles.(map[string]string); ok {
		m := make(map[string]any, len(ss))
		for k, v := range ss {
			m[k] = v
		}
		return m, nil
	}
	return cast.ToStringMapE(styles)
}

func setInlineStyles(n *html.Node, keys []string, values map[string]string) error {
	decl := dom.AttrOr(n, "style", "")
	var err error
	for _, k := range keys {
		if decl, err = douceuradapter.SetInlineProperty(decl, cssName(k), values[k]); err != nil {
			return tinyq.SyntaxError("style", -1, "%v", err)
		}
	}
	if decl == "" {
		dom.RemoveAttr(n, "style")
		return nil
	}
	dom.SetAttr(n, "style", decl)
	return nil
}

// isCheckable is true for checkboxes and radio buttons.
func isCheckable(n *html.Node) bool {
	if n.DataAtom != atom.Input {
		return false
	}
	t := controlType(n)
	return t == "checkbox" || t == "radio"
}
