package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// --- Element navigation ----------------------------------------------------

// ParentElement returns the parent of n if it is an element, nil otherwise.
func ParentElement(n *html.Node) *html.Node {
	if n == nil || n.Parent == nil || n.Parent.Type != html.ElementNode {
		return nil
	}
	return n.Parent
}

// FirstElementChild returns the first child of n which is an element.
func FirstElementChild(n *html.Node) *html.Node {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			return ch
		}
	}
	return nil
}

// LastElementChild returns the last child of n which is an element.
func LastElementChild(n *html.Node) *html.Node {
	for ch := n.LastChild; ch != nil; ch = ch.PrevSibling {
		if ch.Type == html.ElementNode {
			return ch
		}
	}
	return nil
}

// NextElementSibling returns the next sibling of n which is an element.
func NextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// PreviousElementSibling returns the previous sibling of n which is an element.
func PreviousElementSibling(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// ElementIndex returns the 0-based position of n among the element children of its
// parent, or -1 for detached nodes.
func ElementIndex(n *html.Node) int {
	if n.Parent == nil {
		return -1
	}
	i := 0
	for s := PreviousElementSibling(n); s != nil; s = PreviousElementSibling(s) {
		i++
	}
	return i
}

// Root returns the top-most ancestor of n (n itself if detached).
func Root(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Contains is true if d is a descendant of n or n itself.
func Contains(n, d *html.Node) bool {
	for ; d != nil; d = d.Parent {
		if d == n {
			return true
		}
	}
	return false
}

// --- Attributes ------------------------------------------------------------

// Attr returns the value of attribute key and whether it is present.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOr returns the value of attribute key or a default.
func AttrOr(n *html.Node, key string, def string) string {
	if v, ok := Attr(n, key); ok {
		return v
	}
	return def
}

// HasAttr checks for the presence of an attribute.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets or replaces an attribute.
func SetAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr removes an attribute, if present.
func RemoveAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// --- Classes ---------------------------------------------------------------

// ClassList returns the classes of an element.
func ClassList(n *html.Node) []string {
	return strings.Fields(AttrOr(n, "class", ""))
}

// HasClass checks if an element carries a class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range ClassList(n) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds a class to an element, if not already present.
func AddClass(n *html.Node, class string) {
	if class == "" || HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.TrimSpace(AttrOr(n, "class", "")+" "+class))
}

// RemoveClass removes every occurence of a class from an element.
func RemoveClass(n *html.Node, class string) {
	cl := ClassList(n)
	r := cl[:0]
	for _, c := range cl {
		if c != class {
			r = append(r, c)
		}
	}
	if len(r) == len(cl) {
		return
	}
	SetAttr(n, "class", strings.Join(r, " "))
}

// ToggleClass adds or removes a class. It returns true if the class is present afterwards.
func ToggleClass(n *html.Node, class string) bool {
	if HasClass(n, class) {
		RemoveClass(n, class)
		return false
	}
	AddClass(n, class)
	return true
}

// --- Content ---------------------------------------------------------------

// TextContent returns the text of n and all of its descendants.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			switch ch.Type {
			case html.TextNode:
				b.WriteString(ch.Data)
			case html.ElementNode, html.DocumentNode:
				collect(ch)
			}
		}
	}
	collect(n)
	return b.String()
}

// SetTextContent replaces all children of n with a single text node.
// For text nodes, the text is replaced.
func SetTextContent(n *html.Node, text string) {
	if n.Type == html.TextNode {
		n.Data = text
		return
	}
	RemoveChildren(n)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// ChildNodes returns the children of n, including text nodes.
func ChildNodes(n *html.Node) []*html.Node {
	var r []*html.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		r = append(r, ch)
	}
	return r
}

// RemoveChildren detaches all children of n in one pass.
func RemoveChildren(n *html.Node) {
	ch := n.FirstChild
	for ch != nil {
		next := ch.NextSibling
		ch.Parent, ch.PrevSibling, ch.NextSibling = nil, nil, nil
		ch = next
	}
	n.FirstChild, n.LastChild = nil, nil
}

// Detach removes n from its parent, if any, and returns it.
func Detach(n *html.Node) *html.Node {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return n
}

// Clone copies a node. If deep is set, all descendants are copied as well.
// The copy is detached.
func Clone(n *html.Node, deep bool) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	if deep {
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			c.AppendChild(Clone(ch, true))
		}
	}
	return c
}

// rawText elements hold their text child verbatim.
func isRawTextElement(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Xmp, atom.Iframe, atom.Noembed, atom.Noframes,
		atom.Noscript, atom.Plaintext:
		return true
	}
	return false
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) string {
	var b bytes.Buffer
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode && isRawTextElement(n) {
			b.WriteString(ch.Data)
			continue
		}
		if err := html.Render(&b, ch); err != nil {
			tracer().Errorf("cannot render node: %v", err)
		}
	}
	return b.String()
}

// OuterHTML renders n including its own tags.
func OuterHTML(n *html.Node) string {
	var b bytes.Buffer
	if err := html.Render(&b, n); err != nil {
		tracer().Errorf("cannot render node: %v", err)
	}
	return b.String()
}

// SetInnerHTML replaces the children of n by the nodes parsed from markup.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := parseFragmentIn(markup, n)
	if err != nil {
		return err
	}
	RemoveChildren(n)
	for _, ch := range nodes {
		n.AppendChild(ch)
	}
	return nil
}

// NodeName returns the W3C node name, e.g. "DIV" or "#text".
func NodeName(n *html.Node) string {
	switch n.Type {
	case html.ElementNode:
		return strings.ToUpper(n.Data)
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DocumentNode:
		return "#document"
	case html.DoctypeNode:
		return n.Data
	}
	return ""
}
