package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/tinyq/dom/style"
	"github.com/npillmayer/tinyq/tree"
	"golang.org/x/net/html"
)

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of general purpose tree
	htmlNode            *html.Node
	declaredStyles      *style.PropertyMap
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node.
func NewNodeForHTMLNode(h *html.Node) *StyNode {
	sn := &StyNode{htmlNode: h}
	sn.Payload = sn // Payload will always reference the node itself
	return sn
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// ParentNode returns the styled parent node, or nil for the root.
func (sn *StyNode) ParentNode() *StyNode {
	if sn == nil {
		return nil
	}
	return Node(sn.Parent())
}

// Styles returns the style properties declared for a node, after cascading
// style sheets and inline styles. May be nil.
func (sn *StyNode) Styles() *style.PropertyMap {
	if sn == nil {
		return nil
	}
	return sn.declaredStyles
}

// SetStyles sets the styling properties of a styled node.
func (sn *StyNode) SetStyles(styles *style.PropertyMap) {
	sn.declaredStyles = styles
}

// --- Tree ------------------------------------------------------------------

// Tree is a styled tree together with an index from HTML nodes to styled nodes.
type Tree struct {
	root  *StyNode
	index map[*html.Node]*StyNode
}

// NewTree creates an empty styled tree for an HTML root node.
func NewTree(h *html.Node) *Tree {
	root := NewNodeForHTMLNode(h)
	return &Tree{
		root:  root,
		index: map[*html.Node]*StyNode{h: root},
	}
}

// Root returns the root of the styled tree.
func (t *Tree) Root() *StyNode {
	return t.root
}

// Add creates a styled node for h as the last child of parent.
func (t *Tree) Add(parent *StyNode, h *html.Node) *StyNode {
	sn := NewNodeForHTMLNode(h)
	parent.AddChild(&sn.Node)
	t.index[h] = sn
	tracer().Debugf("styled node for <%s>", h.Data)
	return sn
}

// Lookup returns the styled node for an HTML node, or nil.
func (t *Tree) Lookup(h *html.Node) *StyNode {
	if t == nil {
		return nil
	}
	return t.index[h]
}

// Size returns the number of styled nodes.
func (t *Tree) Size() int {
	return len(t.index)
}
