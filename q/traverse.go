package q

import (
	"github.com/npillmayer/tinyq/dom"
	"golang.org/x/net/html"
)

// ancestors collects at most one node per source node, suppressing duplicates
// with a single operation id, and sorts the result into document order.
func (c *Collection) ancestors(step string, filters []any, lookup func(*html.Node) *html.Node) *Collection {
	if c.err != nil {
		return c
	}
	m := c.engine.doc.NewMerger()
	for _, n := range c.nodes {
		m.Add(lookup(n))
	}
	return c.filterWith(m.Sorted(), filters, step)
}

// Parent returns the parent elements of the nodes, in document order. Optional
// filters are applied to the result.
func (c *Collection) Parent(filters ...any) *Collection {
	return c.ancestors("parent", filters, dom.ParentElement)
}

// OffsetParent returns the offset parents of the nodes, in document order.
// Rendered nodes without an offset parent contribute the document element.
func (c *Collection) OffsetParent() *Collection {
	if c.err != nil {
		return c
	}
	host := c.engine.host()
	root := c.engine.doc.Root()
	return c.ancestors("offsetParent", nil, func(n *html.Node) *html.Node {
		if op := host.OffsetParent(n); op != nil {
			return op
		}
		if dom.Contains(root, n) {
			return c.engine.doc.DocumentElement()
		}
		return nil
	})
}

// Closest returns, for every node, the node itself or its nearest ancestor
// element passing the filters. Nodes without such an element contribute
// nothing.
func (c *Collection) Closest(filters ...any) *Collection {
	if c.err != nil {
		return c
	}
	fl, err := c.engine.parseFilters(filters...)
	if err != nil {
		return c.fail(err, "closest")
	}
	return c.ancestors("closest", nil, func(n *html.Node) *html.Node {
		if !dom.IsElement(n) {
			n = dom.ParentElement(n)
		}
		for ; n != nil; n = dom.ParentElement(n) {
			if len(fl.apply([]*html.Node{n})) > 0 {
				return n
			}
		}
		return nil
	})
}

// Children returns the child elements of the nodes, grouped by source node.
// Optional filters are applied to the result.
func (c *Collection) Children(filters ...any) *Collection {
	if c.err != nil {
		return c
	}
	var r []*html.Node
	for _, n := range c.nodes {
		for ch := dom.FirstElementChild(n); ch != nil; ch = dom.NextElementSibling(ch) {
			r = append(r, ch)
		}
	}
	return c.filterWith(r, filters, "children")
}

// Prev returns the immediately preceding sibling element of every node. With
// filters, siblings which do not pass are left out; no further siblings are
// considered.
func (c *Collection) Prev(filters ...any) *Collection {
	return c.siblings("prev", filters, dom.PreviousElementSibling)
}

// Next returns the immediately following sibling element of every node. With
// filters, siblings which do not pass are left out; no further siblings are
// considered.
func (c *Collection) Next(filters ...any) *Collection {
	return c.siblings("next", filters, dom.NextElementSibling)
}

func (c *Collection) siblings(step string, filters []any, sibling func(*html.Node) *html.Node) *Collection {
	if c.err != nil {
		return c
	}
	var r []*html.Node
	for _, n := range c.nodes {
		if s := sibling(n); s != nil {
			r = append(r, s)
		}
	}
	return c.filterWith(r, filters, step)
}

// Siblings returns all sibling elements of the nodes, excluding the nodes
// themselves, in document order.
func (c *Collection) Siblings(filters ...any) *Collection {
	if c.err != nil {
		return c
	}
	m := c.engine.doc.NewMerger()
	for _, n := range c.nodes {
		if n.Parent == nil {
			continue
		}
		for s := dom.FirstElementChild(n.Parent); s != nil; s = dom.NextElementSibling(s) {
			if s != n && !containsNode(c.nodes, s) {
				m.Add(s)
			}
		}
	}
	return c.filterWith(m.Sorted(), filters, "siblings")
}
