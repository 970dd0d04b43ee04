package q

import (
	"github.com/npillmayer/tinyq"
	"github.com/npillmayer/tinyq/dom"
	"golang.org/x/net/html"
)

// content normalizes the argument of a mutation. Strings are always parsed as
// HTML.
func (e *Engine) content(op string, content any, attrs []Attrs) ([]*html.Node, error) {
	switch c := content.(type) {
	case string:
		return e.fragment(c, attrs)
	case HTML:
		return e.fragment(string(c), attrs)
	case *html.Node:
		if c == nil {
			return nil, tinyq.TypeError(op, "content node is nil")
		}
		return []*html.Node{c}, nil
	case []*html.Node:
		return dropNil(c), nil
	case Nodes:
		return dropNil(c), nil
	case *Collection:
		if c == nil {
			return nil, tinyq.TypeError(op, "content collection is nil")
		}
		if c.err != nil {
			return nil, c.err
		}
		return c.Nodes(), nil
	}
	return nil, tinyq.TypeError(op, "unsupported content of type %T", content)
}

func dropNil(nodes []*html.Node) []*html.Node {
	r := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			r = append(r, n)
		}
	}
	return r
}

// insertion places a content node relative to a target node.
type insertion func(target, n *html.Node)

// mutate distributes content over the targets. Every target but the last one
// receives deep clones of the content; the last one receives the content nodes
// themselves. If reverse is set, content is inserted last to first.
func (c *Collection) mutate(op string, content any, attrs []Attrs, reverse bool,
	accepts func(*html.Node) bool, insert insertion) *Collection {
	//
	if c.err != nil {
		return c
	}
	nodes, err := c.engine.content(op, content, attrs)
	if err != nil {
		return c.fail(err, op)
	}
	var targets []*html.Node
	for _, t := range c.nodes {
		if accepts(t) {
			targets = append(targets, t)
		}
	}
	for _, t := range targets {
		for _, n := range nodes {
			if n == t || dom.Contains(n, t) {
				return c.fail(tinyq.TypeError(op, "cannot insert a node into itself"), op)
			}
		}
	}
	for k, t := range targets {
		last := k == len(targets)-1
		for j := range nodes {
			n := nodes[j]
			if reverse {
				n = nodes[len(nodes)-1-j]
			}
			if last {
				insert(t, dom.Detach(n))
			} else {
				insert(t, dom.Clone(n, true))
			}
		}
	}
	if len(targets) > 0 && len(nodes) > 0 {
		c.engine.doc.Touch()
	}
	tracer().Debugf("%s.%s: %d nodes into %d targets", c.chain, op, len(nodes), len(targets))
	return c
}

func hasParent(n *html.Node) bool {
	return n.Parent != nil
}

// Append inserts content as the last children of every node.
func (c *Collection) Append(content any, attrs ...Attrs) *Collection {
	return c.mutate("append", content, attrs, false, dom.IsContainer, func(t, n *html.Node) {
		t.AppendChild(n)
	})
}

// Prepend inserts content as the first children of every node.
func (c *Collection) Prepend(content any, attrs ...Attrs) *Collection {
	return c.mutate("prepend", content, attrs, true, dom.IsContainer, func(t, n *html.Node) {
		t.InsertBefore(n, t.FirstChild)
	})
}

// Before inserts content in front of every node. Nodes without a parent are
// skipped.
func (c *Collection) Before(content any, attrs ...Attrs) *Collection {
	return c.mutate("before", content, attrs, false, hasParent, func(t, n *html.Node) {
		t.Parent.InsertBefore(n, t)
	})
}

// After inserts content behind every node. Nodes without a parent are skipped.
func (c *Collection) After(content any, attrs ...Attrs) *Collection {
	return c.mutate("after", content, attrs, true, hasParent, func(t, n *html.Node) {
		t.Parent.InsertBefore(n, t.NextSibling)
	})
}

// Remove detaches the nodes passing the filters (all nodes, if there are no
// filters) from their parents. The result holds the removed nodes, which may be
// inserted elsewhere.
func (c *Collection) Remove(filters ...any) *Collection {
	if c.err != nil {
		return c
	}
	removed := c.Nodes()
	if len(filters) > 0 {
		fl, err := c.engine.parseFilters(filters...)
		if err != nil {
			return c.fail(err, "remove")
		}
		removed = fl.apply(removed)
	}
	touched := false
	for _, n := range removed {
		if n.Parent != nil {
			dom.Detach(n)
			touched = true
		}
	}
	if touched {
		c.engine.doc.Touch()
	}
	return c.derive(removed, "remove")
}

// Empty removes all children of every node. Host state kept for the removed
// nodes is dropped; unlike Remove, the children are not meant to be reused.
func (c *Collection) Empty() *Collection {
	if c.err != nil {
		return c
	}
	for _, n := range c.nodes {
		if n.Type == html.TextNode {
			n.Data = ""
			continue
		}
		old := dom.ChildNodes(n)
		dom.RemoveChildren(n)
		c.engine.doc.ForgetDetached(old)
	}
	c.engine.doc.Touch()
	return c
}
