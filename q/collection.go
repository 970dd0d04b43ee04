package q

import (
	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/dom/domdbg"
	"golang.org/x/net/html"
)

// Collection is an ordered set of nodes of a document. A collection holds live
// references to the nodes and never contains a node twice.
type Collection struct {
	engine *Engine
	nodes  []*html.Node
	chain  string
	err    error
}

// derive creates a collection as the result of an operation on c.
func (c *Collection) derive(nodes []*html.Node, step string) *Collection {
	return &Collection{engine: c.engine, nodes: nodes, chain: c.chain + "." + step}
}

// fail creates a collection carrying an error.
func (c *Collection) fail(err error, step string) *Collection {
	tracer().Infof("%s.%s: %v", c.chain, step, err)
	return &Collection{engine: c.engine, chain: c.chain + "." + step, err: err}
}

// Engine returns the engine which created the collection.
func (c *Collection) Engine() *Engine {
	return c.engine
}

// Len returns the number of nodes.
func (c *Collection) Len() int {
	return len(c.nodes)
}

// Nodes returns a copy of the node list.
func (c *Collection) Nodes() []*html.Node {
	return append([]*html.Node(nil), c.nodes...)
}

// Result returns the nodes of a collection, or the error of the first failed
// operation of the chain which produced it.
func (c *Collection) Result() ([]*html.Node, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.Nodes(), nil
}

// Err returns the error of the first failed operation of the chain, if any.
func (c *Collection) Err() error {
	return c.err
}

// Chain returns a description of the chain of operations which produced the
// collection. It is meant for debugging only.
func (c *Collection) Chain() string {
	return c.chain
}

// Get returns the node at index i. Negative indices count from the end.
// It returns nil if i is out of range.
func (c *Collection) Get(i int) *html.Node {
	if i < 0 {
		i += len(c.nodes)
	}
	if i < 0 || i >= len(c.nodes) {
		return nil
	}
	return c.nodes[i]
}

// Eq reduces the collection to the node at index i. Negative indices count
// from the end.
func (c *Collection) Eq(i int) *Collection {
	if c.err != nil {
		return c
	}
	var nodes []*html.Node
	if n := c.Get(i); n != nil {
		nodes = []*html.Node{n}
	}
	return c.derive(nodes, "eq")
}

// First reduces the collection to its first node.
func (c *Collection) First() *Collection {
	return c.Eq(0)
}

// Last reduces the collection to its last node.
func (c *Collection) Last() *Collection {
	return c.Eq(-1)
}

// Each calls f for every node.
func (c *Collection) Each(f func(i int, n *html.Node)) *Collection {
	if c.err != nil {
		return c
	}
	for i, n := range c.nodes {
		f(i, n)
	}
	return c
}

// Index returns the position of n within the collection, or -1.
func (c *Collection) Index(n *html.Node) int {
	for i, x := range c.nodes {
		if x == n {
			return i
		}
	}
	return -1
}

// Add merges the nodes of an input into the collection. The result is in
// document order.
func (c *Collection) Add(input Input, attrs ...Attrs) *Collection {
	if c.err != nil {
		return c
	}
	nodes, _, err := c.engine.normalize(input, attrs)
	if err != nil {
		return c.fail(err, "add")
	}
	m := c.engine.doc.NewMerger()
	m.AddAll(c.nodes)
	m.AddAll(nodes)
	return c.derive(m.Sorted(), "add")
}

// String lists the nodes of the collection, for debugging.
func (c *Collection) String() string {
	if c.err != nil {
		return c.chain + ": " + c.err.Error()
	}
	return domdbg.DumpNodes(c.chain, c.nodes)
}

// first returns the first node, or nil.
func (c *Collection) first() *html.Node {
	if c.err != nil || len(c.nodes) == 0 {
		return nil
	}
	return c.nodes[0]
}

// elements returns the element nodes of the collection.
func (c *Collection) elements() []*html.Node {
	r := make([]*html.Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		if dom.IsElement(n) {
			r = append(r, n)
		}
	}
	return r
}
