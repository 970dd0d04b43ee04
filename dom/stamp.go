package dom

import (
	"sync/atomic"

	"golang.org/x/net/html"
)

var operations atomic.Uint64

// NextOperation returns a fresh, process-wide unique operation id.
// Operation ids start at 1.
func NextOperation() uint64 {
	return operations.Add(1)
}

// Stamp marks n as visited by operation op. It returns false if n already carries
// the stamp of op, i.e. if n has been seen before during this operation.
//
// Stamps are kept in a table keyed by node identity; the nodes themselves are
// never written.
func (doc *Document) Stamp(n *html.Node, op uint64) bool {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	if doc.stamps[n] == op {
		return false
	}
	doc.stamps[n] = op
	return true
}

// Merger collects nodes for a single operation, suppressing duplicates.
type Merger struct {
	doc   *Document
	op    uint64
	nodes []*html.Node
}

// NewMerger starts a deduplicating operation with a fresh operation id.
func (doc *Document) NewMerger() *Merger {
	return &Merger{doc: doc, op: NextOperation()}
}

// Add appends n, unless it has been added before. It returns true if n was new.
func (m *Merger) Add(n *html.Node) bool {
	if n == nil || !m.doc.Stamp(n, m.op) {
		return false
	}
	m.nodes = append(m.nodes, n)
	return true
}

// AddAll adds every node of a list, in order.
func (m *Merger) AddAll(nodes []*html.Node) {
	for _, n := range nodes {
		m.Add(n)
	}
}

// Nodes returns the collected nodes, in order of first addition.
func (m *Merger) Nodes() []*html.Node {
	return m.nodes
}

// Sorted returns the collected nodes in document order.
func (m *Merger) Sorted() []*html.Node {
	SortDocumentOrder(m.nodes)
	return m.nodes
}
