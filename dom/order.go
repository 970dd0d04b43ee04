package dom

import (
	"sort"

	"golang.org/x/net/html"
)

// orderKey locates a node: the tree it belongs to (in order of first encounter)
// and the path of child indices from that tree's root.
type orderKey struct {
	tree int
	path []int
}

func pathOf(n *html.Node) (*html.Node, []int) {
	var rev []int
	for n.Parent != nil {
		i := 0
		for s := n.PrevSibling; s != nil; s = s.PrevSibling {
			i++
		}
		rev = append(rev, i)
		n = n.Parent
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return n, rev
}

func (k orderKey) less(o orderKey) bool {
	if k.tree != o.tree {
		return k.tree < o.tree
	}
	for i := 0; i < len(k.path) && i < len(o.path); i++ {
		if k.path[i] != o.path[i] {
			return k.path[i] < o.path[i]
		}
	}
	return len(k.path) < len(o.path) // ancestors precede their descendants
}

// SortDocumentOrder sorts nodes in place into document order. Nodes from different
// trees (e.g., detached fragments) are grouped by tree, in order of the first
// appearance of a tree within nodes.
func SortDocumentOrder(nodes []*html.Node) {
	if len(nodes) < 2 {
		return
	}
	trees := make(map[*html.Node]int)
	keys := make([]orderKey, len(nodes))
	for i, n := range nodes {
		root, path := pathOf(n)
		t, ok := trees[root]
		if !ok {
			t = len(trees)
			trees[root] = t
		}
		keys[i] = orderKey{tree: t, path: path}
	}
	sort.Stable(byKey{nodes, keys})
}

type byKey struct {
	nodes []*html.Node
	keys  []orderKey
}

func (b byKey) Len() int           { return len(b.nodes) }
func (b byKey) Less(i, j int) bool { return b.keys[i].less(b.keys[j]) }
func (b byKey) Swap(i, j int) {
	b.nodes[i], b.nodes[j] = b.nodes[j], b.nodes[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

// Precedes is true if a comes before b in document order. Nodes of different
// trees never precede each other.
func Precedes(a, b *html.Node) bool {
	ra, pa := pathOf(a)
	rb, pb := pathOf(b)
	if ra != rb {
		return false
	}
	return orderKey{path: pa}.less(orderKey{path: pb})
}
