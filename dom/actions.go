package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// NodePredicate is a predicate on DOM nodes.
type NodePredicate func(n *html.Node) bool

// IsElement matches element nodes.
var IsElement NodePredicate = func(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// IsText matches text nodes.
var IsText NodePredicate = func(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsContainer matches nodes which may carry children in a query context,
// i.e. elements and documents.
var IsContainer NodePredicate = func(n *html.Node) bool {
	return n != nil && (n.Type == html.ElementNode || n.Type == html.DocumentNode)
}

// IsBlankText matches text nodes consisting of white-space only.
var IsBlankText NodePredicate = func(n *html.Node) bool {
	return IsText(n) && strings.TrimSpace(n.Data) == ""
}

// Or combines predicates.
func (p NodePredicate) Or(q NodePredicate) NodePredicate {
	return func(n *html.Node) bool {
		return p(n) || q(n)
	}
}
