package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// WalkDescendants visits all descendants of root in document order, excluding root.
// The walk stops as soon as f returns false.
func WalkDescendants(root *html.Node, f func(*html.Node) bool) {
	walk(root, f)
}

func walk(n *html.Node, f func(*html.Node) bool) bool {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if !f(ch) || !walk(ch, f) {
			return false
		}
	}
	return true
}

// ElementByID returns the first descendant element of root with the given id.
func ElementByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	WalkDescendants(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if v, ok := Attr(n, "id"); ok && v == id {
				found = n
				return false
			}
		}
		return true
	})
	return found
}

// ElementsByClassName returns all descendant elements of root carrying every one
// of the given classes, in document order. If one is set, the search stops at the
// first match.
func ElementsByClassName(root *html.Node, classes []string, one bool) []*html.Node {
	var r []*html.Node
	if len(classes) == 0 {
		return r
	}
	WalkDescendants(root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		have := ClassList(n)
		for _, c := range classes {
			if !contains(have, c) {
				return true
			}
		}
		r = append(r, n)
		return !one
	})
	return r
}

// ElementsByTagName returns all descendant elements of root with the given tag name
// (case-insensitive, "*" for every element), in document order. If one is set, the
// search stops at the first match.
func ElementsByTagName(root *html.Node, tag string, one bool) []*html.Node {
	var r []*html.Node
	tag = strings.ToLower(tag)
	WalkDescendants(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && (tag == "*" || n.Data == tag) {
			r = append(r, n)
			return !one
		}
		return true
	})
	return r
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
