/*
Package domdbg implements helpers to debug a DOM tree, its styles and its layout.

All dumps are plain text trees, suitable for test logs and the command line:

	#document
	└── <html>
	    └── <body>
	        ├── <div #main .box>
	        │   └── "Hello␣world"
	        └── <p>

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package domdbg

import (
	"fmt"
	"strings"

	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/dom/layout"
	"github.com/npillmayer/tinyq/dom/style"
	"github.com/npillmayer/tinyq/dom/styledtree"
	"github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// DefaultGroups are the style groups dumped by DumpStyles if the caller does
// not provide any.
var DefaultGroups = []string{
	style.PGMargins,
	style.PGPadding,
	style.PGBorder,
	style.PGDisplay,
}

// Label returns a short, single-line description of a node, e.g.
// `<div #main .box>` or `"Hello…"`.
func Label(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	switch n.Type {
	case html.ElementNode:
		var b strings.Builder
		b.WriteString("<" + n.Data)
		if id, ok := dom.Attr(n, "id"); ok {
			b.WriteString(" #" + id)
		}
		for _, c := range dom.ClassList(n) {
			b.WriteString(" ." + c)
		}
		b.WriteString(">")
		return b.String()
	case html.TextNode:
		return shortText(n.Data)
	case html.CommentNode:
		return "<!--" + shortText(n.Data) + "-->"
	}
	return dom.NodeName(n)
}

func shortText(s string) string {
	r := []rune(s)
	if len(r) > 20 {
		s = string(r[:20]) + "…"
	}
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	s = strings.ReplaceAll(s, " ", "␣")
	return `"` + s + `"`
}

// DumpDOM renders the subtree of n. White-space-only text nodes are left out.
func DumpDOM(n *html.Node) string {
	root := treeprint.NewWithRoot(Label(n))
	dumpChildren(root, n)
	return root.String()
}

func dumpChildren(branch treeprint.Tree, n *html.Node) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if dom.IsBlankText(ch) {
			continue
		}
		if ch.FirstChild == nil {
			branch.AddNode(Label(ch))
			continue
		}
		dumpChildren(branch.AddBranch(Label(ch)), ch)
	}
}

// DumpNodes lists a set of nodes, e.g. the content of a collection, each one
// together with its path from the root.
func DumpNodes(title string, nodes []*html.Node) string {
	root := treeprint.NewWithRoot(fmt.Sprintf("%s (%d)", title, len(nodes)))
	for _, n := range nodes {
		root.AddNode(Path(n))
	}
	return root.String()
}

// Path returns the labels of the element ancestors of n, joined by " > ".
func Path(n *html.Node) string {
	var labels []string
	for ; n != nil && n.Type != html.DocumentNode; n = n.Parent {
		labels = append(labels, Label(n))
	}
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return strings.Join(labels, " > ")
}

// DumpStyles renders a styled tree together with the declared properties of a
// selection of property groups. If groups is empty, DefaultGroups is used.
func DumpStyles(t *styledtree.Tree, groups ...string) string {
	if len(groups) == 0 {
		groups = DefaultGroups
	}
	root := treeprint.NewWithRoot(Label(t.Root().HTMLNode()))
	dumpStyled(root, t.Root(), groups)
	return root.String()
}

func dumpStyled(branch treeprint.Tree, sn *styledtree.StyNode, groups []string) {
	for _, g := range groups {
		pg := sn.Styles().Group(g)
		if pg == nil {
			continue
		}
		for _, kv := range pg.Properties() {
			branch.AddMetaNode(g, fmt.Sprintf("%s: %s", kv.Key, kv.Value))
		}
	}
	for _, ch := range sn.Children() {
		child := styledtree.Node(ch)
		dumpStyled(branch.AddBranch(Label(child.HTMLNode())), child, groups)
	}
}

// DumpLayout renders the box tree of a document's layout, with border boxes.
func DumpLayout(host *layout.Host) string {
	root := treeprint.NewWithRoot(fmt.Sprintf("viewport %v", host.Root().Dimensions.Content))
	dumpBoxes(root, host.Root())
	return root.String()
}

func dumpBoxes(branch treeprint.Tree, b *layout.Box) {
	for _, ch := range b.Children() {
		box := ch.Payload
		label := fmt.Sprintf("%s %s %v", Label(box.HTMLNode), box.Position, box.Dimensions.BorderBox())
		if ch.ChildCount() == 0 {
			branch.AddNode(label)
			continue
		}
		dumpBoxes(branch.AddBranch(label), box)
	}
}
