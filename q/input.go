package q

import (
	"strings"

	"github.com/npillmayer/tinyq"
	"github.com/npillmayer/tinyq/dom"
	"golang.org/x/net/html"
)

// Input is the type of arguments accepted by Engine.Q and Collection.Add.
// It is one of
//
//	Selector, HTML, *html.Node, Nodes, []*html.Node, *Collection, *dom.Document
//
// Plain strings are interpreted as HTML if they start with '<' (after leading
// white-space), and as selectors otherwise. Anything else is a TypeError.
type Input = any

// Selector is a CSS selector.
type Selector string

// HTML is a fragment of HTML text.
type HTML string

// Nodes is a list of nodes.
type Nodes []*html.Node

// Attrs are attributes applied to the top-level elements of HTML fragments.
// Keys "_text" and "_html" set the text and the inner HTML of an element.
type Attrs map[string]string

// resolve maps an input to its variant.
func resolve(input Input) (Input, error) {
	switch in := input.(type) {
	case string:
		if strings.HasPrefix(strings.TrimLeft(in, " \t\r\n"), "<") {
			return HTML(in), nil
		}
		return Selector(in), nil
	case []*html.Node:
		return Nodes(in), nil
	case *html.Node:
		if in == nil {
			return nil, tinyq.TypeError("q", "input node is nil")
		}
		return in, nil
	case *Collection:
		if in == nil {
			return nil, tinyq.TypeError("q", "input collection is nil")
		}
		return in, nil
	case *dom.Document:
		if in == nil {
			return nil, tinyq.TypeError("q", "input document is nil")
		}
		return in, nil
	case Selector, HTML, Nodes:
		return in, nil
	}
	return nil, tinyq.TypeError("q", "unsupported input of type %T", input)
}

// normalize turns an input into a duplicate-free list of nodes, together with
// a tag describing its origin.
func (e *Engine) normalize(input Input, attrs []Attrs) ([]*html.Node, string, error) {
	in, err := resolve(input)
	if err != nil {
		return nil, "?", err
	}
	switch in := in.(type) {
	case Selector:
		nodes, err := e.query([]*html.Node{e.doc.Root()}, string(in), false)
		return nodes, string(in), err
	case HTML:
		nodes, err := e.fragment(string(in), attrs)
		return nodes, "<fragment>", err
	case *html.Node:
		return []*html.Node{in}, dom.NodeName(in), nil
	case Nodes:
		m := e.doc.NewMerger()
		m.AddAll(in)
		return m.Nodes(), "nodes", nil
	case *Collection:
		if in.err != nil {
			return nil, in.chain, in.err
		}
		return append([]*html.Node(nil), in.nodes...), in.chain, nil
	case *dom.Document:
		return []*html.Node{in.Root()}, "#document", nil
	}
	return nil, "?", tinyq.TypeError("q", "unsupported input of type %T", input)
}

// fragment instantiates an HTML fragment. Only the top-level element and text
// nodes are returned; attrs are applied to the top-level elements.
func (e *Engine) fragment(markup string, attrs []Attrs) ([]*html.Node, error) {
	nodes, err := dom.ParseFragment(markup)
	if err != nil {
		return nil, tinyq.SyntaxError("fragment", -1, "%v", err)
	}
	if len(attrs) == 0 {
		return nodes, nil
	}
	merged := Attrs{}
	for _, a := range attrs {
		if err := tinyq.Extend(merged, a, true); err != nil {
			return nil, tinyq.TypeError("fragment", "cannot merge attributes: %v", err)
		}
	}
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		if err := applyAttrs(n, merged); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

func applyAttrs(n *html.Node, attrs Attrs) error {
	for k, v := range attrs {
		switch k {
		case "_text":
			dom.SetTextContent(n, v)
		case "_html":
			if err := dom.SetInnerHTML(n, v); err != nil {
				return tinyq.SyntaxError("fragment", -1, "%v", err)
			}
		default:
			dom.SetAttr(n, k, v)
		}
	}
	return nil
}
