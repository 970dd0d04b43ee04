package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses a piece of HTML text and returns its top-level element and
// text nodes, in source order. The nodes are detached. Comments and other node types
// on the top level are dropped.
//
// The parsing context is chosen from the first tag of the markup, so that fragments
// like "<tr>…</tr>" or "<option>…" survive the HTML5 insertion rules.
func ParseFragment(markup string) ([]*html.Node, error) {
	return parseFragmentIn(markup, contextFor(markup))
}

func parseFragmentIn(markup string, context *html.Node) ([]*html.Node, error) {
	if context == nil || context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("cannot parse HTML fragment: %w", err)
	}
	r := nodes[:0]
	for _, n := range nodes {
		if n.Type == html.ElementNode || n.Type == html.TextNode {
			r = append(r, n)
		}
	}
	tracer().Debugf("parsed fragment into %d top-level nodes", len(r))
	return r, nil
}

var fragmentContexts = map[string]atom.Atom{
	"tr":       atom.Tbody,
	"td":       atom.Tr,
	"th":       atom.Tr,
	"tbody":    atom.Table,
	"thead":    atom.Table,
	"tfoot":    atom.Table,
	"caption":  atom.Table,
	"colgroup": atom.Table,
	"col":      atom.Colgroup,
	"option":   atom.Select,
	"optgroup": atom.Select,
}

func contextFor(markup string) *html.Node {
	s := strings.TrimSpace(markup)
	if !strings.HasPrefix(s, "<") {
		return nil
	}
	s = s[1:]
	end := strings.IndexAny(s, " \t\n\r/>")
	if end < 0 {
		end = len(s)
	}
	tag := strings.ToLower(s[:end])
	if a, ok := fragmentContexts[tag]; ok {
		return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	}
	return nil
}

// CreateElement creates a detached element.
func CreateElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

// CreateTextNode creates a detached text node.
func CreateTextNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}
