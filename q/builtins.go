package q

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/tinyq"
	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/dom/layout"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// builtinFilters are registered with every engine.
var builtinFilters = map[string]NamedFilter{
	"matches": func(n *html.Node, _ int, _ []*html.Node, p *Param) bool {
		return matchParam(n, p)
	},
	"not": func(n *html.Node, _ int, _ []*html.Node, p *Param) bool {
		return n.Type == html.ElementNode && !matchParam(n, p)
	},
	"has": func(n *html.Node, _ int, _ []*html.Node, p *Param) bool {
		m, err := p.Selector()
		return err == nil && cascadia.Query(n, m) != nil
	},
	"contains": func(n *html.Node, _ int, _ []*html.Node, p *Param) bool {
		return strings.Contains(dom.TextContent(n), p.Raw)
	},
	"blank": func(n *html.Node, _ int, _ []*html.Node, _ *Param) bool {
		return strings.TrimSpace(dom.TextContent(n)) == ""
	},
	"empty": func(n *html.Node, _ int, _ []*html.Node, _ *Param) bool {
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.Type == html.ElementNode || ch.Type == html.TextNode {
				return false
			}
		}
		return true
	},
	"visible": func(n *html.Node, _ int, _ []*html.Node, p *Param) bool {
		return isVisible(layout.For(p.doc), n)
	},
	"hidden": func(n *html.Node, _ int, _ []*html.Node, p *Param) bool {
		return !isVisible(layout.For(p.doc), n)
	},
	"enabled": func(n *html.Node, _ int, _ []*html.Node, _ *Param) bool {
		return isFormControl(n) && !isDisabled(n)
	},
	"disabled": func(n *html.Node, _ int, _ []*html.Node, _ *Param) bool {
		return isFormControl(n) && isDisabled(n)
	},
	"checked": func(n *html.Node, _ int, _ []*html.Node, p *Param) bool {
		if n.DataAtom == atom.Option {
			return isSelected(p.doc, n)
		}
		return isCheckable(n) && isChecked(p.doc, n)
	},
	"selected": func(n *html.Node, _ int, _ []*html.Node, p *Param) bool {
		return n.DataAtom == atom.Option && isSelected(p.doc, n)
	},
	"first-child": func(n *html.Node, _ int, _ []*html.Node, _ *Param) bool {
		return n.Parent != nil && dom.IsElement(n) && dom.PreviousElementSibling(n) == nil
	},
	"last-child": func(n *html.Node, _ int, _ []*html.Node, _ *Param) bool {
		return n.Parent != nil && dom.IsElement(n) && dom.NextElementSibling(n) == nil
	},
	"only-child": func(n *html.Node, _ int, _ []*html.Node, _ *Param) bool {
		return n.Parent != nil && dom.IsElement(n) &&
			dom.PreviousElementSibling(n) == nil && dom.NextElementSibling(n) == nil
	},
	"nth-child": func(n *html.Node, _ int, _ []*html.Node, p *Param) bool {
		inx := dom.ElementIndex(n)
		a, b, err := p.Nth()
		return err == nil && inx >= 0 && nthMatch(a, b, inx)
	},
	"nth": func(_ *html.Node, i int, _ []*html.Node, p *Param) bool {
		a, b, err := p.Nth()
		return err == nil && nthMatch(a, b, i)
	},
	"first": func(_ *html.Node, i int, _ []*html.Node, _ *Param) bool {
		return i == 0
	},
	"last": func(_ *html.Node, i int, list []*html.Node, _ *Param) bool {
		return i == len(list)-1
	},
	"odd": func(_ *html.Node, i int, _ []*html.Node, _ *Param) bool {
		return nthMatch(2, 1, i)
	},
	"even": func(_ *html.Node, i int, _ []*html.Node, _ *Param) bool {
		return nthMatch(2, 0, i)
	},
}

// paramChecks validate the parameters of built-in filters when a filter
// argument is parsed.
var paramChecks = map[string]func(p *Param, has bool) error{
	"matches":   selectorParam,
	"not":       selectorParam,
	"has":       selectorParam,
	"nth":       nthParam,
	"nth-child": nthParam,
	"contains": func(p *Param, has bool) error {
		if !has {
			return tinyq.SyntaxError("filter", -1, "@contains requires a parameter")
		}
		return nil
	},
}

func selectorParam(p *Param, has bool) error {
	if !has || p.Raw == "" {
		return tinyq.SyntaxError("filter", -1, "filter requires a selector parameter")
	}
	_, err := p.Selector()
	return err
}

func nthParam(p *Param, has bool) error {
	if !has {
		return tinyq.SyntaxError("filter", -1, "filter requires an an+b parameter")
	}
	_, _, err := p.Nth()
	return err
}

func matchParam(n *html.Node, p *Param) bool {
	m, err := p.Selector()
	return err == nil && n.Type == html.ElementNode && m.Match(n)
}

// isVisible is true for elements which generate a box with a non-zero extent.
func isVisible(host *layout.Host, n *html.Node) bool {
	if !host.Rendered(n) {
		return false
	}
	w, h := host.OffsetSize(n)
	return w > 0 || h > 0
}

func isFormControl(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Input, atom.Button, atom.Select, atom.Textarea, atom.Option, atom.Optgroup, atom.Fieldset:
		return true
	}
	return false
}

// isDisabled checks the disabled attribute of a control and of its enclosing
// fieldsets and option groups.
func isDisabled(n *html.Node) bool {
	if dom.HasAttr(n, "disabled") {
		return true
	}
	for a := dom.ParentElement(n); a != nil; a = dom.ParentElement(a) {
		if (a.DataAtom == atom.Fieldset || a.DataAtom == atom.Optgroup) && dom.HasAttr(a, "disabled") {
			return true
		}
	}
	return false
}
