package q

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/tinyq"
	"github.com/npillmayer/tinyq/dom"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/net/html"
)

// Selector forms which are resolved without the selector engine.
var (
	idSelector    = regexp.MustCompile(`^#([\w-]+)$`)
	classSelector = regexp.MustCompile(`^(?:\.[\w-]+)+$`)
	tagSelector   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)
)

type compiled struct {
	matcher cascadia.Matcher
	err     error
}

// selectors caches compiled selectors by their source text.
var selectors = xsync.NewMapOf[string, compiled]()

// compileSelector returns a matcher for a selector group.
func compileSelector(sel string) (cascadia.Matcher, error) {
	c, _ := selectors.LoadOrCompute(sel, func() compiled {
		g, err := cascadia.ParseGroup(sel)
		if err != nil {
			return compiled{err: err}
		}
		return compiled{matcher: g}
	})
	if c.err != nil {
		return nil, tinyq.SyntaxError("selector", -1, "invalid selector %q: %v", sel, c.err)
	}
	return c.matcher, nil
}

// finder searches the descendants of a node.
type finder func(root *html.Node, one bool) []*html.Node

// finderFor returns a finder for a selector, preferring the direct lookups by
// id, class name and tag name over general selector matching.
func finderFor(selector string) (finder, error) {
	sel := strings.TrimSpace(selector)
	if sel == "" {
		return nil, tinyq.SyntaxError("query", 0, "empty selector")
	}
	if m := idSelector.FindStringSubmatch(sel); m != nil {
		return func(root *html.Node, _ bool) []*html.Node {
			if n := dom.ElementByID(root, m[1]); n != nil {
				return []*html.Node{n}
			}
			return nil
		}, nil
	}
	if classSelector.MatchString(sel) {
		classes := strings.Fields(strings.ReplaceAll(sel, ".", " "))
		return func(root *html.Node, one bool) []*html.Node {
			return dom.ElementsByClassName(root, classes, one)
		}, nil
	}
	if tagSelector.MatchString(sel) {
		tag := strings.ToLower(sel)
		return func(root *html.Node, one bool) []*html.Node {
			return dom.ElementsByTagName(root, tag, one)
		}, nil
	}
	m, err := compileSelector(sel)
	if err != nil {
		return nil, err
	}
	return func(root *html.Node, one bool) []*html.Node {
		if one {
			if n := cascadia.Query(root, m); n != nil {
				return []*html.Node{n}
			}
			return nil
		}
		return cascadia.QueryAll(root, m)
	}, nil
}

// query finds the descendants of a set of parent nodes which match a selector.
// Results of different parents are merged with duplicates suppressed and sorted
// into document order. If one is set, at most one node is returned.
func (e *Engine) query(parents []*html.Node, selector string, one bool) ([]*html.Node, error) {
	find, err := finderFor(selector)
	if err != nil {
		return nil, err
	}
	if len(parents) == 1 {
		if !dom.IsContainer(parents[0]) {
			return nil, nil
		}
		return find(parents[0], one), nil
	}
	m := e.doc.NewMerger()
	for _, p := range parents {
		if !dom.IsContainer(p) {
			continue
		}
		m.AddAll(find(p, one))
		if one && len(m.Nodes()) > 0 {
			break
		}
	}
	return m.Sorted(), nil
}

// Q finds the descendants of the nodes of c which match a selector. Further
// filters (see Filter) are applied to the result.
func (c *Collection) Q(selector string, filters ...any) *Collection {
	if c.err != nil {
		return c
	}
	nodes, err := c.engine.query(c.nodes, selector, false)
	if err != nil {
		return c.fail(err, "q")
	}
	r := c.derive(nodes, "q("+selector+")")
	if len(filters) > 0 {
		return r.Filter(filters...)
	}
	return r
}

// One finds the first descendant of the nodes of c which matches a selector.
func (c *Collection) One(selector string) *Collection {
	if c.err != nil {
		return c
	}
	nodes, err := c.engine.query(c.nodes, selector, true)
	if err != nil {
		return c.fail(err, "one")
	}
	return c.derive(nodes, "one("+selector+")")
}
