package q

import (
	"strconv"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/tinyq"
	"github.com/npillmayer/tinyq/dom"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/net/html"
)

// FilterFunc is a predicate for nodes of a list. i is the index of n within list.
type FilterFunc func(n *html.Node, i int, list []*html.Node) bool

// NamedFilter is a filter of the registry, referenced as `@name(param)`.
type NamedFilter func(n *html.Node, i int, list []*html.Node, p *Param) bool

// Param is the parameter of a named filter. A Param is created for every
// filter argument and decomposes its text lazily, at most once.
type Param struct {
	Raw string
	doc *dom.Document

	nthOnce sync.Once
	a, b    int
	nthErr  error

	selOnce sync.Once
	sel     cascadia.Matcher
	selErr  error
}

// Document returns the document of the engine evaluating the filter.
func (p *Param) Document() *dom.Document {
	return p.doc
}

// Nth returns the coefficients of a parameter of the form `an+b`.
func (p *Param) Nth() (a, b int, err error) {
	p.nthOnce.Do(func() {
		p.a, p.b, p.nthErr = parseNth(p.Raw)
	})
	return p.a, p.b, p.nthErr
}

// Selector returns the parameter compiled as a selector.
func (p *Param) Selector() (cascadia.Matcher, error) {
	p.selOnce.Do(func() {
		p.sel, p.selErr = compileSelector(p.Raw)
	})
	return p.sel, p.selErr
}

// parseNth decomposes `an+b`. It accepts a bare integer b, the keywords `odd`
// and `even`, and the forms `n`, `-n+3`, `2n`, `3n-1`, etc.
func parseNth(s string) (a, b int, err error) {
	src := s
	s = strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch s {
	case "odd":
		return 2, 1, nil
	case "even":
		return 2, 0, nil
	case "":
		return 0, 0, tinyq.SyntaxError("nth", 0, "empty an+b expression")
	}
	k := strings.IndexByte(s, 'n')
	if k < 0 {
		if !isInteger(s) {
			return 0, 0, tinyq.SyntaxError("nth", 0, "malformed an+b expression %q", src)
		}
		b, _ = strconv.Atoi(s)
		return 0, b, nil
	}
	switch coeff := s[:k]; coeff {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		if !isInteger(coeff) {
			return 0, 0, tinyq.SyntaxError("nth", 0, "malformed coefficient in %q", src)
		}
		a, _ = strconv.Atoi(coeff)
	}
	rest := s[k+1:]
	if rest == "" {
		return a, 0, nil
	}
	if rest[0] != '+' && rest[0] != '-' || !isInteger(rest) {
		return 0, 0, tinyq.SyntaxError("nth", k+1, "malformed constant in %q", src)
	}
	b, _ = strconv.Atoi(rest)
	return a, b, nil
}

// isInteger checks for an optionally signed decimal integer of reasonable size.
func isInteger(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" || len(s) > 9 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// nthMatch checks a 0-based index against an+b, with b counting from 1.
func nthMatch(a, b, index int) bool {
	i := index - b + 1
	if a == 0 {
		return i == 0
	}
	return i%a == 0 && i/a >= 0
}

// --- Parsing filter arguments ----------------------------------------------

type filterTag struct {
	name  string
	param string
	has   bool // has a parameter
	err   error
}

// tags caches parsed filter tags by their source text.
var tags = xsync.NewMapOf[string, filterTag]()

func isNameRune(r rune) bool {
	return r == '-' || r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// parseTag splits `@name(param)` into name and parameter. Parentheses within
// the parameter have to be balanced.
func parseTag(tag string) filterTag {
	t, _ := tags.LoadOrCompute(tag, func() filterTag {
		s := tag[1:]
		k := strings.IndexFunc(s, func(r rune) bool { return !isNameRune(r) })
		if k < 0 && s != "" {
			return filterTag{name: s}
		}
		if k <= 0 {
			return filterTag{err: tinyq.SyntaxError("filter", 1, "missing filter name in %q", tag)}
		}
		ft := filterTag{name: s[:k]}
		if s[k] != '(' {
			return filterTag{err: tinyq.SyntaxError("filter", k+1, "unexpected %q in %q", s[k], tag)}
		}
		depth := 0
		for j := k; j < len(s); j++ {
			switch s[j] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					if strings.TrimSpace(s[j+1:]) != "" {
						return filterTag{err: tinyq.SyntaxError("filter", j+2, "trailing characters in %q", tag)}
					}
					ft.param, ft.has = strings.TrimSpace(s[k+1:j]), true
					return ft
				}
			}
		}
		return filterTag{err: tinyq.SyntaxError("filter", len(tag), "missing ')' in %q", tag)}
	})
	return t
}

type filter func(n *html.Node, i int, list []*html.Node) bool

// FilterList is a sequence of filters, applied one after the other.
type FilterList []filter

// parseFilters compiles filter arguments. Arguments are selector strings,
// `@name(param)` references to named filters, FilterFuncs, or node predicates.
// It returns a nil list if there are no filters.
func (e *Engine) parseFilters(args ...any) (FilterList, error) {
	var fl FilterList
	for _, arg := range args {
		switch a := arg.(type) {
		case string:
			f, err := e.stringFilter(strings.TrimSpace(a))
			if err != nil {
				return nil, err
			}
			if f != nil {
				fl = append(fl, f)
			}
		case Selector:
			f, err := e.stringFilter(strings.TrimSpace(string(a)))
			if err != nil {
				return nil, err
			}
			if f != nil {
				fl = append(fl, f)
			}
		case FilterFunc:
			if a != nil {
				fl = append(fl, filter(a))
			}
		case func(*html.Node, int, []*html.Node) bool:
			if a != nil {
				fl = append(fl, filter(a))
			}
		case dom.NodePredicate:
			if a != nil {
				fl = append(fl, func(n *html.Node, _ int, _ []*html.Node) bool { return a(n) })
			}
		case func(*html.Node) bool:
			if a != nil {
				fl = append(fl, func(n *html.Node, _ int, _ []*html.Node) bool { return a(n) })
			}
		default:
			return nil, tinyq.TypeError("filter", "unsupported filter of type %T", arg)
		}
	}
	return fl, nil
}

// stringFilter compiles a selector or a named filter reference. Empty strings
// yield no filter.
func (e *Engine) stringFilter(s string) (filter, error) {
	if s == "" {
		return nil, nil
	}
	if s[0] != '@' {
		m, err := compileSelector(s)
		if err != nil {
			return nil, err
		}
		return func(n *html.Node, _ int, _ []*html.Node) bool {
			return n.Type == html.ElementNode && m.Match(n)
		}, nil
	}
	t := parseTag(s)
	if t.err != nil {
		return nil, t.err
	}
	nf, ok := e.lookupFilter(t.name)
	if !ok {
		return nil, tinyq.SyntaxError("filter", 1, "unknown filter %q", t.name)
	}
	p := &Param{Raw: t.param, doc: e.doc}
	if check, ok := paramChecks[t.name]; ok {
		if err := check(p, t.has); err != nil {
			return nil, err
		}
	}
	return func(n *html.Node, i int, list []*html.Node) bool {
		return nf(n, i, list, p)
	}, nil
}

// apply runs the filters one after the other, each one on the result of the
// previous one. For filters which do not depend on the position of a node this
// is the same as requiring every filter to pass.
func (fl FilterList) apply(nodes []*html.Node) []*html.Node {
	for _, f := range fl {
		r := make([]*html.Node, 0, len(nodes))
		for i, n := range nodes {
			if f(n, i, nodes) {
				r = append(r, n)
			}
		}
		nodes = r
	}
	return nodes
}

// Filter reduces the collection to the nodes passing all filters. If none of the
// arguments is a valid filter, the collection is returned unchanged.
// Filters apply in order: positional filters such as @nth or @last see the
// list left by the preceding filters, with indices counted afresh.
func (c *Collection) Filter(filters ...any) *Collection {
	if c.err != nil {
		return c
	}
	fl, err := c.engine.parseFilters(filters...)
	if err != nil {
		return c.fail(err, "filter")
	}
	if len(fl) == 0 {
		tracer().Infof("%s.filter: no valid filters, collection unchanged", c.chain)
		return c
	}
	return c.derive(fl.apply(c.Nodes()), "filter")
}

// Not removes the nodes passing all filters from the collection.
func (c *Collection) Not(filters ...any) *Collection {
	if c.err != nil {
		return c
	}
	fl, err := c.engine.parseFilters(filters...)
	if err != nil {
		return c.fail(err, "not")
	}
	if len(fl) == 0 {
		return c
	}
	drop := fl.apply(c.Nodes())
	r := make([]*html.Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		if !containsNode(drop, n) {
			r = append(r, n)
		}
	}
	return c.derive(r, "not")
}

// Is checks if at least one node of the collection passes all filters.
func (c *Collection) Is(filters ...any) bool {
	if c.err != nil || len(c.nodes) == 0 {
		return false
	}
	fl, err := c.engine.parseFilters(filters...)
	if err != nil || len(fl) == 0 {
		return false
	}
	return len(fl.apply(c.Nodes())) > 0
}

// filterWith applies optional filters to the result of an operation.
func (c *Collection) filterWith(nodes []*html.Node, filters []any, step string) *Collection {
	if len(filters) == 0 {
		return c.derive(nodes, step)
	}
	fl, err := c.engine.parseFilters(filters...)
	if err != nil {
		return c.fail(err, step)
	}
	return c.derive(fl.apply(nodes), step)
}

func containsNode(nodes []*html.Node, n *html.Node) bool {
	for _, x := range nodes {
		if x == n {
			return true
		}
	}
	return false
}
