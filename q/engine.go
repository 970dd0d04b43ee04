package q

import (
	"strings"

	"github.com/npillmayer/tinyq"
	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/dom/layout"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/net/html"
)

// Engine creates collections for the nodes of a document. It owns the registry
// of named filters.
type Engine struct {
	doc     *dom.Document
	filters *xsync.MapOf[string, NamedFilter]
}

type props struct {
	filters map[string]NamedFilter
}

func (p props) init() props {
	if p.filters == nil {
		p.filters = make(map[string]NamedFilter)
	}
	return p
}

// Option is a type to help initializing engines at creation time.
type Option struct {
	config func(props) props
}

// WithFilter registers a named filter. A filter with the name of a built-in
// filter replaces the built-in one.
func WithFilter(name string, f NamedFilter) Option {
	return Option{config: func(p props) props {
		p = p.init()
		p.filters[name] = f
		return p
	}}
}

// WithFilters registers a set of named filters.
func WithFilters(filters map[string]NamedFilter) Option {
	return Option{config: func(p props) props {
		p = p.init()
		if err := tinyq.Extend(p.filters, filters, true); err != nil {
			tracer().Errorf("cannot register filters: %v", err)
		}
		return p
	}}
}

// New creates an engine for a document.
func New(doc *dom.Document, opts ...Option) *Engine {
	var p props
	for _, option := range opts {
		p = option.config(p)
	}
	p = p.init()
	e := &Engine{
		doc:     doc,
		filters: xsync.NewMapOf[string, NamedFilter](),
	}
	for name, f := range builtinFilters {
		e.filters.Store(name, f)
	}
	for name, f := range p.filters {
		if f != nil {
			e.filters.Store(name, f)
		}
	}
	return e
}

// Document returns the document the engine is bound to.
func (e *Engine) Document() *dom.Document {
	return e.doc
}

// RegisterFilter adds a named filter to the registry of the engine, to be
// referenced as `@name` or `@name(param)`.
func (e *Engine) RegisterFilter(name string, f NamedFilter) error {
	if f == nil {
		return tinyq.TypeError("register filter", "filter %q is nil", name)
	}
	if name == "" || strings.IndexFunc(name, func(r rune) bool { return !isNameRune(r) }) >= 0 {
		return tinyq.SyntaxError("register filter", -1, "invalid filter name %q", name)
	}
	e.filters.Store(name, f)
	return nil
}

func (e *Engine) lookupFilter(name string) (NamedFilter, bool) {
	return e.filters.Load(name)
}

// Q creates a collection from an input (see Input). attrs are applied to the
// top-level elements of HTML fragments.
func (e *Engine) Q(input any, attrs ...Attrs) *Collection {
	nodes, origin, err := e.normalize(input, attrs)
	c := &Collection{engine: e, nodes: nodes, chain: "q(" + origin + ")"}
	if err != nil {
		c.nodes, c.err = nil, err
	}
	tracer().Debugf("%s: %d nodes", c.chain, len(c.nodes))
	return c
}

// One is Q for selectors, returning at most one node.
func (e *Engine) One(selector string) *Collection {
	c := &Collection{engine: e, chain: "one(" + selector + ")"}
	c.nodes, c.err = e.query([]*html.Node{e.doc.Root()}, selector, true)
	return c
}

func (e *Engine) host() *layout.Host {
	return layout.For(e.doc)
}
