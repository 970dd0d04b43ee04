package dom

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/net/html"
)

// Document wraps a parsed HTML document together with the host state a browser
// would keep for it: viewport, page and element scroll offsets, user style
// sheets, and DOM-property values which are not reflected as attributes.
//
// The node tree itself is not locked. Concurrent readers are fine, mutations have
// to be serialized by the client. Every mutation performed through tinyq bumps
// the document's generation, which invalidates derived data (computed styles,
// layout).
type Document struct {
	root       *html.Node
	props      props
	generation atomic.Uint64
	mx         sync.Mutex
	stamps     map[*html.Node]uint64
	scroll     map[*html.Node]Point
	expando    map[*html.Node]map[string]any
	cache      map[string]cached
}

// Point is a pair of pixel coordinates.
type Point struct {
	X, Y float64
}

type cached struct {
	generation uint64
	value      any
}

type props struct {
	width, height float64
	pageScroll    Point
	sheets        []string
}

func (p props) init() props {
	if p.width <= 0 {
		p.width = 1024
	}
	if p.height <= 0 {
		p.height = 768
	}
	return p
}

// Option is a type to help initializing documents at creation time.
type Option struct {
	config func(props) props
}

// WithViewport sets the size of the viewport in pixels. The default is 1024 × 768.
func WithViewport(width, height float64) Option {
	return Option{config: func(p props) props {
		p.width, p.height = width, height
		return p
	}}
}

// WithStyleSheet adds a user style sheet. It is cascaded after the document's
// own <style> elements.
func WithStyleSheet(css string) Option {
	return Option{config: func(p props) props {
		p.sheets = append(p.sheets, css)
		return p
	}}
}

// WithPageScroll sets the initial scroll offset of the page.
func WithPageScroll(x, y float64) Option {
	return Option{config: func(p props) props {
		p.pageScroll = Point{X: x, Y: y}
		return p
	}}
}

// NewDocument wraps an existing node tree. root should be a document node, but
// any node will do.
func NewDocument(root *html.Node, opts ...Option) *Document {
	doc := &Document{
		root:    root,
		stamps:  make(map[*html.Node]uint64),
		scroll:  make(map[*html.Node]Point),
		expando: make(map[*html.Node]map[string]any),
		cache:   make(map[string]cached),
	}
	for _, option := range opts {
		doc.props = option.config(doc.props)
	}
	doc.props = doc.props.init()
	return doc
}

// Parse reads an HTML document.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse HTML document: %w", err)
	}
	return NewDocument(root, opts...), nil
}

// ParseString reads an HTML document from a string.
func ParseString(markup string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(markup), opts...)
}

// Root returns the document node.
func (doc *Document) Root() *html.Node {
	return doc.root
}

// DocumentElement returns the <html> element, if any.
func (doc *Document) DocumentElement() *html.Node {
	return FirstElementChild(doc.root)
}

// Body returns the <body> element, if any.
func (doc *Document) Body() *html.Node {
	if doc.root.Type == html.ElementNode && doc.root.Data == "body" {
		return doc.root
	}
	b := ElementsByTagName(doc.root, "body", true)
	if len(b) == 0 {
		return nil
	}
	return b[0]
}

// Viewport returns the viewport's width and height.
func (doc *Document) Viewport() (float64, float64) {
	return doc.props.width, doc.props.height
}

// StyleSheets returns the user style sheets added at creation time.
func (doc *Document) StyleSheets() []string {
	return doc.props.sheets
}

// --- Generation ------------------------------------------------------------

// Generation returns a counter which changes whenever the document is touched.
func (doc *Document) Generation() uint64 {
	return doc.generation.Load()
}

// Touch marks the document as modified.
func (doc *Document) Touch() {
	doc.generation.Add(1)
}

// Cached returns a value derived from the document. The value is computed by build
// once per generation of the document.
func (doc *Document) Cached(key string, build func() any) any {
	gen := doc.Generation()
	doc.mx.Lock()
	c, ok := doc.cache[key]
	doc.mx.Unlock()
	if ok && c.generation == gen {
		return c.value
	}
	v := build()
	doc.mx.Lock()
	doc.cache[key] = cached{generation: gen, value: v}
	doc.mx.Unlock()
	return v
}

// --- Scrolling -------------------------------------------------------------

// PageScroll returns the scroll offset of the page.
func (doc *Document) PageScroll() Point {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	return doc.props.pageScroll
}

// ScrollPageTo sets the scroll offset of the page. Fixed elements move along,
// so this touches the document.
func (doc *Document) ScrollPageTo(x, y float64) {
	doc.mx.Lock()
	doc.props.pageScroll = Point{X: max(x, 0), Y: max(y, 0)}
	doc.mx.Unlock()
	doc.Touch()
}

// ScrollOffset returns the scroll offset of an element.
func (doc *Document) ScrollOffset(n *html.Node) Point {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	return doc.scroll[n]
}

// ScrollTo sets the scroll offset of an element. Negative values are clamped to 0.
func (doc *Document) ScrollTo(n *html.Node, x, y float64) {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	doc.scroll[n] = Point{X: max(x, 0), Y: max(y, 0)}
}

// --- Expando properties ----------------------------------------------------

// Expando returns a DOM property of n which is not reflected as an attribute.
func (doc *Document) Expando(n *html.Node, key string) (any, bool) {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	v, ok := doc.expando[n][key]
	return v, ok
}

// SetExpando stores a DOM property of n which is not reflected as an attribute.
func (doc *Document) SetExpando(n *html.Node, key string, value any) {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	m, ok := doc.expando[n]
	if !ok {
		m = make(map[string]any)
		doc.expando[n] = m
	}
	m[key] = value
}

// Forget drops every piece of host state kept for n and its descendants.
func (doc *Document) Forget(n *html.Node) {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	doc.forget(n)
}

func (doc *Document) forget(n *html.Node) {
	delete(doc.stamps, n)
	delete(doc.scroll, n)
	delete(doc.expando, n)
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		doc.forget(ch)
	}
}

// ForgetDetached drops the host state of those nodes of a list which are no
// longer attached to a parent. It is used after content has been replaced.
func (doc *Document) ForgetDetached(nodes []*html.Node) {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	for _, n := range nodes {
		if n.Parent == nil {
			doc.forget(n)
		}
	}
}

// TrackedNodes returns the number of nodes for which the document keeps host
// state (stamps, scroll offsets or expando properties).
func (doc *Document) TrackedNodes() int {
	doc.mx.Lock()
	defer doc.mx.Unlock()
	seen := make(map[*html.Node]struct{}, len(doc.stamps))
	for n := range doc.stamps {
		seen[n] = struct{}{}
	}
	for n := range doc.scroll {
		seen[n] = struct{}{}
	}
	for n := range doc.expando {
		seen[n] = struct{}{}
	}
	return len(seen)
}

// --- Template sources ------------------------------------------------------

// TemplateByID returns the inner HTML of the element with the given id.
func (doc *Document) TemplateByID(id string) (string, bool) {
	n := ElementByID(doc.root, id)
	if n == nil {
		return "", false
	}
	// x/net/html keeps the content of <template> as regular children
	return InnerHTML(n), true
}
