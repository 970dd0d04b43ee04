package q

import (
	"github.com/npillmayer/tinyq/dom"
	"github.com/npillmayer/tinyq/dom/layout"
	"github.com/npillmayer/tinyq/maybe"
)

// Queryable selects and filters nodes.
type Queryable interface {
	Q(selector string, filters ...any) *Collection
	One(selector string) *Collection
	Filter(filters ...any) *Collection
	Not(filters ...any) *Collection
	Is(filters ...any) bool
}

// Traversable walks the document relative to the nodes of a collection.
type Traversable interface {
	Parent(filters ...any) *Collection
	OffsetParent() *Collection
	Closest(filters ...any) *Collection
	Children(filters ...any) *Collection
	Prev(filters ...any) *Collection
	Next(filters ...any) *Collection
	Siblings(filters ...any) *Collection
}

// Mutable changes the document structure.
type Mutable interface {
	Append(content any, attrs ...Attrs) *Collection
	Prepend(content any, attrs ...Attrs) *Collection
	Before(content any, attrs ...Attrs) *Collection
	After(content any, attrs ...Attrs) *Collection
	Remove(filters ...any) *Collection
	Empty() *Collection
}

// GeometryAccessible reads and writes boxes and positions.
type GeometryAccessible interface {
	Box(kind string, absolute bool) (layout.Rect, error)
	SetBox(kind string, size Size) *Collection
	Position(absolute bool) dom.Point
	SetPosition(x, y maybe.Maybe[float64], absolute bool) *Collection
}

var (
	_ Queryable          = (*Collection)(nil)
	_ Traversable        = (*Collection)(nil)
	_ Mutable            = (*Collection)(nil)
	_ GeometryAccessible = (*Collection)(nil)
)
