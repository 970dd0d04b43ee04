/*
Package q implements chainable collections of DOM nodes ("the Q engine").

A collection is created by an Engine, which is bound to a document:

	doc, _ := dom.ParseString(markup)
	qe := q.New(doc)
	items := qe.Q("ul.menu").Children("li", "@odd")
	items.Class("+striped")

Inputs to Engine.Q may be selectors, HTML fragments, single nodes, node lists,
other collections or the document itself (see Input). Query and traversal
operations return new collections; their nodes are always free of duplicates.
Mutations and geometry setters change the live document and return the
collection they have been called on.

Errors are sticky: once an operation on a collection fails, the resulting
collection carries the error and every operation chained onto it is a no-op.
Clients check for errors at the end of a chain:

	nodes, err := qe.Q("#main").Q("p").Filter("@nth(2n+1)").Result()

Filters

Filter arguments are selector strings, predicate functions, or references to
named filters of the engine's registry, written as `@name` or `@name(param)`.
Built-in filters are

	@matches(sel)  @not(sel)  @has(sel)  @contains(text)
	@blank  @empty  @visible  @hidden  @enabled  @disabled  @checked  @selected
	@first-child  @last-child  @only-child  @nth-child(an+b)
	@nth(an+b)  @first  @last  @odd  @even

Clients may register further filters with Engine.RegisterFilter.

Geometry

Positions and boxes are computed by the document's layout host (package
dom/layout). Elements which are not rendered report zero values.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package q

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tinyq.q'.
func tracer() tracing.Trace {
	return tracing.Select("tinyq.q")
}
