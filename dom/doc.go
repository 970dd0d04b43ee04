/*
Package dom provides utilities for HTML DOMs as parsed by golang.org/x/net/html.

Status

Early draft, API may change frequently. Please stay patient.

Overview

A Document wraps the root of a parse tree together with the state a browser window
would hold for it: the viewport, the page scroll offset, scroll offsets of elements,
style sheets added by the client, and a generation counter which is bumped on every
mutation so that derived data (computed styles, layout) may be recomputed lazily.

Nodes are plain *html.Node values and are never copied. Operations which merge node
sets from several sources use an operation id together with a stamp table owned by
the document (see NextOperation and Document.Stamp) to suppress duplicates
without writing anything to the nodes themselves.

Fragments of HTML text are parsed with html.ParseFragment and returned as detached
top-level nodes, ready to be inserted somewhere in the tree.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'tinyq.dom'
func tracer() tracing.Trace {
	return tracing.Select("tinyq.dom")
}
