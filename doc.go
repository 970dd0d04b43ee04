/*
Package tinyq holds the primitives shared by the query engine (package q) and the
template engine (package format): the error taxonomy, a string hash and a few
helpers for merging and inspecting values.

The interesting parts live in sub-packages:

   dom          HTML documents, fragments, document order, node lookups
   dom/style    CSS properties and their cascade
   dom/layout   a static block layout which answers geometry questions
   q            the chainable node collection ("Q engine")
   format       shorthand markup expansion and {token} rendering

Status

Early draft, API may change frequently. Please stay patient.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tinyq

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tinyq'.
func tracer() tracing.Trace {
	return tracing.Select("tinyq")
}
