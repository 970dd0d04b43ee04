/*
Package layout implements a small static layout engine, the geometry host for
package q.

Overview

There is no browser behind an HTML parse tree, so whatever a browser would
report about the geometry of elements (bounding client rects, offset parents,
offsets, client and scroll sizes, computed styles) has to be computed here.
The engine is deliberately simple:

■ Every rendered element generates a block box. Inline elements are laid out as
blocks as well, one per line.

■ Non-blank text contributes one line box of the parent's line height
(`line-height: normal` is 1.2 × font size, the default font size is 16px).

■ Widths come from CSS `width` (respecting `box-sizing`) or fill the
containing block; heights come from CSS `height` or from stacked content.
Margins do not collapse.

■ `position` static, relative, absolute and fixed is supported, together with
the offset properties top, right, bottom and left. Absolutely positioned boxes
are placed relative to the padding box of their nearest positioned ancestor,
fixed boxes relative to the viewport.

A Host holds the styled tree and the box tree of a document. It is computed
lazily and cached per generation of the document (see dom.Document.Cached),
so every mutation of the document will trigger a fresh layout on the next
request.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tinyq.layout'.
func tracer() tracing.Trace {
	return tracing.Select("tinyq.layout")
}

// Defaults for font metrics.
const (
	BaseFontSize      = 16.0 // Default root font size in px.
	DefaultLineHeight = 1.2  // Default multiplier for 'line-height: normal'.
)
