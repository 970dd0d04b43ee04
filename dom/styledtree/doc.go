/*
Package styledtree is a straightforward implementation of a styled document tree.

Overview

Every element of an HTML parse tree gets a styled node, holding the style
properties declared for it by style sheets and by its `style` attribute.
A styled tree is built by cssom.Styler and read by package css, which
implements inheritance and defaults on top of it.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tinyq.style'.
func tracer() tracing.Trace {
	return tracing.Select("tinyq.style")
}
