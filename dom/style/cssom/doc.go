/*
Package cssom provides functionality for CSS styling.

Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

Overview

CSSOM is the "CSS Object Model", similar to the DOM for HTML.
A Styler takes style sheets (see interface StyleSheet) and matches their
rules against the elements of an HTML parse tree, using the selector engine of
https://godoc.org/github.com/andybalholm/cascadia.
The result is a styled tree (see package styledtree) holding, for every element,
the properties declared for it after cascading:

   user-agent defaults < style sheet rules < inline `style` attributes

Rules are ordered by specificity and source order, `!important` declarations
win over normal ones. Shorthand properties like `margin` or `border` are
split into their longhands. Inheritance and user-agent defaults are not
resolved here, but by package css when properties are read.

A good explanation of styling may be found in

   https://hacks.mozilla.org/2017/08/inside-a-super-fast-css-engine-quantum-css-aka-stylo/

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tinyq.style'.
func tracer() tracing.Trace {
	return tracing.Select("tinyq.style")
}
