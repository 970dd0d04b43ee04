/*
Package format produces HTML from compact templates.

It offers two independent tools:

Shorthand expansion turns an indentation-based tag notation into HTML. Every
line holds one element, indented by tabs:

	ul#nav.menu
		li.item > a[href=/home]: Home
		li: plain
	p: Hello

expands to

	<ul id="nav" class="menu"><li class="item"><a href="/home">Home</a></li><li>plain</li></ul><p>Hello</p>

A line consists of an optional tag name, any number of `#id`, `.class` and
`[name=value,...]` parts, and optional content introduced by `:`. `>` nests the
following element inline. Lines without a tag name but with an id, a class or
attributes produce a div; lines with content only produce the bare content.
Void elements such as img or hr never enclose anything; their content follows
the tag.
Expansions are cached for the lifetime of an Expander.

Token rendering fills an HTML template with data:

	{name}               value of data["name"], HTML-escaped
	{user.name|10.}      dotted path, truncated to 10 characters with ellipsis
	{price|2}            number with at most 2 fraction digits
	{born|Jan 2, 2006}   date in a Go time layout
	{text|md}            Markdown
	{body|!html}         unescaped
	{*name}              empty if unresolved (otherwise the token is kept)
	{$greeting}          language string
	{.}                  the current data value
	{?items}...{/?items} repeat for every element of a truthy value
	{!items}...{/!items} render if the value is falsy
	{#id}                include the template with the given id
	{[text]}             literal text

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package format

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tinyq.format'.
func tracer() tracing.Trace {
	return tracing.Select("tinyq.format")
}
