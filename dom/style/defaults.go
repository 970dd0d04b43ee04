package style

import (
	"golang.org/x/net/html"
)

// Initial values of properties which are not inherited. Inherited properties
// take their initial value from the root of the defaults map.
var isDimension = map[string]string{
	"width":                      "auto",
	"height":                     "auto",
	"min-width":                  "none",
	"min-height":                 "none",
	"max-width":                  "none",
	"max-height":                 "none",
	"box-sizing":                 "content-box",
	"top":                        "auto",
	"right":                      "auto",
	"bottom":                     "auto",
	"left":                       "auto",
	"z-index":                    "auto",
	"margin-top":                 "0",
	"margin-left":                "0",
	"margin-right":               "0",
	"margin-bottom":              "0",
	"padding-top":                "0",
	"padding-left":               "0",
	"padding-right":              "0",
	"padding-bottom":             "0",
	"border-top-width":           "medium",
	"border-left-width":          "medium",
	"border-right-width":         "medium",
	"border-bottom-width":        "medium",
	"border-top-style":           "none",
	"border-left-style":          "none",
	"border-right-style":         "none",
	"border-bottom-style":        "none",
	"border-top-left-radius":     "0",
	"border-top-right-radius":    "0",
	"border-bottom-left-radius":  "0",
	"border-bottom-right-radius": "0",
}

var nonInherited = map[string]string{
	"position":            "static",
	"float":               "none",
	"overflow":            "visible",
	"background-color":    "transparent",
	"border-top-color":    "currentcolor",
	"border-left-color":   "currentcolor",
	"border-right-color":  "currentcolor",
	"border-bottom-color": "currentcolor",
}

// GetUserAgentDefaultProperty returns the user-agent default property for a given key.
// Properties without a known default return NullStyle.
func GetUserAgentDefaultProperty(node *html.Node, key string) Property {
	switch key {
	case "display":
		return DisplayPropertyForHTMLNode(node)
	case "margin-top", "margin-bottom":
		if m, ok := blockMargins[elementName(node)]; ok {
			return Property(m)
		}
	}
	if dim, ok := isDimension[key]; ok {
		return Property(dim)
	}
	if p, ok := nonInherited[key]; ok {
		return Property(p)
	}
	return NullStyle
}

// UA style sheets give some block elements vertical margins.
var blockMargins = map[string]string{
	"p":          "16px",
	"ul":         "16px",
	"ol":         "16px",
	"blockquote": "16px",
	"h1":         "21px",
	"h2":         "20px",
	"h3":         "19px",
}

func elementName(node *html.Node) string {
	if node == nil || node.Type != html.ElementNode {
		return ""
	}
	return node.Data
}

// DisplayPropertyForHTMLNode returns the default `display` CSS property for an HTML node.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	if node.Type == html.DocumentNode {
		return "block"
	}
	if node.Type == html.TextNode {
		return "inline"
	}
	if node.Type != html.ElementNode {
		return "none"
	}
	switch node.Data {
	case "head", "script", "style", "template", "title", "meta", "link", "base", "noscript":
		return "none"
	case "html", "address", "article", "aside", "blockquote", "body", "dd", "details",
		"dialog", "div", "dl", "dt", "fieldset", "figcaption", "figure", "footer", "form",
		"h1", "h2", "h3", "h4", "h5", "h6", "header", "hr", "main", "nav", "ol", "p",
		"pre", "section", "summary", "ul":
		return "block"
	case "li":
		return "list-item"
	case "table":
		return "table"
	case "tr":
		return "table-row"
	case "td", "th":
		return "table-cell"
	case "thead":
		return "table-header-group"
	case "tbody":
		return "table-row-group"
	case "tfoot":
		return "table-footer-group"
	case "caption":
		return "table-caption"
	case "a", "abbr", "b", "bdi", "bdo", "br", "cite", "code", "em", "i", "kbd", "label",
		"mark", "q", "s", "samp", "small", "span", "strong", "sub", "sup", "time", "u", "var":
		return "inline"
	case "img", "input", "button", "select", "textarea", "meter", "progress", "canvas",
		"video", "audio", "iframe", "object":
		return "inline-block"
	}
	tracer().Debugf("unknown HTML element %s will be set to display: block", node.Data)
	return "block"
}

// InitializeDefaultPropertyValues creates an internal data structure to
// hold all the default values for CSS properties.
// In real-world browsers these are the user-agent CSS values.
//
// Inherited properties are found here when no ancestor of a node declares them.
func InitializeDefaultPropertyValues(additionalProps []KeyValue) *PropertyMap {
	m := make(map[string]*PropertyGroup, 15)
	root := NewPropertyGroup("Root")

	x := NewPropertyGroup(PGX) // special group for extension properties
	for _, kv := range additionalProps {
		x.Set(kv.Key, kv.Value)
	}
	m[PGX] = x

	for key, value := range isDimension {
		g := GroupNameFromPropertyKey(key)
		if m[g] == nil {
			m[g] = NewPropertyGroup(g)
			m[g].Parent = root
		}
		m[g].Set(key, Property(value))
	}

	display := NewPropertyGroup(PGDisplay)
	display.Set("display", "inline")
	display.Set("float", "none")
	display.Set("visibility", "visible")
	display.Set("overflow", "visible")
	display.Parent = root
	m[PGDisplay] = display

	m[PGPosition].Set("position", "static")

	color := NewPropertyGroup(PGColor)
	color.Set("color", "black")
	color.Set("background-color", "transparent")
	color.Parent = root
	m[PGColor] = color

	text := NewPropertyGroup(PGText)
	text.Set("direction", "ltr")
	text.Set("white-space", "normal")
	text.Set("word-spacing", "normal")
	text.Set("letter-spacing", "normal")
	text.Set("word-break", "normal")
	text.Set("overflow-wrap", "normal")
	text.Set("font-size", "16px")
	text.Set("line-height", "normal")
	text.Parent = root
	m[PGText] = text

	return &PropertyMap{m}
}
