/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tinyq/dom/style"
	"github.com/npillmayer/tinyq/dom/style/cssom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'tinyq.style'.
func tracer() tracing.Trace {
	return tracing.Select("tinyq.style")
}

// CSSStyles is an adapter for interface cssom.StyleSheet.
// For an explanation of the motivation behind this design, please refer
// to documentation for interface cssom.StyleSheet.
type CSSStyles struct {
	css css.Stylesheet
}

// Wrap a douceur.css.Stylesheet into CssStyles.
// The stylesheet is now managed by the wrapper.
func Wrap(css *css.Stylesheet) *CSSStyles {
	return &CSSStyles{*css}
}

// Parse parses CSS source text into a style sheet.
func Parse(source string) (*CSSStyles, error) {
	sheet, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("cannot parse style sheet: %w", err)
	}
	return Wrap(sheet), nil
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// Rules returns all the qualified rules of a stylesheet. At-rules (@media,
// @font-face, ...) are not supported and are left out.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	rules := make([]cssom.Rule, 0, len(sheet.css.Rules))
	for _, r := range sheet.css.Rules {
		if r.Kind != css.QualifiedRule {
			tracer().Debugf("skipping at-rule %s", r.Name)
			continue
		}
		rules = append(rules, Rule(*r))
	}
	return rules
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule css.Rule

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.Prelude
}

// Properties returns the property keys of a rule,
// e.g. "margin-top"
func (r Rule) Properties() []string {
	props := make([]string, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property value for a given key with this rule, e.g. "15px".
// If a property is declared more than once, the last declaration wins.
func (r Rule) Value(key string) style.Property {
	if d := r.last(key); d != nil {
		return style.Property(d.Value)
	}
	return ""
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	if d := r.last(key); d != nil {
		return d.Important
	}
	return false
}

func (r Rule) last(key string) *css.Declaration {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if strings.EqualFold(r.Declarations[i].Property, key) {
			return r.Declarations[i]
		}
	}
	return nil
}

var _ cssom.Rule = Rule{}

// ParseInline parses the content of a `style` attribute.
// It is an implementation of cssom.InlineParser.
func ParseInline(decl string) (cssom.Rule, error) {
	decls, err := parser.ParseDeclarations(decl)
	if err != nil {
		return nil, fmt.Errorf("cannot parse style declarations: %w", err)
	}
	return Rule(css.Rule{Kind: css.QualifiedRule, Declarations: decls}), nil
}

var _ cssom.InlineParser = ParseInline

// ExtractStyleElements visits an HTML parse tree and searches for embedded
// <style>s. It returns the content of style-elements as style sheets, in
// document order. Style elements which fail to parse are skipped.
func ExtractStyleElements(htmldoc *html.Node) []*CSSStyles {
	var sheets []*CSSStyles
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.Type != html.ElementNode {
				continue
			}
			if ch.DataAtom == atom.Style {
				if ch.FirstChild == nil {
					continue
				}
				c, err := Parse(ch.FirstChild.Data)
				if err != nil {
					tracer().Errorf("%v", err)
					continue
				}
				sheets = append(sheets, c)
				continue
			}
			walk(ch)
		}
	}
	walk(htmldoc)
	return sheets
}

// SetInlineProperty returns the content of a `style` attribute with property key
// replaced by value. Other declarations keep their order. An empty value removes
// the property. A trailing "!important" in value is honoured.
func SetInlineProperty(decl string, key, value string) (string, error) {
	decls, err := parser.ParseDeclarations(decl)
	if err != nil {
		return decl, fmt.Errorf("cannot parse style declarations: %w", err)
	}
	key = strings.ToLower(strings.TrimSpace(key))
	var b strings.Builder
	for _, d := range decls {
		if strings.EqualFold(d.Property, key) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.String())
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return b.String(), nil
	}
	d := &css.Declaration{Property: key, Value: value}
	if v := strings.TrimSuffix(value, "!important"); v != value {
		d.Value, d.Important = strings.TrimSpace(v), true
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(d.String())
	return b.String(), nil
}
