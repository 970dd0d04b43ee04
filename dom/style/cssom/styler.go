package cssom

import (
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/tinyq/dom/style"
	"github.com/npillmayer/tinyq/dom/styledtree"
	"golang.org/x/net/html"
)

// Styler cascades style sheets and inline styles onto the elements of an HTML
// parse tree, producing a styled tree of declared property values.
//
// Declarations are ordered by
//
//	normal < inline normal < !important < inline !important
//
// and, within each class, by selector specificity and source order.
type Styler struct {
	rules  []compiledRule
	inline InlineParser
}

type compiledRule struct {
	sel         cascadia.Sel
	specificity cascadia.Specificity
	order       int
	rule        Rule
}

// NewStyler creates a styler for a set of style sheets. inline parses `style`
// attributes; if it is nil, inline styles are ignored.
func NewStyler(inline InlineParser, sheets ...StyleSheet) *Styler {
	s := &Styler{inline: inline}
	for _, sheet := range sheets {
		s.AddStyleSheet(sheet)
	}
	return s
}

// AddStyleSheet appends the rules of a style sheet. Rules of later sheets win
// over rules of earlier ones with equal specificity. Rules with selectors
// cascadia cannot compile are skipped.
func (s *Styler) AddStyleSheet(sheet StyleSheet) {
	if sheet == nil || sheet.Empty() {
		return
	}
	for _, r := range sheet.Rules() {
		group, err := cascadia.ParseGroup(r.Selector())
		if err != nil {
			tracer().Infof("skipping CSS rule %q: %v", r.Selector(), err)
			continue
		}
		for _, sel := range group {
			s.rules = append(s.rules, compiledRule{
				sel:         sel,
				specificity: sel.Specificity(),
				order:       len(s.rules),
				rule:        r,
			})
		}
	}
	tracer().Debugf("styler holds %d compiled rules", len(s.rules))
}

// RuleCount returns the number of compiled rules.
func (s *Styler) RuleCount() int {
	return len(s.rules)
}

// Style creates a styled tree for root and all element descendants of it.
func (s *Styler) Style(root *html.Node) *styledtree.Tree {
	t := styledtree.NewTree(root)
	t.Root().SetStyles(s.declared(root))
	s.styleChildren(t, t.Root(), root)
	return t
}

func (s *Styler) styleChildren(t *styledtree.Tree, parent *styledtree.StyNode, h *html.Node) {
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type != html.ElementNode {
			continue
		}
		sn := t.Add(parent, ch)
		sn.SetStyles(s.declared(ch))
		s.styleChildren(t, sn, ch)
	}
}

type declaration struct {
	value    style.Property
	priority int
}

const (
	prioNormal    = 0
	prioInline    = 1
	prioImportant = 2
)

// declared computes the winning declarations for a single element.
func (s *Styler) declared(h *html.Node) *style.PropertyMap {
	pmap := style.NewPropertyMap()
	if h.Type != html.ElementNode {
		return pmap
	}
	var matching []compiledRule
	for _, r := range s.rules {
		if r.sel.Match(h) {
			matching = append(matching, r)
		}
	}
	sort.SliceStable(matching, func(i, j int) bool {
		a, b := matching[i], matching[j]
		if a.specificity != b.specificity {
			return a.specificity.Less(b.specificity)
		}
		return a.order < b.order
	})
	decls := make(map[string]declaration)
	for _, r := range matching {
		apply(decls, r.rule, prioNormal)
	}
	if s.inline != nil {
		if attr := inlineStyle(h); attr != "" {
			r, err := s.inline(attr)
			if err != nil {
				tracer().Infof("cannot parse inline style %q: %v", attr, err)
			} else {
				apply(decls, r, prioInline)
			}
		}
	}
	for key, d := range decls {
		pmap.Set(key, d.value)
	}
	return pmap
}

func apply(decls map[string]declaration, r Rule, base int) {
	for _, key := range r.Properties() {
		key = strings.ToLower(key)
		prio := base
		if r.IsImportant(key) {
			prio += prioImportant
		}
		for _, kv := range Longhands(key, r.Value(key)) {
			if d, ok := decls[kv.Key]; ok && d.priority > prio {
				continue
			}
			decls[kv.Key] = declaration{value: kv.Value, priority: prio}
		}
	}
}

// Longhands splits shorthand properties into their components. Other
// properties are returned unchanged.
func Longhands(key string, value style.Property) []style.KeyValue {
	if style.IsCompound(key) {
		kv, err := style.SplitCompoundProperty(key, value)
		if err != nil {
			tracer().Infof("ignoring %s: %v", key, err)
			return nil
		}
		return kv
	}
	return []style.KeyValue{{Key: key, Value: value}}
}

func inlineStyle(h *html.Node) string {
	for _, a := range h.Attr {
		if a.Namespace == "" && a.Key == "style" {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}
