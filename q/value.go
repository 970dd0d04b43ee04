package q

import (
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/tinyq"
	"github.com/npillmayer/tinyq/dom"
	"github.com/spf13/cast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Form control state which is not reflected as attributes ("dirty" values,
// checkedness, selectedness) is kept as expando properties of the document.
// Attributes provide the defaults.

func controlType(n *html.Node) string {
	t := strings.ToLower(strings.TrimSpace(dom.AttrOr(n, "type", "")))
	switch n.DataAtom {
	case atom.Input:
		if t == "" {
			return "text"
		}
	case atom.Button:
		if t == "" {
			return "submit"
		}
	case atom.Select:
		if dom.HasAttr(n, "multiple") {
			return "select-multiple"
		}
		return "select-one"
	case atom.Textarea:
		return "textarea"
	}
	return t
}

func isChecked(doc *dom.Document, n *html.Node) bool {
	if v, ok := doc.Expando(n, "checked"); ok {
		return cast.ToBool(v)
	}
	return dom.HasAttr(n, "checked")
}

// setChecked changes the checkedness of a control. Checking a radio button
// unchecks the other buttons of its group.
func setChecked(doc *dom.Document, n *html.Node, on bool) {
	if on && controlType(n) == "radio" {
		for _, r := range radioGroup(n) {
			if r != n {
				doc.SetExpando(r, "checked", false)
			}
		}
	}
	doc.SetExpando(n, "checked", on)
}

// radioGroup returns the radio buttons sharing the name of n within the same
// form, or within the document if n is not part of a form.
func radioGroup(n *html.Node) []*html.Node {
	name, ok := dom.Attr(n, "name")
	if !ok || name == "" {
		return []*html.Node{n}
	}
	scope := dom.Root(n)
	for a := dom.ParentElement(n); a != nil; a = dom.ParentElement(a) {
		if a.DataAtom == atom.Form {
			scope = a
			break
		}
	}
	var group []*html.Node
	dom.WalkDescendants(scope, func(x *html.Node) bool {
		if x.DataAtom == atom.Input && controlType(x) == "radio" && dom.AttrOr(x, "name", "") == name {
			group = append(group, x)
		}
		return true
	})
	return group
}

func isSelected(doc *dom.Document, n *html.Node) bool {
	if v, ok := doc.Expando(n, "selected"); ok {
		return cast.ToBool(v)
	}
	return dom.HasAttr(n, "selected")
}

// setSelected changes the selectedness of an option. For single selects the
// other options are deselected.
func setSelected(doc *dom.Document, n *html.Node, on bool) {
	if on {
		if sel := selectOf(n); sel != nil && !dom.HasAttr(sel, "multiple") {
			for _, o := range options(sel) {
				doc.SetExpando(o, "selected", false)
			}
		}
	}
	doc.SetExpando(n, "selected", on)
}

func selectOf(option *html.Node) *html.Node {
	for a := dom.ParentElement(option); a != nil; a = dom.ParentElement(a) {
		if a.DataAtom == atom.Select {
			return a
		}
	}
	return nil
}

func options(sel *html.Node) []*html.Node {
	return dom.ElementsByTagName(sel, "option", false)
}

// selectedOptions returns the selected options of a select element. A single
// select without an explicitly selected option selects its first option.
func selectedOptions(doc *dom.Document, sel *html.Node) []*html.Node {
	var r []*html.Node
	opts := options(sel)
	for _, o := range opts {
		if isSelected(doc, o) {
			r = append(r, o)
		}
	}
	if len(r) == 0 && !dom.HasAttr(sel, "multiple") && len(opts) > 0 {
		r = opts[:1]
	}
	if len(r) > 1 && !dom.HasAttr(sel, "multiple") {
		r = r[len(r)-1:]
	}
	return r
}

// valueString is the string value of a control.
func valueString(doc *dom.Document, n *html.Node) string {
	if v, ok := doc.Expando(n, "value"); ok {
		return cast.ToString(v)
	}
	switch n.DataAtom {
	case atom.Textarea:
		return dom.TextContent(n)
	case atom.Option:
		if v, ok := dom.Attr(n, "value"); ok {
			return v
		}
		return strings.TrimSpace(dom.TextContent(n))
	case atom.Select:
		if opts := selectedOptions(doc, n); len(opts) > 0 {
			return valueString(doc, opts[0])
		}
		return ""
	case atom.Input:
		if v, ok := dom.Attr(n, "value"); ok {
			return v
		}
		if t := controlType(n); t == "checkbox" || t == "radio" {
			return "on"
		}
		return ""
	}
	return dom.AttrOr(n, "value", "")
}

// Layouts of date inputs, as produced by truncating an ISO timestamp.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
)

// Value returns the value of the first form control, converted by type:
//
//	checkbox                   bool
//	radio                      value of the checked button of the group, or nil
//	file                       []string (read-only, always empty)
//	number, range              float64, or nil if not a number
//	date, datetime-local       time.Time (UTC), or nil
//	select-multiple            []string of selected values
//	form                       map[string]any of the form's controls
//
// Other controls report their value as a string.
func (c *Collection) Value() any {
	n := c.first()
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return value(c.engine.doc, n)
}

func value(doc *dom.Document, n *html.Node) any {
	if n.DataAtom == atom.Form {
		return formValues(doc, n)
	}
	switch controlType(n) {
	case "checkbox":
		return isChecked(doc, n)
	case "radio":
		for _, r := range radioGroup(n) {
			if isChecked(doc, r) {
				return valueString(doc, r)
			}
		}
		return nil
	case "file":
		return []string{}
	case "number", "range":
		s := strings.TrimSpace(valueString(doc, n))
		if s == "" {
			return nil
		}
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return nil
		}
		return f
	case "date":
		return parseDate(valueString(doc, n), dateLayout)
	case "datetime-local":
		return parseDate(valueString(doc, n), dateTimeLayout)
	case "select-multiple":
		values := []string{}
		for _, o := range selectedOptions(doc, n) {
			values = append(values, valueString(doc, o))
		}
		return values
	}
	return valueString(doc, n)
}

// parseDate reads a date input value. Longer ISO timestamps are truncated to
// the precision of the input type.
func parseDate(s string, layout string) any {
	s = strings.TrimSpace(s)
	if len(s) > len(layout) {
		s = s[:len(layout)]
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return nil
	}
	return t
}

func formatDate(v any, layout string) (string, error) {
	switch d := v.(type) {
	case time.Time:
		return d.UTC().Format(layout), nil
	case *time.Time:
		if d == nil {
			return "", nil
		}
		return d.UTC().Format(layout), nil
	case nil:
		return "", nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", err
	}
	if len(s) > len(layout) {
		s = s[:len(layout)]
	}
	return s, nil
}

// formControls returns the controls of a form which contribute to its value.
func formControls(form *html.Node) []*html.Node {
	var controls []*html.Node
	dom.WalkDescendants(form, func(x *html.Node) bool {
		switch x.DataAtom {
		case atom.Input, atom.Select, atom.Textarea, atom.Button, atom.Output:
			if controlName(x) != "" {
				controls = append(controls, x)
			}
		}
		return true
	})
	return controls
}

func controlName(n *html.Node) string {
	if name := dom.AttrOr(n, "name", ""); name != "" {
		return name
	}
	return dom.AttrOr(n, "id", "")
}

func formValues(doc *dom.Document, form *html.Node) map[string]any {
	values := make(map[string]any)
	for _, x := range formControls(form) {
		name := controlName(x)
		if _, done := values[name]; done && controlType(x) == "radio" {
			continue
		}
		values[name] = value(doc, x)
	}
	return values
}

// SetValue sets the value of every form control. The value is converted
// according to the type of the control (see Value). Values of file inputs
// cannot be set.
func (c *Collection) SetValue(v any) *Collection {
	if c.err != nil {
		return c
	}
	for _, n := range c.elements() {
		if err := setValue(c.engine.doc, n, v); err != nil {
			return c.fail(err, "value")
		}
	}
	return c
}

func setValue(doc *dom.Document, n *html.Node, v any) error {
	if n.DataAtom == atom.Form {
		m, err := cast.ToStringMapE(v)
		if err != nil {
			return tinyq.TypeError("value", "form values must be a map: %v", err)
		}
		for _, x := range formControls(n) {
			if xv, ok := m[controlName(x)]; ok {
				if controlType(x) == "file" {
					continue
				}
				if err := setValue(doc, x, xv); err != nil {
					return err
				}
			}
		}
		return nil
	}
	switch controlType(n) {
	case "checkbox":
		b, err := cast.ToBoolE(v)
		if err != nil {
			return tinyq.TypeError("value", "checkbox value: %v", err)
		}
		setChecked(doc, n, b)
	case "radio":
		if b, ok := v.(bool); ok {
			setChecked(doc, n, b)
			return nil
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return tinyq.TypeError("value", "radio value: %v", err)
		}
		for _, r := range radioGroup(n) {
			if valueString(doc, r) == s {
				setChecked(doc, r, true)
			}
		}
	case "file":
		return tinyq.TypeError("value", "value of file input is read-only")
	case "number", "range":
		if v == nil {
			doc.SetExpando(n, "value", "")
			return nil
		}
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return tinyq.TypeError("value", "numeric value: %v", err)
		}
		doc.SetExpando(n, "value", strconv.FormatFloat(f, 'f', -1, 64))
	case "date", "datetime-local":
		layout := dateLayout
		if controlType(n) == "datetime-local" {
			layout = dateTimeLayout
		}
		s, err := formatDate(v, layout)
		if err != nil {
			return tinyq.TypeError("value", "date value: %v", err)
		}
		doc.SetExpando(n, "value", s)
	case "select-one", "select-multiple":
		var wanted []string
		switch sv := v.(type) {
		case nil:
		case string:
			wanted = []string{sv}
		default:
			var err error
			if wanted, err = cast.ToStringSliceE(v); err != nil {
				return tinyq.TypeError("value", "select value: %v", err)
			}
		}
		for _, o := range options(n) {
			doc.SetExpando(o, "selected", containsString(wanted, valueString(doc, o)))
		}
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return tinyq.TypeError("value", "%v", err)
		}
		doc.SetExpando(n, "value", s)
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
