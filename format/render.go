package format

import (
	"bytes"
	"strings"

	"github.com/npillmayer/tinyq"
	"github.com/yuin/goldmark"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Source resolves template ids to template text. *dom.Document is a Source,
// serving the inner HTML of elements by id.
type Source interface {
	TemplateByID(id string) (string, bool)
}

// ObjectFallback selects how object values (maps, structs) are rendered.
type ObjectFallback int

const (
	// RootJSON renders an object token as the JSON of the whole data object of
	// the render call.
	RootJSON ObjectFallback = iota
	// ValueJSON renders an object token as the JSON of the object itself.
	ValueJSON
)

// DefaultDateLayout is used for date values of tokens without a format.
const DefaultDateLayout = "2006-01-02"

// Renderer fills templates with data.
type Renderer struct {
	source     Source
	lang       map[string]string
	fallback   ObjectFallback
	dateLayout string
	printer    *message.Printer
	markdown   goldmark.Markdown
}

type rprops struct {
	source     Source
	lang       map[string]string
	fallback   ObjectFallback
	dateLayout string
	tag        language.Tag
}

func (p rprops) init() rprops {
	if p.lang == nil {
		p.lang = make(map[string]string)
	}
	if p.dateLayout == "" {
		p.dateLayout = DefaultDateLayout
	}
	if p.tag == language.Und {
		p.tag = language.English
	}
	return p
}

// Option is a type to help initializing renderers at creation time.
type Option struct {
	config func(rprops) rprops
}

// WithSource sets the source for `#id` templates and `{#id}` includes.
func WithSource(src Source) Option {
	return Option{config: func(p rprops) rprops {
		p.source = src
		return p
	}}
}

// WithLang adds language strings for `{$key}` tokens. Later options override
// earlier ones.
func WithLang(strs map[string]string) Option {
	return Option{config: func(p rprops) rprops {
		p = p.init()
		if err := tinyq.Extend(p.lang, strs, true); err != nil {
			tracer().Errorf("cannot add language strings: %v", err)
		}
		return p
	}}
}

// WithObjectFallback selects the rendering of object values. The default is
// RootJSON.
func WithObjectFallback(f ObjectFallback) Option {
	return Option{config: func(p rprops) rprops {
		p.fallback = f
		return p
	}}
}

// WithDateLayout sets the Go time layout for dates of tokens without a format.
func WithDateLayout(layout string) Option {
	return Option{config: func(p rprops) rprops {
		p.dateLayout = layout
		return p
	}}
}

// WithLanguage sets the language for number formatting. The default is English.
func WithLanguage(tag language.Tag) Option {
	return Option{config: func(p rprops) rprops {
		p.tag = tag
		return p
	}}
}

// NewRenderer creates a template renderer.
func NewRenderer(opts ...Option) *Renderer {
	var p rprops
	for _, option := range opts {
		p = option.config(p)
	}
	p = p.init()
	return &Renderer{
		source:     p.source,
		lang:       p.lang,
		fallback:   p.fallback,
		dateLayout: p.dateLayout,
		printer:    message.NewPrinter(p.tag),
		markdown:   goldmark.New(),
	}
}

// Render fills a template with data. If tmpl starts with '#', the template is
// looked up by id in the renderer's source. Missing templates and recursive
// includes are reported as ReferenceErrors before anything is rendered.
func (r *Renderer) Render(tmpl string, data any) (string, error) {
	var stack []string
	if id, ok := strings.CutPrefix(tmpl, "#"); ok {
		src, err := r.template(id)
		if err != nil {
			return "", err
		}
		tmpl, stack = src, []string{id}
	}
	if err := r.checkIncludes(tmpl, stack); err != nil {
		return "", err
	}
	rs := &renderState{Renderer: r, root: data}
	var b strings.Builder
	if err := rs.render(&b, tmpl, data, make(memo)); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *Renderer) template(id string) (string, error) {
	if r.source == nil {
		return "", tinyq.ReferenceError("render", "no source for template %q", id)
	}
	src, ok := r.source.TemplateByID(id)
	if !ok {
		return "", tinyq.ReferenceError("render", "template %q not found", id)
	}
	return src, nil
}

// checkIncludes resolves the includes of a template recursively. stack holds
// the ids of the templates currently being included.
func (r *Renderer) checkIncludes(tmpl string, stack []string) error {
	for _, id := range includes(tmpl) {
		for _, s := range stack {
			if s == id {
				return tinyq.ReferenceError("render", "template %q includes itself (%s)",
					id, strings.Join(append(stack, id), " > "))
			}
		}
		src, err := r.template(id)
		if err != nil {
			return err
		}
		if err := r.checkIncludes(src, append(stack, id)); err != nil {
			return err
		}
	}
	return nil
}

// includes lists the ids of `{#id}` tokens of a template, skipping literals.
func includes(tmpl string) []string {
	var ids []string
	for i := 0; i < len(tmpl); {
		k := strings.IndexByte(tmpl[i:], '{')
		if k < 0 {
			break
		}
		i += k
		rest := tmpl[i:]
		switch {
		case strings.HasPrefix(rest, "{["):
			end := strings.Index(rest, "]}")
			if end < 0 {
				return ids
			}
			i += end + 2
		case strings.HasPrefix(rest, "{#"):
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				return ids
			}
			ids = append(ids, strings.TrimSpace(rest[2:end]))
			i += end + 1
		default:
			i++
		}
	}
	return ids
}

// --- Rendering -------------------------------------------------------------

// memo holds rendered tokens of one data scope.
type memo map[string]string

type renderState struct {
	*Renderer
	root any
}

// render scans a template for tokens. Text outside of tokens is copied.
func (rs *renderState) render(b *strings.Builder, tmpl string, data any, m memo) error {
	i := 0
	for i < len(tmpl) {
		k := strings.IndexByte(tmpl[i:], '{')
		if k < 0 {
			b.WriteString(tmpl[i:])
			return nil
		}
		b.WriteString(tmpl[i : i+k])
		i += k
		rest := tmpl[i:]
		if strings.HasPrefix(rest, "{[") {
			end := strings.Index(rest, "]}")
			if end < 0 {
				return tinyq.SyntaxError("render", i, "missing ']}' for literal")
			}
			b.WriteString(rest[2:end])
			i += end + 2
			continue
		}
		if len(rest) < 2 || isSpace(rest[1]) || rest[1] == '}' {
			b.WriteByte('{') // not a token
			i++
			continue
		}
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return tinyq.SyntaxError("render", i, "missing '}' for token")
		}
		token := rest[1:end]
		i += end + 1
		switch token[0] {
		case '?', '!':
			inner, next, err := block(tmpl, i, token)
			if err != nil {
				return err
			}
			if err := rs.renderBlock(b, token, inner, data, m); err != nil {
				return err
			}
			i = next
		case '/':
			return tinyq.SyntaxError("render", i-end-1, "unexpected block end {%s}", token)
		case '#':
			src, err := rs.template(strings.TrimSpace(token[1:]))
			if err != nil {
				return err
			}
			if err := rs.render(b, src, data, m); err != nil {
				return err
			}
		default:
			s, ok := m[token]
			if !ok {
				s = rs.token(token, data)
				m[token] = s
			}
			b.WriteString(s)
		}
	}
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// block finds the end of a block which starts at position start of tmpl,
// behind its opening token. Blocks opened by the same token nest.
func block(tmpl string, start int, token string) (inner string, next int, err error) {
	openTok, closeTok := "{"+token+"}", "{/"+token+"}"
	depth := 1
	for i := start; i < len(tmpl); {
		o := strings.Index(tmpl[i:], openTok)
		c := strings.Index(tmpl[i:], closeTok)
		if c < 0 {
			break
		}
		if o >= 0 && o < c {
			depth++
			i += o + len(openTok)
			continue
		}
		depth--
		if depth == 0 {
			return tmpl[start : i+c], i + c + len(closeTok), nil
		}
		i += c + len(closeTok)
	}
	return "", 0, tinyq.SyntaxError("render", start-len(openTok), "missing %s", closeTok)
}

// renderBlock renders a conditional block. `?` blocks repeat the inner template
// for every element of a truthy value, each one being a new data scope. `!`
// blocks render the inner template with the outer data if the value is falsy.
func (rs *renderState) renderBlock(b *strings.Builder, token, inner string, data any, m memo) error {
	v, _ := lookup(data, token[1:])
	if token[0] == '!' {
		if truthy(v) {
			return nil
		}
		return rs.render(b, inner, data, m)
	}
	if !truthy(v) {
		return nil
	}
	for _, item := range elements(v) {
		if err := rs.render(b, inner, item, make(memo)); err != nil {
			return err
		}
	}
	return nil
}

// token renders a value token `key|format`.
func (rs *renderState) token(token string, data any) string {
	key, format, _ := strings.Cut(token, "|")
	key = strings.TrimSpace(key)
	quiet := strings.HasPrefix(key, "*")
	key = strings.TrimPrefix(key, "*")
	var v any
	var found bool
	if k, ok := strings.CutPrefix(key, "$"); ok {
		v, found = rs.lang[k]
	} else {
		v, found = lookup(data, key)
		if !found && strings.Contains(key, ".") {
			tracer().Infof("template path %q is undefined", key)
			v, found = "", true
		}
	}
	if !found {
		if quiet {
			return ""
		}
		return "{" + token + "}"
	}
	return rs.value(v, format)
}

// value renders a value according to its type and a format.
func (rs *renderState) value(v any, format string) string {
	switch tinyq.TypeOf(v) {
	case tinyq.TypeNull:
		return ""
	case tinyq.TypeString:
		s := stringOf(v)
		switch format {
		case "!html":
			return s
		case "md":
			return rs.toMarkdown(s)
		}
		return escape(truncate(s, format))
	case tinyq.TypeNumber:
		return escape(rs.number(v, format))
	case tinyq.TypeDate:
		return escape(rs.date(v, format))
	case tinyq.TypeBoolean:
		return stringOf(v)
	case tinyq.TypeArray:
		return escape(toJSON(v))
	case tinyq.TypeFunction:
		return ""
	}
	if rs.fallback == ValueJSON {
		return escape(toJSON(v))
	}
	return escape(toJSON(rs.root))
}

func (rs *renderState) toMarkdown(s string) string {
	var buf bytes.Buffer
	if err := rs.markdown.Convert([]byte(s), &buf); err != nil {
		tracer().Errorf("cannot convert markdown: %v", err)
		return escape(s)
	}
	return strings.TrimRight(buf.String(), "\n")
}
