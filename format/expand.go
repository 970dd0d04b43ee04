package format

import (
	"strings"
	"sync/atomic"

	"github.com/npillmayer/tinyq"
	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/net/html"
)

// voidTags never get a closing tag. Their children are emitted after them.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

// Expander expands shorthand notation to HTML and caches the results.
type Expander struct {
	cache  *xsync.MapOf[uint32, expansion]
	parses atomic.Int64
}

// expansion is a cache entry. The source is kept to detect hash collisions.
type expansion struct {
	src  string
	html string
	err  error
}

// NewExpander creates an expander with an empty cache.
func NewExpander() *Expander {
	return &Expander{cache: xsync.NewMapOf[uint32, expansion]()}
}

var defaultExpander = NewExpander()

// Expand expands shorthand notation with a process-wide expander.
func Expand(src string) (string, error) {
	return defaultExpander.Expand(src)
}

// Expand converts shorthand notation to HTML. Identical sources are parsed only
// once.
func (x *Expander) Expand(src string) (string, error) {
	key := tinyq.Hash(src)
	e, _ := x.cache.LoadOrCompute(key, func() expansion {
		return x.expand(src)
	})
	if e.src != src {
		tracer().Debugf("shorthand hash collision for key %x", key)
		e = x.expand(src)
	}
	return e.html, e.err
}

// CacheSize returns the number of cached expansions.
func (x *Expander) CacheSize() int {
	return x.cache.Size()
}

// Parses returns how often a source has actually been parsed.
func (x *Expander) Parses() int64 {
	return x.parses.Load()
}

func (x *Expander) expand(src string) expansion {
	x.parses.Add(1)
	entries, err := parseShorthand(src)
	if err != nil {
		return expansion{src: src, err: err}
	}
	return expansion{src: src, html: assemble(entries)}
}

// --- Parsing ---------------------------------------------------------------

// entry is one element (or bare content) at a nesting level.
type entry struct {
	level   int
	tag     string
	id      string
	classes []string
	attrs   [][2]string
	content string
	literal bool // content without a wrapping element
}

func (e *entry) empty() bool {
	return e.tag == "" && e.id == "" && len(e.classes) == 0 && len(e.attrs) == 0
}

// finish decides about the element of an entry, once its line segment is read.
func (e *entry) finish() {
	if e.tag == "" {
		if e.empty() {
			e.literal = true
			return
		}
		e.tag = "div"
	}
}

func isTagRune(c byte) bool {
	return c == '-' || c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// parseShorthand reads all lines of a shorthand source into a flat list of
// entries. Positions in errors are byte offsets into src.
func parseShorthand(src string) ([]entry, error) {
	var entries []entry
	base := -1
	offset := 0
	for _, line := range strings.Split(src, "\n") {
		start := offset
		offset += len(line) + 1
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := 0
		for indent < len(line) && line[indent] == '\t' {
			indent++
		}
		if base < 0 {
			base = indent
		}
		level := max(indent-base, 0)
		les, err := parseLine(line[indent:], level, start+indent)
		if err != nil {
			return nil, err
		}
		entries = append(entries, les...)
	}
	return entries, nil
}

// parseLine reads the segments of a single line, separated by '>'.
func parseLine(line string, level int, pos int) ([]entry, error) {
	var entries []entry
	e := entry{level: level}
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++
			for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
				i++
			}
			if i < len(line) && isTagRune(line[i]) && !e.empty() {
				// free text after a tag, id or class is content
				e.content = strings.TrimSpace(line[i:])
				i = len(line)
			}
		case c == ':':
			e.content = strings.TrimSpace(line[i+1:])
			i = len(line)
		case c == '>':
			e.finish()
			entries = append(entries, e)
			e = entry{level: e.level + 1}
			i++
		case c == '#' || c == '.':
			j := i + 1
			for j < len(line) && !strings.ContainsRune("#.[:> \t", rune(line[j])) {
				j++
			}
			if name := line[i+1 : j]; name != "" {
				if c == '#' {
					e.id = name
				} else {
					e.classes = append(e.classes, name)
				}
			}
			i = j
		case c == '[':
			j := strings.IndexByte(line[i:], ']')
			if j < 0 {
				return nil, tinyq.SyntaxError("expand", pos+i, "unterminated attribute list")
			}
			for _, a := range strings.Split(line[i+1:i+j], ",") {
				addAttr(&e, a)
			}
			i += j + 1
		case isTagRune(c) && e.empty():
			j := i
			for j < len(line) && isTagRune(line[j]) {
				j++
			}
			e.tag = strings.ToLower(line[i:j])
			i = j
		default:
			e.content = strings.TrimSpace(line[i:])
			i = len(line)
		}
	}
	e.finish()
	if e.literal && e.content == "" {
		return entries, nil
	}
	return append(entries, e), nil
}

// addAttr adds an attribute `name=value`, `name="value"` or `name`. Attributes
// id and class are folded into the entry's id and classes.
func addAttr(e *entry, a string) {
	name, value, _ := strings.Cut(strings.TrimSpace(a), "=")
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}
	switch name {
	case "id":
		e.id = value
	case "class":
		e.classes = append(e.classes, strings.Fields(value)...)
	default:
		e.attrs = append(e.attrs, [2]string{name, value})
	}
}

// --- Assembly --------------------------------------------------------------

// assemble nests the entries by level. Open elements are kept on a stack;
// an entry closes every open element at its own level or deeper.
func assemble(entries []entry) string {
	type open struct {
		level int
		tag   string
	}
	var b strings.Builder
	var stack []open
	closeTo := func(level int) {
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			b.WriteString("</" + stack[len(stack)-1].tag + ">")
			stack = stack[:len(stack)-1]
		}
	}
	for _, e := range entries {
		closeTo(e.level)
		if e.literal {
			b.WriteString(e.content)
			continue
		}
		writeOpenTag(&b, &e)
		b.WriteString(e.content)
		if !voidTags[e.tag] {
			stack = append(stack, open{e.level, e.tag})
		}
	}
	closeTo(0)
	return b.String()
}

func writeOpenTag(b *strings.Builder, e *entry) {
	b.WriteString("<" + e.tag)
	if e.id != "" {
		b.WriteString(` id="` + html.EscapeString(e.id) + `"`)
	}
	if len(e.classes) > 0 {
		b.WriteString(` class="` + html.EscapeString(strings.Join(e.classes, " ")) + `"`)
	}
	for _, a := range e.attrs {
		if a[1] == "" {
			b.WriteString(" " + a[0])
			continue
		}
		b.WriteString(" " + a[0] + `="` + html.EscapeString(a[1]) + `"`)
	}
	b.WriteString(">")
}
