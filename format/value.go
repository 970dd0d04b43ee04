package format

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/tinyq"
	"github.com/spf13/cast"
	"golang.org/x/net/html"
	"golang.org/x/text/number"
)

// lookup resolves a key against a data value. Keys are dotted paths of map
// keys, struct fields (by name or json tag) and slice indices. "." denotes the
// data value itself.
func lookup(data any, key string) (any, bool) {
	if key == "." {
		return data, true
	}
	v := data
	for _, seg := range strings.Split(key, ".") {
		var ok bool
		if v, ok = child(v, seg); !ok {
			return nil, false
		}
	}
	return v, true
}

func child(v any, seg string) (any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		x := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !x.IsValid() {
			return nil, false
		}
		return x.Interface(), true
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if f.Name == seg || tag == seg || tag == "" && strings.EqualFold(f.Name, seg) {
				return rv.Field(i).Interface(), true
			}
		}
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	}
	return nil, false
}

// truthy decides conditional blocks. Empty strings, zero numbers, empty
// lists, zero dates, false and nil are falsy; objects are always truthy.
func truthy(v any) bool {
	switch tinyq.TypeOf(v) {
	case tinyq.TypeNull:
		return false
	case tinyq.TypeDate:
		t, ok := dateOf(v)
		return ok && !t.IsZero()
	case tinyq.TypeBoolean:
		return reflect.ValueOf(indirect(v)).Bool()
	case tinyq.TypeString:
		return stringOf(v) != ""
	case tinyq.TypeNumber:
		f, err := cast.ToFloat64E(numberOf(v))
		return err == nil && f != 0
	case tinyq.TypeArray:
		return reflect.Indirect(reflect.ValueOf(v)).Len() > 0
	}
	return true
}

// elements turns a value into a list. Non-list values form a list of one.
func elements(v any) []any {
	if tinyq.TypeOf(v) != tinyq.TypeArray {
		return []any{v}
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	r := make([]any, rv.Len())
	for i := range r {
		r[i] = rv.Index(i).Interface()
	}
	return r
}

func indirect(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

// stringOf converts values of string or bool kind, including named types.
func stringOf(v any) string {
	rv := reflect.ValueOf(indirect(v))
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	}
	return cast.ToString(v)
}

// numberOf converts a value of numeric kind to int64, uint64 or float64.
func numberOf(v any) any {
	rv := reflect.ValueOf(indirect(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return 0
}

func dateOf(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	}
	return time.Time{}, false
}

// truncate shortens a string to the number of characters given by format:
// a positive count keeps the start of s, a negative one its end. An ellipsis
// marks truncated strings if the format contains a dot.
func truncate(s, format string) string {
	if format == "" {
		return s
	}
	f, err := cast.ToFloat64E(format)
	if err != nil {
		return s
	}
	n := int(f)
	ellipsis := ""
	if strings.Contains(format, ".") {
		ellipsis = "…"
	}
	runes := []rune(s)
	switch {
	case n > 0 && len(runes) > n:
		return string(runes[:n]) + ellipsis
	case n < 0 && len(runes) > -n:
		return ellipsis + string(runes[len(runes)+n:])
	}
	return s
}

// number formats a number for the renderer's language. A format gives the
// maximum number of fraction digits.
func (rs *renderState) number(v any, format string) string {
	var opts []number.Option
	if format != "" {
		if digits, err := cast.ToFloat64E(format); err == nil && digits >= 0 {
			opts = append(opts, number.MaxFractionDigits(int(digits)))
		} else {
			tracer().Infof("ignoring number format %q", format)
		}
	}
	return rs.printer.Sprint(number.Decimal(numberOf(v), opts...))
}

// date formats a date with format as a Go time layout.
func (rs *renderState) date(v any, format string) string {
	t, _ := dateOf(v)
	if format == "" {
		format = rs.dateLayout
	}
	return t.Format(format)
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		tracer().Errorf("cannot render value as JSON: %v", err)
		return ""
	}
	return string(b)
}

func escape(s string) string {
	return html.EscapeString(s)
}
