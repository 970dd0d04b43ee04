package tinyq

import (
	"reflect"
	"time"

	"dario.cat/mergo"
	"github.com/cespare/xxhash/v2"
)

// Hash returns a 32-bit non-cryptographic hash of s.
func Hash(s string) uint32 {
	h := xxhash.Sum64String(s)
	return uint32(h) ^ uint32(h>>32)
}

// Extend copies entries of src into dst. Existing entries of dst are replaced only
// if overwrite is set. dst must not be nil.
func Extend[K comparable, V any](dst map[K]V, src map[K]V, overwrite bool) error {
	if len(src) == 0 {
		return nil
	}
	if overwrite {
		return mergo.Merge(&dst, src, mergo.WithOverride)
	}
	return mergo.Merge(&dst, src)
}

// Type tags returned by TypeOf.
const (
	TypeNull     = "null"
	TypeString   = "string"
	TypeNumber   = "number"
	TypeBoolean  = "boolean"
	TypeDate     = "date"
	TypeArray    = "array"
	TypeObject   = "object"
	TypeFunction = "function"
)

// TypeOf returns a type tag for a value, folding Go's kinds into the handful of
// categories the template renderer distinguishes.
func TypeOf(v interface{}) string {
	if v == nil {
		return TypeNull
	}
	switch v.(type) {
	case time.Time, *time.Time:
		return TypeDate
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return TypeNull
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return TypeString
	case reflect.Bool:
		return TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return TypeNumber
	case reflect.Slice, reflect.Array:
		return TypeArray
	case reflect.Func:
		return TypeFunction
	}
	return TypeObject
}
