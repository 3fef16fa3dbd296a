package internal

import (
	"reflect"
	"strings"

	"golang.org/x/net/html"
)

// Option type tags. A tag may be a union such as "number|string".
const (
	TypeAny      = "any"
	TypeNumber   = "number"
	TypeInt      = "int"
	TypeString   = "string"
	TypeBoolean  = "boolean"
	TypeArray    = "array"
	TypeObject   = "object"
	TypeFunction = "function"
	TypeElement  = "element"
)

var nodeType = reflect.TypeOf((*html.Node)(nil))

// CheckType reports whether v satisfies the type tag. Nil satisfies every
// tag and unknown tags accept anything.
func CheckType(tag string, v any) bool {
	if v == nil || tag == "" {
		return true
	}

	t := reflect.TypeOf(v)
	for _, alt := range strings.Split(tag, "|") {
		if matchType(strings.TrimSpace(alt), t) {
			return true
		}
	}
	return false
}

func matchType(tag string, t reflect.Type) bool {
	switch tag {
	case TypeNumber:
		return isInt(t.Kind()) || t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
	case TypeInt:
		return isInt(t.Kind())
	case TypeString:
		return t.Kind() == reflect.String
	case TypeBoolean:
		return t.Kind() == reflect.Bool
	case TypeArray:
		return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
	case TypeObject:
		switch t.Kind() {
		case reflect.Map, reflect.Struct, reflect.Pointer, reflect.Interface:
			return true
		}
		return false
	case TypeFunction:
		return t.Kind() == reflect.Func
	case TypeElement:
		return t == nodeType
	default:
		return true
	}
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// sameValue compares option values the way Update needs it: NaN equals NaN,
// and maps, slices and funcs are only equal to themselves.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		fa, fb := va.Float(), vb.Float()
		return fa == fb || (fa != fa && fb != fb)
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if !va.Type().Comparable() {
		return false
	}
	return a == b
}
