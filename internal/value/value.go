package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which of the seven JSON variants a Value holds
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindArray
	KindObject
)

// String returns the lower-case variant name
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable JSON value. The zero Value is Null.
//
// String payloads hold the text between the quotes exactly as it appeared in
// the source: escape sequences are validated by the parser but not decoded.
// Use DecodedString to obtain the runtime text.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value
func Null() Value {
	return Value{}
}

// Bool wraps a boolean
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int wraps a 64-bit signed integer
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Double wraps a 64-bit float
func Double(f float64) Value {
	return Value{kind: KindDouble, f: f}
}

// String wraps raw (already escaped) string text
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array builds an array value. The items are copied.
func Array(items ...Value) Value {
	arr := make([]Value, len(items))
	copy(arr, items)
	return Value{kind: KindArray, arr: arr}
}

// Object builds an object value. The map is copied.
func Object(members map[string]Value) Value {
	obj := make(map[string]Value, len(members))
	for k, v := range members {
		obj[k] = v
	}
	return Value{kind: KindObject, obj: obj}
}

// Kind reports the variant of v
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean payload
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsInt returns the integer payload
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsDouble returns the float payload
func (v Value) AsDouble() (float64, bool) {
	return v.f, v.kind == KindDouble
}

// AsString returns the raw string payload
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// Len returns the number of elements of an array or members of an object,
// and 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Index returns the i-th element of an array
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Elements returns a copy of the array elements, or nil for non-arrays
func (v Value) Elements() []Value {
	if v.kind != KindArray {
		return nil
	}
	out := make([]Value, len(v.arr))
	copy(out, v.arr)
	return out
}

// Get looks up a member of an object
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	m, ok := v.obj[key]
	return m, ok
}

// Keys returns the object keys in sorted order
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Members returns a copy of the object members, or nil for non-objects
func (v Value) Members() map[string]Value {
	if v.kind != KindObject {
		return nil
	}
	out := make(map[string]Value, len(v.obj))
	for k, m := range v.obj {
		out[k] = m
	}
	return out
}

// Equal reports structural equality. Values of different kinds are never
// equal, so Int(1) and Double(1) differ.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindDouble:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, m := range v.obj {
			o, ok := other.obj[k]
			if !ok || !m.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

// String returns a debug rendering such as Object([a: Array([Int(1)])]).
// It is not JSON; see the formatter package for that.
func (v Value) String() string {
	var sb strings.Builder
	v.writeDebug(&sb)
	return sb.String()
}

func (v Value) writeDebug(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("Null")
	case KindBool:
		fmt.Fprintf(sb, "Bool(%t)", v.b)
	case KindInt:
		fmt.Fprintf(sb, "Int(%d)", v.i)
	case KindDouble:
		fmt.Fprintf(sb, "Double(%s)", strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindString:
		fmt.Fprintf(sb, "String(%s)", v.s)
	case KindArray:
		sb.WriteString("Array([")
		for i, item := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.writeDebug(sb)
		}
		sb.WriteString("])")
	case KindObject:
		sb.WriteString("Object([")
		for i, k := range v.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			v.obj[k].writeDebug(sb)
		}
		sb.WriteString("])")
	}
}
