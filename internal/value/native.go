package value

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// DecodedString decodes the escape sequences of a String payload and returns
// the runtime text.
func (v Value) DecodedString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("value is %s, not string", v.kind)
	}
	if !strings.ContainsRune(v.s, '\\') {
		return v.s, nil
	}
	var out string
	if err := json.Unmarshal([]byte(`"`+v.s+`"`), &out); err != nil {
		return "", fmt.Errorf("failed to decode string escapes: %w", err)
	}
	return out, nil
}

// ToNative converts v into plain Go data: nil, bool, int64, float64, string,
// []any and map[string]any. Strings are decoded.
func (v Value) ToNative() (any, error) {
	switch v.kind {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.b, nil
	case KindInt:
		return v.i, nil
	case KindDouble:
		return v.f, nil
	case KindString:
		return v.DecodedString()
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			n, err := item.ToNative()
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, m := range v.obj {
			n, err := m.ToNative()
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			out[k] = n
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown value kind %s", v.kind)
}

// FromNative builds a Value from plain Go data. It accepts the shapes
// produced by ToNative plus int and float32. Strings are escaped.
func FromNative(n any) (Value, error) {
	switch x := n.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case float32:
		return Double(float64(x)), nil
	case float64:
		return Double(x), nil
	case string:
		raw, err := escapeString(x)
		if err != nil {
			return Value{}, err
		}
		return String(raw), nil
	case []any:
		arr := make([]Value, len(x))
		for i, item := range x {
			v, err := FromNative(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			arr[i] = v
		}
		return Value{kind: KindArray, arr: arr}, nil
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for k, item := range x {
			v, err := FromNative(item)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			key, err := escapeString(k)
			if err != nil {
				return Value{}, err
			}
			obj[key] = v
		}
		return Value{kind: KindObject, obj: obj}, nil
	default:
		return Value{}, fmt.Errorf("unsupported native type %T", n)
	}
}

// MarshalJSON encodes v as compact standard JSON
func (v Value) MarshalJSON() ([]byte, error) {
	n, err := v.ToNative()
	if err != nil {
		return nil, err
	}
	return json.Marshal(n)
}

func escapeString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("failed to escape string: %w", err)
	}
	quoted := strings.TrimSuffix(buf.String(), "\n")
	return quoted[1 : len(quoted)-1], nil
}
