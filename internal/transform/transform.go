// Package transform rewrites parsed values.
package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jvalue/internal/errors"
	"github.com/mcncl/jvalue/internal/value"
)

// KeyCase names a key naming style
type KeyCase string

const (
	KeyCaseNone           KeyCase = ""
	KeyCaseSnake          KeyCase = "snake"
	KeyCaseScreamingSnake KeyCase = "screaming-snake"
	KeyCaseKebab          KeyCase = "kebab"
	KeyCaseCamel          KeyCase = "camel"
	KeyCaseLowerCamel     KeyCase = "lower-camel"
)

// KeyCases lists the supported styles in help order
var KeyCases = []KeyCase{KeyCaseSnake, KeyCaseScreamingSnake, KeyCaseKebab, KeyCaseCamel, KeyCaseLowerCamel}

// Namer maps an object key to its new name
type Namer func(string) string

// NamerFor returns the Namer for a key case. KeyCaseNone yields nil.
func NamerFor(c KeyCase) (Namer, error) {
	switch KeyCase(strings.ToLower(string(c))) {
	case KeyCaseNone:
		return nil, nil
	case KeyCaseSnake:
		return strcase.ToSnake, nil
	case KeyCaseScreamingSnake:
		return strcase.ToScreamingSnake, nil
	case KeyCaseKebab:
		return strcase.ToKebab, nil
	case KeyCaseCamel:
		return strcase.ToCamel, nil
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel, nil
	default:
		return nil, fmt.Errorf("%w %q", errors.ErrUnknownKeyCase, string(c))
	}
}

// RenameKeys returns a copy of v with every object key passed through namer.
// Keys holding escape sequences are kept as they are. Two keys of one object
// that map to the same name are reported as errors.ErrKeyCollision.
func RenameKeys(v value.Value, namer Namer) (value.Value, error) {
	if namer == nil {
		return v, nil
	}
	return renameKeys(v, namer, "$")
}

func renameKeys(v value.Value, namer Namer, path string) (value.Value, error) {
	switch v.Kind() {
	case value.KindArray:
		items := v.Elements()
		for i, item := range items {
			renamed, err := renameKeys(item, namer, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return value.Value{}, err
			}
			items[i] = renamed
		}
		return value.Array(items...), nil
	case value.KindObject:
		members := make(map[string]value.Value, v.Len())
		origins := make(map[string]string, v.Len())
		for _, key := range v.Keys() {
			name := key
			if !strings.ContainsRune(key, '\\') {
				name = namer(key)
			}
			if prev, exists := origins[name]; exists {
				return value.Value{}, fmt.Errorf("%w: %q and %q both become %q at %s",
					errors.ErrKeyCollision, prev, key, name, path)
			}
			member, _ := v.Get(key)
			renamed, err := renameKeys(member, namer, path+"."+name)
			if err != nil {
				return value.Value{}, err
			}
			members[name] = renamed
			origins[name] = key
		}
		return value.Object(members), nil
	default:
		return v, nil
	}
}

// KeyCaseNames returns the supported key case names, sorted
func KeyCaseNames() []string {
	names := make([]string, len(KeyCases))
	for i, c := range KeyCases {
		names[i] = string(c)
	}
	sort.Strings(names)
	return names
}
