package formatter

import (
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/jvalue/internal/value"
)

// IndentWidth is the number of spaces added per nesting level
const IndentWidth = 4

// Formatter renders values as indented JSON text
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders v with its first line at the given base indentation level
func (f *Formatter) Format(v value.Value, level int) string {
	return Render(v, level)
}

// Render renders v as indented text. level is the number of spaces the
// enclosing construct is indented by; nested members are indented by
// level+IndentWidth. Strings and keys are quoted but not re-escaped. Object
// members are written in sorted key order.
func Render(v value.Value, level int) string {
	if level < 0 {
		level = 0
	}
	var sb strings.Builder
	render(&sb, v, level)
	return sb.String()
}

func render(sb *strings.Builder, v value.Value, level int) {
	switch v.Kind() {
	case value.KindNull:
		sb.WriteString("null")
	case value.KindBool:
		b, _ := v.AsBool()
		sb.WriteString(strconv.FormatBool(b))
	case value.KindInt:
		i, _ := v.AsInt()
		sb.WriteString(strconv.FormatInt(i, 10))
	case value.KindDouble:
		f, _ := v.AsDouble()
		sb.WriteString(formatDouble(f))
	case value.KindString:
		s, _ := v.AsString()
		writeQuoted(sb, s)
	case value.KindArray:
		if v.Len() == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteByte('[')
		renderList(sb, v.Elements(), level)
		sb.WriteByte(']')
	case value.KindObject:
		if v.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteByte('{')
		renderMembers(sb, v, level)
		sb.WriteByte('}')
	}
}

// renderList writes the body of a non-empty array, leaving the brackets to
// the caller.
func renderList(sb *strings.Builder, items []value.Value, level int) {
	inner := level + IndentWidth
	sb.WriteByte('\n')
	for i, item := range items {
		if i > 0 {
			sb.WriteString(",\n")
		}
		indent(sb, inner)
		render(sb, item, inner)
	}
	sb.WriteByte('\n')
	indent(sb, level)
}

// renderMembers writes the body of a non-empty object, leaving the braces to
// the caller.
func renderMembers(sb *strings.Builder, v value.Value, level int) {
	inner := level + IndentWidth
	sb.WriteByte('\n')
	for i, key := range v.Keys() {
		if i > 0 {
			sb.WriteString(",\n")
		}
		indent(sb, inner)
		writeQuoted(sb, key)
		sb.WriteByte(':')
		member, _ := v.Get(key)
		render(sb, member, inner)
	}
	sb.WriteByte('\n')
	indent(sb, level)
}

// formatDouble uses the shortest representation and keeps a fractional part
// so the text reads back as a double rather than an int.
func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func writeQuoted(sb *strings.Builder, raw string) {
	sb.WriteByte('"')
	sb.WriteString(raw)
	sb.WriteByte('"')
}

func indent(sb *strings.Builder, n int) {
	for i := 0; i < n; i++ {
		sb.WriteByte(' ')
	}
}
