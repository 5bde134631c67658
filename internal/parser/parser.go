package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/jvalue/internal/value"
)

// DefaultMaxDepth is the container nesting limit used by DefaultOptions
const DefaultMaxDepth = 1000

// Options tunes which inputs the parser accepts. The zero Options is the
// strictest legacy behaviour with no depth limit.
type Options struct {
	// JSONWhitespace also skips tab, line feed and carriage return between
	// tokens. Without it only the space character is whitespace.
	JSONWhitespace bool
	// AllowScalarRoot accepts a string, number, boolean or null as the whole
	// document. Without it the document must be an object or array.
	AllowScalarRoot bool
	// RejectTrailingData fails when anything but whitespace follows the
	// document.
	RejectTrailingData bool
	// MaxDepth limits container nesting. 0 disables the limit.
	MaxDepth int
}

// DefaultOptions returns the options used by Parse
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

// Parse parses a JSON document with the default options
func Parse(text string) (value.Value, error) {
	return ParseWithOptions(text, DefaultOptions())
}

// ParseWithOptions parses a JSON document. On failure the returned error is a
// *SyntaxError and no partial value is returned.
func ParseWithOptions(text string, opts Options) (value.Value, error) {
	p := &parser{data: text, opts: opts}
	v, err := p.parseDocument()
	if err != nil {
		return value.Value{}, err
	}
	return v, nil
}

// parser holds the state of a single parse call
type parser struct {
	data  string
	pos   int
	depth int
	opts  Options
}

func (p *parser) parseDocument() (value.Value, error) {
	p.skipWhitespace()
	if p.eof() {
		return value.Value{}, p.fail(UnexpectedEndOfInput, "empty document")
	}

	var (
		v   value.Value
		err error
	)
	switch c := p.data[p.pos]; c {
	case '[':
		p.pos++
		v, err = p.parseArray()
	case '{':
		p.pos++
		v, err = p.parseObject()
	default:
		if !p.opts.AllowScalarRoot {
			return value.Value{}, p.fail(UnrecognizedCharacter, "document must begin with '{' or '['")
		}
		v, err = p.readElement()
	}
	if err != nil {
		return value.Value{}, err
	}

	if p.opts.RejectTrailingData {
		p.skipWhitespace()
		if !p.eof() {
			return value.Value{}, p.fail(TrailingData, "unexpected content after document")
		}
	}
	return v, nil
}

// parseArray is called with the cursor just past '['
func (p *parser) parseArray() (value.Value, error) {
	if err := p.enter(); err != nil {
		return value.Value{}, err
	}
	defer p.leave()

	p.skipWhitespace()
	if !p.eof() && p.data[p.pos] == ']' {
		p.pos++
		return value.Array(), nil
	}

	var items []value.Value
	for {
		p.skipWhitespace()
		item, err := p.readElement()
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, item)

		p.skipWhitespace()
		if p.eof() {
			return value.Value{}, p.fail(UnexpectedEndOfInput, "unterminated array, expected ',' or ']'")
		}
		switch p.data[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return value.Array(items...), nil
		default:
			return value.Value{}, p.fail(UnrecognizedCharacter, fmt.Sprintf("expected ',' or ']' in array, found %s", p.describe()))
		}
	}
}

// parseObject is called with the cursor just past '{'
func (p *parser) parseObject() (value.Value, error) {
	if err := p.enter(); err != nil {
		return value.Value{}, err
	}
	defer p.leave()

	p.skipWhitespace()
	if !p.eof() && p.data[p.pos] == '}' {
		p.pos++
		return value.Object(nil), nil
	}

	members := make(map[string]value.Value)
	for {
		p.skipWhitespace()
		if p.eof() {
			return value.Value{}, p.fail(UnexpectedEndOfInput, "unterminated object, expected a key")
		}
		if p.data[p.pos] != '"' {
			return value.Value{}, p.fail(UnrecognizedCharacter, fmt.Sprintf("expected '\"' to begin object key, found %s", p.describe()))
		}
		keyStart := p.pos
		p.pos++
		key, err := p.readString()
		if err != nil {
			return value.Value{}, err
		}
		if _, exists := members[key]; exists {
			return value.Value{}, p.failAt(keyStart, DuplicateKey, fmt.Sprintf("key %q already exists in object", key))
		}

		p.skipWhitespace()
		if p.eof() {
			return value.Value{}, p.fail(UnexpectedEndOfInput, "unterminated object, expected ':'")
		}
		if p.data[p.pos] != ':' {
			return value.Value{}, p.fail(ExpectedColon, fmt.Sprintf("expected ':' after key %q, found %s", key, p.describe()))
		}
		p.pos++

		p.skipWhitespace()
		member, err := p.readElement()
		if err != nil {
			return value.Value{}, err
		}
		members[key] = member

		p.skipWhitespace()
		if p.eof() {
			return value.Value{}, p.fail(UnexpectedEndOfInput, "unterminated object, expected ',' or '}'")
		}
		switch p.data[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return value.Object(members), nil
		default:
			return value.Value{}, p.fail(UnrecognizedCharacter, fmt.Sprintf("expected ',' or '}' in object, found %s", p.describe()))
		}
	}
}

// readElement dispatches on the character under the cursor
func (p *parser) readElement() (value.Value, error) {
	if p.eof() {
		return value.Value{}, p.fail(UnexpectedEndOfInput, "expected a value")
	}

	switch c := p.data[p.pos]; {
	case c == '[':
		p.pos++
		return p.parseArray()
	case c == '{':
		p.pos++
		return p.parseObject()
	case c == '"':
		p.pos++
		s, err := p.readString()
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil
	case c == 't':
		return p.readKeyword("true", value.Bool(true))
	case c == 'f':
		return p.readKeyword("false", value.Bool(false))
	case c == 'n':
		return p.readKeyword("null", value.Null())
	case c == '-' || isDigit(c):
		return p.readNumber()
	default:
		return value.Value{}, p.fail(UnrecognizedElement, fmt.Sprintf("no value starts with %s", p.describe()))
	}
}

// readString is called with the cursor just past the opening quote. It
// returns the raw text up to the closing quote with escapes left in place.
func (p *parser) readString() (string, error) {
	start := p.pos
	var sb strings.Builder

	for !p.eof() {
		c := p.data[p.pos]
		switch c {
		case '"':
			p.pos++
			return sb.String(), nil
		case '\r', '\n':
			return "", p.fail(IllegalLineBreakInString, "strings may not contain raw line breaks")
		case '\\':
			p.pos++
			if p.eof() {
				return "", p.fail(UnexpectedEndOfInput, "unterminated escape sequence")
			}
			esc := p.data[p.pos]
			sb.WriteByte('\\')
			sb.WriteByte(esc)
			p.pos++
			if esc == 'u' {
				for i := 0; i < 4; i++ {
					if p.eof() || !isHex(p.data[p.pos]) {
						return "", p.fail(InvalidUnicodeEscape, `\u must be followed by four hex digits`)
					}
					sb.WriteByte(p.data[p.pos])
					p.pos++
				}
			}
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}

	return "", p.failAt(start-1, UnexpectedEndOfInput, "unterminated string")
}

// readNumber scans an optional sign, digits, a fraction and an exponent, then
// picks Int or Double for the literal.
func (p *parser) readNumber() (value.Value, error) {
	start := p.pos
	if p.data[p.pos] == '-' {
		p.pos++
	}

	fractional := false
	for !p.eof() {
		c := p.data[p.pos]
		switch {
		case isDigit(c):
		case c == '.':
			fractional = true
		case c == 'e' || c == 'E':
			fractional = true
			if p.pos+1 < len(p.data) && (p.data[p.pos+1] == '+' || p.data[p.pos+1] == '-') {
				p.pos++
			}
		default:
			return p.classifyNumber(start, fractional)
		}
		p.pos++
	}
	return p.classifyNumber(start, fractional)
}

func (p *parser) classifyNumber(start int, fractional bool) (value.Value, error) {
	literal := p.data[start:p.pos]

	if !fractional {
		i, err := strconv.ParseInt(literal, 10, 64)
		if err == nil {
			return value.Int(i), nil
		}
		if !errors.Is(err, strconv.ErrRange) {
			return value.Value{}, p.failAt(start, MalformedNumber, fmt.Sprintf("cannot parse %q as a number", literal))
		}
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return value.Value{}, p.failAt(start, MalformedNumber, fmt.Sprintf("number %q is out of range", literal))
		}
		return value.Value{}, p.failAt(start, MalformedNumber, fmt.Sprintf("cannot parse %q as a number", literal))
	}
	return value.Double(f), nil
}

// readKeyword matches true, false or null at the cursor
func (p *parser) readKeyword(keyword string, v value.Value) (value.Value, error) {
	if !strings.HasPrefix(p.data[p.pos:], keyword) {
		return value.Value{}, p.fail(MalformedKeywordLiteral, fmt.Sprintf("expected %q", keyword))
	}
	p.pos += len(keyword)
	return v, nil
}

func (p *parser) skipWhitespace() {
	for !p.eof() {
		switch p.data[p.pos] {
		case ' ':
		case '\t', '\n', '\r':
			if !p.opts.JSONWhitespace {
				return
			}
		default:
			return
		}
		p.pos++
	}
}

func (p *parser) enter() error {
	p.depth++
	if p.opts.MaxDepth > 0 && p.depth > p.opts.MaxDepth {
		return p.failAt(p.pos-1, NestingTooDeep, fmt.Sprintf("nesting exceeds %d levels", p.opts.MaxDepth))
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) eof() bool {
	return p.pos >= len(p.data)
}

// describe quotes the character under the cursor for error messages
func (p *parser) describe() string {
	if p.eof() {
		return "end of input"
	}
	r, _ := utf8.DecodeRuneInString(p.data[p.pos:])
	return strconv.QuoteRune(r)
}

func (p *parser) fail(kind ErrorKind, msg string) *SyntaxError {
	return newSyntaxError(p.data, p.pos, kind, msg)
}

func (p *parser) failAt(offset int, kind ErrorKind, msg string) *SyntaxError {
	return newSyntaxError(p.data, offset, kind, msg)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
