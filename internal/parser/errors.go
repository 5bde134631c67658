package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrorKind classifies a syntax error
type ErrorKind int

const (
	UnrecognizedCharacter ErrorKind = iota + 1
	UnexpectedEndOfInput
	InvalidUnicodeEscape
	IllegalLineBreakInString
	DuplicateKey
	ExpectedColon
	UnrecognizedElement
	MalformedKeywordLiteral
	MalformedNumber
	NestingTooDeep
	TrailingData
)

var kindNames = map[ErrorKind]string{
	UnrecognizedCharacter:    "unrecognized character",
	UnexpectedEndOfInput:     "unexpected end of input",
	InvalidUnicodeEscape:     "invalid unicode escape",
	IllegalLineBreakInString: "illegal line break in string",
	DuplicateKey:             "duplicate key",
	ExpectedColon:            "expected colon",
	UnrecognizedElement:      "unrecognized element",
	MalformedKeywordLiteral:  "malformed keyword literal",
	MalformedNumber:          "malformed number",
	NestingTooDeep:           "nesting too deep",
	TrailingData:             "trailing data",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// SyntaxError describes why a document was rejected and where.
// Offset is a byte offset into the input; Line and Column are 1-based,
// Column counting runes. Char is the offending character, or 0 at end of input.
type SyntaxError struct {
	Kind   ErrorKind
	Offset int
	Line   int
	Column int
	Char   rune
	Msg    string
}

// Error implements error interface
func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		if e.Msg == "" {
			return e.Kind.String()
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Msg)
}

// Is matches any *SyntaxError of the same kind, so the Err* sentinels work
// with errors.Is.
func (e *SyntaxError) Is(target error) bool {
	t, ok := target.(*SyntaxError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is comparisons
var (
	ErrUnrecognizedCharacter    = &SyntaxError{Kind: UnrecognizedCharacter}
	ErrUnexpectedEndOfInput     = &SyntaxError{Kind: UnexpectedEndOfInput}
	ErrInvalidUnicodeEscape     = &SyntaxError{Kind: InvalidUnicodeEscape}
	ErrIllegalLineBreakInString = &SyntaxError{Kind: IllegalLineBreakInString}
	ErrDuplicateKey             = &SyntaxError{Kind: DuplicateKey}
	ErrExpectedColon            = &SyntaxError{Kind: ExpectedColon}
	ErrUnrecognizedElement      = &SyntaxError{Kind: UnrecognizedElement}
	ErrMalformedKeywordLiteral  = &SyntaxError{Kind: MalformedKeywordLiteral}
	ErrMalformedNumber          = &SyntaxError{Kind: MalformedNumber}
	ErrNestingTooDeep           = &SyntaxError{Kind: NestingTooDeep}
	ErrTrailingData             = &SyntaxError{Kind: TrailingData}
)

func newSyntaxError(data string, offset int, kind ErrorKind, msg string) *SyntaxError {
	if offset > len(data) {
		offset = len(data)
	}
	prefix := data[:offset]
	line := strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1

	var char rune
	if offset < len(data) {
		char, _ = utf8.DecodeRuneInString(data[offset:])
	}

	return &SyntaxError{
		Kind:   kind,
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(prefix[lineStart:]) + 1,
		Char:   char,
		Msg:    msg,
	}
}
