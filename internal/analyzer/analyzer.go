package analyzer

import (
	"regexp"
	"sort"

	"github.com/mcncl/jvalue/internal/value"
)

// String formats recognised in string values
const (
	FormatUUID     = "uuid"
	FormatDateTime = "date-time"
	FormatDate     = "date"
)

var (
	uuidRegex     = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	rfc3339Regex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)
	dateOnlyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Summary describes the shape of a parsed document
type Summary struct {
	Root     value.Kind
	MaxDepth int
	Counts   map[value.Kind]int
	Keys     []string
	Formats  map[string]int
}

// Total returns the number of values in the document, containers included
func (s Summary) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

// Analyzer walks a value tree and collects a Summary
type Analyzer struct {
	summary Summary
	keys    map[string]struct{}
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze returns statistics for v. The depth of a scalar is 0, and each
// enclosing array or object adds one.
func (a *Analyzer) Analyze(v value.Value) Summary {
	a.summary = Summary{
		Root:    v.Kind(),
		Counts:  make(map[value.Kind]int),
		Formats: make(map[string]int),
	}
	a.keys = make(map[string]struct{})

	a.analyzeNode(v, 0)

	a.summary.Keys = make([]string, 0, len(a.keys))
	for k := range a.keys {
		a.summary.Keys = append(a.summary.Keys, k)
	}
	sort.Strings(a.summary.Keys)
	return a.summary
}

func (a *Analyzer) analyzeNode(v value.Value, depth int) {
	a.summary.Counts[v.Kind()]++
	if depth > a.summary.MaxDepth {
		a.summary.MaxDepth = depth
	}

	switch v.Kind() {
	case value.KindString:
		s, _ := v.AsString()
		if format := detectFormat(s); format != "" {
			a.summary.Formats[format]++
		}
	case value.KindArray:
		for _, item := range v.Elements() {
			a.analyzeNode(item, depth+1)
		}
	case value.KindObject:
		for _, key := range v.Keys() {
			a.keys[key] = struct{}{}
			member, _ := v.Get(key)
			a.analyzeNode(member, depth+1)
		}
	}
}

func detectFormat(s string) string {
	switch {
	case uuidRegex.MatchString(s):
		return FormatUUID
	case rfc3339Regex.MatchString(s):
		return FormatDateTime
	case dateOnlyRegex.MatchString(s):
		return FormatDate
	default:
		return ""
	}
}
