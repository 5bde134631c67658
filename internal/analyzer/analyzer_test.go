package analyzer

import (
	"testing"

	"github.com/mcncl/jvalue/internal/parser"
	"github.com/mcncl/jvalue/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_NestedDocument(t *testing.T) {
	v, err := parser.Parse(`{"id":"550e8400-e29b-41d4-a716-446655440000","created_at":"2023-05-20T14:56:23Z",` +
		`"users":[{"id":1,"born":"1990-01-02","active":true},{"id":2,"active":false,"score":9.5}],"meta":null}`)
	require.NoError(t, err)

	summary := NewAnalyzer().Analyze(v)

	assert.Equal(t, value.KindObject, summary.Root)
	assert.Equal(t, 3, summary.MaxDepth)
	assert.Equal(t, 3, summary.Counts[value.KindObject])
	assert.Equal(t, 1, summary.Counts[value.KindArray])
	assert.Equal(t, 2, summary.Counts[value.KindInt])
	assert.Equal(t, 1, summary.Counts[value.KindDouble])
	assert.Equal(t, 2, summary.Counts[value.KindBool])
	assert.Equal(t, 1, summary.Counts[value.KindNull])
	assert.Equal(t, 3, summary.Counts[value.KindString])
	assert.Equal(t, 13, summary.Total())

	assert.Equal(t, []string{"active", "born", "created_at", "id", "meta", "score", "users"}, summary.Keys)
	assert.Equal(t, map[string]int{FormatUUID: 1, FormatDateTime: 1, FormatDate: 1}, summary.Formats)
}

func TestAnalyze_Scalar(t *testing.T) {
	summary := NewAnalyzer().Analyze(value.String("plain"))
	assert.Equal(t, value.KindString, summary.Root)
	assert.Equal(t, 0, summary.MaxDepth)
	assert.Equal(t, 1, summary.Total())
	assert.Empty(t, summary.Keys)
	assert.Empty(t, summary.Formats)
}

func TestAnalyze_EmptyContainers(t *testing.T) {
	v, err := parser.Parse(`[[],{}]`)
	require.NoError(t, err)

	summary := NewAnalyzer().Analyze(v)
	assert.Equal(t, 1, summary.MaxDepth)
	assert.Equal(t, 2, summary.Counts[value.KindArray])
	assert.Equal(t, 1, summary.Counts[value.KindObject])
}

func TestAnalyze_Reusable(t *testing.T) {
	a := NewAnalyzer()
	first := a.Analyze(value.Array(value.Int(1), value.Int(2)))
	second := a.Analyze(value.Null())

	assert.Equal(t, 2, first.Counts[value.KindInt])
	assert.Equal(t, 0, second.Counts[value.KindInt])
	assert.Equal(t, 1, second.Total())
}
