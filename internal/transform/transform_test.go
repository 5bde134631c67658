package transform

import (
	"testing"

	"github.com/mcncl/jvalue/internal/errors"
	"github.com/mcncl/jvalue/internal/parser"
	"github.com/mcncl/jvalue/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamerFor(t *testing.T) {
	tests := []struct {
		keyCase  KeyCase
		input    string
		expected string
	}{
		{KeyCaseSnake, "userId", "user_id"},
		{KeyCaseScreamingSnake, "userId", "USER_ID"},
		{KeyCaseKebab, "user_id", "user-id"},
		{KeyCaseCamel, "user_id", "UserId"},
		{KeyCaseLowerCamel, "user_id", "userId"},
		{"SNAKE", "createdAt", "created_at"},
	}

	for _, tt := range tests {
		t.Run(string(tt.keyCase), func(t *testing.T) {
			namer, err := NamerFor(tt.keyCase)
			require.NoError(t, err)
			require.NotNil(t, namer)
			assert.Equal(t, tt.expected, namer(tt.input))
		})
	}
}

func TestNamerFor_NoneAndUnknown(t *testing.T) {
	namer, err := NamerFor(KeyCaseNone)
	require.NoError(t, err)
	assert.Nil(t, namer)

	_, err = NamerFor("shouting")
	assert.ErrorIs(t, err, errors.ErrUnknownKeyCase)
}

func TestRenameKeys_Nested(t *testing.T) {
	v, err := parser.Parse(`{"userId":1,"profileData":{"firstName":"a","tagList":[{"tagName":"x"}]}}`)
	require.NoError(t, err)

	namer, err := NamerFor(KeyCaseSnake)
	require.NoError(t, err)

	renamed, err := RenameKeys(v, namer)
	require.NoError(t, err)

	expected, err := parser.Parse(`{"user_id":1,"profile_data":{"first_name":"a","tag_list":[{"tag_name":"x"}]}}`)
	require.NoError(t, err)
	assert.True(t, expected.Equal(renamed), "got %s", renamed)

	orig, ok := v.Get("userId")
	require.True(t, ok, "source value must be left untouched")
	assert.True(t, orig.Equal(value.Int(1)))
}

func TestRenameKeys_EscapedKeysUntouched(t *testing.T) {
	v := value.Object(map[string]value.Value{`caf\u00e9Name`: value.Null(), "plainKey": value.Null()})
	renamed, err := RenameKeys(v, Namer(func(s string) string { return "x_" + s }))
	require.NoError(t, err)
	assert.Equal(t, []string{`caf\u00e9Name`, "x_plainKey"}, renamed.Keys())
}

func TestRenameKeys_Collision(t *testing.T) {
	v, err := parser.Parse(`{"data":[{"user_id":1,"userId":2}]}`)
	require.NoError(t, err)

	namer, err := NamerFor(KeyCaseSnake)
	require.NoError(t, err)

	_, err = RenameKeys(v, namer)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrKeyCollision)
	assert.Contains(t, err.Error(), "$.data[0]")
}

func TestRenameKeys_NilNamer(t *testing.T) {
	v := value.Object(map[string]value.Value{"someKey": value.Int(1)})
	out, err := RenameKeys(v, nil)
	require.NoError(t, err)
	assert.True(t, v.Equal(out))
}

func TestKeyCaseNames(t *testing.T) {
	assert.Equal(t, []string{"camel", "kebab", "lower-camel", "screaming-snake", "snake"}, KeyCaseNames())
}
