package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONPlainObject(t *testing.T) {
	out := extractJSON(`{"keywords": ["oak", "table"]}`)
	assert.JSONEq(t, `{"keywords": ["oak", "table"]}`, out)
}

func TestExtractJSONMarkdownFence(t *testing.T) {
	raw := "```json\n{\"keywords\": [\"sofa\"]}\n```"
	out := extractJSON(raw)
	assert.JSONEq(t, `{"keywords": ["sofa"]}`, out)
}

func TestExtractJSONSurroundingText(t *testing.T) {
	raw := `Sure! Here are the keywords: {"keywords": ["bed", "frame"]} Hope that helps.`
	out := extractJSON(raw)
	assert.JSONEq(t, `{"keywords": ["bed", "frame"]}`, out)
}

func TestExtractJSONNestedBraces(t *testing.T) {
	raw := `{"outer": {"inner": "value with } inside string"}}`
	out := extractJSON(raw)
	assert.JSONEq(t, raw, out)
}

func TestExtractJSONNoObject(t *testing.T) {
	assert.Empty(t, extractJSON("no json here"))
	assert.Empty(t, extractJSON(""))
	assert.Empty(t, extractJSON("{16}"))
}

func TestSanitizeJSONTrailingComma(t *testing.T) {
	out := sanitizeJSON(`{"keywords": ["oak", "table",],}`)
	assert.Equal(t, `{"keywords": ["oak", "table"]}`, out)
}

func TestSanitizeJSONUnquotedKeys(t *testing.T) {
	out := sanitizeJSON(`{keywords: ["oak"]}`)
	assert.Equal(t, `{"keywords": ["oak"]}`, out)
}

func TestIsValidJSONObject(t *testing.T) {
	assert.True(t, isValidJSONObject(`{"a":1}`))
	assert.False(t, isValidJSONObject(`{}`))
	assert.False(t, isValidJSONObject(`[1,2]`))
	assert.False(t, isValidJSONObject(`{"a":`))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 5))
	assert.Equal(t, "abcde...", truncateString("abcdefgh", 5))
}
