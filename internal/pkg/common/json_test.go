package common

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
	}{
		{"plain object", `{"recipes": []}`, "recipes"},
		{"surrounding whitespace", "\n  {\"title\": \"Dal\"}  \n", "title"},
		{"prose around object", `Here is your recipe: {"title": "Dal"} Enjoy!`, "title"},
		{"markdown fence", "```json\n{\"title\": \"Dal\", \"macros\": {\"calories\": 300}}\n```", "title"},
		{"nested braces", `noise {"a": {"b": {"c": 1}}} trailing`, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ExtractJSONObject(tt.input)
			require.NoError(t, err)
			assert.Contains(t, obj, tt.key)
		})
	}
}

func TestExtractJSONObject_UsesNumbers(t *testing.T) {
	obj, err := ExtractJSONObject(`{"calories": 420.5}`)
	require.NoError(t, err)
	n, ok := obj["calories"].(json.Number)
	require.True(t, ok)
	assert.Equal(t, "420.5", n.String())
}

func TestExtractJSONObject_Failures(t *testing.T) {
	for _, input := range []string{
		"",
		"no json at all",
		`[1, 2, 3]`,
		`{"unterminated": `,
		`} backwards {`,
	} {
		_, err := ExtractJSONObject(input)
		assert.True(t, errors.Is(err, ErrNoJSONObject), "input %q", input)
	}
}

func TestGenerationParseError_TruncatesPreview(t *testing.T) {
	raw := strings.Repeat("x", 1000)
	err := GenerationParseError(raw)
	assert.Equal(t, ErrCodeGenerationParse, err.Code)
	assert.Len(t, err.Details, 300)
	assert.Equal(t, 500, StatusOf(err))
}

func TestErrorHelpers(t *testing.T) {
	backend := GenerationBackendError(503, "model not loaded", nil)
	wrapped := errors.Join(errors.New("context"), backend)

	assert.True(t, IsCode(wrapped, ErrCodeGenerationBackend))
	assert.False(t, IsCode(wrapped, ErrCodeInvalidRequest))
	assert.Equal(t, 502, StatusOf(wrapped))
	assert.Contains(t, backend.Details, "503")

	assert.Equal(t, 500, StatusOf(errors.New("plain")))
	assert.Equal(t, 400, StatusOf(InvalidRequestError("bad")))

	resp := ToResponse(InternalError("store failed", errors.New("disk full")))
	assert.Equal(t, ErrCodeInternalError, resp.Code)
	assert.Equal(t, "disk full", resp.Details)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 273.0, Round(272.5, 0))
	assert.Equal(t, -3.0, Round(-2.5, 0))
	assert.Equal(t, 0.1235, Round(0.1234567, 4))
	assert.Equal(t, "1", FormatScore(1.0))
	assert.Equal(t, "0.667", FormatScore(0.667))
}
