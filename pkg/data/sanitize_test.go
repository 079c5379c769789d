package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnfence(t *testing.T) {
	cases := map[string]string{
		"```json\n[1,2]\n```":   "[1,2]",
		"```\n{\"a\":1}\n```":   `{"a":1}`,
		"  plain text  ":        "plain text",
		"```json\n{\"a\":1}```": `{"a":1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, Unfence(in), in)
	}
}

func TestSanitizeAnswer(t *testing.T) {
	got, err := SanitizeAnswer("Sure! Here it is: {\"a\": {\"b\": 1}} hope that helps")
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 1}}`, got)

	_, err = SanitizeAnswer("no json here")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	var out []map[string]any
	require.NoError(t, Decode("```json\n[{\"platform\":\"twitter\"}]\n```", &out))
	assert.Equal(t, "twitter", out[0]["platform"])

	assert.Error(t, Decode("this is not json", &out))
}
