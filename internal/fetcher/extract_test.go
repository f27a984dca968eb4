package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "Here is the analysis you asked for:\n```json\n{\"reflection_summary\": \"ok\"}\n```\nLet me know if you need more."
	payload, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"reflection_summary":"ok"}`, string(payload))
}

func TestExtractJSON_UntaggedFence(t *testing.T) {
	raw := "```\n{\"hidden_costs\": [\"time\"]}\n```"
	payload, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"hidden_costs":["time"]}`, string(payload))
}

func TestExtractJSON_FirstFenceWins(t *testing.T) {
	raw := "```json\n{\"a\": 1}\n```\nand also\n```json\n{\"b\": 2}\n```"
	payload, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(payload))
}

func TestExtractJSON_BareJSON(t *testing.T) {
	raw := "  {\"avoided_tradeoffs\": [\"x\", \"y\"]}\n"
	payload, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"avoided_tradeoffs":["x","y"]}`, string(payload))
}

func TestExtractJSON_ProseWithoutFenceFails(t *testing.T) {
	raw := "Sure! {\"avoided_tradeoffs\": []}"
	_, err := ExtractJSON(raw)
	assert.ErrorIs(t, err, ErrMalformedModelOutput)
}

func TestExtractJSON_InvalidFencedJSON(t *testing.T) {
	raw := "```json\n{\"reflection_summary\": broken}\n```"
	_, err := ExtractJSON(raw)
	assert.ErrorIs(t, err, ErrMalformedModelOutput)
}

func TestExtractJSON_EmptyFence(t *testing.T) {
	_, err := ExtractJSON("```json\n```")
	assert.ErrorIs(t, err, ErrMalformedModelOutput)
}
