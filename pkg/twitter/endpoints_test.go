package twitter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchURL(t *testing.T) {
	raw := SearchURL("mourinho", "tr", "2024-08-09", "2024-08-15")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "twitter.com", parsed.Host)
	assert.Equal(t, "/search", parsed.Path)

	params := parsed.Query()
	assert.Equal(t, "mourinho lang:tr since:2024-08-09 until:2024-08-15", params.Get("q"))
	assert.Equal(t, "typed_query", params.Get("src"))
	assert.Equal(t, "live", params.Get("f"))
}

func TestSearchURLEscapesKeyword(t *testing.T) {
	raw := SearchURL("süper lig", "tr", "2024-08-09", "2024-08-15")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "süper lig lang:tr since:2024-08-09 until:2024-08-15", parsed.Query().Get("q"))
}
