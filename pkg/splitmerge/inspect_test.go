package splitmerge

import (
	"encoding/hex"
	"testing"

	"github.com/saylorsolutions/ppecrypt/pkg/b64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	layers := Inspect(fixtureEnvelope)
	assert.Equal(t, "9mXzqXEE6fvPW5jpVzoDmg==~|~+tA9nshz6RBXNF0qjyfE2w==", layers.Inner)
	assert.Len(t, layers.Tokens, 3)
	assert.Equal(t, "f665f3a97104e9fbcf5b98e9573a039a", hex.EncodeToString(layers.Left))
	assert.Equal(t, "fad03d9ec873e91057345d2a8f27c4db", hex.EncodeToString(layers.Right))
}

func TestInspect_Malformed(t *testing.T) {
	envelope := b64.Encode([]byte("A~|~B~|~C"))
	_, err := Decrypt(envelope, testKey(t))
	require.ErrorIs(t, err, ErrMalformedEnvelope)

	layers := Inspect(envelope)
	assert.Equal(t, "A~|~B~|~C", layers.Inner)
	assert.Equal(t, []string{"A", "|", "B", "|", "C"}, layers.Tokens)
	assert.Empty(t, layers.Left)
	assert.Empty(t, layers.Right)

	layers = Inspect("")
	assert.Equal(t, "", layers.Inner)
	assert.Equal(t, []string{""}, layers.Tokens)
	assert.Empty(t, layers.Left)
	assert.Nil(t, layers.Right)
}
