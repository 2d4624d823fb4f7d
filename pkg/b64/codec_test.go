package b64

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	assert.Equal(t, "", Encode(nil))
	assert.Equal(t, "QQ==", Encode([]byte("A")))
	assert.Equal(t, "QUI=", Encode([]byte("AB")))
	assert.Equal(t, "QUJD", Encode([]byte("ABC")))
	assert.Equal(t, "fnx+", Encode([]byte("~|~")))
}

func TestDecode_RoundTrip(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	for n := 0; n <= len(all); n += 7 {
		data := all[:n]
		got, err := Decode(Encode(data))
		require.NoError(t, err)
		assert.True(t, bytes.Equal(data, got), "length %d", n)
		assert.Equal(t, data, DecodeLenient(Encode(data)), "lenient length %d", n)
	}
}

func TestDecode_Neg(t *testing.T) {
	for _, text := range []string{"QQ=", "Q~==", "QUJD!", "QQ==QQ==x", "QR=="} {
		_, err := Decode(text)
		assert.ErrorIs(t, err, ErrMalformed, text)
	}
}

func TestDecodeLenient_Garbage(t *testing.T) {
	assert.Equal(t, []byte("ABC"), DecodeLenient("QUJD"))
	assert.Equal(t, []byte("A"), DecodeLenient("QQ=="))
	assert.NotPanics(t, func() {
		DecodeLenient("~~~~=~")
		DecodeLenient("Q")
	})
	assert.Empty(t, DecodeLenient("~~~~"))
}
