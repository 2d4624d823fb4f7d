package splitmerge

import (
	"strings"

	"github.com/saylorsolutions/ppecrypt/pkg/b64"
)

// Layers is an envelope taken apart without a key.
type Layers struct {
	// Inner is the envelope with the outer base64 layer removed.
	Inner string
	// Tokens is Inner split on "~", as Decrypt does.
	Tokens []string
	// Left and Right are the ciphertexts Decrypt would read from tokens 0 and 2.
	Left, Right []byte
}

// Inspect takes an envelope apart with the lenient legacy decoder, so it never fails.
// Use it to look at payloads that Decrypt rejects as malformed.
func Inspect(envelope string) Layers {
	inner := string(b64.DecodeLenient(envelope))
	layers := Layers{
		Inner:  inner,
		Tokens: strings.Split(inner, tokenSep),
	}
	if len(layers.Tokens) > 0 {
		layers.Left = b64.DecodeLenient(strings.TrimSuffix(layers.Tokens[0], tokenCut))
	}
	if len(layers.Tokens) > 2 {
		layers.Right = b64.DecodeLenient(strings.TrimSuffix(layers.Tokens[2], tokenCut))
	}
	return layers
}
