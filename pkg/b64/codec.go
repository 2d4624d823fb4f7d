// Package b64 frames binary cipher output as standard base64 text.
package b64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var ErrMalformed = errors.New("malformed base64 input")

// Encode returns the standard base64 encoding of data, padded with '=' to a multiple of 4 characters.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode strictly decodes standard, padded base64.
// Any character outside the alphabet, bad padding, or a length that isn't a multiple of 4 results in ErrMalformed.
func Decode(text string) ([]byte, error) {
	data, err := base64.StdEncoding.Strict().DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return data, nil
}

// DecodeLenient never fails.
// Input is consumed four characters at a time, characters outside the alphabet are skipped, and a group ends early at the first '='.
// Malformed input yields garbage rather than an error, so this should only be used for inspecting legacy payloads.
func DecodeLenient(text string) []byte {
	out := make([]byte, 0, len(text)/4*3)
	for i := 0; i < len(text); i += 4 {
		var (
			group   uint32
			sextets int
		)
		for j := i; j < i+4 && j < len(text); j++ {
			c := text[j]
			if c == '=' {
				break
			}
			pos := strings.IndexByte(alphabet, c)
			if pos < 0 {
				continue
			}
			group = group<<6 | uint32(pos)
			sextets++
		}
		group <<= 6 * uint(4-sextets)
		switch sextets {
		case 4:
			out = append(out, byte(group>>16), byte(group>>8), byte(group))
		case 3:
			out = append(out, byte(group>>16), byte(group>>8))
		case 2:
			out = append(out, byte(group>>16))
		}
	}
	return out
}
