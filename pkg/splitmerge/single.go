package splitmerge

import (
	"fmt"

	"github.com/saylorsolutions/ppecrypt/pkg/b64"
	"github.com/saylorsolutions/ppecrypt/pkg/rijndael"
	"github.com/saylorsolutions/ppecrypt/pkg/timekey"
)

// paddedLen rounds n up to a whole number of blocks, with a minimum of one block.
func paddedLen(n int) int {
	if n <= BlockSize {
		return BlockSize
	}
	return (n + BlockSize - 1) / BlockSize * BlockSize
}

// SingleEncrypt encrypts one half of a value and returns it base64 encoded.
// The half is space-padded to a whole number of blocks, and each block is encrypted independently.
// Halves that would pad beyond ScratchSize are rejected with ErrValueTooLong.
func (p *Protocol) SingleEncrypt(half string, key timekey.Key) (string, error) {
	size := paddedLen(len(half))
	if size > ScratchSize {
		return "", fmt.Errorf("%w: half of %d bytes pads to %d, limit is %d", ErrValueTooLong, len(half), size, ScratchSize)
	}
	block, err := rijndael.NewCipher(key.Bytes())
	if err != nil {
		return "", err
	}
	buf := make([]byte, size)
	n := copy(buf, half)
	for i := n; i < len(buf); i++ {
		buf[i] = padByte
	}
	for off := 0; off < len(buf); off += BlockSize {
		block.Encrypt(buf[off:off+BlockSize], buf[off:off+BlockSize])
	}
	if p.sentinel {
		for i, b := range buf {
			if b == 0 {
				buf[i] = ZeroSentinel
			}
		}
	}
	return b64.Encode(buf), nil
}

// SingleDecrypt decrypts one base64 encoded half.
// The result includes any block padding, see Clean.
func (p *Protocol) SingleDecrypt(cipherText string, key timekey.Key) (string, error) {
	buf, err := b64.Decode(cipherText)
	if err != nil {
		return "", fmt.Errorf("%w: half encoding: %v", ErrMalformedEnvelope, err)
	}
	switch {
	case len(buf) == 0:
		return "", fmt.Errorf("%w: empty ciphertext", ErrMalformedEnvelope)
	case len(buf) > ScratchSize:
		return "", fmt.Errorf("%w: ciphertext of %d bytes exceeds %d", ErrMalformedEnvelope, len(buf), ScratchSize)
	case len(buf)%BlockSize != 0:
		return "", fmt.Errorf("%w: ciphertext of %d bytes is not a whole number of blocks", ErrMalformedEnvelope, len(buf))
	}

	block, err := rijndael.NewCipher(key.Bytes())
	if err != nil {
		return "", err
	}
	for off := 0; off < len(buf); off += BlockSize {
		block.Decrypt(buf[off:off+BlockSize], buf[off:off+BlockSize])
	}
	return string(buf), nil
}

// Clean strips block padding from a decrypted half.
// Output stops at the first run of two or more spaces, and a single space is only kept when something other than a space follows it.
func Clean(half string) string {
	var (
		out    = make([]byte, 0, len(half))
		spaces int
	)
	for i := 0; i < len(half); i++ {
		if half[i] == padByte {
			spaces++
			if spaces >= 2 {
				break
			}
			continue
		}
		for ; spaces > 0; spaces-- {
			out = append(out, padByte)
		}
		out = append(out, half[i])
	}
	return string(out)
}
