package timekey

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

const (
	// KeySize is the length of derived key material, sized for AES-192.
	KeySize = 24
	// fingerprintLen is the number of hash bytes shown by Key.Fingerprint.
	fingerprintLen = 8
)

// Key is immutable AES-192 key material, scoped to a single encrypt or decrypt operation.
type Key [KeySize]byte

// Bytes returns a copy of the key material.
func (k Key) Bytes() []byte {
	b := make([]byte, KeySize)
	copy(b, k[:])
	return b
}

// String returns the standard base64 encoding of the key.
func (k Key) String() string {
	return base64.StdEncoding.EncodeToString(k[:])
}

// Fingerprint identifies a key in logs without revealing it.
func (k Key) Fingerprint() string {
	sum := blake2b.Sum256(k[:])
	return hex.EncodeToString(sum[:fingerprintLen])
}

// KeyFromBytes copies exactly KeySize bytes into a Key.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if len(b) != KeySize {
		return k, fmt.Errorf("%w: key must be %d bytes, got %d", ErrInvalidKey, KeySize, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// ParseKey accepts either the base64 form produced by Key.String, or the raw 24 characters of the key.
func ParseKey(s string) (Key, error) {
	if decoded, err := base64.StdEncoding.DecodeString(s); err == nil && len(decoded) == KeySize {
		return KeyFromBytes(decoded)
	}
	return KeyFromBytes([]byte(s))
}
