package rijndael

import "crypto/cipher"

var _ cipher.Block = (*Cipher)(nil)

// Cipher holds an expanded key schedule so that many blocks may be processed without re-expanding the key.
type Cipher struct {
	schedule []byte
	rounds   int
}

// NewCipher expands key once and returns a Cipher satisfying crypto/cipher.Block.
func NewCipher(key []byte) (*Cipher, error) {
	schedule, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{
		schedule: schedule,
		rounds:   len(schedule)/BlockSize - 1,
	}, nil
}

func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Encrypt encrypts the first block in src into dst, panicking on short buffers as crypto/cipher.Block requires.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}
	var s state
	copy(s[:], src[:BlockSize])
	encryptState(&s, c.schedule, c.rounds)
	copy(dst, s[:])
}

// Decrypt decrypts the first block in src into dst, panicking on short buffers as crypto/cipher.Block requires.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}
	var s state
	copy(s[:], src[:BlockSize])
	decryptState(&s, c.schedule, c.rounds)
	copy(dst, s[:])
}
