package rijndael

import (
	"errors"
	"fmt"

	"github.com/templexxx/xor"
)

const (
	BlockSize = 16
	wordSize  = 4
)

// KeySize is the length of a raw AES key in bytes.
type KeySize int

const (
	KeySize128 KeySize = 128 / 8
	KeySize192 KeySize = 192 / 8
	KeySize256 KeySize = 256 / 8
)

var (
	ErrUnknownKeySize    = errors.New("rijndael: unknown key size")
	ErrAllocationFailure = errors.New("rijndael: key schedule buffer unavailable")
	ErrBlockSize         = errors.New("rijndael: input is not a single block")
)

// Rounds reports the number of cipher rounds used for the given key size.
func Rounds(size KeySize) (int, error) {
	switch size {
	case KeySize128:
		return 10, nil
	case KeySize192:
		return 12, nil
	case KeySize256:
		return 14, nil
	default:
		return 0, fmt.Errorf("%w: %d bytes", ErrUnknownKeySize, int(size))
	}
}

// ScheduleSize reports the length of the expanded key schedule for the given key size.
func ScheduleSize(size KeySize) (int, error) {
	rounds, err := Rounds(size)
	if err != nil {
		return 0, err
	}
	return BlockSize * (rounds + 1), nil
}

// ExpandKey allocates and populates the key schedule for key.
func ExpandKey(key []byte) ([]byte, error) {
	n, err := ScheduleSize(KeySize(len(key)))
	if err != nil {
		return nil, err
	}
	schedule := make([]byte, n)
	if err := ExpandKeyInto(schedule, key); err != nil {
		return nil, err
	}
	return schedule, nil
}

// ExpandKeyInto populates a caller-provided schedule buffer, which must be at least ScheduleSize bytes long.
// Bytes past the schedule length are left untouched.
func ExpandKeyInto(schedule, key []byte) error {
	size := KeySize(len(key))
	n, err := ScheduleSize(size)
	if err != nil {
		return err
	}
	if len(schedule) < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrAllocationFailure, n, len(schedule))
	}

	var (
		ks   = int(size)
		cur  = copy(schedule, key)
		iter = 1
		t    [wordSize]byte
	)
	for cur < n {
		copy(t[:], schedule[cur-wordSize:cur])
		if cur%ks == 0 {
			scheduleCore(&t, iter)
			iter++
		}
		if size == KeySize256 && cur%ks == BlockSize {
			for i := range t {
				t[i] = sbox[t[i]]
			}
		}
		xor.BytesSameLen(schedule[cur:cur+wordSize], schedule[cur-ks:cur-ks+wordSize], t[:])
		cur += wordSize
	}
	return nil
}

// scheduleCore rotates the word left by one byte, substitutes it through the S-box, and mixes in the round constant.
func scheduleCore(word *[wordSize]byte, iter int) {
	word[0], word[1], word[2], word[3] = word[1], word[2], word[3], word[0]
	for i := range word {
		word[i] = sbox[word[i]]
	}
	word[0] ^= rcon[iter]
}
