package timekey

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// windowDigits is the number of leading epoch digits that make up the key window.
	windowDigits = 8
	// keyBasePairs is the number of reversed/forward repetitions appended to the leading digits.
	keyBasePairs = 6
)

var (
	ErrKeyDerivationUnderflow = errors.New("derived key material is shorter than the key size")
	ErrInvalidTimestep        = errors.New("clock reported an unusable timestep")
	ErrInvalidKey             = errors.New("invalid key material")
)

// Deriver derives keys from a Clock.
type Deriver struct {
	clock Clock
}

type DeriverOpt = func(*Deriver) error

// WithClock overrides the SystemClock default.
func WithClock(clock Clock) DeriverOpt {
	return func(d *Deriver) error {
		if clock == nil {
			return errors.New("nil clock")
		}
		d.clock = clock
		return nil
	}
}

// NewDeriver creates a Deriver using the options provided as zero or more DeriverOpt.
func NewDeriver(opts ...DeriverOpt) (*Deriver, error) {
	d := &Deriver{
		clock: SystemClock{},
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// DeriveKey reads the clock once and derives the key for the current window.
func (d *Deriver) DeriveKey(salt string) (Key, error) {
	return DeriveAt(d.clock.Unix(), salt)
}

// DeriveEncoded is DeriveKey, returning the key in base64 form.
func (d *Deriver) DeriveEncoded(salt string) (string, error) {
	key, err := d.DeriveKey(salt)
	if err != nil {
		return "", err
	}
	return key.String(), nil
}

// DeriveKey derives a key from the system clock.
func DeriveKey(salt string) (Key, error) {
	return DeriveAt(SystemClock{}.Unix(), salt)
}

// DeriveAt derives the key for the window containing the given epoch seconds.
func DeriveAt(unix int64, salt string) (Key, error) {
	var key Key
	base, err := keyBase(unix)
	if err != nil {
		return key, err
	}

	buf := make([]byte, 0, len(base)/4+1+len(salt))
	for i := 0; i <= len(base)/2 && i+1 < len(base); i += 2 {
		n, err := strconv.Atoi(base[i : i+2])
		if err != nil {
			return key, fmt.Errorf("%w: non-digit pair %q", ErrInvalidTimestep, base[i:i+2])
		}
		buf = append(buf, byte(n))
	}
	buf = append(buf, salt...)
	if len(buf) < KeySize {
		return key, fmt.Errorf("%w: have %d bytes, need %d", ErrKeyDerivationUnderflow, len(buf), KeySize)
	}
	copy(key[:], buf[:KeySize])
	return key, nil
}

// keyBase builds the digit string scanned for key bytes.
func keyBase(unix int64) (string, error) {
	if unix < 0 {
		return "", fmt.Errorf("%w: negative epoch %d", ErrInvalidTimestep, unix)
	}
	digits := strconv.FormatInt(unix, 10)
	if len(digits) > windowDigits {
		digits = digits[:windowDigits]
	}
	reversed := make([]byte, len(digits))
	for i := range digits {
		reversed[len(digits)-1-i] = digits[i]
	}

	base := make([]byte, 0, len(digits)*(2*keyBasePairs+1))
	base = append(base, digits...)
	for i := 0; i < keyBasePairs; i++ {
		base = append(base, reversed...)
		base = append(base, digits...)
	}
	return string(base), nil
}

// Window returns the inclusive range of epoch seconds that derive the same key as unix.
func Window(unix int64) (start, end int64) {
	if unix < 0 {
		return unix, unix
	}
	width := int64(1)
	for n := len(strconv.FormatInt(unix, 10)); n > windowDigits; n-- {
		width *= 10
	}
	start = unix - unix%width
	return start, start + width - 1
}
