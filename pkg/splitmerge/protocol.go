package splitmerge

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/ppecrypt/pkg/b64"
	"github.com/saylorsolutions/ppecrypt/pkg/rijndael"
	"github.com/saylorsolutions/ppecrypt/pkg/timekey"
)

const (
	Delimiter = "~|~"
	// ZeroSentinel replaces zero bytes in ciphertext.
	ZeroSentinel byte = 0xCB
	// ScratchSize is the largest ciphertext produced or accepted for a single half, so a half may hold at most ScratchSize bytes.
	ScratchSize = 1024
	BlockSize   = rijndael.BlockSize

	tokenSep = "~"
	tokenCut = "|"
	padByte  = ' '
)

var (
	ErrMalformedEnvelope = errors.New("malformed envelope")
	ErrValueTooLong      = errors.New("value too long")
)

// Protocol encrypts and decrypts envelopes.
// A Protocol holds no key material and is safe for concurrent use.
type Protocol struct {
	logger     hclog.Logger
	concurrent bool
	sentinel   bool
}

type Opt = func(*Protocol) error

// WithLogger sets the logger used for debug tracing. Keys are only ever logged by fingerprint.
func WithLogger(logger hclog.Logger) Opt {
	return func(p *Protocol) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		p.logger = logger
		return nil
	}
}

// WithConcurrentHalves controls whether the left and right halves are processed on separate goroutines.
// Output is identical either way.
func WithConcurrentHalves(enabled bool) Opt {
	return func(p *Protocol) error {
		p.concurrent = enabled
		return nil
	}
}

// WithZeroSentinel controls whether zero bytes in ciphertext are replaced with ZeroSentinel, which is the default.
func WithZeroSentinel(enabled bool) Opt {
	return func(p *Protocol) error {
		p.sentinel = enabled
		return nil
	}
}

// New creates a Protocol using the options provided as zero or more Opt.
func New(opts ...Opt) (*Protocol, error) {
	p := &Protocol{
		logger:   hclog.NewNullLogger(),
		sentinel: true,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

var defaultProtocol = &Protocol{
	logger:   hclog.NewNullLogger(),
	sentinel: true,
}

// Encrypt uses a default Protocol to encrypt value.
func Encrypt(value string, key timekey.Key) (string, error) {
	return defaultProtocol.Encrypt(value, key)
}

// Decrypt uses a default Protocol to decrypt envelope.
func Decrypt(envelope string, key timekey.Key) (string, error) {
	return defaultProtocol.Decrypt(envelope, key)
}

// Split divides value at len(value)/2 bytes.
func Split(value string) (left, right string) {
	mid := len(value) / 2
	return value[:mid], value[mid:]
}

// Encrypt produces an envelope for value.
func (p *Protocol) Encrypt(value string, key timekey.Key) (string, error) {
	left, right := Split(value)
	leftCipher, rightCipher, err := p.both(left, right, func(half string) (string, error) {
		return p.SingleEncrypt(half, key)
	})
	if err != nil {
		return "", err
	}
	envelope := b64.Encode([]byte(leftCipher + Delimiter + rightCipher))
	p.logger.Debug("Encrypted value", "key", key.Fingerprint(), "left_len", len(left), "right_len", len(right), "envelope_len", len(envelope))
	return envelope, nil
}

// Decrypt recovers the value from an envelope.
// Block padding is removed by Clean, so trailing spaces in the original value may not survive.
func (p *Protocol) Decrypt(envelope string, key timekey.Key) (string, error) {
	inner, err := b64.Decode(envelope)
	if err != nil {
		return "", fmt.Errorf("%w: outer encoding: %v", ErrMalformedEnvelope, err)
	}
	tokens := strings.Split(string(inner), tokenSep)
	if len(tokens) != 3 {
		return "", fmt.Errorf("%w: expected 3 tokens, got %d", ErrMalformedEnvelope, len(tokens))
	}
	for i := range tokens {
		tokens[i] = strings.TrimSuffix(tokens[i], tokenCut)
	}

	leftPlain, rightPlain, err := p.both(tokens[0], tokens[2], func(cipherText string) (string, error) {
		return p.SingleDecrypt(cipherText, key)
	})
	if err != nil {
		return "", err
	}
	p.logger.Debug("Decrypted envelope", "key", key.Fingerprint(), "envelope_len", len(envelope))
	return Clean(leftPlain) + Clean(rightPlain), nil
}

// both applies fn to each half, in parallel if configured.
func (p *Protocol) both(left, right string, fn func(string) (string, error)) (string, string, error) {
	if !p.concurrent {
		l, err := fn(left)
		if err != nil {
			return "", "", err
		}
		r, err := fn(right)
		if err != nil {
			return "", "", err
		}
		return l, r, nil
	}

	var (
		wg   sync.WaitGroup
		l, r string
		lErr error
		rErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		l, lErr = fn(left)
	}()
	go func() {
		defer wg.Done()
		r, rErr = fn(right)
	}()
	wg.Wait()
	if err := errors.Join(lErr, rErr); err != nil {
		return "", "", err
	}
	return l, r, nil
}
