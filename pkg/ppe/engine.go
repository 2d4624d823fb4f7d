package ppe

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/ppecrypt/pkg/splitmerge"
	"github.com/saylorsolutions/ppecrypt/pkg/timekey"
)

// Engine ties a key Deriver to a splitmerge.Protocol.
type Engine struct {
	logger   hclog.Logger
	clock    timekey.Clock
	protocol *splitmerge.Protocol
	deriver  *timekey.Deriver
}

type Opt = func(*Engine) error

// WithClock sets the time source used for key derivation. The default is timekey.SystemClock.
func WithClock(clock timekey.Clock) Opt {
	return func(e *Engine) error {
		if clock == nil {
			return errors.New("nil clock")
		}
		e.clock = clock
		return nil
	}
}

func WithLogger(logger hclog.Logger) Opt {
	return func(e *Engine) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		e.logger = logger
		return nil
	}
}

// WithProtocol overrides the default splitmerge.Protocol, for example to process halves concurrently.
func WithProtocol(protocol *splitmerge.Protocol) Opt {
	return func(e *Engine) error {
		if protocol == nil {
			return errors.New("nil protocol")
		}
		e.protocol = protocol
		return nil
	}
}

// New creates an Engine using the options provided as zero or more Opt.
func New(opts ...Opt) (*Engine, error) {
	e := &Engine{
		logger: hclog.NewNullLogger(),
		clock:  timekey.SystemClock{},
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if e.protocol == nil {
		protocol, err := splitmerge.New(splitmerge.WithLogger(e.logger.Named("splitmerge")))
		if err != nil {
			return nil, err
		}
		e.protocol = protocol
	}
	deriver, err := timekey.NewDeriver(timekey.WithClock(e.clock))
	if err != nil {
		return nil, err
	}
	e.deriver = deriver
	return e, nil
}

// Encrypt derives a key from salt and the current time, and returns the envelope for value.
func (e *Engine) Encrypt(value, salt string) (string, error) {
	key, err := e.deriver.DeriveKey(salt)
	if err != nil {
		return "", err
	}
	e.logger.Trace("Derived encryption key", "key", key.Fingerprint())
	return e.protocol.Encrypt(value, key)
}

// Decrypt derives a key from salt and the current time, and recovers the value in envelope.
func (e *Engine) Decrypt(envelope, salt string) (string, error) {
	key, err := e.deriver.DeriveKey(salt)
	if err != nil {
		return "", err
	}
	e.logger.Trace("Derived decryption key", "key", key.Fingerprint())
	return e.protocol.Decrypt(envelope, key)
}

// EncryptWithKey encrypts value with key material accepted by timekey.ParseKey.
func (e *Engine) EncryptWithKey(value, key string) (string, error) {
	k, err := timekey.ParseKey(key)
	if err != nil {
		return "", err
	}
	return e.protocol.Encrypt(value, k)
}

// DecryptWithKey decrypts envelope with key material accepted by timekey.ParseKey.
func (e *Engine) DecryptWithKey(envelope, key string) (string, error) {
	k, err := timekey.ParseKey(key)
	if err != nil {
		return "", err
	}
	return e.protocol.Decrypt(envelope, k)
}
