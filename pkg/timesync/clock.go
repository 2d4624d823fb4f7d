package timesync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/ppecrypt/pkg/timekey"
)

const (
	DefaultTimeout = 5 * time.Second
	// maxBodySize limits how much of a time response is read.
	maxBodySize = 64 * 1024
)

var ErrTimeUnavailable = errors.New("remote time unavailable")

var _ timekey.Clock = (*Clock)(nil)

// Clock reads the time from a remote endpoint, falling back to a local clock.
type Clock struct {
	url      string
	client   *http.Client
	timeout  time.Duration
	fallback timekey.Clock
	logger   hclog.Logger
}

type ClockOpt = func(*Clock) error

func WithClockLogger(logger hclog.Logger) ClockOpt {
	return func(c *Clock) error {
		if logger == nil {
			return errors.New("nil logger")
		}
		c.logger = logger
		return nil
	}
}

// WithTimeout limits each request, including reading the body. The default is DefaultTimeout.
func WithTimeout(timeout time.Duration) ClockOpt {
	return func(c *Clock) error {
		if timeout <= 0 {
			return errors.New("timeout must be positive")
		}
		c.timeout = timeout
		return nil
	}
}

// WithFallback sets the clock used when the remote endpoint can't be reached. The default is timekey.SystemClock.
func WithFallback(clock timekey.Clock) ClockOpt {
	return func(c *Clock) error {
		if clock == nil {
			return errors.New("nil fallback clock")
		}
		c.fallback = clock
		return nil
	}
}

func WithHTTPClient(client *http.Client) ClockOpt {
	return func(c *Clock) error {
		if client == nil {
			return errors.New("nil HTTP client")
		}
		c.client = client
		return nil
	}
}

// NewClock creates a Clock for the given URL using the options provided as zero or more ClockOpt.
func NewClock(url string, opts ...ClockOpt) (*Clock, error) {
	if url == "" {
		return nil, errors.New("time URL is required")
	}
	c := &Clock{
		url:      url,
		client:   http.DefaultClient,
		timeout:  DefaultTimeout,
		fallback: timekey.SystemClock{},
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Unix returns the remote time, or the fallback clock's time if the remote time isn't available.
func (c *Clock) Unix() int64 {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	unix, err := c.Fetch(ctx)
	if err != nil {
		local := c.fallback.Unix()
		c.logger.Warn("Using local clock", "url", c.url, "error", err, "unix", local)
		return local
	}
	return unix
}

// Fetch queries the remote endpoint once.
func (c *Clock) Fetch(ctx context.Context) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTimeUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTimeUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d", ErrTimeUnavailable, resp.StatusCode)
	}

	var body struct {
		UnixTimestamp *int64 `json:"unix_timestamp"`
		UnixTime      *int64 `json:"unixtime"`
		Status        string `json:"status"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&body); err != nil {
		return 0, fmt.Errorf("%w: decoding response: %v", ErrTimeUnavailable, err)
	}
	if body.Status != "" && body.Status != statusSuccess {
		return 0, fmt.Errorf("%w: status %q", ErrTimeUnavailable, body.Status)
	}
	var unix int64
	switch {
	case body.UnixTimestamp != nil:
		unix = *body.UnixTimestamp
	case body.UnixTime != nil:
		unix = *body.UnixTime
	default:
		return 0, fmt.Errorf("%w: response has no timestamp", ErrTimeUnavailable)
	}
	if unix < 0 {
		return 0, fmt.Errorf("%w: negative timestamp %d", ErrTimeUnavailable, unix)
	}
	c.logger.Trace("Fetched remote time", "url", c.url, "unix", unix)
	return unix, nil
}
