package timesync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saylorsolutions/ppecrypt/pkg/timekey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveBody(t *testing.T, status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClock_Handler(t *testing.T) {
	h, err := NewHandler(WithHandlerClock(timekey.FixedClock(1727712345)))
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	defer srv.Close()

	c, err := NewClock(srv.URL, WithFallback(timekey.FixedClock(42)))
	require.NoError(t, err)
	assert.Equal(t, int64(1727712345), c.Unix())

	d, err := timekey.NewDeriver(timekey.WithClock(c))
	require.NoError(t, err)
	derived, err := d.DeriveEncoded("Asia/Tehran")
	require.NoError(t, err)
	assert.Equal(t, "ERtHFyARSEcRG0cXIBFIRxEbRxcgEUhH", derived)
}

func TestClock_Fetch(t *testing.T) {
	tests := map[string]struct {
		status int
		body   string
		want   int64
		ok     bool
	}{
		"sync endpoint":      {http.StatusOK, `{"unix_timestamp": 1727712345, "status": "success"}`, 1727712345, true},
		"world time API":     {http.StatusOK, `{"timezone": "Asia/Tehran", "unixtime": 1727712399}`, 1727712399, true},
		"failed status":      {http.StatusOK, `{"unix_timestamp": 1, "status": "error"}`, 0, false},
		"no timestamp":       {http.StatusOK, `{"status": "success"}`, 0, false},
		"negative timestamp": {http.StatusOK, `{"unix_timestamp": -1}`, 0, false},
		"not JSON":           {http.StatusOK, `<html></html>`, 0, false},
		"server error":       {http.StatusInternalServerError, `{"unix_timestamp": 1}`, 0, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			srv := serveBody(t, tc.status, tc.body)
			c, err := NewClock(srv.URL)
			require.NoError(t, err)
			got, err := c.Fetch(context.Background())
			if !tc.ok {
				assert.ErrorIs(t, err, ErrTimeUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClock_Unix_Fallback(t *testing.T) {
	srv := serveBody(t, http.StatusBadGateway, "")
	c, err := NewClock(srv.URL, WithFallback(timekey.FixedClock(1727712345)))
	require.NoError(t, err)
	assert.Equal(t, int64(1727712345), c.Unix())
}

func TestClock_Unix_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewClock(srv.URL,
		WithTimeout(50*time.Millisecond),
		WithFallback(timekey.FixedClock(7)),
	)
	require.NoError(t, err)
	start := time.Now()
	assert.Equal(t, int64(7), c.Unix())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewClock_Neg(t *testing.T) {
	_, err := NewClock("")
	assert.Error(t, err)
	_, err = NewClock("http://localhost", WithTimeout(0))
	assert.Error(t, err)
	_, err = NewClock("http://localhost", WithFallback(nil))
	assert.Error(t, err)
	_, err = NewClock("http://localhost", WithClockLogger(nil))
	assert.Error(t, err)
	_, err = NewClock("http://localhost", WithHTTPClient(nil))
	assert.Error(t, err)
}
