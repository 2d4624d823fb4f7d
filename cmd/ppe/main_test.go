package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/ppecrypt/pkg/timesync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	scenarioEnvelope = "OW1YenFYRUU2ZnZQVzVqcFZ6b0RtZz09fnx+K3RBOW5zaHo2UkJYTkYwcWp5ZkUydz09"
	scenarioKey      = "ERtHFyARSEcRG0cXIBFIRxEbRxcgEUhH"
)

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd(&config{logOutput: io.Discard})
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEncryptCmd(t *testing.T) {
	out, err := run(t, "encrypt", "--at", "1727712345", "--salt", "Asia/Tehran", "10,19; ")
	require.NoError(t, err)
	assert.Equal(t, scenarioEnvelope+"\n", out)

	out, err = run(t, "encrypt", "--parallel", "-k", scenarioKey, "10,19; ")
	require.NoError(t, err)
	assert.Equal(t, scenarioEnvelope+"\n", out)
}

func TestDecryptCmd(t *testing.T) {
	out, err := run(t, "decrypt", "--at", "1727712399", "-s", "Asia/Tehran", scenarioEnvelope)
	require.NoError(t, err)
	assert.Equal(t, "10,19;\n", out)

	out, err = run(t, "decrypt", "--key", scenarioKey, scenarioEnvelope)
	require.NoError(t, err)
	assert.Equal(t, "10,19;\n", out)

	_, err = run(t, "decrypt", "--key", scenarioKey, "not an envelope")
	assert.Error(t, err)
	_, err = run(t, "decrypt", "--at", "-1", scenarioEnvelope)
	assert.Error(t, err)
	_, err = run(t, "decrypt")
	assert.Error(t, err)
}

func TestKeyCmd(t *testing.T) {
	out, err := run(t, "key", "--at", "1727712345", "--encoded")
	require.NoError(t, err)
	assert.Equal(t, scenarioKey+"\n", out)

	out, err = run(t, "key", "--at", "1727712345")
	require.NoError(t, err)
	assert.Equal(t, "111b471720114847111b471720114847111b471720114847\n", out)

	_, err = run(t, "key", "--at", "0")
	assert.Error(t, err)
}

func TestConfig_Env(t *testing.T) {
	t.Setenv(envSalt, "Asia/Tehran")
	t.Setenv(envLogLevel, "error")
	cfg := &config{logOutput: io.Discard}
	root := newRootCmd(cfg)
	root.SetArgs([]string{"encrypt", "--at", "1727712345", "10,19; "})
	var out bytes.Buffer
	root.SetOut(&out)
	require.NoError(t, root.Execute())
	assert.Equal(t, "Asia/Tehran", cfg.salt)
	assert.Equal(t, "error", cfg.logLevel)
	assert.Equal(t, scenarioEnvelope+"\n", out.String())
}

func TestEncryptCmd_TimeURL(t *testing.T) {
	h, err := timesync.NewHandler()
	require.NoError(t, err)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &http.Server{Handler: h, ReadHeaderTimeout: time.Second}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Close() })

	envelope, err := run(t, "encrypt", "--raw-zeros", "--time-url", "http://"+ln.Addr().String(), "-s", "salt", "1234")
	require.NoError(t, err)
	// Retry once in case the window rolled over between the two calls.
	for i := 0; i < 2; i++ {
		out, err := run(t, "decrypt", "--raw-zeros", "--time-url", "http://"+ln.Addr().String(), "-s", "salt", strings.TrimSpace(envelope))
		require.NoError(t, err)
		if out == "1234\n" {
			return
		}
		envelope, err = run(t, "encrypt", "--raw-zeros", "--time-url", "http://"+ln.Addr().String(), "-s", "salt", "1234")
		require.NoError(t, err)
	}
	t.Fatal("Round trip through the time-sync endpoint failed")
}

func TestServe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	h, err := timesync.NewHandler()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, addr, h, hclog.NewNullLogger())
	}()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + addr)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
	var body timesync.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	_ = resp.Body.Close()
	assert.Equal(t, "success", body.Status)
	assert.Positive(t, body.UnixTimestamp)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Server did not shut down")
	}
}

func TestInspectCmd(t *testing.T) {
	out, err := run(t, "inspect", scenarioEnvelope)
	require.NoError(t, err)
	assert.Equal(t, `inner:  "9mXzqXEE6fvPW5jpVzoDmg==~|~+tA9nshz6RBXNF0qjyfE2w=="
tokens: 3
left:   16 bytes f665f3a97104e9fbcf5b98e9573a039a
right:  16 bytes fad03d9ec873e91057345d2a8f27c4db
`, out)

	out, err = run(t, "inspect", "QX58fkJ+fH5D")
	require.NoError(t, err)
	assert.Contains(t, out, "tokens: 5\n")
}
