package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/ppecrypt/cmd/internal"
	"github.com/saylorsolutions/ppecrypt/pkg/ppe"
	"github.com/saylorsolutions/ppecrypt/pkg/splitmerge"
	"github.com/saylorsolutions/ppecrypt/pkg/timekey"
	"github.com/saylorsolutions/ppecrypt/pkg/timesync"
	flag "github.com/spf13/pflag"
)

const (
	envSalt     = "PPE_SALT"
	envKey      = "PPE_KEY"
	envTimeURL  = "PPE_TIME_URL"
	envLogLevel = "PPE_LOG_LEVEL"
	envListen   = "PPE_LISTEN"

	defaultLogLevel = "warn"
	defaultListen   = "127.0.0.1:8080"
)

type config struct {
	salt        string
	key         string
	at          int64
	timeURL     string
	timeTimeout time.Duration
	logLevel    string
	parallel    bool
	rawZeros    bool
	listen      string
	encoded     bool

	logOutput io.Writer
}

// bindFlags registers the flags shared by every command, defaulted from the environment.
func (c *config) bindFlags(flags *flag.FlagSet) {
	flags.StringVarP(&c.salt, "salt", "s", internal.Env(envSalt, ""), "Salt shared by both parties. Defaults to $"+envSalt+".")
	flags.StringVarP(&c.key, "key", "k", internal.Env(envKey, ""), "Use this key (base64 or 24 raw characters) instead of deriving one. Defaults to $"+envKey+".")
	flags.Int64Var(&c.at, "at", 0, "Derive the key at this instant, given as Unix seconds, instead of reading a clock.")
	flags.StringVar(&c.timeURL, "time-url", internal.Env(envTimeURL, ""), "Read the time from this time-sync endpoint, falling back to the local clock. Defaults to $"+envTimeURL+".")
	flags.DurationVar(&c.timeTimeout, "time-timeout", timesync.DefaultTimeout, "Timeout for requests to --time-url.")
	flags.StringVar(&c.logLevel, "log-level", internal.Env(envLogLevel, defaultLogLevel), "Log level (trace, debug, info, warn, error). Defaults to $"+envLogLevel+".")
	flags.BoolVar(&c.parallel, "parallel", false, "Process both halves of a value concurrently.")
	flags.BoolVar(&c.rawZeros, "raw-zeros", false, "Leave zero bytes in ciphertext instead of replacing them with 0xCB. Both parties must agree on this.")
}

func (c *config) logger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "ppe",
		Level:      hclog.LevelFromString(c.logLevel),
		Output:     c.logOutput,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// clock selects the time source: a fixed instant, a time-sync endpoint, or the system clock.
func (c *config) clock(flags *flag.FlagSet, logger hclog.Logger) (timekey.Clock, error) {
	if flags.Changed("at") {
		if c.at < 0 {
			return nil, fmt.Errorf("--at must not be negative: %d", c.at)
		}
		return timekey.FixedClock(c.at), nil
	}
	if c.timeURL != "" {
		return timesync.NewClock(c.timeURL,
			timesync.WithTimeout(c.timeTimeout),
			timesync.WithClockLogger(logger.Named("timesync")),
		)
	}
	return timekey.SystemClock{}, nil
}

func (c *config) engine(flags *flag.FlagSet, logger hclog.Logger) (*ppe.Engine, error) {
	clock, err := c.clock(flags, logger)
	if err != nil {
		return nil, err
	}
	protocol, err := splitmerge.New(
		splitmerge.WithLogger(logger.Named("splitmerge")),
		splitmerge.WithConcurrentHalves(c.parallel),
		splitmerge.WithZeroSentinel(!c.rawZeros),
	)
	if err != nil {
		return nil, err
	}
	return ppe.New(
		ppe.WithClock(clock),
		ppe.WithLogger(logger),
		ppe.WithProtocol(protocol),
	)
}

func formatUnix(unix int64) string {
	return strconv.FormatInt(unix, 10) + " (" + time.Unix(unix, 0).UTC().Format(time.RFC3339) + ")"
}
