package timekey

import "time"

// Clock provides the current time as integer seconds since the Unix epoch (UTC).
type Clock interface {
	Unix() int64
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() int64

func (f ClockFunc) Unix() int64 {
	return f()
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Unix() int64 {
	return time.Now().UTC().Unix()
}

// FixedClock always reports the same instant, which is useful for tests and reproducing a historical key.
type FixedClock int64

func (c FixedClock) Unix() int64 {
	return int64(c)
}
