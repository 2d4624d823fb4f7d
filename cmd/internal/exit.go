package internal

import (
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// Stderr receives messages from Echo and Fatal.
	Stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Fatal will Echo the message and exit with code 1.
func Fatal(msg string, args ...any) {
	Echo(msg, args...)
	exit(1)
}

// Echo will emit the given message to Stderr without any logging formatting.
func Echo(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = fmt.Fprintf(Stderr, msg, args...)
}
