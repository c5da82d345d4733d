// Package debug provides SV_DEBUG-gated stderr logging. When the variable
// is unset every call is a no-op.
//
//	SV_DEBUG=1 sv --find widget
package debug

import (
	"log"
	"os"
	"time"
)

var (
	enabled = os.Getenv("SV_DEBUG") != ""
	logger  = log.New(os.Stderr, "[sv] ", log.Ltime|log.Lmicroseconds)
)

// Enabled reports whether debug logging is on.
func Enabled() bool { return enabled }

// SetEnabled overrides the SV_DEBUG environment toggle.
func SetEnabled(e bool) { enabled = e }

// Log writes a printf-style debug line.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// Timed logs how long a step took. Use with defer:
//
//	defer debug.Timed("filter")()
func Timed(name string) func() {
	if !enabled {
		return func() {}
	}
	start := time.Now()
	return func() {
		logger.Printf("%s took %v", name, time.Since(start))
	}
}
