// Package monitoring holds the process-wide summary logger used by the
// command line tool and the layer planner.
package monitoring

import (
	"log"
	"time"
)

// Logf is the package-level summary logger. It defaults to log.Printf and
// may be replaced by SetLogger to redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil sets a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Stage logs the start of a named processing stage and returns a function
// that logs its duration. Use as defer monitoring.Stage("plan")().
func Stage(name string) func() {
	start := time.Now()
	Logf("%s: started", name)
	return func() {
		Logf("%s: done in %s", name, time.Since(start).Round(time.Millisecond))
	}
}
