package wkhtmlapp

import "time"

// RunEvent describes one finished invocation.
type RunEvent struct {
	Binary   string
	Flow     Flow
	Output   string // artifact path, even when Err is set
	Duration time.Duration
	Err      error
}

// Observer is notified after every Runner invocation, successful or not.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveRun(ev RunEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev RunEvent)

// ObserveRun calls f(ev).
func (f ObserverFunc) ObserveRun(ev RunEvent) {
	f(ev)
}
