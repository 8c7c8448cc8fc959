package wkhtmlapp

import "runtime"

// Worker sizing constants for callers that run many conversions at once.
const (
	// MinWorkers ensures at least one conversion runs.
	MinWorkers = 1

	// MaxWorkers caps concurrent wkhtml processes (each embeds a full
	// WebKit and can take a few hundred MB).
	MaxWorkers = 8
)

// ResolveWorkers determines how many conversions to run concurrently.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// GOMAXPROCS is container-aware when the binary uses automaxprocs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
