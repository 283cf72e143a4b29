package report

import (
	"log"
	"sync/atomic"
)

// Guard wraps fn so that at most one call runs at a time. A call made while
// another is still in progress returns nil at once and logs a warning.
func Guard(name string, logger *log.Logger, fn func() error) func() error {
	if logger == nil {
		logger = log.Default()
	}
	var running atomic.Bool
	return func() error {
		if !running.CompareAndSwap(false, true) {
			logger.Printf("WARNING: %s is still running, skipping this run", name)
			return nil
		}
		defer running.Store(false)
		return fn()
	}
}
