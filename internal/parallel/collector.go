// Package parallel provides small synchronization helpers shared by the
// worker pools in this repository.
package parallel

import "sync"

// ErrorCollector records the first non-nil error reported by a group of
// concurrent workers. Subsequent errors are discarded; nil errors are
// ignored. The zero value is ready for use.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is non-nil and no error has been recorded yet.
// Safe for concurrent use.
func (ec *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	ec.mu.Lock()
	if ec.err == nil {
		ec.err = err
	}
	ec.mu.Unlock()
}

// Err returns the first recorded error, or nil if no worker reported one.
func (ec *ErrorCollector) Err() error {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.err
}
