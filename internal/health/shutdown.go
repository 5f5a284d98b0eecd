package health

import "sync/atomic"

// ready gates the readiness endpoint during startup and shutdown so
// load balancers drain traffic before the listener closes.
var ready atomic.Bool

func init() {
	ready.Store(true)
}

// SetReady flips the readiness gate.
func SetReady(v bool) {
	ready.Store(v)
}

// IsReady reports the gate state.
func IsReady() bool {
	return ready.Load()
}
