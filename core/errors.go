package core

import "errors"

var (
	// ErrConfig is returned when a TimerConfig cannot be represented on the counter
	ErrConfig = errors.New("invalid timer configuration")

	// ErrPeripheralInit wraps failures reported by the timer peripheral
	ErrPeripheralInit = errors.New("timer peripheral init failed")

	// ErrAlreadyRunning is returned by Start on a running controller
	ErrAlreadyRunning = errors.New("timer already running")
)

// Global halt handler (set by target-specific code)
var haltHandler = func(err error) {
	panic(err)
}

// SetHaltHandler sets the platform-specific fatal error handler.
// On hardware the handler must not return.
func SetHaltHandler(handler func(err error)) {
	haltHandler = handler
}

// Halt reports a fatal error and hands control to the halt handler
func Halt(err error) {
	LogLine("fatal: " + err.Error())
	haltHandler(err)
}
