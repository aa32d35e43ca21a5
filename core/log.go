package core

import "sync/atomic"

// LogWriter is a function type for writing one line of output
type LogWriter func(string)

var (
	// logWriter is the global line sink (set by platform code)
	logWriter LogWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Async output channel, nil until InitAsyncLog
	logChan chan string

	// Lines dropped because the async channel was full
	logDropped uint32
)

// SetLogWriter sets the platform-specific line sink.
// This allows platforms to redirect output to UART, RTT, stdout, etc.
func SetLogWriter(writer LogWriter) {
	logWriter = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncLog starts the async output goroutine. After this LogLine
// queues instead of writing, and drops lines when size are already queued.
// Call this from main() after SetLogWriter.
func InitAsyncLog(size int) {
	logChan = make(chan string, size)
	go logOutputWorker(logChan)
}

// CloseAsyncLog returns LogLine to synchronous writes. Lines already queued
// are still written by the worker. Must not race with LogLine.
func CloseAsyncLog() {
	if logChan != nil {
		close(logChan)
		logChan = nil
	}
}

// logOutputWorker runs in background, drains the log channel
func logOutputWorker(ch chan string) {
	for msg := range ch {
		if logWriter != nil {
			logWriter(msg)
		}
	}
}

// LogLine writes one line of output. Best effort and ordered.
func LogLine(msg string) {
	if logChan != nil {
		select {
		case logChan <- msg:
		default:
			// Channel full, drop message (non-blocking)
			atomic.AddUint32(&logDropped, 1)
		}
		return
	}
	if logWriter != nil {
		logWriter(msg)
	}
}

// LogDropped returns the number of lines dropped by the async sink
func LogDropped() uint32 {
	return atomic.LoadUint32(&logDropped)
}

// DebugPrintln writes a line only when debug output is enabled
func DebugPrintln(msg string) {
	if debugEnabled {
		LogLine(msg)
	}
}
