package core

import (
	"context"
	"runtime"
)

// MainLoop waits for the ready signal and prints an incrementing counter
// each time it is raised.
type MainLoop struct {
	ctrl    *TimerController
	signal  *ReadySignal
	cfg     TimerConfig
	bridge  *EventBridge
	counter uint32 // Next value to print, wraps at 2^32
}

// NewMainLoop creates a loop that drives ctrl with cfg and consumes signal.
// The counter starts at 1.
func NewMainLoop(ctrl *TimerController, signal *ReadySignal, cfg TimerConfig) *MainLoop {
	return &MainLoop{
		ctrl:    ctrl,
		signal:  signal,
		cfg:     cfg,
		counter: 1,
	}
}

// Start installs an EventBridge for the configured channel and starts the timer
func (m *MainLoop) Start() error {
	LogLine("Timer started")

	if m.ctrl.Running() {
		return ErrAlreadyRunning
	}
	if err := m.cfg.Validate(); err != nil {
		return err
	}

	bridge := NewEventBridge(CompareEvent(m.cfg.Channel), m.cfg.EventsPerSignal(), m.signal)
	if err := m.ctrl.Start(m.cfg, bridge); err != nil {
		return err
	}
	m.bridge = bridge
	return nil
}

// Poll consumes a pending signal, if any, and prints the counter.
// Returns true when a signal was consumed.
func (m *MainLoop) Poll() bool {
	if !m.signal.Take() {
		return false
	}

	LogLine(utoa(uint64(m.counter)))
	m.counter++
	return true
}

// Run starts the timer and polls forever. A start failure halts.
func (m *MainLoop) Run() {
	if err := m.Start(); err != nil {
		Halt(err)
		return
	}

	for {
		m.signal.Wait()
		m.Poll()
	}
}

// RunUntil starts the timer and polls until ctx is done, then stops the timer
func (m *MainLoop) RunUntil(ctx context.Context) error {
	if err := m.Start(); err != nil {
		return err
	}
	defer m.ctrl.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !m.Poll() {
			runtime.Gosched()
		}
	}
}

// Counter returns the next value to be printed
func (m *MainLoop) Counter() uint32 {
	return m.counter
}

// Bridge returns the installed EventBridge, nil until Start succeeds
func (m *MainLoop) Bridge() *EventBridge {
	return m.bridge
}
