package core

import "fmt"

// TimerPeripheral is the abstract hardware timer interface that core code uses.
// Platform-specific implementations handle the actual registers.
type TimerPeripheral interface {
	// Configure initializes the timer at freqHz with a counter of bitWidth bits
	// and installs handler as its interrupt handler. The timer stays disabled.
	Configure(freqHz uint32, bitWidth uint8, handler EventHandler) error

	// SetCompare programs a compare channel to match at ticks.
	// With autoClear the counter restarts on the match, making it periodic.
	SetCompare(channel uint8, ticks uint32, autoClear bool)

	// Enable starts the counter
	Enable()

	// Disable stops the counter, no further events are delivered
	Disable()

	// TicksFromUS converts microseconds to ticks at the configured frequency
	TicksFromUS(us uint32) uint64
}

// Global singleton registered by target code.
var timerPeripheral TimerPeripheral

// SetTimerPeripheral is called by target-specific code to register its timer.
func SetTimerPeripheral(p TimerPeripheral) {
	timerPeripheral = p
}

// MustTimer returns the configured timer or panics if missing.
func MustTimer() TimerPeripheral {
	if timerPeripheral == nil {
		panic("timer peripheral not configured")
	}
	return timerPeripheral
}

// TimerController owns one periodic compare channel on a TimerPeripheral
type TimerController struct {
	periph  TimerPeripheral
	cfg     TimerConfig
	running bool
}

// NewTimerController creates a stopped controller for p
func NewTimerController(p TimerPeripheral) *TimerController {
	return &TimerController{periph: p}
}

// Start programs the compare channel from cfg and enables the timer.
// handler is invoked from interrupt context on every timer event until Stop.
func (c *TimerController) Start(cfg TimerConfig, handler EventHandler) error {
	if c.running {
		return ErrAlreadyRunning
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := c.periph.Configure(cfg.FrequencyHz, cfg.BitWidth, handler); err != nil {
		return fmt.Errorf("%w: %w", ErrPeripheralInit, err)
	}

	// The peripheral may run at a slightly different rate than requested,
	// so the width check is repeated on its own conversion.
	ticks := c.periph.TicksFromUS(cfg.CompareInterval())
	if ticks == 0 || ticks > CounterMax(cfg.BitWidth) {
		return fmt.Errorf("%w: compare interval %dus is %d ticks, counter holds 1..%d",
			ErrConfig, cfg.CompareInterval(), ticks, CounterMax(cfg.BitWidth))
	}

	state := disableInterrupts()
	c.periph.SetCompare(cfg.Channel, uint32(ticks), true)
	c.periph.Enable()
	c.cfg = cfg
	c.running = true
	restoreInterrupts(state)

	DebugPrintln("[TIMER] channel=" + utoa(uint64(cfg.Channel)) +
		" compare_ticks=" + utoa(ticks) +
		" events_per_signal=" + utoa(uint64(cfg.EventsPerSignal())))
	return nil
}

// MustStart starts the timer and halts on failure. Running with a
// misconfigured timer would leave the main loop waiting forever.
func (c *TimerController) MustStart(cfg TimerConfig, handler EventHandler) {
	if err := c.Start(cfg, handler); err != nil {
		Halt(err)
	}
}

// Stop disables the timer. Calling Stop on a stopped controller does nothing.
func (c *TimerController) Stop() {
	if !c.running {
		return
	}

	state := disableInterrupts()
	c.periph.Disable()
	c.running = false
	restoreInterrupts(state)

	DebugPrintln("[TIMER] stopped")
}

// Running reports whether the timer is enabled
func (c *TimerController) Running() bool {
	return c.running
}

// Config returns the config of the last successful Start
func (c *TimerController) Config() TimerConfig {
	return c.cfg
}
