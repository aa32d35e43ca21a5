package core

import "fmt"

// Timer frequencies for common MCUs
const (
	TimerFreq1MHz  = 1000000  // nRF52 TIMER with PRESCALER=4, RP2040 TIMER
	TimerFreq16MHz = 16000000 // nRF52 HFCLK (PRESCALER=0)
)

// MaxCompareChannels is the number of compare channels the HAL exposes
const MaxCompareChannels = 4

// TimerConfig describes one periodic compare channel and the duration
// between ready signals.
type TimerConfig struct {
	FrequencyHz uint32 `json:"frequency_hz"` // Counter running frequency (ticks per second)
	BitWidth    uint8  `json:"bit_width"`    // Counter width: 8, 16, 24 or 32
	Channel     uint8  `json:"channel"`      // Compare channel used for the match event
	TargetUS    uint32 `json:"target_us"`    // Duration between ready signals
	CompareUS   uint32 `json:"compare_us"`   // Compare interval, 0 means TargetUS
}

// TimerFromUS converts microseconds to timer ticks at freqHz
func TimerFromUS(us uint32, freqHz uint32) uint64 {
	return uint64(us) * uint64(freqHz) / 1000000
}

// TimerToUS converts timer ticks at freqHz to microseconds
func TimerToUS(ticks uint64, freqHz uint32) uint64 {
	if freqHz == 0 {
		return 0
	}
	return ticks * 1000000 / uint64(freqHz)
}

// CounterMax returns the largest value a counter of the given width holds
func CounterMax(bitWidth uint8) uint64 {
	return uint64(1)<<bitWidth - 1
}

// ValidBitWidth reports whether the HAL supports a counter of this width
func ValidBitWidth(bitWidth uint8) bool {
	switch bitWidth {
	case 8, 16, 24, 32:
		return true
	}
	return false
}

// TimerIsBefore reports whether time1 is before time2 on a wrapping
// 32-bit counter
func TimerIsBefore(time1, time2 uint32) bool {
	return int32(time1-time2) < 0
}

// NextDeadline advances a periodic deadline on a free-running 32-bit counter
// that matches on equality only. When prev+period is no longer ahead of now
// the deadline restarts from now, skipping the missed periods.
func NextDeadline(prev, period, now uint32) uint32 {
	next := prev + period
	if !TimerIsBefore(now, next) {
		next = now + period
	}
	return next
}

// CompareInterval returns the compare interval in microseconds
func (c TimerConfig) CompareInterval() uint32 {
	if c.CompareUS == 0 {
		return c.TargetUS
	}
	return c.CompareUS
}

// TargetTicks returns the target duration in ticks
func (c TimerConfig) TargetTicks() uint64 {
	return TimerFromUS(c.TargetUS, c.FrequencyHz)
}

// CompareTicks returns the compare interval in ticks
func (c TimerConfig) CompareTicks() uint64 {
	return TimerFromUS(c.CompareInterval(), c.FrequencyHz)
}

// EventsPerSignal returns how many compare events make up one target duration.
// Only meaningful on a validated config.
func (c TimerConfig) EventsPerSignal() uint32 {
	compare := c.CompareTicks()
	if compare == 0 {
		return 0
	}
	return uint32(c.TargetTicks() / compare)
}

// Validate checks the config against the counter it will be programmed into.
// Errors wrap ErrConfig.
func (c TimerConfig) Validate() error {
	if c.FrequencyHz == 0 {
		return fmt.Errorf("%w: frequency must be non-zero", ErrConfig)
	}
	if !ValidBitWidth(c.BitWidth) {
		return fmt.Errorf("%w: unsupported bit width %d", ErrConfig, c.BitWidth)
	}
	if c.Channel >= MaxCompareChannels {
		return fmt.Errorf("%w: compare channel %d out of range", ErrConfig, c.Channel)
	}
	if c.TargetUS == 0 {
		return fmt.Errorf("%w: target duration must be non-zero", ErrConfig)
	}

	target := c.TargetTicks()
	compare := c.CompareTicks()
	if compare == 0 {
		return fmt.Errorf("%w: compare interval %dus is shorter than one tick at %dHz",
			ErrConfig, c.CompareInterval(), c.FrequencyHz)
	}
	if compare > CounterMax(c.BitWidth) {
		return fmt.Errorf("%w: %d ticks does not fit a %d-bit counter",
			ErrConfig, compare, c.BitWidth)
	}
	if target%compare != 0 {
		return fmt.Errorf("%w: target %d ticks is not a multiple of compare interval %d ticks",
			ErrConfig, target, compare)
	}
	if target/compare > uint64(^uint32(0)) {
		return fmt.Errorf("%w: %d compare events per signal overflows the accumulator",
			ErrConfig, target/compare)
	}
	return nil
}
