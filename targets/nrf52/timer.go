//go:build nrf52 || nrf52833 || nrf52840

package main

import (
	"device/nrf"
	"errors"
	"runtime/interrupt"

	"ticksignal/core"
)

// TIMER peripheral constants
const (
	timerBaseHz      = 16000000 // PCLK1M/PCLK16M source, PRESCALER divides by 2^n
	timerMaxPrescale = 9
	timerModeTimer   = 0
	intenComparePos  = 16 // INTENSET.COMPARE[n] is bit 16+n, SHORTS.COMPARE[n]_CLEAR is bit n
)

var (
	errFrequency = errors.New("frequency is not 16MHz divided by a power of two")
	errBitWidth  = errors.New("unsupported TIMER bit width")
	errEnabled   = errors.New("timer is enabled")
)

// nrfTimer drives TIMER0 through its compare channels
type nrfTimer struct {
	timer   *nrf.TIMER_Type
	intr    interrupt.Interrupt
	handler core.EventHandler
	freqHz  uint32
	enabled bool
}

var timer0 = &nrfTimer{timer: nrf.TIMER0}

// newNRFTimer registers the TIMER0 interrupt and returns the peripheral
func newNRFTimer() *nrfTimer {
	timer0.intr = interrupt.New(nrf.IRQ_TIMER0, timer0IRQ)
	return timer0
}

// prescalerFor returns the PRESCALER value producing freqHz
func prescalerFor(freqHz uint32) (uint32, bool) {
	for p := uint32(0); p <= timerMaxPrescale; p++ {
		if timerBaseHz>>p == freqHz {
			return p, true
		}
	}
	return 0, false
}

// bitModeFor returns the BITMODE value for a counter width
func bitModeFor(bitWidth uint8) (uint32, bool) {
	switch bitWidth {
	case 16:
		return 0, true
	case 8:
		return 1, true
	case 24:
		return 2, true
	case 32:
		return 3, true
	}
	return 0, false
}

// Configure puts TIMER0 in timer mode at freqHz with a bitWidth counter
func (t *nrfTimer) Configure(freqHz uint32, bitWidth uint8, handler core.EventHandler) error {
	if t.enabled {
		return errEnabled
	}
	prescaler, ok := prescalerFor(freqHz)
	if !ok {
		return errFrequency
	}
	mode, ok := bitModeFor(bitWidth)
	if !ok {
		return errBitWidth
	}

	t.timer.TASKS_STOP.Set(1)
	t.timer.TASKS_CLEAR.Set(1)
	t.timer.MODE.Set(timerModeTimer)
	t.timer.BITMODE.Set(mode)
	t.timer.PRESCALER.Set(prescaler)
	t.timer.SHORTS.Set(0)
	t.timer.INTENCLR.Set(0xFFFFFFFF)

	t.handler = handler
	t.freqHz = freqHz

	t.intr.SetPriority(0xC0)
	t.intr.Enable()
	return nil
}

// SetCompare writes CC[channel], optionally with the COMPARE_CLEAR short,
// and enables its interrupt
func (t *nrfTimer) SetCompare(channel uint8, ticks uint32, autoClear bool) {
	if channel >= core.MaxCompareChannels {
		return
	}

	t.timer.CC[channel].Set(ticks)
	t.timer.EVENTS_COMPARE[channel].Set(0)
	if autoClear {
		t.timer.SHORTS.SetBits(1 << channel)
	} else {
		t.timer.SHORTS.ClearBits(1 << channel)
	}
	t.timer.INTENSET.Set(1 << (intenComparePos + uint32(channel)))
}

// Enable starts the counter
func (t *nrfTimer) Enable() {
	t.enabled = true
	t.timer.TASKS_START.Set(1)
}

// Disable stops and clears the counter
func (t *nrfTimer) Disable() {
	t.timer.TASKS_STOP.Set(1)
	t.timer.TASKS_CLEAR.Set(1)
	t.enabled = false
}

// TicksFromUS converts microseconds to ticks at the configured frequency
func (t *nrfTimer) TicksFromUS(us uint32) uint64 {
	return core.TimerFromUS(us, t.freqHz)
}

func timer0IRQ(interrupt.Interrupt) {
	timer0.handleIRQ()
}

// handleIRQ clears every pending compare event and forwards the ones that
// have their interrupt enabled
func (t *nrfTimer) handleIRQ() {
	inten := t.timer.INTENSET.Get()
	for ch := uint8(0); ch < core.MaxCompareChannels; ch++ {
		if t.timer.EVENTS_COMPARE[ch].Get() == 0 {
			continue
		}
		t.timer.EVENTS_COMPARE[ch].Set(0)

		if inten&(1<<(intenComparePos+uint32(ch))) != 0 {
			t.handler.OnEvent(core.CompareEvent(ch))
		}
	}
}
