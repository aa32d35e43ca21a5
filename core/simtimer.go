package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

// SimTimer is a TimerPeripheral backed by a virtual tick counter. Compare
// channels are kept in a sorted timer queue and fire as time is advanced.
// Handler calls are serialized, the same way interrupts of one timer do not
// nest on hardware.
type SimTimer struct {
	mu  sync.Mutex // Guards everything below
	irq sync.Mutex // Held while the handler runs

	baseClockHz uint32
	freqHz      uint32
	bitWidth    uint8
	handler     EventHandler
	enabled     bool

	now      uint64 // Virtual time in ticks
	channels [MaxCompareChannels]simChannel
	queue    timerQueue
	pending  []TimerEvent // Events collected by one dispatch

	// ConfigureErr, when set, is returned by Configure
	ConfigureErr error
}

type simChannel struct {
	timer     Timer
	ticks     uint32
	autoClear bool
	armed     bool
}

// NewSimTimer creates a disabled simulated timer whose counter can run at
// any frequency up to baseClockHz.
func NewSimTimer(baseClockHz uint32) *SimTimer {
	s := &SimTimer{
		baseClockHz: baseClockHz,
		pending:     make([]TimerEvent, 0, MaxCompareChannels),
	}

	for i := range s.channels {
		ch := &s.channels[i]
		evt := CompareEvent(uint8(i))
		ch.timer.Handler = func(t *Timer) uint8 {
			s.pending = append(s.pending, evt)
			t.WakeTime += s.periodOf(ch)
			return SF_RESCHEDULE
		}
	}
	return s
}

// periodOf returns the match period of a channel. Without auto-clear the
// counter has to wrap before the same compare value matches again.
func (s *SimTimer) periodOf(ch *simChannel) uint64 {
	if ch.autoClear && ch.ticks != 0 {
		return uint64(ch.ticks)
	}
	return CounterMax(s.bitWidth) + 1
}

// Configure initializes the counter. Fails while the timer is enabled.
func (s *SimTimer) Configure(freqHz uint32, bitWidth uint8, handler EventHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ConfigureErr != nil {
		return s.ConfigureErr
	}
	if s.enabled {
		return errors.New("timer is enabled")
	}
	if freqHz == 0 || freqHz > s.baseClockHz {
		return fmt.Errorf("frequency %dHz not available from %dHz base clock", freqHz, s.baseClockHz)
	}
	if !ValidBitWidth(bitWidth) {
		return fmt.Errorf("unsupported bit width %d", bitWidth)
	}
	if handler == nil {
		return errors.New("event handler is nil")
	}

	s.freqHz = freqHz
	s.bitWidth = bitWidth
	s.handler = handler
	for i := range s.channels {
		s.channels[i].armed = false
	}
	return nil
}

// SetCompare programs a compare channel. Out of range channels are ignored.
func (s *SimTimer) SetCompare(channel uint8, ticks uint32, autoClear bool) {
	if channel >= MaxCompareChannels {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ch := &s.channels[channel]
	ch.ticks = ticks
	ch.autoClear = autoClear
	ch.armed = true
	if s.enabled {
		s.queue.remove(&ch.timer)
		s.arm(ch)
	}
}

// arm schedules the first match of ch counted from now
func (s *SimTimer) arm(ch *simChannel) {
	if ch.ticks == 0 {
		ch.timer.WakeTime = s.now + s.periodOf(ch)
	} else {
		ch.timer.WakeTime = s.now + uint64(ch.ticks)
	}
	s.queue.insert(&ch.timer)
}

// Enable starts the counter from zero
func (s *SimTimer) Enable() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enabled {
		return
	}
	s.enabled = true
	for i := range s.channels {
		if s.channels[i].armed {
			s.arm(&s.channels[i])
		}
	}
}

// Disable stops the counter and drops every pending match
func (s *SimTimer) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enabled = false
	s.queue.clear()
}

// TicksFromUS converts microseconds to ticks at the configured frequency
func (s *SimTimer) TicksFromUS(us uint32) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TimerFromUS(us, s.freqHz)
}

// Advance moves virtual time forward and delivers every compare event that
// falls due, in time order. Must not be called from the handler.
func (s *SimTimer) Advance(ticks uint64) {
	s.irq.Lock()
	defer s.irq.Unlock()

	s.mu.Lock()
	target := s.now + ticks
	for {
		next := s.queue.peek()
		if !s.enabled || next == nil || next.WakeTime > target {
			break
		}

		s.now = next.WakeTime
		s.pending = s.pending[:0]
		s.queue.dispatch(s.now)

		var events [MaxCompareChannels]TimerEvent
		n := copy(events[:], s.pending)
		handler := s.handler

		// The handler may call back into Disable or SetCompare
		s.mu.Unlock()
		for _, evt := range events[:n] {
			handler.OnEvent(evt)
		}
		s.mu.Lock()
	}
	if target > s.now {
		s.now = target
	}
	s.mu.Unlock()
}

// Fire delivers evt to the handler as if raised on the interrupt line.
// Returns false when the timer is disabled.
func (s *SimTimer) Fire(evt TimerEvent) bool {
	s.irq.Lock()
	defer s.irq.Unlock()

	s.mu.Lock()
	handler := s.handler
	enabled := s.enabled
	s.mu.Unlock()

	if !enabled || handler == nil {
		return false
	}
	handler.OnEvent(evt)
	return true
}

// RunRealtime advances the timer from the wall clock every resolution,
// scaled by speed, until ctx is done.
func (s *SimTimer) RunRealtime(ctx context.Context, resolution time.Duration, speed float64) error {
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()

	last := time.Now()
	var carry float64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			carry += now.Sub(last).Seconds() * speed * float64(s.Frequency())
			last = now

			whole := math.Floor(carry)
			carry -= whole
			if whole > 0 {
				s.Advance(uint64(whole))
			}
		}
	}
}

// Now returns the virtual time in ticks
func (s *SimTimer) Now() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Frequency returns the configured counter frequency
func (s *SimTimer) Frequency() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.freqHz
}

// Enabled reports whether the counter is running
func (s *SimTimer) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Compare returns the programmed state of a compare channel
func (s *SimTimer) Compare(channel uint8) (ticks uint32, autoClear bool, armed bool) {
	if channel >= MaxCompareChannels {
		return 0, false, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ch := s.channels[channel]
	return ch.ticks, ch.autoClear, ch.armed
}
