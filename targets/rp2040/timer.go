//go:build rp2040

package main

import (
	"device/rp"
	"errors"
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"

	"ticksignal/core"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerALARM2   = timerBase + 0x18 // Alarm 2 target, arms on write
	timerARMED    = timerBase + 0x20 // Armed alarms, write 1 to disarm
	timerTIMERAWL = timerBase + 0x28 // Raw timer low word, no latching
	timerINTR     = timerBase + 0x34 // Raw interrupts, write 1 to clear
	timerINTE     = timerBase + 0x38 // Interrupt enable
)

// Alarm 0 belongs to the TinyGo runtime's sleep timer
const alarmBit = 1 << 2

var (
	timerAlarm = (*volatile.Register32)(unsafe.Pointer(uintptr(timerALARM2)))
	timerArmed = (*volatile.Register32)(unsafe.Pointer(uintptr(timerARMED)))
	timerRawL  = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
	timerIntr  = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTR)))
	timerInte  = (*volatile.Register32)(unsafe.Pointer(uintptr(timerINTE)))
)

var (
	errFrequency = errors.New("rp2040 timer runs at 1MHz only")
	errBitWidth  = errors.New("rp2040 alarms compare 32 bits only")
)

// rpAlarm drives one compare channel from a TIMER alarm. The timer is a
// free-running 1MHz counter that cannot be cleared, so auto-clear is done by
// re-arming the alarm one interval later from the interrupt.
type rpAlarm struct {
	handler   core.EventHandler
	intr      interrupt.Interrupt
	channel   uint8
	ticks     uint32
	autoClear bool
	enabled   bool
	next      uint32 // Absolute time of the next match
}

var alarm = &rpAlarm{}

// newRPAlarm registers the alarm interrupt and returns the peripheral
func newRPAlarm() *rpAlarm {
	alarm.intr = interrupt.New(rp.IRQ_TIMER_IRQ_2, alarmIRQ)
	return alarm
}

// Configure checks the requested counter against the fixed hardware timer
func (a *rpAlarm) Configure(freqHz uint32, bitWidth uint8, handler core.EventHandler) error {
	if a.enabled {
		return errors.New("alarm is enabled")
	}
	if freqHz != core.TimerFreq1MHz {
		return errFrequency
	}
	if bitWidth != 32 {
		return errBitWidth
	}

	a.handler = handler
	timerInte.ClearBits(alarmBit)
	timerArmed.Set(alarmBit)
	timerIntr.Set(alarmBit)
	a.intr.SetPriority(0xC0)
	a.intr.Enable()
	return nil
}

// SetCompare programs the alarm interval. The single alarm serves whichever
// channel was requested.
func (a *rpAlarm) SetCompare(channel uint8, ticks uint32, autoClear bool) {
	a.channel = channel
	a.ticks = ticks
	a.autoClear = autoClear
	if a.enabled {
		now := timerRawL.Get()
		a.arm(now + ticks)
	}
}

// Enable arms the alarm one interval from now
func (a *rpAlarm) Enable() {
	if a.enabled {
		return
	}
	a.enabled = true
	timerIntr.Set(alarmBit)
	timerInte.SetBits(alarmBit)
	now := timerRawL.Get()
	a.arm(now + a.ticks)
}

// arm writes next to the alarm. The alarm matches on equality only, so a
// deadline the counter has already passed is moved to one interval from now.
func (a *rpAlarm) arm(next uint32) {
	for {
		a.next = next
		timerAlarm.Set(next)

		now := timerRawL.Get()
		if core.TimerIsBefore(now, next) || timerArmed.Get()&alarmBit == 0 {
			return
		}
		next = core.NextDeadline(next, a.ticks, now)
	}
}

// Disable disarms the alarm
func (a *rpAlarm) Disable() {
	a.enabled = false
	timerInte.ClearBits(alarmBit)
	timerArmed.Set(alarmBit)
	timerIntr.Set(alarmBit)
}

// TicksFromUS converts microseconds to ticks of the 1MHz timer
func (a *rpAlarm) TicksFromUS(us uint32) uint64 {
	return core.TimerFromUS(us, core.TimerFreq1MHz)
}

func alarmIRQ(interrupt.Interrupt) {
	alarm.handleIRQ()
}

// handleIRQ acknowledges the alarm, re-arms it and forwards the event
func (a *rpAlarm) handleIRQ() {
	timerIntr.Set(alarmBit)
	if !a.enabled {
		return
	}

	// Without auto-clear the same value matches again after the counter wraps
	if a.autoClear {
		a.arm(core.NextDeadline(a.next, a.ticks, timerRawL.Get()))
	} else {
		timerAlarm.Set(a.next)
	}

	a.handler.OnEvent(core.CompareEvent(a.channel))
}
