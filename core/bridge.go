package core

// TimerEvent identifies the cause of a timer interrupt
type TimerEvent uint8

// Timer event types delivered by a TimerPeripheral
const (
	EventCompare0 TimerEvent = iota
	EventCompare1
	EventCompare2
	EventCompare3
	EventOverflow
)

// CompareEvent returns the event raised by a compare channel
func CompareEvent(channel uint8) TimerEvent {
	return EventCompare0 + TimerEvent(channel)
}

func (e TimerEvent) String() string {
	switch e {
	case EventCompare0:
		return "COMPARE0"
	case EventCompare1:
		return "COMPARE1"
	case EventCompare2:
		return "COMPARE2"
	case EventCompare3:
		return "COMPARE3"
	case EventOverflow:
		return "OVERFLOW"
	default:
		return "UNKNOWN"
	}
}

// EventHandler is invoked from interrupt context on every timer event.
// Implementations must not block, allocate or do I/O.
type EventHandler interface {
	OnEvent(evt TimerEvent)
}

// EventHandlerFunc adapts a plain function to EventHandler
type EventHandlerFunc func(evt TimerEvent)

// OnEvent calls f(evt)
func (f EventHandlerFunc) OnEvent(evt TimerEvent) {
	f(evt)
}

// EventBridge counts compare-match events and raises a ReadySignal every
// target events. It is the only writer of the signal.
type EventBridge struct {
	match  TimerEvent   // Event type that counts, everything else is ignored
	target uint32       // Events per signal
	count  uint32       // Events since the last signal, owned by interrupt context
	signal *ReadySignal // Shared with the main loop
}

// NewEventBridge creates a bridge that raises signal every target match events
func NewEventBridge(match TimerEvent, target uint32, signal *ReadySignal) *EventBridge {
	if target == 0 {
		panic("event bridge target must be non-zero")
	}
	return &EventBridge{
		match:  match,
		target: target,
		signal: signal,
	}
}

// OnEvent is the interrupt handler
func (b *EventBridge) OnEvent(evt TimerEvent) {
	if evt != b.match {
		return
	}

	b.count++
	if b.count == b.target {
		b.count = 0
		b.signal.Raise()
	}
}

// Count returns the number of match events since the last signal
func (b *EventBridge) Count() uint32 {
	return b.count
}

// Target returns the number of match events per signal
func (b *EventBridge) Target() uint32 {
	return b.target
}
