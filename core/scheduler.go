package core

// Timer represents a scheduled compare event
type Timer struct {
	WakeTime uint64
	Handler  func(*Timer) uint8
	Next     *Timer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// timerQueue is a list of timers sorted by WakeTime.
// Callers provide their own locking.
type timerQueue struct {
	head *Timer
}

// insert adds a timer in sorted order by WakeTime. Timers with equal
// WakeTime keep insertion order.
func (q *timerQueue) insert(t *Timer) {
	if q.head == nil || t.WakeTime < q.head.WakeTime {
		t.Next = q.head
		q.head = t
		return
	}

	current := q.head
	for current.Next != nil && current.Next.WakeTime <= t.WakeTime {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// remove unlinks t if it is queued
func (q *timerQueue) remove(t *Timer) {
	if q.head == t {
		q.head = t.Next
		t.Next = nil
		return
	}
	for current := q.head; current != nil; current = current.Next {
		if current.Next == t {
			current.Next = t.Next
			t.Next = nil
			return
		}
	}
}

// clear drops every queued timer
func (q *timerQueue) clear() {
	for q.head != nil {
		t := q.head
		q.head = t.Next
		t.Next = nil
	}
}

// peek returns the earliest timer without removing it
func (q *timerQueue) peek() *Timer {
	return q.head
}

// dispatch runs every timer with WakeTime <= now. A handler returning
// SF_RESCHEDULE must have moved its WakeTime past now.
func (q *timerQueue) dispatch(now uint64) {
	for q.head != nil && q.head.WakeTime <= now {
		timer := q.head
		q.head = timer.Next
		timer.Next = nil // Clear Next pointer to avoid circular references

		if timer.Handler(timer) == SF_RESCHEDULE {
			q.insert(timer)
		}
	}
}
