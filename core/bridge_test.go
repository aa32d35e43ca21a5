package core

import "testing"

// captureLog redirects LogLine output into a slice for the duration of a test
func captureLog(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	prev := logWriter
	SetLogWriter(func(s string) {
		lines = append(lines, s)
	})
	t.Cleanup(func() {
		SetLogWriter(prev)
	})
	return &lines
}

func TestEventBridgeSignalsOnTarget(t *testing.T) {
	var sig ReadySignal
	bridge := NewEventBridge(EventCompare0, 3, &sig)

	bridge.OnEvent(EventCompare0)
	bridge.OnEvent(EventCompare0)
	if sig.Pending() {
		t.Fatal("Signal raised before target reached")
	}
	if bridge.Count() != 2 {
		t.Errorf("Expected count 2, got %d", bridge.Count())
	}

	bridge.OnEvent(EventCompare0)
	if !sig.Pending() {
		t.Fatal("Expected signal after 3 events")
	}
	if bridge.Count() != 0 {
		t.Errorf("Expected count reset to 0, got %d", bridge.Count())
	}
}

func TestEventBridgeTargetOfOne(t *testing.T) {
	var sig ReadySignal
	bridge := NewEventBridge(EventCompare0, 1, &sig)

	bridge.OnEvent(EventCompare0)
	if !sig.Pending() {
		t.Fatal("Expected signal on first event")
	}
	if bridge.Count() != 0 {
		t.Errorf("Expected count 0, got %d", bridge.Count())
	}
}

func TestEventBridgeIgnoresOtherEvents(t *testing.T) {
	var sig ReadySignal
	bridge := NewEventBridge(EventCompare0, 2, &sig)

	others := []TimerEvent{EventCompare1, EventCompare2, EventCompare3, EventOverflow, TimerEvent(42)}

	// From an empty accumulator
	for _, evt := range others {
		bridge.OnEvent(evt)
	}
	if bridge.Count() != 0 || sig.Pending() {
		t.Errorf("Foreign events changed state: count=%d pending=%v", bridge.Count(), sig.Pending())
	}

	// One event short of the target
	bridge.OnEvent(EventCompare0)
	for _, evt := range others {
		bridge.OnEvent(evt)
	}
	if bridge.Count() != 1 || sig.Pending() {
		t.Errorf("Foreign events changed state: count=%d pending=%v", bridge.Count(), sig.Pending())
	}
}

func TestEventBridgeMatchesConfiguredChannel(t *testing.T) {
	var sig ReadySignal
	bridge := NewEventBridge(CompareEvent(2), 1, &sig)

	bridge.OnEvent(EventCompare0)
	if sig.Pending() {
		t.Error("COMPARE0 should not count for channel 2")
	}
	bridge.OnEvent(EventCompare2)
	if !sig.Pending() {
		t.Error("Expected COMPARE2 to raise the signal")
	}
}

func TestEventBridgeIsCyclic(t *testing.T) {
	var sig ReadySignal
	bridge := NewEventBridge(EventCompare0, 4, &sig)

	for cycle := 0; cycle < 3; cycle++ {
		for i := 0; i < 3; i++ {
			bridge.OnEvent(EventCompare0)
		}
		if sig.Pending() {
			t.Fatalf("Cycle %d: signal raised early", cycle)
		}
		bridge.OnEvent(EventCompare0)
		if !sig.Take() {
			t.Fatalf("Cycle %d: expected signal", cycle)
		}
	}
}

func TestEventBridgeZeroTargetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for zero target")
		}
	}()
	NewEventBridge(EventCompare0, 0, &ReadySignal{})
}

func TestTimerEventString(t *testing.T) {
	testCases := []struct {
		evt  TimerEvent
		name string
	}{
		{EventCompare0, "COMPARE0"},
		{EventCompare3, "COMPARE3"},
		{EventOverflow, "OVERFLOW"},
		{TimerEvent(99), "UNKNOWN"},
	}

	for _, tc := range testCases {
		if got := tc.evt.String(); got != tc.name {
			t.Errorf("Expected %s, got %s", tc.name, got)
		}
	}
}
