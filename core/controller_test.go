package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func demoConfig() TimerConfig {
	return TimerConfig{
		FrequencyHz: TimerFreq1MHz,
		BitWidth:    32,
		Channel:     0,
		TargetUS:    509000,
	}
}

func TestTimerControllerStartProgramsCompareChannel(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	periph := NewMockTimerPeripheral(mockCtrl)
	handler := EventHandlerFunc(func(TimerEvent) {})

	gomock.InOrder(
		periph.EXPECT().Configure(uint32(TimerFreq1MHz), uint8(32), gomock.Any()).Return(nil),
		periph.EXPECT().TicksFromUS(uint32(509000)).Return(uint64(509000)),
		periph.EXPECT().SetCompare(uint8(0), uint32(509000), true),
		periph.EXPECT().Enable(),
	)

	c := NewTimerController(periph)
	require.NoError(t, c.Start(demoConfig(), handler))
	assert.True(t, c.Running())
	assert.Equal(t, demoConfig(), c.Config())
}

func TestTimerControllerStartUsesCompareInterval(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	periph := NewMockTimerPeripheral(mockCtrl)

	cfg := demoConfig()
	cfg.Channel = 2
	cfg.CompareUS = 1

	periph.EXPECT().Configure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	periph.EXPECT().TicksFromUS(uint32(1)).Return(uint64(1))
	periph.EXPECT().SetCompare(uint8(2), uint32(1), true)
	periph.EXPECT().Enable()

	c := NewTimerController(periph)
	require.NoError(t, c.Start(cfg, EventHandlerFunc(func(TimerEvent) {})))
}

func TestTimerControllerPeripheralInitFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	periph := NewMockTimerPeripheral(mockCtrl)
	hwErr := errors.New("invalid state")

	periph.EXPECT().Configure(gomock.Any(), gomock.Any(), gomock.Any()).Return(hwErr)

	c := NewTimerController(periph)
	err := c.Start(demoConfig(), EventHandlerFunc(func(TimerEvent) {}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPeripheralInit)
	assert.ErrorIs(t, err, hwErr)
	assert.False(t, c.Running())
}

func TestTimerControllerRejectsInvalidConfig(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	periph := NewMockTimerPeripheral(mockCtrl)

	// 509000 ticks cannot be held by a 16-bit counter, so the peripheral
	// is never touched.
	cfg := demoConfig()
	cfg.BitWidth = 16

	c := NewTimerController(periph)
	err := c.Start(cfg, EventHandlerFunc(func(TimerEvent) {}))
	assert.ErrorIs(t, err, ErrConfig)
	assert.False(t, c.Running())
}

func TestTimerControllerRejectsPeripheralTicksOutOfRange(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	periph := NewMockTimerPeripheral(mockCtrl)

	periph.EXPECT().Configure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	periph.EXPECT().TicksFromUS(gomock.Any()).Return(uint64(1) << 33)

	c := NewTimerController(periph)
	err := c.Start(demoConfig(), EventHandlerFunc(func(TimerEvent) {}))
	assert.ErrorIs(t, err, ErrConfig)
	assert.False(t, c.Running())
}

func TestTimerControllerAlreadyRunning(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	periph := NewMockTimerPeripheral(mockCtrl)

	periph.EXPECT().Configure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
	periph.EXPECT().TicksFromUS(gomock.Any()).Return(uint64(509000)).Times(1)
	periph.EXPECT().SetCompare(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	periph.EXPECT().Enable().Times(1)

	c := NewTimerController(periph)
	handler := EventHandlerFunc(func(TimerEvent) {})
	require.NoError(t, c.Start(demoConfig(), handler))
	assert.ErrorIs(t, c.Start(demoConfig(), handler), ErrAlreadyRunning)
}

func TestTimerControllerStopIsIdempotent(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	periph := NewMockTimerPeripheral(mockCtrl)

	periph.EXPECT().Configure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	periph.EXPECT().TicksFromUS(gomock.Any()).Return(uint64(509000))
	periph.EXPECT().SetCompare(gomock.Any(), gomock.Any(), gomock.Any())
	periph.EXPECT().Enable()
	periph.EXPECT().Disable().Times(1)

	c := NewTimerController(periph)
	require.NoError(t, c.Start(demoConfig(), EventHandlerFunc(func(TimerEvent) {})))

	c.Stop()
	c.Stop()
	assert.False(t, c.Running())
}

func TestTimerControllerStopBeforeStart(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	periph := NewMockTimerPeripheral(mockCtrl)

	// No Disable expected
	c := NewTimerController(periph)
	c.Stop()
	assert.False(t, c.Running())
}

func TestTimerControllerStopSilencesHandler(t *testing.T) {
	sim := NewSimTimer(TimerFreq16MHz)
	var sig ReadySignal
	bridge := NewEventBridge(EventCompare0, 1, &sig)

	c := NewTimerController(sim)
	require.NoError(t, c.Start(demoConfig(), bridge))

	c.Stop()
	c.Stop()
	sim.Advance(10 * 509000)

	assert.False(t, sim.Enabled())
	assert.False(t, sig.Pending())
	assert.Zero(t, bridge.Count())
}

func TestTimerControllerMustStartHalts(t *testing.T) {
	captureLog(t)

	sim := NewSimTimer(TimerFreq16MHz)
	sim.ConfigureErr = errors.New("no clock")
	c := NewTimerController(sim)

	var halted error
	prev := haltHandler
	SetHaltHandler(func(err error) { halted = err })
	defer SetHaltHandler(prev)

	c.MustStart(demoConfig(), EventHandlerFunc(func(TimerEvent) {}))
	require.Error(t, halted)
	assert.ErrorIs(t, halted, ErrPeripheralInit)
}

func TestDefaultHaltPanics(t *testing.T) {
	captureLog(t)
	assert.Panics(t, func() {
		Halt(ErrConfig)
	})
}

func TestMustTimer(t *testing.T) {
	prev := timerPeripheral
	defer SetTimerPeripheral(prev)

	SetTimerPeripheral(nil)
	assert.Panics(t, func() { MustTimer() })

	sim := NewSimTimer(TimerFreq16MHz)
	SetTimerPeripheral(sim)
	assert.Same(t, sim, MustTimer())
}
