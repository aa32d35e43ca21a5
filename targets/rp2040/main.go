//go:build rp2040

package main

import (
	"machine"
	"time"

	"ticksignal/config"
	"ticksignal/core"
)

func main() {
	// Console on the default serial (USB CDC on the Pico)
	core.SetLogWriter(func(s string) {
		machine.Serial.Write([]byte(s))
		machine.Serial.Write([]byte("\r\n"))
	})
	core.InitAsyncLog(16)

	// Stay halted with the error on the console, the log worker keeps running
	core.SetHaltHandler(func(err error) {
		for {
			time.Sleep(time.Second)
		}
	})

	core.SetTimerPeripheral(newRPAlarm())

	var ready core.ReadySignal
	loop := core.NewMainLoop(core.NewTimerController(core.MustTimer()), &ready, config.DefaultTimerConfig())
	loop.Run()
}
