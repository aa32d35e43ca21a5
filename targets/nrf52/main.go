//go:build nrf52 || nrf52833 || nrf52840

package main

import (
	"machine"
	"time"

	"ticksignal/config"
	"ticksignal/core"
)

func main() {
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

	core.SetTimerPeripheral(newNRFTimer())

	var ready core.ReadySignal
	loop := core.NewMainLoop(core.NewTimerController(core.MustTimer()), &ready, config.DefaultTimerConfig())
	loop.Run()
}
