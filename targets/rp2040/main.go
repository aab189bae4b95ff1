//go:build rp2040

package main

import (
	"machine"
	"time"

	"turtlebot/config"
	"turtlebot/core"
	"turtlebot/robot"
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitUSB()

	// Engine debug output shares the command link, so it stays off unless
	// a build flips it on
	core.SetDebugWriter(func(s string) { writeLine("# " + s) })

	cfg := config.DefaultConfig()
	sched := core.NewScheduler()
	sched.Dispatch(GetHardwareTime())

	ledPin := machine.LED
	if cfg.LEDPin != "" {
		if pin, err := parsePin(cfg.LEDPin); err == nil {
			ledPin = pin
		}
	}
	led := newLEDIndicator(ledPin)
	opts := []robot.Option{robot.WithIndicator(led)}
	if pen, err := newServoPen(cfg.Pen); err == nil {
		opts = append(opts, robot.WithPen(pen))
	}

	turtle, err := robot.Build(cfg, hardware{}, sched, opts...)
	if err != nil {
		blinkForever(ledPin)
	}
	penErr := turtle.PenUp()

	// Flash LED 3 times to indicate the turtle is ready
	for i := 0; i < 3; i++ {
		led.Show(robot.StatusBusy)
		time.Sleep(200 * time.Millisecond)
		led.Show(robot.StatusIdle)
		time.Sleep(200 * time.Millisecond)
	}
	if penErr != nil {
		led.Show(robot.StatusError)
	}

	interp := robot.NewInterpreter(turtle)
	var lines lineReader
	for {
		sched.Dispatch(GetHardwareTime())
		turtle.Update()
		led.Update(GetHardwareUptime())

		line, ready, err := lines.Poll()
		switch {
		case err != nil:
			writeLine("error: " + err.Error())
		case ready:
			reply := interp.Reply(line)
			if reply == "" {
				reply = robot.ReplyOK
			}
			writeLine(reply)
		}

		// Yield to the USB stack
		time.Sleep(10 * time.Microsecond)
	}
}
