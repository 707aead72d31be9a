package main

import (
	"flag"

	"github.com/retroenv/retrogolib/log"

	"github.com/cadmere/chip8/gui"
)

func main() {
	autostart := flag.Bool("start", false, "start the console automatically if a program is loaded")
	debug := flag.Bool("debug", false, "print debug logging")
	freq := flag.Uint("freq", 500, "CPU frequency in Hz, in the range [5, 700]")
	timer := flag.Uint("timer", 60, "countdown timer frequency in Hz")
	steps := flag.Uint("steps", 0, "fixed instructions per frame, overrides -freq")
	scale := flag.Int("scale", 15, "screen pixels per emulator pixel")

	flag.Parse()

	logger := createLogger(*debug)

	app := gui.NewApp(logger, func(config *gui.Config) {
		config.CpuHz = max(*freq, 5)
		config.TimerHz = *timer
		config.StepsPerFrame = *steps
		config.PixelSize = int32(*scale)
	})

	if flag.NArg() > 0 {
		app.Load(flag.Arg(0))
	}

	app.Run(*autostart)
}

func createLogger(debug bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	}
	return log.NewWithConfig(cfg)
}
