package main

import (
	"flag"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/cadmere/chip8/web"
)

func main() {
	port := flag.Int("port", 9999, "port of the server")
	debug := flag.Bool("debug", false, "print debug logging")
	freq := flag.Uint("freq", 500, "CPU frequency in Hz")
	timer := flag.Uint("timer", 60, "countdown timer frequency in Hz")
	steps := flag.Uint("steps", 0, "fixed instructions per frame, overrides -freq")

	flag.Parse()

	logger := createLogger(*debug)

	server := web.NewServer(logger, func(config *web.Config) {
		config.CpuHz = *freq
		config.TimerHz = *timer
		config.StepsPerFrame = *steps
	})

	if flag.NArg() > 0 {
		program, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			logger.Fatal("Error reading program", log.String("path", flag.Arg(0)), log.Err(err))
		}
		if err := server.LoadProgram(program); err != nil {
			logger.Fatal("Error loading program", log.Err(err))
		}
	}

	if err := server.Listen(*port); err != nil {
		logger.Fatal("Server stopped", log.Err(err))
	}
}

func createLogger(debug bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	}
	return log.NewWithConfig(cfg)
}
