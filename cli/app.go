package cli

import (
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/cadmere/chip8"
)

const fps = 60

// Config controls the emulation cadence.
type Config struct {
	// CpuHz is the CPU frequency; CpuHz/60 instructions run per frame.
	CpuHz uint
	// TimerHz is the countdown timer frequency.
	TimerHz uint
	// StepsPerFrame, when non-zero, fixes the instructions per frame and
	// ignores CpuHz.
	StepsPerFrame uint
}

type ConfigCb func(config *Config)

// App drives the emulator in a terminal at a fixed frame rate.
type App struct {
	emu    *chip8.Emulator
	logger *log.Logger

	display  *TerminalDisplay
	keyboard *TerminalKeyboard

	// releases carries timed key releases back onto the frame loop so that
	// only one goroutine ever touches the emulator.
	releases chan byte

	config Config
}

func NewApp(logger *log.Logger, configs ...ConfigCb) *App {
	config := Config{
		CpuHz:         500,
		TimerHz:       60,
		StepsPerFrame: 0,
	}
	for _, cb := range configs {
		cb(&config)
	}

	return &App{
		emu:      chip8.New(),
		logger:   logger,
		display:  NewTerminalDisplay(),
		keyboard: NewTerminalKeyboard(),
		releases: make(chan byte, chip8.NumKeys),
		config:   config,
	}
}

// Load resets the machine and loads a ROM image.
func (app *App) Load(program []byte) error {
	app.emu.Reset()
	if err := app.emu.Load(program); err != nil {
		return fmt.Errorf("load program: %w", err)
	}
	return nil
}

// Run executes the loaded program until a fault or a quit key (ESC, Ctrl-C).
func (app *App) Run() error {
	if err := app.keyboard.Start(); err != nil {
		return fmt.Errorf("start keyboard: %w", err)
	}
	defer app.keyboard.Stop()

	if err := app.display.Clear(); err != nil {
		return err
	}

	steps := app.config.StepsPerFrame
	if steps == 0 {
		steps = app.config.CpuHz / fps
		if steps == 0 {
			steps = 1
		}
	}
	timerTicks := app.config.TimerHz / fps
	if timerTicks == 0 {
		timerTicks = 1
	}

	ticker := time.NewTicker(time.Second / fps)
	defer ticker.Stop()

	for {
		select {
		case <-app.keyboard.Quit:
			app.logger.Info("Quit requested")
			return nil

		case key := <-app.keyboard.Keys:
			app.pressKey(key)

		case key := <-app.releases:
			app.emu.ReleaseKey(key)

		case <-ticker.C:
			wasBeeping := app.emu.SoundTimer() > 0

			for i := uint(0); i < steps; i++ {
				if err := app.emu.Cycle(); err != nil {
					app.logger.Error("Emulation fault", log.Err(err))
					return err
				}
			}
			for i := uint(0); i < timerTicks; i++ {
				app.emu.TickTimers()
			}

			if !wasBeeping && app.emu.SoundTimer() > 0 {
				app.display.Beep()
			}

			if err := app.display.Render(app.emu.DisplayBuffer()); err != nil {
				return err
			}
		}
	}
}

// pressKey holds the key down and schedules its release. The timer goroutine
// only sends on the channel; the release itself is applied by the Run loop.
func (app *App) pressKey(key byte) {
	if err := app.emu.PressKey(key); err != nil {
		return
	}
	time.AfterFunc(keyHold, func() {
		select {
		case app.releases <- key:
		default:
		}
	})
}
