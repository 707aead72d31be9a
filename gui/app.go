// Package gui is a raylib desktop shell for the emulator core. It owns the
// window and event loop, drives the CPU and timers at their two cadences and
// blits the framebuffer; the core itself never touches the screen.
package gui

import (
	"fmt"
	"os"

	raygui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/retroenv/retrogolib/log"

	"github.com/cadmere/chip8"
)

const (
	ToolbarGap       = 5
	ToolbarBtnWidth  = 80
	ToolbarBtnHeight = 40
	ToolbarHeight    = 50
	ToolbarBtnOffset = ToolbarBtnWidth + ToolbarGap

	MessageBarGap    = 5
	MessageBarHeight = 30

	FPS = 60

	MinSpeed float32 = 5
	MaxSpeed float32 = 700
)

var (
	ScreenBgColor    = rl.Black
	ScreenPixelColor = rl.RayWhite
	BeepColor        = rl.Gold

	MessageBarBgColor    = rl.DarkGray
	MessageBarInfoColor  = rl.SkyBlue
	MessageBarErrorColor = rl.Red
)

// Config controls the emulation cadence and the window geometry.
type Config struct {
	// CpuHz is the CPU frequency; CpuHz/60 instructions run per frame.
	CpuHz uint
	// TimerHz is the countdown timer frequency.
	TimerHz uint
	// StepsPerFrame, when non-zero, fixes the instructions per frame and
	// ignores CpuHz.
	StepsPerFrame uint
	// PixelSize is the window scale: screen pixels per emulator pixel.
	PixelSize int32
}

type ConfigCb func(config *Config)

// App is the desktop console window.
type App struct {
	emu    *chip8.Emulator
	logger *log.Logger

	config  Config
	speed   float32
	running bool

	winW, winH int32

	startBtn, stopBtn, stepBtn, resetBtn bool

	loadedProgramPath string

	lastMessage      string
	lastMessageColor rl.Color
}

// NewApp creates the application around a fresh emulator instance.
func NewApp(logger *log.Logger, configs ...ConfigCb) *App {
	config := Config{
		CpuHz:         500,
		TimerHz:       60,
		StepsPerFrame: 0,
		PixelSize:     15,
	}
	for _, cb := range configs {
		cb(&config)
	}

	app := &App{
		emu:     chip8.New(),
		logger:  logger,
		config:  config,
		speed:   float32(config.CpuHz),
		running: false,
	}
	app.winW = chip8.DisplayWidth * config.PixelSize
	app.winH = chip8.DisplayHeight*config.PixelSize + ToolbarHeight + MessageBarHeight

	return app
}

// Load reads a ROM file into a reset machine.
func (app *App) Load(path string) {
	program, err := os.ReadFile(path)
	if err != nil {
		app.logger.Error("Error reading program", log.String("path", path), log.Err(err))
		app.showError(err.Error())
		return
	}

	app.emu.Reset()
	if err := app.emu.Load(program); err != nil {
		app.logger.Error("Error loading program", log.String("path", path), log.Err(err))
		app.showError(err.Error())
		return
	}

	app.loadedProgramPath = path
	app.logger.Info("Program loaded",
		log.String("path", path),
		log.Int("size", len(program)))
	app.showInfo(fmt.Sprintf("Program '%s' loaded", path))
}

// Run opens the window and blocks until it is closed.
func (app *App) Run(autostart bool) {
	rl.InitWindow(app.winW, app.winH, "chip8")
	defer rl.CloseWindow()

	app.running = autostart && app.hasProgramLoaded()

	rl.SetTargetFPS(FPS)
	for !rl.WindowShouldClose() {
		app.handleFileLoad()
		app.handleActions()
		app.handleKeyPresses()

		if app.running {
			app.stepFrame()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		app.drawMessageBar()
		app.drawScreen()
		app.drawToolbar()

		rl.EndDrawing()
	}
}

// stepFrame runs one frame worth of CPU cycles and timer ticks.
func (app *App) stepFrame() {
	steps := app.config.StepsPerFrame
	if steps == 0 {
		steps = uint(app.speed) / FPS
		if steps == 0 {
			steps = 1
		}
	}

	for i := uint(0); i < steps; i++ {
		if err := app.emu.Cycle(); err != nil {
			app.logger.Error("Emulation fault", log.Err(err))
			app.showError(err.Error())
			app.running = false
			return
		}
	}

	for i := uint(0); i < max(app.config.TimerHz/FPS, 1); i++ {
		app.emu.TickTimers()
	}
}

func (app *App) hasProgramLoaded() bool {
	return len(app.loadedProgramPath) > 0
}

func (app *App) handleFileLoad() {
	if rl.IsFileDropped() {
		files := rl.LoadDroppedFiles()
		defer rl.UnloadDroppedFiles()

		app.Load(files[0])
	}
}

func (app *App) handleActions() {
	if app.startBtn {
		if app.hasProgramLoaded() {
			app.running = true
			app.logger.Info("Starting the console")
		} else {
			app.showError("There is no program loaded")
		}
	}
	if app.stopBtn {
		app.running = false
		app.logger.Info("Stopping the console")
	}
	if app.resetBtn {
		app.running = false
		app.emu.Reset()
		if app.hasProgramLoaded() {
			app.Load(app.loadedProgramPath)
		}
		app.logger.Info("Resetting the console")
	}
	if app.stepBtn {
		if err := app.emu.Cycle(); err != nil {
			app.logger.Error("Emulation fault", log.Err(err))
			app.showError(err.Error())
		}
	}
}

func (app *App) handleKeyPresses() {
	for code, key := range keymap {
		if rl.IsKeyDown(code) {
			app.emu.PressKey(key)
		} else {
			app.emu.ReleaseKey(key)
		}
	}
}

func (app *App) drawScreen() {
	buffer := app.emu.DisplayBuffer()
	size := app.config.PixelSize

	for y := int32(0); y < chip8.DisplayHeight; y++ {
		for x := int32(0); x < chip8.DisplayWidth; x++ {
			color := ScreenBgColor
			if buffer[y][x] {
				color = ScreenPixelColor
			}
			rl.DrawRectangle(size*x, ToolbarHeight+1+size*y, size, size, color)
		}
	}
}

func (app *App) drawToolbar() {
	rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), ToolbarHeight, rl.Gray)

	app.startBtn = raygui.Button(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*0, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		raygui.IconText(raygui.ICON_PLAYER_PLAY, "Start"),
	)
	app.stopBtn = raygui.Button(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*1, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		raygui.IconText(raygui.ICON_PLAYER_STOP, "Stop"),
	)
	app.stepBtn = raygui.Button(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*2, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		raygui.IconText(raygui.ICON_PLAYER_NEXT, "Step"),
	)
	app.resetBtn = raygui.Button(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*3, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		raygui.IconText(raygui.ICON_ROTATE, "Reset"),
	)

	status := "Stopped"
	if app.running {
		status = "Running"
	}
	raygui.Label(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*4, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		status,
	)

	// Sound indicator: lit while the sound timer runs down.
	if app.emu.SoundTimer() > 0 {
		rl.DrawRectangle(app.winW-ToolbarGap-180, 26, 20, 20, BeepColor)
	}

	raygui.Label(
		rl.NewRectangle(float32(app.winW)-ToolbarGap-150, 26, 60, 20),
		fmt.Sprintf("%.0f Hz", app.speed),
	)
	app.speed = raygui.Slider(
		rl.NewRectangle(float32(app.winW)-ToolbarGap-150, ToolbarGap, 100, 20),
		fmt.Sprintf("%.0f Hz", MinSpeed), fmt.Sprintf("%.0f Hz", MaxSpeed),
		app.speed,
		MinSpeed,
		MaxSpeed,
	)
}

func (app *App) drawMessageBar() {
	rl.DrawRectangle(0, app.winH-MessageBarHeight, app.winW, MessageBarHeight, MessageBarBgColor)
	rl.DrawText(app.lastMessage, MessageBarGap, app.winH-MessageBarHeight+MessageBarGap, 16, app.lastMessageColor)
}

func (app *App) showInfo(msg string) {
	app.lastMessage = msg
	app.lastMessageColor = MessageBarInfoColor
}

func (app *App) showError(msg string) {
	app.lastMessage = msg
	app.lastMessageColor = MessageBarErrorColor
}
