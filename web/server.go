// Package web exposes the emulator over HTTP: plain endpoints control the
// machine and a websocket streams the framebuffer to a browser front-end.
package web

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
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

// Server owns an emulator instance and serializes all access to it: the frame
// loop, the control endpoints and the websocket key events all go through mu.
type Server struct {
	emu    *chip8.Emulator
	logger *log.Logger

	config Config

	mu      sync.Mutex
	running bool

	socket  *websocket.Conn
	wsMutex sync.RWMutex
}

func NewServer(logger *log.Logger, configs ...ConfigCb) *Server {
	config := Config{
		CpuHz:         500,
		TimerHz:       60,
		StepsPerFrame: 0,
	}
	for _, cb := range configs {
		cb(&config)
	}

	return &Server{
		emu:    chip8.New(),
		logger: logger,
		config: config,
	}
}

// LoadProgram resets the machine and loads a ROM image.
func (server *Server) LoadProgram(program []byte) error {
	server.mu.Lock()
	defer server.mu.Unlock()

	server.emu.Reset()
	if err := server.emu.Load(program); err != nil {
		return fmt.Errorf("load program: %w", err)
	}
	return nil
}

// Listen starts the frame loop and serves the control API on the given port.
func (server *Server) Listen(port int) error {
	go server.loop()

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("./static")))

	mux.HandleFunc("/load", func(w http.ResponseWriter, r *http.Request) {
		corsHeaders(w)

		program, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		server.logger.Info("Loading program", log.Int("size", len(program)))
		if err := server.LoadProgram(program); err != nil {
			server.logger.Error("Error loading program", log.Err(err))
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		}
	})
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		corsHeaders(w)

		server.logger.Info("Starting")
		server.setRunning(true)
	})
	mux.HandleFunc("/stop", func(w http.ResponseWriter, r *http.Request) {
		corsHeaders(w)

		server.logger.Info("Stopping")
		server.setRunning(false)
	})
	mux.HandleFunc("/reset", func(w http.ResponseWriter, r *http.Request) {
		corsHeaders(w)

		server.logger.Info("Stopping and resetting")
		server.setRunning(false)

		server.mu.Lock()
		server.emu.Reset()
		server.mu.Unlock()
	})
	mux.HandleFunc("/step", func(w http.ResponseWriter, r *http.Request) {
		corsHeaders(w)

		server.logger.Info("Single instruction")
		server.mu.Lock()
		err := server.emu.Cycle()
		server.mu.Unlock()
		if err != nil {
			server.logger.Error("Emulation fault", log.Err(err))
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		}
	})
	mux.HandleFunc("/memory", func(w http.ResponseWriter, r *http.Request) {
		corsHeaders(w)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		server.mu.Lock()
		dump := server.emu.Memory.String()
		server.mu.Unlock()

		fmt.Fprint(w, dump)
	})
	mux.HandleFunc("/display", server.handleDisplay)

	server.logger.Info("Listening", log.Int("port", port))
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

func (server *Server) setRunning(running bool) {
	server.mu.Lock()
	server.running = running
	server.mu.Unlock()
}

// loop advances the machine one frame at a time and pushes the result to the
// connected display.
func (server *Server) loop() {
	steps := server.config.StepsPerFrame
	if steps == 0 {
		steps = server.config.CpuHz / fps
		if steps == 0 {
			steps = 1
		}
	}
	timerTicks := server.config.TimerHz / fps
	if timerTicks == 0 {
		timerTicks = 1
	}

	ticker := time.NewTicker(time.Second / fps)
	defer ticker.Stop()

	for range ticker.C {
		server.mu.Lock()
		if !server.running {
			server.mu.Unlock()
			continue
		}

		for i := uint(0); i < steps; i++ {
			if err := server.emu.Cycle(); err != nil {
				server.logger.Error("Emulation fault", log.Err(err))
				server.running = false
				break
			}
		}
		for i := uint(0); i < timerTicks; i++ {
			server.emu.TickTimers()
		}

		frame := packFrame(server.emu.DisplayBuffer(), server.emu.SoundTimer() > 0)
		server.mu.Unlock()

		server.pushFrame(frame)
	}
}

func corsHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Expose-Headers", "Content-Type")
	w.Header().Set("Cache-Control", "no-cache")
}
