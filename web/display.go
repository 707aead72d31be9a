package web

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/retroenv/retrogolib/log"

	"github.com/cadmere/chip8"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// frameSize is the packed framebuffer (8 pixels per byte) plus the sound flag.
const frameSize = frameBytes + 1

const frameBytes = chip8.DisplayWidth * chip8.DisplayHeight / 8

// Key event messages from the client: [state, key] with state 1 for down and
// 0 for up.
const (
	keyEventUp   = 0x00
	keyEventDown = 0x01
)

// packFrame serializes the framebuffer row by row, MSB first, and appends the
// sound flag as the last byte.
func packFrame(buffer *chip8.FrameBuffer, beeping bool) []byte {
	frame := make([]byte, frameSize)
	i := 0
	for y := 0; y < chip8.DisplayHeight; y++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			if buffer[y][x] {
				frame[i/8] |= 1 << (7 - byte(i%8))
			}
			i++
		}
	}
	if beeping {
		frame[frameBytes] = 1
	}
	return frame
}

func (server *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		server.logger.Error("Websocket upgrade failed", log.Err(err))
		return
	}
	defer conn.Close()

	server.logger.Info("Display connected")
	server.setWs(conn)
	defer func() {
		server.unsetWs()
		server.logger.Info("Display disconnected")
	}()

	// Reading doubles as the disconnect signal: key events come in, and a
	// read error means the client is gone.
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if len(msg) != 2 {
			continue
		}

		server.mu.Lock()
		switch msg[0] {
		case keyEventDown:
			server.emu.PressKey(msg[1])
		case keyEventUp:
			server.emu.ReleaseKey(msg[1])
		}
		server.mu.Unlock()
	}
}

func (server *Server) setWs(conn *websocket.Conn) {
	server.wsMutex.Lock()
	server.socket = conn
	server.wsMutex.Unlock()
}

func (server *Server) unsetWs() {
	server.wsMutex.Lock()
	server.socket = nil
	server.wsMutex.Unlock()
}

func (server *Server) pushFrame(frame []byte) {
	server.wsMutex.RLock()
	defer server.wsMutex.RUnlock()

	if server.socket == nil {
		return
	}
	if err := server.socket.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		server.logger.Error("Error pushing frame", log.Err(err))
	}
}
