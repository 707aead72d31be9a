// Package cli runs the emulator inside an ANSI terminal: the framebuffer is
// redrawn in place with escape codes and the keyboard is read in raw mode.
package cli

import (
	"io"
	"os"

	"github.com/cadmere/chip8"
)

const esc = 0x1B

// TerminalDisplay renders the framebuffer as text, two characters per pixel.
type TerminalDisplay struct {
	terminal        io.Writer
	OnChar, OffChar string
}

func NewTerminalDisplay() *TerminalDisplay {
	return NewTerminalDisplayWithOutput(os.Stdout)
}

func NewTerminalDisplayWithOutput(out io.Writer) *TerminalDisplay {
	return &TerminalDisplay{
		terminal: out,
		OnChar:   "##",
		OffChar:  "  ",
	}
}

// Clear wipes the terminal and homes the cursor.
func (disp *TerminalDisplay) Clear() error {
	_, err := disp.terminal.Write([]byte{
		// Move cursor to start
		esc, '[', '1', 'H',
		// clear the terminal
		esc, '[', '0', 'J',
	})
	return err
}

// Render redraws the whole framebuffer from the top-left corner.
func (disp *TerminalDisplay) Render(buffer *chip8.FrameBuffer) error {
	buff := make([]byte, 0, chip8.DisplayWidth*chip8.DisplayHeight*2+chip8.DisplayHeight*2+8)
	buff = append(buff, esc, '[', '1', 'H')
	for y := 0; y < chip8.DisplayHeight; y++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			if buffer[y][x] {
				buff = append(buff, disp.OnChar...)
			} else {
				buff = append(buff, disp.OffChar...)
			}
		}
		buff = append(buff, '|', '\n')
	}

	_, err := disp.terminal.Write(buff)
	return err
}

// Beep writes the terminal bell.
func (disp *TerminalDisplay) Beep() error {
	_, err := disp.terminal.Write([]byte{'\a'})
	return err
}
