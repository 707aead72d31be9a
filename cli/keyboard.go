package cli

import (
	"os"
	"time"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminals report key presses but not releases, so a pressed key is held for
// this long before it is released again.
const keyHold = 100 * time.Millisecond

// keymap maps the physical keyboard to the hexadecimal keypad:
//
//	CHIP-8    QWERTY
//	1 2 3 C   1 2 3 4
//	4 5 6 D   Q W E R
//	7 8 9 E   A S D F
//	A 0 B F   Z X C V
var keymap = map[byte]byte{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// TerminalKeyboard reads stdin in raw mode and translates bytes to keypad
// indices. Keys arrive on Keys, a quit request (ESC or Ctrl-C) closes Quit.
type TerminalKeyboard struct {
	originalTermios unix.Termios

	Keys chan byte
	Quit chan struct{}
}

func NewTerminalKeyboard() *TerminalKeyboard {
	return &TerminalKeyboard{
		Keys: make(chan byte, 8),
		Quit: make(chan struct{}),
	}
}

// Start switches the terminal to raw mode and begins polling stdin.
func (kb *TerminalKeyboard) Start() error {
	if err := termios.Tcgetattr(os.Stdin.Fd(), &kb.originalTermios); err != nil {
		return err
	}

	raw := kb.originalTermios
	raw.Lflag &^= unix.ICANON | unix.ECHO
	if err := termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &raw); err != nil {
		return err
	}

	go kb.poll()
	return nil
}

// Stop restores the terminal settings.
func (kb *TerminalKeyboard) Stop() error {
	return termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &kb.originalTermios)
}

func (kb *TerminalKeyboard) poll() {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			continue
		}

		switch b := buf[0]; b {
		case esc, 0x03:
			close(kb.Quit)
			return
		default:
			if key, ok := keymap[b]; ok {
				select {
				case kb.Keys <- key:
				default:
				}
			}
		}
	}
}
