package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// keymap maps the physical keyboard to the hexadecimal keypad:
//
//	CHIP-8    QWERTY
//	1 2 3 C   1 2 3 4
//	4 5 6 D   Q W E R
//	7 8 9 E   A S D F
//	A 0 B F   Z X C V
var keymap = map[int32]byte{
	rl.KeyOne:   0x1,
	rl.KeyTwo:   0x2,
	rl.KeyThree: 0x3,
	rl.KeyFour:  0xC,
	rl.KeyQ:     0x4,
	rl.KeyW:     0x5,
	rl.KeyE:     0x6,
	rl.KeyR:     0xD,
	rl.KeyA:     0x7,
	rl.KeyS:     0x8,
	rl.KeyD:     0x9,
	rl.KeyF:     0xE,
	rl.KeyZ:     0xA,
	rl.KeyX:     0x0,
	rl.KeyC:     0xB,
	rl.KeyV:     0xF,
}
