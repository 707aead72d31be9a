package chip8_test

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/cadmere/chip8"
)

func TestLoadAndRunConstantSet(t *testing.T) {
	emu := chip8.New()

	assert.NoError(t, emu.Load([]byte{0x60, 0x05}))
	assert.NoError(t, emu.Cycle())

	assert.Equal(t, byte(5), emu.Cpu.V[0])
	assert.Equal(t, uint16(chip8.ProgramStart+2), emu.Cpu.Pc)
}

func TestLoadAndRunLoadIndex(t *testing.T) {
	emu := chip8.New()

	assert.NoError(t, emu.Load([]byte{0xA2, 0x2A}))
	assert.NoError(t, emu.Cycle())

	assert.Equal(t, uint16(0x22A), emu.Cpu.I)
}

// Draws the font glyph for 0 twice: the second draw erases it again and
// raises the collision flag.
func TestDrawProgram(t *testing.T) {
	emu := chip8.New()

	program := []byte{
		0x60, 0x00, // V0 = 0
		0xF0, 0x29, // I = glyph address for V0
		0xD0, 0x05, // draw 5 rows at (V0, V0)
		0xD0, 0x05, // draw again
	}
	assert.NoError(t, emu.Load(program))

	for i := 0; i < 3; i++ {
		assert.NoError(t, emu.Cycle())
	}
	assert.Equal(t, byte(0), emu.Cpu.V[0xF])
	assert.True(t, emu.DisplayBuffer()[0][0])

	assert.NoError(t, emu.Cycle())
	assert.Equal(t, byte(1), emu.Cpu.V[0xF])
	assert.Equal(t, 0, countOn(emu.DisplayBuffer()))
}

func TestLoadTooLargeProgram(t *testing.T) {
	emu := chip8.New()

	err := emu.Load(make([]byte, chip8.MemorySize-chip8.ProgramStart+1))
	var rangeErr chip8.ErrWriteRangeOutOfBounds
	assert.True(t, errors.As(err, &rangeErr))

	// A program filling RAM exactly is fine.
	assert.NoError(t, emu.Load(make([]byte, chip8.MemorySize-chip8.ProgramStart)))
}

func TestLoadDoesNotTouchFont(t *testing.T) {
	emu := chip8.New()
	assert.NoError(t, emu.Load([]byte{0x12, 0x00}))

	b, err := emu.Memory.ReadByte(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xF0), b)
}

func TestKeyForwarding(t *testing.T) {
	emu := chip8.New()

	assert.NoError(t, emu.PressKey(0x4))
	pressed, err := emu.Keypad.IsPressed(0x4)
	assert.NoError(t, err)
	assert.True(t, pressed)

	assert.NoError(t, emu.ReleaseKey(0x4))
	pressed, err = emu.Keypad.IsPressed(0x4)
	assert.NoError(t, err)
	assert.False(t, pressed)

	var keyErr chip8.ErrKeyOutOfRange
	assert.True(t, errors.As(emu.PressKey(0x10), &keyErr))
	assert.True(t, errors.As(emu.ReleaseKey(0xFF), &keyErr))
}

func TestSoundTimer(t *testing.T) {
	emu := chip8.New()

	emu.Cpu.St = 2
	assert.Equal(t, byte(2), emu.SoundTimer())

	emu.TickTimers()
	assert.Equal(t, byte(1), emu.SoundTimer())
	emu.TickTimers()
	emu.TickTimers()
	assert.Equal(t, byte(0), emu.SoundTimer())
}

func TestReset(t *testing.T) {
	emu := chip8.New()
	assert.NoError(t, emu.Load([]byte{0x6A, 0xFF, 0xD0, 0x01}))
	assert.NoError(t, emu.Cycle())
	assert.NoError(t, emu.PressKey(0x1))
	emu.Cpu.St = 9
	emu.Display.DrawSprite(0, 0, []byte{0xFF})

	emu.Reset()

	assert.Equal(t, uint16(chip8.ProgramStart), emu.Cpu.Pc)
	assert.Equal(t, byte(0), emu.Cpu.V[0xA])
	assert.Equal(t, byte(0), emu.SoundTimer())
	assert.Equal(t, 0, countOn(emu.DisplayBuffer()))

	pressed, err := emu.Keypad.IsPressed(0x1)
	assert.NoError(t, err)
	assert.False(t, pressed)

	// The program image is gone, the font is back.
	b, err := emu.Memory.ReadByte(chip8.ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)
	b, err = emu.Memory.ReadByte(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xF0), b)
}

// Two instances share nothing.
func TestInstancesAreIndependent(t *testing.T) {
	a := chip8.New()
	b := chip8.New()

	assert.NoError(t, a.Load([]byte{0x60, 0x05}))
	assert.NoError(t, a.Cycle())
	assert.NoError(t, a.PressKey(0x2))

	assert.Equal(t, byte(0), b.Cpu.V[0])
	assert.Equal(t, uint16(chip8.ProgramStart), b.Cpu.Pc)
	pressed, err := b.Keypad.IsPressed(0x2)
	assert.NoError(t, err)
	assert.False(t, pressed)
}
