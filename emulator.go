// Package chip8 implements the interpreter core of the CHIP-8 fantasy
// console: 4 KiB of RAM, 16 registers, a 16-deep call stack, a 64x32
// monochrome XOR display, a hexadecimal keypad and two countdown timers.
//
// The core is synchronous and single-threaded. A host shell owns the cadence:
// it calls Cycle at the CPU frequency, TickTimers at 60 Hz, forwards key
// events and reads the framebuffer and sound timer to render and beep.
// Instances share no state; run one Emulator per machine.
package chip8

import "fmt"

// Emulator composes the CPU, memory, display and keypad into one machine.
type Emulator struct {
	Cpu     *Cpu
	Memory  *Memory
	Display *Display
	Keypad  *Keypad
}

// New creates a zero-initialized machine with the font table preloaded.
func New() *Emulator {
	return &Emulator{
		Cpu:     NewCpu(),
		Memory:  NewMemory(),
		Display: NewDisplay(),
		Keypad:  NewKeypad(),
	}
}

// Reset returns every component to the state a fresh machine starts in.
func (emu *Emulator) Reset() {
	emu.Cpu.Reset()
	emu.Memory.Reset()
	emu.Display.Reset()
	emu.Keypad.Reset()
}

// Load writes a raw program image into RAM at the program start address. It
// does not reset the machine; call Reset first to reuse an instance.
func (emu *Emulator) Load(program []byte) error {
	if err := emu.Memory.WriteBytes(ProgramStart, program); err != nil {
		return fmt.Errorf("load program: %w", err)
	}
	return nil
}

// Cycle executes a single instruction.
func (emu *Emulator) Cycle() error {
	return emu.Cpu.Cycle(emu.Memory, emu.Display, emu.Keypad)
}

// TickTimers decrements the delay and sound timers, flooring at zero.
func (emu *Emulator) TickTimers() {
	emu.Cpu.TickTimers()
}

// SoundTimer returns the sound timer value; audio should play while it is
// above zero.
func (emu *Emulator) SoundTimer() byte {
	return emu.Cpu.SoundTimer()
}

// DisplayBuffer returns the framebuffer, indexed [y][x].
func (emu *Emulator) DisplayBuffer() *FrameBuffer {
	return emu.Display.Buffer()
}

// PressKey marks the key at idx as held down.
func (emu *Emulator) PressKey(idx byte) error {
	return emu.Keypad.Press(idx)
}

// ReleaseKey marks the key at idx as released.
func (emu *Emulator) ReleaseKey(idx byte) error {
	return emu.Keypad.Release(idx)
}
