package chip8

import (
	"fmt"
	"strings"
)

const (
	// MemorySize is the size of addressable RAM in bytes.
	MemorySize = 4096
	// StackSize is the depth of the call-return stack.
	StackSize = 16
	// ProgramStart is the address programs are loaded at. Everything below it
	// is reserved for the interpreter; only the font table lives there.
	ProgramStart = 0x200
	// FontSize is the number of bytes the built-in font table occupies.
	FontSize = 80
)

// font holds the sprites for the hexadecimal digits 0-F, 5 bytes per glyph.
var font = [FontSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory owns the RAM bytes and the call-return stack. The stack is not part
// of the address space; it is reachable only through PushStack and PopStack.
// The stack pointer itself belongs to the CPU: PushStack expects the caller to
// increment it after a successful push, PopStack expects it decremented before
// the call.
type Memory struct {
	ram   [MemorySize]byte
	stack [StackSize]uint16
}

// NewMemory creates a zeroed memory with the font table preloaded.
func NewMemory() *Memory {
	mem := &Memory{}
	mem.loadFont()
	return mem
}

// Reset zeroes RAM and the stack, then reloads the font table.
func (mem *Memory) Reset() {
	mem.ram = [MemorySize]byte{}
	mem.stack = [StackSize]uint16{}
	mem.loadFont()
}

// ReadByte returns the byte at addr.
func (mem *Memory) ReadByte(addr uint16) (byte, error) {
	if addr >= MemorySize {
		return 0, ErrReadOutOfBounds{Addr: addr}
	}
	return mem.ram[addr], nil
}

// WriteByte stores v at addr.
func (mem *Memory) WriteByte(addr uint16, v byte) error {
	if addr >= MemorySize {
		return ErrWriteOutOfBounds{Addr: addr}
	}
	mem.ram[addr] = v
	return nil
}

// WriteBytes copies data into RAM starting at start.
func (mem *Memory) WriteBytes(start uint16, data []byte) error {
	if int(start)+len(data) > MemorySize {
		return ErrWriteRangeOutOfBounds{Start: start, Len: len(data)}
	}
	copy(mem.ram[start:], data)
	return nil
}

// ReadBytes returns a copy of RAM in the half-open range [start, end).
func (mem *Memory) ReadBytes(start, end uint16) ([]byte, error) {
	if start > end || end > MemorySize {
		return nil, ErrReadRangeOutOfBounds{Start: start, End: end}
	}
	out := make([]byte, end-start)
	copy(out, mem.ram[start:end])
	return out, nil
}

// PushStack stores a return address in the stack slot sp.
func (mem *Memory) PushStack(sp int, v uint16) error {
	if sp < 0 || sp >= StackSize {
		return ErrStackOverflow{Sp: sp}
	}
	mem.stack[sp] = v
	return nil
}

// PopStack returns the return address in the stack slot sp.
func (mem *Memory) PopStack(sp int) (uint16, error) {
	if sp < 0 || sp >= StackSize {
		return 0, ErrStackUnderflow{Sp: sp}
	}
	return mem.stack[sp], nil
}

// String renders RAM as a hexdump, the reserved region first.
func (mem *Memory) String() string {
	sb := strings.Builder{}

	sb.WriteString("[ ")
	for _, b := range mem.ram[:ProgramStart] {
		fmt.Fprintf(&sb, "%02X ", b)
	}
	sb.WriteString("]\n[ ")
	for _, b := range mem.ram[ProgramStart:] {
		fmt.Fprintf(&sb, "%02X ", b)
	}
	sb.WriteString("]")

	return sb.String()
}

func (mem *Memory) loadFont() {
	copy(mem.ram[:], font[:])
}
