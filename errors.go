package chip8

import "fmt"

// ErrReadOutOfBounds reports a byte read past the end of RAM.
type ErrReadOutOfBounds struct {
	Addr uint16
}

func (err ErrReadOutOfBounds) Error() string {
	return fmt.Sprintf("memory read out of bounds at address %#04X", err.Addr)
}

// ErrWriteOutOfBounds reports a byte write past the end of RAM.
type ErrWriteOutOfBounds struct {
	Addr uint16
}

func (err ErrWriteOutOfBounds) Error() string {
	return fmt.Sprintf("memory write out of bounds at address %#04X", err.Addr)
}

// ErrWriteRangeOutOfBounds reports a range write that does not fit into RAM.
type ErrWriteRangeOutOfBounds struct {
	Start uint16
	Len   int
}

func (err ErrWriteRangeOutOfBounds) Error() string {
	return fmt.Sprintf("memory write out of bounds: start=%#04X len=%d", err.Start, err.Len)
}

// ErrReadRangeOutOfBounds reports a range read outside of RAM or with start > end.
type ErrReadRangeOutOfBounds struct {
	Start uint16
	End   uint16
}

func (err ErrReadRangeOutOfBounds) Error() string {
	return fmt.Sprintf("memory read out of bounds: start=%#04X end=%#04X", err.Start, err.End)
}

// ErrStackOverflow reports a push onto a full call stack.
type ErrStackOverflow struct {
	Sp int
}

func (err ErrStackOverflow) Error() string {
	return fmt.Sprintf("stack overflow at stack pointer %d", err.Sp)
}

// ErrStackUnderflow reports a pop with the stack pointer outside the stack.
type ErrStackUnderflow struct {
	Sp int
}

func (err ErrStackUnderflow) Error() string {
	return fmt.Sprintf("stack underflow at stack pointer %d", err.Sp)
}

// ErrKeyOutOfRange reports a keypad access with an index outside 0x0..0xF.
type ErrKeyOutOfRange struct {
	Key byte
}

func (err ErrKeyOutOfRange) Error() string {
	return fmt.Sprintf("keypad index out of range: %#X", err.Key)
}

// ErrOpcodeUnknown reports an instruction word that matches no pattern of the
// base instruction set. Pc is the address the opcode was fetched from.
type ErrOpcodeUnknown struct {
	Opcode uint16
	Pc     uint16
}

func (err ErrOpcodeUnknown) Error() string {
	return fmt.Sprintf("unimplemented opcode %#04X at PC=%#04X", err.Opcode, err.Pc)
}

// ErrCycle wraps a memory or keypad error hit while executing an instruction.
// The underlying cause is reachable through errors.As / errors.Is.
type ErrCycle struct {
	Opcode uint16
	Pc     uint16
	Err    error
}

func (err ErrCycle) Error() string {
	return fmt.Sprintf("cpu fault executing opcode %#04X at PC=%#04X: %v", err.Opcode, err.Pc, err.Err)
}

func (err ErrCycle) Unwrap() error {
	return err.Err
}
