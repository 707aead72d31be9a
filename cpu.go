package chip8

import (
	"crypto/rand"
	"errors"
)

// Cpu holds the register file, program counter, stack pointer and timers. It
// owns no memory, display or keypad state; one instruction is executed against
// those collaborators per Cycle call.
type Cpu struct {
	// V 8-bit general purpose registers. VF doubles as the
	// carry/borrow/collision flag and is clobbered by the ALU and draw
	// instructions.
	V [16]byte
	// I 16-bit index register (12 bits usable)
	I uint16
	// Program counter
	Pc uint16
	// Stack pointer, 0..16; 16 means the stack is full
	Sp int
	// Delay timer register
	Dt byte
	// Sound timer register
	St byte
}

// NewCpu creates a CPU with cleared registers and the PC at the program start.
func NewCpu() *Cpu {
	return &Cpu{Pc: ProgramStart}
}

// Reset returns the CPU to the state NewCpu produces.
func (cpu *Cpu) Reset() {
	*cpu = Cpu{Pc: ProgramStart}
}

// TickTimers decrements the delay and sound timers, flooring at zero. The
// shell calls this at its own fixed cadence, independent of Cycle.
func (cpu *Cpu) TickTimers() {
	if cpu.Dt > 0 {
		cpu.Dt--
	}
	if cpu.St > 0 {
		cpu.St--
	}
}

// SoundTimer returns the current sound timer value. The shell should play
// audio while it is above zero.
func (cpu *Cpu) SoundTimer() byte {
	return cpu.St
}

// Cycle fetches the two opcode bytes at PC (high byte first), advances PC by
// two and executes the instruction. An unrecognized opcode is reported as
// ErrOpcodeUnknown; memory and keypad failures mid-instruction come back
// wrapped in ErrCycle.
func (cpu *Cpu) Cycle(mem *Memory, disp *Display, kp *Keypad) error {
	fetchPc := cpu.Pc

	hi, err := mem.ReadByte(cpu.Pc)
	if err != nil {
		return ErrCycle{Pc: fetchPc, Err: err}
	}
	lo, err := mem.ReadByte(cpu.Pc + 1)
	if err != nil {
		return ErrCycle{Pc: fetchPc, Err: err}
	}
	opCode := uint16(hi)<<8 | uint16(lo)
	cpu.Pc += 2

	if err := cpu.execute(opCode, mem, disp, kp); err != nil {
		var unknown ErrOpcodeUnknown
		if errors.As(err, &unknown) {
			return err
		}
		return ErrCycle{Opcode: opCode, Pc: fetchPc, Err: err}
	}

	return nil
}

func (cpu *Cpu) execute(opCode uint16, mem *Memory, disp *Display, kp *Keypad) error {
	x := (opCode & 0x0F00) >> 8
	y := (opCode & 0x00F0) >> 4
	n := byte(opCode & 0x000F)
	kk := byte(opCode & 0x00FF)
	nnn := opCode & 0x0FFF

	unknown := ErrOpcodeUnknown{Opcode: opCode, Pc: cpu.Pc - 2}

	switch opCode & 0xF000 {
	case 0x0000:
		switch opCode {
		case 0x0000:
			// NOP

		case 0x00E0:
			// CLS :: Clear the display.
			disp.Clear()

		case 0x00EE:
			// RET :: Return from a subroutine.
			ret, err := mem.PopStack(cpu.Sp - 1)
			if err != nil {
				return err
			}
			cpu.Sp--
			cpu.Pc = ret

		default:
			// 0NNN machine code routines ran on the original hardware only.
			return unknown
		}

	case 0x1000:
		// JP addr :: Jump to location nnn.
		cpu.Pc = nnn

	case 0x2000:
		// CALL addr :: Call subroutine at nnn.
		if err := mem.PushStack(cpu.Sp, cpu.Pc); err != nil {
			return err
		}
		cpu.Sp++
		cpu.Pc = nnn

	case 0x3000:
		// SE Vx, byte :: Skip next instruction if Vx = kk.
		if cpu.V[x] == kk {
			cpu.Pc += 2
		}

	case 0x4000:
		// SNE Vx, byte :: Skip next instruction if Vx != kk.
		if cpu.V[x] != kk {
			cpu.Pc += 2
		}

	case 0x5000:
		// SE Vx, Vy :: Skip next instruction if Vx = Vy.
		if n != 0 {
			return unknown
		}
		if cpu.V[x] == cpu.V[y] {
			cpu.Pc += 2
		}

	case 0x6000:
		// LD Vx, byte :: Set Vx = kk.
		cpu.V[x] = kk

	case 0x7000:
		// ADD Vx, byte :: Set Vx = Vx + kk, wrapping.
		cpu.V[x] = cpu.V[x] + kk

	case 0x8000:
		// Inter-register operations

		switch opCode & 0x000F {
		case 0x0000:
			// LD Vx, Vy :: Set Vx = Vy.
			cpu.V[x] = cpu.V[y]

		case 0x0001:
			// OR Vx, Vy :: Set Vx = Vx OR Vy.
			cpu.V[x] |= cpu.V[y]

		case 0x0002:
			// AND Vx, Vy :: Set Vx = Vx AND Vy.
			cpu.V[x] &= cpu.V[y]

		case 0x0003:
			// XOR Vx, Vy :: Set Vx = Vx XOR Vy.
			cpu.V[x] ^= cpu.V[y]

		case 0x0004:
			// ADD Vx, Vy :: Set Vx = Vx + Vy, set VF = carry.
			r := uint16(cpu.V[x]) + uint16(cpu.V[y])
			cpu.V[x] = byte(r)
			cpu.V[0xF] = byte(r >> 8)

		case 0x0005:
			// SUB Vx, Vy :: Set Vx = Vx - Vy, set VF = NOT borrow.
			noBorrow := cpu.V[x] >= cpu.V[y]
			cpu.V[x] = cpu.V[x] - cpu.V[y]
			cpu.V[0xF] = bool2byte(noBorrow)

		case 0x0006:
			// SHR Vx, Vy :: Set Vx = Vy SHR 1, set VF = LSB of Vy before the shift.
			// Original dialect: the source register is Vy, not Vx.
			lsb := cpu.V[y] & 0b00000001
			cpu.V[x] = cpu.V[y] >> 1
			cpu.V[0xF] = lsb

		case 0x0007:
			// SUBN Vx, Vy :: Set Vx = Vy - Vx, set VF = NOT borrow.
			noBorrow := cpu.V[y] >= cpu.V[x]
			cpu.V[x] = cpu.V[y] - cpu.V[x]
			cpu.V[0xF] = bool2byte(noBorrow)

		case 0x000E:
			// SHL Vx, Vy :: Set Vx = Vy SHL 1, set VF = MSB of Vy before the shift.
			msb := (cpu.V[y] & 0b10000000) >> 7
			cpu.V[x] = cpu.V[y] << 1
			cpu.V[0xF] = msb

		default:
			return unknown
		}

	case 0x9000:
		// SNE Vx, Vy :: Skip next instruction if Vx != Vy.
		if n != 0 {
			return unknown
		}
		if cpu.V[x] != cpu.V[y] {
			cpu.Pc += 2
		}

	case 0xA000:
		// LD I, addr :: Set I = nnn.
		cpu.I = nnn

	case 0xB000:
		// JP V0, addr :: Jump to location nnn + V0.
		cpu.Pc = nnn + uint16(cpu.V[0])

	case 0xC000:
		// RND Vx, byte :: Set Vx = random byte AND kk.
		buf := [1]byte{}
		if _, err := rand.Read(buf[:]); err != nil {
			return err
		}
		cpu.V[x] = buf[0] & kk

	case 0xD000:
		// DRW Vx, Vy, nibble :: XOR the n-byte sprite at I onto the screen at
		// (Vx, Vy), set VF = collision.
		sprite, err := mem.ReadBytes(cpu.I, cpu.I+uint16(n))
		if err != nil {
			return err
		}
		cpu.V[0xF] = bool2byte(disp.DrawSprite(cpu.V[x], cpu.V[y], sprite))

	case 0xE000:
		// Skip if key ...

		switch opCode & 0x00FF {
		case 0x009E:
			// SKP Vx :: Skip next instruction if key Vx is pressed.
			pressed, err := kp.IsPressed(cpu.V[x])
			if err != nil {
				return err
			}
			if pressed {
				cpu.Pc += 2
			}

		case 0x00A1:
			// SKNP Vx :: Skip next instruction if key Vx is not pressed.
			pressed, err := kp.IsPressed(cpu.V[x])
			if err != nil {
				return err
			}
			if !pressed {
				cpu.Pc += 2
			}

		default:
			return unknown
		}

	case 0xF000:
		// Timers, keypad and memory transfers

		switch opCode & 0x00FF {
		case 0x0007:
			// LD Vx, DT :: Set Vx = delay timer value.
			cpu.V[x] = cpu.Dt

		case 0x000A:
			// LD Vx, K :: Wait for a key press, store the key in Vx.
			// Not a blocking wait: with no key down the PC rolls back two so
			// the same instruction is fetched again next cycle.
			pressed := false
			for i := byte(0); i < NumKeys; i++ {
				if down, _ := kp.IsPressed(i); down {
					cpu.V[x] = i
					pressed = true
					break
				}
			}
			if !pressed {
				cpu.Pc -= 2
			}

		case 0x0015:
			// LD DT, Vx :: Set delay timer = Vx.
			cpu.Dt = cpu.V[x]

		case 0x0018:
			// LD ST, Vx :: Set sound timer = Vx.
			cpu.St = cpu.V[x]

		case 0x001E:
			// ADD I, Vx :: Set I = I + Vx, wrapping.
			cpu.I = cpu.I + uint16(cpu.V[x])

		case 0x0029:
			// LD F, Vx :: Set I = location of the font sprite for digit Vx.
			cpu.I = uint16(cpu.V[x]) * 5

		case 0x0033:
			// LD B, Vx :: Store the BCD digits of Vx at I, I+1 and I+2.
			vx := cpu.V[x]
			if err := mem.WriteByte(cpu.I, vx/100); err != nil {
				return err
			}
			if err := mem.WriteByte(cpu.I+1, (vx/10)%10); err != nil {
				return err
			}
			if err := mem.WriteByte(cpu.I+2, vx%10); err != nil {
				return err
			}

		case 0x0055:
			// LD [I], Vx :: Store V0 through Vx at I.., advancing I past each
			// byte written.
			for i := uint16(0); i <= x; i++ {
				if err := mem.WriteByte(cpu.I, cpu.V[i]); err != nil {
					return err
				}
				cpu.I++
			}

		case 0x0065:
			// LD Vx, [I] :: Load V0 through Vx from I.., advancing I past each
			// byte read.
			for i := uint16(0); i <= x; i++ {
				v, err := mem.ReadByte(cpu.I)
				if err != nil {
					return err
				}
				cpu.V[i] = v
				cpu.I++
			}

		default:
			return unknown
		}

	default:
		return unknown
	}

	return nil
}

func bool2byte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
