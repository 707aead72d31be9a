package chip8

// NumKeys is the number of keys on the hexadecimal input pad.
const NumKeys = 16

// Keypad owns the state of the 16-key input pad. Keys are level-triggered:
// a key stays pressed until it is explicitly released, and pressing an
// already-pressed key is a no-op.
type Keypad struct {
	keys [NumKeys]bool
}

// NewKeypad creates a keypad with all keys released.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Reset releases all keys.
func (kp *Keypad) Reset() {
	kp.keys = [NumKeys]bool{}
}

// IsPressed reports whether the key at idx is held down.
func (kp *Keypad) IsPressed(idx byte) (bool, error) {
	if idx >= NumKeys {
		return false, ErrKeyOutOfRange{Key: idx}
	}
	return kp.keys[idx], nil
}

// Press marks the key at idx as held down.
func (kp *Keypad) Press(idx byte) error {
	if idx >= NumKeys {
		return ErrKeyOutOfRange{Key: idx}
	}
	kp.keys[idx] = true
	return nil
}

// Release marks the key at idx as released.
func (kp *Keypad) Release(idx byte) error {
	if idx >= NumKeys {
		return ErrKeyOutOfRange{Key: idx}
	}
	kp.keys[idx] = false
	return nil
}
