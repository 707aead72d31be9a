package chip8

const (
	// DisplayWidth is the framebuffer width in pixels.
	DisplayWidth = 64
	// DisplayHeight is the framebuffer height in pixels.
	DisplayHeight = 32
)

// FrameBuffer is the monochrome screen contents, indexed [y][x].
type FrameBuffer [DisplayHeight][DisplayWidth]bool

// Display owns the framebuffer. Sprites are XOR-composited onto it; a pixel
// flipping from on to off during a draw is reported as a collision.
type Display struct {
	buffer FrameBuffer
}

// NewDisplay creates a display with all pixels off.
func NewDisplay() *Display {
	return &Display{}
}

// Reset turns every pixel off.
func (disp *Display) Reset() {
	disp.buffer = FrameBuffer{}
}

// Clear turns every pixel off.
func (disp *Display) Clear() {
	disp.buffer = FrameBuffer{}
}

// Buffer returns the current framebuffer for rendering. The caller must not
// hold the pointer across mutations it wants to be isolated from.
func (disp *Display) Buffer() *FrameBuffer {
	return &disp.buffer
}

// DrawSprite XORs a sprite onto the framebuffer anchored at (x, y) and
// reports whether any pixel was flipped from on to off.
//
// Each byte of sprite is one 8-pixel row, most significant bit leftmost. The
// anchor wraps around the screen edges before drawing starts; rows and columns
// that would run past the bottom or right edge are clipped, they do not wrap
// mid-sprite. Sprites taller than the 15 rows the Dxyn encoding can express
// are drawn all the same.
func (disp *Display) DrawSprite(x, y byte, sprite []byte) bool {
	collision := false

	anchorX := int(x) % DisplayWidth
	anchorY := int(y) % DisplayHeight

	for row, b := range sprite {
		screenY := anchorY + row
		if screenY >= DisplayHeight {
			break
		}

		for col := 0; col < 8; col++ {
			screenX := anchorX + col
			if screenX >= DisplayWidth {
				break
			}

			if b&(0b10000000>>col) == 0 {
				continue
			}

			if disp.buffer[screenY][screenX] {
				collision = true
			}
			disp.buffer[screenY][screenX] = !disp.buffer[screenY][screenX]
		}
	}

	return collision
}
