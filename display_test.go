package chip8_test

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/cadmere/chip8"
)

func countOn(buf *chip8.FrameBuffer) int {
	n := 0
	for y := range buf {
		for x := range buf[y] {
			if buf[y][x] {
				n++
			}
		}
	}
	return n
}

func TestDrawSpriteAndErase(t *testing.T) {
	disp := chip8.NewDisplay()

	collision := disp.DrawSprite(0, 0, []byte{0xFF})
	assert.False(t, collision)

	buf := disp.Buffer()
	for x := 0; x < 8; x++ {
		assert.True(t, buf[0][x])
	}
	assert.Equal(t, 8, countOn(buf))

	// Drawing the identical sprite again XORs everything off and reports the
	// on-to-off transitions as a collision.
	collision = disp.DrawSprite(0, 0, []byte{0xFF})
	assert.True(t, collision)
	assert.Equal(t, 0, countOn(disp.Buffer()))
}

func TestDrawSpritePartialOverlap(t *testing.T) {
	disp := chip8.NewDisplay()

	assert.False(t, disp.DrawSprite(0, 0, []byte{0b11110000}))
	assert.True(t, disp.DrawSprite(4, 0, []byte{0b11110000}))

	// The overlapping pixels at x=4..7 toggled off, x=0..3 stayed on and
	// x=8..11 toggled on.
	buf := disp.Buffer()
	for x := 0; x < 4; x++ {
		assert.True(t, buf[0][x])
	}
	for x := 4; x < 8; x++ {
		assert.False(t, buf[0][x])
	}
	for x := 8; x < 12; x++ {
		assert.True(t, buf[0][x])
	}
}

func TestDrawSpriteAnchorWraps(t *testing.T) {
	disp := chip8.NewDisplay()

	// (68, 35) wraps to (4, 3) before drawing starts.
	assert.False(t, disp.DrawSprite(68, 35, []byte{0b10000000}))
	assert.True(t, disp.Buffer()[3][4])
	assert.Equal(t, 1, countOn(disp.Buffer()))
}

func TestDrawSpriteClipsRightEdge(t *testing.T) {
	disp := chip8.NewDisplay()

	assert.False(t, disp.DrawSprite(60, 0, []byte{0xFF}))

	buf := disp.Buffer()
	for x := 60; x < 64; x++ {
		assert.True(t, buf[0][x])
	}
	// The overflowing columns are clipped, not wrapped to x=0.
	assert.False(t, buf[0][0])
	assert.Equal(t, 4, countOn(buf))
}

func TestDrawSpriteClipsBottomEdge(t *testing.T) {
	disp := chip8.NewDisplay()

	assert.False(t, disp.DrawSprite(0, 31, []byte{0b10000000, 0b10000000}))

	buf := disp.Buffer()
	assert.True(t, buf[31][0])
	assert.False(t, buf[0][0])
	assert.Equal(t, 1, countOn(buf))
}

func TestDrawSpriteEmpty(t *testing.T) {
	disp := chip8.NewDisplay()
	assert.False(t, disp.DrawSprite(0, 0, nil))
	assert.Equal(t, 0, countOn(disp.Buffer()))
}

func TestDrawSpriteTallerThanEncoding(t *testing.T) {
	disp := chip8.NewDisplay()

	sprite := make([]byte, 20)
	for i := range sprite {
		sprite[i] = 0b10000000
	}

	assert.False(t, disp.DrawSprite(0, 0, sprite))
	assert.Equal(t, 20, countOn(disp.Buffer()))
}

func TestDisplayClear(t *testing.T) {
	disp := chip8.NewDisplay()
	disp.DrawSprite(0, 0, []byte{0xFF, 0xFF})

	disp.Clear()
	assert.Equal(t, 0, countOn(disp.Buffer()))
}
