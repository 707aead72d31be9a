package web

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/cadmere/chip8"
)

func TestPackFrame(t *testing.T) {
	disp := chip8.NewDisplay()
	disp.DrawSprite(0, 0, []byte{0b10100000})

	frame := packFrame(disp.Buffer(), false)

	assert.Len(t, frame, frameSize)
	assert.Equal(t, byte(0b10100000), frame[0])
	for _, b := range frame[1:] {
		assert.Equal(t, byte(0), b)
	}
}

func TestPackFrameRowOffsets(t *testing.T) {
	disp := chip8.NewDisplay()
	// One pixel at (x=3, y=2) lands in byte 2*8 and bit 4 from the top.
	disp.DrawSprite(3, 2, []byte{0b10000000})

	frame := packFrame(disp.Buffer(), false)

	assert.Equal(t, byte(1<<4), frame[2*chip8.DisplayWidth/8])
}

func TestPackFrameSoundFlag(t *testing.T) {
	disp := chip8.NewDisplay()

	assert.Equal(t, byte(0), packFrame(disp.Buffer(), false)[frameBytes])
	assert.Equal(t, byte(1), packFrame(disp.Buffer(), true)[frameBytes])
}
