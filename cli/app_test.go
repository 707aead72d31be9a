package cli

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// Timed key releases must come back through the frame loop: the timer
// goroutine only schedules, it never mutates the keypad itself.
func TestPressKeySchedulesReleaseOnLoop(t *testing.T) {
	app := NewApp(log.NewTestLogger(t))

	app.pressKey(0x5)

	pressed, err := app.emu.Keypad.IsPressed(0x5)
	assert.NoError(t, err)
	assert.True(t, pressed)

	select {
	case key := <-app.releases:
		assert.Equal(t, byte(0x5), key)

		// The key stays down until the loop applies the release.
		pressed, err = app.emu.Keypad.IsPressed(0x5)
		assert.NoError(t, err)
		assert.True(t, pressed)

		assert.NoError(t, app.emu.ReleaseKey(key))
	case <-time.After(time.Second):
		t.Fatal("release was not scheduled")
	}

	pressed, err = app.emu.Keypad.IsPressed(0x5)
	assert.NoError(t, err)
	assert.False(t, pressed)
}

func TestPressKeyRejectedKeySchedulesNothing(t *testing.T) {
	app := NewApp(log.NewTestLogger(t))

	app.pressKey(0xFF)

	select {
	case <-app.releases:
		t.Fatal("rejected keys must not schedule a release")
	case <-time.After(2 * keyHold):
	}
}
