package deskscene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_Edges(t *testing.T) {
	input := &Input{}

	input.update(KeyP, true)
	assert.True(t, input.Pressed[KeyP])
	assert.True(t, input.JustPressed[KeyP])
	assert.False(t, input.JustReleased[KeyP])

	input.update(KeyP, true)
	assert.True(t, input.Pressed[KeyP])
	assert.False(t, input.JustPressed[KeyP], "held key is not just pressed")

	input.update(KeyP, false)
	assert.False(t, input.Pressed[KeyP])
	assert.True(t, input.JustReleased[KeyP])

	input.update(KeyP, false)
	assert.False(t, input.JustReleased[KeyP])
}

func TestInput_Scroll(t *testing.T) {
	input := &Input{}

	input.addScroll(1)
	input.addScroll(2)
	input.flushScroll()
	assert.Equal(t, 3.0, input.ScrollY)

	input.flushScroll()
	assert.Zero(t, input.ScrollY, "scroll is per frame")
}

func TestKeyTable(t *testing.T) {
	assert.Len(t, keyToGlfw, keyCount)
}
