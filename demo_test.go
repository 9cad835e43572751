package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoSongDeterministic(t *testing.T) {
	a := DemoSong(4, 2, 4, 480)
	b := DemoSong(4, 2, 4, 480)
	require.Len(t, a.Tracks.Get(), 4)
	assert.Equal(t, a.Tracks.Get(), b.Tracks.Get())
	for _, track := range a.Tracks.Get() {
		assert.NotEmpty(t, track.Notes)
		for _, n := range track.Notes {
			assert.GreaterOrEqual(t, n.Pitch, 0)
			assert.LessOrEqual(t, n.Pitch, maxNoteIndex)
			assert.Greater(t, n.Velocity, 0)
			assert.LessOrEqual(t, n.Velocity, maxVelocity)
			assert.Less(t, n.Tick, 8*480)
		}
	}
	assert.Empty(t, DemoSong(0, 2, 4, 480).Tracks.Get())
}
