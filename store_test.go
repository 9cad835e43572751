package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrangeStoreNotes(t *testing.T) {
	store := NewArrangeViewStore(testSong(), testArrangeConfig())
	notes := store.Notes.Get()
	require.Len(t, notes, 8)

	second := notes[1]
	assert.Equal(t, float32(40), second.X)
	assert.Equal(t, float32(20), second.Width)
	assert.Equal(t, float32(1), second.Height, "lanes thinner than 128px get 1px notes")
	assert.InDelta(t, float32(127-64)/128*50, second.Y, 1e-4)
	assert.Equal(t, 80, second.Velocity)
	assert.False(t, second.Selected)

	fourthTrack := notes[6]
	assert.InDelta(t, 150+float32(127-63)/128*50, fourthTrack.Y, 1e-4)
}

func TestArrangeStoreSelectionMarksNotes(t *testing.T) {
	store := NewArrangeViewStore(testSong(), testArrangeConfig())
	before := store.Notes.Get()

	lane := store.TrackRect(1)
	store.SelectionRect.Set(&lane)
	notes := store.Notes.Get()
	assert.False(t, sameSlice(before, notes))
	var selected []int
	for i, n := range notes {
		if n.Selected {
			selected = append(selected, i)
		}
	}
	assert.Equal(t, []int{2, 3}, selected)
}

func TestArrangeStoreBeats(t *testing.T) {
	store := NewArrangeViewStore(testSong(), testArrangeConfig())
	beats := store.Beats.Get()
	require.Len(t, beats, 9, "two bars of four beats plus the closing line")
	assert.Equal(t, Beat{X: 0, Bar: true}, beats[0])
	assert.Equal(t, Beat{X: 20, Bar: false}, beats[1])
	assert.Equal(t, Beat{X: 80, Bar: true}, beats[4])
	assert.Equal(t, float32(160), store.ContentWidth())

	tracks := append([]Track(nil), store.Song.Tracks.Get()...)
	tracks[0].Notes = append(tracks[0].Notes, Note{Tick: 10 * testTicksPerBeat, Duration: 1})
	store.Song.Tracks.Set(tracks)
	assert.Len(t, store.Beats.Get(), 13)
}

func TestArrangeStoreScrollClamps(t *testing.T) {
	store := NewArrangeViewStore(testSong(), testArrangeConfig())
	store.ScrollBy(30, 10)
	store.ScrollBy(-50, 5)
	assert.Equal(t, float32(0), store.ScrollLeft.Get())
	assert.Equal(t, float32(15), store.ScrollTop.Get())
}

func TestScrollStateScrollTo(t *testing.T) {
	s := NewScrollState()
	s.ScrollTo(-5, 40)
	x, y := s.Position()
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(40), y)
	s.ScrollBy(7, -100)
	x, y = s.Position()
	assert.Equal(t, float32(7), x)
	assert.Equal(t, float32(0), y)
}

func TestPianoRollStoreNotes(t *testing.T) {
	song := testSong()
	track := NewObservable(2)
	store := NewPianoRollStore(song, track, 10, 100)
	notes := store.Notes.Get()
	require.Len(t, notes, 2)
	assert.Equal(t, Rect{X: 0, Y: float32(127-62) * 10, Width: 100, Height: 10}, notes[0].Rect)
	assert.Equal(t, float32(200), notes[1].X)

	track.Set(7)
	assert.Empty(t, store.Notes.Get())

	store.ScrollBy(-10, 25)
	assert.Equal(t, float32(0), store.ScrollLeft.Get())
	assert.Equal(t, float32(25), store.ScrollTop.Get())
}
