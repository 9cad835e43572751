package main

import (
	"testing"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTicksPerBeat = 480

func testArrangeConfig() ArrangeConfig {
	return ArrangeConfig{
		Tracks:        4,
		TrackHeight:   50,
		PixelsPerBeat: 20,
		BeatsPerBar:   4,
		Bars:          2,
		ScrollStep:    20,
	}
}

func testSong() *Song {
	var tracks []Track
	for i := range 4 {
		tracks = append(tracks, Track{
			Notes: []Note{
				{Tick: 0, Duration: testTicksPerBeat, Pitch: 60 + i, Velocity: 100},
				{Tick: 2 * testTicksPerBeat, Duration: testTicksPerBeat, Pitch: 64, Velocity: 80},
			},
		})
	}
	return NewSong(testTicksPerBeat, tracks)
}

func newTestCanvas(t *testing.T) (*fakeDevice, *ArrangeViewStore, *ArrangeViewCanvas) {
	t.Helper()
	dev := newFakeDevice(800, 600)
	store := NewArrangeViewStore(testSong(), testArrangeConfig())
	canvas, err := NewArrangeViewCanvas(dev, 800, store, DefaultTheme())
	require.NoError(t, err)
	t.Cleanup(canvas.Close)
	return dev, store, canvas
}

// layerBuffer finds the buffer id and program id of a mounted layer.
func layerBuffer(t *testing.T, s *Surface, name string) (buffer uint32, program uint32) {
	t.Helper()
	for _, item := range s.root.collect(nil, Identity()) {
		if item.layer.layerName() != name {
			continue
		}
		switch l := item.layer.(type) {
		case *GLNode[*SolidShader, Rect]:
			return l.buffer.BufferID(), l.shader.program
		case *GLNode[*RectangleShader, Rect]:
			return l.buffer.BufferID(), l.shader.program
		case *GLNode[*NoteShader, NoteRect]:
			return l.buffer.BufferID(), l.shader.program
		case *GLNode[*BeatShader, BeatLine]:
			return l.buffer.BufferID(), l.shader.program
		}
	}
	t.Fatalf("no layer named %s", name)
	return 0, 0
}

func TestArrangeCanvasHeight(t *testing.T) {
	_, store, canvas := newTestCanvas(t)
	assert.Equal(t, float32(200), canvas.Height.Get())

	store.TrackHeight.Set(30)
	assert.Equal(t, float32(120), canvas.Height.Get())
	store.Song.Tracks.Set(store.Song.Tracks.Get()[:1])
	assert.Equal(t, float32(30), canvas.Height.Get())
}

func TestArrangeDrawOrder(t *testing.T) {
	dev, store, canvas := newTestCanvas(t)
	lines, _ := layerBuffer(t, canvas.Surface, "lines")
	beats, _ := layerBuffer(t, canvas.Surface, "beats")
	notes, _ := layerBuffer(t, canvas.Surface, "notes")
	cursor, _ := layerBuffer(t, canvas.Surface, "cursor")
	selection, _ := layerBuffer(t, canvas.Surface, "selection")

	require.NoError(t, canvas.Commit())
	assert.Equal(t, []uint32{lines, beats, notes, cursor}, dev.drawOrder())

	dev.resetFrame()
	store.SelectionRect.Set(&Rect{X: 0, Y: 0, Width: 40, Height: 50})
	store.CursorX.Set(60)
	require.NoError(t, canvas.Commit())
	assert.Equal(t, []uint32{lines, beats, notes, cursor, selection}, dev.drawOrder())
}

func TestArrangeInitialProjection(t *testing.T) {
	dev, _, canvas := newTestCanvas(t)
	require.NoError(t, canvas.Commit())
	assert.Equal(t, []Size{{X: 800, Y: 600}}, dev.viewports)

	_, program := layerBuffer(t, canvas.Surface, "notes")
	projection := dev.uniformValue(program, "u_projection").(mgl.Mat4)
	assertPoint(t, mgl.Vec2{-1, 1}, TransformPoint(projection, 0, 0))
	assertPoint(t, mgl.Vec2{1, -1}, TransformPoint(projection, 800, 600))
}

func TestArrangeHorizontalScroll(t *testing.T) {
	dev, store, canvas := newTestCanvas(t)
	require.NoError(t, canvas.Commit())

	linesBuf, linesProgram := layerBuffer(t, canvas.Surface, "lines")
	notesBuf, notesProgram := layerBuffer(t, canvas.Surface, "notes")
	beatsBuf, beatsProgram := layerBuffer(t, canvas.Surface, "beats")
	linesData := dev.bufferData[linesBuf]
	notesData := dev.bufferData[notesBuf]
	uploads := map[uint32]int{
		linesBuf: dev.uploads[linesBuf],
		notesBuf: dev.uploads[notesBuf],
		beatsBuf: dev.uploads[beatsBuf],
	}
	linesProjection := dev.uniformUploads(linesProgram, "u_projection")
	notesProjection := dev.uniformUploads(notesProgram, "u_projection")
	beatsProjection := dev.uniformUploads(beatsProgram, "u_projection")

	store.ScrollLeft.Set(100)
	assert.True(t, canvas.Pending())
	dev.resetFrame()
	require.NoError(t, canvas.Commit())

	for buf, n := range uploads {
		assert.Equal(t, n, dev.uploads[buf], "scrolling never rebuilds vertex data")
	}
	assert.Equal(t, linesData, dev.bufferData[linesBuf])
	assert.Equal(t, notesData, dev.bufferData[notesBuf])
	assert.Equal(t, linesProjection, dev.uniformUploads(linesProgram, "u_projection"), "vertical-only layer is untouched")
	assert.Equal(t, notesProjection+1, dev.uniformUploads(notesProgram, "u_projection"))
	assert.Equal(t, beatsProjection+1, dev.uniformUploads(beatsProgram, "u_projection"))

	projection := dev.uniformValue(notesProgram, "u_projection").(mgl.Mat4)
	assertPoint(t, mgl.Vec2{-1, 1}, TransformPoint(projection, 100, 0))
	assert.Len(t, dev.viewports, 1)
}

func TestArrangeNullSelection(t *testing.T) {
	dev, store, canvas := newTestCanvas(t)
	selection, _ := layerBuffer(t, canvas.Surface, "selection")

	require.NoError(t, canvas.Commit())
	assert.Equal(t, 0, dev.drawsFor(selection))

	store.SelectionRect.Set(&Rect{Width: 10, Height: 10})
	require.NoError(t, canvas.Commit())
	assert.Equal(t, 1, dev.drawsFor(selection))

	dev.resetFrame()
	store.SelectionRect.Set(nil)
	require.NoError(t, canvas.Commit())
	assert.Equal(t, 0, dev.drawsFor(selection))
	assert.NotEmpty(t, dev.draws)
}

func TestArrangeCommitCoalesces(t *testing.T) {
	dev, store, canvas := newTestCanvas(t)
	require.NoError(t, canvas.Commit())
	require.Equal(t, 1, dev.clears)

	require.NoError(t, canvas.Commit())
	assert.Equal(t, 1, dev.clears, "nothing changed")

	store.ScrollLeft.Set(10)
	store.ScrollLeft.Set(20)
	store.CursorX.Set(5)
	require.NoError(t, canvas.Commit())
	assert.Equal(t, 2, dev.clears)

	_, program := layerBuffer(t, canvas.Surface, "notes")
	projection := dev.uniformValue(program, "u_projection").(mgl.Mat4)
	assertPoint(t, mgl.Vec2{-1, 1}, TransformPoint(projection, 20, 0))
}

func TestArrangeCloseReleasesEverything(t *testing.T) {
	dev := newFakeDevice(800, 600)
	store := NewArrangeViewStore(testSong(), testArrangeConfig())
	selectionListeners := store.SelectionRect.listeners.len()
	heightListeners := store.TrackHeight.listeners.len()
	canvas, err := NewArrangeViewCanvas(dev, 800, store, DefaultTheme())
	require.NoError(t, err)
	require.NoError(t, canvas.Commit())
	assert.NotEmpty(t, dev.live)
	assert.Greater(t, store.SelectionRect.listeners.len(), selectionListeners)

	canvas.Close()
	assert.Empty(t, dev.live)
	assert.Equal(t, 0, store.ScrollLeft.listeners.len())
	assert.Equal(t, selectionListeners, store.SelectionRect.listeners.len())
	assert.Equal(t, heightListeners, store.TrackHeight.listeners.len())

	store.ScrollLeft.Set(50)
	assert.False(t, canvas.Pending())
	assert.ErrorIs(t, canvas.Render(), ErrDeviceUnavailable)
}

func TestArrangeSetupFailureRollsBack(t *testing.T) {
	dev := newFakeDevice(800, 600)
	dev.failCompile = "u_barColor"
	store := NewArrangeViewStore(testSong(), testArrangeConfig())

	_, err := NewArrangeViewCanvas(dev, 800, store, DefaultTheme())
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, FragmentStage, compileErr.Stage)
	assert.Empty(t, dev.live)
	assert.Equal(t, 0, store.ScrollTop.listeners.len())

	dev.failCompile = ""
	canvas, err := NewArrangeViewCanvas(dev, 800, store, DefaultTheme())
	require.NoError(t, err)
	canvas.Close()
}

func TestArrangeDeviceLoss(t *testing.T) {
	dev, _, canvas := newTestCanvas(t)
	require.NoError(t, canvas.Commit())

	dev.lost = true
	canvas.Invalidate()
	require.ErrorIs(t, canvas.Commit(), ErrDeviceUnavailable)

	dev.lost = false
	dev.resetFrame()
	assert.ErrorIs(t, canvas.Render(), ErrDeviceUnavailable)
	assert.Empty(t, dev.draws)
}

func TestArrangeLinesGeometry(t *testing.T) {
	dev, _, canvas := newTestCanvas(t)
	require.NoError(t, canvas.Commit())
	lines, _ := layerBuffer(t, canvas.Surface, "lines")
	v := dev.bufferData[lines]
	require.Len(t, v, 4*6*2)
	assert.Equal(t, []float32{0, 49}, v[0:2])
	assert.Equal(t, []float32{800, 50}, v[4:6])
}

func TestArrangeLinesFollowWidth(t *testing.T) {
	dev, _, canvas := newTestCanvas(t)
	require.NoError(t, canvas.Commit())
	lines, _ := layerBuffer(t, canvas.Surface, "lines")
	uploads := dev.uploads[lines]

	dev.size = Size{X: 1600, Y: 600}
	canvas.Width.Set(1600)
	assert.True(t, canvas.Pending())
	require.NoError(t, canvas.Commit())

	assert.Equal(t, []Size{{X: 800, Y: 600}, {X: 1600, Y: 600}}, dev.viewports)
	assert.Equal(t, uploads+1, dev.uploads[lines])
	v := dev.bufferData[lines]
	require.Len(t, v, 4*6*2)
	assert.Equal(t, []float32{1600, 50}, v[4:6])
}
