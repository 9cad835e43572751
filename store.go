package main

const (
	keyCount     = 128
	maxNoteIndex = keyCount - 1
)

type Note struct {
	Tick     int
	Duration int
	Pitch    int
	Velocity int
}

func (n Note) End() int {
	return n.Tick + n.Duration
}

type Track struct {
	Name  string
	Notes []Note
}

// Song is the part of the project the editors observe.
type Song struct {
	Tracks       *Observable[[]Track]
	TicksPerBeat int
}

func NewSong(ticksPerBeat int, tracks []Track) *Song {
	return &Song{
		Tracks:       NewObservableSlice(tracks),
		TicksPerBeat: ticksPerBeat,
	}
}

func (s *Song) EndTick() int {
	end := 0
	for _, t := range s.Tracks.Get() {
		for _, n := range t.Notes {
			end = max(end, n.End())
		}
	}
	return end
}

// ScrollState is the scroll offset of an editor view.
type ScrollState struct {
	ScrollLeft *Observable[float32]
	ScrollTop  *Observable[float32]
}

func NewScrollState() ScrollState {
	return ScrollState{
		ScrollLeft: NewObservable[float32](0),
		ScrollTop:  NewObservable[float32](0),
	}
}

func (s ScrollState) Position() (x, y float32) {
	return s.ScrollLeft.Get(), s.ScrollTop.Get()
}

// ScrollTo moves the view, never past the content origin.
func (s ScrollState) ScrollTo(x, y float32) {
	s.ScrollLeft.Set(max(x, 0))
	s.ScrollTop.Set(max(y, 0))
}

func (s ScrollState) ScrollBy(dx, dy float32) {
	x, y := s.Position()
	s.ScrollTo(x+dx, y+dy)
}

type ArrangeViewStore struct {
	ScrollState
	Song          *Song
	TrackHeight   *Observable[float32]
	CursorX       *Observable[float32]
	SelectionRect *Observable[*Rect]
	SelectedTrack *Observable[int]
	PixelsPerBeat float32
	BeatsPerBar   int
	MinBars       int

	Beats *Computed[[]Beat]
	Notes *Computed[[]NoteRect]
}

func NewArrangeViewStore(song *Song, cfg ArrangeConfig) *ArrangeViewStore {
	s := &ArrangeViewStore{
		ScrollState:   NewScrollState(),
		Song:          song,
		TrackHeight:   NewObservable(cfg.TrackHeight),
		CursorX:       NewObservable[float32](0),
		SelectionRect: NewObservable[*Rect](nil),
		SelectedTrack: NewObservable(0),
		PixelsPerBeat: cfg.PixelsPerBeat,
		BeatsPerBar:   cfg.BeatsPerBar,
		MinBars:       cfg.Bars,
	}
	s.Beats = NewComputed(s.computeBeats, song.Tracks)
	s.Notes = NewComputed(s.computeNotes, song.Tracks, s.TrackHeight, s.SelectionRect)
	return s
}

func (s *ArrangeViewStore) tickToX(tick int) float32 {
	return float32(tick) / float32(s.Song.TicksPerBeat) * s.PixelsPerBeat
}

func (s *ArrangeViewStore) BeatCount() int {
	ticksPerBar := s.Song.TicksPerBeat * s.BeatsPerBar
	bars := (s.Song.EndTick() + ticksPerBar - 1) / ticksPerBar
	return max(bars, s.MinBars) * s.BeatsPerBar
}

func (s *ArrangeViewStore) ContentWidth() float32 {
	return float32(s.BeatCount()) * s.PixelsPerBeat
}

func (s *ArrangeViewStore) ContentHeight() float32 {
	return s.TrackHeight.Get() * float32(len(s.Song.Tracks.Get()))
}

func (s *ArrangeViewStore) computeBeats() []Beat {
	count := s.BeatCount()
	beats := make([]Beat, 0, count+1)
	for i := 0; i <= count; i++ {
		beats = append(beats, Beat{
			X:   float32(i) * s.PixelsPerBeat,
			Bar: i%s.BeatsPerBar == 0,
		})
	}
	return beats
}

// computeNotes lays every note out inside its track lane, pitch 127 at the
// top of the lane.
func (s *ArrangeViewStore) computeNotes() []NoteRect {
	trackHeight := s.TrackHeight.Get()
	noteHeight := max(trackHeight/keyCount, 1)
	selection := s.SelectionRect.Get()
	var rects []NoteRect
	for i, t := range s.Song.Tracks.Get() {
		top := float32(i) * trackHeight
		for _, n := range t.Notes {
			r := Rect{
				X:      s.tickToX(n.Tick),
				Y:      top + float32(maxNoteIndex-n.Pitch)/keyCount*trackHeight,
				Width:  s.tickToX(n.Duration),
				Height: noteHeight,
			}
			rects = append(rects, NoteRect{
				Rect:     r,
				Velocity: n.Velocity,
				Selected: selection != nil && r.Intersects(*selection),
			})
		}
	}
	return rects
}

// TrackRect is the lane of track index across the whole song.
func (s *ArrangeViewStore) TrackRect(index int) Rect {
	h := s.TrackHeight.Get()
	return Rect{X: 0, Y: float32(index) * h, Width: s.ContentWidth(), Height: h}
}

type PianoRollStore struct {
	ScrollState
	Song          *Song
	Track         *Observable[int]
	KeyHeight     float32
	PixelsPerBeat float32

	Notes *Computed[[]NoteRect]
}

func NewPianoRollStore(song *Song, track *Observable[int], keyHeight, pixelsPerBeat float32) *PianoRollStore {
	s := &PianoRollStore{
		ScrollState:   NewScrollState(),
		Song:          song,
		Track:         track,
		KeyHeight:     keyHeight,
		PixelsPerBeat: pixelsPerBeat,
	}
	s.Notes = NewComputed(s.computeNotes, song.Tracks, track)
	return s
}

func (s *PianoRollStore) computeNotes() []NoteRect {
	tracks := s.Song.Tracks.Get()
	index := s.Track.Get()
	if index < 0 || index >= len(tracks) {
		return nil
	}
	ticksPerBeat := float32(s.Song.TicksPerBeat)
	notes := tracks[index].Notes
	rects := make([]NoteRect, 0, len(notes))
	for _, n := range notes {
		rects = append(rects, NoteRect{
			Rect: Rect{
				X:      float32(n.Tick) / ticksPerBeat * s.PixelsPerBeat,
				Y:      float32(maxNoteIndex-n.Pitch) * s.KeyHeight,
				Width:  float32(n.Duration) / ticksPerBeat * s.PixelsPerBeat,
				Height: s.KeyHeight,
			},
			Velocity: n.Velocity,
		})
	}
	return rects
}
