package main

import (
	mgl "github.com/go-gl/mathgl/mgl32"
)

const (
	zIndexBackground = iota
	zIndexContent
	zIndexOverlay
)

// ArrangeViewCanvas draws the track lanes, ruler beats, cursor, notes and
// selection of the arrange view. Its height follows the track count and
// the track dividers follow Width.
type ArrangeViewCanvas struct {
	*Surface
	Width  *Observable[float32]
	Height *Computed[float32]

	computed []interface{ Dispose() }
}

func NewArrangeViewCanvas(dev Device, width float32, store *ArrangeViewStore, theme Theme) (*ArrangeViewCanvas, error) {
	c := &ArrangeViewCanvas{Width: NewObservable(width)}
	tracks := store.Song.Tracks

	c.Height = NewComputed(store.ContentHeight, store.TrackHeight, tracks)
	lines := NewComputed(func() []Rect {
		h := store.TrackHeight.Get()
		w := c.Width.Get()
		n := len(tracks.Get())
		rects := make([]Rect, 0, n)
		for i := 1; i <= n; i++ {
			rects = append(rects, Rect{X: 0, Y: float32(i)*h - 1, Width: w, Height: 1})
		}
		return rects
	}, store.TrackHeight, tracks, c.Width)
	beats := NewComputed(func() []BeatLine {
		height := c.Height.Get()
		src := store.Beats.Get()
		out := make([]BeatLine, 0, len(src))
		for _, b := range src {
			out = append(out, BeatLine{X: b.X, Height: height, Bar: b.Bar})
		}
		return out
	}, store.Beats, c.Height)
	cursor := NewComputed(func() []Rect {
		return []Rect{{X: store.CursorX.Get(), Width: 1, Height: c.Height.Get()}}
	}, store.CursorX, c.Height)
	selection := NewComputed(func() []Rect {
		r := store.SelectionRect.Get()
		if r == nil {
			return nil
		}
		return []Rect{*r}
	}, store.SelectionRect)
	c.computed = []interface{ Dispose() }{c.Height, lines, beats, cursor, selection}

	scrollX := &Transform{
		Matrix: func() mgl.Mat4 { return Translation(-store.ScrollLeft.Get(), 0) },
		Watch:  []Subscribable{store.ScrollLeft},
		Children: []Element{
			&GLNode[*BeatShader, BeatLine]{
				Name:         "beats",
				CreateShader: NewBeatShader,
				CreateBuffer: NewBeatBuffer,
				Uniforms: func(s *BeatShader, projection mgl.Mat4) {
					s.Projection.Set(projection)
					s.BeatColor.Set(theme.Beat)
					s.BarColor.Set(theme.Bar)
				},
				Buffer: beats.Get,
				Watch:  []Subscribable{beats},
				ZIndex: zIndexBackground,
			},
			&GLNode[*SolidShader, Rect]{
				Name:         "cursor",
				CreateShader: NewSolidShader,
				CreateBuffer: NewPositionBuffer,
				Uniforms:     solidUniforms(theme.Cursor),
				Buffer:       cursor.Get,
				Watch:        []Subscribable{cursor},
				ZIndex:       zIndexOverlay,
			},
		},
	}
	scrollY := &Transform{
		Matrix: func() mgl.Mat4 { return Translation(0, -store.ScrollTop.Get()) },
		Watch:  []Subscribable{store.ScrollTop},
		Children: []Element{
			&GLNode[*SolidShader, Rect]{
				Name:         "lines",
				CreateShader: NewSolidShader,
				CreateBuffer: NewPositionBuffer,
				Uniforms:     solidUniforms(theme.Divider),
				Buffer:       lines.Get,
				Watch:        []Subscribable{lines},
				ZIndex:       zIndexBackground,
			},
		},
	}
	scrollXY := &Transform{
		Matrix: func() mgl.Mat4 {
			return Translation(-store.ScrollLeft.Get(), -store.ScrollTop.Get())
		},
		Watch: []Subscribable{store.ScrollLeft, store.ScrollTop},
		Children: []Element{
			NewNoteRectangles("notes", store.Notes, theme.NoteFill, theme.NoteStroke, zIndexContent),
			&GLNode[*RectangleShader, Rect]{
				Name:         "selection",
				CreateShader: NewRectangleShader,
				CreateBuffer: NewRectBuffer,
				Uniforms: func(s *RectangleShader, projection mgl.Mat4) {
					s.Projection.Set(projection)
					s.FillColor.Set(theme.SelectionFill)
					s.StrokeColor.Set(theme.SelectionStroke)
				},
				Buffer: selection.Get,
				Watch:  []Subscribable{selection},
				ZIndex: zIndexOverlay,
			},
		},
	}

	surface, err := NewSurface(dev, theme.Background, scrollY, scrollX, scrollXY)
	if err != nil {
		c.dispose()
		return nil, err
	}
	c.Surface = surface
	return c, nil
}

func solidUniforms(color mgl.Vec4) func(*SolidShader, mgl.Mat4) {
	return func(s *SolidShader, projection mgl.Mat4) {
		s.Projection.Set(projection)
		s.Color.Set(color)
	}
}

// NewNoteRectangles binds a note list to a NoteShader layer.
func NewNoteRectangles(name string, rects Source[[]NoteRect], fill, stroke mgl.Vec4, zIndex int) *GLNode[*NoteShader, NoteRect] {
	return &GLNode[*NoteShader, NoteRect]{
		Name:         name,
		CreateShader: NewNoteShader,
		CreateBuffer: NewNoteBuffer,
		Uniforms: func(s *NoteShader, projection mgl.Mat4) {
			s.Projection.Set(projection)
			s.FillColor.Set(fill)
			s.StrokeColor.Set(stroke)
		},
		Buffer: rects.Get,
		Watch:  []Subscribable{rects},
		ZIndex: zIndex,
	}
}

func (c *ArrangeViewCanvas) dispose() {
	for _, d := range c.computed {
		d.Dispose()
	}
	c.computed = nil
}

func (c *ArrangeViewCanvas) Close() {
	c.Surface.Close()
	c.dispose()
}
