package main

import (
	"errors"

	mgl "github.com/go-gl/mathgl/mgl32"
)

// PianoRollRenderer draws the key grid and the notes of one track without
// a scene graph, for callers that drive rendering themselves.
type PianoRollRenderer struct {
	dev      Device
	theme    Theme
	viewSize *RenderProperty[Size]
	scroll   mgl.Vec2

	noteShader *NoteShader
	noteBuffer *GeometryBuffer[NoteRect]
	gridShader *GridShader
	gridBuffer *GeometryBuffer[Rect]
	gridRects  []Rect

	claimed bool
	closed  bool
	err     error
}

func NewPianoRollRenderer(dev Device, theme Theme) (*PianoRollRenderer, error) {
	if err := checkDevice(dev, "create piano roll"); err != nil {
		return nil, err
	}
	if err := claimDevice(dev, "piano roll"); err != nil {
		return nil, err
	}
	r := &PianoRollRenderer{
		dev:      dev,
		theme:    theme,
		viewSize: NewRenderProperty(Size{}),
		claimed:  true,
	}
	if err := r.setup(); err != nil {
		r.Close()
		return nil, err
	}
	return r, nil
}

func (r *PianoRollRenderer) setup() error {
	var err error
	if r.noteShader, err = NewNoteShader(r.dev); err != nil {
		return err
	}
	if r.noteBuffer, err = NewNoteBuffer(r.dev); err != nil {
		return err
	}
	if r.gridShader, err = NewGridShader(r.dev); err != nil {
		return err
	}
	if r.gridBuffer, err = NewPositionBuffer(r.dev); err != nil {
		return err
	}
	return r.Render(nil)
}

// SetScroll moves the view. The grid only follows the vertical offset.
func (r *PianoRollRenderer) SetScroll(left, top float32) {
	r.scroll = mgl.Vec2{left, top}
}

// Render draws one frame with notes as the note layer's contents.
func (r *PianoRollRenderer) Render(notes []NoteRect) error {
	if r.closed {
		return &DeviceUnavailableError{Op: "render closed piano roll"}
	}
	if r.err != nil {
		return r.err
	}
	if err := r.render(notes); err != nil {
		if errors.Is(err, ErrDeviceUnavailable) {
			logger.Warn("piano roll failed", "error", err)
			r.err = err
		}
		return err
	}
	return nil
}

func (r *PianoRollRenderer) render(notes []NoteRect) error {
	dev := r.dev
	if err := checkDevice(dev, "render piano roll"); err != nil {
		return err
	}
	projection := r.preDraw()

	r.gridShader.Projection.Set(Multiply(projection, Translation(0, -r.scroll.Y())))
	r.gridShader.Color.Set(r.theme.PianoGrid)
	r.gridShader.Height.Set(r.theme.KeyHeight)
	if _, err := r.gridBuffer.Update(dev, r.gridRects); err != nil {
		return err
	}
	if err := r.gridShader.Draw(dev, r.gridBuffer); err != nil {
		return err
	}

	r.noteShader.Projection.Set(Multiply(projection, Translation(-r.scroll.X(), -r.scroll.Y())))
	r.noteShader.FillColor.Set(r.theme.PianoNoteFill)
	r.noteShader.StrokeColor.Set(r.theme.PianoNoteStroke)
	if _, err := r.noteBuffer.Update(dev, notes); err != nil {
		return err
	}
	return r.noteShader.Draw(dev, r.noteBuffer)
}

func (r *PianoRollRenderer) preDraw() mgl.Mat4 {
	dev := r.dev
	r.viewSize.Set(dev.SurfaceSize())
	if size, dirty := r.viewSize.Consume(); dirty {
		dev.Viewport(0, 0, size.X, size.Y)
		r.gridRects = []Rect{{
			Width:  float32(size.X),
			Height: keyCount * r.theme.KeyHeight,
		}}
	}
	dev.Clear(r.theme.Background, 1)
	return Projection(r.viewSize.Get())
}

func (r *PianoRollRenderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	if r.gridBuffer != nil {
		r.gridBuffer.Release(r.dev)
	}
	if r.gridShader != nil {
		r.gridShader.Release(r.dev)
	}
	if r.noteBuffer != nil {
		r.noteBuffer.Release(r.dev)
	}
	if r.noteShader != nil {
		r.noteShader.Release(r.dev)
	}
	if r.claimed {
		releaseDevice(r.dev)
	}
}
