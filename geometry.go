package main

type VertexAttrib struct {
	Name string
	Size int
}

type VertexLayout struct {
	Attribs []VertexAttrib
}

// Stride is the number of floats per vertex.
func (l VertexLayout) Stride() int {
	stride := 0
	for _, a := range l.Attribs {
		stride += a.Size
	}
	return stride
}

// VertexBuffer is the device side of a geometry buffer as seen by Program.Draw.
type VertexBuffer interface {
	Layout() VertexLayout
	BufferID() uint32
	VertexCount() int
}

// VertexEncoder appends the vertices of records to dst.
type VertexEncoder[R any] func(dst []float32, records []R) []float32

// GeometryBuffer packs a record list into vertices and uploads them. It
// only rebuilds when handed a different slice than last time; mutating
// the previous slice in place is not detected. Empty slices may share a
// base pointer and count as the same slice, which skips nothing visible.
type GeometryBuffer[R any] struct {
	name     string
	layout   VertexLayout
	encode   VertexEncoder[R]
	buffer   uint32
	vertices []float32
	count    int
	last     []R
	updated  bool
	uploads  int
	released bool
}

func NewGeometryBuffer[R any](dev Device, name string, layout VertexLayout, encode VertexEncoder[R]) (*GeometryBuffer[R], error) {
	if err := checkDevice(dev, "create buffer "+name); err != nil {
		return nil, err
	}
	return &GeometryBuffer[R]{
		name:   name,
		layout: layout,
		encode: encode,
		buffer: dev.CreateBuffer(),
	}, nil
}

// Update rebuilds the vertex data from records and reports whether an
// upload happened.
func (b *GeometryBuffer[R]) Update(dev Device, records []R) (bool, error) {
	if b.released {
		return false, &DeviceUnavailableError{Op: "update " + b.name}
	}
	if b.updated && sameSlice(b.last, records) {
		return false, nil
	}
	if err := checkDevice(dev, "update "+b.name); err != nil {
		return false, err
	}
	b.vertices = b.encode(b.vertices[:0], records)
	b.count = len(b.vertices) / b.layout.Stride()
	dev.BufferData(b.buffer, b.vertices)
	b.last = records
	b.updated = true
	b.uploads++
	logger.Debug("buffer uploaded", "buffer", b.name, "records", len(records), "vertices", b.count)
	return true, nil
}

func (b *GeometryBuffer[R]) Layout() VertexLayout {
	return b.layout
}

func (b *GeometryBuffer[R]) BufferID() uint32 {
	return b.buffer
}

func (b *GeometryBuffer[R]) VertexCount() int {
	return b.count
}

// Vertices returns the packed data of the last upload.
func (b *GeometryBuffer[R]) Vertices() []float32 {
	return b.vertices
}

func (b *GeometryBuffer[R]) Uploads() int {
	return b.uploads
}

func (b *GeometryBuffer[R]) Release(dev Device) {
	if b.released {
		return
	}
	b.released = true
	b.last = nil
	if dev == nil || dev.Lost() {
		return
	}
	dev.DeleteBuffer(b.buffer)
}

// appendQuad emits two triangles covering r, each vertex followed by extra.
func appendQuad(dst []float32, r Rect, extra ...float32) []float32 {
	x0, y0 := r.X, r.Y
	x1, y1 := r.Right(), r.Bottom()
	for _, p := range [6][2]float32{
		{x0, y0}, {x0, y1}, {x1, y1},
		{x1, y1}, {x1, y0}, {x0, y0},
	} {
		dst = append(dst, p[0], p[1])
		dst = append(dst, extra...)
	}
	return dst
}

var (
	positionLayout = VertexLayout{Attribs: []VertexAttrib{
		{Name: "a_position", Size: 2},
	}}
	rectLayout = VertexLayout{Attribs: []VertexAttrib{
		{Name: "a_position", Size: 2},
		{Name: "a_bounds", Size: 4},
	}}
	noteLayout = VertexLayout{Attribs: []VertexAttrib{
		{Name: "a_position", Size: 2},
		{Name: "a_bounds", Size: 4},
		{Name: "a_state", Size: 2},
	}}
	beatLayout = VertexLayout{Attribs: []VertexAttrib{
		{Name: "a_position", Size: 2},
		{Name: "a_bar", Size: 1},
	}}
)

func NewPositionBuffer(dev Device) (*GeometryBuffer[Rect], error) {
	return NewGeometryBuffer[Rect](dev, "position", positionLayout, func(dst []float32, rects []Rect) []float32 {
		for _, r := range rects {
			dst = appendQuad(dst, r)
		}
		return dst
	})
}

func NewRectBuffer(dev Device) (*GeometryBuffer[Rect], error) {
	return NewGeometryBuffer[Rect](dev, "rect", rectLayout, func(dst []float32, rects []Rect) []float32 {
		for _, r := range rects {
			dst = appendQuad(dst, r, r.X, r.Y, r.Width, r.Height)
		}
		return dst
	})
}

const maxVelocity = 127

func NewNoteBuffer(dev Device) (*GeometryBuffer[NoteRect], error) {
	return NewGeometryBuffer[NoteRect](dev, "note", noteLayout, func(dst []float32, notes []NoteRect) []float32 {
		for _, n := range notes {
			selected := float32(0)
			if n.Selected {
				selected = 1
			}
			velocity := float32(n.Velocity) / maxVelocity
			dst = appendQuad(dst, n.Rect, n.X, n.Y, n.Width, n.Height, velocity, selected)
		}
		return dst
	})
}

const beatLineWidth = 1

func NewBeatBuffer(dev Device) (*GeometryBuffer[BeatLine], error) {
	return NewGeometryBuffer[BeatLine](dev, "beat", beatLayout, func(dst []float32, beats []BeatLine) []float32 {
		for _, b := range beats {
			bar := float32(0)
			if b.Bar {
				bar = 1
			}
			dst = appendQuad(dst, Rect{X: b.X, Width: beatLineWidth, Height: b.Height}, bar)
		}
		return dst
	})
}
