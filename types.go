package main

import (
	"image"
	"unsafe"
)

type Size = image.Point

// Rect is an axis-aligned rectangle in content pixels.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

func (r Rect) Right() float32 {
	return r.X + r.Width
}

func (r Rect) Bottom() float32 {
	return r.Y + r.Height
}

// NoteRect is a note rectangle decorated for the note layer.
type NoteRect struct {
	Rect
	Velocity int
	Selected bool
}

// Beat is a ruler position exposed by the arrange view store.
type Beat struct {
	X   float32
	Bar bool
}

// BeatLine is a beat marker spanning the canvas height.
type BeatLine struct {
	X      float32
	Height float32
	Bar    bool
}

// sameSlice reports whether a and b share a backing array and length.
func sameSlice[T any](a, b []T) bool {
	return len(a) == len(b) && unsafe.SliceData(a) == unsafe.SliceData(b)
}

func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}
