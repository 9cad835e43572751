package main

// RenderProperty holds a value and remembers whether it changed since the
// last time a draw consumed it.
type RenderProperty[T any] struct {
	value T
	equal func(a, b T) bool
	dirty bool
}

// NewRenderProperty compares values with ==.
func NewRenderProperty[T comparable](value T) *RenderProperty[T] {
	return NewRenderPropertyFunc(value, func(a, b T) bool { return a == b })
}

func NewRenderPropertyFunc[T any](value T, equal func(a, b T) bool) *RenderProperty[T] {
	return &RenderProperty[T]{value: value, equal: equal}
}

func (p *RenderProperty[T]) Get() T {
	return p.value
}

func (p *RenderProperty[T]) Set(value T) {
	if p.equal(p.value, value) {
		return
	}
	p.value = value
	p.dirty = true
}

func (p *RenderProperty[T]) IsDirty() bool {
	return p.dirty
}

func (p *RenderProperty[T]) ClearDirty() {
	p.dirty = false
}

// Invalidate forces the next Consume to report a change.
func (p *RenderProperty[T]) Invalidate() {
	p.dirty = true
}

// Consume returns the value and whether it was dirty, clearing the flag.
func (p *RenderProperty[T]) Consume() (T, bool) {
	dirty := p.dirty
	p.dirty = false
	return p.value, dirty
}
