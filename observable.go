package main

// Subscribable notifies listeners synchronously when its value changes.
type Subscribable interface {
	Subscribe(listener func()) (unsubscribe func())
}

// Source is a readable Subscribable.
type Source[T any] interface {
	Subscribable
	Get() T
}

type listener struct {
	fn     func()
	active bool
}

type listenerSet struct {
	entries []*listener
}

func (s *listenerSet) add(fn func()) func() {
	l := &listener{fn: fn, active: true}
	s.entries = append(s.entries, l)
	return func() {
		if !l.active {
			return
		}
		l.active = false
		for i, e := range s.entries {
			if e == l {
				s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
				break
			}
		}
	}
}

// notify calls listeners in subscription order. A listener removed by an
// earlier one in the same round is not called.
func (s *listenerSet) notify() {
	entries := append([]*listener(nil), s.entries...)
	for _, l := range entries {
		if l.active {
			l.fn()
		}
	}
}

func (s *listenerSet) len() int {
	return len(s.entries)
}

// Observable is a mutable value owned by a store.
type Observable[T any] struct {
	value     T
	equal     func(a, b T) bool
	listeners listenerSet
}

func NewObservable[T comparable](value T) *Observable[T] {
	return NewObservableFunc(value, func(a, b T) bool { return a == b })
}

// NewObservableSlice compares slices by reference, not by contents.
func NewObservableSlice[T any](value []T) *Observable[[]T] {
	return NewObservableFunc(value, sameSlice[T])
}

func NewObservableFunc[T any](value T, equal func(a, b T) bool) *Observable[T] {
	return &Observable[T]{value: value, equal: equal}
}

func (o *Observable[T]) Get() T {
	return o.value
}

func (o *Observable[T]) Set(value T) {
	if o.equal(o.value, value) {
		return
	}
	o.value = value
	o.listeners.notify()
}

func (o *Observable[T]) Subscribe(fn func()) func() {
	return o.listeners.add(fn)
}

// Computed caches a value derived from explicit dependencies and
// recomputes it lazily after any of them changed.
type Computed[T any] struct {
	compute     func() T
	value       T
	stale       bool
	unsubscribe []func()
	listeners   listenerSet
}

func NewComputed[T any](compute func() T, deps ...Subscribable) *Computed[T] {
	c := &Computed[T]{compute: compute, stale: true}
	for _, dep := range deps {
		c.unsubscribe = append(c.unsubscribe, dep.Subscribe(c.invalidate))
	}
	return c
}

func (c *Computed[T]) invalidate() {
	c.stale = true
	c.listeners.notify()
}

func (c *Computed[T]) Get() T {
	if c.stale {
		c.value = c.compute()
		c.stale = false
	}
	return c.value
}

func (c *Computed[T]) Subscribe(fn func()) func() {
	return c.listeners.add(fn)
}

// Dispose detaches c from its dependencies.
func (c *Computed[T]) Dispose() {
	for _, unsubscribe := range c.unsubscribe {
		unsubscribe()
	}
	c.unsubscribe = nil
}
