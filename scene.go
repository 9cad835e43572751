package main

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	mgl "github.com/go-gl/mathgl/mgl32"
)

var ErrDeviceInUse = errors.New("device already has a renderer")

// deviceOwners keeps one renderer per device.
var deviceOwners = map[Device]string{}

func claimDevice(dev Device, owner string) error {
	if current, ok := deviceOwners[dev]; ok {
		return fmt.Errorf("%s: %w (%s)", owner, ErrDeviceInUse, current)
	}
	deviceOwners[dev] = owner
	return nil
}

func releaseDevice(dev Device) {
	delete(deviceOwners, dev)
}

// Element is a mountable part of a scene graph.
type Element interface {
	mount(s *Surface) error
	collect(items []drawItem, transform mgl.Mat4) []drawItem
	unmount(dev Device)
}

type layer interface {
	render(dev Device, projection mgl.Mat4) error
	layerName() string
}

type drawItem struct {
	layer     layer
	zIndex    int
	transform mgl.Mat4
}

// GLNode binds a shader and a geometry buffer to the state it draws.
type GLNode[S Shader, R any] struct {
	Name         string
	CreateShader func(Device) (S, error)
	CreateBuffer func(Device) (*GeometryBuffer[R], error)
	// Uniforms receives the projection already multiplied by the
	// enclosing transforms.
	Uniforms func(shader S, projection mgl.Mat4)
	Buffer   func() []R
	Watch    []Subscribable
	ZIndex   int

	shader      S
	buffer      *GeometryBuffer[R]
	unsubscribe []func()
	mounted     bool
}

func (n *GLNode[S, R]) mount(s *Surface) error {
	shader, err := n.CreateShader(s.dev)
	if err != nil {
		return fmt.Errorf("mount %s: %w", n.Name, err)
	}
	buffer, err := n.CreateBuffer(s.dev)
	if err != nil {
		shader.Release(s.dev)
		return fmt.Errorf("mount %s: %w", n.Name, err)
	}
	n.shader = shader
	n.buffer = buffer
	for _, dep := range n.Watch {
		n.unsubscribe = append(n.unsubscribe, dep.Subscribe(s.Invalidate))
	}
	n.mounted = true
	s.log.Debug("node mounted", "node", n.Name)
	return nil
}

func (n *GLNode[S, R]) collect(items []drawItem, transform mgl.Mat4) []drawItem {
	if !n.mounted {
		return items
	}
	return append(items, drawItem{layer: n, zIndex: n.ZIndex, transform: transform})
}

func (n *GLNode[S, R]) render(dev Device, projection mgl.Mat4) error {
	if _, err := n.buffer.Update(dev, n.Buffer()); err != nil {
		return err
	}
	n.Uniforms(n.shader, projection)
	return n.shader.Draw(dev, n.buffer)
}

func (n *GLNode[S, R]) layerName() string {
	return n.Name
}

func (n *GLNode[S, R]) unmount(dev Device) {
	if !n.mounted {
		return
	}
	for _, unsubscribe := range n.unsubscribe {
		unsubscribe()
	}
	n.unsubscribe = nil
	n.buffer.Release(dev)
	n.shader.Release(dev)
	n.buffer = nil
	var zero S
	n.shader = zero
	n.mounted = false
}

// Transform multiplies Matrix into the transform of all its children.
// A nil Matrix makes it a plain group.
type Transform struct {
	Matrix   func() mgl.Mat4
	Watch    []Subscribable
	Children []Element

	unsubscribe []func()
	mounted     []Element
}

func Group(children ...Element) *Transform {
	return &Transform{Children: children}
}

func (t *Transform) mount(s *Surface) error {
	for _, child := range t.Children {
		if err := child.mount(s); err != nil {
			t.unmount(s.dev)
			return err
		}
		t.mounted = append(t.mounted, child)
	}
	for _, dep := range t.Watch {
		t.unsubscribe = append(t.unsubscribe, dep.Subscribe(s.Invalidate))
	}
	return nil
}

func (t *Transform) collect(items []drawItem, transform mgl.Mat4) []drawItem {
	if t.Matrix != nil {
		transform = Multiply(transform, t.Matrix())
	}
	for _, child := range t.mounted {
		items = child.collect(items, transform)
	}
	return items
}

func (t *Transform) unmount(dev Device) {
	for _, unsubscribe := range t.unsubscribe {
		unsubscribe()
	}
	t.unsubscribe = nil
	for i := len(t.mounted) - 1; i >= 0; i-- {
		t.mounted[i].unmount(dev)
	}
	t.mounted = nil
}

// Surface owns a device and renders a scene graph into it whenever the
// state the graph watches has changed.
type Surface struct {
	ClearColor mgl.Vec4

	dev      Device
	root     *Transform
	viewSize *RenderProperty[Size]
	pending  bool
	closed   bool
	err      error
	items    []drawItem
	log      *slog.Logger
}

// NewSurface mounts children in order. If any of them fails, everything
// mounted so far is released again.
func NewSurface(dev Device, clearColor mgl.Vec4, children ...Element) (*Surface, error) {
	if err := checkDevice(dev, "create surface"); err != nil {
		return nil, err
	}
	if err := claimDevice(dev, "surface"); err != nil {
		return nil, err
	}
	s := &Surface{
		ClearColor: clearColor,
		dev:        dev,
		root:       Group(children...),
		viewSize:   NewRenderProperty(Size{}),
		log:        componentLogger("surface"),
	}
	if err := s.root.mount(s); err != nil {
		releaseDevice(dev)
		return nil, err
	}
	s.pending = true
	return s, nil
}

// Invalidate schedules a render on the next Commit.
func (s *Surface) Invalidate() {
	if !s.closed {
		s.pending = true
	}
}

func (s *Surface) Pending() bool {
	return s.pending
}

// Commit renders if anything changed since the last render. Changes made
// in between coalesce into one frame drawn from the latest state.
func (s *Surface) Commit() error {
	if !s.pending {
		return nil
	}
	return s.Render()
}

func (s *Surface) Render() error {
	if s.closed {
		return &DeviceUnavailableError{Op: "render closed surface"}
	}
	if s.err != nil {
		return s.err
	}
	if err := checkDevice(s.dev, "render"); err != nil {
		return s.fail(err)
	}
	s.pending = false
	s.viewSize.Set(s.dev.SurfaceSize())
	if size, dirty := s.viewSize.Consume(); dirty {
		s.dev.Viewport(0, 0, size.X, size.Y)
		s.log.Debug("viewport changed", "width", size.X, "height", size.Y)
	}
	projection := Projection(s.viewSize.Get())
	s.dev.Clear(s.ClearColor, 1)
	s.items = s.root.collect(s.items[:0], Identity())
	slices.SortStableFunc(s.items, func(a, b drawItem) int {
		return cmp.Compare(a.zIndex, b.zIndex)
	})
	for _, item := range s.items {
		if err := item.layer.render(s.dev, Multiply(projection, item.transform)); err != nil {
			err = fmt.Errorf("layer %s: %w", item.layer.layerName(), err)
			if errors.Is(err, ErrDeviceUnavailable) {
				return s.fail(err)
			}
			return err
		}
	}
	return nil
}

func (s *Surface) fail(err error) error {
	s.log.Warn("surface failed", "error", err)
	s.err = err
	return err
}

// Close unmounts the scene graph and gives up the device.
func (s *Surface) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.pending = false
	s.root.unmount(s.dev)
	releaseDevice(s.dev)
}
