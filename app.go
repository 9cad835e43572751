package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type App struct {
	cfg    Config
	theme  Theme
	width  float32
	window *glfw.Window
	dev    Device
	log    *slog.Logger

	song         *Song
	arrangeStore *ArrangeViewStore
	pianoStore   *PianoRollStore

	viewName     string
	arrange      *ArrangeViewCanvas
	pianoRoll    *PianoRollRenderer
	pianoPending bool
	viewUnsubs   []func()

	globalKeyMap KeyMap
	viewKeyMaps  map[string]KeyMap
	history      History
	shouldExit   bool
}

func CreateApp(cfg Config, theme Theme, song *Song) *App {
	arrangeStore := NewArrangeViewStore(song, cfg.Arrange)
	return &App{
		cfg:          cfg,
		theme:        theme,
		width:        float32(cfg.Window.Width),
		log:          componentLogger("app"),
		song:         song,
		arrangeStore: arrangeStore,
		pianoStore: NewPianoRollStore(song, arrangeStore.SelectedTrack,
			cfg.PianoRoll.KeyHeight, cfg.PianoRoll.PixelsPerBeat),
	}
}

func (app *App) Init(window *glfw.Window) error {
	app.window = window
	app.dev = NewGLDevice(window)
	return app.start()
}

func (app *App) start() error {
	step := app.cfg.Arrange.ScrollStep
	globalKeyMap := CreateKeyMap()
	globalKeyMap.Bind("C-q", app.Quit)
	globalKeyMap.Bind("C-z", func() { app.history.Undo() })
	globalKeyMap.Bind("F1", func() { app.selectViewOrLog("arrange") })
	globalKeyMap.Bind("F2", func() { app.selectViewOrLog("pianoroll") })
	globalKeyMap.Bind("Tab", func() { app.selectTrack(1) })
	globalKeyMap.Bind("S-Tab", func() { app.selectTrack(-1) })
	app.globalKeyMap = globalKeyMap

	a := app.arrangeStore
	arrangeKeyMap := CreateKeyMap()
	arrangeKeyMap.Bind("Right", func() { app.scroll(a.ScrollState, step, 0) })
	arrangeKeyMap.Bind("Left", func() { app.scroll(a.ScrollState, -step, 0) })
	arrangeKeyMap.Bind("Down", func() { app.scroll(a.ScrollState, 0, a.TrackHeight.Get()) })
	arrangeKeyMap.Bind("Up", func() { app.scroll(a.ScrollState, 0, -a.TrackHeight.Get()) })
	arrangeKeyMap.Bind("Home", func() { app.scrollHome(a.ScrollState) })
	arrangeKeyMap.Bind(".", func() { a.CursorX.Set(a.CursorX.Get() + a.PixelsPerBeat) })
	arrangeKeyMap.Bind(",", func() { a.CursorX.Set(max(a.CursorX.Get()-a.PixelsPerBeat, 0)) })
	arrangeKeyMap.Bind("C-a", app.selectTrackLane)
	arrangeKeyMap.Bind("Escape", func() {
		app.history.Dispatch(SetUndoable(a.SelectionRect, nil))
	})

	p := app.pianoStore
	pianoKeyMap := CreateKeyMap()
	pianoKeyMap.Bind("Right", func() { app.scroll(p.ScrollState, step, 0) })
	pianoKeyMap.Bind("Left", func() { app.scroll(p.ScrollState, -step, 0) })
	pianoKeyMap.Bind("Down", func() { app.scroll(p.ScrollState, 0, p.KeyHeight) })
	pianoKeyMap.Bind("Up", func() { app.scroll(p.ScrollState, 0, -p.KeyHeight) })
	pianoKeyMap.Bind("PageDown", func() { app.scroll(p.ScrollState, 0, 12*p.KeyHeight) })
	pianoKeyMap.Bind("PageUp", func() { app.scroll(p.ScrollState, 0, -12*p.KeyHeight) })
	pianoKeyMap.Bind("Home", func() { app.scrollHome(p.ScrollState) })

	app.viewKeyMaps = map[string]KeyMap{
		"arrange":   arrangeKeyMap,
		"pianoroll": pianoKeyMap,
	}
	return app.SelectView(app.cfg.View)
}

func (app *App) IsRunning() bool {
	return !app.shouldExit
}

func (app *App) Quit() {
	app.shouldExit = true
}

// scroll records the move so C-z can return to the previous position.
func (app *App) scroll(s ScrollState, dx, dy float32) {
	app.moveView(s, func() { s.ScrollBy(dx, dy) })
}

func (app *App) scrollHome(s ScrollState) {
	app.moveView(s, func() { s.ScrollTo(0, 0) })
}

func (app *App) moveView(s ScrollState, move func()) {
	app.history.Dispatch(func() UndoFunc {
		prevX, prevY := s.Position()
		move()
		if x, y := s.Position(); x == prevX && y == prevY {
			return nil
		}
		return func() { s.ScrollTo(prevX, prevY) }
	})
}

func (app *App) selectTrack(delta int) {
	n := len(app.song.Tracks.Get())
	if n == 0 {
		return
	}
	index := (app.arrangeStore.SelectedTrack.Get() + delta + n) % n
	app.history.Dispatch(SetUndoable(app.arrangeStore.SelectedTrack, index))
}

func (app *App) selectTrackLane() {
	r := app.arrangeStore.TrackRect(app.arrangeStore.SelectedTrack.Get())
	app.history.Dispatch(SetUndoable(app.arrangeStore.SelectionRect, &r))
}

func (app *App) selectViewOrLog(name string) {
	if err := app.SelectView(name); err != nil {
		app.log.Error("select view failed", "view", name, "error", err)
	}
}

// SelectView tears the current renderer down before building the next
// one, since only one renderer may own the device.
func (app *App) SelectView(name string) error {
	if _, ok := app.viewKeyMaps[name]; !ok {
		return fmt.Errorf("unknown view: %s", name)
	}
	app.closeView()
	switch name {
	case "arrange":
		canvas, err := NewArrangeViewCanvas(app.dev, app.width, app.arrangeStore, app.theme)
		if err != nil {
			return err
		}
		app.arrange = canvas
		app.viewUnsubs = append(app.viewUnsubs, canvas.Height.Subscribe(app.resizeWindow))
		app.resizeWindow()
	case "pianoroll":
		r, err := NewPianoRollRenderer(app.dev, app.theme)
		if err != nil {
			return err
		}
		app.pianoRoll = r
		p := app.pianoStore
		for _, dep := range []Subscribable{p.Notes, p.ScrollLeft, p.ScrollTop} {
			app.viewUnsubs = append(app.viewUnsubs, dep.Subscribe(app.invalidatePianoRoll))
		}
		app.pianoPending = true
	}
	app.viewName = name
	app.log.Info("view selected", "view", name)
	return nil
}

func (app *App) closeView() {
	for _, unsubscribe := range app.viewUnsubs {
		unsubscribe()
	}
	app.viewUnsubs = nil
	if app.arrange != nil {
		app.arrange.Close()
		app.arrange = nil
	}
	if app.pianoRoll != nil {
		app.pianoRoll.Close()
		app.pianoRoll = nil
	}
	app.pianoPending = false
}

func (app *App) invalidatePianoRoll() {
	app.pianoPending = true
}

func (app *App) resizeWindow() {
	if app.window == nil || app.arrange == nil {
		return
	}
	width, _ := app.window.GetSize()
	height := max(int(app.arrange.Height.Get()), 1)
	app.window.SetSize(width, height)
}

func (app *App) OnKey(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	name := KeyName(key, scancode, mods)
	if name == "" {
		return
	}
	app.HandleKey(name)
}

func (app *App) HandleKey(key string) bool {
	if km, ok := app.viewKeyMaps[app.viewName]; ok && km.HandleKey(key) {
		return true
	}
	return app.globalKeyMap.HandleKey(key)
}

func (app *App) OnFramebufferSize(width, height int) {
	app.log.Debug("OnFramebufferSize", "width", width, "height", height)
	app.width = float32(width)
	if app.arrange != nil {
		app.arrange.Width.Set(app.width)
		app.arrange.Invalidate()
	}
	app.pianoPending = true
}

func (app *App) NeedsRender() bool {
	if app.arrange != nil {
		return app.arrange.Pending()
	}
	return app.pianoRoll != nil && app.pianoPending
}

// Render draws the current view. After a device failure the view is
// rebuilt once; a lost window context is returned to the caller.
func (app *App) Render() error {
	err := app.render()
	if err == nil || !errors.Is(err, ErrDeviceUnavailable) || app.dev.Lost() {
		return err
	}
	app.log.Warn("recreating view after device failure", "view", app.viewName, "error", err)
	if err := app.SelectView(app.viewName); err != nil {
		return err
	}
	return app.render()
}

func (app *App) render() error {
	switch {
	case app.arrange != nil:
		return app.arrange.Commit()
	case app.pianoRoll != nil:
		p := app.pianoStore
		app.pianoPending = false
		app.pianoRoll.SetScroll(p.ScrollLeft.Get(), p.ScrollTop.Get())
		return app.pianoRoll.Render(p.Notes.Get())
	}
	return nil
}

func (app *App) Update() error {
	return nil
}

func (app *App) Close() {
	app.log.Debug("Close")
	app.closeView()
	if dev, ok := app.dev.(*glDevice); ok {
		dev.Lose()
	}
}
