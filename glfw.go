package main

import (
	"runtime"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// idleTimeout bounds how long the loop sleeps without events.
const idleTimeout = 0.5

func init() {
	runtime.LockOSThread()
}

type GlfwApp interface {
	Init(window *glfw.Window) error
	IsRunning() bool
	OnKey(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	OnFramebufferSize(width, height int)
	NeedsRender() bool
	Render() error
	Update() error
	Close()
}

// WithGL opens a GLES2 window and runs app until it stops. Rendering only
// happens when the app has pending changes.
func WithGL(windowTitle string, width, height int, app GlfwApp) error {
	err := glfw.Init()
	if err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	window, err := glfw.CreateWindow(width, height, windowTitle, nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		app.OnFramebufferSize(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		app.OnKey(key, scancode, action, mods)
	})
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return err
	}
	if err := app.Init(window); err != nil {
		return err
	}
	defer app.Close()
	for app.IsRunning() && !window.ShouldClose() {
		if app.NeedsRender() {
			if err := app.Render(); err != nil {
				return err
			}
			window.SwapBuffers()
		}
		glfw.WaitEventsTimeout(idleTimeout)
		if err := app.Update(); err != nil {
			return err
		}
	}
	return nil
}
