package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

type KeyHandler func(key string) bool

func CreateKeyHandler(f func()) KeyHandler {
	return func(key string) bool {
		f()
		return true
	}
}

type KeyMap map[string]KeyHandler

func CreateKeyMap() KeyMap {
	return KeyMap{}
}

func (km KeyMap) HandleKey(key string) bool {
	if handler, ok := km[key]; ok {
		return handler(key)
	}
	return false
}

func (km KeyMap) Bind(key string, f func()) {
	km[key] = CreateKeyHandler(f)
}

var namedKeys = map[glfw.Key]string{
	glfw.KeySpace:     "Space",
	glfw.KeyEscape:    "Escape",
	glfw.KeyEnter:     "Enter",
	glfw.KeyTab:       "Tab",
	glfw.KeyBackspace: "Backspace",
	glfw.KeyDelete:    "Delete",
	glfw.KeyRight:     "Right",
	glfw.KeyLeft:      "Left",
	glfw.KeyDown:      "Down",
	glfw.KeyUp:        "Up",
	glfw.KeyPageUp:    "PageUp",
	glfw.KeyPageDown:  "PageDown",
	glfw.KeyHome:      "Home",
	glfw.KeyEnd:       "End",
	glfw.KeyF1:        "F1",
	glfw.KeyF2:        "F2",
}

// KeyName renders a key event as "C-M-S-name". It returns "" for bare
// modifier keys and keys without a name.
func KeyName(key glfw.Key, scancode int, mods glfw.ModifierKey) string {
	switch key {
	case glfw.KeyLeftShift, glfw.KeyLeftControl, glfw.KeyLeftAlt, glfw.KeyLeftSuper:
		return ""
	case glfw.KeyRightShift, glfw.KeyRightControl, glfw.KeyRightAlt, glfw.KeyRightSuper:
		return ""
	}
	name, ok := namedKeys[key]
	if !ok {
		name = glfw.GetKeyName(key, scancode)
	}
	if name == "" {
		return ""
	}
	if mods&glfw.ModShift != 0 {
		name = "S-" + name
	}
	if mods&glfw.ModAlt != 0 {
		name = "M-" + name
	}
	if mods&glfw.ModControl != 0 {
		name = "C-" + name
	}
	return name
}
