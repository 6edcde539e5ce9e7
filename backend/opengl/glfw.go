package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/glterm"
)

// Window adapts a GLFW window to glterm.Window. GLFW callbacks queue
// events that PollEvents hands out once per frame.
type Window struct {
	window *glfw.Window
	events []glterm.Event
}

// Backend opens a GLFW window with an OpenGL 4.1 core context and returns
// it with a renderer bound to that context. It is a glterm.Backend.
//
// GLFW must run on the main thread: call runtime.LockOSThread from an
// init function of package main.
func Backend(cfg glterm.WindowConfig) (glterm.Window, glterm.Graphics, error) {
	w, err := NewWindow(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := gl.Init(); err != nil {
		w.Destroy()
		return nil, nil, fmt.Errorf("gl init: %w", err)
	}
	version := gl.GoStr(gl.GetString(gl.VERSION))
	if !versionCompatible(version) {
		w.Destroy()
		return nil, nil, fmt.Errorf("GL version too low: OpenGL %s", version)
	}
	glterm.Logger().Debug("opengl context ready", "version", version)

	return w, NewRenderer(), nil
}

// NewWindow initializes GLFW and creates the window.
func NewWindow(cfg glterm.WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	w := &Window{window: win}
	win.SetCloseCallback(w.closeCallback)
	win.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	win.SetKeyCallback(w.keyCallback)
	return w, nil
}

// PollEvents processes pending GLFW events and returns those queued since
// the previous call.
func (w *Window) PollEvents() []glterm.Event {
	glfw.PollEvents()
	events := w.events
	w.events = nil
	return events
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

// SetTitle changes the window title.
func (w *Window) SetTitle(title string) {
	w.window.SetTitle(title)
}

// Show makes the window visible.
func (w *Window) Show() {
	w.window.Show()
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	w.window.Destroy()
	glfw.Terminate()
}

func (w *Window) closeCallback(_ *glfw.Window) {
	w.events = append(w.events, glterm.Event{Kind: glterm.EventClosed})
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	w.events = append(w.events, glterm.Event{Kind: glterm.EventResized, Width: width, Height: height})
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	k := glfwKeyToKey(key)
	if k == glterm.KeyNone {
		return
	}

	switch action {
	case glfw.Press, glfw.Repeat:
		w.events = append(w.events, glterm.Event{Kind: glterm.EventKey, Key: k, Pressed: true})
	case glfw.Release:
		w.events = append(w.events, glterm.Event{Kind: glterm.EventKey, Key: k, Pressed: false})
	}
}

// versionCompatible reports whether a GL_VERSION string is 3.3 or newer.
func versionCompatible(version string) bool {
	var major, minor int
	if _, err := fmt.Sscanf(strings.TrimSpace(version), "%d.%d", &major, &minor); err != nil {
		return false
	}
	return major > 3 || (major == 3 && minor >= 3)
}

// glfwKeyToKey maps GLFW keys to glterm keys.
func glfwKeyToKey(key glfw.Key) glterm.Key {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return glterm.KeyA + glterm.Key(key-glfw.KeyA)
	case key >= glfw.Key0 && key <= glfw.Key9:
		return glterm.Key0 + glterm.Key(key-glfw.Key0)
	case key >= glfw.KeyF1 && key <= glfw.KeyF12:
		return glterm.KeyF1 + glterm.Key(key-glfw.KeyF1)
	}

	switch key {
	case glfw.KeyTab:
		return glterm.KeyTab
	case glfw.KeyLeft:
		return glterm.KeyLeft
	case glfw.KeyRight:
		return glterm.KeyRight
	case glfw.KeyUp:
		return glterm.KeyUp
	case glfw.KeyDown:
		return glterm.KeyDown
	case glfw.KeyPageUp:
		return glterm.KeyPageUp
	case glfw.KeyPageDown:
		return glterm.KeyPageDown
	case glfw.KeyHome:
		return glterm.KeyHome
	case glfw.KeyEnd:
		return glterm.KeyEnd
	case glfw.KeyInsert:
		return glterm.KeyInsert
	case glfw.KeyDelete:
		return glterm.KeyDelete
	case glfw.KeyBackspace:
		return glterm.KeyBackspace
	case glfw.KeySpace:
		return glterm.KeySpace
	case glfw.KeyEnter:
		return glterm.KeyEnter
	case glfw.KeyEscape:
		return glterm.KeyEscape
	default:
		return glterm.KeyNone
	}
}
