package opengl

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window owns the glfw window and its OpenGL 2.1 compatibility context
type Window struct {
	window *glfw.Window

	// Callbacks, set by the caller before the main loop
	OnResize          func(width, height int)
	OnToggleWireframe func()
}

// NewWindow creates a window and makes its context current on the calling thread
func NewWindow(width, height int, title string, vsync bool) (*Window, error) {
	runtime.LockOSThread()

	// Initialize GLFW
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Fixed-function pipeline needs a legacy context
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	window.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{window: window}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.OnResize != nil {
			w.OnResize(width, height)
		}
	})

	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		w.onKey(key, action)
	})

	return w, nil
}

func (w *Window) onKey(key glfw.Key, action glfw.Action) {
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape:
		w.window.SetShouldClose(true)
	case glfw.KeyW:
		if w.OnToggleWireframe != nil {
			w.OnToggleWireframe()
		}
	}
}

// FramebufferSize returns the drawable size in pixels
func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// ShouldClose returns true if the window should close
func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

// PollEvents processes pending window events
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// SwapBuffers presents the rendered frame
func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

// Terminate destroys the window and shuts glfw down
func (w *Window) Terminate() {
	w.window.Destroy()
	glfw.Terminate()
}
