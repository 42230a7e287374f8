//go:build !tinygo && cgo

package kernel

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/shaderkit/gpudsl/driver/glgl"
)

// WindowAttachment wraps an on-screen GLFW window as an optional
// presentation target for a FragmentKernel2D, distinct from the default
// headless render-to-texture path (SPEC_FULL.md, grounded on the
// original's WindowAttachment.h). Dispatching against an attached window
// draws the full-screen triangle straight to the default framebuffer and
// swaps buffers instead of reading the result back to host memory.
type WindowAttachment struct {
	window    *glgl.Window
	terminate func()
}

// NewWindowAttachment opens a window sized width x height and returns a
// WindowAttachment ready to be passed to FragmentKernel2D.Dispatch.
func NewWindowAttachment(title string, width, height int) (*WindowAttachment, error) {
	window, terminate, err := glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:  title,
		Width:  width,
		Height: height,
	})
	if err != nil {
		return nil, err
	}
	return &WindowAttachment{window: window, terminate: terminate}, nil
}

// ShouldClose reports whether the user has requested the window close.
func (w *WindowAttachment) ShouldClose() bool { return w.window.ShouldClose() }

// PollEvents processes pending input/window events.
func (w *WindowAttachment) PollEvents() { glfw.PollEvents() }

// SwapBuffers presents the frame just rendered into the window.
func (w *WindowAttachment) SwapBuffers() { w.window.SwapBuffers() }

// Close terminates the window and its GLFW context.
func (w *WindowAttachment) Close() {
	if w.terminate != nil {
		w.terminate()
	}
}
