//go:build tinygo || !cgo

package kernel

import "errors"

// WindowAttachment is a no-op placeholder on builds without cgo/GLFW
// available; NewWindowAttachment always fails on these builds.
type WindowAttachment struct{}

func NewWindowAttachment(title string, width, height int) (*WindowAttachment, error) {
	return nil, errors.New("kernel: window attachment needs cgo")
}

func (w *WindowAttachment) ShouldClose() bool { return true }
func (w *WindowAttachment) PollEvents()       {}
func (w *WindowAttachment) SwapBuffers()      {}
func (w *WindowAttachment) Close()            {}
