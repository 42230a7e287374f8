//go:build !tinygo && cgo

package glgl

import (
	"errors"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// Framebuffer is an off-screen render target backing the headless path of
// a fragment kernel: a color texture attached to a framebuffer object, so
// a full-screen-triangle draw call can be read back with GetImage without
// ever presenting to a window.
type Framebuffer struct {
	rid uint32
	tex Texture
}

// NewFramebuffer attaches tex's color plane to a new framebuffer object
// and validates its completeness.
func NewFramebuffer(tex Texture) (Framebuffer, error) {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, tex.target, tex.rid, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return Framebuffer{}, errors.New("framebuffer incomplete")
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return Framebuffer{rid: fbo, tex: tex}, nil
}

// Bind makes fb the active draw target and sets the GL viewport to cover
// its attached texture.
func (fb Framebuffer) Bind(width, height int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.rid)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Unbind restores the default (window) framebuffer as the draw target.
func (fb Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Texture returns the color texture fb renders into.
func (fb Framebuffer) Texture() Texture { return fb.tex }

// Delete releases the framebuffer object. The attached texture is not
// deleted; it outlives the framebuffer by design since GetImage reads it.
func (fb Framebuffer) Delete() {
	gl.DeleteFramebuffers(1, &fb.rid)
}

// DrawFullScreenTriangle issues the 3-vertex, no-buffer draw call a
// FragmentKernel2D's vertex stage expects (gl_VertexID trick, spec.md
// §4.3). It reads no vertex attributes, but the core profile still needs a
// vertex array bound before the call.
func DrawFullScreenTriangle() {
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}
