//go:build tinygo || !cgo

package glgl

type Framebuffer struct{}

func (fb Framebuffer) Bind(width, height int) {}
func (fb Framebuffer) Unbind()                {}
func (fb Framebuffer) Delete()                {}

func DrawFullScreenTriangle() {}
