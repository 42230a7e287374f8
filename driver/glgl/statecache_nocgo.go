//go:build tinygo || !cgo

package glgl

type GLStateCache struct{}

func NewGLStateCache() *GLStateCache { return &GLStateCache{} }

func (c *GLStateCache) BindProgram(p Program) {}
func (c *GLStateCache) BindStorageBuffer(binding, handle uint32) {}
func (c *GLStateCache) BindImageUnit(unit, handle uint32, glslFormat string, readOnly, writeOnly bool) {}
func (c *GLStateCache) BindSamplerUnit(unit, handle uint32) {}
func (c *GLStateCache) Reset() {}
