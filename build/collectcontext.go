package build

// CollectContext is a temporary Context that diverts emitted statement
// lines into a private buffer while a control-flow body closure runs,
// delegating every registration call (structs, buffers, textures,
// uniforms, callables, fresh names) to a parent Context. This is what lets
// variables declared inside an `If`/`For`/`While` body live only within
// that body while still promoting one-declaration-per-kernel invariants
// (struct/uniform/binding/callable registration) to the outer context.
//
// The typed value surface is oblivious to whether the active Context is a
// MainContext or a CollectContext.
type CollectContext struct {
	parent    Context
	collected []string
}

// NewCollectContext returns a CollectContext with no parent set; callers
// must call SetParent before any registration call is delegated.
func NewCollectContext() *CollectContext {
	return &CollectContext{}
}

// SetParent binds the context this collector delegates registrations to.
func (c *CollectContext) SetParent(parent Context) { c.parent = parent }

// Collected returns the statement lines accumulated so far, in emission
// order.
func (c *CollectContext) Collected() []string { return c.collected }

// Reset clears the collected statement buffer so the same CollectContext
// value can be reused for a second body capture.
func (c *CollectContext) Reset() { c.collected = nil }

func (c *CollectContext) PushStatement(line string) {
	c.collected = append(c.collected, line)
}

func (c *CollectContext) FreshName() string {
	if c.parent == nil {
		return ""
	}
	return c.parent.FreshName()
}

func (c *CollectContext) HasStruct(name string) bool {
	if c.parent == nil {
		return false
	}
	return c.parent.HasStruct(name)
}

func (c *CollectContext) AddStruct(name, glslSource string) {
	if c.parent != nil {
		c.parent.AddStruct(name, glslSource)
	}
}

func (c *CollectContext) Structs() []string {
	if c.parent == nil {
		return nil
	}
	return c.parent.Structs()
}

func (c *CollectContext) AllocateBufferBinding() uint32 {
	if c.parent == nil {
		return 0
	}
	return c.parent.AllocateBufferBinding()
}

func (c *CollectContext) RegisterBuffer(decl BufferDecl) {
	if c.parent != nil {
		c.parent.RegisterBuffer(decl)
	}
}

func (c *CollectContext) BufferDecls() []BufferDecl {
	if c.parent == nil {
		return nil
	}
	return c.parent.BufferDecls()
}

func (c *CollectContext) BindRuntimeBuffer(binding uint32, handle uint32) {
	if c.parent != nil {
		c.parent.BindRuntimeBuffer(binding, handle)
	}
}

func (c *CollectContext) RuntimeBuffers() map[uint32]uint32 {
	if c.parent == nil {
		return nil
	}
	return c.parent.RuntimeBuffers()
}

func (c *CollectContext) AllocateTextureBinding() uint32 {
	if c.parent == nil {
		return 0
	}
	return c.parent.AllocateTextureBinding()
}

func (c *CollectContext) RegisterTexture(decl TextureDecl) {
	if c.parent != nil {
		c.parent.RegisterTexture(decl)
	}
}

func (c *CollectContext) TextureDecls() []TextureDecl {
	if c.parent == nil {
		return nil
	}
	return c.parent.TextureDecls()
}

func (c *CollectContext) BindRuntimeTexture(binding uint32, handle uint32) {
	if c.parent != nil {
		c.parent.BindRuntimeTexture(binding, handle)
	}
}

func (c *CollectContext) RuntimeTextures() map[uint32]uint32 {
	if c.parent == nil {
		return nil
	}
	return c.parent.RuntimeTextures()
}

func (c *CollectContext) RegisterUniform(typeName string, hostPtr any, upload UniformUploader) string {
	if c.parent == nil {
		return ""
	}
	return c.parent.RegisterUniform(typeName, hostPtr, upload)
}

func (c *CollectContext) UniformDecls() []UniformDecl {
	if c.parent == nil {
		return nil
	}
	return c.parent.UniformDecls()
}

func (c *CollectContext) CallableState(identity any) *CallableState {
	if c.parent == nil {
		return &CallableState{}
	}
	return c.parent.CallableState(identity)
}

func (c *CollectContext) AddCallableDeclaration(proto string) {
	if c.parent != nil {
		c.parent.AddCallableDeclaration(proto)
	}
}

func (c *CollectContext) AddCallableBodyGenerator(gen func()) {
	if c.parent != nil {
		c.parent.AddCallableBodyGenerator(gen)
	}
}

func (c *CollectContext) PushCallableBody() {
	if c.parent != nil {
		c.parent.PushCallableBody()
	}
}

func (c *CollectContext) PopCallableBody() string {
	if c.parent == nil {
		return ""
	}
	return c.parent.PopCallableBody()
}

func (c *CollectContext) AppendCallableBody(def string) {
	if c.parent != nil {
		c.parent.AppendCallableBody(def)
	}
}

func (c *CollectContext) GenerateCallableBodies() string {
	if c.parent == nil {
		return ""
	}
	return c.parent.GenerateCallableBodies()
}

func (c *CollectContext) CallableDeclarations() []string {
	if c.parent == nil {
		return nil
	}
	return c.parent.CallableDeclarations()
}
