package build

import "strconv"

// MainContext is the per-kernel mutable state described in spec.md §4.3: a
// statement stream, a fresh-name counter, struct/buffer/texture/uniform
// registries, runtime binding tables, and callable registries.
//
// MainContext is not safe for concurrent use — exactly one host thread
// authors a kernel at a time (spec.md §5).
type MainContext struct {
	statements []string
	varIndex   int

	structOrder []string
	structSrc   map[string]string

	nextBufferBinding uint32
	buffers           []BufferDecl
	runtimeBuffers    map[uint32]uint32

	nextTextureBinding uint32
	textures           []TextureDecl
	runtimeTextures    map[uint32]uint32

	nextUniform uint32
	uniforms    []UniformDecl

	callableStates      map[any]*CallableState
	callableDecls       []string
	callableGenerators  []func()
	callableBodies      []string
	callableBodyStack   [][]string // stack of in-progress body buffers
}

// NewMainContext returns an empty MainContext ready to receive emission
// from a fresh kernel authoring closure.
func NewMainContext() *MainContext {
	return &MainContext{
		structSrc:       map[string]string{},
		runtimeBuffers:  map[uint32]uint32{},
		runtimeTextures: map[uint32]uint32{},
		callableStates:  map[any]*CallableState{},
	}
}

func (c *MainContext) PushStatement(line string) {
	if n := len(c.callableBodyStack); n > 0 {
		c.callableBodyStack[n-1] = append(c.callableBodyStack[n-1], line)
		return
	}
	c.statements = append(c.statements, line)
}

// Statements returns the main entry-point statement stream collected so
// far, in host-call order.
func (c *MainContext) Statements() []string { return c.statements }

func (c *MainContext) FreshName() string {
	name := "v" + strconv.Itoa(c.varIndex)
	c.varIndex++
	return name
}

func (c *MainContext) HasStruct(name string) bool {
	_, ok := c.structSrc[name]
	return ok
}

func (c *MainContext) AddStruct(name, glslSource string) {
	if c.HasStruct(name) {
		return
	}
	c.structSrc[name] = glslSource
	c.structOrder = append(c.structOrder, name)
}

func (c *MainContext) Structs() []string {
	out := make([]string, len(c.structOrder))
	for i, name := range c.structOrder {
		out[i] = c.structSrc[name]
	}
	return out
}

func (c *MainContext) AllocateBufferBinding() uint32 {
	b := c.nextBufferBinding
	c.nextBufferBinding++
	return b
}

func (c *MainContext) RegisterBuffer(decl BufferDecl) {
	c.buffers = append(c.buffers, decl)
}

func (c *MainContext) BufferDecls() []BufferDecl { return c.buffers }

func (c *MainContext) BindRuntimeBuffer(binding uint32, handle uint32) {
	c.runtimeBuffers[binding] = handle
}

func (c *MainContext) RuntimeBuffers() map[uint32]uint32 { return c.runtimeBuffers }

func (c *MainContext) AllocateTextureBinding() uint32 {
	b := c.nextTextureBinding
	c.nextTextureBinding++
	return b
}

func (c *MainContext) RegisterTexture(decl TextureDecl) {
	c.textures = append(c.textures, decl)
}

func (c *MainContext) TextureDecls() []TextureDecl { return c.textures }

func (c *MainContext) BindRuntimeTexture(binding uint32, handle uint32) {
	c.runtimeTextures[binding] = handle
}

func (c *MainContext) RuntimeTextures() map[uint32]uint32 { return c.runtimeTextures }

func (c *MainContext) RegisterUniform(typeName string, hostPtr any, upload UniformUploader) string {
	name := "u" + strconv.FormatUint(uint64(c.nextUniform), 10)
	c.nextUniform++
	c.uniforms = append(c.uniforms, UniformDecl{
		TypeName:   typeName,
		ShaderName: name,
		HostPtr:    hostPtr,
		Upload:     upload,
	})
	return name
}

func (c *MainContext) UniformDecls() []UniformDecl { return c.uniforms }

func (c *MainContext) CallableState(identity any) *CallableState {
	st, ok := c.callableStates[identity]
	if !ok {
		st = &CallableState{}
		c.callableStates[identity] = st
	}
	return st
}

func (c *MainContext) AddCallableDeclaration(proto string) {
	c.callableDecls = append(c.callableDecls, proto)
}

func (c *MainContext) AddCallableBodyGenerator(gen func()) {
	c.callableGenerators = append(c.callableGenerators, gen)
}

func (c *MainContext) PushCallableBody() {
	c.callableBodyStack = append(c.callableBodyStack, nil)
}

func (c *MainContext) PopCallableBody() string {
	n := len(c.callableBodyStack)
	body := c.callableBodyStack[n-1]
	c.callableBodyStack = c.callableBodyStack[:n-1]
	out := ""
	for _, line := range body {
		out += line
	}
	return out
}

// GenerateCallableBodies runs every deferred body generator exactly once,
// including generators registered transitively by earlier generators
// (e.g. a callable that itself calls another callable for the first
// time). Iteration continues until the generator list is stable.
func (c *MainContext) GenerateCallableBodies() string {
	ran := 0
	for ran < len(c.callableGenerators) {
		gen := c.callableGenerators[ran]
		ran++
		gen()
	}
	out := ""
	for _, body := range c.callableBodies {
		out += body
	}
	return out
}

// AppendCallableBody records a fully-generated callable definition. Called
// by flow.Callable once PopCallableBody has produced the body text and
// wrapped it in a function signature.
func (c *MainContext) AppendCallableBody(def string) {
	c.callableBodies = append(c.callableBodies, def)
}

func (c *MainContext) CallableDeclarations() []string { return c.callableDecls }
