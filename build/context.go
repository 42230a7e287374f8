// Package build lowers ir.Node trees to GLSL source text against a
// per-kernel Context, and owns the per-kernel registries (structs,
// buffers, textures, uniforms, callables) that the typed value surface
// (package dsl) populates while a kernel's authoring closure runs.
package build

// CallableState tracks whether a Callable has been forward-declared and
// defined within one Context, keyed by the callable's identity.
type CallableState struct {
	Declared bool
	Defined  bool
}

// BufferAccess is the GLSL access qualifier recorded for a bound buffer.
type BufferAccess int

const (
	AccessReadOnly BufferAccess = iota
	AccessWriteOnly
	AccessReadWrite
)

// BufferDecl is one registered buffer's declaration metadata.
type BufferDecl struct {
	Binding  uint32
	TypeName string
	Name     string
	Access   BufferAccess
}

// TextureDecl is one registered texture's declaration metadata.
type TextureDecl struct {
	Binding    uint32
	PixelGLSL  string // GLSL image format qualifier, e.g. "rgba32f"
	Name       string
	Width      int
	Height     int
	ReadOnly   bool
	WriteOnly  bool
	IsSampler  bool // fragment path: declared as sampler2D, not image2D
}

// UniformUploader pushes a uniform's current host-side value into a
// compiled+linked GPU program, identified by its generated shader-side
// name.
type UniformUploader func(program uint32, shaderName string)

// UniformDecl is one registered uniform's declaration metadata.
type UniformDecl struct {
	TypeName   string
	ShaderName string
	HostPtr    any
	Upload     UniformUploader
}

// Context is the abstraction every statement-emitting and registration
// call in the typed value surface is routed through. MainContext
// implements the per-kernel mutable state described in spec.md §4.3;
// CollectContext implements the same interface for control-flow body
// capture, delegating every registration call to a parent Context.
type Context interface {
	// PushStatement appends a fully-lowered statement line (including its
	// trailing terminator) to this context's statement stream.
	PushStatement(line string)
	// FreshName returns a new, context-unique identifier.
	FreshName() string

	HasStruct(name string) bool
	AddStruct(name, glslSource string)
	Structs() []string // in insertion order

	AllocateBufferBinding() uint32
	RegisterBuffer(decl BufferDecl)
	BufferDecls() []BufferDecl
	BindRuntimeBuffer(binding uint32, handle uint32)
	RuntimeBuffers() map[uint32]uint32

	AllocateTextureBinding() uint32
	RegisterTexture(decl TextureDecl)
	TextureDecls() []TextureDecl
	BindRuntimeTexture(binding uint32, handle uint32)
	RuntimeTextures() map[uint32]uint32

	RegisterUniform(typeName string, hostPtr any, upload UniformUploader) string
	UniformDecls() []UniformDecl

	CallableState(identity any) *CallableState
	AddCallableDeclaration(proto string)
	AddCallableBodyGenerator(gen func())
	PushCallableBody()
	PopCallableBody() string
	AppendCallableBody(def string)
	GenerateCallableBodies() string
	CallableDeclarations() []string
}
