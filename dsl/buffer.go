package dsl

import (
	"reflect"

	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/ir"
)

// BufferRef is a typed handle to a bound shader-storage buffer, indexed to
// yield an addressable element — the same read/write surface as an Array
// element, but backed by a runtime-bound GPU buffer rather than a local
// array.
type BufferRef[T Scalar] struct {
	name    string
	binding uint32
}

// RegisterBuffer declares a new storage buffer of element type T, binds it
// to a freshly allocated binding slot, and returns a BufferRef for
// indexing. access controls the GLSL readonly/writeonly qualifier emitted
// on the buffer block.
func RegisterBuffer[T Scalar](access build.BufferAccess) BufferRef[T] {
	ctx := build.MustCurrent()
	binding := ctx.AllocateBufferBinding()
	name := ctx.FreshName()
	ctx.RegisterBuffer(build.BufferDecl{
		Binding:  binding,
		TypeName: glslType[T](),
		Name:     name,
		Access:   access,
	})
	return BufferRef[T]{name: name, binding: binding}
}

// Binding returns the buffer's GLSL binding slot.
func (b BufferRef[T]) Binding() uint32 { return b.binding }

// Bind attaches a runtime GPU buffer handle to this ref's binding slot for
// dispatch.
func (b BufferRef[T]) Bind(handle uint32) {
	build.MustCurrent().BindRuntimeBuffer(b.binding, handle)
}

// At returns an addressable handle for buf[index].
func (b BufferRef[T]) At(index Expr[int32]) ArrayElem[T] {
	target := &ir.ArrayAccess{Target: &ir.Load{Name: b.name}, Index: index.node}
	return ArrayElem[T]{target: target}
}

// AtVar returns an addressable handle for buf[index] where index is held
// in a Var[int32] (the common case: the global invocation id).
func (b BufferRef[T]) AtVar(index Var[int32]) ArrayElem[T] {
	return b.At(index.Load())
}

// StructBufferRef is BufferRef's counterpart for a storage buffer whose
// element type is a registered struct (RegisterStruct) rather than a
// Scalar, indexed to yield a StructVar instead of an ArrayElem.
type StructBufferRef[S any] struct {
	name    string
	binding uint32
	desc    *StructDesc
}

// RegisterStructBuffer declares a new storage buffer whose element type is
// S's registered struct mirror, binding it to a freshly allocated slot.
func RegisterStructBuffer[S any](access build.BufferAccess) StructBufferRef[S] {
	t := reflect.TypeOf(*new(S))
	desc := structDescOf(t)
	ctx := build.MustCurrent()
	ensureStructDeclared(ctx, desc)
	binding := ctx.AllocateBufferBinding()
	name := ctx.FreshName()
	ctx.RegisterBuffer(build.BufferDecl{
		Binding:  binding,
		TypeName: desc.ShaderName,
		Name:     name,
		Access:   access,
	})
	return StructBufferRef[S]{name: name, binding: binding, desc: desc}
}

// Binding returns the buffer's GLSL binding slot.
func (b StructBufferRef[S]) Binding() uint32 { return b.binding }

// Bind attaches a runtime GPU buffer handle to this ref's binding slot.
func (b StructBufferRef[S]) Bind(handle uint32) {
	build.MustCurrent().BindRuntimeBuffer(b.binding, handle)
}

// At returns a StructVar addressing buf[index], readable and writable
// field-by-field through Field/FieldVec/SetField.
func (b StructBufferRef[S]) At(index Expr[int32]) StructVar {
	target := &ir.ArrayAccess{Target: &ir.Load{Name: b.name}, Index: index.node}
	return StructVar{desc: b.desc, node: target}
}

// AtVar is At with the index held in a Var[int32].
func (b StructBufferRef[S]) AtVar(index Var[int32]) StructVar {
	return b.At(index.Load())
}

// VecBufferRef2/3/4 are BufferRef's counterpart for a storage buffer whose
// element type is a native vecN rather than a Scalar or a registered
// struct — mirroring UniformVec2/3/4's split into one concrete type per
// arity rather than a single generic, since Vec2/Vec3/Vec4 are themselves
// concrete types, not instances of one generic vector type.

type VecBufferRef2 struct {
	name    string
	binding uint32
}

type VecBufferRef3 struct {
	name    string
	binding uint32
}

type VecBufferRef4 struct {
	name    string
	binding uint32
}

func registerVecBuffer(glslElemType string, access build.BufferAccess) (name string, binding uint32) {
	ctx := build.MustCurrent()
	binding = ctx.AllocateBufferBinding()
	name = ctx.FreshName()
	ctx.RegisterBuffer(build.BufferDecl{Binding: binding, TypeName: glslElemType, Name: name, Access: access})
	return name, binding
}

// RegisterVecBuffer2 declares a new storage buffer of vec2 elements.
func RegisterVecBuffer2(access build.BufferAccess) VecBufferRef2 {
	name, binding := registerVecBuffer("vec2", access)
	return VecBufferRef2{name: name, binding: binding}
}

// RegisterVecBuffer3 declares a new storage buffer of vec3 elements.
func RegisterVecBuffer3(access build.BufferAccess) VecBufferRef3 {
	name, binding := registerVecBuffer("vec3", access)
	return VecBufferRef3{name: name, binding: binding}
}

// RegisterVecBuffer4 declares a new storage buffer of vec4 elements.
func RegisterVecBuffer4(access build.BufferAccess) VecBufferRef4 {
	name, binding := registerVecBuffer("vec4", access)
	return VecBufferRef4{name: name, binding: binding}
}

func (b VecBufferRef2) Binding() uint32                 { return b.binding }
func (b VecBufferRef2) Bind(handle uint32)              { build.MustCurrent().BindRuntimeBuffer(b.binding, handle) }
func (b VecBufferRef2) At(index Expr[int32]) VecElem2   { return VecElem2{target: vecBufferTarget(b.name, index)} }
func (b VecBufferRef2) AtVar(index Var[int32]) VecElem2 { return b.At(index.Load()) }

func (b VecBufferRef3) Binding() uint32                 { return b.binding }
func (b VecBufferRef3) Bind(handle uint32)              { build.MustCurrent().BindRuntimeBuffer(b.binding, handle) }
func (b VecBufferRef3) At(index Expr[int32]) VecElem3   { return VecElem3{target: vecBufferTarget(b.name, index)} }
func (b VecBufferRef3) AtVar(index Var[int32]) VecElem3 { return b.At(index.Load()) }

func (b VecBufferRef4) Binding() uint32                 { return b.binding }
func (b VecBufferRef4) Bind(handle uint32)              { build.MustCurrent().BindRuntimeBuffer(b.binding, handle) }
func (b VecBufferRef4) At(index Expr[int32]) VecElem4   { return VecElem4{target: vecBufferTarget(b.name, index)} }
func (b VecBufferRef4) AtVar(index Var[int32]) VecElem4 { return b.At(index.Load()) }

func vecBufferTarget(name string, index Expr[int32]) ir.Node {
	return &ir.ArrayAccess{Target: &ir.Load{Name: name}, Index: index.node}
}

// VecElem2/3/4 are addressable vecN-buffer elements, the vector-valued
// counterpart to ArrayElem[T Scalar].

type VecElem2 struct{ target ir.Node }
type VecElem3 struct{ target ir.Node }
type VecElem4 struct{ target ir.Node }

func (e VecElem2) Node() ir.Node { return e.target }
func (e VecElem2) Load() Vec2    { return Vec2{node: e.target} }
func (e VecElem2) Set(v Vec2)    { build.Build(&ir.Store{Target: e.target, Value: v.node}, true) }

func (e VecElem3) Node() ir.Node { return e.target }
func (e VecElem3) Load() Vec3    { return Vec3{node: e.target} }
func (e VecElem3) Set(v Vec3)    { build.Build(&ir.Store{Target: e.target, Value: v.node}, true) }

func (e VecElem4) Node() ir.Node { return e.target }
func (e VecElem4) Load() Vec4    { return Vec4{node: e.target} }
func (e VecElem4) Set(v Vec4)    { build.Build(&ir.Store{Target: e.target, Value: v.node}, true) }
