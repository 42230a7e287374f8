package dsl

import (
	"reflect"

	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/ir"
	"github.com/shaderkit/gpudsl/math/ms2"
	"github.com/shaderkit/gpudsl/math/ms3"
	"github.com/shaderkit/gpudsl/math/ms4"
)

// UniformDriver is the seam between a registered uniform's upload closure
// and the actual GL calls that push it to a compiled program. kernel's
// driver package assigns this once at init so package dsl never imports
// the OpenGL binding directly, mirroring how the teacher keeps its GL
// calls behind package-level free functions rather than threading a
// context object through every call site.
var UniformDriver struct {
	Uniform1i func(program uint32, name string, v int32)
	Uniform1f func(program uint32, name string, v float32)
	Uniform2f func(program uint32, name string, x, y float32)
	Uniform3f func(program uint32, name string, x, y, z float32)
	Uniform4f func(program uint32, name string, x, y, z, w float32)
}

// Uniform is a host-side value of scalar type T that a kernel can load as
// an external Var[T]. Registration (and the shader-side name it produces)
// happens lazily, each time Load is called inside an authoring closure,
// rather than at construction, since a Uniform[T] may be declared once on
// the host and bound into several kernels. Two Load calls in one kernel
// register two uniforms with distinct names.
type Uniform[T Scalar] struct {
	ptr *T
}

// NewUniform wraps a host value for upload as a shader uniform. The
// pointer is read fresh by the uploader on every dispatch, so updating
// *ptr between dispatches changes what the next dispatch uploads.
func NewUniform[T Scalar](ptr *T) Uniform[T] {
	return Uniform[T]{ptr: ptr}
}

// Load registers u with the active context (on every call) and returns
// an external Var[T] bound to its generated shader-side name.
func (u Uniform[T]) Load() Var[T] {
	ctx := build.MustCurrent()
	name := ctx.RegisterUniform(glslType[T](), u.ptr, func(program uint32, shaderName string) {
		uploadScalar(program, shaderName, any(*u.ptr))
	})
	return ExternalVar[T](name)
}

// UniformVec2/Vec3/Vec4 mirror Uniform[T] for vector-valued uniforms; they
// are not generic over Scalar since vectors aren't part of that
// constraint, matching Vec2/Vec3/Vec4 being concrete types rather than
// Scalar-parameterized ones.

type UniformVec2 struct{ ptr *ms2.Vec }
type UniformVec3 struct{ ptr *ms3.Vec }
type UniformVec4 struct{ ptr *ms4.Vec }

func NewUniformVec2(ptr *ms2.Vec) UniformVec2 { return UniformVec2{ptr: ptr} }
func NewUniformVec3(ptr *ms3.Vec) UniformVec3 { return UniformVec3{ptr: ptr} }
func NewUniformVec4(ptr *ms4.Vec) UniformVec4 { return UniformVec4{ptr: ptr} }

func (u UniformVec2) Load() Vec2 {
	ctx := build.MustCurrent()
	name := ctx.RegisterUniform("vec2", u.ptr, func(program uint32, shaderName string) {
		UniformDriver.Uniform2f(program, shaderName, u.ptr.X, u.ptr.Y)
	})
	return Vec2{node: &ir.Load{Name: name}}
}

func (u UniformVec3) Load() Vec3 {
	ctx := build.MustCurrent()
	name := ctx.RegisterUniform("vec3", u.ptr, func(program uint32, shaderName string) {
		UniformDriver.Uniform3f(program, shaderName, u.ptr.X, u.ptr.Y, u.ptr.Z)
	})
	return Vec3{node: &ir.Load{Name: name}}
}

func (u UniformVec4) Load() Vec4 {
	ctx := build.MustCurrent()
	name := ctx.RegisterUniform("vec4", u.ptr, func(program uint32, shaderName string) {
		UniformDriver.Uniform4f(program, shaderName, u.ptr.X, u.ptr.Y, u.ptr.Z, u.ptr.W)
	})
	return Vec4{node: &ir.Load{Name: name}}
}

// UniformStruct mirrors Uniform[T] for a registered struct type, whose
// uploader pushes one GL uniform call per field — scalar, vector or
// nested struct — composing the field's GLSL name with the uniform's own
// shader name (matching how the original implementation's reflected
// struct uploaders address nested uniform-block members).
type UniformStruct[S any] struct {
	ptr *S
}

func NewUniformStruct[S any](ptr *S) UniformStruct[S] {
	return UniformStruct[S]{ptr: ptr}
}

func (u UniformStruct[S]) Load() StructVar {
	t := reflect.TypeOf(*new(S))
	desc := structDescOf(t)
	ctx := build.MustCurrent()
	ensureStructDeclared(ctx, desc)
	name := ctx.RegisterUniform(desc.ShaderName, u.ptr, structUploader(desc, u.ptr))
	return StructVar{desc: desc, node: &ir.Load{Name: name}}
}

func structUploader(desc *StructDesc, ptr any) build.UniformUploader {
	return func(program uint32, shaderName string) {
		v := reflect.ValueOf(ptr).Elem()
		for _, f := range desc.Fields {
			fv := v.FieldByName(f.HostField)
			memberName := shaderName + "." + f.ShaderName
			switch f.Kind {
			case FieldScalar:
				uploadScalar(program, memberName, fv.Interface())
			case FieldVec2:
				vec := fv.Interface().(ms2.Vec)
				UniformDriver.Uniform2f(program, memberName, vec.X, vec.Y)
			case FieldVec3:
				vec := fv.Interface().(ms3.Vec)
				UniformDriver.Uniform3f(program, memberName, vec.X, vec.Y, vec.Z)
			case FieldVec4:
				vec := fv.Interface().(ms4.Vec)
				UniformDriver.Uniform4f(program, memberName, vec.X, vec.Y, vec.Z, vec.W)
			case FieldStruct:
				structUploader(f.nested, fv.Addr().Interface())(program, memberName)
			}
		}
	}
}

func uploadScalar(program uint32, shaderName string, v any) {
	switch x := v.(type) {
	case int32:
		UniformDriver.Uniform1i(program, shaderName, x)
	case float32:
		UniformDriver.Uniform1f(program, shaderName, x)
	case bool:
		b := int32(0)
		if x {
			b = 1
		}
		UniformDriver.Uniform1i(program, shaderName, b)
	}
}
