package dsl

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/jinzhu/copier"
	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/ir"
)

// FieldKind distinguishes a struct field's shader representation, since a
// field can itself be a scalar, a vector or a nested struct.
type FieldKind int

const (
	FieldScalar FieldKind = iota
	FieldVec2
	FieldVec3
	FieldVec4
	FieldStruct
)

// FieldDesc describes one field of a host struct as it is mirrored on the
// GPU: its GLSL name and type, and which host struct field (by name) it is
// bound to. The layout fields (hostOffset, gpuOffset, gpuSize, nested) are
// filled in by StructDesc.computeLayout when the struct is registered, not
// by the caller.
type FieldDesc struct {
	HostField  string
	ShaderName string
	GLSLType   string
	Kind       FieldKind

	hostOffset uintptr
	gpuOffset  uintptr
	gpuSize    uintptr
	nested     *StructDesc
}

// StructDesc is the registered GLSL mirror of a host Go struct type,
// keyed by reflect.Type in the process-wide registry below. The C++
// teacher generates one of these per struct via macro-driven template
// specialization (VarStruct.h); Go has no equivalent preprocessor, so
// RegisterStruct builds the same descriptor from an explicit field list
// read once via reflection.
//
// HostSize and GPUSize are the struct's byte size on each side of the
// upload boundary: HostSize is reflect's natural Go layout, GPUSize is the
// std430 array stride GLSL actually uses (rule 9: a struct's base
// alignment, and so the stride of an array of them, is always rounded up
// to 16 bytes). The two sizes agree only by coincidence of field order and
// padding; PackStd430/UnpackStd430 convert between them field by field
// rather than relying on that coincidence, mirroring
// GPU::Meta::Std430Converter's per-field ConvertToGPU/ConvertFromGPU in the
// original implementation this registry replaces.
type StructDesc struct {
	GoType     reflect.Type
	ShaderName string
	Fields     []FieldDesc
	HostSize   uintptr
	GPUSize    uintptr
}

var structRegistry = map[reflect.Type]*StructDesc{}

// RegisterStruct records S's GLSL mirror under shaderName, to be looked up
// by struct-valued Vars and Buffers, and computes its std430 layout. It
// must run once, before any kernel that references S is authored
// (typically from an init func, mirroring where the teacher's generated
// VarStruct specializations are wired in). A field of Kind FieldStruct
// must name a Go field whose type was already registered with
// RegisterStruct, since its nested layout is looked up here.
func RegisterStruct[S any](shaderName string, fields ...FieldDesc) *StructDesc {
	t := reflect.TypeOf(*new(S))
	desc := &StructDesc{GoType: t, ShaderName: shaderName, Fields: fields}
	desc.computeLayout()
	structRegistry[t] = desc
	return desc
}

// std430 base alignment and size, in bytes, for each field kind other than
// FieldStruct (rules 1-3 of the std430 layout rules: a scalar is 4-byte
// aligned and sized, vec2 is 8-byte aligned and sized, vec3 and vec4 are
// 16-byte aligned, but vec3 only occupies 12 bytes — the remaining 4 bytes
// of its alignment slot are free for a following scalar or vec2 field to
// pack into).
func std430ScalarLayout(k FieldKind) (align, size uintptr) {
	switch k {
	case FieldScalar:
		return 4, 4
	case FieldVec2:
		return 8, 8
	case FieldVec3:
		return 16, 12
	case FieldVec4:
		return 16, 16
	default:
		panic(fmt.Sprintf("gpudsl: field kind %d has no scalar std430 layout", k))
	}
}

func alignUp(v, align uintptr) uintptr {
	return (v + align - 1) &^ (align - 1)
}

// computeLayout walks d.Fields in declaration order, assigning each a host
// offset (read from the registered Go type via reflect) and a gpu offset
// and size under std430 rules, then rounds d's own stride up to 16 bytes
// (rule 9: a struct's base alignment, and so an array of them, is always a
// multiple of vec4's 16-byte alignment).
func (d *StructDesc) computeLayout() {
	var gpuOffset uintptr
	for i := range d.Fields {
		f := &d.Fields[i]
		sf, ok := d.GoType.FieldByName(f.HostField)
		if !ok {
			panic(fmt.Sprintf("gpudsl: struct %s has no host field %q", d.ShaderName, f.HostField))
		}
		f.hostOffset = sf.Offset

		var align, size uintptr
		if f.Kind == FieldStruct {
			f.nested = structDescOf(sf.Type)
			align, size = 16, f.nested.GPUSize
		} else {
			align, size = std430ScalarLayout(f.Kind)
		}
		gpuOffset = alignUp(gpuOffset, align)
		f.gpuOffset = gpuOffset
		f.gpuSize = size
		gpuOffset += size
	}
	d.HostSize = d.GoType.Size()
	d.GPUSize = alignUp(gpuOffset, 16)
}

// NeedsStd430Conversion reports whether d's host and device byte layouts
// differ, i.e. whether a raw memcpy of a host-side []S would corrupt the
// buffer's std430 contents.
func (d *StructDesc) NeedsStd430Conversion() bool {
	return d.HostSize != d.GPUSize
}

func structDescOf(t reflect.Type) *StructDesc {
	desc, ok := structRegistry[t]
	if !ok {
		panic(fmt.Sprintf("gpudsl: struct type %s was never registered with RegisterStruct", t))
	}
	return desc
}

// GLSLSource renders the struct's GLSL declaration, emitted once per
// kernel by the struct registry in build.Context.
func (d *StructDesc) GLSLSource() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "struct %s {\n", d.ShaderName)
	for _, f := range d.Fields {
		fmt.Fprintf(&sb, "    %s %s;\n", f.GLSLType, f.ShaderName)
	}
	sb.WriteString("};\n")
	return sb.String()
}

// Clone deep-copies a host-side struct value. It is grounded on
// github.com/jinzhu/copier rather than a hand-written field-by-field copy
// loop, since copier already handles nested structs and slices correctly
// and this registry only needs a generic value clone, not per-type
// codegen.
func (d *StructDesc) Clone(v any) (any, error) {
	dst := reflect.New(d.GoType).Interface()
	if err := copier.CopyWithOption(dst, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("gpudsl: clone struct %s: %w", d.ShaderName, err)
	}
	return reflect.ValueOf(dst).Elem().Interface(), nil
}

// ensureStructDeclared emits the struct's GLSL declaration into ctx the
// first time it is referenced by a kernel, and is a no-op on subsequent
// references.
func ensureStructDeclared(ctx build.Context, desc *StructDesc) {
	if ctx.HasStruct(desc.ShaderName) {
		return
	}
	ctx.AddStruct(desc.ShaderName, desc.GLSLSource())
}

// StructVar is an addressable shader value whose GLSL type is a registered
// struct. Unlike Var[T Scalar], it carries its Go type as a reflect.Type
// rather than a type parameter constrained to Scalar, since member access
// is resolved by field name at the reflect level. Its underlying location
// is an arbitrary ir.Node rather than a bare name, so a StructVar can
// address either a plain local/external variable or a buffer-indexed
// element (StructBufferRef.At).
type StructVar struct {
	desc *StructDesc
	node ir.Node
}

// NewStructVar declares a fresh local variable of S's registered struct
// type.
func NewStructVar[S any]() StructVar {
	t := reflect.TypeOf(*new(S))
	desc := structDescOf(t)
	ctx := build.MustCurrent()
	ensureStructDeclared(ctx, desc)
	name := ctx.FreshName()
	build.Build(&ir.LocalVar{Name: name, Type: desc.ShaderName}, true)
	return StructVar{desc: desc, node: &ir.Load{Name: name}}
}

// ExternalStructVar wraps an already-declared struct-typed shader name
// (e.g. a uniform block instance) without emitting a declaration.
func ExternalStructVar[S any](name string) StructVar {
	t := reflect.TypeOf(*new(S))
	return StructVar{desc: structDescOf(t), node: &ir.Load{Name: name}}
}

func (v StructVar) Node() ir.Node { return v.node }

// Field accesses field (by its host Go field name, matching FieldDesc.HostField)
// on v as an Expr[F] or Var[F]-shaped value of F. Callers select F to match
// the registered field's scalar type; a mismatch is a host-side type error
// caught at compile time by Go's own type checker on the assignment using
// the result, not by this function.
func Field[F Scalar](v StructVar, hostField string) Expr[F] {
	fd := fieldDesc(v.desc, hostField)
	if fd.Kind != FieldScalar {
		panic(fmt.Sprintf("gpudsl: field %q of %s is not a scalar field", hostField, v.desc.ShaderName))
	}
	return exprOf[F](&ir.MemberAccess{Object: v.Node(), Member: fd.ShaderName})
}

// FieldVec accesses a vector-typed field of v, returning it as R (Vec2,
// Vec3 or Vec4), matching the Swizzle pattern's caller-instantiated result
// type.
func FieldVec[R VecExpr](v StructVar, hostField string) R {
	fd := fieldDesc(v.desc, hostField)
	node := &ir.MemberAccess{Object: v.Node(), Member: fd.ShaderName}
	var zero R
	switch any(zero).(type) {
	case Vec2:
		return any(Vec2{node: node}).(R)
	case Vec3:
		return any(Vec3{node: node}).(R)
	case Vec4:
		return any(Vec4{node: node}).(R)
	default:
		panic("gpudsl: FieldVec's R must be Vec2, Vec3 or Vec4")
	}
}

func fieldDesc(desc *StructDesc, hostField string) FieldDesc {
	for _, f := range desc.Fields {
		if f.HostField == hostField {
			return f
		}
	}
	panic(fmt.Sprintf("gpudsl: struct %s has no registered field %q", desc.ShaderName, hostField))
}

// SetField assigns value to the named scalar field of v, emitting a
// member-store statement.
func SetField[F Scalar](v StructVar, hostField string, value Expr[F]) {
	fd := fieldDesc(v.desc, hostField)
	target := &ir.MemberAccess{Object: v.Node(), Member: fd.ShaderName}
	build.Build(&ir.Store{Target: target, Value: value.node}, true)
}

// SetFieldVec assigns value to the named vector-typed field of v.
func SetFieldVec(v StructVar, hostField string, value VecExpr) {
	fd := fieldDesc(v.desc, hostField)
	if fd.Kind != FieldVec2 && fd.Kind != FieldVec3 && fd.Kind != FieldVec4 {
		panic(fmt.Sprintf("gpudsl: field %q of %s is not a vector field", hostField, v.desc.ShaderName))
	}
	target := &ir.MemberAccess{Object: v.Node(), Member: fd.ShaderName}
	build.Build(&ir.Store{Target: target, Value: value.Node()}, true)
}

// SubField emits `v.field -= value` on the named scalar field of v.
func SubField[F Scalar](v StructVar, hostField string, value Expr[F]) {
	fd := fieldDesc(v.desc, hostField)
	if fd.Kind != FieldScalar {
		panic(fmt.Sprintf("gpudsl: field %q of %s is not a scalar field", hostField, v.desc.ShaderName))
	}
	target := &ir.MemberAccess{Object: v.Node(), Member: fd.ShaderName}
	build.Build(&ir.CompoundAssign{Op: ir.OpSub, LValue: target, Value: value.node}, true)
}

// AddFieldVec emits `v.field += value`, the compound-assign form
// SetFieldVec(v, field, Add(FieldVec(...), value)) would otherwise require
// reading the field back first — matching Var[T]'s own CompoundAssign
// shape rather than generating a redundant read-then-write.
func AddFieldVec(v StructVar, hostField string, value VecExpr) {
	fd := fieldDesc(v.desc, hostField)
	if fd.Kind != FieldVec2 && fd.Kind != FieldVec3 && fd.Kind != FieldVec4 {
		panic(fmt.Sprintf("gpudsl: field %q of %s is not a vector field", hostField, v.desc.ShaderName))
	}
	target := &ir.MemberAccess{Object: v.Node(), Member: fd.ShaderName}
	build.Build(&ir.CompoundAssign{Op: ir.OpAdd, LValue: target, Value: value.Node()}, true)
}

// PackStd430 converts host into the std430 device layout S was registered
// with via RegisterStruct, ready for upload through
// glgl.NewShaderStorageBuffer[byte]. Each field is copied independently
// from its host offset to its computed gpu offset, so host-side padding
// (such as ms3.Vec's trailing float) is never mistaken for a neighboring
// field's data, and the struct's own std430 stride rounding is honored
// even when it does not match the host type's Go size.
func PackStd430[S any](host []S) []byte {
	t := reflect.TypeOf(*new(S))
	desc := structDescOf(t)
	out := make([]byte, desc.GPUSize*uintptr(len(host)))
	for i := range host {
		hostBytes := unsafe.Slice((*byte)(unsafe.Pointer(&host[i])), desc.HostSize)
		gpuBytes := out[uintptr(i)*desc.GPUSize : (uintptr(i)+1)*desc.GPUSize]
		packFields(desc.Fields, hostBytes, gpuBytes, 0, 0)
	}
	return out
}

// UnpackStd430 is PackStd430's inverse: it reads data back from the
// std430 device layout into host, e.g. after
// glgl.CopyFromShaderStorageBuffer into a []byte sized by
// StructDesc.GPUSize.
func UnpackStd430[S any](data []byte, host []S) {
	t := reflect.TypeOf(*new(S))
	desc := structDescOf(t)
	for i := range host {
		hostBytes := unsafe.Slice((*byte)(unsafe.Pointer(&host[i])), desc.HostSize)
		gpuBytes := data[uintptr(i)*desc.GPUSize : (uintptr(i)+1)*desc.GPUSize]
		unpackFields(desc.Fields, gpuBytes, hostBytes, 0, 0)
	}
}

// packFields and unpackFields recurse into nested FieldStruct fields,
// accumulating the host and gpu base offsets of the enclosing struct so a
// nested struct's own field layout is applied relative to where it sits
// in the parent rather than as if it were a standalone top-level value.
func packFields(fields []FieldDesc, hostBytes, gpuBytes []byte, hostBase, gpuBase uintptr) {
	for _, f := range fields {
		ho, go_ := hostBase+f.hostOffset, gpuBase+f.gpuOffset
		if f.Kind == FieldStruct {
			packFields(f.nested.Fields, hostBytes, gpuBytes, ho, go_)
			continue
		}
		copy(gpuBytes[go_:go_+f.gpuSize], hostBytes[ho:ho+f.gpuSize])
	}
}

func unpackFields(fields []FieldDesc, gpuBytes, hostBytes []byte, hostBase, gpuBase uintptr) {
	for _, f := range fields {
		ho, go_ := hostBase+f.hostOffset, gpuBase+f.gpuOffset
		if f.Kind == FieldStruct {
			unpackFields(f.nested.Fields, gpuBytes, hostBytes, ho, go_)
			continue
		}
		copy(hostBytes[ho:ho+f.gpuSize], gpuBytes[go_:go_+f.gpuSize])
	}
}
