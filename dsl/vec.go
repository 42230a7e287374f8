package dsl

import (
	"github.com/shaderkit/gpudsl/ir"
)

// VecExpr is satisfied by Vec2, Vec3 and Vec4 — the shader-side vector
// value types — so Swizzle can accept any of them uniformly.
type VecExpr interface {
	nodeHolder
	glslVecType() string
}

// Vec2 is a shader-side 2-component float vector value.
type Vec2 struct{ node ir.Node }

// Vec3 is a shader-side 3-component float vector value.
type Vec3 struct{ node ir.Node }

// Vec4 is a shader-side 4-component float vector value.
type Vec4 struct{ node ir.Node }

func (v Vec2) Node() ir.Node      { return v.node }
func (v Vec2) glslVecType() string { return "vec2" }

func (v Vec3) Node() ir.Node      { return v.node }
func (v Vec3) glslVecType() string { return "vec3" }

func (v Vec4) Node() ir.Node      { return v.node }
func (v Vec4) glslVecType() string { return "vec4" }

// NewVec2 constructs a vec2 value from its components.
func NewVec2(x, y Expr[float32]) Vec2 {
	return Vec2{node: &ir.IntrinsicCall{Name: "vec2", Args: []ir.Node{x.node, y.node}}}
}

// NewVec3 constructs a vec3 value from its components.
func NewVec3(x, y, z Expr[float32]) Vec3 {
	return Vec3{node: &ir.IntrinsicCall{Name: "vec3", Args: []ir.Node{x.node, y.node, z.node}}}
}

// NewVec4 constructs a vec4 value from its components.
func NewVec4(x, y, z, w Expr[float32]) Vec4 {
	return Vec4{node: &ir.IntrinsicCall{Name: "vec4", Args: []ir.Node{x.node, y.node, z.node, w.node}}}
}

// WrapVecNode builds a Vec2 directly from an ir.Node — used by the kernel
// package to surface the fragment stage's interpolated UV in-variable as
// a typed value without dsl needing to know about the entry point itself.
func WrapVecNode(n ir.Node) Vec2 { return Vec2{node: n} }

func component(v nodeHolder, member string) Expr[float32] {
	return exprOf[float32](&ir.MemberAccess{Object: v.Node(), Member: member})
}

func (v Vec2) X() Expr[float32] { return component(v, "x") }
func (v Vec2) Y() Expr[float32] { return component(v, "y") }

func (v Vec3) X() Expr[float32] { return component(v, "x") }
func (v Vec3) Y() Expr[float32] { return component(v, "y") }
func (v Vec3) Z() Expr[float32] { return component(v, "z") }

func (v Vec4) X() Expr[float32] { return component(v, "x") }
func (v Vec4) Y() Expr[float32] { return component(v, "y") }
func (v Vec4) Z() Expr[float32] { return component(v, "z") }
func (v Vec4) W() Expr[float32] { return component(v, "w") }

// swizzleResultArity maps a result type to the component count it demands,
// so Swizzle can catch an authoring mistake (e.g. a 3-letter mask bound to
// Expr[float32]) the moment the kernel is authored rather than letting the
// GLSL compiler reject it later.
func swizzleResultArity(sample any) int {
	switch sample.(type) {
	case Expr[float32]:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4:
		return 4
	default:
		panic("gpudsl: Swizzle's R must be Expr[float32], Vec2, Vec3 or Vec4")
	}
}

// Swizzle reads a GLSL swizzle mask (e.g. "xy", "zyx", "xxxx") off v,
// producing R. The caller instantiates R explicitly since Go cannot infer
// a return type from a runtime string; mismatches between len(mask) and
// R's component count panic immediately, matching the rest of the typed
// surface's authoring-misuse semantics rather than deferring to a GLSL
// compile error.
func Swizzle[R any](v VecExpr, mask string) R {
	var zero R
	if len(mask) != swizzleResultArity(any(zero)) {
		panic("gpudsl: swizzle mask \"" + mask + "\" does not match result arity")
	}
	node := &ir.MemberAccess{Object: v.Node(), Member: mask}
	switch any(zero).(type) {
	case Expr[float32]:
		return any(exprOf[float32](node)).(R)
	case Vec2:
		return any(Vec2{node: node}).(R)
	case Vec3:
		return any(Vec3{node: node}).(R)
	case Vec4:
		return any(Vec4{node: node}).(R)
	default:
		panic("gpudsl: unreachable")
	}
}
