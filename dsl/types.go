// Package dsl is the typed value surface described in spec.md §4.4: Var[T]
// (named, addressable) and Expr[T] (anonymous, immutable) drive ir.Node
// construction through the active build.Context without the caller ever
// touching the IR directly.
package dsl

// Scalar is the set of host Go types the typed surface can wrap directly
// as a GLSL scalar. Vectors, arrays and structs are handled by dedicated
// types below rather than by this constraint.
type Scalar interface {
	~int32 | ~float32 | ~bool
}

// Numeric is the subset of Scalar that supports arithmetic (bool is
// excluded: GLSL has no arithmetic on bool).
type Numeric interface {
	~int32 | ~float32
}

// glslType returns the GLSL spelling of T for T in Scalar.
func glslType[T Scalar]() string {
	var zero T
	switch any(zero).(type) {
	case int32:
		return "int"
	case float32:
		return "float"
	case bool:
		return "bool"
	default:
		panic("gpudsl: unsupported scalar type")
	}
}

// GLSLType is the exported form of glslType, used by packages (flow,
// kernel) that need a scalar type's GLSL spelling for callable signatures
// and entry-point parameter lists without constructing a value of it.
func GLSLType[T Scalar]() string { return glslType[T]() }
