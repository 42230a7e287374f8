package dsl

import (
	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/ir"
)

// Var is a named, addressable shader value of host type T. Constructing a
// Var[T] emits a local-variable declaration to the active build.Context;
// reading it yields an Expr[T] that loads it, and assigning to it emits a
// store.
type Var[T Scalar] struct {
	name     string
	external bool
}

// NewVar declares a fresh local variable of type T and emits its
// declaration to the active context.
func NewVar[T Scalar]() Var[T] {
	ctx := build.MustCurrent()
	name := ctx.FreshName()
	build.Build(&ir.LocalVar{Name: name, Type: glslType[T]()}, true)
	return Var[T]{name: name}
}

// ExternalVar wraps an already-declared shader-side name (e.g. a uniform,
// or a buffer-indexed element) as a Var[T] without emitting a declaration.
func ExternalVar[T Scalar](name string) Var[T] {
	return Var[T]{name: name, external: true}
}

// Name returns the shader-side identifier this Var reads and writes.
func (v Var[T]) Name() string { return v.name }

// Node implements nodeHolder by loading the variable's current value.
func (v Var[T]) Node() ir.Node { return v.load() }

func (v Var[T]) load() ir.Node { return &ir.Load{Name: v.name} }

// Load reads v, producing an Expr[T].
func (v Var[T]) Load() Expr[T] { return exprOf[T](v.load()) }

// Set assigns value to v, emitting a store statement.
func (v Var[T]) Set(value Expr[T]) {
	build.Build(&ir.Store{Target: v.load(), Value: value.node}, true)
}

// SetVar assigns the current value of another Var[T] — convenience over
// Set(other.Load()).
func (v Var[T]) SetVar(other Var[T]) { v.Set(other.Load()) }

// compoundAssign emits `v op= value` as a single CompoundAssign node,
// preserving read-modify-write semantics (as opposed to Set(Op(v.Load(),
// value)), which would re-read v redundantly at the IR level even though
// both lower to the same GLSL).
func (v Var[T]) compoundAssign(op ir.Opcode, value Expr[T]) {
	build.Build(&ir.CompoundAssign{Op: op, LValue: v.load(), Value: value.node}, true)
}

func (v Var[T]) AddAssign(value Expr[T]) { v.compoundAssign(ir.OpAdd, value) }
func (v Var[T]) SubAssign(value Expr[T]) { v.compoundAssign(ir.OpSub, value) }
func (v Var[T]) MulAssign(value Expr[T]) { v.compoundAssign(ir.OpMul, value) }
func (v Var[T]) DivAssign(value Expr[T]) { v.compoundAssign(ir.OpDiv, value) }

// Inc emits a prefix or postfix increment statement.
func (v Var[T]) Inc(prefix bool) { build.Build(&ir.IncDec{Inc: true, Prefix: prefix, Target: v.load()}, true) }

// Dec emits a prefix or postfix decrement statement.
func (v Var[T]) Dec(prefix bool) { build.Build(&ir.IncDec{Inc: false, Prefix: prefix, Target: v.load()}, true) }
