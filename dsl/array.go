package dsl

import (
	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/ir"
)

// Array is a fixed-length, named local array of scalar element type T.
// Elements are accessed through At, which returns a handle supporting the
// same Load/Set/compound-assignment surface as Var[T].
type Array[T Scalar] struct {
	name   string
	length int
}

// NewArray declares a fresh local array of n elements of type T.
func NewArray[T Scalar](n int) Array[T] {
	ctx := build.MustCurrent()
	name := ctx.FreshName()
	build.Build(&ir.LocalArray{Name: name, ElemType: glslType[T](), Length: n}, true)
	return Array[T]{name: name, length: n}
}

// Len returns the array's declared length.
func (a Array[T]) Len() int { return a.length }

// At returns an addressable element handle for a[index].
func (a Array[T]) At(index Expr[int32]) ArrayElem[T] {
	return ArrayElem[T]{target: &ir.ArrayAccess{Target: &ir.Load{Name: a.name}, Index: index.node}}
}

// ArrayElem is an addressable array-indexed shader location: a[i]. It
// supports the same read/write surface as Var[T] but is produced fresh on
// each At call rather than constructed once, since the index expression
// may itself change between uses.
type ArrayElem[T Scalar] struct {
	target ir.Node
}

func (e ArrayElem[T]) Node() ir.Node { return e.target }

// Load reads the element.
func (e ArrayElem[T]) Load() Expr[T] { return exprOf[T](e.target) }

// Set writes value to the element.
func (e ArrayElem[T]) Set(value Expr[T]) {
	build.Build(&ir.Store{Target: e.target, Value: value.node}, true)
}

func (e ArrayElem[T]) compoundAssign(op ir.Opcode, value Expr[T]) {
	build.Build(&ir.CompoundAssign{Op: op, LValue: e.target, Value: value.node}, true)
}

func (e ArrayElem[T]) AddAssign(value Expr[T]) { e.compoundAssign(ir.OpAdd, value) }
func (e ArrayElem[T]) SubAssign(value Expr[T]) { e.compoundAssign(ir.OpSub, value) }
func (e ArrayElem[T]) MulAssign(value Expr[T]) { e.compoundAssign(ir.OpMul, value) }
func (e ArrayElem[T]) DivAssign(value Expr[T]) { e.compoundAssign(ir.OpDiv, value) }
