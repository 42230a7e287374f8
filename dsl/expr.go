package dsl

import (
	"strconv"

	"github.com/shaderkit/gpudsl/ir"
)

// Expr is an anonymous shader value of host type T: it has no identity,
// and evaluating one of its operators builds a new ir.Node without
// emitting anything. The result is only emitted once it is assigned to a
// Var, passed to a statement API, or used as the right-hand side of a
// compound assignment.
type Expr[T Scalar] struct {
	node ir.Node
}

// Node returns the underlying ir.Node — used by flow and kernel packages
// that must lower an Expr without a typed wrapper (e.g. loop bounds,
// conditions).
func (e Expr[T]) Node() ir.Node { return e.node }

// Lit wraps a Go literal of type T as an Expr[T], lowering directly to its
// GLSL literal spelling.
func Lit[T Scalar](v T) Expr[T] {
	return Expr[T]{node: &ir.Raw{Text: literalText(v)}}
}

func literalText[T Scalar](v T) string {
	switch x := any(v).(type) {
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		panic("gpudsl: unsupported scalar literal")
	}
}

func exprOf[T Scalar](n ir.Node) Expr[T] { return Expr[T]{node: n} }

// WrapNode builds an Expr[T] directly from an ir.Node — the exported form
// of exprOf, used by the kernel package to surface built-in shader
// variables (e.g. gl_GlobalInvocationID components) as typed values
// without dsl needing to know about every entry-point's built-ins itself.
func WrapNode[T Scalar](n ir.Node) Expr[T] { return exprOf[T](n) }

// Binary arithmetic — valid for Numeric T only, enforced by the type
// parameter on these free functions rather than as Expr methods, since
// Numeric narrows Scalar.

func Add[T Numeric](a, b Expr[T]) Expr[T] { return binOp[T](ir.OpAdd, a, b) }
func Sub[T Numeric](a, b Expr[T]) Expr[T] { return binOp[T](ir.OpSub, a, b) }
func Mul[T Numeric](a, b Expr[T]) Expr[T] { return binOp[T](ir.OpMul, a, b) }
func Div[T Numeric](a, b Expr[T]) Expr[T] { return binOp[T](ir.OpDiv, a, b) }
func Mod[T Numeric](a, b Expr[T]) Expr[T] { return binOp[T](ir.OpMod, a, b) }

// Neg negates a.
func Neg[T Numeric](a Expr[T]) Expr[T] {
	return exprOf[T](&ir.Operation{Op: ir.OpNeg, Operands: []ir.Node{a.node}})
}

// Bitwise — integer only; callers instantiate with T=int32.

func BitAnd(a, b Expr[int32]) Expr[int32] { return binOp[int32](ir.OpBitAnd, a, b) }
func BitOr(a, b Expr[int32]) Expr[int32]  { return binOp[int32](ir.OpBitOr, a, b) }
func BitXor(a, b Expr[int32]) Expr[int32] { return binOp[int32](ir.OpBitXor, a, b) }
func Shl(a, b Expr[int32]) Expr[int32]    { return binOp[int32](ir.OpShl, a, b) }
func Shr(a, b Expr[int32]) Expr[int32]    { return binOp[int32](ir.OpShr, a, b) }
func BitNot(a Expr[int32]) Expr[int32] {
	return exprOf[int32](&ir.Operation{Op: ir.OpBitNot, Operands: []ir.Node{a.node}})
}

// Comparisons — valid across all Scalar T, always yield Expr[bool].

func Eq[T Scalar](a, b Expr[T]) Expr[bool] { return cmpOp(ir.OpEq, a, b) }
func Ne[T Scalar](a, b Expr[T]) Expr[bool] { return cmpOp(ir.OpNe, a, b) }
func Lt[T Numeric](a, b Expr[T]) Expr[bool] { return cmpOp(ir.OpLt, a, b) }
func Le[T Numeric](a, b Expr[T]) Expr[bool] { return cmpOp(ir.OpLe, a, b) }
func Gt[T Numeric](a, b Expr[T]) Expr[bool] { return cmpOp(ir.OpGt, a, b) }
func Ge[T Numeric](a, b Expr[T]) Expr[bool] { return cmpOp(ir.OpGe, a, b) }

// Logical — bool only.

func And(a, b Expr[bool]) Expr[bool] { return binOp[bool](ir.OpLogAnd, a, b) }
func Or(a, b Expr[bool]) Expr[bool]  { return binOp[bool](ir.OpLogOr, a, b) }
func Not(a Expr[bool]) Expr[bool] {
	return exprOf[bool](&ir.Operation{Op: ir.OpLogNot, Operands: []ir.Node{a.node}})
}

func binOp[T Scalar](op ir.Opcode, a, b Expr[T]) Expr[T] {
	return exprOf[T](&ir.Operation{Op: op, Operands: []ir.Node{a.node, b.node}})
}

func cmpOp[T Scalar](op ir.Opcode, a, b Expr[T]) Expr[bool] {
	return exprOf[bool](&ir.Operation{Op: op, Operands: []ir.Node{a.node, b.node}})
}

// Intrinsic invokes a built-in shading-language function such as "sqrt" or
// "dot" with ordered argument expressions, producing an Expr[R].
func Intrinsic[R Scalar](name string, args ...nodeHolder) Expr[R] {
	nodes := make([]ir.Node, len(args))
	for i, a := range args {
		nodes[i] = a.Node()
	}
	return exprOf[R](&ir.IntrinsicCall{Name: name, Args: nodes})
}

// UserCall invokes a user-defined Callable by its generated shader-side
// function name with ordered argument expressions, producing an Expr[R].
// Distinct from Intrinsic so generated source can eventually distinguish
// calls to built-ins from calls into the generated callable-body section,
// even though both lower to the same "name(args...)" GLSL text today.
func UserCall[R Scalar](name string, args ...nodeHolder) Expr[R] {
	nodes := make([]ir.Node, len(args))
	for i, a := range args {
		nodes[i] = a.Node()
	}
	return exprOf[R](&ir.UserCall{Name: name, Args: nodes})
}

// nodeHolder is satisfied by any Expr[T] or Var[T] — used so Intrinsic can
// accept a heterogeneous argument list without forcing every argument to
// share one scalar type.
type nodeHolder interface {
	Node() ir.Node
}

