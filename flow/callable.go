package flow

import (
	"fmt"
	"sync/atomic"

	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/dsl"
	"github.com/shaderkit/gpudsl/ir"
)

// callableSeq hands out monotonically increasing ids for Callables. The id
// is the suffix of a Callable's generated shader-side function name. The
// per-context declared/defined state is keyed on the *Callable1/*Callable2
// pointer itself (a Go func value cannot be a map key, but the pointer to
// the struct holding it can), not on the id.
var callableSeq uint64

func nextCallableID() uint64 { return atomic.AddUint64(&callableSeq, 1) }

// Callable1 is a user-defined shader function of one scalar argument
// returning R.
type Callable1[A, R dsl.Scalar] struct {
	id   uint64
	name string
	body func(a dsl.Var[A]) dsl.Expr[R]
}

// NewCallable1 declares a callable named per its monotonic id. The first
// Invoke within a kernel registers a body generator; body then runs once,
// when that kernel's callable bodies are generated, to produce its GLSL
// definition.
func NewCallable1[A, R dsl.Scalar](body func(a dsl.Var[A]) dsl.Expr[R]) *Callable1[A, R] {
	id := nextCallableID()
	return &Callable1[A, R]{id: id, name: fmt.Sprintf("fn%d", id), body: body}
}

// Invoke emits a call to the callable with a, registering its forward
// declaration and body generator on first use within the active context.
func (c *Callable1[A, R]) Invoke(a dsl.Expr[A]) dsl.Expr[R] {
	c.ensureRegistered()
	return dsl.UserCall[R](c.name, a)
}

func (c *Callable1[A, R]) ensureRegistered() {
	ctx := build.MustCurrent()
	state := ctx.CallableState(c)
	if state.Declared {
		return
	}
	state.Declared = true
	argType := dsl.GLSLType[A]()
	retType := dsl.GLSLType[R]()
	ctx.AddCallableDeclaration(fmt.Sprintf("%s %s(%s a)", retType, c.name, argType))
	ctx.AddCallableBodyGenerator(func() { c.generateBody(ctx) })
}

func (c *Callable1[A, R]) generateBody(ctx build.Context) {
	// GenerateCallableBodies runs after the kernel's authoring closure has
	// returned and the Builder has been unbound, so body's own typed-value
	// calls need the Builder rebound to ctx for the duration of this call.
	previous := build.Current()
	build.Bind(ctx)
	defer build.Bind(previous)

	argType := dsl.GLSLType[A]()
	retType := dsl.GLSLType[R]()
	ctx.PushCallableBody()
	param := dsl.ExternalVar[A]("a")
	result := c.body(param)
	build.Build(&ir.Return{Value: result.Node()}, true)
	stmts := ctx.PopCallableBody()
	def := fmt.Sprintf("%s %s(%s a) {\n%s}\n", retType, c.name, argType, stmts)
	ctx.AppendCallableBody(def)
	state := ctx.CallableState(c)
	state.Defined = true
}

// Callable2 is a user-defined shader function of two scalar arguments
// returning R.
type Callable2[A, B, R dsl.Scalar] struct {
	id   uint64
	name string
	body func(a dsl.Var[A], b dsl.Var[B]) dsl.Expr[R]
}

// NewCallable2 declares a two-argument callable, mirroring NewCallable1.
func NewCallable2[A, B, R dsl.Scalar](body func(a dsl.Var[A], b dsl.Var[B]) dsl.Expr[R]) *Callable2[A, B, R] {
	id := nextCallableID()
	return &Callable2[A, B, R]{id: id, name: fmt.Sprintf("fn%d", id), body: body}
}

// Invoke emits a call to the callable with (a, b).
func (c *Callable2[A, B, R]) Invoke(a dsl.Expr[A], b dsl.Expr[B]) dsl.Expr[R] {
	c.ensureRegistered()
	return dsl.UserCall[R](c.name, a, b)
}

func (c *Callable2[A, B, R]) ensureRegistered() {
	ctx := build.MustCurrent()
	state := ctx.CallableState(c)
	if state.Declared {
		return
	}
	state.Declared = true
	aType, bType, retType := dsl.GLSLType[A](), dsl.GLSLType[B](), dsl.GLSLType[R]()
	ctx.AddCallableDeclaration(fmt.Sprintf("%s %s(%s a, %s b)", retType, c.name, aType, bType))
	ctx.AddCallableBodyGenerator(func() { c.generateBody(ctx) })
}

func (c *Callable2[A, B, R]) generateBody(ctx build.Context) {
	previous := build.Current()
	build.Bind(ctx)
	defer build.Bind(previous)

	aType, bType, retType := dsl.GLSLType[A](), dsl.GLSLType[B](), dsl.GLSLType[R]()
	ctx.PushCallableBody()
	pa := dsl.ExternalVar[A]("a")
	pb := dsl.ExternalVar[B]("b")
	result := c.body(pa, pb)
	build.Build(&ir.Return{Value: result.Node()}, true)
	stmts := ctx.PopCallableBody()
	def := fmt.Sprintf("%s %s(%s a, %s b) {\n%s}\n", retType, c.name, aType, bType, stmts)
	ctx.AppendCallableBody(def)
	state := ctx.CallableState(c)
	state.Defined = true
}
