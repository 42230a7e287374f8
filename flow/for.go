package flow

import (
	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/dsl"
	"github.com/shaderkit/gpudsl/ir"
)

// For emits an ascending half-open counted loop `for (int v = start; v <
// end; v += step)`, with a fresh loop-variable name, and an Expr[int32]
// reader for that variable available to body.
func For(start, end, step dsl.Expr[int32], body func(i dsl.Expr[int32])) {
	ctx := build.MustCurrent()
	varName := ctx.FreshName()
	loopVar := dsl.ExternalVar[int32](varName)
	node := &ir.For{
		VarName: varName,
		Start:   start.Node(),
		End:     end.Node(),
		Step:    step.Node(),
		Body:    captureBody(func() { body(loopVar.Load()) }),
	}
	build.Build(node, true)
}

// ForUpTo is For with an implicit step of 1, the common case.
func ForUpTo(start, end dsl.Expr[int32], body func(i dsl.Expr[int32])) {
	For(start, end, dsl.Lit[int32](1), body)
}
