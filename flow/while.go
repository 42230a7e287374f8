package flow

import (
	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/dsl"
	"github.com/shaderkit/gpudsl/ir"
)

// While emits a pretest loop: `while (cond) { body }`.
func While(cond dsl.Expr[bool], body func()) {
	build.Build(&ir.While{Cond: cond.Node(), Body: captureBody(body)}, true)
}
