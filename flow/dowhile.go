package flow

import (
	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/dsl"
	"github.com/shaderkit/gpudsl/ir"
)

// DoWhile emits a posttest loop: `do { body } while (cond);`. body runs at
// least once.
func DoWhile(body func(), cond dsl.Expr[bool]) {
	build.Build(&ir.DoWhile{Body: captureBody(body), Cond: cond.Node()}, true)
}
