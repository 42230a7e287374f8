package flow

import (
	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/dsl"
	"github.com/shaderkit/gpudsl/ir"
)

// Break exits the nearest enclosing loop. Valid only inside a loop body;
// authoring it elsewhere produces GLSL that will fail to compile, the same
// validation boundary the rest of the typed surface leaves to the shader
// compiler.
func Break() { build.Build(&ir.Break{}, true) }

// Continue skips to the next iteration of the nearest enclosing loop.
func Continue() { build.Build(&ir.Continue{}, true) }

// Return exits a callable body with no value.
func Return() { build.Build(&ir.Return{}, true) }

// ReturnValue exits a callable body yielding value.
func ReturnValue[T dsl.Scalar](value dsl.Expr[T]) {
	build.Build(&ir.Return{Value: value.Node()}, true)
}
