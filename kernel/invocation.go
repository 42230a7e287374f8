package kernel

import (
	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/dsl"
	"github.com/shaderkit/gpudsl/ir"
)

// globalInvocation returns the int-cast component (x, y or z) of the
// compute entry point's built-in gl_GlobalInvocationID, the thread index
// every compute authoring closure receives as an argument (spec.md §4.7).
func globalInvocation(component string) dsl.Expr[int32] {
	node := &ir.IntrinsicCall{
		Name: "int",
		Args: []ir.Node{&ir.MemberAccess{Object: &ir.Load{Name: "gl_GlobalInvocationID"}, Member: component}},
	}
	return dsl.WrapNode[int32](node)
}

// fragmentUV returns the interpolated normalized surface coordinate the
// fixed vertex stage hands every FragmentKernel2D authoring closure,
// bound to the "v_uv" in-variable the vertex stage writes.
func fragmentUV() dsl.Vec2 {
	return dsl.WrapVecNode(&ir.Load{Name: "v_uv"})
}

// SetFragColor writes color to the fragment entry's sole output, the
// "gpudsl_fragColor" out-variable assembleFragmentSource declares. It is
// the fragment authoring closure's counterpart to a compute buffer
// element's Set — the one statement every FragmentKernel2D body must emit
// at least once.
func SetFragColor(color dsl.Vec4) {
	target := &ir.Load{Name: "gpudsl_fragColor"}
	build.Build(&ir.Store{Target: target, Value: color.Node()}, true)
}
