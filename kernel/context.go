package kernel

import "github.com/shaderkit/gpudsl/build"

// dimKind distinguishes the shape of entry function a kernelContext
// assembles around the authored statement stream — compute kernels wrap it
// in a local-size-declared compute entry point, the fragment kernel wraps
// it in a full-screen vertex/fragment pair (spec.md §4.3).
type dimKind int

const (
	dimCompute1D dimKind = iota
	dimCompute2D
	dimCompute3D
	dimFragment
)

// kernelContext is the per-kernel Build Context (spec.md §4.3), embedding
// build.MainContext for its registries and statement stream and adding the
// dimension metadata source assembly needs: workgroup local size for the
// compute variants, or surface width/height for the fragment variant.
type kernelContext struct {
	*build.MainContext
	kind dimKind

	localX, localY, localZ int // compute: workgroup local size

	width, height int // fragment: surface dimensions
}

func newComputeContext(kind dimKind, localX, localY, localZ int) *kernelContext {
	return &kernelContext{
		MainContext: build.NewMainContext(),
		kind:        kind,
		localX:      localX,
		localY:      localY,
		localZ:      localZ,
	}
}

func newFragmentContext(width, height int) *kernelContext {
	return &kernelContext{
		MainContext: build.NewMainContext(),
		kind:        dimFragment,
		width:       width,
		height:      height,
	}
}
