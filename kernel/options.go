package kernel

import "github.com/shaderkit/gpudsl/driver/glgl"

// kernelOptions holds the functional-options state shared by Kernel1D,
// Kernel2D, Kernel3D and FragmentKernel2D — grounded on the repo-wide
// convention of plain Go structs and functional options rather than a
// config-file library (SPEC_FULL.md §5).
type kernelOptions struct {
	flags    glgl.CompileFlags
	profiler *Profiler
}

// KernelOption configures a kernel at construction time.
type KernelOption func(*kernelOptions)

// WithCompileFlags sets the driver compile/link/validate behavior used
// when this kernel's program is first compiled.
func WithCompileFlags(flags glgl.CompileFlags) KernelOption {
	return func(o *kernelOptions) { o.flags = flags }
}

// WithProfiler attaches a Profiler that records dispatch timings for this
// kernel's name.
func WithProfiler(p *Profiler) KernelOption {
	return func(o *kernelOptions) { o.profiler = p }
}

func applyOptions(opts []KernelOption) kernelOptions {
	var o kernelOptions
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
