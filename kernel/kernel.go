package kernel

import (
	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/driver/glgl"
	"github.com/shaderkit/gpudsl/dsl"
)

// Kernel1D is a compute kernel whose authoring closure receives the
// flattened global thread index. Construction (spec.md §4.7) builds a
// fresh Build Context, binds the Builder, runs the closure, unbinds the
// Builder and assembles the complete source once; the program itself is
// compiled lazily on first Dispatch and cached.
type Kernel1D struct {
	name   string
	local  int
	ctx    *kernelContext
	source string
	opts   kernelOptions

	compiled bool
	prog     glgl.Program
}

// NewKernel1D constructs a 1D compute kernel with the given workgroup
// local size, running author once to capture its body.
func NewKernel1D(name string, localSizeX int, opts []KernelOption, author func(idx dsl.Expr[int32])) *Kernel1D {
	ctx := newComputeContext(dimCompute1D, localSizeX, 1, 1)
	build.Bind(ctx)
	author(globalInvocation("x"))
	build.Unbind()
	return &Kernel1D{
		name:   name,
		local:  localSizeX,
		ctx:    ctx,
		source: assembleComputeSource(ctx),
		opts:   applyOptions(opts),
	}
}

// Source returns the kernel's assembled GLSL compute source.
func (k *Kernel1D) Source() string { return k.source }

func (k *Kernel1D) ensureCompiled() error {
	if k.compiled {
		return nil
	}
	prog, err := glgl.CompileProgram(glgl.ShaderSource{Compute: k.source, CompileFlags: k.opts.flags})
	if err != nil {
		return wrapProgramError(err, k.source)
	}
	k.prog = prog
	k.compiled = true
	return nil
}

// Dispatch submits numGroups workgroups along x, uploading uniforms and
// rebinding resources first. wait blocks until the dispatch completes
// (spec.md §4.7's "synchronous-wait option"); RunCompute already performs
// a memory barrier wait regardless, since the driver has no fire-and-forget
// compute submission primitive of its own.
func (k *Kernel1D) Dispatch(numGroups int, wait bool) error {
	return dispatchCompute(k.name, k.ctx, &k.opts, func() error {
		if err := k.ensureCompiled(); err != nil {
			return err
		}
		stateCache.BindProgram(k.prog)
		uploadUniforms(k.ctx, k.prog.ID())
		rebindResources(k.ctx)
		return k.prog.RunCompute(numGroups, 1, 1)
	})
}

// Kernel2D is a compute kernel whose authoring closure receives the (x, y)
// global thread indices.
type Kernel2D struct {
	name       string
	localX, localY int
	ctx        *kernelContext
	source     string
	opts       kernelOptions

	compiled bool
	prog     glgl.Program
}

func NewKernel2D(name string, localSizeX, localSizeY int, opts []KernelOption, author func(x, y dsl.Expr[int32])) *Kernel2D {
	ctx := newComputeContext(dimCompute2D, localSizeX, localSizeY, 1)
	build.Bind(ctx)
	author(globalInvocation("x"), globalInvocation("y"))
	build.Unbind()
	return &Kernel2D{
		name:   name,
		localX: localSizeX,
		localY: localSizeY,
		ctx:    ctx,
		source: assembleComputeSource(ctx),
		opts:   applyOptions(opts),
	}
}

func (k *Kernel2D) Source() string { return k.source }

func (k *Kernel2D) ensureCompiled() error {
	if k.compiled {
		return nil
	}
	prog, err := glgl.CompileProgram(glgl.ShaderSource{Compute: k.source, CompileFlags: k.opts.flags})
	if err != nil {
		return wrapProgramError(err, k.source)
	}
	k.prog = prog
	k.compiled = true
	return nil
}

func (k *Kernel2D) Dispatch(numGroupsX, numGroupsY int, wait bool) error {
	return dispatchCompute(k.name, k.ctx, &k.opts, func() error {
		if err := k.ensureCompiled(); err != nil {
			return err
		}
		stateCache.BindProgram(k.prog)
		uploadUniforms(k.ctx, k.prog.ID())
		rebindResources(k.ctx)
		return k.prog.RunCompute(numGroupsX, numGroupsY, 1)
	})
}

// Kernel3D is a compute kernel whose authoring closure receives the
// (x, y, z) global thread indices.
type Kernel3D struct {
	name                   string
	localX, localY, localZ int
	ctx                    *kernelContext
	source                 string
	opts                   kernelOptions

	compiled bool
	prog     glgl.Program
}

func NewKernel3D(name string, localSizeX, localSizeY, localSizeZ int, opts []KernelOption, author func(x, y, z dsl.Expr[int32])) *Kernel3D {
	ctx := newComputeContext(dimCompute3D, localSizeX, localSizeY, localSizeZ)
	build.Bind(ctx)
	author(globalInvocation("x"), globalInvocation("y"), globalInvocation("z"))
	build.Unbind()
	return &Kernel3D{
		name:   name,
		localX: localSizeX,
		localY: localSizeY,
		localZ: localSizeZ,
		ctx:    ctx,
		source: assembleComputeSource(ctx),
		opts:   applyOptions(opts),
	}
}

func (k *Kernel3D) Source() string { return k.source }

func (k *Kernel3D) ensureCompiled() error {
	if k.compiled {
		return nil
	}
	prog, err := glgl.CompileProgram(glgl.ShaderSource{Compute: k.source, CompileFlags: k.opts.flags})
	if err != nil {
		return wrapProgramError(err, k.source)
	}
	k.prog = prog
	k.compiled = true
	return nil
}

func (k *Kernel3D) Dispatch(numGroupsX, numGroupsY, numGroupsZ int, wait bool) error {
	return dispatchCompute(k.name, k.ctx, &k.opts, func() error {
		if err := k.ensureCompiled(); err != nil {
			return err
		}
		stateCache.BindProgram(k.prog)
		uploadUniforms(k.ctx, k.prog.ID())
		rebindResources(k.ctx)
		return k.prog.RunCompute(numGroupsX, numGroupsY, numGroupsZ)
	})
}

// dispatchCompute runs body (compile+bind+upload+rebind+RunCompute),
// recording a profiler sample around it when a Profiler is attached.
// Driver errors are wrapped as DispatchError and returned, never panicked
// (spec.md §4.7: "Driver errors on dispatch are reported but non-fatal at
// the kernel level").
func dispatchCompute(name string, ctx *kernelContext, opts *kernelOptions, body func() error) error {
	finish := func(error) {}
	if opts.profiler != nil {
		finish = opts.profiler.begin(name)
	}
	err := body()
	finish(err)
	if err != nil {
		switch err.(type) {
		case *CompileError, *LinkError, *DispatchError:
			return err
		}
		return &DispatchError{Err: err}
	}
	return nil
}
