package kernel

import "github.com/shaderkit/gpudsl/driver/glgl"

// stateCache is the process-wide bound-resource cache every kernel
// dispatch rebinds through, so repeated dispatches of the same kernel (or
// kernels sharing a buffer/texture) skip redundant GL rebind calls
// (spec.md §5).
var stateCache = glgl.NewGLStateCache()

// uploadUniforms invokes every registered uniform's uploader against the
// now-bound program (spec.md §4.7: "For each registered uniform, invoke
// its uploader against the current program").
func uploadUniforms(ctx *kernelContext, programID uint32) {
	for _, u := range ctx.UniformDecls() {
		u.Upload(programID, u.ShaderName)
	}
}

// rebindResources rebinds every buffer and texture at its recorded slot
// (spec.md §4.7: "Rebind all buffer and texture handles at their recorded
// slots"), routed through stateCache so a handle already bound at that
// slot is skipped.
func rebindResources(ctx *kernelContext) {
	runtimeBuffers := ctx.RuntimeBuffers()
	for _, b := range ctx.BufferDecls() {
		if handle, ok := runtimeBuffers[b.Binding]; ok {
			stateCache.BindStorageBuffer(b.Binding, handle)
		}
	}
	runtimeTextures := ctx.RuntimeTextures()
	for _, t := range ctx.TextureDecls() {
		handle, ok := runtimeTextures[t.Binding]
		if !ok {
			continue
		}
		if t.IsSampler {
			stateCache.BindSamplerUnit(t.Binding, handle)
			continue
		}
		stateCache.BindImageUnit(t.Binding, handle, t.PixelGLSL, t.ReadOnly, t.WriteOnly)
	}
}
