//go:build !tinygo && cgo

package glgl

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// BindStorageBuffer rebinds a runtime SSBO handle at binding, the same
// call NewShaderStorageBuffer makes at creation time (glgl.go), exposed
// standalone so kernel can rebind an already-created buffer at dispatch
// time without recreating it.
func BindStorageBuffer(binding, handle uint32) {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, binding, handle)
}

// pixelFormatEnum maps the GLSL image-format qualifier spelling (as
// produced by dsl.PixelFormat.glslImage) to its GL internal-format enum.
func pixelFormatEnum(glslFormat string) uint32 {
	switch glslFormat {
	case "rgba8":
		return gl.RGBA8
	case "rgba32f":
		return gl.RGBA32F
	case "rg32f":
		return gl.RG32F
	case "r32f":
		return gl.R32F
	default:
		panic(fmt.Sprintf("glgl: unknown image format %q", glslFormat))
	}
}

// BindImageUnit rebinds a runtime texture handle to an image unit for
// compute-shader imageLoad/imageStore access, mirroring the
// gl.BindImageTexture call NewTextureFromImage makes at creation
// (glgl.go), exposed standalone for dispatch-time rebinding.
func BindImageUnit(unit, handle uint32, glslFormat string, readOnly, writeOnly bool) {
	access := uint32(gl.READ_WRITE)
	switch {
	case readOnly:
		access = gl.READ_ONLY
	case writeOnly:
		access = gl.WRITE_ONLY
	}
	gl.BindImageTexture(unit, handle, 0, false, 0, access, pixelFormatEnum(glslFormat))
}

// BindSamplerUnit rebinds a runtime texture handle to a texture unit for
// sampler2D access in the fragment path.
func BindSamplerUnit(unit, handle uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, handle)
}
