package dsl

import (
	"github.com/shaderkit/gpudsl/build"
	"github.com/shaderkit/gpudsl/ir"
)

// PixelFormat is the GPU-side storage format of a texture, mirrored from
// the Runtime::PixelFormat enum the original implementation binds its
// Texture2D<Format> template parameter to.
type PixelFormat int

const (
	RGBA8 PixelFormat = iota
	RGBA32F
	RG32F
	R32F
)

func (f PixelFormat) glslImage() string {
	switch f {
	case RGBA8:
		return "rgba8"
	case RGBA32F:
		return "rgba32f"
	case RG32F:
		return "rg32f"
	case R32F:
		return "r32f"
	default:
		panic("gpudsl: unknown PixelFormat")
	}
}

// TextureRef is a compute-kernel handle to a bound image2D, read and
// written with imageLoad/imageStore.
type TextureRef struct {
	name    string
	binding uint32
	format  PixelFormat
	width   int
	height  int
}

// RegisterTexture declares a new image2D of the given format and
// dimensions, bound at a freshly allocated binding slot.
func RegisterTexture(format PixelFormat, width, height int, readOnly, writeOnly bool) TextureRef {
	ctx := build.MustCurrent()
	binding := ctx.AllocateTextureBinding()
	name := ctx.FreshName()
	ctx.RegisterTexture(build.TextureDecl{
		Binding:   binding,
		PixelGLSL: format.glslImage(),
		Name:      name,
		Width:     width,
		Height:    height,
		ReadOnly:  readOnly,
		WriteOnly: writeOnly,
	})
	return TextureRef{name: name, binding: binding, format: format, width: width, height: height}
}

// Binding returns the texture's GLSL binding slot.
func (t TextureRef) Binding() uint32 { return t.binding }

// Bind attaches a runtime GPU texture handle to this ref's binding slot.
func (t TextureRef) Bind(handle uint32) {
	build.MustCurrent().BindRuntimeTexture(t.binding, handle)
}

// Load reads texel (x, y) via imageLoad, producing a Vec4.
func (t TextureRef) Load(x, y Expr[int32]) Vec4 {
	coord := &ir.IntrinsicCall{Name: "ivec2", Args: []ir.Node{x.node, y.node}}
	call := &ir.IntrinsicCall{Name: "imageLoad", Args: []ir.Node{&ir.Load{Name: t.name}, coord}}
	return Vec4{node: call}
}

// Store writes color to texel (x, y) via imageStore.
func (t TextureRef) Store(x, y Expr[int32], color Vec4) {
	coord := &ir.IntrinsicCall{Name: "ivec2", Args: []ir.Node{x.node, y.node}}
	build.Build(&ir.IntrinsicCall{Name: "imageStore", Args: []ir.Node{&ir.Load{Name: t.name}, coord, color.node}}, true)
}

// TextureSampler2D is a fragment-kernel handle to a bound sampler2D, read
// with texture() rather than imageLoad/imageStore.
type TextureSampler2D struct {
	name    string
	binding uint32
	format  PixelFormat
	width   int
	height  int
}

// RegisterSampler declares a new sampler2D of the given format and
// dimensions, bound at a freshly allocated binding slot.
func RegisterSampler(format PixelFormat, width, height int) TextureSampler2D {
	ctx := build.MustCurrent()
	binding := ctx.AllocateTextureBinding()
	name := ctx.FreshName()
	ctx.RegisterTexture(build.TextureDecl{
		Binding:   binding,
		PixelGLSL: format.glslImage(),
		Name:      name,
		Width:     width,
		Height:    height,
		IsSampler: true,
	})
	return TextureSampler2D{name: name, binding: binding, format: format, width: width, height: height}
}

// Binding returns the sampler's GLSL binding slot.
func (t TextureSampler2D) Binding() uint32 { return t.binding }

// Bind attaches a runtime GPU texture handle to this sampler's binding slot.
func (t TextureSampler2D) Bind(handle uint32) {
	build.MustCurrent().BindRuntimeTexture(t.binding, handle)
}

// Sample reads the sampler at normalized UV coordinates (0,0)-(1,1).
func (t TextureSampler2D) Sample(uv Vec2) Vec4 {
	call := &ir.IntrinsicCall{Name: "texture", Args: []ir.Node{&ir.Load{Name: t.name}, uv.node}}
	return Vec4{node: call}
}

// Size returns the sampler's backing texture dimensions as a Vec2.
func (t TextureSampler2D) Size() Vec2 {
	call := &ir.IntrinsicCall{Name: "vec2", Args: []ir.Node{
		&ir.IntrinsicCall{Name: "textureSize", Args: []ir.Node{&ir.Load{Name: t.name}, &ir.Raw{Text: "0"}}},
	}}
	return Vec2{node: call}
}
